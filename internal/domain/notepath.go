package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// NotePath is the decoded form of the positional note address
// "{year}_{month}_{category}_{noteType}_{noteIndex}[_{fileIndex}]".
//
// The address is positional: it stays valid only as long as the containing
// note sequence is not reordered or spliced between computation and use.
// Category names containing underscores cannot be addressed through this
// scheme; the split is segment-based. A future revision should assign each
// note a permanent opaque identifier instead, but that changes the external
// contract, so the positional format is kept as-is.
type NotePath struct {
	Year      string
	Month     string
	Category  string
	Type      NoteType
	NoteIndex int
	FileIndex int // meaningful only when Type == NoteTypeFile
}

// EncodeNotePath renders the path in its external string form. For month-level
// notes the category segment conventionally repeats "month".
func EncodeNotePath(p NotePath) string {
	s := fmt.Sprintf("%s_%s_%s_%s_%d", p.Year, p.Month, p.Category, p.Type, p.NoteIndex)
	if p.Type == NoteTypeFile {
		s += "_" + strconv.Itoa(p.FileIndex)
	}
	return s
}

// DecodeNotePath parses the external string form. It fails with ErrValidation
// if the path does not split into at least 5 segments, if the note type is
// unknown, if an index segment is not a number, or if the segment count does
// not match the note type (file paths carry a sixth segment, others do not).
func DecodeNotePath(path string) (NotePath, error) {
	parts := strings.Split(path, "_")
	if len(parts) < 5 {
		return NotePath{}, NewValidationError("notePath", "must have at least 5 segments")
	}
	if len(parts) > 6 {
		return NotePath{}, NewValidationError("notePath", "too many segments")
	}

	p := NotePath{
		Year:     parts[0],
		Month:    parts[1],
		Category: parts[2],
		Type:     NoteType(parts[3]),
	}
	if !p.Type.IsValid() {
		return NotePath{}, NewValidationError("notePath", "unknown note type "+parts[3])
	}

	idx, err := strconv.Atoi(parts[4])
	if err != nil || idx < 0 {
		return NotePath{}, NewValidationError("notePath", "note index must be a non-negative number")
	}
	p.NoteIndex = idx

	if p.Type == NoteTypeFile {
		if len(parts) != 6 {
			return NotePath{}, NewValidationError("notePath", "file note path requires a file index segment")
		}
		fi, err := strconv.Atoi(parts[5])
		if err != nil || fi < 0 {
			return NotePath{}, NewValidationError("notePath", "file index must be a non-negative number")
		}
		p.FileIndex = fi
	} else if len(parts) != 5 {
		return NotePath{}, NewValidationError("notePath", "unexpected file index segment")
	}

	return p, nil
}

// ResolveNote walks the tree to the note addressed by p. Returns nil if any
// step of the path — month, category, file, or index — does not resolve.
func (t DocumentTree) ResolveNote(p NotePath) *Note {
	m := t.Month(p.Year, p.Month)
	if m == nil {
		return nil
	}

	switch p.Type {
	case NoteTypeMonth:
		if p.NoteIndex >= len(m.MonthNotes) {
			return nil
		}
		return &m.MonthNotes[p.NoteIndex]

	case NoteTypeCategory:
		c := m.categoryByName(p.Category)
		if c == nil || p.NoteIndex >= len(c.CategoryNotes) {
			return nil
		}
		return &c.CategoryNotes[p.NoteIndex]

	case NoteTypeFile:
		c := m.categoryByName(p.Category)
		if c == nil || p.FileIndex >= len(c.Files) {
			return nil
		}
		f := &c.Files[p.FileIndex]
		if p.NoteIndex >= len(f.Notes) {
			return nil
		}
		return &f.Notes[p.NoteIndex]
	}
	return nil
}

// categoryByName resolves a path category segment: one of the three fixed
// names first, then the ad-hoc categories.
func (m *MonthRecord) categoryByName(name string) *CategoryRecord {
	if c := m.MainCategory(CategoryType(name)); c != nil {
		return c
	}
	return m.OtherCategoryByName(name)
}
