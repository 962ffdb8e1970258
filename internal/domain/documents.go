package domain

import (
	"time"
)

// DocumentTree is the per-client nested document structure:
// year key → month key ("1".."12") → MonthRecord.
//
// Month records are created lazily: an absent year/month is not an error until
// a write touches it. The whole tree is persisted as a single document, so a
// mutation anywhere in the tree requires one whole-tree save.
type DocumentTree map[string]YearDocs

// YearDocs maps month keys ("1".."12", no leading zero) to month records.
type YearDocs map[string]*MonthRecord

// MonthRecord holds one client month: the three fixed categories, ad-hoc
// "other" categories, month-level notes, and the lock/accounting flags.
type MonthRecord struct {
	Sales    CategoryRecord  `json:"sales"`
	Purchase CategoryRecord  `json:"purchase"`
	Bank     CategoryRecord  `json:"bank"`
	Other    []OtherCategory `json:"other"`

	MonthNotes []Note `json:"monthNotes"`

	IsLocked bool       `json:"isLocked"`
	LockedAt *time.Time `json:"lockedAt,omitempty"`
	LockedBy string     `json:"lockedBy,omitempty"`

	AccountingDone   bool       `json:"accountingDone"`
	AccountingDoneAt *time.Time `json:"accountingDoneAt,omitempty"`
	AccountingDoneBy string     `json:"accountingDoneBy,omitempty"`
}

// OtherCategory is an ad-hoc named category inside a month record. Order is
// preserved; names are unique within a month.
type OtherCategory struct {
	Name     string         `json:"categoryName"`
	Document CategoryRecord `json:"document"`
}

// CategoryRecord holds the files and notes of one category. A category can be
// locked independently of its month.
type CategoryRecord struct {
	Files         []FileRecord `json:"files"`
	CategoryNotes []Note       `json:"categoryNotes"`
	IsLocked      bool         `json:"isLocked"`
}

// FileRecord is an uploaded file's metadata. The binary itself lives in
// external storage; URL points at it.
type FileRecord struct {
	FileName   string    `json:"fileName"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
	UploadedBy string    `json:"uploadedBy"`
	FileSize   int64     `json:"fileSize"`
	FileType   string    `json:"fileType"`
	Notes      []Note    `json:"notes"`
}

// Note is a threaded comment attached at month, category, or file level.
// Notes are append-only: they are never deleted, only marked viewed.
type Note struct {
	Note            string     `json:"note"`
	AddedBy         string     `json:"addedBy"`
	AddedAt         time.Time  `json:"addedAt"`
	IsViewedByAdmin bool       `json:"isViewedByAdmin"`
	ViewedBy        []NoteView `json:"viewedBy"`
}

// NoteView is one entry in a note's append-only viewer audit trail.
type NoteView struct {
	UserID   string    `json:"userId"`
	UserType string    `json:"userType"`
	ViewedAt time.Time `json:"viewedAt"`
}

// NewMonthRecord returns an empty month record: all categories empty,
// unlocked, accounting not done.
func NewMonthRecord() *MonthRecord {
	return &MonthRecord{}
}

// Month returns the month record at (year, month), or nil if the month has
// never been touched.
func (t DocumentTree) Month(year, month string) *MonthRecord {
	y, ok := t[year]
	if !ok {
		return nil
	}
	return y[month]
}

// EnsureMonth returns the month record at (year, month), creating it — and the
// year level above it — if absent.
func (t DocumentTree) EnsureMonth(year, month string) *MonthRecord {
	y, ok := t[year]
	if !ok {
		y = YearDocs{}
		t[year] = y
	}
	m, ok := y[month]
	if !ok {
		m = NewMonthRecord()
		y[month] = m
	}
	return m
}

// MainCategory returns a pointer to one of the three fixed categories, or nil
// if cat is not a main category.
func (m *MonthRecord) MainCategory(cat CategoryType) *CategoryRecord {
	switch cat {
	case CategorySales:
		return &m.Sales
	case CategoryPurchase:
		return &m.Purchase
	case CategoryBank:
		return &m.Bank
	}
	return nil
}

// OtherCategoryByName returns a pointer to the named ad-hoc category, or nil
// if no category with that name exists.
func (m *MonthRecord) OtherCategoryByName(name string) *CategoryRecord {
	for i := range m.Other {
		if m.Other[i].Name == name {
			return &m.Other[i].Document
		}
	}
	return nil
}

// EnsureOtherCategory returns the named ad-hoc category, appending an empty
// one if it does not exist yet.
func (m *MonthRecord) EnsureOtherCategory(name string) *CategoryRecord {
	if c := m.OtherCategoryByName(name); c != nil {
		return c
	}
	m.Other = append(m.Other, OtherCategory{Name: name})
	return &m.Other[len(m.Other)-1].Document
}

// FileByName returns a pointer to the first file with the given name, or nil.
// Duplicate file names are not disambiguated further: first match wins.
func (c *CategoryRecord) FileByName(name string) *FileRecord {
	for i := range c.Files {
		if c.Files[i].FileName == name {
			return &c.Files[i]
		}
	}
	return nil
}

// TotalFiles counts files across the main and other categories of a month.
func (m *MonthRecord) TotalFiles() int {
	n := len(m.Sales.Files) + len(m.Purchase.Files) + len(m.Bank.Files)
	for i := range m.Other {
		n += len(m.Other[i].Document.Files)
	}
	return n
}

// TotalNotes counts category- and file-level notes across the main and other
// categories of a month. Month-level notes are not included.
func (m *MonthRecord) TotalNotes() int {
	n := 0
	m.forEachCategory(func(_ string, c *CategoryRecord) {
		n += len(c.CategoryNotes)
		for i := range c.Files {
			n += len(c.Files[i].Notes)
		}
	})
	return n
}

// forEachCategory visits the three fixed categories and then the other
// categories, in stable order.
func (m *MonthRecord) forEachCategory(fn func(name string, c *CategoryRecord)) {
	fn(string(CategorySales), &m.Sales)
	fn(string(CategoryPurchase), &m.Purchase)
	fn(string(CategoryBank), &m.Bank)
	for i := range m.Other {
		fn(m.Other[i].Name, &m.Other[i].Document)
	}
}

// NoteRef locates a single note inside a month record, carrying enough
// position information to compute its address.
type NoteRef struct {
	Category  string
	Type      NoteType
	Index     int
	FileIndex int // meaningful only for file notes
	Note      *Note
}

// ForEachNote visits every note in the month — month-level, category-level,
// and file-level, across the main and other categories — in stable order.
// The *Note pointers reference the tree in place, so callers may mutate.
func (m *MonthRecord) ForEachNote(fn func(ref NoteRef)) {
	for i := range m.MonthNotes {
		fn(NoteRef{Category: string(NoteTypeMonth), Type: NoteTypeMonth, Index: i, Note: &m.MonthNotes[i]})
	}
	m.forEachCategory(func(name string, c *CategoryRecord) {
		for i := range c.CategoryNotes {
			fn(NoteRef{Category: name, Type: NoteTypeCategory, Index: i, Note: &c.CategoryNotes[i]})
		}
		for fi := range c.Files {
			f := &c.Files[fi]
			for i := range f.Notes {
				fn(NoteRef{Category: name, Type: NoteTypeFile, Index: i, FileIndex: fi, Note: &f.Notes[i]})
			}
		}
	})
}

// CountUnviewed counts notes in the month not yet viewed by an admin.
func (m *MonthRecord) CountUnviewed() int {
	n := 0
	m.ForEachNote(func(ref NoteRef) {
		if !ref.Note.IsViewedByAdmin {
			n++
		}
	})
	return n
}
