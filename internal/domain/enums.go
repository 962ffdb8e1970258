package domain

// TaskType is one of the four canonical accounting tasks an employee can be
// assigned for a client month.
type TaskType string

const (
	TaskBookkeeping        TaskType = "bookkeeping"
	TaskVATComputation     TaskType = "vat_filing_computation"
	TaskVATFiling          TaskType = "vat_filing"
	TaskFinancialStatement TaskType = "financial_statement"
)

// AllTaskTypes returns the four canonical tasks in their display order.
func AllTaskTypes() []TaskType {
	return []TaskType{TaskBookkeeping, TaskVATComputation, TaskVATFiling, TaskFinancialStatement}
}

// IsValid reports whether t is one of the four canonical tasks.
func (t TaskType) IsValid() bool {
	switch t {
	case TaskBookkeeping, TaskVATComputation, TaskVATFiling, TaskFinancialStatement:
		return true
	}
	return false
}

func (t TaskType) String() string { return string(t) }

// CategoryType identifies one of the three fixed document categories, or the
// "other" bucket of ad-hoc named categories.
type CategoryType string

const (
	CategorySales    CategoryType = "sales"
	CategoryPurchase CategoryType = "purchase"
	CategoryBank     CategoryType = "bank"
	CategoryOther    CategoryType = "other"
)

// MainCategories returns the three fixed categories every month record carries.
func MainCategories() []CategoryType {
	return []CategoryType{CategorySales, CategoryPurchase, CategoryBank}
}

// IsMain reports whether c is one of the three fixed categories.
func (c CategoryType) IsMain() bool {
	return c == CategorySales || c == CategoryPurchase || c == CategoryBank
}

// IsValid reports whether c is a recognized category type.
func (c CategoryType) IsValid() bool {
	return c.IsMain() || c == CategoryOther
}

func (c CategoryType) String() string { return string(c) }

// NoteType identifies the granularity a note is attached at.
type NoteType string

const (
	NoteTypeMonth    NoteType = "month"
	NoteTypeCategory NoteType = "category"
	NoteTypeFile     NoteType = "file"
)

// IsValid reports whether n is a recognized note type.
func (n NoteType) IsValid() bool {
	return n == NoteTypeMonth || n == NoteTypeCategory || n == NoteTypeFile
}

func (n NoteType) String() string { return string(n) }

// ActorRole is the role of the authenticated actor performing an operation.
type ActorRole string

const (
	RoleAdmin    ActorRole = "admin"
	RoleEmployee ActorRole = "employee"
	RoleClient   ActorRole = "client"
)

// IsValid reports whether r is a recognized actor role.
func (r ActorRole) IsValid() bool {
	return r == RoleAdmin || r == RoleEmployee || r == RoleClient
}

func (r ActorRole) String() string { return string(r) }
