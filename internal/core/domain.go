package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type (
	// TransactionType tags a record as money in or money out. The amount
	// itself is always a non-negative magnitude.
	TransactionType string

	// Date is a calendar date. Time-of-day carries no meaning; all dates
	// are stored at midnight UTC.
	Date struct {
		time.Time
	}

	// Transaction is a single dated income or expense entry.
	Transaction struct {
		ID          string          `json:"id"`
		Date        Date            `json:"date"`
		Description string          `json:"description"`
		Amount      Money           `json:"amount"`
		Type        TransactionType `json:"type"`
		Category    string          `json:"category"`
	}

	// Goal is a savings target with a deadline and current progress.
	// ProgressAmount may exceed TargetAmount; over-funding is a valid state.
	Goal struct {
		ID             string `json:"id"`
		Name           string `json:"name"`
		TargetAmount   Money  `json:"targetAmount"`
		ProgressAmount Money  `json:"progressAmount"`
		Deadline       Date   `json:"deadline"`
	}

	// BudgetEntry is a per-category spending ceiling for the current
	// period. Entries are independent of each other and of any overall
	// budget figure.
	BudgetEntry struct {
		Category string `json:"category"`
		Ceiling  Money  `json:"ceiling"`
	}
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyName        = errors.New("empty name")
)

// IncomeCategories and ExpenseCategories are the disjoint per-type category
// enumerations. They seed new databases and back form dropdowns.
var (
	IncomeCategories = []string{
		"Salary", "Investments", "Side Gig", "Gifts", "Other Income",
	}
	ExpenseCategories = []string{
		"Housing", "Food", "Transportation", "Utilities", "Entertainment",
		"Healthcare", "Debt Payment", "Personal Care", "Education",
		"Shopping", "Other Expenses",
	}
)

// IsValid reports whether t is one of the two known transaction types.
func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

// CategoriesFor returns the category enumeration for the given type, nil for
// an unknown type.
func CategoriesFor(t TransactionType) []string {
	switch t {
	case Income:
		return IncomeCategories
	case Expense:
		return ExpenseCategories
	default:
		return nil
	}
}

// ValidCategory reports whether category belongs to the enumeration for t.
func ValidCategory(t TransactionType, category string) bool {
	for _, c := range CategoriesFor(t) {
		if c == category {
			return true
		}
	}
	return false
}

// NewDate creates a Date from year, month, day at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date in UTC.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// MarshalJSON encodes the date as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON decodes a "YYYY-MM-DD" string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (tx Transaction) Validate() error {
	if err := tx.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(tx.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(tx.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := tx.Amount.Validate(); err != nil {
		return err
	}
	if !tx.Type.IsValid() {
		return ErrInvalidType
	}
	if !ValidCategory(tx.Type, tx.Category) {
		return ErrInvalidCategory
	}
	return nil
}

func (g Goal) Validate() error {
	if len(strings.TrimSpace(g.Name)) == 0 {
		return ErrEmptyName
	}
	if len(g.Name) > 200 {
		return errors.New("name too long (max 200 characters)")
	}
	if g.TargetAmount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if g.ProgressAmount.Cents < 0 {
		return ErrInvalidAmount
	}
	// A past deadline is a displayable overdue state, not an error.
	if err := g.Deadline.Validate(); err != nil {
		return err
	}
	return nil
}

func (b BudgetEntry) Validate() error {
	if !ValidCategory(Expense, b.Category) {
		return ErrInvalidCategory
	}
	if b.Ceiling.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}
