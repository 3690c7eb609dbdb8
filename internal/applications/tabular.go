// Package applications manages the award application records that live
// in a spreadsheet, with a local JSON mirror so the data stays readable
// when the spreadsheet is unreachable. Status changes dual-write to both
// targets and report partial success per target.
package applications

import "errors"

// Application statuses as they appear in the spreadsheet Status column.
var ValidStatuses = []string{"Pending", "Under Review", "Approved", "Rejected"}

// ErrRecordNotFound is returned when no application row matches an id.
var ErrRecordNotFound = errors.New("application record not found")

// ErrInvalidStatus is returned for a status outside ValidStatuses.
var ErrInvalidStatus = errors.New("invalid application status")

// Record is one application row, keyed by the spreadsheet's header row.
type Record map[string]string

// CellUpdate is one (A1 address, value) pair for a batch write.
type CellUpdate struct {
	Range string
	Value string
}

// TabularStore is the spreadsheet the application records live in.
// Columns are located by exact header match; rows are 1-based.
type TabularStore interface {
	// ReadAll returns the header row and all data rows.
	ReadAll() (headers []string, rows [][]string, err error)
	UpdateCell(rng, value string) error
	BatchUpdate(updates []CellUpdate) error
}

func validStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// columnLetter converts a 1-based column number to its A1 letter form.
func columnLetter(n int) string {
	letter := ""
	for n > 0 {
		n--
		letter = string(rune('A'+n%26)) + letter
		n /= 26
	}
	return letter
}
