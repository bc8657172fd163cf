package core

// validation.go checks mapped contacts before submission.
//
// Every rule is evaluated for every row so that one row reports all of its
// problems at once. Messages are shown to users as-is.

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// emailPattern accepts local@domain.tld: one '@', no whitespace, and a dot
// with text on both sides after the '@'.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validation messages.
const (
	MsgEmailRequired   = "Email is required"
	MsgNameRequired    = "Name is required (provide name, or both firstName and lastName)"
	MsgCompanyRequired = "Company is required"
)

// Valid reports whether the row had no violations.
func (e ValidationError) Valid() bool {
	return len(e.Messages) == 0
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, strings.Join(e.Messages, "; "))
}

// ValidateContact checks c against the import rules and returns every
// violation for the given 1-based data row. It never fails.
func ValidateContact(c CandidateContact, row int) ValidationError {
	result := ValidationError{Row: row, Messages: []string{}}
	add := func(msg string) { result.Messages = append(result.Messages, msg) }

	email := strings.TrimSpace(c.Email)
	switch {
	case email == "":
		add(MsgEmailRequired)
	case !emailPattern.MatchString(email):
		add(fmt.Sprintf("Email is invalid: %q", email))
	}

	hasName := strings.TrimSpace(c.Name) != ""
	hasParts := strings.TrimSpace(c.FirstName) != "" && strings.TrimSpace(c.LastName) != ""
	if !hasName && !hasParts {
		add(MsgNameRequired)
	}

	if strings.TrimSpace(c.Company) == "" {
		add(MsgCompanyRequired)
	}

	if c.InterestLevel != "" && !slices.Contains(InterestLevels, c.InterestLevel) {
		add(fmt.Sprintf("Interest level %q must be one of: %s", c.InterestLevel, strings.Join(InterestLevels, ", ")))
	}

	if c.Status != "" && !slices.Contains(Statuses, c.Status) {
		add(fmt.Sprintf("Status %q must be one of: %s", c.Status, strings.Join(Statuses, ", ")))
	}

	return result
}
