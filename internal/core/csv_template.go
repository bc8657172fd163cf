package core

// csv_template.go writes the downloadable import template and contact
// exports. Both use the column layout of ContactHeaders so that any file
// written here imports cleanly.

import (
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
)

// csvList renders a list cell as "a; b".
type csvList []string

// MarshalCSV implements gocsv.TypeMarshaller.
func (l csvList) MarshalCSV() (string, error) {
	return strings.Join(l, "; "), nil
}

// csvContact is one CSV line in template column order.
type csvContact struct {
	FirstName     string  `csv:"firstName"`
	LastName      string  `csv:"lastName"`
	Name          string  `csv:"name"`
	Email         string  `csv:"email"`
	Phone         string  `csv:"phone"`
	Title         string  `csv:"title"`
	Company       string  `csv:"company"`
	Industry      string  `csv:"industry"`
	Sources       csvList `csv:"sources"`
	InterestLevel string  `csv:"interestLevel"`
	Status        string  `csv:"status"`
	Notes         string  `csv:"notes"`
	Tags          csvList `csv:"tags"`
}

// exportContact prefixes the template layout with persisted identity.
// The extra columns are reported as unknown headers on re-import.
type exportContact struct {
	ID        string `csv:"id"`
	CreatedAt string `csv:"createdAt"`
	csvContact
}

func toCSVContact(c CandidateContact) csvContact {
	return csvContact{
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		Title:         c.Title,
		Company:       c.Company,
		Industry:      c.Industry,
		Sources:       csvList(c.Sources),
		InterestLevel: c.InterestLevel,
		Status:        c.Status,
		Notes:         c.Notes,
		Tags:          csvList(c.Tags),
	}
}

// TemplateContacts returns the sample rows of the import template.
func TemplateContacts() []CandidateContact {
	return []CandidateContact{
		{
			FirstName:     "John",
			LastName:      "Doe",
			Name:          "John Doe",
			Email:         "john.doe@example.com",
			Phone:         "+1 555 0100",
			Title:         "VP of Sales",
			Company:       "Acme Corp",
			Industry:      "Technology",
			Sources:       []string{"Website", "Referral"},
			InterestLevel: InterestHot,
			Status:        StatusLead,
			Notes:         "Met at the spring conference, wants a demo",
			Tags:          []string{"enterprise", "priority"},
		},
		{
			FirstName:     "Jane",
			LastName:      "Smith",
			Name:          "Jane Smith",
			Email:         "jane.smith@example.org",
			Phone:         "+1 555 0101",
			Title:         "Head of Operations",
			Company:       "Globex",
			Industry:      "Manufacturing",
			Sources:       []string{"LinkedIn"},
			InterestLevel: InterestMedium,
			Status:        StatusProspect,
			Notes:         "",
			Tags:          []string{"smb"},
		},
	}
}

// WriteTemplate writes the header row and the sample rows.
func WriteTemplate(w io.Writer) error {
	samples := TemplateContacts()
	rows := make([]csvContact, len(samples))
	for i, c := range samples {
		rows[i] = toCSVContact(c)
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("write template: %w", err)
	}
	return nil
}

// WriteContacts exports contacts in template layout with id and createdAt
// columns in front.
func WriteContacts(w io.Writer, contacts []Contact) error {
	rows := make([]exportContact, len(contacts))
	for i, c := range contacts {
		rows[i] = exportContact{
			ID:         c.ID,
			CreatedAt:  c.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
			csvContact: toCSVContact(c.CandidateContact),
		}
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("write contacts: %w", err)
	}
	return nil
}
