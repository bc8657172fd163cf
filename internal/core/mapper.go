package core

import "strings"

// ContactHeaders lists the recognized CSV headers in template order.
// Matching is case-insensitive; see NormalizeHeader.
var ContactHeaders = []string{
	"firstName", "lastName", "name", "email", "phone", "title", "company",
	"industry", "sources", "interestLevel", "status", "notes", "tags",
}

// fieldSetter assigns one trimmed cell value to a candidate.
type fieldSetter func(c *CandidateContact, value string)

// contactFields maps normalized header names to their field setters.
var contactFields = map[string]fieldSetter{
	"firstname":     func(c *CandidateContact, v string) { c.FirstName = v },
	"lastname":      func(c *CandidateContact, v string) { c.LastName = v },
	"name":          func(c *CandidateContact, v string) { c.Name = v },
	"email":         func(c *CandidateContact, v string) { c.Email = v },
	"phone":         func(c *CandidateContact, v string) { c.Phone = v },
	"title":         func(c *CandidateContact, v string) { c.Title = v },
	"company":       func(c *CandidateContact, v string) { c.Company = v },
	"industry":      func(c *CandidateContact, v string) { c.Industry = v },
	"sources":       func(c *CandidateContact, v string) { c.Sources = splitList(v) },
	"interestlevel": func(c *CandidateContact, v string) { c.InterestLevel = strings.ToLower(v) },
	"status":        func(c *CandidateContact, v string) { c.Status = strings.ToLower(v) },
	"notes":         func(c *CandidateContact, v string) { c.Notes = v },
	"tags":          func(c *CandidateContact, v string) { c.Tags = splitList(v) },
}

// NormalizeHeader turns a header cell into its lookup key: lower-cased,
// trimmed, with spaces, underscores and hyphens removed.
func NormalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(h)
}

type columnBinding struct {
	pos int
	set fieldSetter
}

// RowMapper maps data rows onto CandidateContact values using the column
// positions of a header row.
type RowMapper struct {
	columns []columnBinding
	unknown []string
}

// NewRowMapper binds each recognized header to its column position.
// When a header repeats, the first column wins and the rest are reported
// by UnknownHeaders along with unrecognized names.
func NewRowMapper(header RawRow) *RowMapper {
	m := &RowMapper{}
	seen := make(map[string]bool, len(header))

	for i, h := range header {
		key := NormalizeHeader(h)
		if key == "" {
			continue
		}
		set, ok := contactFields[key]
		if !ok || seen[key] {
			m.unknown = append(m.unknown, h)
			continue
		}
		seen[key] = true
		m.columns = append(m.columns, columnBinding{pos: i, set: set})
	}

	return m
}

// UnknownHeaders returns the header cells that map to no contact field.
func (m *RowMapper) UnknownHeaders() []string {
	return append([]string(nil), m.unknown...)
}

// Recognized reports whether any header column maps to a contact field.
func (m *RowMapper) Recognized() bool {
	return len(m.columns) > 0
}

// Map builds a candidate from one data row and applies defaults.
// It never fails; invalid data is left for ValidateContact.
func (m *RowMapper) Map(row RawRow) CandidateContact {
	var c CandidateContact
	for _, col := range m.columns {
		if col.pos >= len(row) {
			continue
		}
		col.set(&c, strings.TrimSpace(row[col.pos]))
	}
	applyDefaults(&c)
	return c
}

func applyDefaults(c *CandidateContact) {
	if c.Name == "" && c.FirstName != "" && c.LastName != "" {
		c.Name = c.FirstName + " " + c.LastName
	}
	if len(c.Sources) == 0 {
		c.Sources = []string{DefaultSource}
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
	if c.InterestLevel == "" {
		c.InterestLevel = InterestMedium
	}
	if c.Status == "" {
		c.Status = StatusLead
	}
}

// splitList splits a list cell on commas or semicolons, dropping empty items.
func splitList(v string) []string {
	parts := strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ';' })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
