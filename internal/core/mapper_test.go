package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRowMapper_Map(t *testing.T) {
	tests := []struct {
		name   string
		header RawRow
		row    RawRow
		want   CandidateContact
	}{
		{
			name:   "defaults applied",
			header: RawRow{"email", "name", "company"},
			row:    RawRow{"john@x.com", "John", "Acme"},
			want: CandidateContact{
				Name:          "John",
				Email:         "john@x.com",
				Company:       "Acme",
				Sources:       []string{"Manual Import"},
				Tags:          []string{},
				InterestLevel: "medium",
				Status:        "lead",
			},
		},
		{
			name:   "name synthesized from parts",
			header: RawRow{"firstName", "lastName", "email", "company"},
			row:    RawRow{"Jane", "Smith", "jane@x.com", "Globex"},
			want: CandidateContact{
				Name:          "Jane Smith",
				FirstName:     "Jane",
				LastName:      "Smith",
				Email:         "jane@x.com",
				Company:       "Globex",
				Sources:       []string{"Manual Import"},
				Tags:          []string{},
				InterestLevel: "medium",
				Status:        "lead",
			},
		},
		{
			name:   "explicit name kept",
			header: RawRow{"name", "firstName", "lastName"},
			row:    RawRow{"Janie", "Jane", "Smith"},
			want: CandidateContact{
				Name:          "Janie",
				FirstName:     "Jane",
				LastName:      "Smith",
				Sources:       []string{"Manual Import"},
				Tags:          []string{},
				InterestLevel: "medium",
				Status:        "lead",
			},
		},
		{
			name:   "lists split and enums lower-cased",
			header: RawRow{"sources", "tags", "interestLevel", "status"},
			row:    RawRow{"Website; Referral,Event", "vip;;  enterprise ", "HOT", "Customer"},
			want: CandidateContact{
				Sources:       []string{"Website", "Referral", "Event"},
				Tags:          []string{"vip", "enterprise"},
				InterestLevel: "hot",
				Status:        "customer",
			},
		},
		{
			name:   "header variants",
			header: RawRow{"First Name", "last_name", "E-Mail", "COMPANY", "interest level"},
			row:    RawRow{"Ann", "Lee", "ann@x.com", "Initech", "low"},
			want: CandidateContact{
				Name:          "Ann Lee",
				FirstName:     "Ann",
				LastName:      "Lee",
				Email:         "ann@x.com",
				Company:       "Initech",
				Sources:       []string{"Manual Import"},
				Tags:          []string{},
				InterestLevel: "low",
				Status:        "lead",
			},
		},
		{
			name:   "short row leaves fields empty",
			header: RawRow{"email", "name", "company"},
			row:    RawRow{"a@x.com"},
			want: CandidateContact{
				Email:         "a@x.com",
				Sources:       []string{"Manual Import"},
				Tags:          []string{},
				InterestLevel: "medium",
				Status:        "lead",
			},
		},
		{
			name:   "blank sources get the default",
			header: RawRow{"sources"},
			row:    RawRow{" ; "},
			want: CandidateContact{
				Sources:       []string{"Manual Import"},
				Tags:          []string{},
				InterestLevel: "medium",
				Status:        "lead",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewRowMapper(tt.header).Map(tt.row)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Map() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRowMapper_Idempotent(t *testing.T) {
	header := RawRow{"firstName", "lastName", "email", "company", "tags", "favoriteColor"}
	row := RawRow{"Jane", "Smith", "jane@x.com", "Globex", "a; b", "blue"}

	first := NewRowMapper(header).Map(row)
	second := NewRowMapper(header).Map(row)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("mapping the same row twice differs (-first +second):\n%s", diff)
	}

	m := NewRowMapper(header)
	if diff := cmp.Diff(m.Map(row), m.Map(row)); diff != "" {
		t.Errorf("reusing a mapper differs (-first +second):\n%s", diff)
	}
	if row[4] != "a; b" {
		t.Errorf("Map() modified its input row: %q", row)
	}
}

func TestRowMapper_UnknownHeaders(t *testing.T) {
	tests := []struct {
		name       string
		header     RawRow
		want       []string
		recognized bool
	}{
		{"all known", RawRow{"email", "name", "company"}, nil, true},
		{"unknown reported", RawRow{"email", "favoriteColor", "Shoe Size"}, []string{"favoriteColor", "Shoe Size"}, true},
		{"duplicate keeps first", RawRow{"email", "Email"}, []string{"Email"}, true},
		{"empty header cells ignored", RawRow{"", "email", ""}, nil, true},
		{"nothing recognized", RawRow{"foo", "bar"}, []string{"foo", "bar"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewRowMapper(tt.header)
			if diff := cmp.Diff(tt.want, m.UnknownHeaders()); diff != "" {
				t.Errorf("UnknownHeaders() mismatch (-want +got):\n%s", diff)
			}
			if got := m.Recognized(); got != tt.recognized {
				t.Errorf("Recognized() = %v, want %v", got, tt.recognized)
			}
		})
	}
}

func TestRowMapper_DuplicateUsesFirstColumn(t *testing.T) {
	m := NewRowMapper(RawRow{"email", "EMAIL"})
	got := m.Map(RawRow{"first@x.com", "second@x.com"})
	if got.Email != "first@x.com" {
		t.Errorf("Email = %q, want %q", got.Email, "first@x.com")
	}
}

func TestContactHeadersAreRecognized(t *testing.T) {
	m := NewRowMapper(RawRow(ContactHeaders))
	if unknown := m.UnknownHeaders(); len(unknown) != 0 {
		t.Errorf("UnknownHeaders() = %v, want none", unknown)
	}
	if len(m.columns) != len(ContactHeaders) {
		t.Errorf("bound columns = %d, want %d", len(m.columns), len(ContactHeaders))
	}
}

func TestNormalizeHeader(t *testing.T) {
	tests := map[string]string{
		"email":          "email",
		"  Email ":       "email",
		"interestLevel":  "interestlevel",
		"Interest_Level": "interestlevel",
		"first-name":     "firstname",
		"First Name":     "firstname",
		"":               "",
	}
	for in, want := range tests {
		if got := NormalizeHeader(in); got != want {
			t.Errorf("NormalizeHeader(%q) = %q, want %q", in, got, want)
		}
	}
}
