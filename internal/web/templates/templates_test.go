package templates

import (
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/crmimport/internal/core"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var sb strings.Builder
	if err := c.Render(context.Background(), &sb); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return sb.String()
}

func TestErrorAlert(t *testing.T) {
	got := render(t, ErrorAlert("Bad <file>", "", "FILE002"))

	want := `<div class="alert alert-error" role="alert"><p class="font-medium">Bad &lt;file&gt;</p><p class="text-xs text-gray-500">Code: FILE002</p></div>`
	if got != want {
		t.Errorf("ErrorAlert() =\n%s\nwant\n%s", got, want)
	}
}

func TestImportSummary(t *testing.T) {
	tests := []struct {
		name  string
		res   *core.ImportResult
		class string
		want  []string
	}{
		{
			name:  "clean import",
			res:   &core.ImportResult{Imported: 2, Errors: []core.ValidationError{}},
			class: "alert-success",
			want:  []string{"Imported 2 contacts, 0 failed."},
		},
		{
			name: "rejected rows and unknown headers",
			res: &core.ImportResult{
				Imported:       1,
				Rejected:       1,
				Errors:         []core.ValidationError{{Row: 2, Messages: []string{"Email is required"}}},
				UnknownHeaders: []string{"favoriteColor"},
			},
			class: "alert-warning",
			want: []string{
				"Imported 1 contacts, 1 failed.",
				"Ignored columns: favoriteColor",
				`<span class="font-mono">Row 2</span>: Email is required`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := render(t, ImportSummary(tt.res))
			if !strings.HasPrefix(got, `<div class="alert `+tt.class+`"`) {
				t.Errorf("ImportSummary() = %s, want class %s", got, tt.class)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("ImportSummary() missing %q:\n%s", w, got)
				}
			}
		})
	}
}

func TestPreviewTable(t *testing.T) {
	p := &core.Preview{
		TotalRows: 2,
		ValidRows: 1,
		ErrorRows: 1,
		Rows: []core.PreviewRow{
			{Row: 1, Contact: core.CandidateContact{Name: "John", Email: "john@x.com", Company: "Acme"}},
			{Row: 2, Contact: core.CandidateContact{Name: "Jane"}, Errors: []string{"Email is required", "Company is required"}},
		},
	}

	got := render(t, PreviewTable(p))
	for _, w := range []string{
		"<p>2 rows, 1 valid, 1 with errors</p>",
		`<tr class="row-valid"><td>1</td><td>John</td>`,
		`<tr class="row-invalid"><td>2</td><td>Jane</td>`,
		"<td>Email is required; Company is required</td>",
	} {
		if !strings.Contains(got, w) {
			t.Errorf("PreviewTable() missing %q:\n%s", w, got)
		}
	}
}

func TestContactList(t *testing.T) {
	contacts := []core.Contact{{ID: `a"b`, CandidateContact: core.CandidateContact{Name: "<b>Jo</b>", Email: "jo@x.com", Company: "Acme"}}}

	got := render(t, ContactList(contacts, 5))
	for _, w := range []string{
		"Showing 1 of 5 contacts",
		`data-id="a&#34;b"`,
		`src="` + DefaultAvatarSrc + `"`,
		"&lt;b&gt;Jo&lt;/b&gt;",
	} {
		if !strings.Contains(got, w) {
			t.Errorf("ContactList() missing %q:\n%s", w, got)
		}
	}
}
