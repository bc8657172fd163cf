package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JonMunkholm/crmimport/internal/core"
)

// run executes the root command with args and returns stdout and the error.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_URL", "")
	t.Setenv("LOG_LEVEL", "error")

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--env-file", ""}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestTemplateCmd_Stdout(t *testing.T) {
	out, err := run(t, "template")
	if err != nil {
		t.Fatalf("template error = %v", err)
	}
	if !strings.HasPrefix(out, strings.Join(core.ContactHeaders, ",")+"\n") {
		t.Errorf("template output starts with %q", strings.SplitN(out, "\n", 2)[0])
	}
}

func TestTemplateCmd_FileThenImport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts_template.csv")
	if _, err := run(t, "template", "-o", path); err != nil {
		t.Fatalf("template error = %v", err)
	}

	out, err := run(t, "import", path)
	if err != nil {
		t.Fatalf("import error = %v", err)
	}
	if !strings.Contains(out, "Imported 2 contacts, 0 failed.") {
		t.Errorf("import output = %q", out)
	}
}

func TestImportCmd_ReportsRowErrors(t *testing.T) {
	path := writeFile(t, "contacts.csv", "email,name,company\njohn@x.com,John,Acme\n,Jane,Acme\n")

	out, err := run(t, "import", path)
	if err != nil {
		t.Fatalf("import error = %v", err)
	}
	for _, want := range []string{"Imported 1 contacts, 1 failed.", "row 2: Email is required"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestImportCmd_FileLevelError(t *testing.T) {
	path := writeFile(t, "empty.csv", "email,name,company\n")

	_, err := run(t, "import", path)
	if !errors.Is(err, core.ErrNoDataRows) {
		t.Errorf("import error = %v, want ErrNoDataRows", err)
	}
}

func TestPreviewCmd(t *testing.T) {
	path := writeFile(t, "contacts.csv", "email,name,company,status\na@x.com,A,Acme,lead\nb@x.com,B,Acme,archived\n")

	out, err := run(t, "preview", path)
	if !errors.Is(err, errRowsInvalid) {
		t.Errorf("preview error = %v, want errRowsInvalid", err)
	}
	if !strings.Contains(out, "2 rows, 1 valid, 1 with errors") {
		t.Errorf("preview output = %q", out)
	}
	if !strings.Contains(out, `row 2: Status "archived" must be one of`) {
		t.Errorf("preview output missing row error:\n%s", out)
	}
}

func TestImportCmd_RequiresFile(t *testing.T) {
	if _, err := run(t, "import"); err == nil {
		t.Error("import without FILE should fail")
	}
}
