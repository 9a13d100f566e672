package scaffold

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestToTitle(t *testing.T) {
	tests := map[string]string{
		"my-site": "My Site",
		"folio":   "Folio",
		"a_b--c":  "A B C",
		"":        "",
	}
	for in, want := range tests {
		if got := ToTitle(in); got != want {
			t.Errorf("ToTitle(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGenerate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "jane-doe")
	data := NewData(dir, time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC))
	if data.SiteName != "Jane Doe" || data.Today != "2025-03-09" {
		t.Fatalf("NewData = %+v", data)
	}

	created, err := Generate(dir, data)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(created) == 0 {
		t.Fatal("Generate created no files")
	}

	for _, rel := range []string{
		"folio.yaml",
		".env.example",
		filepath.Join("content", "blog", "hello-world.mdx"),
		filepath.Join("content", "projects", "first-project.mdx"),
		filepath.Join("public", "favicon.svg"),
	} {
		if _, err := os.Stat(filepath.Join(dir, rel)); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}

	post, err := os.ReadFile(filepath.Join(dir, "content", "blog", "hello-world.mdx"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(post), `date: "2025-03-09"`) {
		t.Errorf("post date not rendered:\n%s", post)
	}
	project, err := os.ReadFile(filepath.Join(dir, "content", "projects", "first-project.mdx"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(project), `year: "2025"`) {
		t.Errorf("project year not rendered:\n%s", project)
	}
}

func TestGenerateRefusesExistingDir(t *testing.T) {
	_, err := Generate(t.TempDir(), Data{})
	if !errors.Is(err, ErrExists) {
		t.Fatalf("Generate on existing dir err = %v, want ErrExists", err)
	}
}
