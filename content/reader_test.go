package content

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestSplit(t *testing.T) {
	doc, err := Split([]byte("---\ntitle: Hello\ntags: [a, b]\n---\nBody text\n"))
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if doc.Fields["title"] != "Hello" {
		t.Errorf("title = %v, want Hello", doc.Fields["title"])
	}
	tags, ok := doc.Fields["tags"].([]any)
	if !ok || len(tags) != 2 {
		t.Errorf("tags = %#v, want two-element list", doc.Fields["tags"])
	}
	if strings.TrimSpace(doc.Body) != "Body text" {
		t.Errorf("Body = %q, want %q", doc.Body, "Body text")
	}
}

func TestSplitIgnoresByteOrderMark(t *testing.T) {
	doc, err := Split([]byte("\ufeff---\ntitle: T\n---\nb"))
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if doc.Fields["title"] != "T" {
		t.Errorf("title = %v, want T", doc.Fields["title"])
	}
}

func TestSplitWithoutMetadata(t *testing.T) {
	_, err := Split([]byte("# Just a heading\n"))
	if !errors.Is(err, ErrNoMetadata) {
		t.Errorf("expected ErrNoMetadata, got %v", err)
	}
}

func TestSplitMalformedYAML(t *testing.T) {
	_, err := Split([]byte("---\ntitle: [unclosed\n---\nbody\n"))
	if err == nil {
		t.Fatal("expected parse error for malformed metadata")
	}
}

func TestFilesMissingDirectory(t *testing.T) {
	r := NewReader(filepath.Join(t.TempDir(), "nope"))
	files, err := r.Files(KindBlog)
	if err != nil {
		t.Fatalf("missing directory should not error, got %v", err)
	}
	if len(files) != 0 {
		t.Errorf("files = %v, want none", files)
	}
}

func TestFilesFiltersSuffixAndDerivesSlug(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "blog")
	writeFile(t, dir, "first-post.mdx", "x")
	writeFile(t, dir, "notes.md", "x")
	writeFile(t, dir, "draft.txt", "x")
	writeFile(t, dir, ".mdx", "x")
	if err := os.Mkdir(filepath.Join(dir, "nested.mdx"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := NewReader(root).Files(KindBlog)
	if err != nil {
		t.Fatalf("Files failed: %v", err)
	}
	want := map[string]string{"first-post.mdx": "first-post"}
	if len(files) != len(want) {
		t.Fatalf("files = %v, want %d entries", files, len(want))
	}
	for _, f := range files {
		if want[f.Name] != f.Slug {
			t.Errorf("slug of %s = %q, want %q", f.Name, f.Slug, want[f.Name])
		}
	}
}

func TestFilesUnreadableDirectory(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits not enforced")
	}
	root := t.TempDir()
	dir := filepath.Join(root, "blog")
	writeFile(t, dir, "a.mdx", "x")
	if err := os.Chmod(dir, 0o000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	if _, err := NewReader(root).Files(KindBlog); err == nil {
		t.Error("expected error for unreadable directory")
	}
}

func TestValidSlug(t *testing.T) {
	tests := []struct {
		slug string
		want bool
	}{
		{"hello-world", true},
		{"v1.2-notes", true},
		{"", false},
		{"..", false},
		{"../secret", false},
		{"a/b", false},
		{`a\b`, false},
	}
	for _, tt := range tests {
		if got := validSlug(tt.slug); got != tt.want {
			t.Errorf("validSlug(%q) = %v, want %v", tt.slug, got, tt.want)
		}
	}
}
