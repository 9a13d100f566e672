package content

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// DefaultExts are the content-file suffixes recognized when none are configured.
var DefaultExts = []string{".mdx"}

// ErrNoMetadata is returned when a file does not start with a metadata block.
var ErrNoMetadata = errors.New("content: missing metadata block")

var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// File is a content file discovered in a collection directory.
type File struct {
	Name string
	Path string
	Slug string
}

// Document is a content file split into its metadata fields and body.
type Document struct {
	Fields map[string]any
	Body   string
}

// Reader enumerates and reads content files below a root directory.
type Reader struct {
	root string
	exts []string
}

// NewReader returns a Reader rooted at root. Without exts, DefaultExts is used.
func NewReader(root string, exts ...string) *Reader {
	if len(exts) == 0 {
		exts = DefaultExts
	}
	return &Reader{root: root, exts: exts}
}

// Root returns the content root directory.
func (r *Reader) Root() string {
	return r.root
}

// Dir returns the directory backing kind.
func (r *Reader) Dir(kind Kind) string {
	return filepath.Join(r.root, kind.Dir())
}

// Files lists the content files of kind in directory order.
// A missing directory yields an empty list.
func (r *Reader) Files(kind Kind) ([]File, error) {
	dir := r.Dir(kind)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}
	var files []File
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		slug, ok := r.slugOf(e.Name())
		if !ok {
			continue
		}
		files = append(files, File{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Slug: slug,
		})
	}
	return files, nil
}

// Candidates returns the paths a slug of kind may live at, one per suffix.
func (r *Reader) Candidates(kind Kind, slug string) []string {
	dir := r.Dir(kind)
	paths := make([]string, 0, len(r.exts))
	for _, ext := range r.exts {
		paths = append(paths, filepath.Join(dir, slug+ext))
	}
	return paths
}

// Read loads path and splits it into metadata fields and body.
func (r *Reader) Read(path string) (Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}
	return Split(raw)
}

// Split separates a leading "---" YAML block from the body.
// A UTF-8 byte order mark before the block is ignored.
func Split(raw []byte) (Document, error) {
	raw = bytes.TrimPrefix(raw, []byte("\ufeff"))
	var fields map[string]any
	body, err := frontmatter.MustParse(bytes.NewReader(raw), &fields, yamlFormat)
	if err != nil {
		if errors.Is(err, frontmatter.ErrNotFound) {
			return Document{}, ErrNoMetadata
		}
		return Document{}, fmt.Errorf("parse metadata: %w", err)
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return Document{Fields: fields, Body: string(body)}, nil
}

func (r *Reader) slugOf(name string) (string, bool) {
	for _, ext := range r.exts {
		if strings.HasSuffix(name, ext) {
			slug := strings.TrimSuffix(name, ext)
			if slug == "" {
				return "", false
			}
			return slug, true
		}
	}
	return "", false
}

// validSlug rejects slugs that could escape the collection directory.
func validSlug(slug string) bool {
	if slug == "" || slug == "." || slug == ".." {
		return false
	}
	return !strings.ContainsAny(slug, `/\`) && !strings.Contains(slug, "..")
}
