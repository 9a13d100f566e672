// Package content loads blog posts and projects from metadata-headed text
// files, validates their metadata and serves them as ordered collections.
package content

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrNotFound is returned when a requested item does not exist or is invalid.
var ErrNotFound = errors.New("content: not found")

// Library is the page-facing entry point to both collections.
type Library struct {
	reader *Reader
	cache  *Cache
	logger *zap.Logger
	now    func() time.Time
	hooks  []func(Report)

	mu      sync.RWMutex
	reports map[Kind]Report
}

// Option configures a Library.
type Option func(*Library)

// WithCache replaces the default one-hour cache.
func WithCache(c *Cache) Option {
	return func(l *Library) {
		l.cache = c
	}
}

// WithLogger sets the logger used for scan diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Library) {
		l.logger = logger
	}
}

// WithExts overrides the recognized content-file suffixes.
func WithExts(exts ...string) Option {
	return func(l *Library) {
		l.reader = NewReader(l.reader.Root(), exts...)
	}
}

// WithReportHook registers fn to receive the report of every full scan.
func WithReportHook(fn func(Report)) Option {
	return func(l *Library) {
		l.hooks = append(l.hooks, fn)
	}
}

// NewLibrary creates a Library reading collections below root.
func NewLibrary(root string, opts ...Option) *Library {
	l := &Library{
		reader:  NewReader(root),
		logger:  zap.NewNop(),
		now:     time.Now,
		reports: make(map[Kind]Report),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.cache == nil {
		l.cache = NewCache(DefaultTTL)
	}
	return l
}

// Cache exposes the result cache, e.g. for status pages.
func (l *Library) Cache() *Cache {
	return l.cache
}

// Dir returns the directory backing kind.
func (l *Library) Dir(kind Kind) string {
	return l.reader.Dir(kind)
}

// Posts returns all valid blog posts, newest first.
func (l *Library) Posts() ([]BlogPost, error) {
	return collection(l, KindBlog, buildPost, comparePosts)
}

// Post reads a single blog post by slug, bypassing the cache.
func (l *Library) Post(slug string) (BlogPost, error) {
	return lookup(l, KindBlog, slug, buildPost)
}

// Projects returns all valid projects, newest year first.
func (l *Library) Projects() ([]Project, error) {
	return collection(l, KindProjects, buildProject, compareProjects)
}

// Project reads a single project by slug, bypassing the cache.
func (l *Library) Project(slug string) (Project, error) {
	return lookup(l, KindProjects, slug, buildProject)
}

// Invalidate forces the next collection call for tag to rescan.
func (l *Library) Invalidate(tag string) int {
	n := l.cache.Invalidate(tag)
	l.logger.Info("content cache invalidated", zap.String("tag", tag), zap.Int("entries", n))
	return n
}

// Scan runs a fresh full scan of kind without touching the cache.
func (l *Library) Scan(kind Kind) (Report, error) {
	var (
		rep Report
		err error
	)
	switch kind {
	case KindBlog:
		_, rep, err = scan(l, kind, buildPost, comparePosts)
	case KindProjects:
		_, rep, err = scan(l, kind, buildProject, compareProjects)
	default:
		return Report{}, fmt.Errorf("content: unknown kind %q", kind)
	}
	if err != nil {
		return Report{}, err
	}
	l.record(rep)
	return rep, nil
}

// Reports returns the latest scan report of each kind that has been scanned.
func (l *Library) Reports() []Report {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Report, 0, len(l.reports))
	for _, k := range Kinds {
		if r, ok := l.reports[k]; ok {
			out = append(out, r)
		}
	}
	return out
}

func (l *Library) record(rep Report) {
	l.mu.Lock()
	l.reports[rep.Kind] = rep
	l.mu.Unlock()
	for _, fn := range l.hooks {
		fn(rep)
	}
}

type builder[T any] func(slug string, doc Document) (T, error)

func buildPost(slug string, doc Document) (BlogPost, error) {
	meta, err := ValidateBlog(doc.Fields)
	if err != nil {
		return BlogPost{}, err
	}
	return BlogPost{Slug: slug, BlogMeta: meta, Body: doc.Body}, nil
}

func buildProject(slug string, doc Document) (Project, error) {
	meta, err := ValidateProject(doc.Fields)
	if err != nil {
		return Project{}, err
	}
	return Project{Slug: slug, ProjectMeta: meta, Body: doc.Body}, nil
}

func comparePosts(a, b BlogPost) int {
	if c := cmp.Compare(b.Date, a.Date); c != 0 {
		return c
	}
	return cmp.Compare(a.Slug, b.Slug)
}

func compareProjects(a, b Project) int {
	if c := cmp.Compare(b.Year, a.Year); c != 0 {
		return c
	}
	return cmp.Compare(a.Slug, b.Slug)
}

// collection serves kind from the cache or rescans it. Failed scans are not cached.
func collection[T any](l *Library, kind Kind, build builder[T], order func(a, b T) int) ([]T, error) {
	if v, ok := l.cache.Get(kind); ok {
		if items, ok := v.([]T); ok {
			return slices.Clone(items), nil
		}
	}
	gen := l.cache.Generation(kind.Tag())
	items, rep, err := scan(l, kind, build, order)
	if err != nil {
		l.logger.Error("content scan failed", zap.String("kind", string(kind)), zap.Error(err))
		return nil, err
	}
	l.record(rep)
	if !l.cache.SetIfCurrent(kind, items, gen) {
		l.logger.Debug("content scan superseded by invalidation", zap.String("kind", string(kind)))
	}
	return slices.Clone(items), nil
}

func scan[T any](l *Library, kind Kind, build builder[T], order func(a, b T) int) ([]T, Report, error) {
	files, err := l.reader.Files(kind)
	if err != nil {
		return nil, Report{}, err
	}
	rep := Report{
		Kind:      kind,
		Dir:       l.reader.Dir(kind),
		ScannedAt: l.now(),
		Files:     len(files),
	}
	shared := duplicateSlugs(files)
	items := make([]T, 0, len(files))
	for _, f := range files {
		if names, dup := shared[f.Slug]; dup {
			err := Violations{{Field: "slug", Message: "duplicate slug " + f.Slug + " (" + strings.Join(names, ", ") + ")"}}
			rep.Issues = append(rep.Issues, l.drop(kind, f, err))
			continue
		}
		doc, err := l.reader.Read(f.Path)
		if err != nil {
			rep.Issues = append(rep.Issues, l.drop(kind, f, err))
			continue
		}
		item, err := build(f.Slug, doc)
		if err != nil {
			rep.Issues = append(rep.Issues, l.drop(kind, f, err))
			continue
		}
		items = append(items, item)
	}
	slices.SortStableFunc(items, order)
	rep.Items = len(items)
	l.logger.Debug("content scanned",
		zap.String("kind", string(kind)),
		zap.Int("files", rep.Files),
		zap.Int("items", rep.Items))
	return items, rep, nil
}

func (l *Library) drop(kind Kind, f File, err error) Issue {
	l.logger.Warn("content file skipped",
		zap.String("kind", string(kind)),
		zap.String("file", f.Name),
		zap.Error(err))
	return newIssue(f, err)
}

// duplicateSlugs maps every slug produced by more than one file to those file names.
func duplicateSlugs(files []File) map[string][]string {
	names := make(map[string][]string, len(files))
	for _, f := range files {
		names[f.Slug] = append(names[f.Slug], f.Name)
	}
	for slug, n := range names {
		if len(n) < 2 {
			delete(names, slug)
		}
	}
	return names
}

func lookup[T any](l *Library, kind Kind, slug string, build builder[T]) (T, error) {
	var zero T
	if !validSlug(slug) {
		return zero, ErrNotFound
	}
	var path string
	for _, candidate := range l.reader.Candidates(kind, slug) {
		info, err := os.Stat(candidate)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if path != "" {
			l.logger.Warn("ambiguous content slug",
				zap.String("kind", string(kind)),
				zap.String("slug", slug))
			return zero, ErrNotFound
		}
		path = candidate
	}
	if path == "" {
		return zero, ErrNotFound
	}
	doc, err := l.reader.Read(path)
	if err != nil {
		l.logger.Warn("content file unreadable", zap.String("path", path), zap.Error(err))
		return zero, ErrNotFound
	}
	item, err := build(slug, doc)
	if err != nil {
		l.logger.Warn("content file invalid", zap.String("path", path), zap.Error(err))
		return zero, ErrNotFound
	}
	return item, nil
}
