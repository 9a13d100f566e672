package content

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestCacheExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewCache(time.Hour, WithClock(clock.Now))

	c.Set(KindBlog, "v1")
	if v, ok := c.Get(KindBlog); !ok || v != "v1" {
		t.Fatalf("Get = %v, %v; want v1, true", v, ok)
	}

	clock.Advance(59 * time.Minute)
	if _, ok := c.Get(KindBlog); !ok {
		t.Fatal("entry expired before its ttl")
	}

	clock.Advance(time.Minute)
	if _, ok := c.Get(KindBlog); ok {
		t.Fatal("entry still fresh after ttl")
	}

	status := c.Status()
	if len(status) != 1 || status[0].Fresh {
		t.Fatalf("Status = %+v, want one stale entry", status)
	}
}

func TestCacheDefaultTTL(t *testing.T) {
	c := NewCache(0)
	if c.ttl != DefaultTTL {
		t.Errorf("ttl = %v, want %v", c.ttl, DefaultTTL)
	}
}

func TestCacheInvalidate(t *testing.T) {
	c := NewCache(time.Hour)
	c.Set(KindBlog, 1)
	c.Set(KindProjects, 2)

	if n := c.Invalidate("blog"); n != 1 {
		t.Errorf("Invalidate(blog) = %d, want 1", n)
	}
	if _, ok := c.Get(KindBlog); ok {
		t.Error("blog entry survived invalidation")
	}
	if _, ok := c.Get(KindProjects); !ok {
		t.Error("projects entry dropped by blog invalidation")
	}
	if n := c.Invalidate("blog"); n != 0 {
		t.Errorf("second Invalidate(blog) = %d, want 0", n)
	}
}

func TestCacheSetIfCurrent(t *testing.T) {
	c := NewCache(time.Hour)
	gen := c.Generation("projects")

	c.Invalidate("projects")
	if c.SetIfCurrent(KindProjects, "stale", gen) {
		t.Fatal("SetIfCurrent stored a value read before invalidation")
	}
	if _, ok := c.Get(KindProjects); ok {
		t.Fatal("stale value visible after rejected SetIfCurrent")
	}

	gen = c.Generation("projects")
	if !c.SetIfCurrent(KindProjects, "fresh", gen) {
		t.Fatal("SetIfCurrent rejected a current generation")
	}
	if v, _ := c.Get(KindProjects); v != "fresh" {
		t.Errorf("Get = %v, want fresh", v)
	}
}

func TestLibraryRescansAfterTTL(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "blog")
	writeFile(t, dir, "a.mdx", blogFile("A", "2024-01-01", "x"))

	clock := &fakeClock{t: time.Now()}
	lib := NewLibrary(root, WithCache(NewCache(time.Hour, WithClock(clock.Now))))
	if _, err := lib.Posts(); err != nil {
		t.Fatalf("Posts: %v", err)
	}

	writeFile(t, dir, "b.mdx", blogFile("B", "2024-02-01", "y"))
	clock.Advance(2 * time.Hour)

	posts, err := lib.Posts()
	if err != nil {
		t.Fatalf("Posts: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("len(posts) = %d after ttl, want 2", len(posts))
	}
}

func TestLibraryDoesNotCacheFailedScan(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits not enforced")
	}
	root := t.TempDir()
	dir := filepath.Join(root, "blog")
	writeFile(t, dir, "a.mdx", blogFile("A", "2024-01-01", "x"))
	if err := os.Chmod(dir, 0o000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	lib := NewLibrary(root)
	if _, err := lib.Posts(); err == nil {
		t.Fatal("Posts succeeded on unreadable directory")
	}
	if len(lib.Cache().Status()) != 0 {
		t.Fatal("failed scan was cached")
	}

	if err := os.Chmod(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	posts, err := lib.Posts()
	if err != nil || len(posts) != 1 {
		t.Fatalf("Posts after recovery = %d, %v; want 1 post", len(posts), err)
	}
}
