package content

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBlogDefaults(t *testing.T) {
	meta, err := ValidateBlog(map[string]any{
		"title":   "Hello",
		"date":    "2024-01-15",
		"excerpt": "An intro",
		"unknown": 42,
	})
	require.NoError(t, err)

	want := BlogMeta{
		Title:    "Hello",
		Date:     "2024-01-15",
		Excerpt:  "An intro",
		Author:   DefaultAuthor,
		Tags:     []string{},
		ReadTime: DefaultReadTime,
	}
	if diff := cmp.Diff(want, meta); diff != "" {
		t.Errorf("ValidateBlog mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateBlogOptionalFields(t *testing.T) {
	meta, err := ValidateBlog(map[string]any{
		"title":    "Hello",
		"date":     "2024-01-15",
		"excerpt":  "An intro",
		"author":   "Jane",
		"tags":     []any{"go", "web"},
		"readTime": "8 min read",
		"category": "Engineering",
		"featured": true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane", meta.Author)
	assert.Equal(t, []string{"go", "web"}, meta.Tags)
	assert.Equal(t, "8 min read", meta.ReadTime)
	assert.Equal(t, "Engineering", meta.Category)
	assert.True(t, meta.Featured)
}

func TestValidateBlogCollectsAllViolations(t *testing.T) {
	_, err := ValidateBlog(map[string]any{
		"date":     "15/01/2024",
		"tags":     []any{"ok", 7},
		"featured": "yes",
	})
	require.Error(t, err)
	vs, ok := err.(Violations)
	require.True(t, ok, "error should be Violations, got %T", err)

	fields := map[string]bool{}
	for _, v := range vs {
		fields[v.Field] = true
	}
	for _, f := range []string{"title", "date", "excerpt", "tags[1]", "featured"} {
		assert.True(t, fields[f], "expected violation for %s in %v", f, vs)
	}
}

func TestValidateBlogDatePatternOnly(t *testing.T) {
	tests := []struct {
		date  any
		valid bool
	}{
		{"2024-01-15", true},
		{"2024-13-40", true},
		{"2024-1-15", false},
		{"24-01-15", false},
		{"2024-01-15T10:00:00Z", false},
		{time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), true},
	}
	for _, tt := range tests {
		_, err := ValidateBlog(map[string]any{"title": "t", "excerpt": "e", "date": tt.date})
		if tt.valid {
			assert.NoError(t, err, "date %v", tt.date)
		} else {
			assert.Error(t, err, "date %v", tt.date)
		}
	}
}

func TestValidateBlogEmptyRequiredString(t *testing.T) {
	_, err := ValidateBlog(map[string]any{"title": "", "date": "2024-01-01", "excerpt": "e"})
	require.Error(t, err)
	assert.Equal(t, Violations{{Field: "title", Message: "is required"}}, err)
}

func TestValidateBlogWrongType(t *testing.T) {
	_, err := ValidateBlog(map[string]any{"title": []any{"a"}, "date": "2024-01-01", "excerpt": "e"})
	require.Error(t, err)
	vs := err.(Violations)
	require.Len(t, vs, 1)
	assert.Equal(t, "title", vs[0].Field)
	assert.Contains(t, vs[0].Message, "expected string")
}

func TestValidateProject(t *testing.T) {
	meta, err := ValidateProject(map[string]any{
		"title":       "Vision",
		"category":    "AI",
		"description": "Detector",
		"tech":        []any{"Go"},
		"year":        2023,
		"demo":        "https://demo.example.com",
		"video":       "https://youtu.be/abc123",
		"videos": []any{
			map[string]any{"title": "Walkthrough", "url": "https://www.youtube.com/watch?v=xyz"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "2023", meta.Year)
	assert.Equal(t, DefaultGradient, meta.Gradient)
	assert.Equal(t, []Video{{Title: "Walkthrough", URL: "https://www.youtube.com/watch?v=xyz"}}, meta.Videos)
}

func TestValidateProjectRules(t *testing.T) {
	base := func() map[string]any {
		return map[string]any{
			"title":       "Vision",
			"category":    "AI",
			"description": "Detector",
			"tech":        []any{"Go"},
			"year":        "2023",
		}
	}
	tests := []struct {
		name  string
		edit  func(m map[string]any)
		field string
	}{
		{"missing tech", func(m map[string]any) { delete(m, "tech") }, "tech"},
		{"empty tech", func(m map[string]any) { m["tech"] = []any{} }, "tech"},
		{"short year", func(m map[string]any) { m["year"] = "23" }, "year"},
		{"missing year", func(m map[string]any) { delete(m, "year") }, "year"},
		{"relative github", func(m map[string]any) { m["github"] = "github.com/x" }, "github"},
		{"bad demo", func(m map[string]any) { m["demo"] = "not a url" }, "demo"},
		{"empty github", func(m map[string]any) { m["github"] = "" }, "github"},
		{"empty demo", func(m map[string]any) { m["demo"] = "" }, "demo"},
		{"empty video", func(m map[string]any) { m["video"] = "" }, "video"},
		{"numeric github", func(m map[string]any) { m["github"] = 42 }, "github"},
		{"video item without url", func(m map[string]any) {
			m["videos"] = []any{map[string]any{"title": "x"}}
		}, "videos[0].url"},
		{"video item without title", func(m map[string]any) {
			m["videos"] = []any{map[string]any{"url": "https://example.com/v"}}
		}, "videos[0].title"},
		{"video item not an object", func(m map[string]any) { m["videos"] = []any{"https://example.com"} }, "videos[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := base()
			tt.edit(m)
			_, err := ValidateProject(m)
			require.Error(t, err)
			vs := err.(Violations)
			require.Len(t, vs, 1, "violations: %v", vs)
			assert.Equal(t, tt.field, vs[0].Field)
		})
	}
}

func TestValidateProjectOptionalURLsAbsent(t *testing.T) {
	_, err := ValidateProject(map[string]any{
		"title":       "Vision",
		"category":    "AI",
		"description": "Detector",
		"tech":        []any{"Go"},
		"year":        "2023",
	})
	assert.NoError(t, err)
}

func TestViolationsError(t *testing.T) {
	vs := Violations{{Field: "title", Message: "is required"}, {Field: "date", Message: "must be in YYYY-MM-DD format"}}
	want := "invalid metadata: title: is required; date: must be in YYYY-MM-DD format"
	assert.Equal(t, want, vs.Error())
	assert.True(t, vs.Has("date"))
	assert.False(t, vs.Has("excerpt"))
}
