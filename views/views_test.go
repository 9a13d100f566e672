package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/folio"
	"github.com/eringen/folio/content"
	"github.com/eringen/folio/markdown"
	"github.com/eringen/folio/palette"
)

var site = folio.SiteConfig{
	Name:      "Jane Doe",
	URL:       "https://jane.example.com",
	Bio:       "Builds things.",
	GitHub:    "https://github.com/jane",
	TechStack: []string{"Go", "Postgres"},
}

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func samplePost() content.BlogPost {
	return content.BlogPost{
		Slug: "hello",
		BlogMeta: content.BlogMeta{
			Title:    "Hello <World>",
			Date:     "2024-01-15",
			Excerpt:  "Intro",
			Author:   "Jane Doe",
			Tags:     []string{"go"},
			ReadTime: "5 min read",
		},
	}
}

func TestParse(t *testing.T) {
	s, err := Parse(site)
	require.NoError(t, err)
	assert.Len(t, s.pages, len(pageFiles))
}

func TestHomeEscapesContent(t *testing.T) {
	v := Default(site)
	out := renderString(t, v.Home(folio.HomeData{
		Site:  site,
		Meta:  folio.PageMeta{Title: "Jane Doe", JSONLD: `{"@type":"WebSite"}`},
		Posts: []content.BlogPost{samplePost()},
	}))
	assert.Contains(t, out, "Hello &lt;World&gt;")
	assert.Contains(t, out, `href="/blog/hello/"`)
	assert.Contains(t, out, "January 15, 2024")
	assert.Contains(t, out, `<script type="application/ld+json">{"@type":"WebSite"}</script>`)
	assert.Contains(t, out, "No projects yet.")
	assert.Contains(t, out, "Postgres")
}

func TestPostRendersBodyAndTOC(t *testing.T) {
	body, err := markdown.Render("## Setup\n\nRun **it**.\n")
	require.NoError(t, err)
	older := samplePost()
	older.Slug = "older"
	older.Title = "Older"

	out := renderString(t, Default(site).Post(folio.PostData{
		Site: site,
		Post: samplePost(),
		Body: body,
		Prev: &older,
	}))
	assert.Contains(t, out, `<h2 id="setup">Setup</h2>`)
	assert.Contains(t, out, `href="#setup"`)
	assert.Contains(t, out, "<strong>it</strong>")
	assert.Contains(t, out, `href="/blog/older/"`)
	assert.Contains(t, out, "Builds things.")
}

func TestProjectVideos(t *testing.T) {
	out := renderString(t, Default(site).Project(folio.ProjectData{
		Site: site,
		Project: content.Project{Slug: "vision", ProjectMeta: content.ProjectMeta{
			Title: "Vision", Category: "AI", Year: "2024", Tech: []string{"Go"},
			GitHub: "javascript:alert(1)",
		}},
		Videos: []folio.VideoEmbed{
			{Title: "Demo", URL: "https://youtu.be/abc", EmbedURL: "https://www.youtube.com/embed/abc"},
			{Title: "Talk", URL: "https://vimeo.com/1"},
		},
	}))
	assert.Contains(t, out, `<iframe src="https://www.youtube.com/embed/abc"`)
	assert.Contains(t, out, `href="https://vimeo.com/1"`)
	assert.NotContains(t, out, "javascript:")
	assert.NotContains(t, out, ">Source<")
}

func TestPartialsRenderWithoutLayout(t *testing.T) {
	v := Default(site)
	blog := renderString(t, v.BlogPartial(folio.BlogListData{Site: site, ActiveTag: "rust"}))
	assert.Equal(t, "No posts tagged #rust.", strings.TrimSpace(stripTags(blog)))
	assert.NotContains(t, blog, "<html")

	groups := palette.Group(palette.Filter(palette.Navigation, "home"))
	results := renderString(t, v.SearchPartial(folio.SearchData{Site: site, Query: "home", Groups: groups}))
	assert.Contains(t, results, `<a data-command href="/">Home</a>`)

	selected := renderString(t, v.SearchPartial(folio.SearchData{Site: site, Groups: palette.Group(palette.Navigation), Selected: "blog"}))
	assert.Contains(t, selected, `<a data-command href="/blog/" aria-selected="true">Blog</a>`)
	assert.Equal(t, 1, strings.Count(selected, "aria-selected"))
	assert.NotContains(t, results, "<html")
}

func TestAdminDashboard(t *testing.T) {
	out := renderString(t, Default(site).AdminDashboard(folio.DashboardData{
		Site:      site,
		CSRFToken: "tok",
		Live: []content.Report{{
			Kind: content.KindBlog, Files: 2, Items: 1,
			Issues: []content.Issue{{File: "bad.mdx", Violations: content.Violations{{Field: "date", Message: "is required"}}}},
		}},
	}))
	assert.Contains(t, out, `value="tok"`)
	assert.Contains(t, out, "1/2 valid")
	assert.Contains(t, out, "date: is required")
	assert.Contains(t, out, "Nothing cached yet.")
}

func TestErrorPagesUseSiteName(t *testing.T) {
	v := Default(site)
	assert.Contains(t, renderString(t, v.NotFound()), "<title>Not found - Jane Doe</title>")
	assert.Contains(t, renderString(t, v.ServerError()), "Something went wrong")
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "JD", initials("jane doe smith"))
	assert.Equal(t, "É", initials("élodie"))
	assert.Equal(t, "", initials(""))
}

func stripTags(s string) string {
	var b strings.Builder
	in := false
	for _, r := range s {
		switch {
		case r == '<':
			in = true
		case r == '>':
			in = false
		case !in:
			b.WriteRune(r)
		}
	}
	return b.String()
}
