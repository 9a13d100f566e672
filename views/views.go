// Package views is the default template set for folio sites. Pages are
// html/template files embedded in the binary and exposed as templ components,
// so they can be swapped for hand-written templ views one at a time.
package views

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/eringen/folio"
	"github.com/eringen/folio/markdown"
)

//go:embed templates/*.html
var files embed.FS

// view is what every template executes against.
type view struct {
	Site folio.SiteConfig
	Meta folio.PageMeta
	D    any
}

var funcs = template.FuncMap{
	"date":     folio.FormatDate,
	"join":     folio.JoinTags,
	"html":     func(s string) template.HTML { return template.HTML(s) },
	"jsonld":   func(s string) template.JS { return template.JS(s) },
	"href":     safeHref,
	"youtube":  markdown.YouTubeEmbedURL,
	"first":    first,
	"initials": initials,
	"list":     func(xs ...string) []string { return xs },
	"stamp":    stamp,
}

// Set is a parsed template set.
type Set struct {
	site  folio.SiteConfig
	pages map[string]*template.Template
}

var pageFiles = []string{
	"home", "about", "contact", "blog", "post", "projects", "project",
	"search", "admin_login", "admin_dashboard", "not_found", "server_error",
}

// Parse loads the embedded templates. site supplies the chrome for pages
// whose data carries no SiteConfig.
func Parse(site folio.SiteConfig) (*Set, error) {
	base, err := template.New("base.html").Funcs(funcs).ParseFS(files, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("views: parse base: %w", err)
	}
	s := &Set{site: site.WithDefaults(), pages: make(map[string]*template.Template, len(pageFiles))}
	for _, name := range pageFiles {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(files, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("views: parse %s: %w", name, err)
		}
		s.pages[name] = t
	}
	return s, nil
}

// component renders block of page with data.
func (s *Set) component(page, block string, data view) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t, ok := s.pages[page]
		if !ok {
			return fmt.Errorf("views: unknown page %q", page)
		}
		return t.ExecuteTemplate(w, block, data)
	})
}

func (s *Set) page(name string, site folio.SiteConfig, meta folio.PageMeta, d any) templ.Component {
	return s.component(name, "base", view{Site: site, Meta: meta, D: d})
}

func (s *Set) meta(title string) folio.PageMeta {
	if title != "" {
		title += " - "
	}
	return folio.PageMeta{
		Title:       title + s.site.Name,
		Description: s.site.Description,
		URL:         folio.BuildURL(s.site.URL),
		OGType:      "website",
	}
}

// ViewFuncs returns the full default view set.
func (s *Set) ViewFuncs() folio.ViewFuncs {
	return folio.ViewFuncs{
		Home: func(d folio.HomeData) templ.Component {
			return s.page("home", d.Site, d.Meta, d)
		},
		About: func(site folio.SiteConfig) templ.Component {
			m := s.meta("About")
			m.URL = folio.BuildURL(site.URL, "about")
			m.JSONLD = folio.PersonJsonLD(site)
			return s.page("about", site, m, site)
		},
		Contact: func(site folio.SiteConfig) templ.Component {
			m := s.meta("Contact")
			m.URL = folio.BuildURL(site.URL, "contact")
			return s.page("contact", site, m, site)
		},
		Blog: func(d folio.BlogListData) templ.Component {
			return s.page("blog", d.Site, d.Meta, d)
		},
		BlogPartial: func(d folio.BlogListData) templ.Component {
			return s.component("blog", "blogList", view{Site: d.Site, Meta: d.Meta, D: d})
		},
		Post: func(d folio.PostData) templ.Component {
			return s.page("post", d.Site, d.Meta, d)
		},
		Projects: func(d folio.ProjectListData) templ.Component {
			return s.page("projects", d.Site, d.Meta, d)
		},
		ProjectsPartial: func(d folio.ProjectListData) templ.Component {
			return s.component("projects", "projectList", view{Site: d.Site, Meta: d.Meta, D: d})
		},
		Project: func(d folio.ProjectData) templ.Component {
			return s.page("project", d.Site, d.Meta, d)
		},
		Search: func(d folio.SearchData) templ.Component {
			return s.page("search", d.Site, d.Meta, d)
		},
		SearchPartial: func(d folio.SearchData) templ.Component {
			return s.component("search", "results", view{Site: d.Site, Meta: d.Meta, D: d})
		},
		AdminLogin: func(showError bool, csrfToken string) templ.Component {
			return s.page("admin_login", s.site, s.meta("Admin"), struct {
				ShowError bool
				CSRFToken string
			}{showError, csrfToken})
		},
		AdminDashboard: func(d folio.DashboardData) templ.Component {
			return s.page("admin_dashboard", d.Site, s.meta("Content health"), d)
		},
		NotFound: func() templ.Component {
			return s.page("not_found", s.site, s.meta("Not found"), nil)
		},
		ServerError: func() templ.Component {
			return s.page("server_error", s.site, s.meta("Error"), nil)
		},
	}
}

// Default parses the embedded templates and returns their view set.
// It panics if the embedded templates are malformed.
func Default(site folio.SiteConfig) folio.ViewFuncs {
	s, err := Parse(site)
	if err != nil {
		panic(err)
	}
	return s.ViewFuncs()
}

// safeHref passes through links with an allowed scheme and drops the rest.
// html/template escapes the result itself.
func safeHref(raw string) string {
	if markdown.SafeURL(raw) == "" {
		return ""
	}
	return strings.TrimSpace(raw)
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func first(n int, items []string) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func initials(name string) string {
	var b strings.Builder
	n := 0
	for _, f := range strings.Fields(name) {
		b.WriteString(strings.ToUpper(string([]rune(f)[0])))
		if n++; n == 2 {
			break
		}
	}
	return b.String()
}
