package folio

import (
	"github.com/eringen/folio/content"
	"github.com/eringen/folio/markdown"
	"github.com/eringen/folio/palette"
)

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	JSONLD      string
}

// HomeData is passed to the home page.
type HomeData struct {
	Site     SiteConfig
	Meta     PageMeta
	Featured []content.BlogPost
	Posts    []content.BlogPost
	Projects []content.Project
}

// BlogListData is passed to the blog index and its partial.
type BlogListData struct {
	Site      SiteConfig
	Meta      PageMeta
	Posts     []content.BlogPost
	Tags      []string
	ActiveTag string
}

// PostData is passed to a blog post page.
type PostData struct {
	Site    SiteConfig
	Meta    PageMeta
	Post    content.BlogPost
	Body    markdown.Rendered
	Related []content.BlogPost
	Prev    *content.BlogPost // older
	Next    *content.BlogPost // newer
}

// ProjectListData is passed to the projects index and its partial.
type ProjectListData struct {
	Site           SiteConfig
	Meta           PageMeta
	Projects       []content.Project
	Categories     []string
	ActiveCategory string
}

// VideoEmbed is a project video resolved for rendering.
type VideoEmbed struct {
	Title    string
	URL      string
	EmbedURL string // empty when the link is not embeddable
}

// ProjectData is passed to a project page.
type ProjectData struct {
	Site    SiteConfig
	Meta    PageMeta
	Project content.Project
	Body    markdown.Rendered
	Videos  []VideoEmbed
	Others  []content.Project
}

// SearchData is passed to the command palette page.
type SearchData struct {
	Site   SiteConfig
	Meta   PageMeta
	Query  string
	Groups []palette.Section
	Total  int
	// Selected is the ID of the highlighted command, empty without matches.
	Selected string
}

// DashboardData is passed to the admin dashboard.
type DashboardData struct {
	Site      SiteConfig
	Message   string
	CSRFToken string
	Live      []content.Report
	History   []ScanRecord
	Cache     []content.CacheStatus
}
