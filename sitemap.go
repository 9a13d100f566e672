package folio

import (
	"encoding/xml"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc      string `xml:"loc"`
	LastMod  string `xml:"lastmod,omitempty"`
	Priority string `xml:"priority,omitempty"`
}

func (a *App) renderSitemap(c echo.Context, posts []content.BlogPost, projects []content.Project) error {
	base := a.Config.URL
	urls := []sitemapURL{
		{Loc: BuildURL(base), Priority: "1.0"},
		{Loc: BuildURL(base, "about"), Priority: "0.8"},
		{Loc: BuildURL(base, "projects"), Priority: "0.9"},
		{Loc: BuildURL(base, "blog"), Priority: "0.9"},
		{Loc: BuildURL(base, "contact"), Priority: "0.5"},
	}
	for _, p := range projects {
		urls = append(urls, sitemapURL{
			Loc:      BuildURL(base, "projects", p.Slug),
			Priority: "0.7",
		})
	}
	for _, p := range posts {
		u := sitemapURL{
			Loc:      BuildURL(base, "blog", p.Slug),
			Priority: "0.7",
		}
		// Dates are only pattern-checked; lastmod must be a real day.
		if _, err := time.Parse(time.DateOnly, p.Date); err == nil {
			u.LastMod = p.Date
		}
		urls = append(urls, u)
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	return writeXML(c, "application/xml; charset=utf-8", sitemap)
}
