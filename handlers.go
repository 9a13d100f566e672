package folio

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/markdown"
	"github.com/eringen/folio/palette"
)

const (
	homePosts     = 3
	homeProjects  = 3
	otherProjects = 5
	relatedPosts  = 3
)

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

func (a *App) page(title, description string, segments ...string) PageMeta {
	if title == "" {
		title = a.Config.Name
	} else {
		title += " - " + a.Config.Name
	}
	if description == "" {
		description = a.Config.Description
	}
	return PageMeta{
		Title:       title,
		Description: description,
		URL:         BuildURL(a.Config.URL, segments...),
		OGType:      "website",
	}
}

func (a *App) handleHome(c echo.Context) error {
	posts, err := a.Library.Posts()
	if err != nil {
		return err
	}
	projects, err := a.Library.Projects()
	if err != nil {
		return err
	}
	meta := a.page("", "")
	meta.JSONLD = WebsiteJsonLD(a.Config)
	return Render(c, a.Views.Home(HomeData{
		Site:     a.Config,
		Meta:     meta,
		Featured: FeaturedPosts(posts),
		Posts:    posts[:min(homePosts, len(posts))],
		Projects: projects[:min(homeProjects, len(projects))],
	}))
}

func (a *App) handleAbout(c echo.Context) error {
	return Render(c, a.Views.About(a.Config))
}

func (a *App) handleContact(c echo.Context) error {
	return Render(c, a.Views.Contact(a.Config))
}

func (a *App) handleBlog(c echo.Context) error {
	tag := c.QueryParam("tag")
	posts, err := a.Library.Posts()
	if err != nil {
		return err
	}
	data := BlogListData{
		Site:      a.Config,
		Meta:      a.page("Blog", "", "blog"),
		Posts:     FilterByTag(posts, tag),
		Tags:      TagsOf(posts),
		ActiveTag: normTag(tag),
	}
	if isHTMX(c) && c.QueryParam("partial") == "blog" {
		return Render(c, a.Views.BlogPartial(data))
	}
	return Render(c, a.Views.Blog(data))
}

func (a *App) handlePost(c echo.Context) error {
	slug := c.Param("slug")
	post, err := a.Library.Post(slug)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	body, err := markdown.Render(post.Body)
	if err != nil {
		return err
	}
	posts, err := a.Library.Posts()
	if err != nil {
		return err
	}
	prev, next := AdjacentPosts(posts, post.Slug)
	related := FilterRelatedPosts(post, posts)

	meta := a.page(post.Title, post.Excerpt, "blog", post.Slug)
	meta.OGType = "article"
	meta.JSONLD = BlogPostingJsonLD(post, a.Config)
	return Render(c, a.Views.Post(PostData{
		Site:    a.Config,
		Meta:    meta,
		Post:    post,
		Body:    body,
		Related: related[:min(relatedPosts, len(related))],
		Prev:    prev,
		Next:    next,
	}))
}

func (a *App) handleProjects(c echo.Context) error {
	category := c.QueryParam("category")
	projects, err := a.Library.Projects()
	if err != nil {
		return err
	}
	data := ProjectListData{
		Site:           a.Config,
		Meta:           a.page("Projects", "", "projects"),
		Projects:       FilterByCategory(projects, category),
		Categories:     CategoriesOf(projects),
		ActiveCategory: strings.TrimSpace(category),
	}
	if isHTMX(c) && c.QueryParam("partial") == "projects" {
		return Render(c, a.Views.ProjectsPartial(data))
	}
	return Render(c, a.Views.Projects(data))
}

func (a *App) handleProject(c echo.Context) error {
	slug := c.Param("slug")
	project, err := a.Library.Project(slug)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	body, err := markdown.Render(project.Body)
	if err != nil {
		return err
	}
	projects, err := a.Library.Projects()
	if err != nil {
		return err
	}

	var videos []VideoEmbed
	for _, v := range project.AllVideos() {
		videos = append(videos, VideoEmbed{
			Title:    v.Title,
			URL:      v.URL,
			EmbedURL: markdown.YouTubeEmbedURL(v.URL),
		})
	}

	meta := a.page(project.Title, project.Description, "projects", project.Slug)
	meta.OGType = "article"
	meta.JSONLD = ProjectJsonLD(project, a.Config)
	return Render(c, a.Views.Project(ProjectData{
		Site:    a.Config,
		Meta:    meta,
		Project: project,
		Body:    body,
		Videos:  videos,
		Others:  OtherProjects(projects, project.Slug, otherProjects),
	}))
}

func (a *App) handleSearch(c echo.Context) error {
	q := c.QueryParam("q")
	posts, err := a.Library.Posts()
	if err != nil {
		return err
	}
	projects, err := a.Library.Projects()
	if err != nil {
		return err
	}
	matches := palette.Filter(palette.Index(posts, projects), q)
	data := SearchData{
		Site:   a.Config,
		Meta:   a.page("Search", "", "search"),
		Query:  q,
		Groups: palette.Group(matches),
		Total:  len(matches),
	}
	// ?sel= keeps the highlighted entry across reloads and partial swaps.
	sel, _ := strconv.Atoi(c.QueryParam("sel"))
	if len(matches) > 0 {
		data.Selected = matches[palette.Move(0, sel, len(matches))].ID
	}
	if isHTMX(c) && c.QueryParam("partial") == "results" {
		return Render(c, a.Views.SearchPartial(data))
	}
	return Render(c, a.Views.Search(data))
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Library.Posts()
	if err != nil {
		return err
	}
	projects, err := a.Library.Projects()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts, projects)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Library.Posts()
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	var b strings.Builder
	b.WriteString("User-agent: *\nAllow: /\nDisallow: /admin/\n\n")
	b.WriteString("Sitemap: " + strings.TrimRight(a.Config.URL, "/") + "/sitemap.xml\n")
	return c.String(http.StatusOK, b.String())
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if (ok && he.Code == http.StatusNotFound) || errors.Is(err, content.ErrNotFound) {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Logger.Error("server error",
			zap.String("method", c.Request().Method),
			zap.String("uri", c.Request().RequestURI),
			zap.Error(err))
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
