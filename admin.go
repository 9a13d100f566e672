package folio

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/folio/content"
)

// historyLimit is how many stored scans the dashboard lists.
const historyLimit = 20

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		a.loginLimiter.Reset(ip)
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(ip)
	a.Logger.Warn("admin login failed", zap.String("ip", ip))
	return Render(c, a.Views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

// revalidate drops the cached collections for tag, or for every kind when
// tag is "all". ok is false for unknown tags.
func (a *App) revalidate(tag string) (tags []string, entries int, ok bool) {
	tag = strings.TrimSpace(tag)
	if tag == "all" {
		for _, k := range content.Kinds {
			tags = append(tags, k.Tag())
			entries += a.Library.Invalidate(k.Tag())
		}
		return tags, entries, true
	}
	kind, ok := content.ParseKind(tag)
	if !ok {
		return nil, 0, false
	}
	return []string{kind.Tag()}, a.Library.Invalidate(kind.Tag()), true
}

func (a *App) handleAdminRevalidate(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	tags, _, ok := a.revalidate(c.FormValue("tag"))
	if !ok {
		return a.renderAdminDashboard(c, "unknown tag")
	}
	return a.renderAdminDashboard(c, "revalidated "+strings.Join(tags, ", "))
}

func (a *App) handleAdminScan(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	issues := 0
	for _, k := range content.Kinds {
		rep, err := a.Library.Scan(k)
		if err != nil {
			return err
		}
		issues += len(rep.Issues)
	}
	if issues == 0 {
		return a.renderAdminDashboard(c, "scan clean")
	}
	return a.renderAdminDashboard(c, "scan found issues")
}

type revalidateResponse struct {
	Revalidated bool     `json:"revalidated"`
	Tags        []string `json:"tags"`
	Entries     int      `json:"entries"`
	Now         int64    `json:"now"`
}

// handleRevalidate lets a publishing pipeline drop cached collections. It is
// disabled unless RevalidateToken is configured.
func (a *App) handleRevalidate(c echo.Context) error {
	if a.Config.RevalidateToken == "" {
		return echo.ErrNotFound
	}
	token := c.Request().Header.Get("X-Revalidate-Token")
	if subtle.ConstantTimeCompare([]byte(token), []byte(a.Config.RevalidateToken)) != 1 {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "invalid token"})
	}
	tags, entries, ok := a.revalidate(c.QueryParam("tag"))
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "unknown tag"})
	}
	return c.JSON(http.StatusOK, revalidateResponse{
		Revalidated: true,
		Tags:        tags,
		Entries:     entries,
		Now:         time.Now().UnixMilli(),
	})
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	history, err := a.Store.RecentScans(historyLimit)
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminDashboard(DashboardData{
		Site:      a.Config,
		Message:   msg,
		CSRFToken: CsrfToken(c),
		Live:      a.Library.Reports(),
		History:   history,
		Cache:     a.Library.Cache().Status(),
	}))
}
