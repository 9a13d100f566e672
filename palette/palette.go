// Package palette builds the site-wide command palette: a flat list of
// navigation targets and content items that can be filtered and grouped.
package palette

import (
	"strings"

	"github.com/eringen/folio/content"
)

// Categories used by Index.
const (
	CategoryNavigation = "Navigation"
	CategoryProjects   = "Projects"
	CategoryBlog       = "Blog"
)

// Command is one selectable palette entry.
type Command struct {
	ID       string
	Label    string
	Path     string
	Category string
	Hint     string
}

// Section is a run of commands sharing a category.
type Section struct {
	Category string
	Commands []Command
}

// Navigation holds the fixed page commands.
var Navigation = []Command{
	{ID: "home", Label: "Home", Path: "/", Category: CategoryNavigation},
	{ID: "projects", Label: "Projects", Path: "/projects/", Category: CategoryNavigation},
	{ID: "blog", Label: "Blog", Path: "/blog/", Category: CategoryNavigation},
	{ID: "about", Label: "About", Path: "/about/", Category: CategoryNavigation},
	{ID: "contact", Label: "Contact", Path: "/contact/", Category: CategoryNavigation},
}

// Index returns the navigation commands followed by one command per project
// and per post, in the order given.
func Index(posts []content.BlogPost, projects []content.Project) []Command {
	cmds := make([]Command, 0, len(Navigation)+len(posts)+len(projects))
	cmds = append(cmds, Navigation...)
	for _, p := range projects {
		cmds = append(cmds, Command{
			ID:       "project:" + p.Slug,
			Label:    p.Title,
			Path:     p.Link(),
			Category: CategoryProjects,
			Hint:     p.Category,
		})
	}
	for _, p := range posts {
		cmds = append(cmds, Command{
			ID:       "blog:" + p.Slug,
			Label:    p.Title,
			Path:     p.Link(),
			Category: CategoryBlog,
			Hint:     p.Date,
		})
	}
	return cmds
}

// Filter keeps the commands whose label or category contains q, ignoring case.
// An empty query keeps everything.
func Filter(cmds []Command, q string) []Command {
	q = strings.ToLower(strings.TrimSpace(q))
	out := make([]Command, 0, len(cmds))
	for _, c := range cmds {
		if q == "" ||
			strings.Contains(strings.ToLower(c.Label), q) ||
			strings.Contains(strings.ToLower(c.Category), q) {
			out = append(out, c)
		}
	}
	return out
}

// Group buckets commands by category, keeping categories in first-seen order.
func Group(cmds []Command) []Section {
	var groups []Section
	index := make(map[string]int)
	for _, c := range cmds {
		i, ok := index[c.Category]
		if !ok {
			i = len(groups)
			index[c.Category] = i
			groups = append(groups, Section{Category: c.Category})
		}
		groups[i].Commands = append(groups[i].Commands, c)
	}
	return groups
}

// Move shifts a selection by delta within n entries, clamping at both ends.
func Move(sel, delta, n int) int {
	if n <= 0 {
		return 0
	}
	sel += delta
	if sel < 0 {
		return 0
	}
	if sel > n-1 {
		return n - 1
	}
	return sel
}
