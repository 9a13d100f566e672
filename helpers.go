package folio

import (
	"encoding/json"
	"net/url"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/eringen/folio/content"
)

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

func normTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}

// FilterRelatedPosts finds posts that share at least one tag with current.
func FilterRelatedPosts(current content.BlogPost, posts []content.BlogPost) []content.BlogPost {
	tagSet := make(map[string]struct{})
	for _, t := range current.Tags {
		if tag := normTag(t); tag != "" {
			tagSet[tag] = struct{}{}
		}
	}
	var related []content.BlogPost
	for _, p := range posts {
		if p.Slug == current.Slug {
			continue
		}
		for _, t := range p.Tags {
			if _, ok := tagSet[normTag(t)]; ok {
				related = append(related, p)
				break
			}
		}
	}
	return related
}

// FilterByTag keeps posts carrying tag, compared case-insensitively.
// An empty tag keeps everything.
func FilterByTag(posts []content.BlogPost, tag string) []content.BlogPost {
	tag = normTag(tag)
	if tag == "" {
		return posts
	}
	var out []content.BlogPost
	for _, p := range posts {
		for _, t := range p.Tags {
			if normTag(t) == tag {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// TagsOf returns the sorted, deduplicated lowercase tags of posts.
func TagsOf(posts []content.BlogPost) []string {
	set := make(map[string]struct{})
	for _, p := range posts {
		for _, t := range p.Tags {
			if tag := normTag(t); tag != "" {
				set[tag] = struct{}{}
			}
		}
	}
	return sortedKeys(set)
}

// FeaturedPosts returns the posts marked featured, in collection order.
func FeaturedPosts(posts []content.BlogPost) []content.BlogPost {
	var out []content.BlogPost
	for _, p := range posts {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// AdjacentPosts returns the posts before and after slug in posts, which is
// ordered newest first: prev is the older neighbour, next the newer one.
func AdjacentPosts(posts []content.BlogPost, slug string) (prev, next *content.BlogPost) {
	for i := range posts {
		if posts[i].Slug != slug {
			continue
		}
		if i+1 < len(posts) {
			prev = &posts[i+1]
		}
		if i > 0 {
			next = &posts[i-1]
		}
		break
	}
	return prev, next
}

// FilterByCategory keeps projects in category, compared case-insensitively.
// An empty category keeps everything.
func FilterByCategory(projects []content.Project, category string) []content.Project {
	category = normTag(category)
	if category == "" {
		return projects
	}
	var out []content.Project
	for _, p := range projects {
		if normTag(p.Category) == category {
			out = append(out, p)
		}
	}
	return out
}

// CategoriesOf returns the sorted, deduplicated categories of projects.
func CategoriesOf(projects []content.Project) []string {
	seen := make(map[string]struct{})
	for _, p := range projects {
		if c := strings.TrimSpace(p.Category); c != "" {
			seen[c] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// OtherProjects returns up to limit projects other than slug.
func OtherProjects(projects []content.Project, slug string, limit int) []content.Project {
	var out []content.Project
	for _, p := range projects {
		if p.Slug == slug {
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, p)
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// FormatDate renders a YYYY-MM-DD date as "January 2, 2006". Dates that
// match the pattern but are not real calendar days are returned unchanged.
func FormatDate(date string) string {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}
	return t.Format("January 2, 2006")
}

// JoinTags joins tags with ", ".
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// PathEscape escapes a string for use in a URL path.
func PathEscape(s string) string {
	return url.PathEscape(s)
}

func person(cfg SiteConfig) map[string]interface{} {
	p := map[string]interface{}{
		"@type": "Person",
		"name":  cfg.Author,
	}
	if cfg.Role != "" {
		p["jobTitle"] = cfg.Role
	}
	var sameAs []string
	for _, u := range []string{cfg.GitHub, cfg.LinkedIn} {
		if u != "" {
			sameAs = append(sameAs, u)
		}
	}
	if len(sameAs) > 0 {
		p["sameAs"] = sameAs
	}
	return p
}

func marshalLD(data map[string]interface{}) string {
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// WebsiteJsonLD returns a JSON-LD string for a WebSite schema using SiteConfig.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        cfg.Name,
		"url":         BuildURL(cfg.URL),
		"description": cfg.Description,
	}
	if cfg.Author != "" {
		data["author"] = person(cfg)
	}
	return marshalLD(data)
}

// PersonJsonLD returns a JSON-LD string describing the site owner.
func PersonJsonLD(cfg SiteConfig) string {
	data := person(cfg)
	data["@context"] = "https://schema.org"
	data["url"] = BuildURL(cfg.URL)
	if cfg.Email != "" {
		data["email"] = cfg.Email
	}
	return marshalLD(data)
}

// BlogPostingJsonLD returns a JSON-LD string for a BlogPosting schema.
func BlogPostingJsonLD(post content.BlogPost, cfg SiteConfig) string {
	postURL := BuildURL(cfg.URL, "blog", post.Slug)
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      post.Title,
		"description":   post.Excerpt,
		"datePublished": post.Date,
		"url":           postURL,
		"author": map[string]string{
			"@type": "Person",
			"name":  post.Author,
		},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if cfg.Name != "" {
		data["publisher"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Name,
		}
	}
	if len(post.Tags) > 0 {
		data["keywords"] = strings.Join(post.Tags, ", ")
	}
	return marshalLD(data)
}

// ProjectJsonLD returns a JSON-LD string for a CreativeWork schema.
func ProjectJsonLD(p content.Project, cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "CreativeWork",
		"name":        p.Title,
		"description": p.Description,
		"dateCreated": p.Year,
		"genre":       p.Category,
		"url":         BuildURL(cfg.URL, "projects", p.Slug),
		"creator":     person(cfg),
	}
	if len(p.Tech) > 0 {
		data["keywords"] = strings.Join(p.Tech, ", ")
	}
	if p.GitHub != "" {
		data["sameAs"] = p.GitHub
	}
	return marshalLD(data)
}
