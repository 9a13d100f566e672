package palette

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/eringen/folio/content"
)

func sample() []Command {
	posts := []content.BlogPost{
		{Slug: "go-tips", BlogMeta: content.BlogMeta{Title: "Go Tips", Date: "2024-06-01"}},
	}
	projects := []content.Project{
		{Slug: "vision", ProjectMeta: content.ProjectMeta{Title: "Vision Pipeline", Category: "AI"}},
	}
	return Index(posts, projects)
}

func TestIndex(t *testing.T) {
	cmds := sample()
	if len(cmds) != len(Navigation)+2 {
		t.Fatalf("len = %d, want %d", len(cmds), len(Navigation)+2)
	}
	project := cmds[len(Navigation)]
	if project.Path != "/projects/vision/" || project.Category != CategoryProjects {
		t.Errorf("project command = %+v", project)
	}
	post := cmds[len(cmds)-1]
	if post.Path != "/blog/go-tips/" || post.Hint != "2024-06-01" {
		t.Errorf("post command = %+v", post)
	}
}

func TestFilter(t *testing.T) {
	cmds := sample()
	tests := []struct {
		q    string
		want []string
	}{
		{"", []string{"home", "projects", "blog", "about", "contact", "project:vision", "blog:go-tips"}},
		{"  ", []string{"home", "projects", "blog", "about", "contact", "project:vision", "blog:go-tips"}},
		{"HOME", []string{"home"}},
		{"navig", []string{"home", "projects", "blog", "about", "contact"}},
		{"vision", []string{"project:vision"}},
		{"blog", []string{"blog", "blog:go-tips"}},
		{"zzz", []string{}},
	}
	for _, tt := range tests {
		got := []string{}
		for _, c := range Filter(cmds, tt.q) {
			got = append(got, c.ID)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Filter(%q) mismatch (-want +got):\n%s", tt.q, diff)
		}
	}
}

func TestGroupKeepsFirstSeenOrder(t *testing.T) {
	cmds := []Command{
		{ID: "a", Category: "B"},
		{ID: "b", Category: "A"},
		{ID: "c", Category: "B"},
	}
	groups := Group(cmds)
	if len(groups) != 2 {
		t.Fatalf("len = %d, want 2", len(groups))
	}
	if groups[0].Category != "B" || len(groups[0].Commands) != 2 {
		t.Errorf("groups[0] = %+v", groups[0])
	}
	if groups[1].Category != "A" || groups[1].Commands[0].ID != "b" {
		t.Errorf("groups[1] = %+v", groups[1])
	}
	if Group(nil) != nil {
		t.Error("Group(nil) should be nil")
	}
}

func TestMove(t *testing.T) {
	tests := []struct {
		sel, delta, n, want int
	}{
		{0, 1, 3, 1},
		{2, 1, 3, 2},
		{0, -1, 3, 0},
		{1, -1, 3, 0},
		{5, 0, 3, 2},
		{0, 1, 0, 0},
	}
	for _, tt := range tests {
		if got := Move(tt.sel, tt.delta, tt.n); got != tt.want {
			t.Errorf("Move(%d, %d, %d) = %d, want %d", tt.sel, tt.delta, tt.n, got, tt.want)
		}
	}
}
