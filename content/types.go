package content

// Defaults applied when optional metadata fields are absent.
const (
	DefaultAuthor   = "Muhammad Fauza"
	DefaultReadTime = "5 min read"
	DefaultGradient = "from-purple-500/20 to-blue-500/20"
)

// BlogMeta is the validated metadata block of a blog post.
type BlogMeta struct {
	Title    string   `yaml:"title" validate:"required"`
	Date     string   `yaml:"date" validate:"required,datestamp"`
	Excerpt  string   `yaml:"excerpt" validate:"required"`
	Author   string   `yaml:"author"`
	Tags     []string `yaml:"tags"`
	ReadTime string   `yaml:"readTime"`
	Category string   `yaml:"category"`
	Featured bool     `yaml:"featured"`
}

// BlogPost is a validated blog entry. Body is left unparsed.
type BlogPost struct {
	Slug string
	BlogMeta
	Body string
}

// Link returns the site-relative URL of the post.
func (p BlogPost) Link() string {
	return "/blog/" + p.Slug + "/"
}

// Video is one entry of a project's video list.
type Video struct {
	Title string `yaml:"title"`
	URL   string `yaml:"url" validate:"required,url"`
}

// ProjectMeta is the validated metadata block of a project.
type ProjectMeta struct {
	Title       string   `yaml:"title" validate:"required"`
	Category    string   `yaml:"category" validate:"required"`
	Description string   `yaml:"description" validate:"required"`
	Tech        []string `yaml:"tech" validate:"min=1"`
	Year        string   `yaml:"year" validate:"year"`
	Gradient    string   `yaml:"gradient"`
	GitHub      string   `yaml:"github" validate:"omitempty,url"`
	Demo        string   `yaml:"demo" validate:"omitempty,url"`
	Video       string   `yaml:"video" validate:"omitempty,url"`
	Videos      []Video  `yaml:"videos" validate:"omitempty,dive"`
}

// Project is a validated project entry. Body is left unparsed.
type Project struct {
	Slug string
	ProjectMeta
	Body string
}

// Link returns the site-relative URL of the project.
func (p Project) Link() string {
	return "/projects/" + p.Slug + "/"
}

// AllVideos returns the single video URL (if any) followed by the video list.
func (p Project) AllVideos() []Video {
	var out []Video
	if p.Video != "" {
		out = append(out, Video{Title: p.Title, URL: p.Video})
	}
	return append(out, p.Videos...)
}
