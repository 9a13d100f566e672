package content

// Kind identifies a content collection.
type Kind string

const (
	KindBlog     Kind = "blog"
	KindProjects Kind = "projects"
)

// Kinds lists every collection in a stable order.
var Kinds = []Kind{KindBlog, KindProjects}

// Dir returns the collection's directory name under the content root.
func (k Kind) Dir() string {
	return string(k)
}

// Tag returns the invalidation tag attached to cached scans of this kind.
func (k Kind) Tag() string {
	return string(k)
}

// ParseKind maps a tag or directory name back to a Kind.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}
