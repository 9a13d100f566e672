package content

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	yearPattern = regexp.MustCompile(`^\d{4}$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	must := func(tag string, re *regexp.Regexp) {
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return re.MatchString(fl.Field().String())
		}); err != nil {
			panic(err)
		}
	}
	must("datestamp", datePattern)
	must("year", yearPattern)
	return v
}

// Violation is a single failed metadata rule.
type Violation struct {
	Field   string
	Message string
}

func (v Violation) String() string {
	return v.Field + ": " + v.Message
}

// Violations collects every rule a metadata block failed.
type Violations []Violation

func (vs Violations) Error() string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return "invalid metadata: " + strings.Join(parts, "; ")
}

// Has reports whether field (or an element of it) already has a violation.
func (vs Violations) Has(field string) bool {
	for _, v := range vs {
		if v.Field == field || strings.HasPrefix(v.Field, field+"[") || strings.HasPrefix(v.Field, field+".") {
			return true
		}
	}
	return false
}

// ValidateBlog turns raw metadata fields into a BlogMeta, applying defaults.
func ValidateBlog(fields map[string]any) (BlogMeta, error) {
	d := decoder{fields: fields}
	meta := BlogMeta{
		Title:    d.str("title"),
		Date:     d.scalar("date"),
		Excerpt:  d.str("excerpt"),
		Author:   d.strOr("author", DefaultAuthor),
		Tags:     d.strList("tags"),
		ReadTime: d.strOr("readTime", DefaultReadTime),
		Category: d.str("category"),
		Featured: d.boolean("featured"),
	}
	if meta.Tags == nil {
		meta.Tags = []string{}
	}
	if err := d.check(meta); err != nil {
		return BlogMeta{}, err
	}
	return meta, nil
}

// ValidateProject turns raw metadata fields into a ProjectMeta, applying defaults.
func ValidateProject(fields map[string]any) (ProjectMeta, error) {
	d := decoder{fields: fields}
	meta := ProjectMeta{
		Title:       d.str("title"),
		Category:    d.str("category"),
		Description: d.str("description"),
		Tech:        d.strList("tech"),
		Year:        d.scalar("year"),
		Gradient:    d.strOr("gradient", DefaultGradient),
		GitHub:      d.url("github"),
		Demo:        d.url("demo"),
		Video:       d.url("video"),
		Videos:      d.videos("videos"),
	}
	if meta.Tech == nil && !d.violations.Has("tech") {
		d.add("tech", "is required")
	}
	if err := d.check(meta); err != nil {
		return ProjectMeta{}, err
	}
	return meta, nil
}

// decoder coerces untyped metadata values, recording type violations.
type decoder struct {
	fields     map[string]any
	violations Violations
}

func (d *decoder) add(field, msg string) {
	d.violations = append(d.violations, Violation{Field: field, Message: msg})
}

func (d *decoder) lookup(key string) (any, bool) {
	v, ok := d.fields[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (d *decoder) str(key string) string {
	v, ok := d.lookup(key)
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		d.add(key, fmt.Sprintf("expected string, got %T", v))
		return ""
	}
	return s
}

// strOr treats an explicit null the same as an absent key.
func (d *decoder) strOr(key, fallback string) string {
	if _, ok := d.lookup(key); !ok {
		return fallback
	}
	return d.str(key)
}

// url decodes an optional link. Once present it must not be empty.
func (d *decoder) url(key string) string {
	if _, ok := d.lookup(key); !ok {
		return ""
	}
	s := d.str(key)
	if s == "" && !d.violations.Has(key) {
		d.add(key, "must be a valid URL")
	}
	return s
}

// scalar accepts strings plus unquoted YAML integers and dates.
func (d *decoder) scalar(key string) string {
	v, ok := d.lookup(key)
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case uint64:
		return strconv.FormatUint(s, 10)
	case time.Time:
		return s.Format(time.DateOnly)
	default:
		d.add(key, fmt.Sprintf("expected string, got %T", v))
		return ""
	}
}

func (d *decoder) boolean(key string) bool {
	v, ok := d.lookup(key)
	if !ok {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		d.add(key, fmt.Sprintf("expected boolean, got %T", v))
	}
	return b
}

func (d *decoder) list(key string) ([]any, bool) {
	v, ok := d.lookup(key)
	if !ok {
		return nil, false
	}
	items, ok := v.([]any)
	if !ok {
		d.add(key, fmt.Sprintf("expected list, got %T", v))
		return nil, false
	}
	return items, true
}

func (d *decoder) strList(key string) []string {
	items, ok := d.list(key)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			d.add(fmt.Sprintf("%s[%d]", key, i), fmt.Sprintf("expected string, got %T", item))
			continue
		}
		out = append(out, s)
	}
	return out
}

func (d *decoder) videos(key string) []Video {
	items, ok := d.list(key)
	if !ok {
		return nil
	}
	out := make([]Video, 0, len(items))
	for i, item := range items {
		field := fmt.Sprintf("%s[%d]", key, i)
		m, ok := asMap(item)
		if !ok {
			d.add(field, fmt.Sprintf("expected object, got %T", item))
			continue
		}
		sub := decoder{fields: m}
		title, hasTitle := sub.lookup("title")
		if !hasTitle {
			sub.add("title", "is required")
		} else if _, ok := title.(string); !ok {
			sub.add("title", fmt.Sprintf("expected string, got %T", title))
		}
		v := Video{URL: sub.str("url")}
		if s, ok := title.(string); ok {
			v.Title = s
		}
		for _, sv := range sub.violations {
			d.add(field+"."+sv.Field, sv.Message)
		}
		out = append(out, v)
	}
	return out
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	}
	return nil, false
}

// check runs the struct rules and merges them with decode violations.
func (d *decoder) check(meta any) error {
	if err := validate.Struct(meta); err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		for _, fe := range errs {
			field := fieldPath(fe)
			if d.violations.Has(field) {
				continue
			}
			d.add(field, message(fe))
		}
	}
	if len(d.violations) > 0 {
		return d.violations
	}
	return nil
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "datestamp":
		return "must be in YYYY-MM-DD format"
	case "year":
		return "must be 4 digits"
	case "min":
		return "must contain at least " + fe.Param() + " item(s)"
	case "url":
		return "must be a valid URL"
	default:
		return "failed " + fe.Tag() + " rule"
	}
}
