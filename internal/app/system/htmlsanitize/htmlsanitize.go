// Package htmlsanitize cleans user-supplied hostel text before it is stored.
package htmlsanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	once   sync.Once
	strict *bluemonday.Policy
	rich   *bluemonday.Policy
)

func policies() (*bluemonday.Policy, *bluemonday.Policy) {
	once.Do(func() {
		strict = bluemonday.StrictPolicy()

		rich = bluemonday.NewPolicy()
		rich.AllowElements("p", "br", "strong", "em", "b", "i", "ul", "ol", "li")
	})
	return strict, rich
}

// Sanitize keeps basic paragraph and list formatting and drops everything
// else, including scripts and event handler attributes.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	_, p := policies()
	return strings.TrimSpace(p.Sanitize(s))
}

// PlainText strips every tag and returns the unescaped text content.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	p, _ := policies()
	return strings.TrimSpace(html.UnescapeString(p.Sanitize(s)))
}

// IsPlainText reports whether s contains no tag-like sequences.
func IsPlainText(s string) bool {
	i := strings.IndexByte(s, '<')
	return i < 0 || !strings.Contains(s[i:], ">")
}
