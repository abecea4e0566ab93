package rewrite

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// Site identifies the role of a URL-bearing attribute in a document.
type Site int

const (
	// Anchor is a[href].
	Anchor Site = iota
	// MediaSource is img[src] and script[src].
	MediaSource
	// StylesheetLink is link[href].
	StylesheetLink
	// FormAction is form[action].
	FormAction
)

func (s Site) String() string {
	switch s {
	case Anchor:
		return "anchor"
	case MediaSource:
		return "media_source"
	case StylesheetLink:
		return "stylesheet_link"
	case FormAction:
		return "form_action"
	}
	return "unknown"
}

// siteRule is the fixed attribute key and exclusion table for one element.
type siteRule struct {
	site Site
	attr string
	// excluded lists case-sensitive prefixes that leave the value verbatim.
	excluded []string
}

var siteRules = map[atom.Atom]siteRule{
	atom.A:      {site: Anchor, attr: "href", excluded: []string{"javascript:", "mailto:"}},
	atom.Img:    {site: MediaSource, attr: "src"},
	atom.Script: {site: MediaSource, attr: "src"},
	atom.Link:   {site: StylesheetLink, attr: "href"},
	atom.Form:   {site: FormAction, attr: "action"},
}

// siteSelector matches every element that carries a rewritable attribute.
const siteSelector = "a[href], img[src], script[src], link[href], form[action]"

func (r siteRule) isExcluded(value string) bool {
	for _, prefix := range r.excluded {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}
