// Package rewrite re-points URL references in HTML documents at the proxy.
//
// The engine selects reference-bearing elements with goquery, resolves each
// value against the document's base URL and replaces it with the
// proxy-internal form. A reference that cannot be resolved is left untouched
// and never aborts the document.
package rewrite

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"webproxy-go/internal/proxyurl"
)

// ErrParse is returned when the document cannot be parsed as HTML at all.
var ErrParse = errors.New("parse html document")

// Context carries per-document rewrite state. One is built per request.
type Context struct {
	// BaseURL is the absolute URL the document was fetched from.
	BaseURL *url.URL
}

// Engine rewrites HTML documents. It holds no per-document state and is safe
// for concurrent use.
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates an Engine.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{logger: logger.With("component", "rewrite_engine")}
}

// Rewrite returns src with every eligible reference replaced by its
// proxy-internal URL, plus a report of what happened to each reference.
func (e *Engine) Rewrite(src string, rc Context) (string, *Report, error) {
	if rc.BaseURL == nil || !rc.BaseURL.IsAbs() {
		return "", nil, fmt.Errorf("rewrite: base URL must be absolute")
	}

	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	report := &Report{}
	doc := goquery.NewDocumentFromNode(root)
	doc.Find(siteSelector).Each(func(_ int, s *goquery.Selection) {
		rule, ok := siteRules[s.Get(0).DataAtom]
		if !ok {
			return
		}
		value, ok := s.Attr(rule.attr)
		if !ok {
			return
		}

		res := e.rewriteValue(rule, value, rc.BaseURL)
		if res.Changed() {
			s.SetAttr(rule.attr, res.Value)
		}
		report.add(res)
	})

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return "", nil, fmt.Errorf("render html document: %w", err)
	}

	e.logger.Debug("document rewritten",
		"base", rc.BaseURL.String(),
		"rewritten", report.Rewritten(),
		"unchanged", report.LeftUnchanged(),
	)

	return buf.String(), report, nil
}

// rewriteValue decides the fate of a single attribute value.
func (e *Engine) rewriteValue(rule siteRule, value string, base *url.URL) Result {
	res := Result{Site: rule.site, Attr: rule.attr, Original: value}

	if rule.isExcluded(value) {
		res.Outcome = Excluded
		res.Reason = ErrExcludedScheme
		return res
	}

	abs, err := proxyurl.Resolve(base, value)
	if err != nil {
		e.logger.Debug("reference left unchanged",
			"site", rule.site.String(),
			"value", value,
			"err", err,
		)
		res.Outcome = Unresolvable
		res.Reason = err
		return res
	}

	res.Outcome = Rewritten
	res.Value = proxyurl.Encode(abs)
	return res
}
