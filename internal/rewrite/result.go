package rewrite

import "errors"

// ErrExcludedScheme is the reason recorded for references whose scheme is
// on the site's exclusion list.
var ErrExcludedScheme = errors.New("excluded scheme")

// Outcome classifies what happened to a single reference.
type Outcome int

const (
	// Rewritten means the attribute now holds a proxy-internal URL.
	Rewritten Outcome = iota
	// Excluded means the value matched an exclusion prefix and was left as is.
	Excluded
	// Unresolvable means resolution failed and the value was left as is.
	Unresolvable
)

func (o Outcome) String() string {
	switch o {
	case Rewritten:
		return "rewritten"
	case Excluded:
		return "excluded"
	case Unresolvable:
		return "unresolvable"
	}
	return "unknown"
}

// Result records what the engine did with one reference.
type Result struct {
	Site     Site
	Attr     string
	Original string
	Outcome  Outcome
	// Value is the emitted proxy URL when Outcome is Rewritten.
	Value string
	// Reason is set when the reference was left unchanged.
	Reason error
}

// Changed reports whether the attribute value was replaced.
func (r Result) Changed() bool {
	return r.Outcome == Rewritten
}

// Report aggregates per-reference results in document order.
type Report struct {
	Results []Result
}

// Rewritten returns how many references were replaced.
func (r *Report) Rewritten() int {
	return r.count(Rewritten)
}

// LeftUnchanged returns how many references kept their original value.
func (r *Report) LeftUnchanged() int {
	return len(r.Results) - r.Rewritten()
}

func (r *Report) count(o Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == o {
			n++
		}
	}
	return n
}

func (r *Report) add(res Result) {
	r.Results = append(r.Results, res)
}
