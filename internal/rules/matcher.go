package rules

import "regexp"

// Rule binds a category to its pattern set for matching purposes.
type Rule struct {
	CategoryID string
	Patterns   PatternSet
}

type compiledRule struct {
	categoryID string
	regexps    []*regexp.Regexp
}

// Matcher decides which category a description belongs to. Rules are
// walked in the order given and the first category with any matching
// pattern wins; callers pass categories in priority order, which makes
// that order load-bearing and deterministic rather than incidental.
type Matcher struct {
	rules []compiledRule
}

// NewMatcher compiles every pattern of every rule up front. Patterns
// that fail to compile are skipped; they can never match anyway and a
// single bad stored pattern should not disable a whole category.
func NewMatcher(rules []Rule) *Matcher {
	m := &Matcher{}
	for _, r := range rules {
		cr := compiledRule{categoryID: r.CategoryID}
		for _, p := range r.Patterns.Items() {
			re, err := CompilePattern(p)
			if err != nil {
				continue
			}
			cr.regexps = append(cr.regexps, re)
		}
		m.rules = append(m.rules, cr)
	}
	return m
}

// Match returns the first category whose pattern set matches the
// normalized description. An empty description never matches.
func (m *Matcher) Match(description string) (categoryID string, ok bool) {
	normalized := Normalize(description)
	if normalized == "" {
		return "", false
	}
	for _, r := range m.rules {
		for _, re := range r.regexps {
			if re.MatchString(normalized) {
				return r.categoryID, true
			}
		}
	}
	return "", false
}
