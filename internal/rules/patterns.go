package rules

import (
	"fmt"
	"regexp"
	"strings"
)

// Wildcard is the token inside a pattern that matches zero or more
// whitespace characters. Everything else in a pattern is literal text.
const Wildcard = "%"

// delimiter joins the patterns of a category into a single stored string.
// It can never appear in legitimate pattern text because Normalize strips
// it from descriptions and DerivePattern only emits word characters.
const delimiter = "|"

// wordRe must not admit any character Normalize strips, or a derived
// pattern could never match its own description back. In particular no
// underscore: \w would keep it, Normalize drops it.
var (
	nonAlnumRe = regexp.MustCompile(`[^a-z0-9\s]`)
	wordRe     = regexp.MustCompile(`[a-zA-Z0-9]+`)
)

// Normalize prepares a description for matching: lowercase, keep only
// ascii letters, digits and whitespace.
func Normalize(description string) string {
	return nonAlnumRe.ReplaceAllString(strings.ToLower(description), "")
}

// CompilePattern turns a wildcard pattern into a case-insensitive regexp.
// All regexp metacharacters are escaped except the wildcard token, which
// becomes \s*.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	escaped := strings.ReplaceAll(regexp.QuoteMeta(pattern), Wildcard, `\s*`)
	re, err := regexp.Compile("(?i)" + escaped)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}
	return re, nil
}

// derivePrefixLen caps how much of a description feeds the derived pattern.
const derivePrefixLen = 60

// DerivePattern builds a pattern from a raw description: the first 60
// characters are tokenized into alphanumeric runs and every token is
// wrapped in wildcards, so the result matches the originating description
// again after normalization. Returns "" when the description has no tokens.
func DerivePattern(description string) string {
	if len(description) > derivePrefixLen {
		description = description[:derivePrefixLen]
	}
	tokens := wordRe.FindAllString(description, -1)
	if len(tokens) == 0 {
		return ""
	}
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(Wildcard)
		b.WriteString(tok)
		b.WriteString(Wildcard)
	}
	return b.String()
}

// PatternSet is an ordered set of wildcard patterns. Order is preserved
// because it is what the matcher walks; duplicates are rejected after
// lowercasing so matching (case-insensitive) and storage agree.
type PatternSet struct {
	items []string
}

// DecodePatternSet parses the stored delimiter-joined form.
func DecodePatternSet(encoded string) PatternSet {
	var ps PatternSet
	if encoded == "" {
		return ps
	}
	for _, p := range strings.Split(encoded, delimiter) {
		if p == "" {
			continue
		}
		_, _ = ps.Add(p)
	}
	return ps
}

// NewPatternSet builds a set from individual patterns, dropping duplicates.
func NewPatternSet(patterns ...string) (PatternSet, error) {
	var ps PatternSet
	for _, p := range patterns {
		if _, err := ps.Add(p); err != nil {
			return PatternSet{}, err
		}
	}
	return ps, nil
}

// Add appends a pattern unless an equivalent one is already present.
// It reports whether the set grew. Patterns containing the delimiter
// would corrupt the stored encoding and are rejected.
func (ps *PatternSet) Add(pattern string) (bool, error) {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	if pattern == "" {
		return false, fmt.Errorf("pattern must not be empty")
	}
	if strings.Contains(pattern, delimiter) {
		return false, fmt.Errorf("pattern %q contains reserved delimiter %q", pattern, delimiter)
	}
	if ps.Contains(pattern) {
		return false, nil
	}
	ps.items = append(ps.items, pattern)
	return true, nil
}

// Contains reports whether an equivalent pattern is already stored.
func (ps PatternSet) Contains(pattern string) bool {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	for _, p := range ps.items {
		if p == pattern {
			return true
		}
	}
	return false
}

// Items returns the patterns in storage order.
func (ps PatternSet) Items() []string {
	out := make([]string, len(ps.items))
	copy(out, ps.items)
	return out
}

// Len returns the number of stored patterns.
func (ps PatternSet) Len() int { return len(ps.items) }

// Encode renders the delimiter-joined storage form.
func (ps PatternSet) Encode() string {
	return strings.Join(ps.items, delimiter)
}

// LikeExprs renders a pattern as SQL LIKE "contains" expressions, one
// per literal fragment between wildcards. A description is a
// propagation candidate when it contains any fragment of the pattern:
// a row holding just "ALDI" is similar enough to surface for a pattern
// learned from "ALDI SUED 4812", and the human confirms the final list
// anyway. Fragments are escaped with backslash; callers must query
// with ESCAPE '\'.
func LikeExprs(pattern string) []string {
	var exprs []string
	for _, chunk := range strings.Split(pattern, Wildcard) {
		if chunk == "" {
			continue
		}
		chunk = strings.ReplaceAll(chunk, `\`, `\\`)
		chunk = strings.ReplaceAll(chunk, `_`, `\_`)
		exprs = append(exprs, "%"+chunk+"%")
	}
	return exprs
}
