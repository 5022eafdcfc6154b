package main

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// partPrefixRe matches a leading "Partie N" header that the source site
// concatenates onto the first topic of each part.
var partPrefixRe = regexp.MustCompile(`(?i)^partie\s*\d+\s*[:\-–—]*\s*`)

// Cleaner decides whether a raw scraped string is a genuine topic and
// normalizes its whitespace. Clean has no side effects and is deterministic
// for identical input.
type Cleaner struct {
	minLength         int
	stripPartPrefix   bool
	rejectPrefixes    []string
	rejectFragments   []string
	repeatedFragments []string
}

// NewCleaner builds a cleaner from the pipeline's reject rules. minLength is
// counted in runes, not bytes, so accented French text is measured fairly.
func NewCleaner(minLength int, rules PipelineSettings) *Cleaner {
	return &Cleaner{
		minLength:         minLength,
		stripPartPrefix:   rules.StripPartPrefix,
		rejectPrefixes:    rules.RejectPrefixes,
		rejectFragments:   rules.RejectFragments,
		repeatedFragments: rules.RepeatedFragments,
	}
}

// Clean normalizes raw and reports whether it is a usable topic. Content
// shorter than the minimum length (after normalization) or matching any
// configured boilerplate rule is rejected. Exactly minLength runes passes.
func (c *Cleaner) Clean(raw string) (string, bool) {
	content := strings.Join(strings.Fields(raw), " ")
	if c.stripPartPrefix {
		content = strings.TrimSpace(partPrefixRe.ReplaceAllString(content, ""))
	}

	if utf8.RuneCountInString(content) < c.minLength {
		return "", false
	}
	for _, prefix := range c.rejectPrefixes {
		if strings.HasPrefix(content, prefix) {
			return "", false
		}
	}
	for _, fragment := range c.rejectFragments {
		if strings.Contains(content, fragment) {
			return "", false
		}
	}
	// A site-section name appearing more than once means a run of
	// concatenated navigation headings, not a topic.
	for _, fragment := range c.repeatedFragments {
		if strings.Count(content, fragment) > 1 {
			return "", false
		}
	}

	return content, true
}
