package locate

import (
	"regexp"
	"strings"
)

// valueFunc pulls a candidate out of the text that follows a label.
type valueFunc func(rest string) (string, bool)

// strategy is one way of finding a field: a label, the lines it must ignore,
// and how the value is read after the label.
type strategy struct {
	label *regexp.Regexp
	skip  *regexp.Regexp
	value valueFunc
	// nextLine lets the value sit on the following non-empty line when the
	// labelled line has nothing after the label.
	nextLine bool
}

// label compiles a case-insensitive label pattern.
func label(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + pattern)
}

// first runs strategies in order. Within a strategy the first matching line
// wins, so the order of the slice is the order of specificity.
func first(lines []string, strategies []strategy) string {
	for _, s := range strategies {
		if v, ok := s.find(lines); ok {
			return v
		}
	}

	return ""
}

func (s strategy) find(lines []string) (string, bool) {
	for i, line := range lines {
		if line == "" {
			continue
		}

		if s.skip != nil && s.skip.MatchString(line) {
			continue
		}

		loc := s.label.FindStringIndex(line)
		if loc == nil {
			continue
		}

		rest := line[loc[1]:]
		if v, ok := s.value(rest); ok {
			return v, true
		}

		if !s.nextLine || strings.Trim(rest, " :#.-") != "" {
			continue
		}

		if next := nextNonEmpty(lines, i); next != "" {
			if v, ok := s.value(next); ok {
				return v, true
			}
		}
	}

	return "", false
}

func nextNonEmpty(lines []string, i int) string {
	for _, l := range lines[i+1:] {
		if l != "" {
			return l
		}
	}

	return ""
}

// matchesAny reports whether any strategy label matches line.
func matchesAny(line string, groups ...[]strategy) bool {
	for _, group := range groups {
		for _, s := range group {
			if s.label.MatchString(line) {
				return true
			}
		}
	}

	return false
}
