package overlay

import "strings"

// Normalize reduces a raw identifier to its canonical lookup form: it
// lower-cases, trims, strips one pair of surrounding quotes, removes all
// internal whitespace and underscores, and drops a leading "rn:",
// "reaction:" or "reaction-" prefix.
//
// Normalize is total and deterministic; empty input yields empty output.
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			s = s[1 : len(s)-1]
		}
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '_':
			continue
		}
		b.WriteRune(r)
	}
	s = b.String()
	switch {
	case strings.HasPrefix(s, "rn:"):
		s = s[len("rn:"):]
	case strings.HasPrefix(s, "reaction:"):
		s = s[len("reaction:"):]
	case strings.HasPrefix(s, "reaction-"):
		s = s[len("reaction-"):]
	}
	return s
}

// ExpandCandidates produces the plausible variant spellings of an
// identifier: the normalized form, with and without a leading "rn:", with
// and without a leading bare "r" (the KEGG "R00200" vs "rn:R00200"
// convention), the upper-cased form, and the upper-cased form with "RN:"
// collapsed to "R".
//
// The result is deduplicated and in a fixed generation order, so lookups
// that take the first hit are reproducible. Every non-empty input yields at
// least one candidate; empty input yields none.
//
// ExpandCandidates is the single source of truth for "these two strings
// might name the same reaction": the table parser and the edge key
// generator both go through it, and a match is an intersection of the two
// candidate sets.
func ExpandCandidates(raw string) []string {
	n := Normalize(raw)
	if n == "" {
		return nil
	}

	// All variants derive from the normalized form. Normalize is idempotent,
	// so expanding a raw string and expanding its normalized form agree.
	upper := strings.ToUpper(n)

	seen := make(map[string]struct{}, 6)
	var out []string
	add := func(c string) {
		if c == "" {
			return
		}
		if _, dup := seen[c]; dup {
			return
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}

	add(n)
	add("rn:" + n)
	if strings.HasPrefix(n, "r") {
		add(strings.TrimPrefix(n, "r"))
	} else {
		add("r" + n)
	}
	add(upper)
	add(strings.Replace(upper, "RN:", "R", 1))
	return out
}
