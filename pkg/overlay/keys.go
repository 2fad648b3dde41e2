package overlay

import (
	"strings"

	"github.com/metpath/studio/pkg/pathway"
)

// CandidateKeys derives every plausible lookup key for a reaction edge from
// its redundant text attributes: the external reaction ID and name, the
// display label, the base label up to its "|" separator, the edge's own ID,
// and each token of the base label and reaction name. Tokenization matters
// because multi-word labels commonly embed the true reaction code as one
// token among several ("rn:R00200, rn:R00201" or "SdhA (succinate...)").
//
// Every source string runs through [ExpandCandidates], the same expansion
// the table parser applies, so a match is an intersection of identically
// constructed candidate sets. The result preserves generation order and is
// deduplicated; it always contains Normalize(edge.ReactionID) when the
// reaction ID is non-empty.
func CandidateKeys(e *pathway.Edge) []string {
	base := e.BaseLabel()
	sources := []string{
		e.ReactionID,
		e.ReactionName,
		e.Label,
		beforeSeparator(base),
		e.ID,
	}
	sources = append(sources, tokenize(base)...)
	sources = append(sources, tokenize(e.ReactionName)...)

	seen := make(map[string]struct{})
	var keys []string
	for _, src := range sources {
		for _, c := range ExpandCandidates(src) {
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			keys = append(keys, c)
		}
	}
	return keys
}

func beforeSeparator(s string) string {
	if i := strings.IndexByte(s, '|'); i >= 0 {
		return s[:i]
	}
	return s
}

// tokenize splits on newlines, "|", ",", ";", parentheses and runs of
// whitespace.
func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case '\n', '\r', '|', ',', ';', '(', ')':
			return true
		}
		return r == ' ' || r == '\t'
	})
}
