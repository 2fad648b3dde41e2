package kgml

import "strings"

// knownCofactorIDs maps KEGG compound IDs of ubiquitous cofactors to their
// common names. Cofactors appear in most reactions and clutter the layout,
// so the translator flags them for optional filtering.
var knownCofactorIDs = map[string]string{
	"C00002": "ATP",
	"C00008": "ADP",
	"C00020": "AMP",
	"C00003": "NAD+",
	"C00004": "NADH",
	"C00005": "NADPH",
	"C00006": "NADP+",
	"C00007": "FAD",
	"C00001": "H2O",
	"C00009": "Phosphate",
}

// cofactorKeywords catches cofactors whose compound ID is not in the known
// list, matched case-insensitively against the entry name and label.
var cofactorKeywords = []string{
	"atp", "adp", "amp",
	"nadh", "nadph", "nadp", "nad",
	"fad", "coa", "co-a", "coenzyme",
	"h2o", "pi", "phosphate",
}

// isCofactor reports whether an entry looks like a common cofactor, by
// compound ID first and label keywords second.
func isCofactor(entryName, label string) bool {
	var normalizedID string
	if fields := strings.Fields(strings.TrimSpace(entryName)); len(fields) > 0 {
		normalizedID = strings.ToUpper(strings.Replace(fields[0], "cpd:", "", 1))
	}
	if _, ok := knownCofactorIDs[normalizedID]; ok {
		return true
	}
	lowerID := strings.ToLower(normalizedID)
	labelL := strings.ToLower(label)
	for _, k := range cofactorKeywords {
		if lowerID == k || strings.Contains(labelL, k) {
			return true
		}
	}
	return false
}
