package overlay

import (
	"regexp"
	"strconv"
	"strings"
)

// Record is one parsed overlay measurement: a candidate lookup key and the
// numeric value registered under it.
type Record struct {
	Key   string
	Value float64
}

// Table maps candidate keys to measurement values. Each uploaded row is
// registered under every candidate spelling of its identifier, so matching
// an edge is a plain map lookup per edge candidate. Later rows overwrite
// earlier ones on key collision (last write wins).
type Table struct {
	values map[string]float64
	order  []string // key insertion order, for deterministic Records output
}

// Len returns the number of distinct candidate keys in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.values)
}

// Lookup returns the value registered under a candidate key.
func (t *Table) Lookup(key string) (float64, bool) {
	if t == nil {
		return 0, false
	}
	v, ok := t.values[key]
	return v, ok
}

// Records returns the deduplicated (key, value) pairs in first-insertion
// order.
func (t *Table) Records() []Record {
	if t == nil {
		return nil
	}
	out := make([]Record, 0, len(t.order))
	for _, k := range t.order {
		out = append(out, Record{Key: k, Value: t.values[k]})
	}
	return out
}

func (t *Table) put(key string, value float64) {
	if _, exists := t.values[key]; !exists {
		t.order = append(t.order, key)
	}
	t.values[key] = value
}

// Header detection classes. A first line is a header iff it has at least
// one identifier-like field and one value-like field; the same patterns
// pick the column indices.
var (
	headerIDPattern    = regexp.MustCompile(`(?i)id`)
	headerValuePattern = regexp.MustCompile(`(?i)(value|log2|fold|flux|fc|score)`)
)

// ParseTable parses free-form delimited overlay text into a lookup table.
//
// The format is forgiving by design, because measurement tables come from
// many spreadsheet exports:
//   - an optional UTF-8 byte-order mark is stripped
//   - lines may end in \n, \r\n or \r
//   - the delimiter is tab when the first line contains one, comma otherwise
//   - comma-delimited fields may be double-quoted RFC 4180 style, with ""
//     inside a quoted field meaning a literal quote
//   - the first line is treated as a header iff it contains an /id/i field
//     and a /(value|log2|fold|flux|fc|score)/i field; those matches also
//     select the identifier and value columns (defaults 0 and 1)
//   - numeric values may contain thousands-separator commas
//
// Rows with an empty identifier or an unparsable value are skipped
// individually; they never fail the whole parse. Each surviving row is
// registered under every candidate spelling from [ExpandCandidates]. An
// empty or header-only input yields an empty table.
func ParseTable(text string) *Table {
	text = strings.TrimPrefix(text, "\uFEFF")
	lines := splitLines(text)

	t := &Table{values: make(map[string]float64)}
	if len(lines) == 0 {
		return t
	}

	delim := byte(',')
	if strings.ContainsRune(lines[0], '\t') {
		delim = '\t'
	}

	idCol, valueCol := 0, 1
	start := 0
	header := splitFields(lines[0], delim)
	if i, v, ok := headerColumns(header); ok {
		idCol, valueCol = i, v
		start = 1
	}

	for _, line := range lines[start:] {
		fields := splitFields(line, delim)
		if idCol >= len(fields) || valueCol >= len(fields) {
			continue
		}
		id := strings.TrimSpace(fields[idCol])
		if id == "" {
			continue
		}
		value, ok := parseNumeric(fields[valueCol])
		if !ok {
			continue
		}
		for _, key := range ExpandCandidates(id) {
			t.put(key, value)
		}
	}
	return t
}

// splitLines splits on any newline convention and drops blank lines.
func splitLines(text string) []string {
	var out []string
	for _, line := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r'
	}) {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

// splitFields splits one logical line into fields. For the comma delimiter
// it honors RFC 4180 double-quote escaping; tab-delimited exports never
// quote in practice, so tabs split verbatim.
func splitFields(line string, delim byte) []string {
	if delim == '\t' {
		return strings.Split(line, "\t")
	}

	var fields []string
	var field strings.Builder
	inQuotes := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				field.WriteByte('"') // doubled quote inside a quoted field
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == delim && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteByte(c)
		}
	}
	fields = append(fields, field.String())
	return fields
}

// headerColumns reports whether the fields look like a header row and, if
// so, which columns carry the identifier and the value.
func headerColumns(fields []string) (idCol, valueCol int, ok bool) {
	idCol, valueCol = -1, -1
	for i, f := range fields {
		if idCol < 0 && headerIDPattern.MatchString(f) {
			idCol = i
		}
		if valueCol < 0 && headerValuePattern.MatchString(f) {
			valueCol = i
		}
	}
	if idCol < 0 || valueCol < 0 {
		return 0, 1, false
	}
	return idCol, valueCol, true
}

// parseNumeric parses a float after trimming whitespace, surrounding quotes
// and thousands-separator commas.
func parseNumeric(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
