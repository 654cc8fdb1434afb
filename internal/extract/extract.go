package extract

import (
	"strings"

	"voirank/internal/catalog"
	"voirank/internal/dataset"
)

// Extract returns the catalog entities mentioned by tags, in catalog order.
//
// Exact-match names are found only when equal to a whitespace-separated token
// of the joined tag string. A tag that itself contains spaces is split, so
// "ナツ 実況" matches ナツ just as the two tags ナツ and 実況 would. Every
// other name is found when it occurs anywhere in the joined string, so a name
// embedded in a longer tag (結月ゆかり誕生祭) still counts. Absent or empty tags
// yield nil.
func Extract(tags []string, c *catalog.Catalog) []string {
	if len(tags) == 0 || c == nil {
		return nil
	}
	return matchJoined(dataset.JoinTags(tags), c)
}

func matchJoined(joined string, c *catalog.Catalog) []string {
	if strings.TrimSpace(joined) == "" {
		return nil
	}
	tokens := make(map[string]struct{})
	for _, tok := range strings.Fields(joined) {
		tokens[tok] = struct{}{}
	}
	var found []string
	for _, name := range c.Names() {
		if c.IsExact(name) {
			if _, ok := tokens[name]; ok {
				found = append(found, name)
			}
			continue
		}
		if strings.Contains(joined, name) {
			found = append(found, name)
		}
	}
	return found
}

// Stats reports memoization effectiveness.
type Stats struct {
	Distinct int // distinct joined tag strings evaluated
	Served   int // lookups answered, including repeats
}

// Extractor memoizes Extract by joined tag string. Many records share an
// identical tag set, so each distinct string is matched against the catalog
// once. Results are shared between callers and must not be modified.
type Extractor struct {
	catalog *catalog.Catalog
	names   []string
	memo    map[string][]string
	served  int
}

// NewExtractor returns a memoizing extractor over c.
func NewExtractor(c *catalog.Catalog) *Extractor {
	return &Extractor{catalog: c, memo: make(map[string][]string)}
}

// Extract returns the entities for tags, evaluating each distinct joined tag
// string only once.
func (e *Extractor) Extract(tags []string) []string {
	e.served++
	if len(tags) == 0 {
		return nil
	}
	joined := dataset.JoinTags(tags)
	if found, ok := e.memo[joined]; ok {
		return found
	}
	found := matchJoined(joined, e.catalog)
	e.memo[joined] = found
	return found
}

// ExtractAll returns one entity set per record, aligned with records.
func (e *Extractor) ExtractAll(records []dataset.Record) [][]string {
	out := make([][]string, len(records))
	for i, r := range records {
		out[i] = e.Extract(r.Tags)
	}
	return out
}

// Stats returns the number of distinct evaluations and total lookups.
func (e *Extractor) Stats() Stats {
	return Stats{Distinct: len(e.memo), Served: e.served}
}
