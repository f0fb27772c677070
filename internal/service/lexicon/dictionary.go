package lexicon

import (
	"github.com/sandevgo/redwan/internal/core"
	"github.com/sandevgo/redwan/pkg/textnorm"
)

// Dictionary is an immutable bilingual word table. Source terms are indexed
// by their normalized form with the last duplicate winning; targets are
// indexed the same way for reverse lookups.
type Dictionary struct {
	entries []core.LexiconEntry
	keys    []string
	bySrc   map[string]int
	byDst   map[string]int
}

func NewDictionary(entries []core.LexiconEntry) *Dictionary {
	d := &Dictionary{
		bySrc: make(map[string]int, len(entries)),
		byDst: make(map[string]int, len(entries)),
	}

	for _, e := range entries {
		src := textnorm.Normalize(e.Source)
		dst := textnorm.Normalize(e.Target)
		if src == "" || dst == "" {
			continue
		}

		if i, ok := d.bySrc[src]; ok {
			old := textnorm.Normalize(d.entries[i].Target)
			if d.byDst[old] == i {
				delete(d.byDst, old)
			}
			d.entries[i] = e
			d.byDst[dst] = i
			continue
		}

		d.bySrc[src] = len(d.entries)
		d.byDst[dst] = len(d.entries)
		d.entries = append(d.entries, e)
		d.keys = append(d.keys, src)
	}

	return d
}

// Len returns the number of distinct source terms.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

func (d *Dictionary) Entries() []core.LexiconEntry {
	if d == nil {
		return nil
	}
	out := make([]core.LexiconEntry, len(d.entries))
	copy(out, d.entries)
	return out
}

func (d *Dictionary) source(term string) (core.LexiconEntry, bool) {
	i, ok := d.bySrc[term]
	if !ok {
		return core.LexiconEntry{}, false
	}
	return d.entries[i], true
}

func (d *Dictionary) target(term string) (core.LexiconEntry, bool) {
	i, ok := d.byDst[term]
	if !ok {
		return core.LexiconEntry{}, false
	}
	return d.entries[i], true
}
