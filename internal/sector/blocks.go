package sector

import (
	"regexp"
	"sort"
	"strings"
)

// BlockDB is the venue block database: context -> canonical sector ->
// block aliases.  It is loaded once and never modified.
type BlockDB map[string]map[string][]string

type blockAlias struct {
	sector string
	alias  string
	re     *regexp.Regexp
}

// BlockIndex is a BlockDB compiled into ordered whole-word matchers.
// Sectors are tried in name order and aliases in file order.
type BlockIndex struct {
	contexts map[string][]blockAlias
}

// NewBlockIndex compiles db.  Context keys are lower-cased; blank aliases
// are ignored because they would match every label.
func NewBlockIndex(db BlockDB) *BlockIndex {
	ix := &BlockIndex{contexts: map[string][]blockAlias{}}
	for ctx, sectors := range db {
		key := strings.ToLower(strings.TrimSpace(ctx))
		names := make([]string, 0, len(sectors))
		for name := range sectors {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			for _, alias := range sectors[name] {
				if strings.TrimSpace(alias) == "" {
					continue
				}
				ix.contexts[key] = append(ix.contexts[key], blockAlias{
					sector: name,
					alias:  alias,
					re:     regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(alias) + `\b`),
				})
			}
		}
	}
	for key, aliases := range ix.contexts {
		sort.SliceStable(aliases, func(i, j int) bool { return aliases[i].sector < aliases[j].sector })
		ix.contexts[key] = aliases
	}
	return ix
}

// Lookup returns the canonical sector whose alias occurs as a whole word in
// raw, for the given (lower-cased) context.
func (ix *BlockIndex) Lookup(context, raw string) (string, bool) {
	if ix == nil {
		return "", false
	}
	for _, a := range ix.contexts[context] {
		if a.re.MatchString(raw) {
			return a.sector, true
		}
	}
	return "", false
}

// Has reports whether any aliases are loaded for context.
func (ix *BlockIndex) Has(context string) bool {
	return ix != nil && len(ix.contexts[context]) > 0
}

// Contexts lists the loaded contexts in order.
func (ix *BlockIndex) Contexts() []string {
	if ix == nil {
		return nil
	}
	out := make([]string, 0, len(ix.contexts))
	for k := range ix.contexts {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
