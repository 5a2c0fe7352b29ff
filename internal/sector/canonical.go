// Package sector resolves freeform sector and folder labels to canonical
// sector names so stock, orders and listings aggregate under one key.
package sector

import "strings"

// maxAliasDepth bounds chained block aliases; a database whose aliases
// point back at themselves still resolves.
const maxAliasDepth = 8

// Canonicalizer resolves raw labels.  It is immutable once built and the
// result depends only on the label, the context and the tables it was
// built from.
type Canonicalizer struct {
	blocks *BlockIndex
	tiers  map[string][]TierRange
	rules  []Rule
}

// Option customises a Canonicalizer.
type Option func(*Canonicalizer)

// WithTierSchemes replaces DefaultTierSchemes.
func WithTierSchemes(schemes map[string][]TierRange) Option {
	return func(c *Canonicalizer) { c.tiers = schemes }
}

// WithRules replaces DefaultRules.
func WithRules(rules []Rule) Option {
	return func(c *Canonicalizer) { c.rules = rules }
}

// NewCanonicalizer builds a Canonicalizer over a venue block database.  A
// nil db is allowed.
func NewCanonicalizer(db BlockDB, opts ...Option) *Canonicalizer {
	c := &Canonicalizer{
		blocks: NewBlockIndex(db),
		tiers:  DefaultTierSchemes,
		rules:  DefaultRules,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Normalize lower-cases and trims a label and strips a leading "sector ".
func Normalize(raw string) string {
	norm := strings.ToLower(strings.TrimSpace(raw))
	if strings.HasPrefix(norm, "sector ") {
		norm = strings.TrimSpace(norm[len("sector "):])
	}
	return norm
}

// Canonicalize resolves raw within a venue context.  It never fails: a
// label no rule recognises comes back upper-cased.
func (c *Canonicalizer) Canonicalize(raw, context string) string {
	return c.resolve(raw, strings.ToLower(strings.TrimSpace(context)), 0)
}

// Func binds a context, for callers that canonicalize many labels of one
// event.
func (c *Canonicalizer) Func(context string) func(string) string {
	return func(raw string) string { return c.Canonicalize(raw, context) }
}

// Contexts lists the venue contexts the block database knows.
func (c *Canonicalizer) Contexts() []string { return c.blocks.Contexts() }

func (c *Canonicalizer) resolve(raw, context string, depth int) string {
	norm := Normalize(raw)

	if name, ok := MatchTier(c.tiers[context], norm); ok {
		return name
	}
	if norm == "extra" {
		return ExtraSector
	}
	if depth < maxAliasDepth {
		if target, ok := c.blocks.Lookup(context, raw); ok {
			return c.resolve(target, context, depth+1)
		}
	}
	for _, r := range c.rules {
		if r.Match(norm) {
			return r.Result
		}
	}
	return strings.ToUpper(raw)
}
