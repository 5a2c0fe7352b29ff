package sector

import (
	"strconv"
	"strings"
)

// Rule maps any normalized label accepted by Match onto Result.  Rules are
// evaluated top to bottom and the first match wins.
type Rule struct {
	Name   string
	Match  func(norm string) bool
	Result string
}

// TierRange assigns the block numbers Low..High (inclusive) to a tier.
type TierRange struct {
	Low, High int
	Name      string
}

// ExtraSector is where the literal label "extra" always lands.
const ExtraSector = "CURVA"

// sanSiroTiers is the colour ring numbering of San Siro.  Order matters:
// 170-172 belong to PRIMO ROSSO even though the orange range covers them.
var sanSiroTiers = []TierRange{
	{26, 36, "PRIMO ROSSO"},
	{170, 172, "PRIMO ROSSO"},
	{221, 238, "SECONDO ROSSO"},
	{319, 342, "TERZO ROSSO"},
	{101, 112, "PRIMO BLU"},
	{201, 218, "SECONDO BLU"},
	{301, 318, "TERZO BLU"},
	{137, 148, "PRIMO VERDE"},
	{239, 254, "SECONDO VERDE"},
	{343, 360, "TERZO VERDE"},
	{149, 172, "PRIMO ARANCIO"},
	{255, 276, "SECONDO ARANCIO"},
}

// DefaultTierSchemes holds the venues whose blocks are tiered by number.
var DefaultTierSchemes = map[string][]TierRange{
	"inter": sanSiroTiers,
	"milan": sanSiroTiers,
}

// MatchTier tests a normalized label against a tier scheme.  Labels that
// are not plain integers never match.
func MatchTier(scheme []TierRange, norm string) (string, bool) {
	if len(scheme) == 0 {
		return "", false
	}
	n, err := strconv.Atoi(norm)
	if err != nil {
		return "", false
	}
	for _, r := range scheme {
		if n >= r.Low && n <= r.High {
			return r.Name, true
		}
	}
	return "", false
}

func anyOf(subs ...string) func(string) bool {
	return func(norm string) bool {
		for _, s := range subs {
			if strings.Contains(norm, s) {
				return true
			}
		}
		return false
	}
}

func allOf(subs ...string) func(string) bool {
	return func(norm string) bool {
		for _, s := range subs {
			if !strings.Contains(norm, s) {
				return false
			}
		}
		return true
	}
}

func either(preds ...func(string) bool) func(string) bool {
	return func(norm string) bool {
		for _, p := range preds {
			if p(norm) {
				return true
			}
		}
		return false
	}
}

// DefaultRules is the vocabulary shared by most venues and marketplaces.
var DefaultRules = []Rule{
	{
		Name: "first tier central",
		Match: either(
			anyOf("long side lower", "1 tier central"),
			allOf("primo", "rosso"),
			allOf("primo", "arancio"),
		),
		Result: "1st TIER CENTRAL",
	},
	{
		Name:   "third ring red",
		Match:  anyOf("terzo rosso", "terzo anello rosso", "long side upper", "long side", "category 1", "anello rosso"),
		Result: "TERZO ROSSO",
	},
	{
		Name:   "curve",
		Match:  anyOf("curva", "short side"),
		Result: "CURVA",
	},
	{
		Name:   "corners",
		Match:  anyOf("distinti", "corner area"),
		Result: "DISTINTI",
	},
	{
		Name:   "tevere central",
		Match:  either(allOf("tevere", "central"), anyOf("tevere central stand")),
		Result: "TRIBUNA TEVERE CENTRAL",
	},
	{
		Name:   "monte mario",
		Match:  anyOf("monte mario"),
		Result: "MONTE MARIO TOP STAND",
	},
}
