package allocation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/iliyamo/ticket-stock-reconciler/internal/model"
)

// DemandRow is one line of the listing sheet: a raw sector label and the
// text typed in each platform column, e.g. "4+2".
type DemandRow struct {
	Sector string
	Cells  map[model.Platform]string
}

var quantityTokenRe = regexp.MustCompile(`\d+`)

// columnOrder is the order demands are emitted in: the listing columns,
// then the catch-all.
var columnOrder = append(append([]model.Platform{}, model.Platforms...), model.PlatformOther)

// ExplodeDemands turns every numeric token of every cell into one Demand.
// Demands are ordered by platform column, then row, then token.  Rows with
// a blank sector and zero tokens are dropped.  canon maps the raw sector
// to its canonical key; nil upper-cases it.
func ExplodeDemands(rows []DemandRow, canon func(string) string) []model.Demand {
	if canon == nil {
		canon = strings.ToUpper
	}
	sectors := make([]string, len(rows))
	for i, r := range rows {
		if s := strings.TrimSpace(r.Sector); s != "" {
			sectors[i] = canon(s)
		}
	}

	var out []model.Demand
	for _, p := range columnOrder {
		for i, r := range rows {
			if sectors[i] == "" {
				continue
			}
			for _, tok := range quantityTokenRe.FindAllString(r.Cells[p], -1) {
				q, err := strconv.Atoi(tok)
				if err != nil || q == 0 {
					continue
				}
				out = append(out, model.Demand{Platform: p, Sector: sectors[i], Quantity: q})
			}
		}
	}
	return out
}
