package allocation

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/iliyamo/ticket-stock-reconciler/internal/model"
)

// ErrUnknownPlatform is returned for a demand column that names no
// marketplace.
var ErrUnknownPlatform = errors.New("unknown platform column")

// Cell is the raw text of one platform column.  Bare numbers are accepted
// in YAML and JSON.
type Cell string

func (c *Cell) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*c = Cell(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("demand cell %s: want string or number", b)
	}
	*c = Cell(n.String())
	return nil
}

func (c *Cell) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: demand cell must be a scalar", n.Line)
	}
	*c = Cell(n.Value)
	return nil
}

// SheetRow is the serialized form of a DemandRow.
type SheetRow struct {
	Sector    string          `yaml:"sector" json:"sector"`
	Platforms map[string]Cell `yaml:"platforms" json:"platforms"`
}

// DemandSheet is the file and request body format of a listing sheet:
//
//	rows:
//	  - sector: Rosso
//	    platforms: {gogo: "4+2", net: 3}
type DemandSheet struct {
	Rows []SheetRow `yaml:"rows" json:"rows"`
}

// DemandRows resolves the platform column names.
func (s DemandSheet) DemandRows() ([]DemandRow, error) {
	out := make([]DemandRow, 0, len(s.Rows))
	for i, r := range s.Rows {
		row := DemandRow{Sector: r.Sector, Cells: make(map[model.Platform]string, len(r.Platforms))}
		names := make([]string, 0, len(r.Platforms))
		for name := range r.Platforms {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			cell := r.Platforms[name]
			p, ok := model.ParsePlatform(name)
			if !ok {
				return nil, fmt.Errorf("row %d: %w: %q", i+1, ErrUnknownPlatform, name)
			}
			if prev := row.Cells[p]; prev != "" {
				row.Cells[p] = prev + "+" + string(cell)
			} else {
				row.Cells[p] = string(cell)
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// ParseDemandSheet decodes a sheet.  format is a file extension; YAML for
// "yaml"/"yml", JSON with comments otherwise.
func ParseDemandSheet(data []byte, format string) ([]DemandRow, error) {
	var sheet DemandSheet
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &sheet); err != nil {
			return nil, fmt.Errorf("parse demand sheet: %w", err)
		}
	default:
		if err := json.Unmarshal(jsonc.ToJSON(data), &sheet); err != nil {
			return nil, fmt.Errorf("parse demand sheet: %w", err)
		}
	}
	return sheet.DemandRows()
}

// LoadDemandSheet reads a sheet from disk, picking the format from the
// file extension.
func LoadDemandSheet(path string) ([]DemandRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read demand sheet: %w", err)
	}
	return ParseDemandSheet(data, filepath.Ext(path))
}
