package sector

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// ParseBlockDB decodes a block database.  YAML is used for the "yaml" and
// "yml" formats; anything else is read as JSON with comments and trailing
// commas allowed.
func ParseBlockDB(data []byte, format string) (BlockDB, error) {
	var db BlockDB
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &db); err != nil {
			return nil, fmt.Errorf("parsing block database: %w", err)
		}
	default:
		if err := json.Unmarshal(jsonc.ToJSON(data), &db); err != nil {
			return nil, fmt.Errorf("parsing block database: %w", err)
		}
	}
	return db, nil
}

// LoadBlockDB reads a block database file; the format follows the file
// extension.
func LoadBlockDB(path string) (BlockDB, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	db, err := ParseBlockDB(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return db, nil
}
