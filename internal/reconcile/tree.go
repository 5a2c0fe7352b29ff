package reconcile

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DeliveredDirHints are the substrings marking the delivered folder.
var DeliveredDirHints = []string{"caricati", "carricati", "caricatti", "sent", "delivered"}

// EventTitle walks up from dir past generic folder names ("tickets",
// "stock", or anything starting with "-") and returns the first real one.
func EventTitle(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	name := filepath.Base(dir)
	for isGenericName(name) {
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
		name = filepath.Base(dir)
	}
	return name
}

func isGenericName(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "tickets") || strings.Contains(lower, "stock") || strings.HasPrefix(name, "-")
}

func isDeliveredDir(name string) bool {
	lower := strings.ToLower(name)
	for _, h := range DeliveredDirHints {
		if strings.Contains(lower, h) {
			return true
		}
	}
	return false
}

func isIgnored(name string) bool {
	return strings.Contains(strings.ToUpper(name), "IGNORE")
}

// isStockDir matches folders named "-X", "X-" or "- X -" that are not
// marked as bought.
func isStockDir(name string) bool {
	return (strings.HasPrefix(name, "-") || strings.HasSuffix(name, "-")) &&
		!strings.Contains(strings.ToUpper(name), "BOUGHT")
}

// walkPDFs calls fn for every .pdf below dir, recursively.
func walkPDFs(dir string, fn func(path string)) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(d.Name()), ".pdf") {
			fn(path)
		}
		return nil
	})
}

func countPDFs(dir string) (int, error) {
	n := 0
	err := walkPDFs(dir, func(string) { n++ })
	return n, err
}

func subdirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, e.Name())
		}
	}
	return out, nil
}
