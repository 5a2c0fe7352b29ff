// Package stock turns a folder of ticket PDFs into a sector / row / seat-run
// inventory.  Ticket files are expected to be named
// "<sector>-<row>-<seat>[-FV<price>].pdf"; hyphens and spaces both separate
// tokens.
package stock

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/iliyamo/ticket-stock-reconciler/internal/model"
)

// CurrencySuffix is appended to every face value read from a filename.
const CurrencySuffix = "€"

// ErrUnparsableFilename is returned for names with fewer than three tokens.
// Scans skip such files rather than fail.
var ErrUnparsableFilename = errors.New("unparsable ticket filename")

var (
	faceValueTailRe = regexp.MustCompile(`(?i)-FV.*`)
	tokenSepRe      = regexp.MustCompile(`[- ]`)
	// \d+ is greedy, so a match never stops in front of another digit.
	faceValueRe  = regexp.MustCompile(`(?i)FV(\d+(?:p\d+)?)`)
	seatNoiseRe  = regexp.MustCompile(`(?i)ticket|\.pdf|[^0-9A-Za-z]`)
	seatNumberRe = regexp.MustCompile(`(\d+)([A-Za-z]*)`)
)

// ParseSeatTriple extracts the sector, row and seat tokens from a filename.
// The sector is upper-cased; row and seat are returned verbatim.  ok is
// false when fewer than three tokens remain after dropping the FV tail.
func ParseSeatTriple(filename string) (sector, row, seat string, ok bool) {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = faceValueTailRe.ReplaceAllString(base, "")

	parts := make([]string, 0, 4)
	for _, p := range tokenSepRe.Split(base, -1) {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 3 {
		return "", "", "", false
	}
	return strings.ToUpper(parts[0]), parts[1], parts[2], true
}

// ParseFaceValue returns the price tagged in a filename ("FV45p00" gives
// "45.00€") or model.NoFaceValue.
func ParseFaceValue(filename string) string {
	m := faceValueRe.FindStringSubmatch(filename)
	if m == nil {
		return model.NoFaceValue
	}
	val := strings.NewReplacer("p", ".", "P", ".").Replace(m[1])
	return val + CurrencySuffix
}

// ParseSeatNumber splits a seat label into its number and letter suffix.
// Labels without digits come back as (0, label) so they still group by
// identity but never merge with numbered neighbours.
func ParseSeatNumber(seatRaw string) (int, string) {
	clean := seatNoiseRe.ReplaceAllString(seatRaw, "")
	m := seatNumberRe.FindStringSubmatch(clean)
	if m == nil {
		return 0, seatRaw
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, seatRaw
	}
	return n, m[2]
}

// ParseSeat builds the SeatToken for one ticket file.
func ParseSeat(filename string) (model.SeatToken, error) {
	sector, row, seatRaw, ok := ParseSeatTriple(filename)
	if !ok {
		return model.SeatToken{}, fmt.Errorf("%w: %s", ErrUnparsableFilename, filepath.Base(filename))
	}
	num, suffix := ParseSeatNumber(seatRaw)
	opaque := num == 0 && suffix == seatRaw
	raw := seatRaw
	if !opaque {
		raw = strconv.Itoa(num) + suffix
	}
	return model.SeatToken{
		Sector:     sector,
		Row:        row,
		SeatNumber: num,
		SeatSuffix: suffix,
		Raw:        raw,
		Opaque:     opaque,
	}, nil
}
