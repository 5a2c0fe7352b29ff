package platform

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/iliyamo/ticket-stock-reconciler/internal/model"
)

// OrderFolder is what an order folder's name says about the order.
//
// Fields:
//  Name     – folder name as found on disk.
//  Sector   – raw sector label, not yet canonicalized.
//  Quantity – declared "xN" quantity, else the PDF count, never below 1.
//  Declared – true when Quantity came from an "xN" token.
//  Status   – purchase status marker.
//  Platform – marketplace the order came from.
type OrderFolder struct {
	Name     string
	Sector   string
	Quantity int
	Declared bool
	Status   model.OrderStatus
	Platform model.Platform
}

var (
	quantityRe     = regexp.MustCompile(`(?i)x\s*(\d+)`)
	gogoSectorRe   = regexp.MustCompile(`^(.*?)\s+\d{9}`)
	netSectorRe    = regexp.MustCompile(`^(.*?)\s+\d{7}`)
	tixSectorRe    = regexp.MustCompile(`(?i)^(.*?)\s+[A-F0-9]{8}\b`)
	insideRe       = regexp.MustCompile(`(?i)inside\s+([A-Za-z0-9\s]+)`)
	platformNameRe = regexp.MustCompile(`(?i)Gogo|Net|Tixstock|StubHub|Ticombo`)
	statusNoiseRe  = regexp.MustCompile(`(?i)BOUGHT.*|need info`)
)

// ParseStatus reads the purchase marker of a folder name.
func ParseStatus(name string) model.OrderStatus {
	upper := strings.ToUpper(name)
	switch {
	case strings.Contains(upper, "BOUGHT WITH NAMES"):
		return model.StatusBoughtWithNames
	case strings.Contains(upper, "NEED INFO"):
		return model.StatusBoughtNeedInfo
	case strings.Contains(upper, "BOUGHT"):
		return model.StatusBought
	default:
		return model.StatusUnmarked
	}
}

// IsBought reports whether the folder is marked as purchased.
func IsBought(name string) bool {
	return strings.Contains(strings.ToUpper(name), "BOUGHT")
}

// ParseOrderFolder reads an order folder name.  pdfCount is used as the
// quantity when the name declares none.
func ParseOrderFolder(name string, pdfCount int) OrderFolder {
	of := OrderFolder{
		Name:     name,
		Status:   ParseStatus(name),
		Platform: Classify(name),
	}

	qm := quantityRe.FindStringSubmatchIndex(name)
	if qm != nil {
		of.Quantity, _ = strconv.Atoi(name[qm[2]:qm[3]])
		of.Declared = true
	} else {
		of.Quantity = pdfCount
	}
	if of.Quantity == 0 {
		of.Quantity = 1
	}

	sector := name
	switch {
	case gogoSectorRe.MatchString(name):
		sector = gogoSectorRe.FindStringSubmatch(name)[1]
	case netSectorRe.MatchString(name):
		sector = netSectorRe.FindStringSubmatch(name)[1]
	case tixSectorRe.MatchString(name):
		sector = tixSectorRe.FindStringSubmatch(name)[1]
	case qm != nil && qm[0] > 0:
		sector = name[:qm[0]]
	}
	if m := insideRe.FindStringSubmatch(name); m != nil {
		sector = m[1]
	}
	of.Sector = cleanSector(sector)
	return of
}

func cleanSector(s string) string {
	s = strings.TrimSpace(s)
	s = platformNameRe.ReplaceAllString(s, "")
	s = statusNoiseRe.ReplaceAllString(s, "")
	if strings.HasSuffix(strings.ToUpper(s), " ID-") {
		s = s[:len(s)-4]
	}
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "-")
	return strings.TrimSpace(s)
}
