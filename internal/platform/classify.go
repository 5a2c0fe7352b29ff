// Package platform recognises which marketplace an order folder belongs to
// and reads the sector, quantity and purchase status out of its name.
package platform

import (
	"regexp"
	"strings"

	"github.com/iliyamo/ticket-stock-reconciler/internal/model"
)

type nameRule struct {
	needle   string
	platform model.Platform
}

// Branded names first; "net" is short enough to hide inside other words so
// it comes late.
var nameRules = []nameRule{
	{"gogo", model.PlatformGogo},
	{"viagogo", model.PlatformGogo},
	{"stubhub", model.PlatformStubHub},
	{"ticombo", model.PlatformTicombo},
	{"tixstock", model.PlatformTixstock},
	{"net", model.PlatformNet},
	{"sport", model.PlatformSportsEvents},
}

type idRule struct {
	re       *regexp.Regexp
	platform model.Platform
}

// Order ID shapes: Gogo uses 9-10 digits (626946288), Tixstock 8 upper-case
// hex characters (BBC7F522), Net 7 digits (1539879).
var idRules = []idRule{
	{regexp.MustCompile(`\b\d{9,10}\b`), model.PlatformGogo},
	{regexp.MustCompile(`\b[A-F0-9]{8}\b`), model.PlatformTixstock},
	{regexp.MustCompile(`\b\d{7}\b`), model.PlatformNet},
}

// Classify resolves an order folder label to a platform.  It always
// returns a value; unrecognised labels give model.PlatformOther.
func Classify(label string) model.Platform {
	lower := strings.ToLower(label)
	for _, r := range nameRules {
		if strings.Contains(lower, r.needle) {
			return r.platform
		}
	}
	for _, r := range idRules {
		if r.re.MatchString(label) {
			return r.platform
		}
	}
	return model.PlatformOther
}
