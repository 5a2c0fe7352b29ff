package model

import (
	"fmt"
	"strings"
)

// Platform identifies the marketplace an order or a listing belongs to.
type Platform uint8

const (
	PlatformOther Platform = iota
	PlatformGogo
	PlatformStubHub
	PlatformTicombo
	PlatformTixstock
	PlatformNet
	PlatformSportsEvents
)

// Platforms lists every known marketplace in demand-column order.  The
// first three are the columns of the listing sheet.
var Platforms = []Platform{
	PlatformGogo,
	PlatformNet,
	PlatformTixstock,
	PlatformStubHub,
	PlatformTicombo,
	PlatformSportsEvents,
}

func (p Platform) String() string {
	switch p {
	case PlatformGogo:
		return "Gogo"
	case PlatformStubHub:
		return "StubHub"
	case PlatformTicombo:
		return "Ticombo"
	case PlatformTixstock:
		return "Tixstock"
	case PlatformNet:
		return "Net"
	case PlatformSportsEvents:
		return "SportsEvents"
	default:
		return "Private/Other"
	}
}

// MarshalText makes Platform render by name in JSON and YAML.
func (p Platform) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

var platformNames = map[string]Platform{
	"gogo":          PlatformGogo,
	"viagogo":       PlatformGogo,
	"stubhub":       PlatformStubHub,
	"ticombo":       PlatformTicombo,
	"tix":           PlatformTixstock,
	"tixstock":      PlatformTixstock,
	"net":           PlatformNet,
	"sportsevents":  PlatformSportsEvents,
	"sports events": PlatformSportsEvents,
	"other":         PlatformOther,
	"private/other": PlatformOther,
}

// ParsePlatform resolves a column or platform name.  Unlike the folder
// classifier it only accepts whole names.
func ParsePlatform(name string) (Platform, bool) {
	p, ok := platformNames[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// UnmarshalText accepts any name ParsePlatform knows.
func (p *Platform) UnmarshalText(b []byte) error {
	v, ok := ParsePlatform(string(b))
	if !ok {
		return fmt.Errorf("unknown platform %q", b)
	}
	*p = v
	return nil
}

// OrderStatus is the purchase state encoded in an order folder name.
type OrderStatus uint8

const (
	StatusUnmarked OrderStatus = iota
	StatusBought
	StatusBoughtNeedInfo
	StatusBoughtWithNames
)

func (s OrderStatus) String() string {
	switch s {
	case StatusBought:
		return "Bought"
	case StatusBoughtNeedInfo:
		return "Bought need info"
	case StatusBoughtWithNames:
		return "Bought with names"
	default:
		return "empty folder"
	}
}

// Label is the parenthesised form used in the platform summary.
func (s OrderStatus) Label() string {
	return "(" + s.String() + ")"
}

// MarshalText makes OrderStatus render by name in JSON.
func (s OrderStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText reverses MarshalText.
func (s *OrderStatus) UnmarshalText(b []byte) error {
	for _, v := range []OrderStatus{StatusUnmarked, StatusBought, StatusBoughtNeedInfo, StatusBoughtWithNames} {
		if strings.EqualFold(v.String(), string(b)) {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("unknown order status %q", b)
}
