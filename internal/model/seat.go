package model

// SeatToken is one ticket file reduced to its seat coordinates.  It is
// derived once per filename and never modified afterwards.
//
// Fields:
//  Sector     – sector token, upper-cased.
//  Row        – row label exactly as written in the filename.
//  SeatNumber – numeric part of the seat label; 0 when the label has no digits.
//  SeatSuffix – trailing letters of the seat label ("B" in "12B").  When the
//               label has no digits the whole label is stored here so the
//               seat still groups by identity.
//  Raw        – seat label used for display.
//  Opaque     – the label has no digits; such a seat forms a group of its own.
type SeatToken struct {
	Sector     string `json:"sector"`
	Row        string `json:"row"`
	SeatNumber int    `json:"seat_number"`
	SeatSuffix string `json:"seat_suffix,omitempty"`
	Raw        string `json:"raw"`
	Opaque     bool   `json:"opaque,omitempty"`
}

// NoFaceValue is reported when a filename carries no FV tag.
const NoFaceValue = "N/A"

// SeatGroup is a maximal run of consecutive seats in one row.  All members
// share RowLabel and seat suffix; Quantity always equals len(Seats).
// FirstRaw and LastRaw are the sorted extremes and are identical when the
// group holds a single seat.
type SeatGroup struct {
	RowLabel string      `json:"row"`
	Quantity int         `json:"quantity"`
	FirstRaw string      `json:"first"`
	LastRaw  string      `json:"last"`
	Price    string      `json:"price"`
	Seats    []SeatToken `json:"-"`
}

// Range renders the seat span the way the stock report prints it.
func (g SeatGroup) Range() string {
	if g.Quantity > 1 {
		return g.FirstRaw + "/" + g.LastRaw
	}
	return g.FirstRaw
}

// GroupStep selects how far apart two seats may be and still be neighbours.
type GroupStep int

const (
	// StepSequential groups 1,2,3,...
	StepSequential GroupStep = 1
	// StepOddEven groups 1,3,5,... and 2,4,6,... for venues that number
	// left and right blocks of a row separately.
	StepOddEven GroupStep = 2
)

// StepFor maps the odd-even flag used by callers to a GroupStep.
func StepFor(oddEven bool) GroupStep {
	if oddEven {
		return StepOddEven
	}
	return StepSequential
}
