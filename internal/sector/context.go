package sector

import "strings"

type contextRule struct {
	needles []string
	context string
}

var contextRules = []contextRule{
	{[]string{"roma", "lazio"}, "roma"},
	{[]string{"inter", "milan"}, "inter"},
	{[]string{"fiorentina"}, "fiorentina"},
	{[]string{"bologna"}, "bologna"},
	{[]string{"atalanta"}, "atalanta"},
}

// DetectContext guesses the venue context from an event name, e.g.
// "Inter - Juventus" gives "inter".  Unknown venues give "".
func DetectContext(eventName string) string {
	lower := strings.ToLower(eventName)
	for _, r := range contextRules {
		for _, n := range r.needles {
			if strings.Contains(lower, n) {
				return r.context
			}
		}
	}
	return ""
}
