package market

import (
	"fmt"
	"strconv"
	"strings"
)

// Period is a trailing window expressed in days. PeriodAll requests the full
// history the provider holds.
type Period int

// PeriodAll is the "max" sentinel.
const PeriodAll Period = -1

// Param renders the period as the provider's days parameter.
func (p Period) Param() string {
	if p == PeriodAll {
		return "max"
	}
	return strconv.Itoa(int(p))
}

// Valid reports whether p is PeriodAll or a positive day count.
func (p Period) Valid() bool {
	return p == PeriodAll || p > 0
}

func (p Period) String() string {
	if p == PeriodAll {
		return "all"
	}
	return strconv.Itoa(int(p)) + "d"
}

// PeriodSelector is the user facing period label, e.g. "30d" or "all".
type PeriodSelector string

const (
	Period7d   PeriodSelector = "7d"
	Period30d  PeriodSelector = "30d"
	Period90d  PeriodSelector = "90d"
	Period365d PeriodSelector = "365d"
	PeriodMax  PeriodSelector = "all"
)

var selectorPeriods = map[PeriodSelector]Period{
	Period7d:   7,
	Period30d:  30,
	Period90d:  90,
	Period365d: 365,
	PeriodMax:  PeriodAll,
}

// DefaultPeriods lists the selectors enabled when configuration names none.
func DefaultPeriods() []PeriodSelector {
	return []PeriodSelector{Period30d, Period90d, Period365d, PeriodMax}
}

// ParsePeriod maps a selector to its Period. "max" is accepted as an alias of "all".
func ParsePeriod(selector string) (Period, error) {
	s := PeriodSelector(strings.ToLower(strings.TrimSpace(selector)))
	if s == "max" {
		s = PeriodMax
	}
	p, ok := selectorPeriods[s]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedPeriod, selector)
	}
	return p, nil
}

// SelectorFor returns the canonical selector of p.
func SelectorFor(p Period) PeriodSelector {
	for sel, candidate := range selectorPeriods {
		if candidate == p {
			return sel
		}
	}
	return PeriodSelector(p.String())
}
