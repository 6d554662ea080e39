package analytics

import (
	"time"

	"github.com/trezcool/amenagement/core"
)

// Periods
const (
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

// Period is the look-back window of the "new this period" figures.
type Period string

func (p Period) IsValid() bool {
	switch p {
	case PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear:
		return true
	}
	return false
}

func (p Period) Label() string {
	switch p {
	case PeriodWeek:
		return "Cette semaine"
	case PeriodMonth:
		return "Ce mois"
	case PeriodQuarter:
		return "Ce trimestre"
	case PeriodYear:
		return "Cette année"
	}
	return string(p)
}

// Window returns the calendar dates [from, to] covered by p at now. Unknown periods act as PeriodMonth.
func (p Period) Window(now time.Time) (from, to core.Date) {
	to = core.DateOf(now)
	switch p {
	case PeriodWeek:
		return to.AddDays(-7), to
	case PeriodQuarter:
		return to.AddMonths(-3), to
	case PeriodYear:
		return to.AddMonths(-12), to
	default:
		return to.AddMonths(-1), to
	}
}

// CountWithin counts the dates falling in [from, to], both ends included.
func CountWithin(dates []core.Date, from, to core.Date) int {
	var n int
	for _, d := range dates {
		if !d.IsZero() && !d.Before(from) && !d.After(to) {
			n++
		}
	}
	return n
}
