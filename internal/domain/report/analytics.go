package report

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Mode selects which ticket statuses count towards the numbers
type Mode string

const (
	// ModeGross counts tickets in every status
	ModeGross Mode = "gross"
	// ModeNet counts only tickets still in paid status
	ModeNet Mode = "net"
)

// IsValid checks if the mode is a known Mode
func (m Mode) IsValid() bool {
	return m == ModeGross || m == ModeNet
}

// String returns the string representation of Mode
func (m Mode) String() string {
	return string(m)
}

// Window bounds a reporting period. Nil ends mean unbounded.
type Window struct {
	From *time.Time
	To   *time.Time
}

// AllTimeWindow returns the unbounded window ending now. There is no
// prior window to compare against.
func AllTimeWindow(now time.Time) Window {
	return Window{To: &now}
}

// TrailingWindow returns the window covering the last `days` days up to now,
// and the immediately preceding window of equal length.
func TrailingWindow(now time.Time, days int) (current, prior Window) {
	from := now.AddDate(0, 0, -days)
	priorFrom := from.AddDate(0, 0, -days)

	current = Window{From: &from, To: &now}
	prior = Window{From: &priorFrom, To: &from}
	return current, prior
}

// Growth is a period-over-period change. HasData is false when the
// comparison is undefined (both periods empty).
type Growth struct {
	HasData bool            `json:"has_data"`
	Percent decimal.Decimal `json:"percent"`
}

var hundred = decimal.NewFromInt(100)

// GrowthBetween compares the current value against the prior period:
// both zero → no data; prior zero, current nonzero → 100%;
// otherwise (current-prior)/prior × 100.
func GrowthBetween(prior, current decimal.Decimal) Growth {
	if prior.IsZero() {
		if current.IsZero() {
			return Growth{}
		}
		return Growth{HasData: true, Percent: hundred}
	}

	pct := current.Sub(prior).Div(prior).Mul(hundred)
	return Growth{HasData: true, Percent: pct}
}

// ABCClass ranks an event's contribution to cumulative revenue
type ABCClass string

const (
	ClassA ABCClass = "A" // top sellers up to 80% of revenue
	ClassB ABCClass = "B" // up to 95%
	ClassC ABCClass = "C" // the long tail
)

// Totals are the raw aggregates over the ticket table for one window
type Totals struct {
	Tickets      int64
	Revenue      decimal.Decimal
	Buyers       int64
	RepeatBuyers int64
	Refunded     int64
	Used         int64
}

// EventSales is the per-event breakdown row
type EventSales struct {
	EventID  uuid.UUID       `json:"event_id"`
	Title    string          `json:"title"`
	Category string          `json:"category"`
	Tickets  int64           `json:"tickets"`
	Revenue  decimal.Decimal `json:"revenue"`
	Share    decimal.Decimal `json:"share"` // percentage of total revenue
	Class    ABCClass        `json:"class"`
}

// CategorySales is the per-category breakdown row
type CategorySales struct {
	Category string          `json:"category"`
	Tickets  int64           `json:"tickets"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// DailyPoint is one day of the sales time series
type DailyPoint struct {
	Date    time.Time       `json:"date"`
	Tickets int64           `json:"tickets"`
	Revenue decimal.Decimal `json:"revenue"`
}

// ClassifyABC assigns ABC classes in one cumulative pass over the rows
// sorted by descending revenue: cumulative share ≤ 80% → A, ≤ 95% → B,
// the remainder → C. With zero total revenue every row is C.
func ClassifyABC(rows []EventSales) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Revenue.GreaterThan(rows[j].Revenue)
	})

	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Revenue)
	}

	if total.IsZero() {
		for i := range rows {
			rows[i].Share = decimal.Zero
			rows[i].Class = ClassC
		}
		return
	}

	classALimit := decimal.NewFromInt(80)
	classBLimit := decimal.NewFromInt(95)

	cumulative := decimal.Zero
	for i := range rows {
		cumulative = cumulative.Add(rows[i].Revenue)
		share := cumulative.Div(total).Mul(hundred)
		rows[i].Share = share

		switch {
		case share.LessThanOrEqual(classALimit):
			rows[i].Class = ClassA
		case share.LessThanOrEqual(classBLimit):
			rows[i].Class = ClassB
		default:
			rows[i].Class = ClassC
		}
	}
}
