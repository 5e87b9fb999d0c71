package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/citytickets/backend/internal/domain/report"
	"github.com/citytickets/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DefaultPeriodDays is the reporting window when none is requested
const DefaultPeriodDays = 30

// MaxPeriodDays bounds the reporting window
const MaxPeriodDays = 365

// PeriodAll requests the unbounded all-time report
const PeriodAll = "all"

// Period is a resolved reporting window request. Days is zero when All
// is set.
type Period struct {
	Days int
	All  bool
}

// Overview is the full sales report for one reporting window. From is
// nil and the growth figures carry no data for the all-time report.
type Overview struct {
	PeriodDays    int                    `json:"period_days,omitempty"`
	AllTime       bool                   `json:"all_time,omitempty"`
	From          *time.Time             `json:"from,omitempty"`
	To            time.Time              `json:"to"`
	Mode          string                 `json:"mode"`
	Tickets       int64                  `json:"tickets"`
	Revenue       decimal.Decimal        `json:"revenue"`
	AverageTicket decimal.Decimal        `json:"average_ticket"`
	Buyers        int64                  `json:"buyers"`
	RepeatBuyers  int64                  `json:"repeat_buyers"`
	Refunded      int64                  `json:"refunded"`
	Used          int64                  `json:"used"`
	RevenueGrowth report.Growth          `json:"revenue_growth"`
	TicketsGrowth report.Growth          `json:"tickets_growth"`
	Events        []report.EventSales    `json:"events"`
	Categories    []report.CategorySales `json:"categories"`
	Daily         []report.DailyPoint    `json:"daily"`
}

// AnalyticsService assembles sales reports
type AnalyticsService struct {
	analytics report.AnalyticsRepository
	now       func() time.Time
}

// NewAnalyticsService creates an AnalyticsService
func NewAnalyticsService(analytics report.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{analytics: analytics, now: time.Now}
}

// ResolvePeriod parses the requested period: empty falls back to the
// default trailing window, "all" selects the unbounded report, anything
// else must be a day count between 1 and MaxPeriodDays.
func ResolvePeriod(raw string) (Period, error) {
	if raw == "" {
		return Period{Days: DefaultPeriodDays}, nil
	}
	if raw == PeriodAll {
		return Period{All: true}, nil
	}

	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 || days > MaxPeriodDays {
		return Period{}, shared.NewDomainError("INVALID_PERIOD",
			fmt.Sprintf("Period must be %q or between 1 and %d days", PeriodAll, MaxPeriodDays))
	}
	return Period{Days: days}, nil
}

// ResolveMode validates the counting mode, defaulting to gross
func ResolveMode(mode string) (report.Mode, error) {
	if mode == "" {
		return report.ModeGross, nil
	}
	m := report.Mode(mode)
	if !m.IsValid() {
		return "", shared.NewDomainError("INVALID_MODE", "Mode must be gross or net")
	}
	return m, nil
}

// Build assembles the report for the requested period
func (s *AnalyticsService) Build(ctx context.Context, period string, mode report.Mode) (*Overview, error) {
	p, err := ResolvePeriod(period)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var current, prior report.Window
	if p.All {
		current = report.AllTimeWindow(now)
	} else {
		current, prior = report.TrailingWindow(now, p.Days)
	}

	totals, err := s.analytics.Totals(ctx, current, mode)
	if err != nil {
		return nil, err
	}

	var revenueGrowth, ticketsGrowth report.Growth
	if !p.All {
		priorTotals, err := s.analytics.Totals(ctx, prior, mode)
		if err != nil {
			return nil, err
		}
		revenueGrowth = report.GrowthBetween(priorTotals.Revenue, totals.Revenue)
		ticketsGrowth = report.GrowthBetween(
			decimal.NewFromInt(priorTotals.Tickets),
			decimal.NewFromInt(totals.Tickets),
		)
	}

	events, err := s.analytics.EventBreakdown(ctx, current, mode)
	if err != nil {
		return nil, err
	}
	report.ClassifyABC(events)

	categories, err := s.analytics.CategoryBreakdown(ctx, current, mode)
	if err != nil {
		return nil, err
	}
	daily, err := s.analytics.DailySeries(ctx, current, mode)
	if err != nil {
		return nil, err
	}

	average := decimal.Zero
	if totals.Tickets > 0 {
		average = totals.Revenue.Div(decimal.NewFromInt(totals.Tickets)).Round(2)
	}

	return &Overview{
		PeriodDays:    p.Days,
		AllTime:       p.All,
		From:          current.From,
		To:            now,
		Mode:          mode.String(),
		Tickets:       totals.Tickets,
		Revenue:       totals.Revenue,
		AverageTicket: average,
		Buyers:        totals.Buyers,
		RepeatBuyers:  totals.RepeatBuyers,
		Refunded:      totals.Refunded,
		Used:          totals.Used,
		RevenueGrowth: revenueGrowth,
		TicketsGrowth: ticketsGrowth,
		Events:        events,
		Categories:    categories,
		Daily:         daily,
	}, nil
}

// ExportCSV renders the per-event breakdown of the report as CSV
func (s *AnalyticsService) ExportCSV(ctx context.Context, period string, mode report.Mode) ([]byte, error) {
	overview, err := s.Build(ctx, period, mode)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"event_id", "title", "category", "tickets", "revenue", "share_pct", "class"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}

	for _, row := range overview.Events {
		record := []string{
			row.EventID.String(),
			row.Title,
			row.Category,
			strconv.FormatInt(row.Tickets, 10),
			row.Revenue.StringFixed(2),
			row.Share.StringFixed(2),
			string(row.Class),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.Bytes(), nil
}
