package report

import "context"

// AnalyticsRepository reads ticket aggregates for reporting.
// Implementations are read-only and stateless per call.
type AnalyticsRepository interface {
	Totals(ctx context.Context, window Window, mode Mode) (Totals, error)
	EventBreakdown(ctx context.Context, window Window, mode Mode) ([]EventSales, error)
	CategoryBreakdown(ctx context.Context, window Window, mode Mode) ([]CategorySales, error)
	DailySeries(ctx context.Context, window Window, mode Mode) ([]DailyPoint, error)
}
