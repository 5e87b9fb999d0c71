package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/citytickets/backend/internal/domain/report"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormAnalyticsRepository implements report.AnalyticsRepository with raw
// aggregate SQL over the tickets table. All queries are read-only.
type GormAnalyticsRepository struct {
	db *gorm.DB
}

// NewGormAnalyticsRepository creates a new GORM-backed analytics repository
func NewGormAnalyticsRepository(db *gorm.DB) report.AnalyticsRepository {
	return &GormAnalyticsRepository{db: db}
}

// scope applies window bounds and the counting mode to a tickets query.
// Net mode counts only tickets still in paid status; gross counts all.
func scope(query *gorm.DB, window report.Window, mode report.Mode) *gorm.DB {
	if window.From != nil {
		query = query.Where("tickets.created_at >= ?", *window.From)
	}
	if window.To != nil {
		query = query.Where("tickets.created_at < ?", *window.To)
	}
	if mode == report.ModeNet {
		query = query.Where("tickets.status = ?", "paid")
	}
	return query
}

// Totals returns the headline aggregates for the window
func (r *GormAnalyticsRepository) Totals(ctx context.Context, window report.Window, mode report.Mode) (report.Totals, error) {
	var row struct {
		Tickets  int64
		Revenue  decimal.Decimal
		Buyers   int64
		Refunded int64
		Used     int64
	}

	err := scope(r.db.WithContext(ctx).Table("tickets"), window, mode).
		Select(`COUNT(*) AS tickets,
			COALESCE(SUM(price), 0) AS revenue,
			COUNT(DISTINCT user_id) AS buyers,
			COUNT(*) FILTER (WHERE status = 'refunded') AS refunded,
			COUNT(*) FILTER (WHERE status = 'used') AS used`).
		Scan(&row).Error
	if err != nil {
		return report.Totals{}, fmt.Errorf("failed to load sales totals: %w", err)
	}

	perBuyer := scope(r.db.WithContext(ctx).Table("tickets"), window, mode).
		Select("user_id").
		Group("user_id").
		Having("COUNT(*) >= 2")

	var repeat int64
	err = r.db.WithContext(ctx).
		Table("(?) AS per_buyer", perBuyer).
		Select("COUNT(*)").
		Scan(&repeat).Error
	if err != nil {
		return report.Totals{}, fmt.Errorf("failed to count repeat buyers: %w", err)
	}

	return report.Totals{
		Tickets:      row.Tickets,
		Revenue:      row.Revenue,
		Buyers:       row.Buyers,
		RepeatBuyers: repeat,
		Refunded:     row.Refunded,
		Used:         row.Used,
	}, nil
}

// EventBreakdown returns per-event ticket counts and revenue.
// Share and Class are left for the domain classifier to fill in.
func (r *GormAnalyticsRepository) EventBreakdown(ctx context.Context, window report.Window, mode report.Mode) ([]report.EventSales, error) {
	var rows []struct {
		EventID  uuid.UUID
		Title    string
		Category string
		Tickets  int64
		Revenue  decimal.Decimal
	}

	err := scope(r.db.WithContext(ctx).Table("tickets"), window, mode).
		Select(`tickets.event_id,
			events.title,
			events.category,
			COUNT(*) AS tickets,
			COALESCE(SUM(tickets.price), 0) AS revenue`).
		Joins("JOIN events ON events.id = tickets.event_id").
		Group("tickets.event_id, events.title, events.category").
		Order("revenue DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load event breakdown: %w", err)
	}

	result := make([]report.EventSales, len(rows))
	for i, row := range rows {
		result[i] = report.EventSales{
			EventID:  row.EventID,
			Title:    row.Title,
			Category: row.Category,
			Tickets:  row.Tickets,
			Revenue:  row.Revenue,
		}
	}
	return result, nil
}

// CategoryBreakdown returns per-category ticket counts and revenue
func (r *GormAnalyticsRepository) CategoryBreakdown(ctx context.Context, window report.Window, mode report.Mode) ([]report.CategorySales, error) {
	var rows []struct {
		Category string
		Tickets  int64
		Revenue  decimal.Decimal
	}

	err := scope(r.db.WithContext(ctx).Table("tickets"), window, mode).
		Select(`events.category,
			COUNT(*) AS tickets,
			COALESCE(SUM(tickets.price), 0) AS revenue`).
		Joins("JOIN events ON events.id = tickets.event_id").
		Group("events.category").
		Order("revenue DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load category breakdown: %w", err)
	}

	result := make([]report.CategorySales, len(rows))
	for i, row := range rows {
		result[i] = report.CategorySales{
			Category: row.Category,
			Tickets:  row.Tickets,
			Revenue:  row.Revenue,
		}
	}
	return result, nil
}

// DailySeries returns one point per calendar day with sales in the window
func (r *GormAnalyticsRepository) DailySeries(ctx context.Context, window report.Window, mode report.Mode) ([]report.DailyPoint, error) {
	var rows []struct {
		Day     time.Time
		Tickets int64
		Revenue decimal.Decimal
	}

	err := scope(r.db.WithContext(ctx).Table("tickets"), window, mode).
		Select(`DATE(tickets.created_at) AS day,
			COUNT(*) AS tickets,
			COALESCE(SUM(price), 0) AS revenue`).
		Group("DATE(tickets.created_at)").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load daily series: %w", err)
	}

	result := make([]report.DailyPoint, len(rows))
	for i, row := range rows {
		result[i] = report.DailyPoint{
			Date:    row.Day,
			Tickets: row.Tickets,
			Revenue: row.Revenue,
		}
	}
	return result, nil
}
