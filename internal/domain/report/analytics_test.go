package report

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrailingWindow(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	current, prior := TrailingWindow(now, 30)

	require.NotNil(t, current.From)
	require.NotNil(t, current.To)
	assert.Equal(t, now.AddDate(0, 0, -30), *current.From)
	assert.Equal(t, now, *current.To)

	// prior period ends exactly where the current one starts
	assert.Equal(t, *current.From, *prior.To)
	assert.Equal(t, now.AddDate(0, 0, -60), *prior.From)
}

func TestAllTimeWindow(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	window := AllTimeWindow(now)

	assert.Nil(t, window.From)
	require.NotNil(t, window.To)
	assert.Equal(t, now, *window.To)
}

func TestGrowthBetween(t *testing.T) {
	tests := []struct {
		name        string
		prior       int64
		current     int64
		wantHasData bool
		wantPercent string
	}{
		{"both zero has no data", 0, 0, false, "0"},
		{"from zero is pinned at 100", 0, 500, true, "100"},
		{"doubling", 100, 200, true, "100"},
		{"halving", 200, 100, true, "-50"},
		{"flat", 150, 150, true, "0"},
		{"drop to zero", 80, 0, true, "-100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			growth := GrowthBetween(decimal.NewFromInt(tt.prior), decimal.NewFromInt(tt.current))

			assert.Equal(t, tt.wantHasData, growth.HasData)
			want, err := decimal.NewFromString(tt.wantPercent)
			require.NoError(t, err)
			assert.True(t, growth.Percent.Equal(want),
				"want %s, got %s", want, growth.Percent)
		})
	}
}

func TestClassifyABC(t *testing.T) {
	row := func(revenue int64) EventSales {
		return EventSales{EventID: uuid.New(), Revenue: decimal.NewFromInt(revenue)}
	}

	t.Run("cumulative shares over sorted revenue", func(t *testing.T) {
		rows := []EventSales{row(30), row(100), row(20), row(50)}

		ClassifyABC(rows)

		// sorted descending: 100, 50, 30, 20 of total 200
		assert.True(t, rows[0].Revenue.Equal(decimal.NewFromInt(100)))
		assert.Equal(t, ClassA, rows[0].Class)
		assert.True(t, rows[0].Share.Equal(decimal.NewFromInt(50)))

		assert.Equal(t, ClassA, rows[1].Class)
		assert.True(t, rows[1].Share.Equal(decimal.NewFromInt(75)))

		assert.Equal(t, ClassB, rows[2].Class)
		assert.True(t, rows[2].Share.Equal(decimal.NewFromInt(90)))

		assert.Equal(t, ClassC, rows[3].Class)
		assert.True(t, rows[3].Share.Equal(decimal.NewFromInt(100)))
	})

	t.Run("single event takes class C at 100 percent", func(t *testing.T) {
		rows := []EventSales{row(500)}

		ClassifyABC(rows)

		assert.Equal(t, ClassC, rows[0].Class)
		assert.True(t, rows[0].Share.Equal(decimal.NewFromInt(100)))
	})

	t.Run("zero total revenue makes every row C", func(t *testing.T) {
		rows := []EventSales{row(0), row(0), row(0)}

		ClassifyABC(rows)

		for _, r := range rows {
			assert.Equal(t, ClassC, r.Class)
			assert.True(t, r.Share.IsZero())
		}
	})

	t.Run("empty input is a no-op", func(t *testing.T) {
		ClassifyABC(nil)
		ClassifyABC([]EventSales{})
	})
}

func TestModeIsValid(t *testing.T) {
	assert.True(t, ModeGross.IsValid())
	assert.True(t, ModeNet.IsValid())
	assert.False(t, Mode("all").IsValid())
	assert.False(t, Mode("").IsValid())
}
