package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bariskaantoprak-ui/ITSO/internal/model"
	"github.com/bariskaantoprak-ui/ITSO/internal/seed"
)

func ev(id, date string) model.Event {
	return model.Event{ID: id, Title: "Event " + id, Date: date}
}

func ids(events []model.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

func TestMonthLayout(t *testing.T) {
	tests := []struct {
		name        string
		year, month int
		want        Layout
	}{
		{"june 2024 starts on saturday", 2024, 5, Layout{DaysInMonth: 30, LeadingBlanks: 5}},
		{"leap february", 2024, 1, Layout{DaysInMonth: 29, LeadingBlanks: 3}},
		{"common february", 2023, 1, Layout{DaysInMonth: 28, LeadingBlanks: 2}},
		{"century non-leap", 1900, 1, Layout{DaysInMonth: 28, LeadingBlanks: 3}},
		{"400-year leap", 2000, 1, Layout{DaysInMonth: 29, LeadingBlanks: 1}},
		{"month starting monday", 2024, 0, Layout{DaysInMonth: 31, LeadingBlanks: 0}},
		{"month starting sunday", 2024, 8, Layout{DaysInMonth: 30, LeadingBlanks: 6}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MonthLayout(tc.year, tc.month))
		})
	}
}

func TestMonthLayoutProperties(t *testing.T) {
	for year := 1900; year <= 2100; year++ {
		for month := 0; month < 12; month++ {
			l := MonthLayout(year, month)
			if l.LeadingBlanks < 0 || l.LeadingBlanks > 6 {
				t.Fatalf("%d-%d: leading blanks %d out of range", year, month, l.LeadingBlanks)
			}
			grid := BuildGrid(nil, year, month, time.Time{}, time.UTC)
			if len(grid) != l.LeadingBlanks+l.DaysInMonth {
				t.Fatalf("%d-%d: grid has %d cells, want %d", year, month, len(grid), l.Cells())
			}
		}
	}
}

func TestShiftMonth(t *testing.T) {
	y, m := ShiftMonth(2024, 0, -1)
	assert.Equal(t, [2]int{2023, 11}, [2]int{y, m})

	y, m = ShiftMonth(2024, 11, 1)
	assert.Equal(t, [2]int{2025, 0}, [2]int{y, m})

	y, m = ShiftMonth(2024, 5, 0)
	assert.Equal(t, [2]int{2024, 5}, [2]int{y, m})

	y, m = ShiftMonth(2024, 5, -18)
	assert.Equal(t, [2]int{2022, 11}, [2]int{y, m})
}

func TestBuildGridJune2024(t *testing.T) {
	events := []model.Event{ev("a", "2024-06-15"), ev("b", "2024-06-20"), ev("c", "2024-07-10"), ev("d", "2024-06-15")}
	now := time.Date(2024, 6, 18, 10, 0, 0, 0, time.UTC)

	grid := BuildGrid(events, 2024, 5, now, time.UTC)
	require.Len(t, grid, 35)

	for i := 0; i < 5; i++ {
		assert.True(t, grid[i].Blank)
		assert.Zero(t, grid[i].Day)
		assert.Empty(t, grid[i].Events)
	}

	days := 0
	for _, c := range grid[5:] {
		assert.False(t, c.Blank)
		days++
		assert.Equal(t, days, c.Day)
		assert.Equal(t, c.Day == 18, c.IsToday, "day %d", c.Day)
	}
	assert.Equal(t, 30, days)

	assert.Equal(t, []string{"a", "d"}, ids(grid[5+14].Events))
	assert.Equal(t, []string{"b"}, ids(grid[5+19].Events))
	assert.Empty(t, grid[5+9].Events)
}

func TestBuildGridTodayUsesLocation(t *testing.T) {
	ist, err := time.LoadLocation("Europe/Istanbul")
	require.NoError(t, err)

	// 22:30 UTC on the 17th is already the 18th in Istanbul.
	now := time.Date(2024, 6, 17, 22, 30, 0, 0, time.UTC)
	grid := BuildGrid(nil, 2024, 5, now, ist)
	assert.True(t, grid[5+17].IsToday)
	assert.False(t, grid[5+16].IsToday)
}

func TestByDay(t *testing.T) {
	events := []model.Event{
		ev("1", "2024-06-15"),
		ev("2", "2024-06-14"),
		ev("3", "2024-06-16"),
		ev("4", "2024-07-15"),
		ev("5", "2023-06-15"),
		ev("6", "2024-06-15"),
		ev("7", "not a date"),
	}
	assert.Equal(t, []string{"1", "6"}, ids(ByDay(events, 2024, 5, 15, time.UTC)))
	assert.Empty(t, ByDay(events, 2024, 5, 1, time.UTC))
	assert.Empty(t, ByDay(nil, 2024, 5, 15, time.UTC))
}

func TestPartition(t *testing.T) {
	events := []model.Event{ev("15", "2024-06-15"), ev("20", "2024-06-20"), ev("10", "2024-07-10")}
	now := time.Date(2024, 6, 18, 0, 0, 0, 0, time.UTC)

	b := Partition(events, now, time.UTC)
	assert.Equal(t, []string{"20", "10"}, ids(b.Upcoming))
	assert.Equal(t, []string{"15"}, ids(b.Past))
}

func TestPartitionBoundaryIsUpcoming(t *testing.T) {
	now := time.Date(2024, 6, 18, 0, 0, 0, 0, time.UTC)
	b := Partition([]model.Event{ev("x", "2024-06-18")}, now, time.UTC)
	assert.Equal(t, []string{"x"}, ids(b.Upcoming))
	assert.Empty(t, b.Past)

	// One nanosecond later the same event is past.
	b = Partition([]model.Event{ev("x", "2024-06-18")}, now.Add(time.Nanosecond), time.UTC)
	assert.Empty(t, b.Upcoming)
	assert.Equal(t, []string{"x"}, ids(b.Past))
}

func TestPartitionIsTotalAndPreservesOrder(t *testing.T) {
	events := []model.Event{
		ev("a", "2025-01-01"),
		ev("b", "2020-01-01"),
		ev("c", "garbage"),
		ev("d", "2024-12-31"),
		ev("e", ""),
		ev("f", "2019-05-05"),
	}
	now := time.Date(2024, 6, 18, 12, 0, 0, 0, time.UTC)
	b := Partition(events, now, time.UTC)

	assert.Equal(t, []string{"a", "d"}, ids(b.Upcoming))
	assert.Equal(t, []string{"b", "c", "e", "f"}, ids(b.Past))
	assert.ElementsMatch(t, ids(events), append(ids(b.Upcoming), ids(b.Past)...))
}

func TestPartitionEmpty(t *testing.T) {
	b := Partition(nil, time.Now(), nil)
	assert.NotNil(t, b.Upcoming)
	assert.NotNil(t, b.Past)
	assert.Empty(t, b.Upcoming)
	assert.Empty(t, b.Past)
}

func TestFilterEmptyQueryIsIdentity(t *testing.T) {
	events := []model.Event{ev("3", "2024-01-01"), ev("1", "2024-01-02"), ev("2", "2024-01-03")}
	assert.Equal(t, events, Filter(events, ""))
}

func TestFilterCaseInsensitive(t *testing.T) {
	events := []model.Event{
		{ID: "1", Title: "İleri Düzey İhracat Semineri"},
		{ID: "2", Title: "Lojistik Atölyesi"},
	}
	assert.Equal(t, []string{"1"}, ids(Filter(events, "İLERİ")))
	assert.Equal(t, []string{"1"}, ids(Filter(events, "ileri")))
	assert.Equal(t, []string{"1"}, ids(Filter(events, "İleri")))
	assert.Equal(t, []string{"2"}, ids(Filter(events, "LOJİSTİK")))
}

func TestFilterTurkishDotlessI(t *testing.T) {
	// Turkish folding maps ASCII I to dotless ı, so an ASCII-uppercase query
	// does not match a dotted-i title, while dotless forms match each other.
	events := []model.Event{
		{ID: "1", Title: "İleri Düzey İhracat Semineri"},
		{ID: "2", Title: "Yurtdışı Fuar Katılımı"},
	}
	assert.Empty(t, Filter(events, "ILERI"))
	assert.Equal(t, []string{"2"}, ids(Filter(events, "YURTDIŞI")))
	assert.Equal(t, []string{"2"}, ids(Filter(events, "katılımı")))

	assert.Equal(t, "ileri", Fold("İLERİ"))
	assert.Equal(t, "ılık", Fold("ILIK"))
}

func TestFilterSeedData(t *testing.T) {
	d, err := seed.Load()
	require.NoError(t, err)

	got := Filter(d.Events, "Dijital")
	require.Len(t, got, 1)
	assert.Equal(t, "Dijital Dönüşüm ve E-Ticaret Eğitimi", got[0].Title)

	assert.Len(t, Filter(d.Events, "zzz"), 0)
}

func TestBuildView(t *testing.T) {
	events := []model.Event{
		{ID: "1", Title: "Dijital Pazarlama", Date: "2024-06-15"},
		{ID: "2", Title: "İhracat Toplantısı", Date: "2024-06-20"},
		{ID: "3", Title: "Dijital İhracat", Date: "2024-07-10"},
	}
	now := time.Date(2024, 6, 18, 9, 0, 0, 0, time.UTC)

	t.Run("list mode", func(t *testing.T) {
		v := BuildView(events, ViewRequest{Mode: ModeList, Year: 2024, Month: 5, Now: now})
		assert.Equal(t, ModeList, v.Mode)
		assert.Nil(t, v.Grid)
		assert.Nil(t, v.Layout)
		assert.Equal(t, []string{"2", "3"}, ids(v.Upcoming))
		assert.Equal(t, []string{"1"}, ids(v.Past))
	})

	t.Run("calendar mode with search", func(t *testing.T) {
		v := BuildView(events, ViewRequest{Query: "dijital", Mode: ModeCalendar, Year: 2024, Month: 5, Now: now})
		require.NotNil(t, v.Layout)
		assert.Equal(t, 5, v.Layout.LeadingBlanks)
		require.Len(t, v.Grid, 35)
		assert.Equal(t, []string{"1"}, ids(v.Grid[5+14].Events))
		assert.Empty(t, v.Grid[5+19].Events)
		assert.Equal(t, []string{"3"}, ids(v.Upcoming))
		assert.Equal(t, []string{"1"}, ids(v.Past))
	})

	t.Run("deterministic", func(t *testing.T) {
		req := ViewRequest{Query: "i", Mode: ModeCalendar, Year: 2024, Month: 6, Now: now}
		assert.Equal(t, BuildView(events, req), BuildView(events, req))
	})

	t.Run("unknown mode falls back to list", func(t *testing.T) {
		v := BuildView(events, ViewRequest{Mode: "agenda", Now: now})
		assert.Equal(t, ModeList, v.Mode)
	})
}

func TestBuildViewOrdering(t *testing.T) {
	events := []model.Event{
		ev("late", "2024-09-01"),
		ev("old", "2024-01-01"),
		ev("soon", "2024-06-20"),
		ev("older", "2023-01-01"),
		ev("recent", "2024-05-01"),
	}
	now := time.Date(2024, 6, 18, 0, 0, 0, 0, time.UTC)

	v := BuildView(events, ViewRequest{Now: now})
	assert.Equal(t, []string{"late", "soon"}, ids(v.Upcoming))
	assert.Equal(t, []string{"old", "older", "recent"}, ids(v.Past))

	v = BuildView(events, ViewRequest{Now: now, Chronological: true})
	assert.Equal(t, []string{"soon", "late"}, ids(v.Upcoming))
	assert.Equal(t, []string{"recent", "old", "older"}, ids(v.Past))

	// The caller's slice is left untouched.
	assert.Equal(t, []string{"late", "old", "soon", "older", "recent"}, ids(events))
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, ModeCalendar, ParseMode("calendar"))
	assert.Equal(t, ModeList, ParseMode("list"))
	assert.Equal(t, ModeList, ParseMode(""))
}
