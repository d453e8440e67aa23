package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"absensiku_backend/internals/features/attendance/gaps/dto"
)

/* =========================================================
 * FAKES
 * ========================================================= */

type fakeCoverageStore struct {
	earliest *time.Time
	latest   *time.Time
	counts   map[int64]int64 // keyed by unix window-start
	total    int64
}

func (f *fakeCoverageStore) Span() (*time.Time, *time.Time, error) {
	return f.earliest, f.latest, nil
}

func (f *fakeCoverageStore) CountBetween(start, end time.Time) (int64, error) {
	return f.counts[start.Unix()], nil
}

func (f *fakeCoverageStore) TotalCount() (int64, error) {
	return f.total, nil
}

// flatExpected: ekspektasi konstan per window, biar angka test gampang dihitung.
type flatExpected struct{ n int }

func (m flatExpected) ExpectedRecords(start, end time.Time) int { return m.n }

func newTestAnalyzer(store *fakeCoverageStore, now time.Time) *GapAnalyzer {
	a := NewGapAnalyzer(store).WithExpectedModel(flatExpected{n: 100})
	a.now = func() time.Time { return now }
	return a
}

/* =========================================================
 * TESTS
 * ========================================================= */

func TestPriorityForGapTiers(t *testing.T) {
	assert.Equal(t, PriorityCritical, PriorityForGap(80, 100))
	assert.Equal(t, PriorityCritical, PriorityForGap(100, 100))
	assert.Equal(t, PriorityHigh, PriorityForGap(50, 100))
	assert.Equal(t, PriorityHigh, PriorityForGap(79, 100))
	assert.Equal(t, PriorityMedium, PriorityForGap(25, 100))
	assert.Equal(t, PriorityMedium, PriorityForGap(49, 100))
	assert.Equal(t, PriorityLow, PriorityForGap(24, 100))
	assert.Equal(t, PriorityLow, PriorityForGap(0, 100))
	assert.Equal(t, PriorityLow, PriorityForGap(10, 0)) // ekspektasi 0: tidak pernah dianggap gap serius
}

func TestAnalyzeEmptyStorage(t *testing.T) {
	store := &fakeCoverageStore{counts: map[int64]int64{}}
	report, err := newTestAnalyzer(store, time.Now()).Analyze()

	require.NoError(t, err)
	assert.Equal(t, 0, report.TotalGaps)
	assert.Equal(t, float64(100), report.ContiguityPercentage)
}

func TestAnalyzeFlagsMissingWindows(t *testing.T) {
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	earliest := now.Add(-12 * time.Hour)
	latest := now

	store := &fakeCoverageStore{
		earliest: &earliest,
		latest:   &latest,
		total:    110,
		counts: map[int64]int64{
			earliest.Unix():                     100, // window penuh
			earliest.Add(6 * time.Hour).Unix(): 10,  // 90% hilang
		},
	}

	report, err := newTestAnalyzer(store, now).Analyze()
	require.NoError(t, err)

	assert.Equal(t, int64(110), report.TotalRecords)
	assert.Equal(t, 1, report.TotalGaps)
	assert.Equal(t, 90, report.TotalMissing)
	require.Len(t, report.FillableGaps, 1)
	assert.Empty(t, report.UnfillableGaps)

	gap := report.FillableGaps[0]
	assert.Equal(t, 100, gap.Expected)
	assert.Equal(t, 10, gap.Actual)
	assert.Equal(t, 90, gap.Missing)
	assert.Equal(t, PriorityCritical, gap.Priority)
	assert.True(t, gap.Fillable)
	require.Len(t, report.CriticalGaps, 1)

	// Kontiguitas: 110 aktual vs 90 hilang → 110/200 = 55%
	assert.InDelta(t, 55.0, report.ContiguityPercentage, 0.01)
}

func TestAnalyzeFillableCutoff(t *testing.T) {
	now := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)

	// Dua window kosong: satu 40 hari lalu (hangus), satu kemarin (masih bisa).
	oldStart := now.AddDate(0, 0, -40)
	oldEnd := oldStart.Add(6 * time.Hour)
	recentStart := now.Add(-24 * time.Hour)

	t.Run("window tua tidak fillable", func(t *testing.T) {
		store := &fakeCoverageStore{
			earliest: &oldStart,
			latest:   &oldEnd,
			counts:   map[int64]int64{},
		}
		report, err := newTestAnalyzer(store, now).Analyze()
		require.NoError(t, err)
		assert.Empty(t, report.FillableGaps)
		require.Len(t, report.UnfillableGaps, 1)
		assert.False(t, report.UnfillableGaps[0].Fillable)
	})

	t.Run("window baru fillable", func(t *testing.T) {
		recentEnd := recentStart.Add(6 * time.Hour)
		store := &fakeCoverageStore{
			earliest: &recentStart,
			latest:   &recentEnd,
			counts:   map[int64]int64{},
		}
		report, err := newTestAnalyzer(store, now).Analyze()
		require.NoError(t, err)
		require.Len(t, report.FillableGaps, 1)
		assert.True(t, report.FillableGaps[0].Fillable)
	})
}

func TestSortGapsByPriority(t *testing.T) {
	base := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	gaps := []dto.GapWindow{
		{Start: base, Priority: PriorityLow},
		{Start: base.Add(6 * time.Hour), Priority: PriorityCritical},
		{Start: base.Add(12 * time.Hour), Priority: PriorityMedium},
		{Start: base.Add(18 * time.Hour), Priority: PriorityCritical},
		{Start: base.Add(24 * time.Hour), Priority: PriorityHigh},
	}

	sorted := SortGapsByPriority(gaps)

	require.Len(t, sorted, 5)
	assert.Equal(t, PriorityCritical, sorted[0].Priority)
	assert.Equal(t, PriorityCritical, sorted[1].Priority)
	assert.Equal(t, PriorityHigh, sorted[2].Priority)
	assert.Equal(t, PriorityMedium, sorted[3].Priority)
	assert.Equal(t, PriorityLow, sorted[4].Priority)

	// Stabil: dua critical tetap urut waktu.
	assert.True(t, sorted[0].Start.Before(sorted[1].Start))

	// Input tidak dimodifikasi.
	assert.Equal(t, PriorityLow, gaps[0].Priority)
}

func TestBusinessHoursModelExpectations(t *testing.T) {
	m := BusinessHoursModel{}

	// 6 jam di tengah jam kerja → 360 menit × 3/menit
	dayStart := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, 1080, m.ExpectedRecords(dayStart, dayStart.Add(6*time.Hour)))

	// Window mundur → 0
	assert.Equal(t, 0, m.ExpectedRecords(dayStart, dayStart))
}
