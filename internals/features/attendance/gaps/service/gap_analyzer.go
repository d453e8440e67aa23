// file: internals/features/attendance/gaps/service/gap_analyzer.go
package service

import (
	"time"

	"gorm.io/gorm"

	"absensiku_backend/internals/constants"
	"absensiku_backend/internals/features/attendance/gaps/dto"
	machineModel "absensiku_backend/internals/features/attendance/machine/model"
	"absensiku_backend/internals/helpers/dbtime"
)

/* =========================================================
 * COVERAGE STORE
 * ========================================================= */

// PunchCoverageStore: hanya angka yang dibutuhkan analyzer, biar gampang
// difake di test.
type PunchCoverageStore interface {
	Span() (earliest, latest *time.Time, err error)
	CountBetween(start, end time.Time) (int64, error)
	TotalCount() (int64, error)
}

type gormCoverageStore struct {
	db *gorm.DB
}

func NewPunchCoverageStore(db *gorm.DB) PunchCoverageStore {
	return &gormCoverageStore{db: db}
}

func (s *gormCoverageStore) Span() (*time.Time, *time.Time, error) {
	type row struct {
		Earliest *time.Time
		Latest   *time.Time
	}
	var r row
	err := s.db.Model(&machineModel.MachinePunchLog{}).
		Select("MIN(machine_punch_log_punch_time) AS earliest, MAX(machine_punch_log_punch_time) AS latest").
		Take(&r).Error
	if err != nil {
		return nil, nil, err
	}
	return r.Earliest, r.Latest, nil
}

func (s *gormCoverageStore) CountBetween(start, end time.Time) (int64, error) {
	var n int64
	err := s.db.Model(&machineModel.MachinePunchLog{}).
		Where("machine_punch_log_punch_time >= ? AND machine_punch_log_punch_time < ?", start, end).
		Count(&n).Error
	return n, err
}

func (s *gormCoverageStore) TotalCount() (int64, error) {
	var n int64
	err := s.db.Model(&machineModel.MachinePunchLog{}).Count(&n).Error
	return n, err
}

/* =========================================================
 * MODEL EKSPEKTASI (pluggable)
 * ========================================================= */

// ExpectedModel memperkirakan jumlah record yang "wajar" untuk satu window.
// Sengaja strategi terpisah supaya heuristiknya bisa dikalibrasi tanpa
// menyentuh loop scanning.
type ExpectedModel interface {
	ExpectedRecords(start, end time.Time) int
}

// BusinessHoursModel: jam [6,22) diharapkan ±3 record/menit, di luar itu
// ±0.3 record/menit (aktivitas malam jauh lebih sepi). Kasar memang —
// tujuannya menandai anomali, bukan rekonsiliasi persis.
type BusinessHoursModel struct{}

func (BusinessHoursModel) ExpectedRecords(start, end time.Time) int {
	minutes := end.Sub(start).Minutes()
	if minutes <= 0 {
		return 0
	}
	hour := start.In(dbtime.CompanyLocation()).Hour()
	if hour >= constants.BusinessHourStart && hour < constants.BusinessHourEnd {
		return int(minutes * constants.ExpectedPerMinuteBusiness)
	}
	return int(minutes * constants.ExpectedPerMinuteOffPeak)
}

/* =========================================================
 * ANALYZER
 * ========================================================= */

type GapAnalyzer struct {
	store    PunchCoverageStore
	expected ExpectedModel

	windowSize     time.Duration
	fillableMaxAge time.Duration
	now            func() time.Time
}

func NewGapAnalyzer(store PunchCoverageStore) *GapAnalyzer {
	return &GapAnalyzer{
		store:          store,
		expected:       BusinessHoursModel{},
		windowSize:     constants.GapWindowHours * time.Hour,
		fillableMaxAge: constants.GapFillableMaxDays * 24 * time.Hour,
		now:            time.Now,
	}
}

// WithExpectedModel mengganti heuristik ekspektasi (dipakai test & kalibrasi).
func (a *GapAnalyzer) WithExpectedModel(m ExpectedModel) *GapAnalyzer {
	a.expected = m
	return a
}

// Analyze jalan dari punch paling awal sampai paling akhir dalam window
// tetap 6 jam, bandingkan jumlah aktual vs ekspektasi, lalu susun rencana
// backfill terprioritas.
func (a *GapAnalyzer) Analyze() (*dto.GapAnalysisReport, error) {
	report := &dto.GapAnalysisReport{ContiguityPercentage: 100}

	total, err := a.store.TotalCount()
	if err != nil {
		return nil, err
	}
	report.TotalRecords = total

	earliest, latest, err := a.store.Span()
	if err != nil {
		return nil, err
	}
	if earliest == nil || latest == nil {
		return report, nil // raw storage kosong, tidak ada yang bisa dinilai
	}

	fillableCutoff := a.now().Add(-a.fillableMaxAge)

	var totalActual, totalMissing int64
	for winStart := *earliest; winStart.Before(*latest); winStart = winStart.Add(a.windowSize) {
		winEnd := winStart.Add(a.windowSize)

		actual64, err := a.store.CountBetween(winStart, winEnd)
		if err != nil {
			return nil, err
		}
		actual := int(actual64)
		expected := a.expected.ExpectedRecords(winStart, winEnd)

		missing := expected - actual
		if missing < 0 {
			missing = 0
		}
		totalActual += int64(actual)
		totalMissing += int64(missing)

		if missing == 0 {
			continue
		}

		gap := dto.GapWindow{
			Start:    winStart,
			End:      winEnd,
			Expected: expected,
			Actual:   actual,
			Missing:  missing,
			Priority: PriorityForGap(missing, expected),
			Fillable: winStart.After(fillableCutoff),
		}

		report.TotalGaps++
		report.TotalMissing += missing
		if gap.Fillable {
			report.FillableGaps = append(report.FillableGaps, gap)
		} else {
			report.UnfillableGaps = append(report.UnfillableGaps, gap)
		}
		if gap.Priority == PriorityCritical {
			report.CriticalGaps = append(report.CriticalGaps, gap)
		}
	}

	if totalActual+totalMissing > 0 {
		report.ContiguityPercentage = float64(totalActual) / float64(totalActual+totalMissing) * 100
	}
	return report, nil
}

/* =========================================================
 * PRIORITAS
 * ========================================================= */

const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
	PriorityLow      = "low"
)

// PriorityForGap: rasio missing/expected menentukan tier.
// ≥80% critical, ≥50% high, ≥25% medium, sisanya low.
func PriorityForGap(missing, expected int) string {
	if expected <= 0 {
		return PriorityLow
	}
	ratio := float64(missing) / float64(expected)
	switch {
	case ratio >= 0.80:
		return PriorityCritical
	case ratio >= 0.50:
		return PriorityHigh
	case ratio >= 0.25:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// PriorityRank untuk sorting: critical duluan.
func PriorityRank(p string) int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	default:
		return 3
	}
}
