// file: internals/features/attendance/processing/service/processor.go
package service

import (
	"fmt"
	"log"
	"sync"
	"time"

	"gorm.io/gorm"

	"absensiku_backend/internals/constants"
	machineModel "absensiku_backend/internals/features/attendance/machine/model"
	machineService "absensiku_backend/internals/features/attendance/machine/service"
	"absensiku_backend/internals/features/attendance/processing/model"
	"absensiku_backend/internals/helpers/dbtime"
)

// CycleResult: agregat satu siklus. Error per unit kerja dikumpulkan di
// Errors, tidak menggagalkan batch.
type CycleResult struct {
	Pulled     int      `json:"pulled"`
	Processed  int      `json:"processed"`
	Analyzed   int      `json:"analyzed"`
	Summarized int      `json:"summarized"`
	Errors     []string `json:"errors,omitempty"`
}

// Processor mengubah raw punch jadi fakta kehadiran lewat empat langkah
// berurutan: pull → proses raw → analisis timing → rekap harian.
type Processor struct {
	db     *gorm.DB
	ingest *machineService.IngestService
	store  AttendanceStore

	mu      sync.Mutex
	running bool
}

func NewProcessor(db *gorm.DB, ingest *machineService.IngestService) *Processor {
	return &Processor{
		db:     db,
		ingest: ingest,
		store:  NewAttendanceStore(db),
	}
}

/* =========================================================
 * SIKLUS UTAMA
 * ========================================================= */

// RunCycle menjalankan keempat langkah. Error fatal satu langkah (query
// rusak dsb.) menghentikan sisa langkah siklus INI saja; siklus berikutnya
// jalan normal.
func (p *Processor) RunCycle() CycleResult {
	res := CycleResult{}

	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		res.Errors = append(res.Errors, "siklus sebelumnya masih berjalan")
		return res
	}
	p.running = true
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		p.running = false
		p.mu.Unlock()
	}()

	// 1) Pull data baru. Gagal transport bukan fatal: data lama yang sudah
	//    tersimpan tetap bisa diproses.
	pulled, err := p.pullNewData()
	if err != nil {
		res.Errors = append(res.Errors, "pull: "+err.Error())
	} else {
		res.Pulled = pulled
	}

	// 2) Raw → attendance
	processed, unitErrs, err := p.ProcessRaw()
	res.Processed = processed
	res.Errors = append(res.Errors, unitErrs...)
	if err != nil {
		res.Errors = append(res.Errors, "proses raw: "+err.Error())
		return res
	}

	// 3) Analisis timing
	analyzed, unitErrs, err := p.AnalyzeTiming()
	res.Analyzed = analyzed
	res.Errors = append(res.Errors, unitErrs...)
	if err != nil {
		res.Errors = append(res.Errors, "analisis timing: "+err.Error())
		return res
	}

	// 4) Rekap harian
	summarized, unitErrs, err := p.Summarize()
	res.Summarized = summarized
	res.Errors = append(res.Errors, unitErrs...)
	if err != nil {
		res.Errors = append(res.Errors, "rekap harian: "+err.Error())
	}

	log.Printf("[CYCLE] pulled=%d processed=%d analyzed=%d summarized=%d errors=%d",
		res.Pulled, res.Processed, res.Analyzed, res.Summarized, len(res.Errors))
	return res
}

// ProcessRecent: dipakai manual_repoll di orchestrator — proses raw +
// analisis timing tanpa pull dan tanpa rekap.
func (p *Processor) ProcessRecent() (int, error) {
	processed, _, err := p.ProcessRaw()
	if err != nil {
		return processed, err
	}
	_, _, err = p.AnalyzeTiming()
	return processed, err
}

/* =========================================================
 * LANGKAH 1: PULL DATA BARU
 * ========================================================= */

func (p *Processor) pullNewData() (int, error) {
	latest, err := p.ingest.LatestPunchTime()
	if err != nil {
		return 0, err
	}

	now := time.Now()
	start := now.Add(-24 * time.Hour) // storage kosong: mundur 24 jam
	if latest != nil {
		start = *latest
	}

	res := p.ingest.PullRange(start, now)
	if !res.Success {
		return 0, fmt.Errorf("%s", res.ErrorMessage)
	}
	return res.Inserted, nil
}

/* =========================================================
 * LANGKAH 2: RAW → ATTENDANCE
 * ========================================================= */

type GroupKey struct {
	EmployeeCode string
	Date         time.Time
}

// GroupPunches mengelompokkan raw punch per (karyawan, tanggal kalender di
// timezone kantor). Pure function, dipakai juga di test.
func GroupPunches(punches []machineModel.MachinePunchLog) map[GroupKey][]machineModel.MachinePunchLog {
	groups := make(map[GroupKey][]machineModel.MachinePunchLog)
	for i := range punches {
		pch := punches[i]
		key := GroupKey{
			EmployeeCode: pch.MachinePunchLogEmployeeCode,
			Date:         dbtime.DateOnly(pch.MachinePunchLogPunchTime),
		}
		groups[key] = append(groups[key], pch)
	}
	return groups
}

// ConvertGroups memasangkan punch per grup lalu insert fakta kehadiran.
// Existence-check sebelum insert adalah satu-satunya guard idempotensi.
// Error satu grup dicatat dan dilewati, batch jalan terus.
func ConvertGroups(groups map[GroupKey][]machineModel.MachinePunchLog, store AttendanceStore) (int, []string) {
	inserted := 0
	var errs []string

	for key, punches := range groups {
		exists, err := store.ExistsForEmployeeDate(key.EmployeeCode, key.Date)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s/%s: cek existing gagal: %v",
				key.EmployeeCode, key.Date.Format("2006-01-02"), err))
			continue
		}
		if exists {
			continue
		}

		pairing, err := PairPunches(punches)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s/%s: %v",
				key.EmployeeCode, key.Date.Format("2006-01-02"), err))
			continue
		}

		rec := &model.AttendanceRecordModel{
			AttendanceRecordEmployeeCode: key.EmployeeCode,
			AttendanceRecordDate:         key.Date,
			AttendanceRecordCheckIn:      pairing.CheckIn,
			AttendanceRecordCheckOut:     pairing.CheckOut,
			AttendanceRecordHoursWorked:  pairing.HoursWorked,
			AttendanceRecordSourceLogId:  pairing.SourceLogId,
		}
		if err := store.Insert(rec); err != nil {
			errs = append(errs, fmt.Sprintf("%s/%s: insert gagal: %v",
				key.EmployeeCode, key.Date.Format("2006-01-02"), err))
			continue
		}
		inserted++
	}

	return inserted, errs
}

func (p *Processor) ProcessRaw() (int, []string, error) {
	since := time.Now().AddDate(0, 0, -constants.ProcessingWindowDays)

	// Id transaksi yang sudah pernah dikonversi tidak diambil lagi.
	converted := p.db.Model(&model.AttendanceRecordModel{}).
		Select("attendance_record_source_log_id").
		Where("attendance_record_source_log_id IS NOT NULL")

	var punches []machineModel.MachinePunchLog
	err := p.db.
		Where("machine_punch_log_punch_time >= ?", since).
		Where("machine_punch_log_source_log_id IS NULL OR machine_punch_log_source_log_id NOT IN (?)", converted).
		Order("machine_punch_log_punch_time ASC").
		Find(&punches).Error
	if err != nil {
		return 0, nil, err
	}

	inserted, errs := ConvertGroups(GroupPunches(punches), p.store)
	for _, msg := range errs {
		log.Printf("[CYCLE] %s", msg)
	}
	return inserted, errs, nil
}

/* =========================================================
 * LANGKAH 3: ANALISIS TIMING
 * ========================================================= */

func (p *Processor) shiftForEmployee(code string) model.ShiftScheduleModel {
	var shift model.ShiftScheduleModel
	err := p.db.Where("shift_schedule_employee_code = ?", code).
		Order("shift_schedule_created_at ASC").
		Take(&shift).Error
	if err != nil {
		return model.DefaultShift(code) // belum punya jadwal → default 09:00–17:00
	}
	return shift
}

func (p *Processor) AnalyzeTiming() (int, []string, error) {
	var records []model.AttendanceRecordModel
	err := p.db.Where("attendance_record_timing_analyzed_at IS NULL").
		Find(&records).Error
	if err != nil {
		return 0, nil, err
	}

	loc := dbtime.CompanyLocation()
	analyzed := 0
	var errs []string

	for i := range records {
		rec := &records[i]
		shift := p.shiftForEmployee(rec.AttendanceRecordEmployeeCode)

		expectedStart := shift.ShiftScheduleStartTime.OnDate(rec.AttendanceRecordDate, loc)
		expectedEnd := shift.ShiftScheduleEndTime.OnDate(rec.AttendanceRecordDate, loc)

		arrival, lateMin, graceMin := ClassifyArrival(
			rec.AttendanceRecordCheckIn.In(loc), expectedStart, shift.ShiftScheduleGraceMinutes)
		departure, earlyMin, lateDepMin := ClassifyDeparture(
			timeInLocPtr(rec.AttendanceRecordCheckOut, loc), expectedEnd)

		now := time.Now()
		rec.AttendanceRecordArrivalStatus = arrival
		rec.AttendanceRecordDepartureStatus = departure
		rec.AttendanceRecordLateMinutes = lateMin
		rec.AttendanceRecordGraceMinutes = graceMin
		rec.AttendanceRecordEarlyDepartureMinutes = earlyMin
		rec.AttendanceRecordLateDepartureMinutes = lateDepMin
		rec.AttendanceRecordTimingAnalyzedAt = &now

		if err := p.db.Save(rec).Error; err != nil {
			errs = append(errs, fmt.Sprintf("timing %s/%s: %v",
				rec.AttendanceRecordEmployeeCode,
				rec.AttendanceRecordDate.Format("2006-01-02"), err))
			continue
		}
		analyzed++
	}

	return analyzed, errs, nil
}

func timeInLocPtr(t *time.Time, loc *time.Location) *time.Time {
	if t == nil {
		return nil
	}
	v := t.In(loc)
	return &v
}

/* =========================================================
 * LANGKAH 4: REKAP HARIAN
 * ========================================================= */

func (p *Processor) Summarize() (int, []string, error) {
	written := 0
	var errs []string

	today := dbtime.DateOnly(time.Now())
	for back := 0; back < constants.SummaryLookbackDays; back++ {
		date := today.AddDate(0, 0, -back)

		var exists int64
		if err := p.db.Model(&model.DailySummaryModel{}).
			Where("daily_summary_date = ?", date).
			Count(&exists).Error; err != nil {
			return written, errs, err
		}
		if exists > 0 {
			continue // tanggal ini sudah direkap
		}

		summary, err := p.buildSummary(date)
		if err != nil {
			errs = append(errs, fmt.Sprintf("rekap %s: %v", date.Format("2006-01-02"), err))
			continue
		}
		if err := p.db.Create(summary).Error; err != nil {
			errs = append(errs, fmt.Sprintf("rekap %s: insert gagal: %v", date.Format("2006-01-02"), err))
			continue
		}
		written++
	}

	return written, errs, nil
}

func (p *Processor) buildSummary(date time.Time) (*model.DailySummaryModel, error) {
	var total, exempt, present, late int64

	if err := p.db.Model(&machineModel.EmployeeModel{}).Count(&total).Error; err != nil {
		return nil, err
	}
	if err := p.db.Model(&machineModel.EmployeeModel{}).
		Where("employee_is_biometric_exempt = TRUE").
		Count(&exempt).Error; err != nil {
		return nil, err
	}

	// Hadir = karyawan non-exempt yang punya check-in hari itu. Karyawan
	// exempt sudah dihitung hadir lewat kolomnya sendiri, jangan dobel.
	if err := p.db.Model(&model.AttendanceRecordModel{}).
		Joins("JOIN employees ON employees.employee_code = attendance_records.attendance_record_employee_code").
		Where("attendance_record_date = ? AND employees.employee_is_biometric_exempt = FALSE", date).
		Distinct("attendance_record_employee_code").
		Count(&present).Error; err != nil {
		return nil, err
	}

	if err := p.db.Model(&model.AttendanceRecordModel{}).
		Where("attendance_record_date = ? AND attendance_record_late_minutes > 0", date).
		Count(&late).Error; err != nil {
		return nil, err
	}

	return &model.DailySummaryModel{
		DailySummaryDate:           date,
		DailySummaryTotalEmployees: int(total),
		DailySummaryPresent:        int(present),
		DailySummaryExempt:         int(exempt),
		DailySummaryLate:           int(late),
		DailySummaryAbsent:         AbsentCount(int(total), int(present), int(exempt)),
	}, nil
}

// AbsentCount = total − hadir − exempt, tidak pernah negatif.
func AbsentCount(total, present, exempt int) int {
	absent := total - present - exempt
	if absent < 0 {
		return 0
	}
	return absent
}
