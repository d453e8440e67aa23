// file: internals/features/attendance/processing/service/timing.go
package service

import (
	"fmt"
	"sort"
	"time"

	"absensiku_backend/internals/constants"
	machineModel "absensiku_backend/internals/features/attendance/machine/model"
)

/* =========================================================
 * PAIRING CHECK-IN / CHECK-OUT
 * ========================================================= */

type Pairing struct {
	CheckIn     time.Time
	CheckOut    *time.Time
	HoursWorked float64
	SourceLogId *string
}

// PairPunches memasangkan punch satu grup (karyawan, tanggal):
// punch paling awal = check-in; punch paling akhir jadi check-out HANYA kalau
// jaraknya ≤ 12 jam dari check-in — lebih dari itu dianggap lupa checkout dan
// jam kerja di-default 8. Punch tunggal juga default 8 jam.
func PairPunches(punches []machineModel.MachinePunchLog) (Pairing, error) {
	if len(punches) == 0 {
		return Pairing{}, fmt.Errorf("grup punch kosong")
	}

	sorted := make([]machineModel.MachinePunchLog, len(punches))
	copy(sorted, punches)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].MachinePunchLogPunchTime.Before(sorted[j].MachinePunchLogPunchTime)
	})

	first := sorted[0]
	p := Pairing{
		CheckIn:     first.MachinePunchLogPunchTime,
		SourceLogId: first.MachinePunchLogSourceLogId,
		HoursWorked: constants.DefaultWorkHours,
	}

	if len(sorted) > 1 {
		last := sorted[len(sorted)-1]
		gap := last.MachinePunchLogPunchTime.Sub(p.CheckIn)
		if gap <= constants.MaxPairingGap {
			out := last.MachinePunchLogPunchTime
			p.CheckOut = &out
			p.HoursWorked = gap.Hours()
		}
		// gap > 12 jam: checkout dibiarkan kosong, jam kerja tetap default
	}

	return p, nil
}

/* =========================================================
 * KLASIFIKASI KEDATANGAN / KEPULANGAN
 * ========================================================= */

// ClassifyArrival membandingkan check-in dengan jam mulai shift.
// Menit di dalam grace dicatat sebagai graceMinutes dan TIDAK dihitung telat;
// menit di luar grace seluruhnya masuk lateMinutes.
func ClassifyArrival(checkIn, expectedStart time.Time, graceMinutes int) (status string, lateMinutes, graceUsed int) {
	delta := int(checkIn.Sub(expectedStart).Minutes())

	switch {
	case delta < 0:
		return constants.ArrivalEarly, 0, 0
	case delta == 0:
		return constants.ArrivalOnTime, 0, 0
	case delta <= graceMinutes:
		return constants.ArrivalGrace, 0, delta
	default:
		return constants.ArrivalLate, delta - graceMinutes, graceMinutes
	}
}

// ClassifyDeparture membandingkan checkout dengan jam selesai shift.
// Tanpa checkout statusnya incomplete.
func ClassifyDeparture(checkOut *time.Time, expectedEnd time.Time) (status string, earlyMinutes, lateMinutes int) {
	if checkOut == nil {
		return constants.DepartureIncomplete, 0, 0
	}
	delta := int(checkOut.Sub(expectedEnd).Minutes())
	switch {
	case delta > 0:
		return constants.DepartureLate, 0, delta
	case delta < 0:
		return constants.DepartureEarly, -delta, 0
	default:
		return constants.DepartureOnTime, 0, 0
	}
}
