package constants

import "time"

// =======================
// KONSTANTA PIPELINE ABSENSI
// =======================

// Source Client (mesin absensi)
const (
	MachinePageSize     = 500                    // ukuran halaman pull transaksi
	MachinePageDelay    = 300 * time.Millisecond // jeda antar halaman biar mesin tidak kewalahan
	MachineTokenSkew    = 30 * time.Second       // refresh token sedikit lebih awal dari expiry
	EmployeePageSize    = 200                    // ukuran halaman sync karyawan
	BackfillGapDelay    = 2 * time.Second        // jeda antar gap saat backfill
)

// Attendance Processor
const (
	// Pasangan check-in/out maksimal 12 jam; lebih dari itu dianggap lupa
	// checkout dan jam kerja di-default 8 jam. Nilai warisan dari sistem
	// lama, jangan diubah tanpa persetujuan HR.
	MaxPairingGap    = 12 * time.Hour
	DefaultWorkHours = 8.0

	ProcessingWindowDays = 3 // raw log yang diproses ulang tiap siklus
	SummaryLookbackDays  = 7 // rekap harian dihitung untuk N hari terakhir
)

// Shift default saat karyawan belum punya jadwal
const (
	DefaultShiftStart   = "09:00"
	DefaultShiftEnd     = "17:00"
	DefaultGraceMinutes = 30
)

// Gap Analyzer
const (
	GapWindowHours     = 6
	GapFillableMaxDays = 30 // gap lebih tua dari ini dianggap hangus di mesin

	// Heuristik ekspektasi record per menit (jam sibuk vs malam)
	BusinessHourStart         = 6
	BusinessHourEnd           = 22
	ExpectedPerMinuteBusiness = 3.0
	ExpectedPerMinuteOffPeak  = 0.3
)

// Status kedatangan / kepulangan
const (
	ArrivalEarly  = "early"
	ArrivalOnTime = "on_time"
	ArrivalGrace  = "grace"
	ArrivalLate   = "late"

	DepartureEarly      = "early"
	DepartureOnTime     = "on_time"
	DepartureLate       = "late"
	DepartureIncomplete = "incomplete"
)
