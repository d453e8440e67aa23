// file: internals/features/attendance/gaps/dto/gap_dto.go
package dto

import "time"

// GapWindow: satu jendela 6 jam yang record-nya kurang dari ekspektasi.
// Transient — dihitung ulang tiap analisis, tidak pernah disimpan ke tabel.
type GapWindow struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Expected int       `json:"expected"`
	Actual   int       `json:"actual"`
	Missing  int       `json:"missing"`
	Priority string    `json:"priority"` // critical | high | medium | low
	Fillable bool      `json:"fillable"`
}

type GapAnalysisReport struct {
	TotalRecords         int64       `json:"total_records"`
	TotalMissing         int         `json:"total_missing"`
	TotalGaps            int         `json:"total_gaps"`
	ContiguityPercentage float64     `json:"contiguity_percentage"`
	FillableGaps         []GapWindow `json:"fillable_gaps"`
	CriticalGaps         []GapWindow `json:"critical_gaps"`

	// Gap terlalu tua (> 30 hari) dilaporkan supaya operator tahu data itu
	// sudah hangus di mesin.
	UnfillableGaps []GapWindow `json:"unfillable_gaps"`
}

type BackfillProgress struct {
	Running       bool    `json:"running"`
	TotalFillable int     `json:"total_fillable"`
	Filled        int     `json:"filled"`
	Percentage    float64 `json:"percentage"`
}

type BackfillReport struct {
	GapsFilled      int `json:"gaps_filled"`
	GapsFailed      int `json:"gaps_failed"`
	RecordsInserted int `json:"records_inserted"`
}
