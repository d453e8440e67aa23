// file: internals/features/attendance/machine/service/ingest_service.go
package service

import (
	"fmt"
	"log"
	"time"

	"gorm.io/datatypes"

	"absensiku_backend/internals/constants"
	"absensiku_backend/internals/features/attendance/machine/client"
	"absensiku_backend/internals/features/attendance/machine/dto"
	"absensiku_backend/internals/features/attendance/machine/model"
	"absensiku_backend/internals/helpers/dbtime"
)

// PullResult: hasil satu pull window. Insert yang sudah masuk saat error
// transport TIDAK di-rollback — dedup yang menjaga saat window ditarik ulang
// (at-least-once).
type PullResult struct {
	Success      bool   `json:"success"`
	Fetched      int    `json:"fetched"`
	Inserted     int    `json:"inserted"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// IngestService menarik transaksi mesin per halaman dan menyimpan yang belum
// pernah dilihat ke raw storage.
type IngestService struct {
	api       client.MachineAPI
	store     PunchStore
	pageSize  int
	pageDelay time.Duration
}

func NewIngestService(api client.MachineAPI, store PunchStore) *IngestService {
	return &IngestService{
		api:       api,
		store:     store,
		pageSize:  constants.MachinePageSize,
		pageDelay: constants.MachinePageDelay,
	}
}

// PullRange menarik SEMUA transaksi pada [start, end): minta halaman besar,
// lanjut terus sampai halaman pendek (< pageSize) atau kosong. Ada jeda antar
// halaman biar mesin tidak kewalahan.
func (s *IngestService) PullRange(start, end time.Time) PullResult {
	res := PullResult{}
	loc := dbtime.CompanyLocation()

	page := 1
	for {
		records, err := s.api.FetchPunchPage(start, end, page, s.pageSize)
		if err != nil {
			res.ErrorMessage = err.Error()
			return res
		}
		if len(records) == 0 {
			break
		}

		for i := range records {
			rec := &records[i]
			res.Fetched++

			// Mesin akses pintu bukan data kehadiran: buang sebelum disimpan.
			if rec.IsAccessControlTerminal() {
				continue
			}

			inserted, err := s.ingestOne(rec, loc)
			if err != nil {
				log.Printf("[MESIN] record dilewati (%s): %v", rec.EmployeeCode, err)
				continue
			}
			if inserted {
				res.Inserted++
			}
		}

		if len(records) < s.pageSize {
			break
		}
		page++
		time.Sleep(s.pageDelay)
	}

	res.Success = true
	return res
}

// ingestOne: dedup lalu insert. Return (true, nil) hanya kalau baris baru
// benar-benar masuk.
func (s *IngestService) ingestOne(rec *dto.MachinePunchDTO, loc *time.Location) (bool, error) {
	if rec.EmployeeCode == "" {
		return false, fmt.Errorf("emp_code kosong")
	}
	punchTime, err := rec.ParsedPunchTime(loc)
	if err != nil {
		return false, fmt.Errorf("punch_time tidak valid: %w", err)
	}
	direction := rec.Direction()

	// Dedup utama: id transaksi mesin. Fallback untuk mesin tanpa id:
	// kunci komposit (waktu punch, kode karyawan, arah).
	if rec.Id != nil && *rec.Id != "" {
		exists, err := s.store.ExistsBySourceLogId(*rec.Id)
		if err != nil {
			return false, err
		}
		if exists {
			return false, nil
		}
	} else {
		exists, err := s.store.ExistsByEvent(punchTime, rec.EmployeeCode, direction)
		if err != nil {
			return false, err
		}
		if exists {
			return false, nil
		}
	}

	row := &model.MachinePunchLog{
		MachinePunchLogSourceLogId:  rec.Id,
		MachinePunchLogEmployeeCode: rec.EmployeeCode,
		MachinePunchLogPunchTime:    punchTime,
		MachinePunchLogDirection:    direction,
		MachinePunchLogTerminal:     rec.TerminalAlias,
	}
	if len(rec.Raw) > 0 {
		row.MachinePunchLogPayload = datatypes.JSON(rec.Raw)
	}
	if err := s.store.Insert(row); err != nil {
		return false, err
	}
	return true, nil
}

// LatestPunchTime diekspos untuk processor (penentu titik awal pull berikutnya).
func (s *IngestService) LatestPunchTime() (*time.Time, error) {
	return s.store.LatestPunchTime()
}
