// file: internals/features/attendance/gaps/service/backfill_service.go
package service

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"absensiku_backend/internals/constants"
	"absensiku_backend/internals/features/attendance/gaps/dto"
	machineService "absensiku_backend/internals/features/attendance/machine/service"
)

// BackfillService mengeksekusi rencana dari GapAnalyzer: gap fillable
// diurutkan critical → low, tiap gap ditarik ulang lewat Source Client,
// dengan jeda antar gap supaya beban mesin terkendali.
type BackfillService struct {
	analyzer *GapAnalyzer
	ingest   *machineService.IngestService
	gapDelay time.Duration

	mu       sync.Mutex
	progress dto.BackfillProgress
}

func NewBackfillService(analyzer *GapAnalyzer, ingest *machineService.IngestService) *BackfillService {
	return &BackfillService{
		analyzer: analyzer,
		ingest:   ingest,
		gapDelay: constants.BackfillGapDelay,
	}
}

// Progress snapshot untuk status query operator.
func (s *BackfillService) Progress() dto.BackfillProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

func (s *BackfillService) setProgress(total, filled int, running bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = dto.BackfillProgress{
		Running:       running,
		TotalFillable: total,
		Filled:        filled,
	}
	if total > 0 {
		s.progress.Percentage = float64(filled) / float64(total) * 100
	} else {
		s.progress.Percentage = 100
	}
}

// Run: analisis dulu, lalu isi gap satu per satu. Dipicu operator atau job
// level atas, bukan scheduler internal.
func (s *BackfillService) Run() (dto.BackfillReport, error) {
	report := dto.BackfillReport{}

	s.mu.Lock()
	if s.progress.Running {
		s.mu.Unlock()
		return report, fmt.Errorf("backfill masih berjalan")
	}
	s.progress.Running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.progress.Running = false
		s.mu.Unlock()
	}()

	analysis, err := s.analyzer.Analyze()
	if err != nil {
		return report, fmt.Errorf("analisis gap gagal: %w", err)
	}

	gaps := SortGapsByPriority(analysis.FillableGaps)
	s.setProgress(len(gaps), 0, true)

	for i, gap := range gaps {
		res := s.ingest.PullRange(gap.Start, gap.End)
		if res.Success {
			report.GapsFilled++
			report.RecordsInserted += res.Inserted
		} else {
			report.GapsFailed++
			log.Printf("[GAP] backfill window %s gagal: %s",
				gap.Start.Format("2006-01-02 15:04"), res.ErrorMessage)
		}
		s.setProgress(len(gaps), i+1, true)

		if i < len(gaps)-1 {
			time.Sleep(s.gapDelay)
		}
	}

	log.Printf("[GAP] backfill selesai: %d terisi, %d gagal, %d record baru",
		report.GapsFilled, report.GapsFailed, report.RecordsInserted)
	return report, nil
}

// SortGapsByPriority: critical → high → medium → low, stabil terhadap urutan
// waktu di dalam tier yang sama.
func SortGapsByPriority(gaps []dto.GapWindow) []dto.GapWindow {
	out := make([]dto.GapWindow, len(gaps))
	copy(out, gaps)
	sort.SliceStable(out, func(i, j int) bool {
		return PriorityRank(out[i].Priority) < PriorityRank(out[j].Priority)
	})
	return out
}
