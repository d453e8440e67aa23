// file: internals/features/attendance/polling/service/orchestrator.go
package service

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	machineService "absensiku_backend/internals/features/attendance/machine/service"
	"absensiku_backend/internals/features/attendance/polling/model"
	"absensiku_backend/internals/helpers/dbtime"
)

// Reprocessor: dipakai manual_repoll supaya hasil tarik ulang langsung
// diproses jadi fakta kehadiran tanpa menunggu siklus 5 menit berikutnya.
// Di-implement oleh Attendance Processor.
type Reprocessor interface {
	ProcessRecent() (int, error)
}

// HandlerResult: bentuk seragam hasil semua tipe request.
type HandlerResult struct {
	Success          bool
	RecordsProcessed int
	TotalRecords     int
	ErrorMessage     string
}

// OrchestratorStatus untuk status query: lagi sibuk tidak, dan item mana.
type OrchestratorStatus struct {
	Busy          bool       `json:"busy"`
	CurrentItemId *uuid.UUID `json:"current_item_id,omitempty"`
}

// Orchestrator menserialisasi semua kebutuhan ingest: satu item per tick,
// tidak ada dua pull yang jalan bersamaan. Asumsi deploy: satu instance
// aktif (lihat DESIGN.md).
type Orchestrator struct {
	store     QueueStore
	ingest    *machineService.IngestService
	reprocess Reprocessor

	mu      sync.Mutex
	busy    bool
	current *uuid.UUID
}

func NewOrchestrator(store QueueStore, ingest *machineService.IngestService, reprocess Reprocessor) *Orchestrator {
	return &Orchestrator{
		store:     store,
		ingest:    ingest,
		reprocess: reprocess,
	}
}

/* =========================================================
 * ENQUEUE / CANCEL / STATUS
 * ========================================================= */

func (o *Orchestrator) Enqueue(requestType string, targetDate time.Time, endDate *time.Time, priority int) (*model.PollingQueueItemModel, error) {
	if !model.ValidRequestType(requestType) {
		return nil, fmt.Errorf("tipe request tidak dikenal: %s", requestType)
	}
	item := &model.PollingQueueItemModel{
		PollingQueueItemRequestType: requestType,
		PollingQueueItemTargetDate:  dbtime.DateOnly(targetDate),
		PollingQueueItemPriority:    priority,
		PollingQueueItemStatus:      model.StatusPending,
	}
	if endDate != nil {
		d := dbtime.DateOnly(*endDate)
		item.PollingQueueItemEndDate = &d
	}
	if err := o.store.Save(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Cancel hanya boleh untuk item pending. Item yang sudah processing jalan
// terus sampai selesai atau gagal — tidak ada preemption.
func (o *Orchestrator) Cancel(id uuid.UUID) (*model.PollingQueueItemModel, error) {
	item, err := o.store.FindById(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("item %s tidak ditemukan", id)
	}
	if !item.CanCancel() {
		return nil, fmt.Errorf("item %s berstatus %s, hanya pending yang bisa dibatalkan",
			id, item.PollingQueueItemStatus)
	}
	now := time.Now()
	item.PollingQueueItemStatus = model.StatusCancelled
	item.PollingQueueItemCancelledAt = &now
	if err := o.store.Save(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (o *Orchestrator) Status() OrchestratorStatus {
	o.mu.Lock()
	defer o.mu.Unlock()
	return OrchestratorStatus{Busy: o.busy, CurrentItemId: o.current}
}

/* =========================================================
 * TICK
 * ========================================================= */

// Tick memproses tepat satu item per panggilan; kalau antrian kosong, no-op.
func (o *Orchestrator) Tick() {
	o.mu.Lock()
	if o.busy {
		o.mu.Unlock()
		return // tick sebelumnya masih jalan
	}
	o.busy = true
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.busy = false
		o.current = nil
		o.mu.Unlock()
	}()

	pending, err := o.store.Pending()
	if err != nil {
		log.Printf("[QUEUE] gagal baca antrian: %v", err)
		return
	}
	item := PickNext(pending)
	if item == nil {
		return
	}

	o.mu.Lock()
	id := item.PollingQueueItemId
	o.current = &id
	o.mu.Unlock()

	now := time.Now()
	item.PollingQueueItemStatus = model.StatusProcessing
	item.PollingQueueItemStartedAt = &now
	if err := o.store.Save(item); err != nil {
		log.Printf("[QUEUE] gagal tandai processing: %v", err)
		return
	}

	res := o.dispatch(item)

	finished := time.Now()
	item.PollingQueueItemFinishedAt = &finished
	item.PollingQueueItemRecordsProcessed = res.RecordsProcessed
	item.PollingQueueItemTotalRecords = res.TotalRecords
	if res.Success {
		item.PollingQueueItemStatus = model.StatusCompleted
		item.PollingQueueItemErrorMessage = nil
	} else {
		item.PollingQueueItemStatus = model.StatusFailed
		msg := res.ErrorMessage
		item.PollingQueueItemErrorMessage = &msg
	}
	if err := o.store.Save(item); err != nil {
		log.Printf("[QUEUE] gagal simpan hasil item %s: %v", id, err)
		return
	}
	log.Printf("[QUEUE] item %s (%s) → %s (%d/%d)",
		id, item.PollingQueueItemRequestType, item.PollingQueueItemStatus,
		res.RecordsProcessed, res.TotalRecords)
}

// PickNext: prioritas angka terkecil menang, seri dipecah oleh enqueued_at
// paling awal. Pure function biar gampang diuji.
func PickNext(items []model.PollingQueueItemModel) *model.PollingQueueItemModel {
	var best *model.PollingQueueItemModel
	for i := range items {
		it := &items[i]
		if it.PollingQueueItemStatus != model.StatusPending {
			continue
		}
		if best == nil ||
			it.PollingQueueItemPriority < best.PollingQueueItemPriority ||
			(it.PollingQueueItemPriority == best.PollingQueueItemPriority &&
				it.PollingQueueItemEnqueuedAt.Before(best.PollingQueueItemEnqueuedAt)) {
			best = it
		}
	}
	return best
}

/* =========================================================
 * HANDLER PER TIPE (enum tertutup)
 * ========================================================= */

func (o *Orchestrator) dispatch(item *model.PollingQueueItemModel) HandlerResult {
	switch item.PollingQueueItemRequestType {
	case model.RequestTypeDateRange, model.RequestTypeHistoricalBackfill:
		return o.handleDateRange(item)
	case model.RequestTypeMissingData:
		return o.handleSingleDate(item)
	case model.RequestTypeManualRepoll:
		return o.handleManualRepoll(item)
	case model.RequestTypeGapFill:
		return o.handleSingleDate(item)
	default:
		return HandlerResult{ErrorMessage: "tipe request tidak dikenal: " + item.PollingQueueItemRequestType}
	}
}

// handleDateRange jalan hari per hari. Progress item di-update tiap hari
// (processed = hari selesai, total = jumlah hari) supaya range panjang tetap
// bisa dipantau di tengah jalan.
func (o *Orchestrator) handleDateRange(item *model.PollingQueueItemModel) HandlerResult {
	start := dbtime.DateOnly(item.PollingQueueItemTargetDate)
	end := start
	if item.PollingQueueItemEndDate != nil {
		end = dbtime.DateOnly(*item.PollingQueueItemEndDate)
	}
	if end.Before(start) {
		return HandlerResult{ErrorMessage: "end_date sebelum target_date"}
	}

	totalDays := int(end.Sub(start).Hours()/24) + 1
	item.PollingQueueItemTotalRecords = totalDays

	fetched := 0
	for day := 0; day < totalDays; day++ {
		dayStart := start.AddDate(0, 0, day)
		res := o.ingest.PullRange(dayStart, dayStart.AddDate(0, 0, 1))
		if !res.Success {
			return HandlerResult{
				RecordsProcessed: day,
				TotalRecords:     totalDays,
				ErrorMessage: fmt.Sprintf("pull %s gagal: %s",
					dayStart.Format("2006-01-02"), res.ErrorMessage),
			}
		}
		fetched += res.Fetched

		item.PollingQueueItemRecordsProcessed = day + 1
		if err := o.store.Save(item); err != nil {
			log.Printf("[QUEUE] gagal update progress: %v", err)
		}
	}

	log.Printf("[QUEUE] range %s..%s: %d record ditarik",
		start.Format("2006-01-02"), end.Format("2006-01-02"), fetched)
	return HandlerResult{Success: true, RecordsProcessed: totalDays, TotalRecords: totalDays}
}

func (o *Orchestrator) handleSingleDate(item *model.PollingQueueItemModel) HandlerResult {
	day := dbtime.DateOnly(item.PollingQueueItemTargetDate)
	res := o.ingest.PullRange(day, day.AddDate(0, 0, 1))
	if !res.Success {
		return HandlerResult{ErrorMessage: res.ErrorMessage}
	}
	return HandlerResult{Success: true, RecordsProcessed: res.Fetched, TotalRecords: res.Fetched}
}

// handleManualRepoll: tarik ulang paksa satu tanggal lalu langsung proses
// ulang raw → attendance.
func (o *Orchestrator) handleManualRepoll(item *model.PollingQueueItemModel) HandlerResult {
	res := o.handleSingleDate(item)
	if !res.Success {
		return res
	}
	if o.reprocess != nil {
		if _, err := o.reprocess.ProcessRecent(); err != nil {
			return HandlerResult{
				RecordsProcessed: res.RecordsProcessed,
				TotalRecords:     res.TotalRecords,
				ErrorMessage:     "pull sukses tapi proses ulang gagal: " + err.Error(),
			}
		}
	}
	return res
}
