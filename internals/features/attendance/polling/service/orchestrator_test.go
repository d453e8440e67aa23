package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"absensiku_backend/internals/features/attendance/machine/dto"
	machineModel "absensiku_backend/internals/features/attendance/machine/model"
	machineService "absensiku_backend/internals/features/attendance/machine/service"
	"absensiku_backend/internals/features/attendance/polling/model"
)

/* =========================================================
 * FAKES
 * ========================================================= */

// fakeMachineAPI: satu punch per pull, atau selalu error.
type fakeMachineAPI struct {
	fail  bool
	pulls int
}

func (f *fakeMachineAPI) FetchPunchPage(start, end time.Time, page, pageSize int) ([]dto.MachinePunchDTO, error) {
	if f.fail {
		return nil, fmt.Errorf("mesin tidak merespons")
	}
	if page > 1 {
		return nil, nil
	}
	f.pulls++
	id := fmt.Sprintf("pull-%d", f.pulls)
	return []dto.MachinePunchDTO{{
		Id:           &id,
		EmployeeCode: "EMP01",
		PunchTime:    start.Format("2006-01-02") + " 08:00:00",
		PunchState:   "0",
	}}, nil
}

func (f *fakeMachineAPI) FetchEmployeePage(page, pageSize int) ([]dto.MachineEmployeeDTO, error) {
	return nil, nil
}

type fakePunchStore struct {
	seen map[string]bool
}

func (f *fakePunchStore) ExistsBySourceLogId(id string) (bool, error) { return f.seen[id], nil }
func (f *fakePunchStore) ExistsByEvent(t time.Time, code, dir string) (bool, error) {
	return false, nil
}
func (f *fakePunchStore) Insert(log *machineModel.MachinePunchLog) error {
	if log.MachinePunchLogSourceLogId != nil {
		f.seen[*log.MachinePunchLogSourceLogId] = true
	}
	return nil
}
func (f *fakePunchStore) LatestPunchTime() (*time.Time, error) { return nil, nil }

type fakeQueueStore struct {
	items map[uuid.UUID]model.PollingQueueItemModel
	seq   time.Time
}

func newFakeQueueStore() *fakeQueueStore {
	return &fakeQueueStore{
		items: map[uuid.UUID]model.PollingQueueItemModel{},
		seq:   time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeQueueStore) Pending() ([]model.PollingQueueItemModel, error) {
	var out []model.PollingQueueItemModel
	for _, it := range f.items {
		if it.PollingQueueItemStatus == model.StatusPending {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeQueueStore) FindById(id uuid.UUID) (*model.PollingQueueItemModel, error) {
	it, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

// Save meniru default DB: id dan enqueued_at diisi saat insert pertama.
func (f *fakeQueueStore) Save(item *model.PollingQueueItemModel) error {
	if item.PollingQueueItemId == uuid.Nil {
		item.PollingQueueItemId = uuid.New()
	}
	if item.PollingQueueItemEnqueuedAt.IsZero() {
		f.seq = f.seq.Add(time.Second)
		item.PollingQueueItemEnqueuedAt = f.seq
	}
	f.items[item.PollingQueueItemId] = *item
	return nil
}

type fakeReprocessor struct {
	calls int
	err   error
}

func (f *fakeReprocessor) ProcessRecent() (int, error) {
	f.calls++
	return 0, f.err
}

func newTestOrchestrator(store QueueStore, api *fakeMachineAPI, reprocess Reprocessor) *Orchestrator {
	ingest := machineService.NewIngestService(api, &fakePunchStore{seen: map[string]bool{}})
	return NewOrchestrator(store, ingest, reprocess)
}

/* =========================================================
 * TESTS
 * ========================================================= */

func TestPickNextPriorityThenEnqueueOrder(t *testing.T) {
	base := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	items := []model.PollingQueueItemModel{
		{PollingQueueItemId: uuid.New(), PollingQueueItemPriority: 2,
			PollingQueueItemStatus: model.StatusPending, PollingQueueItemEnqueuedAt: base},
		{PollingQueueItemId: uuid.New(), PollingQueueItemPriority: 1,
			PollingQueueItemStatus: model.StatusPending, PollingQueueItemEnqueuedAt: base.Add(2 * time.Second)},
		{PollingQueueItemId: uuid.New(), PollingQueueItemPriority: 1,
			PollingQueueItemStatus: model.StatusPending, PollingQueueItemEnqueuedAt: base.Add(1 * time.Second)},
	}

	next := PickNext(items)
	require.NotNil(t, next)
	assert.Equal(t, 1, next.PollingQueueItemPriority)
	assert.Equal(t, items[2].PollingQueueItemId, next.PollingQueueItemId) // seri prioritas → paling awal masuk

	// Item non-pending tidak pernah terpilih.
	items[1].PollingQueueItemStatus = model.StatusProcessing
	items[2].PollingQueueItemStatus = model.StatusCancelled
	next = PickNext(items)
	require.NotNil(t, next)
	assert.Equal(t, 2, next.PollingQueueItemPriority)

	assert.Nil(t, PickNext(nil))
}

func TestEnqueueRejectsUnknownType(t *testing.T) {
	orch := newTestOrchestrator(newFakeQueueStore(), &fakeMachineAPI{}, nil)
	_, err := orch.Enqueue("bulk_delete", time.Now(), nil, 1)
	require.Error(t, err)
}

func TestCancelOnlyPendingItems(t *testing.T) {
	store := newFakeQueueStore()
	orch := newTestOrchestrator(store, &fakeMachineAPI{}, nil)

	item, err := orch.Enqueue(model.RequestTypeMissingData, time.Now(), nil, 3)
	require.NoError(t, err)

	cancelled, err := orch.Cancel(item.PollingQueueItemId)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, cancelled.PollingQueueItemStatus)
	assert.NotNil(t, cancelled.PollingQueueItemCancelledAt)

	// Sudah cancelled → tidak bisa dibatalkan lagi.
	_, err = orch.Cancel(item.PollingQueueItemId)
	require.Error(t, err)

	_, err = orch.Cancel(uuid.New())
	require.Error(t, err)
}

func TestTickEmptyQueueIsNoop(t *testing.T) {
	orch := newTestOrchestrator(newFakeQueueStore(), &fakeMachineAPI{}, nil)
	orch.Tick()
	assert.False(t, orch.Status().Busy)
}

func TestTickProcessesSingleDateItem(t *testing.T) {
	store := newFakeQueueStore()
	api := &fakeMachineAPI{}
	orch := newTestOrchestrator(store, api, nil)

	item, err := orch.Enqueue(model.RequestTypeMissingData,
		time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), nil, 2)
	require.NoError(t, err)

	orch.Tick()

	done, err := store.FindById(item.PollingQueueItemId)
	require.NoError(t, err)
	require.NotNil(t, done)
	assert.Equal(t, model.StatusCompleted, done.PollingQueueItemStatus)
	assert.NotNil(t, done.PollingQueueItemStartedAt)
	assert.NotNil(t, done.PollingQueueItemFinishedAt)
	assert.Nil(t, done.PollingQueueItemErrorMessage)
	assert.Equal(t, 1, api.pulls)
}

func TestTickDateRangeTracksDayProgress(t *testing.T) {
	store := newFakeQueueStore()
	api := &fakeMachineAPI{}
	orch := newTestOrchestrator(store, api, nil)

	start := time.Date(2026, 8, 18, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	item, err := orch.Enqueue(model.RequestTypeDateRange, start, &end, 1)
	require.NoError(t, err)

	orch.Tick()

	done, err := store.FindById(item.PollingQueueItemId)
	require.NoError(t, err)
	require.NotNil(t, done)
	assert.Equal(t, model.StatusCompleted, done.PollingQueueItemStatus)
	assert.Equal(t, 3, done.PollingQueueItemTotalRecords)     // 3 hari
	assert.Equal(t, 3, done.PollingQueueItemRecordsProcessed) // semua selesai
	assert.InDelta(t, 100, done.ProgressPercentage(), 0.01)
	assert.Equal(t, 3, api.pulls) // satu pull per hari
}

func TestTickDateRangeRejectsInvertedRange(t *testing.T) {
	store := newFakeQueueStore()
	orch := newTestOrchestrator(store, &fakeMachineAPI{}, nil)

	start := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -2)
	item, err := orch.Enqueue(model.RequestTypeDateRange, start, &end, 1)
	require.NoError(t, err)

	orch.Tick()

	done, _ := store.FindById(item.PollingQueueItemId)
	require.NotNil(t, done)
	assert.Equal(t, model.StatusFailed, done.PollingQueueItemStatus)
	require.NotNil(t, done.PollingQueueItemErrorMessage)
}

func TestTickMarksFailedOnTransportError(t *testing.T) {
	store := newFakeQueueStore()
	orch := newTestOrchestrator(store, &fakeMachineAPI{fail: true}, nil)

	item, err := orch.Enqueue(model.RequestTypeGapFill, time.Now(), nil, 1)
	require.NoError(t, err)

	orch.Tick()

	done, _ := store.FindById(item.PollingQueueItemId)
	require.NotNil(t, done)
	assert.Equal(t, model.StatusFailed, done.PollingQueueItemStatus)
	require.NotNil(t, done.PollingQueueItemErrorMessage)
	assert.Contains(t, *done.PollingQueueItemErrorMessage, "mesin tidak merespons")
}

func TestTickManualRepollTriggersReprocess(t *testing.T) {
	store := newFakeQueueStore()
	reprocess := &fakeReprocessor{}
	orch := newTestOrchestrator(store, &fakeMachineAPI{}, reprocess)

	item, err := orch.Enqueue(model.RequestTypeManualRepoll, time.Now(), nil, 1)
	require.NoError(t, err)

	orch.Tick()

	done, _ := store.FindById(item.PollingQueueItemId)
	require.NotNil(t, done)
	assert.Equal(t, model.StatusCompleted, done.PollingQueueItemStatus)
	assert.Equal(t, 1, reprocess.calls)
}

func TestTickProcessesOneItemPerCall(t *testing.T) {
	store := newFakeQueueStore()
	api := &fakeMachineAPI{}
	orch := newTestOrchestrator(store, api, nil)

	first, err := orch.Enqueue(model.RequestTypeMissingData, time.Now(), nil, 1)
	require.NoError(t, err)
	second, err := orch.Enqueue(model.RequestTypeMissingData, time.Now(), nil, 5)
	require.NoError(t, err)

	orch.Tick()

	a, _ := store.FindById(first.PollingQueueItemId)
	b, _ := store.FindById(second.PollingQueueItemId)
	assert.Equal(t, model.StatusCompleted, a.PollingQueueItemStatus) // prioritas 1 duluan
	assert.Equal(t, model.StatusPending, b.PollingQueueItemStatus)

	orch.Tick()
	b, _ = store.FindById(second.PollingQueueItemId)
	assert.Equal(t, model.StatusCompleted, b.PollingQueueItemStatus)
}
