// file: internals/features/attendance/polling/service/queue_store.go
package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"absensiku_backend/internals/features/attendance/polling/model"
)

type QueueStore interface {
	Pending() ([]model.PollingQueueItemModel, error)
	FindById(id uuid.UUID) (*model.PollingQueueItemModel, error)
	Save(item *model.PollingQueueItemModel) error
}

type gormQueueStore struct {
	db *gorm.DB
}

func NewQueueStore(db *gorm.DB) QueueStore {
	return &gormQueueStore{db: db}
}

func (s *gormQueueStore) Pending() ([]model.PollingQueueItemModel, error) {
	var rows []model.PollingQueueItemModel
	err := s.db.
		Where("polling_queue_item_status = ?", model.StatusPending).
		Order("polling_queue_item_priority ASC, polling_queue_item_enqueued_at ASC").
		Find(&rows).Error
	return rows, err
}

func (s *gormQueueStore) FindById(id uuid.UUID) (*model.PollingQueueItemModel, error) {
	var row model.PollingQueueItemModel
	err := s.db.Where("polling_queue_item_id = ?", id).Take(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *gormQueueStore) Save(item *model.PollingQueueItemModel) error {
	return s.db.Save(item).Error
}
