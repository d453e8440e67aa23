// file: internals/features/attendance/polling/controller/queue_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"absensiku_backend/internals/features/attendance/polling/dto"
	"absensiku_backend/internals/features/attendance/polling/model"
	"absensiku_backend/internals/features/attendance/polling/service"
	helper "absensiku_backend/internals/helpers"
	"absensiku_backend/internals/helpers/dbtime"
)

type QueueController struct {
	DB           *gorm.DB
	Orchestrator *service.Orchestrator
}

func NewQueueController(db *gorm.DB, orch *service.Orchestrator) *QueueController {
	return &QueueController{DB: db, Orchestrator: orch}
}

/* ===================== ENQUEUE ===================== */
// POST /polling-queue
func (ctrl *QueueController) Enqueue(c *fiber.Ctx) error {
	var req dto.EnqueueRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}

	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	target, end, err := req.ParsedDates(dbtime.CompanyLocation())
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Format tanggal tidak valid")
	}

	priority := 5
	if req.Priority != nil {
		priority = *req.Priority
	}

	item, err := ctrl.Orchestrator.Enqueue(req.RequestType, target, end, priority)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Request masuk antrian", dto.ToQueueItemResponse(item))
}

/* ===================== CANCEL ===================== */
// POST /polling-queue/:id/cancel
func (ctrl *QueueController) Cancel(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Id tidak valid")
	}

	item, err := ctrl.Orchestrator.Cancel(id)
	if err != nil {
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}
	return helper.Success(c, "Item dibatalkan", dto.ToQueueItemResponse(item))
}

/* ===================== DETAIL ===================== */
// GET /polling-queue/:id
func (ctrl *QueueController) GetById(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Id tidak valid")
	}

	var item model.PollingQueueItemModel
	if err := ctrl.DB.Where("polling_queue_item_id = ?", id).Take(&item).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Item tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", dto.ToQueueItemResponse(&item))
}

/* ===================== LIST ===================== */
// GET /polling-queue?status=&page=&limit=
func (ctrl *QueueController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "enqueued_at", "desc", helper.AdminOpts)

	q := ctrl.DB.Model(&model.PollingQueueItemModel{})
	if status := c.Query("status"); status != "" {
		q = q.Where("polling_queue_item_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	orderClause, err := p.SafeOrderClause(map[string]string{
		"enqueued_at": "polling_queue_item_enqueued_at",
		"priority":    "polling_queue_item_priority",
		"status":      "polling_queue_item_status",
	}, "enqueued_at")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var rows []model.PollingQueueItemModel
	if err := q.Order(strings.TrimPrefix(orderClause, "ORDER BY ")).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	items := make([]dto.QueueItemResponse, 0, len(rows))
	for i := range rows {
		items = append(items, dto.ToQueueItemResponse(&rows[i]))
	}

	return helper.Success(c, "OK", fiber.Map{
		"items": items,
		"meta":  helper.BuildMeta(total, p),
	})
}

/* ===================== STATUS ORKESTRATOR ===================== */
// GET /polling-queue/orchestrator/status
func (ctrl *QueueController) OrchestratorStatus(c *fiber.Ctx) error {
	return helper.Success(c, "OK", ctrl.Orchestrator.Status())
}
