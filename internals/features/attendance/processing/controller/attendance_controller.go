// file: internals/features/attendance/processing/controller/attendance_controller.go
package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"absensiku_backend/internals/features/attendance/processing/model"
	"absensiku_backend/internals/features/attendance/processing/service"
	helper "absensiku_backend/internals/helpers"
	"absensiku_backend/internals/helpers/dbtime"
)

type AttendanceController struct {
	DB        *gorm.DB
	Processor *service.Processor
}

func NewAttendanceController(db *gorm.DB, processor *service.Processor) *AttendanceController {
	return &AttendanceController{DB: db, Processor: processor}
}

/* ===================== READ SURFACE ===================== */

// GET /attendance?employee_code=&start=&end=&page=&limit=
// Kontrak read-only untuk modul laporan/dashboard di luar core ini.
func (ctrl *AttendanceController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "date", "desc", helper.DefaultOpts)

	q := ctrl.DB.Model(&model.AttendanceRecordModel{})
	if code := c.Query("employee_code"); code != "" {
		q = q.Where("attendance_record_employee_code = ?", code)
	}
	if start := c.Query("start"); start != "" {
		d, err := time.ParseInLocation("2006-01-02", start, dbtime.CompanyLocation())
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Parameter start tidak valid")
		}
		q = q.Where("attendance_record_date >= ?", d)
	}
	if end := c.Query("end"); end != "" {
		d, err := time.ParseInLocation("2006-01-02", end, dbtime.CompanyLocation())
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Parameter end tidak valid")
		}
		q = q.Where("attendance_record_date <= ?", d)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.AttendanceRecordModel
	if err := q.Order("attendance_record_date DESC, attendance_record_employee_code ASC").
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "OK", fiber.Map{
		"items": rows,
		"meta":  helper.BuildMeta(total, p),
	})
}

// GET /attendance/summaries?start=&end=
func (ctrl *AttendanceController) ListSummaries(c *fiber.Ctx) error {
	q := ctrl.DB.Model(&model.DailySummaryModel{})
	if start := c.Query("start"); start != "" {
		d, err := time.ParseInLocation("2006-01-02", start, dbtime.CompanyLocation())
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Parameter start tidak valid")
		}
		q = q.Where("daily_summary_date >= ?", d)
	}
	if end := c.Query("end"); end != "" {
		d, err := time.ParseInLocation("2006-01-02", end, dbtime.CompanyLocation())
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Parameter end tidak valid")
		}
		q = q.Where("daily_summary_date <= ?", d)
	}

	var rows []model.DailySummaryModel
	if err := q.Order("daily_summary_date DESC").Limit(90).Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", rows)
}

/* ===================== TRIGGER MANUAL ===================== */

// POST /attendance/cycle — jalankan satu siklus penuh sekarang juga.
func (ctrl *AttendanceController) TriggerCycle(c *fiber.Ctx) error {
	res := ctrl.Processor.RunCycle()
	return helper.Success(c, "Siklus selesai", res)
}
