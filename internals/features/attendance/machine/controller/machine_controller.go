// file: internals/features/attendance/machine/controller/machine_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	"absensiku_backend/internals/features/attendance/machine/service"
	helper "absensiku_backend/internals/helpers"
)

type MachineController struct {
	EmployeeSync *service.EmployeeSyncService
}

func NewMachineController(sync *service.EmployeeSyncService) *MachineController {
	return &MachineController{EmployeeSync: sync}
}

// POST /machine/sync-employees — mirror master karyawan dari mesin sekarang.
func (ctrl *MachineController) SyncEmployees(c *fiber.Ctx) error {
	res, err := ctrl.EmployeeSync.SyncEmployees()
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}
	return helper.Success(c, "Sync karyawan selesai", res)
}

// GET /machine/employees/findings — temuan kualitas data master karyawan.
func (ctrl *MachineController) EmployeeFindings(c *fiber.Ctx) error {
	findings, err := ctrl.EmployeeSync.ValidateEmployees()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", fiber.Map{
		"total":    len(findings),
		"findings": findings,
	})
}
