package route

import (
	"github.com/gofiber/fiber/v2"

	machineCtrl "absensiku_backend/internals/features/attendance/machine/controller"
	"absensiku_backend/internals/features/attendance/machine/service"
)

func MachineRoutes(r fiber.Router, sync *service.EmployeeSyncService) {
	ctrl := machineCtrl.NewMachineController(sync)

	// =====================
	// Mesin Absensi
	// =====================
	group := r.Group("/machine")
	group.Post("/sync-employees", ctrl.SyncEmployees)
	group.Get("/employees/findings", ctrl.EmployeeFindings)
}
