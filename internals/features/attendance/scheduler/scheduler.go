// file: internals/features/attendance/scheduler/scheduler.go
package scheduler

import (
	"log"
	"time"

	"absensiku_backend/internals/configs"
	pollingService "absensiku_backend/internals/features/attendance/polling/service"
	processingService "absensiku_backend/internals/features/attendance/processing/service"
)

// StartAttendanceCycleScheduler menjalankan siklus processor tiap 5 menit
// (override lewat ATTENDANCE_CYCLE_MINUTES). Satu instance saja — guard
// idempotensinya cuma existence-check, bukan lock.
func StartAttendanceCycleScheduler(p *processingService.Processor) {
	go func() {
		interval := time.Duration(configs.GetEnvInt("ATTENDANCE_CYCLE_MINUTES", 5)) * time.Minute

		for {
			log.Println("[CYCLE] Menjalankan siklus attendance...")
			res := p.RunCycle()
			if len(res.Errors) > 0 {
				log.Printf("[CYCLE] selesai dengan %d error", len(res.Errors))
			}
			time.Sleep(interval)
		}
	}()
}

// StartPollingScheduler: tick orchestrator tiap 30 detik (override lewat
// POLLING_TICK_SECONDS). Satu item per tick.
func StartPollingScheduler(o *pollingService.Orchestrator) {
	go func() {
		interval := time.Duration(configs.GetEnvInt("POLLING_TICK_SECONDS", 30)) * time.Second

		for {
			o.Tick()
			time.Sleep(interval)
		}
	}()
}
