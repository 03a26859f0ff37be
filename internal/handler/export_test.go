package handler

import "time"

// SetReportClock overrides the report handler's time source in tests.
func SetReportClock(h *ReportHandler, now func() time.Time) {
	h.now = now
}
