package recorder

import "StockScreener/internal/model"

// ScanRun holds everything persisted about one completed scan.
type ScanRun struct {
	Request model.ScanRequest
	Result  *model.ScanResult
}

// Recorder persists scan history for later analysis.
type Recorder interface {
	RecordScan(run *ScanRun) error
	Close() error
}
