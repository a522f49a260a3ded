// pkg/model/report.go
package model

import "time"

// Report summarizes a single cleaning run over one table.
type Report struct {
	RowsBefore     int            `json:"rows_before"`
	RowsAfter      int            `json:"rows_after"`
	RemovedByStage map[string]int `json:"removed_by_stage,omitempty"`
	Duration       time.Duration  `json:"duration,omitempty"`
}

// RowsRemoved returns the total number of rows dropped across all stages.
func (r Report) RowsRemoved() int {
	return r.RowsBefore - r.RowsAfter
}
