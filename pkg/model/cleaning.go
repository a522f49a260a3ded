// pkg/model/cleaning.go
package model

import (
	"time"
)

// Cleaning operation types
const (
	OpRowRemoved   = "row_removed"
	OpValueTrimmed = "value_trimmed"
	OpValueCoerced = "value_coerced"
)

// Cleaning reasons
const (
	ReasonMissingName    = "missing_name"
	ReasonWhitespace     = "surrounding_whitespace"
	ReasonAgeOutOfRange  = "age_out_of_range"
	ReasonAgeNotNumeric  = "age_not_numeric"
	ReasonAgeNormalized  = "age_normalized"
	ReasonEmailMissingAt = "email_missing_at_sign"
	ReasonDuplicateEmail = "duplicate_email"
	ReasonInvalidDate    = "invalid_date"
)

// CleaningOperation records a single repair or removal performed by the pipeline
type CleaningOperation struct {
	Dataset       string    // Logical dataset name (e.g. input file stem)
	ColumnName    string    // Column that triggered the operation
	RowIndex      int       // Zero-based row index in the stage's input table
	OriginalValue string    // Value before the operation
	NewValue      string    // Value after the operation (empty for removals)
	Operation     string    // Type of operation performed (e.g. "row_removed")
	Reason        string    // Reason for the operation (e.g. "duplicate_email")
	AppliedAt     time.Time // When the operation occurred
}
