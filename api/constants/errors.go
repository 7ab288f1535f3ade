package constants

import "fmt"

// ============================================================================
// FILE UPLOAD ERRORS
// ============================================================================

const (
	ErrFileUploadFailed  = "File upload failed. Please check the file format and try again"
	ErrInvalidFileFormat = "Invalid file format. Please upload a valid spreadsheet or CSV file"
	ErrFileTooLarge      = "File size exceeds the maximum limit"
	ErrFileParsingFailed = "Failed to parse file contents. Please check the file format"
	ErrEmptyFile         = "Uploaded file is empty"
	ErrInvalidHeaders    = "File has invalid or missing column headers"
	ErrInvalidDataRow    = "Invalid data found in row %d: %s"
)

// ============================================================================
// IMPORT & SYNC ERRORS
// ============================================================================

const (
	ErrInvalidPeriod   = "Invalid reference period. Month must be between 1 and 12"
	ErrNoNewRows       = "There are no new rows to sync"
	ErrSyncFailed      = "Failed to sync rows to the store. Please try again"
	ErrFetchFailed     = "Failed to fetch persisted rows. Previously loaded data is unchanged"
	ErrDuplicateEntry  = "This entry already exists in the system"
	ErrRecordNotFound  = "Record not found in the database"
	ErrInternalServer  = "Internal server error. Please contact support"
	ErrOperationFailed = "Operation failed. Please try again"
	ErrNoDataFound     = "No data found matching your criteria"
)

// ============================================================================
// GOAL PROJECTION ERRORS
// ============================================================================

const (
	ErrMissingSalesFiles   = "All three sales files must be selected before processing"
	ErrProjectionNotFound  = "Projection not found in the history"
	ErrInvalidStatusChange = "Invalid projection status transition"
	ErrProjectionNameInUse = "A projection with this name already exists for this period"
	ErrEmptyProjectionRows = "Projection has no rows to save"
)

// ============================================================================
// SUCCESS MESSAGES
// ============================================================================

const (
	SuccessSynced    = "Sync completed. %d new rows persisted"
	SuccessUploaded  = "File uploaded successfully. %d records processed"
	SuccessPublished = "Projection published successfully"
	SuccessArchived  = "Projection archived successfully"
)

// FormatError formats an error message with additional context
func FormatError(baseError string, context ...interface{}) string {
	if len(context) == 0 {
		return baseError
	}
	return fmt.Sprintf(baseError, context...)
}

// FormatRowError formats an error for a specific data row
func FormatRowError(rowNum int, reason string) string {
	return fmt.Sprintf(ErrInvalidDataRow, rowNum, reason)
}
