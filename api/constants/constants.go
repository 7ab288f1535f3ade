package constants

// Common error messages
const (
	ErrInvalidJSON        = "invalid json or missing fields"
	ErrInvalidJSONShort   = "Invalid JSON"
	ErrDB                 = "DB error"
	ErrInvalidRequestBody = "Invalid request body"
	ErrFailedToQuery      = "Failed to query"
	ErrMethodNotAllowed   = "Method Not Allowed"
	ErrNoFile             = "No file uploaded"
	ErrUnsupportedFile    = "Unsupported file type"
	ErrEmptySheet         = "Spreadsheet has no data rows"
)

// DB / SQL error templates
const (
	ErrTxStartFailed  = "failed to start transaction: "
	ErrTxCommitFailed = "failed to commit transaction: "
	ErrQueryFailed    = "query failed: "
	FormatSQLError    = "ERROR: %s"
)

// Content Types
const (
	ContentTypeJSON = "application/json"
	ContentTypeText = "Content-Type"
)

// Date formats
const (
	DateTimeFormat = "2006-01-02 15:04:05"
	DateFormat     = "2006-01-02"
	DateFormatBR   = "02/01/2006"
)

// Sentinel values carried on mapped rows when the source sheet is missing a field
const (
	UnknownBranch   = "Desconhecido"
	UnknownVendor   = "Indefinido"
	UnknownCategory = "-"
)

// Payment status values
const (
	StatusPago   = "Pago"
	StatusAberto = "Aberto"
)

// MonthNamesBR indexes Portuguese month names by month number minus one.
var MonthNamesBR = [12]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}
