package config

const (
	DefaultTimeZone = "America/Sao_Paulo"

	// Paged fetch size when reading persisted expenses
	FetchPageSize = 1000

	// Days between the spreadsheet serial epoch (1899-12-30) and the Unix epoch
	SerialEpochOffsetDays = 25569

	// Default service ports, overridable via services.yaml
	DefaultGatewayPort = 8081
	DefaultExpensePort = 6143
	DefaultGoalsPort   = 4143
)
