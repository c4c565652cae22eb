package i18n

// Error message keys
const (
	ErrGeneric              = "error_generic"
	ErrSchedulerUnavailable = "error_scheduler_unavailable"
	ErrInvalidSchedule      = "error_invalid_schedule"
	ErrUnknownBackend       = "error_unknown_backend"
	ErrMissingScheduleFile  = "error_missing_schedule_file"
)

// Status message keys
const (
	StatusInstalling = "status_installing"
	StatusInstalled  = "status_installed"
	StatusDryRun     = "status_dry_run"
	StatusListHeader = "status_list_header"
	StatusListEmpty  = "status_list_empty"
)
