package constants

// SessionState represents the current state of the TUI application
type SessionState int

const (
	StateCalendar SessionState = iota
	StatePool
	StateUpcoming
	StateMissionForm
	StateHabitForm
	StatePoolForm
	StateConfirmDeleteTemplate
	StateConfirmDeleteMission
)

const (
	AppName            = "polaris"
	DefaultKeyringUser = "api-token"
	Version            = "v0.3.0"

	// DefaultAPIURL is the backend base URL when neither the --api-url flag
	// nor POLARIS_API_URL is set.
	DefaultAPIURL = "http://localhost:8000/api/v1"

	// EnvAPIURL and EnvToken override the backend URL and bearer token.
	EnvAPIURL = "POLARIS_API_URL"
	EnvToken  = "POLARIS_TOKEN"

	// EnvIntentsDB overrides where the conversion intent log lives: a
	// postgres:// connection string for a shared server, or a sqlite file
	// path. Default is intents.db in the config directory.
	EnvIntentsDB = "POLARIS_INTENTS_DB"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time-of-day format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DefaultDropDurationMin is the duration assigned to a pool mission
	// dropped onto the calendar when the target slot has no usable end time.
	DefaultDropDurationMin = 60

	// MenuInset is the minimum gap kept between the action menu and the
	// calendar's bounding box when clamping its position.
	MenuInset = 5

	// SuccessMessageSeconds is how long transient success messages stay visible.
	SuccessMessageSeconds = 4

	// IntentLockfileName guards the conversion intent log against
	// concurrent drains from a second process.
	IntentLockfileName = "polaris-intents.lock"

	// IntentMaxAttempts caps retries of a compensating delete before the
	// intent is surfaced for manual cleanup.
	IntentMaxAttempts = 5
)
