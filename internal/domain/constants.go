package domain

// Default configuration values
const (
	DefaultMaxConcurrentSessions = 3
	DefaultProofRequired         = true
	DefaultAutoArchiveDays       = 7
	DefaultSessionDuration       = 60 // minutes, when a package has no estimate
	DefaultBusinessOpen          = "14:00"
	DefaultBusinessClose         = "22:00"
)

// Business validation constants
const (
	MinConcurrentSessions = 1
	MaxConcurrentSessions = 10
	MinAutoArchiveDays    = 1
	MaxAutoArchiveDays    = 365
	MaxNotesLength        = 2000
	MaxReasonLength       = 500
	MaxRoomCodeLength     = 32
)

// Slot grid constants
const (
	SlotDurationMinutes = 30 // grid granularity
	GridPaddingMinutes  = 60 // padding around the business-hours span
	GridDays            = 7  // days covered by one grid
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
