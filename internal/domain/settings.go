package domain

// Setting keys in the settings store. Each key maps to its own typed value;
// defaults apply when a key is absent.
const (
	SettingBusinessHours         = "business_hours"
	SettingMaxConcurrentSessions = "max_concurrent_sessions"
	SettingProofRequired         = "proof_required"
	SettingAutoArchiveDays       = "auto_archive_days"
)

// MaxConcurrentSetting is the value blob for max_concurrent_sessions
type MaxConcurrentSetting struct {
	Count int `json:"count"`
}

// ProofRequiredSetting is the value blob for proof_required
type ProofRequiredSetting struct {
	Enabled bool `json:"enabled"`
}

// AutoArchiveSetting is the value blob for auto_archive_days
type AutoArchiveSetting struct {
	Days int `json:"days"`
}

// ScheduleSettings bundles everything the scheduling core reads per request
type ScheduleSettings struct {
	BusinessHours         BusinessHours
	MaxConcurrentSessions int
	ProofRequired         bool
	AutoArchiveDays       int
}

// DefaultScheduleSettings returns the settings applied when the store is empty
func DefaultScheduleSettings() ScheduleSettings {
	return ScheduleSettings{
		BusinessHours:         DefaultBusinessHours(),
		MaxConcurrentSessions: DefaultMaxConcurrentSessions,
		ProofRequired:         DefaultProofRequired,
		AutoArchiveDays:       DefaultAutoArchiveDays,
	}
}
