package scheduler

// Config holds configuration for scheduled runs.
type Config struct {
	// Spec is a standard five field cron expression.
	Spec string `mapstructure:"spec" default:"0 */6 * * *"`
	// TimeoutMinutes bounds a single scheduled job.
	TimeoutMinutes int `mapstructure:"timeout_minutes" default:"30"`
	// Timezone is the IANA location the spec is evaluated in.
	Timezone string `mapstructure:"timezone" default:"UTC"`
}
