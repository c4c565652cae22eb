package registrar

import (
	"github.com/robfig/cron/v3"
)

var cadenceParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ValidateCadence checks a standard 5-field expression
// (minute hour day-of-month month day-of-week) or a descriptor like @daily.
func ValidateCadence(cadence string) error {
	_, err := cadenceParser.Parse(cadence)
	return err
}
