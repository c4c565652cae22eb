package registrar

import "strings"

// DefaultCadence runs a job every 15 minutes.
const DefaultCadence = "*/15 * * * *"

// Entry is one schedule line: a 5-field cadence followed by the command.
// Fields are written verbatim; nothing is quoted or checked.
type Entry struct {
	Cadence     string
	Interpreter string
	Script      string
}

// String renders the line as it is written to the schedule.
func (e Entry) String() string {
	return strings.Join([]string{e.Cadence, e.Interpreter, e.Script}, " ")
}
