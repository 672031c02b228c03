package service

import "fmt"

// paramLabels spells parameters the way client-facing messages have always named them
var paramLabels = map[string]string{
	"cpr": "CPR",
}

// ValidationError reports a missing required input. It is raised before any backend call.
// Field is the query parameter name.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	label, ok := paramLabels[e.Field]
	if !ok {
		label = e.Field
	}
	return fmt.Sprintf("%s parameter is required", label)
}
