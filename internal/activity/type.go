// Package activity defines the closed set of activity types and the
// per-type configuration contracts. It is pure domain logic: no I/O, no
// store access, failures returned as values.
package activity

// Type tags the kind of an activity. The set is closed; adding a kind
// means adding a constant here plus registry metadata, a config schema,
// and server hooks.
type Type string

const (
	TypeBrainstorm Type = "brainstorm"
	TypeAssignment Type = "assignment"
	TypeStocktake  Type = "stocktake"
)

// ParseType maps a raw tag to a known Type.
func ParseType(tag string) (Type, bool) {
	switch Type(tag) {
	case TypeBrainstorm, TypeAssignment, TypeStocktake:
		return Type(tag), true
	}
	return "", false
}

// ValidationError reports a config or input field that failed its
// contract. It is returned as a value so callers can map it to a 4xx
// with details.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}
