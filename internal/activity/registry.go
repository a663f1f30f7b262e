package activity

// Capabilities are display-level flags for a type. SupportsVoting is
// metadata only: whether votes are actually accepted is decided by the
// activity's validated config (voting_enabled), which can diverge from
// this flag. The two signals are kept independent on purpose.
type Capabilities struct {
	SupportsVoting  bool `json:"supports_voting"`
	UsesInitiatives bool `json:"uses_initiatives"`
}

// TypeInfo is the registry entry for one activity type.
type TypeInfo struct {
	DisplayName  string       `json:"display_name"`
	Capabilities Capabilities `json:"capabilities"`
}

var registry = map[Type]TypeInfo{
	TypeBrainstorm: {
		DisplayName:  "Brainstorm",
		Capabilities: Capabilities{SupportsVoting: true},
	},
	TypeAssignment: {
		DisplayName:  "Assignment",
		Capabilities: Capabilities{SupportsVoting: false},
	},
	TypeStocktake: {
		DisplayName:  "Stocktake",
		Capabilities: Capabilities{UsesInitiatives: true},
	},
}

// Lookup returns the registry entry for a tag. Unknown tags miss rather
// than erroring so read paths stay resilient to partially-migrated data.
func Lookup(tag string) (TypeInfo, bool) {
	info, ok := registry[Type(tag)]
	return info, ok
}

// DisplayName returns the type's display name, falling back to the raw
// tag for unknown types.
func DisplayName(tag string) string {
	if info, ok := registry[Type(tag)]; ok {
		return info.DisplayName
	}
	return tag
}

// CapabilitiesFor returns the type's capability flags; zero value for
// unknown types.
func CapabilitiesFor(tag string) Capabilities {
	return registry[Type(tag)].Capabilities
}
