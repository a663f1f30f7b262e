package activity

import "encoding/json"

// Config bounds and defaults. Out-of-range values are rejected, never
// clamped.
const (
	DefaultMaxSubmissions = 5
	MinSubmissions        = 1
	MaxSubmissions        = 50
	DefaultPointsBudget   = 100
	DefaultTimeLimitSec   = 300
	MinTimeLimitSec       = 30
)

// Config is a normalized, fully-defaulted activity configuration.
// Which fields are meaningful depends on Type: stocktake carries only
// TimeLimitSec; prompts exist only for assignment.
type Config struct {
	Type           Type     `json:"-"`
	VotingEnabled  bool     `json:"voting_enabled"`
	MaxSubmissions int      `json:"max_submissions"`
	PointsBudget   int      `json:"points_budget"`
	TimeLimitSec   int      `json:"time_limit_sec"`
	Prompts        []string `json:"prompts"`
}

// MarshalJSON emits only the fields that belong to the config's type,
// so a stored stocktake config never grows brainstorm fields.
func (c Config) MarshalJSON() ([]byte, error) {
	switch c.Type {
	case TypeStocktake:
		return json.Marshal(struct {
			TimeLimitSec int `json:"time_limit_sec"`
		}{c.TimeLimitSec})
	case TypeAssignment:
		prompts := c.Prompts
		if prompts == nil {
			prompts = []string{}
		}
		return json.Marshal(struct {
			VotingEnabled  bool     `json:"voting_enabled"`
			MaxSubmissions int      `json:"max_submissions"`
			PointsBudget   int      `json:"points_budget"`
			TimeLimitSec   int      `json:"time_limit_sec"`
			Prompts        []string `json:"prompts"`
		}{c.VotingEnabled, c.MaxSubmissions, c.PointsBudget, c.TimeLimitSec, prompts})
	default:
		return json.Marshal(struct {
			VotingEnabled  bool `json:"voting_enabled"`
			MaxSubmissions int  `json:"max_submissions"`
			PointsBudget   int  `json:"points_budget"`
			TimeLimitSec   int  `json:"time_limit_sec"`
		}{c.VotingEnabled, c.MaxSubmissions, c.PointsBudget, c.TimeLimitSec})
	}
}

// rawConfig is the loosely-typed inbound shape. Pointers distinguish
// "absent, apply default" from "present, validate".
type rawConfig struct {
	VotingEnabled  *bool     `json:"voting_enabled"`
	MaxSubmissions *int      `json:"max_submissions"`
	PointsBudget   *int      `json:"points_budget"`
	TimeLimitSec   *int      `json:"time_limit_sec"`
	Prompts        *[]string `json:"prompts"`
}

// ValidateConfig checks a raw configuration document against the
// schema of the given type and returns the normalized, fully-defaulted
// config. A nil or empty document means all defaults. Unknown type tags
// fail; so does any out-of-range field.
func ValidateConfig(tag string, raw []byte) (Config, *ValidationError) {
	t, ok := ParseType(tag)
	if !ok {
		return Config{}, &ValidationError{Message: "Unknown activity type"}
	}

	var rc rawConfig
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &rc); err != nil {
			return Config{}, &ValidationError{Message: "config must be a JSON object with correctly typed fields"}
		}
	}

	cfg := Config{Type: t}

	timeLimit := DefaultTimeLimitSec
	if rc.TimeLimitSec != nil {
		timeLimit = *rc.TimeLimitSec
	}
	if timeLimit < MinTimeLimitSec {
		return Config{}, &ValidationError{Field: "time_limit_sec", Message: "must be at least 30 seconds"}
	}
	cfg.TimeLimitSec = timeLimit

	if t == TypeStocktake {
		// Stocktake has no submission or voting knobs.
		return cfg, nil
	}

	cfg.VotingEnabled = true
	if rc.VotingEnabled != nil {
		cfg.VotingEnabled = *rc.VotingEnabled
	}

	maxSubs := DefaultMaxSubmissions
	if rc.MaxSubmissions != nil {
		maxSubs = *rc.MaxSubmissions
	}
	if maxSubs < MinSubmissions || maxSubs > MaxSubmissions {
		return Config{}, &ValidationError{Field: "max_submissions", Message: "must be between 1 and 50"}
	}
	cfg.MaxSubmissions = maxSubs

	budget := DefaultPointsBudget
	if rc.PointsBudget != nil {
		budget = *rc.PointsBudget
	}
	if budget <= 0 {
		return Config{}, &ValidationError{Field: "points_budget", Message: "must be a positive integer"}
	}
	cfg.PointsBudget = budget

	if t == TypeAssignment {
		prompts := []string{}
		if rc.Prompts != nil {
			prompts = *rc.Prompts
		}
		for _, p := range prompts {
			if p == "" {
				return Config{}, &ValidationError{Field: "prompts", Message: "prompts must be non-empty strings"}
			}
		}
		cfg.Prompts = prompts
	}

	return cfg, nil
}

// ParseStoredConfig reloads a config document that already passed
// validation at write time. Rows predating a schema change may no
// longer validate; those degrade to the type's defaults rather than
// failing the read path.
func ParseStoredConfig(tag string, stored []byte) Config {
	cfg, verr := ValidateConfig(tag, stored)
	if verr != nil {
		cfg, _ = ValidateConfig(tag, nil)
	}
	return cfg
}
