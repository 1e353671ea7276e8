package session

import "strings"

// Interview types accepted by Config.Type.
const (
	TypeTechnical  = "technical"
	TypeBehavioral = "behavioral"
	TypeMixed      = "mixed"
)

// Input methods accepted by Config.InputMethod.
const (
	InputVoice = "voice"
	InputText  = "text"
	InputBoth  = "both"
)

// Config is the interview configuration chosen before a session starts.
// It is immutable once the controller transitions to Active.
type Config struct {
	Role                 string `json:"role"`
	CustomJobDescription string `json:"customJobDescription"`
	Type                 string `json:"interviewType"`
	Difficulty           int    `json:"difficulty"` // 1..4
	Duration             int    `json:"duration"`   // minutes, 10..60
	InputMethod          string `json:"inputMethod"`
}

// Validate checks the configuration against the rules the backend enforces.
// Exactly one of Role and CustomJobDescription must be set.
func (c Config) Validate() error {
	role := strings.TrimSpace(c.Role)
	desc := strings.TrimSpace(c.CustomJobDescription)
	if role == "" && desc == "" {
		return &ValidationError{Field: "role", Message: "either a role or a custom job description is required"}
	}
	if role != "" && desc != "" {
		return &ValidationError{Field: "role", Message: "role and custom job description are mutually exclusive"}
	}
	switch c.Type {
	case TypeTechnical, TypeBehavioral, TypeMixed:
	default:
		return &ValidationError{Field: "interviewType", Message: "must be technical, behavioral or mixed"}
	}
	if c.Difficulty < 1 || c.Difficulty > 4 {
		return &ValidationError{Field: "difficulty", Message: "must be between 1 and 4"}
	}
	if c.Duration < 10 || c.Duration > 60 {
		return &ValidationError{Field: "duration", Message: "must be between 10 and 60 minutes"}
	}
	switch c.InputMethod {
	case InputVoice, InputText, InputBoth:
	default:
		return &ValidationError{Field: "inputMethod", Message: "must be voice, text or both"}
	}
	return nil
}
