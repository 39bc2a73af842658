package model

import "time"

// Name identifies a recognized feature flag.
type Name string

const (
	GlobalAutomation    Name = "global_automation"
	AutoShortlisting    Name = "auto_shortlisting"
	AutoPromotion       Name = "auto_promotion"
	NegotiationBot      Name = "negotiation_bot"
	GeminiParsing       Name = "gemini_parsing"
	GeminiResponses     Name = "gemini_responses"
	CalendarIntegration Name = "calendar_integration"
	NoShowPrediction    Name = "no_show_prediction"
)

// jobScopedFlags lists the flags a per-job automation_enabled=false override can disable.
var jobScopedFlags = map[Name]bool{
	GlobalAutomation: true,
	AutoShortlisting: true,
	AutoPromotion:    true,
}

// IsJobScoped reports whether job.automation_enabled=false can turn this flag off.
func IsJobScoped(n Name) bool {
	return jobScopedFlags[n]
}

// FeatureFlag is a global on/off switch, optionally overridden per job.
type FeatureFlag struct {
	Name        Name
	Enabled     bool
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FeatureFlagDTO is the API representation of a FeatureFlag.
type FeatureFlagDTO struct {
	Name        Name      `json:"name"`
	Enabled     bool      `json:"enabled"`
	Description string    `json:"description"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (f *FeatureFlag) ToDTO() *FeatureFlagDTO {
	return &FeatureFlagDTO{
		Name:        f.Name,
		Enabled:     f.Enabled,
		Description: f.Description,
		UpdatedAt:   f.UpdatedAt,
	}
}

// UpdateFlagRequest represents an admin request to toggle a flag.
type UpdateFlagRequest struct {
	Enabled bool `json:"enabled"`
}
