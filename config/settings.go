package config

import (
	"github.com/kbukum/supplysched/applicability"
	"github.com/kbukum/supplysched/logger"
	"github.com/kbukum/supplysched/propagation"
	"github.com/kbukum/supplysched/validation"
)

// ScheduleSettings configures date resolution.
type ScheduleSettings struct {
	// BusinessDays makes anchor offsets skip weekends.
	BusinessDays bool `yaml:"business_days" mapstructure:"business_days"`
}

// PropagationSettings configures propagation runs.
type PropagationSettings struct {
	SkipComplete   bool `yaml:"skip_complete" mapstructure:"skip_complete"`
	SkipLocked     bool `yaml:"skip_locked" mapstructure:"skip_locked"`
	SkipOverridden bool `yaml:"skip_overridden" mapstructure:"skip_overridden"`
	MaxIterations  int  `yaml:"max_iterations" mapstructure:"max_iterations"`
}

// Settings is the application-level configuration for schedule tracking.
// Rank order and propagation policy live here because the engines take
// them as explicit inputs; nothing reads this struct implicitly.
type Settings struct {
	Name        string        `yaml:"name" mapstructure:"name"`
	Environment string        `yaml:"environment" mapstructure:"environment"`
	Debug       bool          `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
	// RankOrder lists rank labels from highest to lowest. Applicability
	// magnitude comparisons are positional in this list.
	RankOrder   []string            `yaml:"rank_order" mapstructure:"rank_order"`
	Schedule    ScheduleSettings    `yaml:"schedule" mapstructure:"schedule"`
	Propagation PropagationSettings `yaml:"propagation" mapstructure:"propagation"`
}

// DefaultSettings returns the settings a fresh deployment starts from:
// all instance protections on, calendar-day offsets, a bounded cascade.
func DefaultSettings(name string) Settings {
	return Settings{
		Name:        name,
		Environment: "development",
		Propagation: PropagationSettings{
			SkipComplete:   true,
			SkipLocked:     true,
			SkipOverridden: true,
			MaxIterations:  10,
		},
	}
}

// ApplyDefaults fills unset fields with their defaults.
func (s *Settings) ApplyDefaults() {
	if s.Environment == "" {
		s.Environment = "development"
	}
	if s.Environment == "development" {
		s.Debug = true
	}
	if s.Propagation.MaxIterations <= 0 {
		s.Propagation.MaxIterations = 10
	}
	if s.Logging.ServiceName == "" && s.Name != "" {
		s.Logging.ServiceName = s.Name
	}
	s.Logging.ApplyDefaults()
}

// Validate checks the settings and reports every problem at once.
func (s *Settings) Validate() error {
	v := validation.New().
		Required("name", s.Name).
		OneOf("environment", s.Environment, []string{"development", "staging", "production"}).
		Min("propagation.max_iterations", s.Propagation.MaxIterations, 1)

	seen := make(map[string]struct{}, len(s.RankOrder))
	for _, label := range s.RankOrder {
		if _, dup := seen[label]; dup {
			v.AddError("rank_order", "labels must be unique, duplicate "+label)
		}
		seen[label] = struct{}{}
	}

	if err := s.Logging.Validate(); err != nil {
		v.AddError("logging", err.Error())
	}

	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// Policy converts the propagation settings into an engine policy.
func (s *Settings) Policy() propagation.Policy {
	return propagation.Policy{
		SkipComplete:   s.Propagation.SkipComplete,
		SkipLocked:     s.Propagation.SkipLocked,
		SkipOverridden: s.Propagation.SkipOverridden,
		BusinessDays:   s.Schedule.BusinessDays,
	}
}

// Ranks converts the configured rank order for the applicability engine.
func (s *Settings) Ranks() applicability.RankOrder {
	return applicability.RankOrder(s.RankOrder)
}
