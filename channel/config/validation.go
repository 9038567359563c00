package config

import (
	"fmt"
	"strings"
)

// Validation helper functions
func validatePositive(field string, value float64) []ValidationError {
	if value <= 0 {
		return []ValidationError{{
			Field:   field,
			Message: "must be positive",
		}}
	}
	return nil
}

func validateNonNegative(field string, value float64) []ValidationError {
	if value < 0 {
		return []ValidationError{{
			Field:   field,
			Message: "must be non-negative",
		}}
	}
	return nil
}

func validateInRange(field string, value, min, max float64) []ValidationError {
	if value < min || value > max {
		return []ValidationError{{
			Field:   field,
			Message: fmt.Sprintf("must be between %v and %v", min, max),
		}}
	}
	return nil
}

// ValidationError represents a structured validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FormatValidationErrors formats validation errors grouped by config section
func FormatValidationErrors(errs []ValidationError) string {
	if len(errs) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Validation Errors:\n")

	categories := map[string][]ValidationError{}
	for _, err := range errs {
		category := strings.Split(err.Field, ".")[0]
		categories[category] = append(categories[category], err)
	}

	for category, categoryErrors := range categories {
		b.WriteString(fmt.Sprintf("\n%s:\n", strings.ToUpper(category)))
		for _, err := range categoryErrors {
			field := strings.TrimPrefix(err.Field, category+".")
			if field == category {
				field = "general"
			}
			b.WriteString(fmt.Sprintf("  - %s: %s\n", field, err.Message))
		}
	}

	return b.String()
}

// Validate performs validation on the entire configuration
func (c *ScenarioConfig) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, c.Environment.Validate()...)
	errors = append(errors, c.Geometry.Validate(&c.Environment)...)
	errors = append(errors, c.Signal.Validate()...)
	errors = append(errors, c.Simulation.Validate(&c.Signal)...)
	return errors
}

func (e *Environment) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, validatePositive("environment.depth", e.Depth)...)
	errors = append(errors, validateNonNegative("environment.wind_speed", e.WindSpeed)...)
	if e.Density != 0 {
		errors = append(errors, validateInRange("environment.density", e.Density, 900, 1200)...)
	}
	if e.Salinity != 0 {
		errors = append(errors, validateInRange("environment.salinity", e.Salinity, 0, 45)...)
	}

	for depth, speed := range e.SoundSpeedProfile.Inline {
		if depth < 0 || depth > e.Depth {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("environment.sound_speed_profile.inline.%g", depth),
				Message: "profile depth outside water column",
			})
		}
		if speed < 1300 || speed > 1700 {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("environment.sound_speed_profile.inline.%g", depth),
				Message: "sound speed must be between 1300 and 1700 m/s",
			})
		}
	}

	if e.Bottom.SoundSpeed != 0 || e.Bottom.Density != 0 {
		errors = append(errors, validatePositive("environment.bottom.sound_speed", e.Bottom.SoundSpeed)...)
		errors = append(errors, validatePositive("environment.bottom.density", e.Bottom.Density)...)
	}

	return errors
}

func (g *Geometry) Validate(env *Environment) []ValidationError {
	var errors []ValidationError

	errors = append(errors, validateNonNegative("geometry.source.depth", g.Source.Depth)...)
	errors = append(errors, validateNonNegative("geometry.receiver.depth", g.Receiver.Depth)...)

	if env.Depth > 0 {
		if g.Source.Depth > env.Depth {
			errors = append(errors, ValidationError{
				Field:   "geometry.source.depth",
				Message: "source is below the seabed",
			})
		}
		if g.Receiver.Depth > env.Depth {
			errors = append(errors, ValidationError{
				Field:   "geometry.receiver.depth",
				Message: "receiver is below the seabed",
			})
		}
	}

	if g.Source.Range == g.Receiver.Range && g.Source.Depth == g.Receiver.Depth {
		errors = append(errors, ValidationError{
			Field:   "geometry",
			Message: "source and receiver may not be co-located",
		})
	}

	return errors
}

func (s *Signal) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, validatePositive("signal.sample_rate", s.SampleRate)...)

	if s.Wav.Path == "" {
		switch s.Synth.Kind {
		case "":
			errors = append(errors, ValidationError{
				Field:   "signal",
				Message: "either wav.path or synth.kind must be specified",
			})
		case "chirp", "whistle", "clicks":
			errors = append(errors, validatePositive("signal.synth.duration", s.Synth.Duration)...)
			errors = append(errors, validatePositive("signal.synth.f0", s.Synth.F0)...)
		default:
			errors = append(errors, ValidationError{
				Field:   "signal.synth.kind",
				Message: fmt.Sprintf("unknown kind '%s' (want chirp, whistle, or clicks)", s.Synth.Kind),
			})
		}
	}

	return errors
}

func (s *Simulation) Validate(sig *Signal) []ValidationError {
	var errors []ValidationError

	errors = append(errors, validatePositive("simulation.freq_min", s.FreqMin)...)
	errors = append(errors, validatePositive("simulation.freq_max", s.FreqMax)...)
	if s.FreqMax <= s.FreqMin {
		errors = append(errors, ValidationError{
			Field:   "simulation.freq_max",
			Message: "must be greater than freq_min",
		})
	}
	if s.FreqCount < 2 {
		errors = append(errors, ValidationError{
			Field:   "simulation.freq_count",
			Message: "at least two frequencies are required",
		})
	}
	if sig.SampleRate > 0 && s.FreqMax > sig.SampleRate/2 {
		errors = append(errors, ValidationError{
			Field:   "simulation.freq_max",
			Message: fmt.Sprintf("exceeds Nyquist frequency %g of signal.sample_rate", sig.SampleRate/2),
		})
	}
	errors = append(errors, validateNonNegative("simulation.order", float64(s.Order))...)
	errors = append(errors, validateNonNegative("simulation.time_threshold_ms", s.TimeThresholdMS)...)
	errors = append(errors, validateInRange("simulation.taper_alpha", s.TaperAlpha, 0, 1)...)

	return errors
}
