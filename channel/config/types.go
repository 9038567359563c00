package config

// ScenarioConfig represents the complete configuration for a channel simulation
type ScenarioConfig struct {
	Metadata    Metadata    `yaml:"metadata"`
	Environment Environment `yaml:"environment"`
	Geometry    Geometry    `yaml:"geometry"`
	Signal      Signal      `yaml:"signal"`
	Simulation  Simulation  `yaml:"simulation"`
	Flags       Flags       `yaml:"flags"`
}

type Metadata struct {
	Timestamp string `yaml:"timestamp"` // YYYY-MM-DD HH:MM:SS in UTC
	GitCommit string `yaml:"git_commit"`
}

type Environment struct {
	// Water depth in meters
	Depth float64 `yaml:"depth"`
	// Water density in kg/m^3; defaults to seawater when omitted
	Density float64 `yaml:"density,omitempty"`
	// Surface wind speed in m/s
	WindSpeed float64 `yaml:"wind_speed,omitempty"`
	// Salinity in ppt and temperature in degrees C
	Salinity    float64 `yaml:"salinity,omitempty"`
	Temperature float64 `yaml:"temperature,omitempty"`

	SoundSpeedProfile SoundSpeedProfile `yaml:"sound_speed_profile"`
	Bottom            Bottom            `yaml:"bottom"`
}

type SoundSpeedProfile struct {
	Inline   map[float64]float64 `yaml:"inline,omitempty"` // depth in meters -> speed in m/s
	FromFile string              `yaml:"from_file,omitempty"`
}

type Bottom struct {
	SoundSpeed float64 `yaml:"sound_speed"` // m/s
	Density    float64 `yaml:"density"`     // kg/m^3
}

type Geometry struct {
	Source   Position `yaml:"source"`
	Receiver Position `yaml:"receiver"`
}

type Position struct {
	// Horizontal position along the track in meters
	Range float64 `yaml:"range"`
	// Depth below the surface in meters
	Depth float64 `yaml:"depth"`
}

type Signal struct {
	// Input waveform file; takes precedence over synthesis when set
	Wav struct {
		Path string `yaml:"path,omitempty"`
	} `yaml:"wav,omitempty"`
	// Synthetic source used when no wav file is given
	Synth Synth `yaml:"synth,omitempty"`
	// Output sample rate in Hz
	SampleRate float64 `yaml:"sample_rate"`
}

type Synth struct {
	// One of "chirp", "whistle", "clicks"
	Kind      string  `yaml:"kind,omitempty"`
	F0        float64 `yaml:"f0,omitempty"`
	F1        float64 `yaml:"f1,omitempty"`
	Deviation float64 `yaml:"deviation,omitempty"`
	ModRate   float64 `yaml:"mod_rate,omitempty"`
	ClickRate float64 `yaml:"click_rate,omitempty"`
	Duration  float64 `yaml:"duration,omitempty"`
}

type Simulation struct {
	// Frequency grid for the propagation model
	FreqMin   float64 `yaml:"freq_min"`
	FreqMax   float64 `yaml:"freq_max"`
	FreqCount int     `yaml:"freq_count"`
	// FFT length for the frequency-to-time conversion
	NFFT int `yaml:"nfft,omitempty"`
	// Tukey taper fraction across the response band
	TaperAlpha float64 `yaml:"taper_alpha,omitempty"`
	// Eigenray search bounds for the built-in image engine
	Order           int     `yaml:"order,omitempty"`
	GainThresholdDB float64 `yaml:"gain_threshold_db,omitempty"`
	TimeThresholdMS float64 `yaml:"time_threshold_ms,omitempty"`
}

type Flags struct {
	SkipCache bool `yaml:"skip_cache"`
	SkipPlots bool `yaml:"skip_plots"`
}
