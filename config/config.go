package config

import (
	"fmt"
	"os"
	"time"

	"github.com/lixenwraith/filament/connection"
	"github.com/lixenwraith/filament/parameter"
	"github.com/lixenwraith/filament/toml"
)

// DefaultConfigFile is looked up in the working directory when no
// explicit path is given
const DefaultConfigFile = "installation.toml"

// SceneSection sizes the installation volume and bounds the node
// population
type SceneSection struct {
	Width          int     `toml:"width"`
	Height         int     `toml:"height"`
	Depth          int     `toml:"depth"`
	Seed           int64   `toml:"seed"`
	MaxNodes       int     `toml:"max_nodes"`
	NodeTTLSeconds float64 `toml:"node_ttl_seconds"`
}

// ScanSection configures the hub's proximity scan
type ScanSection struct {
	Radius          float64 `toml:"radius"`
	IntervalSeconds float64 `toml:"interval_seconds"`
	Tag             string  `toml:"tag"`
}

// AdmissionSection paces connection admission and eviction
type AdmissionSection struct {
	MaxConnections         int     `toml:"max_connections"`
	TimeBetweenConnections float64 `toml:"time_between_connections"`
	Sequential             bool    `toml:"sequential"`
	RandomizeOrder         bool    `toml:"randomize_order"`
}

// CurveSection shapes the filament geometry
type CurveSection struct {
	Segments   int     `toml:"segments"`
	Curvature  float64 `toml:"curvature"`
	TrimMode   string  `toml:"trim_mode"`
	SourceTrim float64 `toml:"source_trim"`
	TargetTrim float64 `toml:"target_trim"`
}

// EmissionSection shapes the establishment flare
type EmissionSection struct {
	DurationSeconds float64 `toml:"duration_seconds"`
	Intensity       float64 `toml:"intensity"`
	Curve           string  `toml:"curve"`
}

// PulseSection drives the beat sequencer
type PulseSection struct {
	BPM              int  `toml:"bpm"`
	AutoSpawn        bool `toml:"auto_spawn"`
	TargetPopulation int  `toml:"target_population"`
}

// AudioSection controls the synth voice output
type AudioSection struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"`
}

// BridgeSection configures the websocket remote; an empty listen
// address disables it
type BridgeSection struct {
	ListenAddr string `toml:"listen_addr"`
}

// Config is the whole installation.toml surface. All keys are optional
// over the defaults.
type Config struct {
	Scene     SceneSection     `toml:"scene"`
	Scan      ScanSection      `toml:"scan"`
	Admission AdmissionSection `toml:"admission"`
	Curve     CurveSection     `toml:"curve"`
	Emission  EmissionSection  `toml:"emission"`
	Pulse     PulseSection     `toml:"pulse"`
	Audio     AudioSection     `toml:"audio"`
	Bridge    BridgeSection    `toml:"bridge"`
}

// Default returns the built-in installation configuration
func Default() Config {
	return Config{
		Scene: SceneSection{
			Width:          parameter.DefaultVolumeWidth,
			Height:         parameter.DefaultVolumeHeight,
			Depth:          parameter.DefaultVolumeDepth,
			Seed:           1,
			MaxNodes:       parameter.DefaultMaxNodes,
			NodeTTLSeconds: parameter.DefaultNodeTTL.Seconds(),
		},
		Scan: ScanSection{
			Radius:          parameter.DefaultScanRadius,
			IntervalSeconds: parameter.DefaultScanInterval.Seconds(),
			Tag:             parameter.DefaultScanTag,
		},
		Admission: AdmissionSection{
			MaxConnections:         parameter.DefaultMaxConnections,
			TimeBetweenConnections: parameter.DefaultTimeBetweenConnections.Seconds(),
			Sequential:             true,
			RandomizeOrder:         false,
		},
		Curve: CurveSection{
			Segments:   parameter.DefaultCurveSegments,
			Curvature:  parameter.DefaultCurvature,
			TrimMode:   "percent",
			SourceTrim: parameter.DefaultSourceTrim,
			TargetTrim: parameter.DefaultTargetTrim,
		},
		Emission: EmissionSection{
			DurationSeconds: parameter.DefaultEmissionDuration.Seconds(),
			Intensity:       parameter.DefaultEmissionIntensity,
			Curve:           "pulse",
		},
		Pulse: PulseSection{
			BPM:              parameter.DefaultPulseBPM,
			AutoSpawn:        true,
			TargetPopulation: parameter.DefaultTargetPopulation,
		},
		Audio: AudioSection{
			Enabled: true,
			Volume:  parameter.DefaultAudioVolume,
		},
		Bridge: BridgeSection{
			ListenAddr: parameter.DefaultBridgeListenAddr,
		},
	}
}

// Load reads and validates a configuration file. Missing keys keep
// their defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// LoadAuto resolves configuration with priority: customPath >
// ./installation.toml > built-in defaults. A missing custom path is an
// error; a missing default file is not.
func LoadAuto(customPath string) (Config, error) {
	if customPath != "" {
		return Load(customPath)
	}
	if fileExists(DefaultConfigFile) {
		return Load(DefaultConfigFile)
	}
	return Default(), nil
}

// Parse unmarshals TOML bytes over the defaults and validates the
// result
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate applies the same bounds the runtime setters enforce, so a
// file that loads cleanly can never carry values a setter would reject
func (c *Config) Validate() error {
	if c.Scene.Width < 8 || c.Scene.Height < 8 || c.Scene.Depth < 8 {
		return fmt.Errorf("scene volume must be at least 8x8x8, got %dx%dx%d",
			c.Scene.Width, c.Scene.Height, c.Scene.Depth)
	}
	if c.Scene.MaxNodes < 1 {
		return fmt.Errorf("scene max_nodes must be positive, got %d", c.Scene.MaxNodes)
	}
	if c.Scene.NodeTTLSeconds <= 0 {
		return fmt.Errorf("scene node_ttl_seconds must be positive, got %v", c.Scene.NodeTTLSeconds)
	}
	if c.Scan.Radius <= 0 {
		return fmt.Errorf("scan radius must be positive, got %v", c.Scan.Radius)
	}
	if c.Scan.IntervalSeconds <= 0 {
		return fmt.Errorf("scan interval_seconds must be positive, got %v", c.Scan.IntervalSeconds)
	}
	if c.Scan.Tag == "" {
		return fmt.Errorf("scan tag must not be empty")
	}
	if c.Admission.MaxConnections < 1 || c.Admission.MaxConnections > parameter.MaxConnectionsLimit {
		return fmt.Errorf("admission max_connections must be in [1,%d], got %d",
			parameter.MaxConnectionsLimit, c.Admission.MaxConnections)
	}
	if c.Admission.TimeBetweenConnections <= 0 {
		return fmt.Errorf("admission time_between_connections must be positive, got %v",
			c.Admission.TimeBetweenConnections)
	}
	if c.Curve.Segments < 2 || c.Curve.Segments > parameter.MaxCurveSegments {
		return fmt.Errorf("curve segments must be in [2,%d], got %d",
			parameter.MaxCurveSegments, c.Curve.Segments)
	}
	if _, err := connection.TrimModeByName(c.Curve.TrimMode); err != nil {
		return err
	}
	if c.Curve.SourceTrim < 0 || c.Curve.TargetTrim < 0 {
		return fmt.Errorf("curve trims must be non-negative, got %v/%v",
			c.Curve.SourceTrim, c.Curve.TargetTrim)
	}
	if c.Emission.DurationSeconds <= 0 {
		return fmt.Errorf("emission duration_seconds must be positive, got %v", c.Emission.DurationSeconds)
	}
	if c.Emission.Intensity < 0 {
		return fmt.Errorf("emission intensity must be non-negative, got %v", c.Emission.Intensity)
	}
	if _, err := connection.CurveByName(c.Emission.Curve); err != nil {
		return err
	}
	if c.Pulse.BPM < parameter.MinPulseBPM || c.Pulse.BPM > parameter.MaxPulseBPM {
		return fmt.Errorf("pulse bpm must be in [%d,%d], got %d",
			parameter.MinPulseBPM, parameter.MaxPulseBPM, c.Pulse.BPM)
	}
	if c.Pulse.TargetPopulation < 0 || c.Pulse.TargetPopulation > c.Scene.MaxNodes {
		return fmt.Errorf("pulse target_population must be in [0,%d], got %d",
			c.Scene.MaxNodes, c.Pulse.TargetPopulation)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio volume must be in [0,1], got %v", c.Audio.Volume)
	}
	return nil
}

// ConnectionConfig maps the scan, admission, curve and emission
// sections onto the director's tunable surface. Call only after
// Validate; name resolution cannot fail on a validated config.
func (c *Config) ConnectionConfig() connection.Config {
	trimMode, _ := connection.TrimModeByName(c.Curve.TrimMode)
	emissionCurve, _ := connection.CurveByName(c.Emission.Curve)
	return connection.Config{
		ScanRadius:             c.Scan.Radius,
		ScanInterval:           secondsToDuration(c.Scan.IntervalSeconds),
		Tag:                    c.Scan.Tag,
		MaxConnections:         c.Admission.MaxConnections,
		TimeBetweenConnections: secondsToDuration(c.Admission.TimeBetweenConnections),
		Sequential:             c.Admission.Sequential,
		RandomizeOrder:         c.Admission.RandomizeOrder,
		Segments:               c.Curve.Segments,
		Curvature:              c.Curve.Curvature,
		TrimMode:               trimMode,
		SourceTrim:             c.Curve.SourceTrim,
		TargetTrim:             c.Curve.TargetTrim,
		EmissionDuration:       secondsToDuration(c.Emission.DurationSeconds),
		EmissionIntensity:      c.Emission.Intensity,
		EmissionCurve:          emissionCurve,
		Seed:                   uint64(c.Scene.Seed),
	}
}

// Encode renders the configuration as TOML. The output parses back
// through Parse, so it serves as a starter installation.toml.
func (c *Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

// NodeTTL returns the node lifetime as a duration
func (c *Config) NodeTTL() time.Duration {
	return secondsToDuration(c.Scene.NodeTTLSeconds)
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
