// Package config handles viewer configuration loading and management.
package config

import (
	"fmt"
	"time"

	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/assembly"
)

// Config holds all viewer settings.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Camera  CameraConfig  `yaml:"camera"`
	View    ViewConfig    `yaml:"view"`
	Flow    FlowConfig    `yaml:"flow"`
	Scenery SceneryConfig `yaml:"scenery"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds bridge settings.
type ServerConfig struct {
	Addr      string `yaml:"addr"`
	FrameRate int    `yaml:"frame_rate"` // frames per second
	SendQueue int    `yaml:"send_queue"` // outbound messages buffered per client
	// ReadLimit caps inbound message size in bytes.
	ReadLimit int64 `yaml:"read_limit"`
	// AllowedOrigins restricts WebSocket origins; empty allows any.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// CameraConfig holds the initial orbit camera.
type CameraConfig struct {
	FOV      float32    `yaml:"fov"` // degrees
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
	Distance float32    `yaml:"distance"`
	Pitch    float32    `yaml:"pitch"` // radians
	Yaw      float32    `yaml:"yaw"`   // radians
	Target   [3]float32 `yaml:"target"`
	// Fit frames the whole vehicle instead of using distance and target.
	Fit bool `yaml:"fit"`
}

// ViewConfig holds the initial view state.
type ViewConfig struct {
	AutoRotate  bool    `yaml:"auto_rotate"`
	RotateSpeed float32 `yaml:"rotate_speed"`
	Explode     float32 `yaml:"explode"`
	Cutaway     float32 `yaml:"cutaway"`
	Flow        bool    `yaml:"flow"`
	ActiveStage string  `yaml:"active_stage"`
}

// FlowConfig holds flow animation tuning.
type FlowConfig struct {
	PointsPerPath int           `yaml:"points_per_path"`
	SpeedScale    float64       `yaml:"speed_scale"`
	MaxFrameStep  time.Duration `yaml:"max_frame_step"`
}

// SceneryConfig holds the non-pickable surroundings.
type SceneryConfig struct {
	Stars    int    `yaml:"stars"`
	StarSeed uint64 `yaml:"star_seed"`
	Grid     bool   `yaml:"grid"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	JSON    bool   `yaml:"json"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:      ":8080",
			FrameRate: 60,
			SendQueue: 16,
			ReadLimit: 64 << 10,
		},
		Camera: CameraConfig{
			FOV:      55,
			Near:     0.1,
			Far:      2000,
			Distance: 108.17,
			Pitch:    0,
			Yaw:      0.588,
			Target:   [3]float32{0, 45, 0},
		},
		View: ViewConfig{
			AutoRotate:  true,
			RotateSpeed: 0.35,
			ActiveStage: string(assembly.StageIC),
		},
		Flow: FlowConfig{
			PointsPerPath: 120,
			SpeedScale:    0.1,
			MaxFrameStep:  50 * time.Millisecond,
		},
		Scenery: SceneryConfig{
			Stars:    1800,
			StarSeed: 1,
			Grid:     true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports the first setting the viewer cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Server.FrameRate <= 0:
		return fmt.Errorf("server.frame_rate must be positive, got %d", c.Server.FrameRate)
	case c.Server.SendQueue <= 0:
		return fmt.Errorf("server.send_queue must be positive, got %d", c.Server.SendQueue)
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return fmt.Errorf("camera.fov must be in (0, 180), got %v", c.Camera.FOV)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("camera near/far invalid: %v/%v", c.Camera.Near, c.Camera.Far)
	case c.Flow.PointsPerPath < 1:
		return fmt.Errorf("flow.points_per_path must be at least 1, got %d", c.Flow.PointsPerPath)
	case c.Flow.MaxFrameStep <= 0:
		return fmt.Errorf("flow.max_frame_step must be positive, got %v", c.Flow.MaxFrameStep)
	case c.Scenery.Stars < 0:
		return fmt.Errorf("scenery.stars must not be negative, got %d", c.Scenery.Stars)
	}
	if _, err := assembly.ParseStage(c.View.ActiveStage); err != nil {
		return fmt.Errorf("view.active_stage: %w", err)
	}
	return nil
}

// FrameInterval is the ticker period for the configured frame rate.
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.Server.FrameRate)
}
