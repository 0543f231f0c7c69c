// Package config loads environment-driven configuration and the embedded
// enrollment color palette.
package config

import (
	_ "embed"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed colors.yaml
var colorsYAML []byte

type Config struct {
	Database DatabaseConfig
	Face     FaceConfig
	Palette  PaletteConfig
}

type DatabaseConfig struct {
	URL          string // PostgreSQL connection URL
	MaxOpenConns int    // Maximum open connections (default 25)
	MaxIdleConns int    // Maximum idle connections (default 5)
}

type FaceConfig struct {
	CascadePath    string  // Path to the binary cascade model file
	MinQuality     float64 // Minimum quality score for accepting a face (default 0.6)
	MatchThreshold float64 // Cosine similarity threshold for identity matches (default 0.7)
	MaxTracked     int     // Maximum faces retained per stream (default 5)
}

// PaletteConfig lists the display colors assigned to newly enrolled people.
type PaletteConfig struct {
	Colors []string `yaml:"colors"`
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envFloat reads an environment variable and parses it as a float in (0, 1].
// Returns the default value if the env var is unset, empty, or invalid.
func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 && f <= 1 {
		return f
	}
	return defaultVal
}

func Load() *Config {
	var palette PaletteConfig
	if err := yaml.Unmarshal(colorsYAML, &palette); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded colors.yaml: " + err.Error())
	}

	return &Config{
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns: envInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Face: FaceConfig{
			CascadePath:    envDefault("FACE_CASCADE_PATH", "cascade/facefinder"),
			MinQuality:     envFloat("FACE_MIN_QUALITY", 0.6),
			MatchThreshold: envFloat("FACE_MATCH_THRESHOLD", 0.7),
			MaxTracked:     envInt("FACE_MAX_TRACKED", 5),
		},
		Palette: palette,
	}
}

// envDefault reads an environment variable with a fallback value.
func envDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
