package authz

import (
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Mode represents the global enforcement mode.
type Mode string

const (
	ModeDisabled Mode = "disabled"
	ModeShadow   Mode = "shadow"
	ModeEnforce  Mode = "enforce"
)

// FlagProvider supplies the current enforcement mode.
type FlagProvider interface {
	Mode() Mode
}

// StaticFlags always reports the same mode.
type StaticFlags Mode

func (s StaticFlags) Mode() Mode {
	return sanitizeMode(Mode(s))
}

// FileFlagProvider reads the mode from a YAML file of the form "mode: enforce".
// The file is re-read only when its modification time changes.
type FileFlagProvider struct {
	path     string
	fallback Mode

	mu      sync.Mutex
	modTime time.Time
	current Mode
}

func NewFileFlagProvider(path string, fallback Mode) *FileFlagProvider {
	return &FileFlagProvider{
		path:     path,
		fallback: sanitizeMode(fallback),
	}
}

func (p *FileFlagProvider) Mode() Mode {
	p.mu.Lock()
	defer p.mu.Unlock()

	info, err := os.Stat(p.path)
	if err != nil {
		if p.current == "" {
			return p.fallback
		}
		return p.current
	}
	if p.current != "" && info.ModTime().Equal(p.modTime) {
		return p.current
	}

	data, err := os.ReadFile(p.path)
	if err != nil {
		return p.fallback
	}
	var cfg struct {
		Mode string `yaml:"mode"`
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil || strings.TrimSpace(cfg.Mode) == "" {
		return p.fallback
	}
	p.current = sanitizeMode(Mode(cfg.Mode))
	p.modTime = info.ModTime()
	return p.current
}

// sanitizeMode maps unknown values to shadow.
func sanitizeMode(mode Mode) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(string(mode)))) {
	case ModeDisabled:
		return ModeDisabled
	case ModeEnforce:
		return ModeEnforce
	default:
		return ModeShadow
	}
}
