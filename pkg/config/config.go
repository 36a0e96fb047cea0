// Package config holds the monitor module options and their YAML loader.
//
// Keys follow the names operators already use for this module:
//
//	hitBookDDU: true
//	ExaminerMask: 0x7FB7BF6
//	FractUpdateKey: 5          # run end + periodic
//	FractUpdateEventFreq: 1000
//	monitorName: CSC
//	AddressMask:
//	  - side=1,station=2,ring=2,chamber=5
//	  - 2,4,1,*
//
// Omitted keys keep their defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/csc-dqm/cscdqm-go/pkg/schedule"
)

// Default values.
const (
	DefaultExaminerMask         uint32 = 0x7FB7BF6
	DefaultFractUpdateKey       uint   = 1
	DefaultFractUpdateEventFreq        = 1
	DefaultMonitorName                 = "CSC"
)

var (
	// ErrInvalidUpdateKey is reported when FractUpdateKey has bits above the
	// three trigger bits.
	ErrInvalidUpdateKey = errors.New("update key has unknown bits")

	// ErrEmptyMonitorName is reported for a blank monitorName.
	ErrEmptyMonitorName = errors.New("empty monitor name")
)

// ExaminerOptions are passed through to the external data-format examiner.
// The monitor itself does not interpret them.
type ExaminerOptions struct {
	Mask   uint32 `yaml:"ExaminerMask"`
	Force  bool   `yaml:"ExaminerForce"`
	Output bool   `yaml:"ExaminerOutput"`
	CRCKey uint   `yaml:"ExaminerCRCKey"`
}

// Config is the full option set of a monitor module.
type Config struct {
	// HitBookDDU enables the per-DDU booking tier.
	HitBookDDU bool `yaml:"hitBookDDU"`

	Examiner ExaminerOptions `yaml:",inline"`

	// FractUpdateKey selects refresh triggers: bit 0 run end, bit 1 lumi
	// block begin, bit 2 periodic.
	FractUpdateKey uint `yaml:"FractUpdateKey"`

	// FractUpdateEventFreq is the periodic refresh interval in events.
	FractUpdateEventFreq int `yaml:"FractUpdateEventFreq"`

	// AddressMask lists dead-hardware mask rules.
	AddressMask []string `yaml:"AddressMask"`

	// MonitorName is the root folder of every bin.
	MonitorName string `yaml:"monitorName"`

	// BookingFile is a YAML booking collection. Empty selects the built-in
	// collection.
	BookingFile string `yaml:"BookingFile"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		HitBookDDU: true,
		Examiner: ExaminerOptions{
			Mask: DefaultExaminerMask,
		},
		FractUpdateKey:       DefaultFractUpdateKey,
		FractUpdateEventFreq: DefaultFractUpdateEventFreq,
		MonitorName:          DefaultMonitorName,
	}
}

// Parse decodes YAML over the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Load reads a YAML file. A relative BookingFile is resolved against the
// directory of path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.BookingFile != "" && !filepath.IsAbs(cfg.BookingFile) {
		cfg.BookingFile = filepath.Join(filepath.Dir(path), cfg.BookingFile)
	}
	return cfg, nil
}

// Validate returns the non-fatal problems in cfg. A module started with
// these problems still runs: an invalid frequency disables periodic
// refresh, unknown key bits are ignored.
func (c Config) Validate() []error {
	var problems []error
	if c.FractUpdateEventFreq <= 0 {
		problems = append(problems, fmt.Errorf("FractUpdateEventFreq %d: %w", c.FractUpdateEventFreq, schedule.ErrInvalidFrequency))
	}
	if c.FractUpdateKey&^uint(0x7) != 0 {
		problems = append(problems, fmt.Errorf("FractUpdateKey %#x: %w", c.FractUpdateKey, ErrInvalidUpdateKey))
	}
	if strings.TrimSpace(c.MonitorName) == "" {
		problems = append(problems, ErrEmptyMonitorName)
	}
	return problems
}

// Triggers decodes FractUpdateKey.
func (c Config) Triggers() schedule.Triggers {
	return schedule.TriggersFromKey(c.FractUpdateKey)
}

// Root returns the monitor name, or DefaultMonitorName when blank.
func (c Config) Root() string {
	if name := strings.TrimSpace(c.MonitorName); name != "" {
		return name
	}
	return DefaultMonitorName
}
