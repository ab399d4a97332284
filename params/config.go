// Package params holds the runtime configuration consumed by the liquid CLI
// and embedding hosts.
package params

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/naoina/toml"

	"github.com/ethan75/liquid/primitives"
)

// Config selects the deployment flavor and where contract storage lives.
type Config struct {
	// HashFamily names the signature hash family ("keccak256" or "sm3").
	HashFamily string
	// DataDir is the LevelDB directory for contract storage; empty means
	// an in-memory store.
	DataDir string
	// Verbosity is the log level (0=crit .. 5=trace).
	Verbosity int
}

// DefaultConfig is the keccak256, in-memory flavor.
func DefaultConfig() Config {
	return Config{
		HashFamily: "keccak256",
		Verbosity:  3,
	}
}

// Family resolves the configured hash family.
func (c Config) Family() (primitives.HashFamily, error) {
	return primitives.ParseHashFamily(c.HashFamily)
}

// These settings ensure that TOML keys use the same names as Go struct
// fields, and that unknown keys are an error rather than silently dropped.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

// LoadConfig reads a TOML config file over the defaults.
func LoadConfig(file string) (Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(file)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(&cfg)
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	if err != nil {
		return cfg, err
	}
	if _, err := cfg.Family(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
