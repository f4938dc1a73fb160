// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultEngineBinary is the Snakemake executable looked up on PATH.
	DefaultEngineBinary = "snakemake"
	// DefaultWorkflowFile is the workflow definition located on PATH.
	DefaultWorkflowFile = "mtgasp.smk"
	// DefaultSubsampleScript subsamples reads, then runs the workflow.
	DefaultSubsampleScript = "sub_then_run_mtgasp.sh"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidConfigError collects field-level validation errors of a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Engine configures the workflow engine invocation.
		Engine EngineConfig `json:"engine" mapstructure:"engine" toml:"engine" yaml:"engine"`
		// Workflow names the files mtgasp looks up on PATH.
		Workflow WorkflowConfig `json:"workflow" mapstructure:"workflow" toml:"workflow" yaml:"workflow"`
		// Validation configures the optional parameter checks.
		Validation ValidationConfig `json:"validation" mapstructure:"validation" toml:"validation" yaml:"validation"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui" toml:"ui" yaml:"ui"`
	}

	// EngineConfig configures the workflow engine.
	EngineConfig struct {
		// Binary is the program name or path of the engine (default: snakemake).
		Binary string `json:"binary" mapstructure:"binary" toml:"binary" yaml:"binary"`
		// ExtraArgs are inserted after the mode arguments, before --config.
		ExtraArgs []string `json:"extra_args" mapstructure:"extra_args" toml:"extra_args" yaml:"extra_args"`
	}

	// WorkflowConfig names the pipeline resources.
	WorkflowConfig struct {
		// File is the workflow definition located on PATH (default: mtgasp.smk).
		File string `json:"file" mapstructure:"file" toml:"file" yaml:"file"`
		// SubsampleScript is run in the default mode (default: sub_then_run_mtgasp.sh).
		SubsampleScript string `json:"subsample_script" mapstructure:"subsample_script" toml:"subsample_script" yaml:"subsample_script"`
	}

	// ValidationConfig configures parameter validation.
	ValidationConfig struct {
		// Strict checks parameter ranges before anything is run.
		Strict bool `json:"strict" mapstructure:"strict" toml:"strict" yaml:"strict"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme" toml:"color_scheme" yaml:"color_scheme"`
		// Verbose enables debug logging
		Verbose bool `json:"verbose" mapstructure:"verbose" toml:"verbose" yaml:"verbose"`
	}
)

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Binary:    DefaultEngineBinary,
			ExtraArgs: []string{},
		},
		Workflow: WorkflowConfig{
			File:            DefaultWorkflowFile,
			SubsampleScript: DefaultSubsampleScript,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// Validate returns an error if the ColorScheme is not auto, dark or light.
func (c ColorScheme) Validate() error {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return &InvalidColorSchemeError{Value: c}
	}
}

// GlamourStyle returns the glamour style name matching the color scheme.
func (c ColorScheme) GlamourStyle() string {
	switch c {
	case ColorSchemeDark, ColorSchemeLight:
		return string(c)
	default:
		return "auto"
	}
}

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Validate checks the fields CUE cannot check for environment overrides.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Engine.Binary) == "" {
		errs = append(errs, errors.New("engine.binary must not be empty"))
	}
	if strings.TrimSpace(c.Workflow.File) == "" {
		errs = append(errs, errors.New("workflow.file must not be empty"))
	}
	if strings.TrimSpace(c.Workflow.SubsampleScript) == "" {
		errs = append(errs, errors.New("workflow.subsample_script must not be empty"))
	}
	if err := c.UI.ColorScheme.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }
