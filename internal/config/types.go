// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/polyrun/polyrun/internal/extract"
	"github.com/polyrun/polyrun/internal/logsink"
	"github.com/polyrun/polyrun/internal/toolchain"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidDuration is the sentinel error wrapped by InvalidDurationError.
	ErrInvalidDuration = errors.New("invalid duration")
	// ErrInvalidDefaultLanguage is the sentinel error wrapped by InvalidDefaultLanguageError.
	ErrInvalidDefaultLanguage = errors.New("invalid default language")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidExtractConfig is the sentinel error wrapped by InvalidExtractConfigError.
	ErrInvalidExtractConfig = errors.New("invalid extract config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// Duration is a Go duration string such as "30s" or "1m30s". A valid
	// Duration parses and is strictly positive.
	Duration string

	// InvalidDurationError is returned when a Duration does not parse or is
	// not positive.
	InvalidDurationError struct {
		Field string
		Value Duration
	}

	// InvalidDefaultLanguageError is returned when default_language names a
	// language the registry does not know.
	InvalidDefaultLanguageError struct {
		Value string
		Err   error
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidExtractConfigError is returned when an ExtractConfig has invalid fields.
	InvalidExtractConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It collects field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// DefaultLanguage is used when no language is given on the command line.
		DefaultLanguage string `json:"default_language" toml:"default_language" mapstructure:"default_language"`
		// Timeout bounds every child process.
		Timeout Duration `json:"timeout" toml:"timeout" mapstructure:"timeout"`
		// ProbeTimeout bounds each toolchain probe.
		ProbeTimeout Duration `json:"probe_timeout" toml:"probe_timeout" mapstructure:"probe_timeout"`
		// LogFile is the log sink path; "-" is stderr and "" disables logging.
		LogFile string `json:"log_file" toml:"log_file" mapstructure:"log_file"`
		// UI configures the user interface
		UI UIConfig `json:"ui" toml:"ui" mapstructure:"ui"`
		// Extract configures how code is pulled out of surrounding prose.
		Extract ExtractConfig `json:"extract" toml:"extract" mapstructure:"extract"`
		// Toolchains overrides argv templates per language.
		Toolchains map[string]toolchain.Override `json:"toolchains,omitempty" toml:"toolchains,omitempty" mapstructure:"toolchains"`

		// Source is the file the config was loaded from, or "" for defaults only.
		Source string `json:"-" toml:"-" mapstructure:"-"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Verbose enables verbose output
		Verbose bool `json:"verbose" toml:"verbose" mapstructure:"verbose"`
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" toml:"color_scheme" mapstructure:"color_scheme"`
	}

	// ExtractConfig configures code extraction.
	ExtractConfig struct {
		Mode           extract.Mode `json:"mode" toml:"mode" mapstructure:"mode"`
		StartSeparator string       `json:"start_separator" toml:"start_separator" mapstructure:"start_separator"`
		EndSeparator   string       `json:"end_separator" toml:"end_separator" mapstructure:"end_separator"`
		SkipFirstLine  bool         `json:"skip_first_line" toml:"skip_first_line" mapstructure:"skip_first_line"`
	}
)

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// String returns the string representation of the Duration.
func (d Duration) String() string { return string(d) }

// Std parses the duration. Invalid values yield 0.
func (d Duration) Std() time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(string(d)))
	if err != nil {
		return 0
	}
	return v
}

// IsValid returns whether the Duration parses to a positive value.
func (d Duration) IsValid() (bool, []error) {
	if d.Std() <= 0 {
		return false, []error{&InvalidDurationError{Value: d}}
	}
	return true, nil
}

// Error implements the error interface for InvalidDurationError.
func (e *InvalidDurationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: invalid duration %q (want a positive value such as \"30s\")", e.Field, e.Value)
	}
	return fmt.Sprintf("invalid duration %q (want a positive value such as \"30s\")", e.Value)
}

// Unwrap returns ErrInvalidDuration for errors.Is() compatibility.
func (e *InvalidDurationError) Unwrap() error { return ErrInvalidDuration }

// Error implements the error interface for InvalidDefaultLanguageError.
func (e *InvalidDefaultLanguageError) Error() string {
	return fmt.Sprintf("default_language: %v", e.Err)
}

// Unwrap returns both ErrInvalidDefaultLanguage and the lookup failure.
func (e *InvalidDefaultLanguageError) Unwrap() []error {
	return []error{ErrInvalidDefaultLanguage, e.Err}
}

// IsValid returns whether the UIConfig has valid fields.
func (c UIConfig) IsValid() (bool, []error) {
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		return false, []error{&InvalidUIConfigError{FieldErrors: fieldErrs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %s", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the ExtractConfig has valid fields. Separators may
// be empty; extraction then falls back to the three-backtick fence.
func (c ExtractConfig) IsValid() (bool, []error) {
	if valid, fieldErrs := c.Mode.IsValid(); !valid {
		return false, []error{&InvalidExtractConfigError{FieldErrors: fieldErrs}}
	}
	return true, nil
}

// Options converts the config into extraction options.
func (c ExtractConfig) Options() extract.Options {
	return extract.Options{
		Mode:          c.Mode,
		StartSep:      c.StartSeparator,
		EndSep:        c.EndSeparator,
		SkipFirstLine: c.SkipFirstLine,
	}
}

// Error implements the error interface for InvalidExtractConfigError.
func (e *InvalidExtractConfigError) Error() string {
	return fmt.Sprintf("invalid extract config: %s", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidExtractConfig for errors.Is() compatibility.
func (e *InvalidExtractConfigError) Unwrap() error { return ErrInvalidExtractConfig }

// IsValid returns whether the Config has valid fields. Toolchain overrides
// are checked by Registry, which needs to rebuild the language table.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if _, err := toolchain.Default().Lookup(c.DefaultLanguage); err != nil {
		errs = append(errs, &InvalidDefaultLanguageError{Value: c.DefaultLanguage, Err: err})
	}
	if valid, _ := c.Timeout.IsValid(); !valid {
		errs = append(errs, &InvalidDurationError{Field: "timeout", Value: c.Timeout})
	}
	if valid, _ := c.ProbeTimeout.IsValid(); !valid {
		errs = append(errs, &InvalidDurationError{Field: "probe_timeout", Value: c.ProbeTimeout})
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Extract.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig and every field error so callers can match
// on either.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// Registry returns the built-in toolchain registry with the configured
// overrides applied.
func (c Config) Registry() (*toolchain.Registry, error) {
	return toolchain.Default().WithOverrides(c.Toolchains)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	logFile, err := logsink.DefaultPath()
	if err != nil {
		logFile = ""
	}
	return &Config{
		DefaultLanguage: string(toolchain.Python),
		Timeout:         "30s",
		ProbeTimeout:    "10s",
		LogFile:         logFile,
		UI: UIConfig{
			Verbose:     false,
			ColorScheme: ColorSchemeAuto,
		},
		Extract: ExtractConfig{
			Mode:           extract.ModeAuto,
			StartSeparator: extract.DefaultSeparator,
			EndSeparator:   extract.DefaultSeparator,
			SkipFirstLine:  true,
		},
		Toolchains: map[string]toolchain.Override{},
	}
}
