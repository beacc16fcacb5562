// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

const (
	// ProtocolInterpreted runs the code in a single child process.
	ProtocolInterpreted Protocol = "interpreted"
	// ProtocolCompiledThenRun compiles to an artifact and then runs that artifact.
	ProtocolCompiledThenRun Protocol = "compiled-then-run"

	// DeliveryArg substitutes the code into the {code} placeholder of the argv.
	DeliveryArg Delivery = "arg"
	// DeliveryStdin writes the code to the child's standard input.
	DeliveryStdin Delivery = "stdin"
	// DeliveryFile writes the code to SourceFile inside the per-run work directory.
	DeliveryFile Delivery = "file"

	// Placeholders understood by Expand.
	PlaceholderCode     = "{code}"
	PlaceholderSource   = "{source}"
	PlaceholderArtifact = "{artifact}"
	PlaceholderWorkdir  = "{workdir}"
)

var (
	// ErrInvalidProtocol is returned when a Protocol value is not recognized.
	ErrInvalidProtocol = errors.New("invalid protocol")
	// ErrInvalidDelivery is returned when a Delivery value is not recognized.
	ErrInvalidDelivery = errors.New("invalid code delivery")
	// ErrInvalidSpec is the sentinel error wrapped by InvalidSpecError.
	ErrInvalidSpec = errors.New("invalid toolchain spec")
)

type (
	// Language is a canonical, lower-case language identifier such as "python" or "c++".
	Language string

	// Protocol is the execution shape of a toolchain.
	Protocol string

	// Delivery describes how the code reaches the step that consumes it.
	Delivery string

	// InvalidProtocolError is returned when a Protocol value is not recognized.
	InvalidProtocolError struct {
		Value Protocol
	}

	// InvalidDeliveryError is returned when a Delivery value is not recognized.
	InvalidDeliveryError struct {
		Value Delivery
	}

	// InvalidSpecError collects the field errors of a malformed Spec.
	InvalidSpecError struct {
		Language    Language
		FieldErrors []error
	}

	// Spec fully describes how to probe and run one language. Specs handed out by a
	// Registry are copies; mutating one never affects the registry.
	Spec struct {
		Language Language `json:"language" toml:"language"`
		// Aliases are additional identifiers that resolve to Language.
		Aliases []string `json:"aliases,omitempty" toml:"aliases,omitempty"`
		// Extensions are file name suffixes (with dot) used for inference.
		Extensions []string `json:"extensions,omitempty" toml:"extensions,omitempty"`
		// Probe is the lightweight presence check, e.g. ["python", "--version"].
		Probe []string `json:"probe" toml:"probe"`
		Protocol Protocol `json:"protocol" toml:"protocol"`
		// Delivery applies to the step that consumes the code: Run for interpreted
		// toolchains, Compile for compiled ones.
		Delivery Delivery `json:"delivery" toml:"delivery"`
		// SourceFile is the file name used with DeliveryFile.
		SourceFile string `json:"source_file,omitempty" toml:"source_file,omitempty"`
		// Artifact is the compiler output file name, relative to the work directory.
		Artifact string `json:"artifact,omitempty" toml:"artifact,omitempty"`
		// Compile is the compile-step argv template (compiled-then-run only).
		Compile []string `json:"compile,omitempty" toml:"compile,omitempty"`
		// Run is the interpreter argv for interpreted toolchains and the
		// run-step argv for compiled ones.
		Run []string `json:"run" toml:"run"`
	}

	// Vars are the values substituted into argv templates.
	Vars struct {
		Code     string
		Source   string
		Artifact string
		Workdir  string
	}
)

// String returns the string representation of the Language.
func (l Language) String() string { return string(l) }

// String returns the string representation of the Protocol.
func (p Protocol) String() string { return string(p) }

// IsValid returns whether the Protocol is one of the defined protocols,
// and a list of validation errors if it is not.
func (p Protocol) IsValid() (bool, []error) {
	switch p {
	case ProtocolInterpreted, ProtocolCompiledThenRun:
		return true, nil
	default:
		return false, []error{&InvalidProtocolError{Value: p}}
	}
}

// Error implements the error interface for InvalidProtocolError.
func (e *InvalidProtocolError) Error() string {
	return fmt.Sprintf("invalid protocol %q (valid: interpreted, compiled-then-run)", e.Value)
}

// Unwrap returns ErrInvalidProtocol for errors.Is() compatibility.
func (e *InvalidProtocolError) Unwrap() error { return ErrInvalidProtocol }

// String returns the string representation of the Delivery.
func (d Delivery) String() string { return string(d) }

// IsValid returns whether the Delivery is one of the defined delivery modes,
// and a list of validation errors if it is not.
func (d Delivery) IsValid() (bool, []error) {
	switch d {
	case DeliveryArg, DeliveryStdin, DeliveryFile:
		return true, nil
	default:
		return false, []error{&InvalidDeliveryError{Value: d}}
	}
}

// Error implements the error interface for InvalidDeliveryError.
func (e *InvalidDeliveryError) Error() string {
	return fmt.Sprintf("invalid code delivery %q (valid: arg, stdin, file)", e.Value)
}

// Unwrap returns ErrInvalidDelivery for errors.Is() compatibility.
func (e *InvalidDeliveryError) Unwrap() error { return ErrInvalidDelivery }

// Error implements the error interface for InvalidSpecError.
func (e *InvalidSpecError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid toolchain %q: %s", e.Language, strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidSpec for errors.Is() compatibility.
func (e *InvalidSpecError) Unwrap() error { return ErrInvalidSpec }

// IsCompiled reports whether the spec uses the compile-then-run protocol.
func (s Spec) IsCompiled() bool { return s.Protocol == ProtocolCompiledThenRun }

// CodeStep returns the argv template of the step that receives the code.
func (s Spec) CodeStep() []string {
	if s.IsCompiled() {
		return s.Compile
	}
	return s.Run
}

// NeedsWorkdir reports whether running this spec requires a scratch directory,
// either for a source file or for a compiled artifact.
func (s Spec) NeedsWorkdir() bool {
	if s.Delivery == DeliveryFile || s.IsCompiled() {
		return true
	}
	return slices.ContainsFunc(s.Compile, usesScratch) || slices.ContainsFunc(s.Run, usesScratch)
}

// IsValid returns whether the Spec is internally consistent.
func (s Spec) IsValid() (bool, []error) {
	var errs []error
	if s.Language == "" {
		errs = append(errs, errors.New("language must not be empty"))
	}
	if len(s.Probe) == 0 {
		errs = append(errs, errors.New("probe command must not be empty"))
	}
	if len(s.Run) == 0 {
		errs = append(errs, errors.New("run command must not be empty"))
	}
	if valid, fieldErrs := s.Protocol.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := s.Delivery.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if s.IsCompiled() {
		if len(s.Compile) == 0 {
			errs = append(errs, errors.New("compile command is required for compiled-then-run"))
		}
		if s.Artifact == "" {
			errs = append(errs, errors.New("artifact name is required for compiled-then-run"))
		}
	} else if len(s.Compile) > 0 {
		errs = append(errs, errors.New("compile command is only allowed for compiled-then-run"))
	}
	switch s.Delivery {
	case DeliveryArg:
		if !slices.ContainsFunc(s.CodeStep(), func(arg string) bool { return strings.Contains(arg, PlaceholderCode) }) {
			errs = append(errs, fmt.Errorf("argument delivery requires a %s placeholder", PlaceholderCode))
		}
	case DeliveryFile:
		if s.SourceFile == "" {
			errs = append(errs, errors.New("file delivery requires a source file name"))
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidSpecError{Language: s.Language, FieldErrors: errs}}
	}
	return true, nil
}

// Expand substitutes vars into an argv template. Placeholders may appear inside a
// larger argument ("-out:{artifact}"); the result is a fresh slice.
func Expand(template []string, vars Vars) []string {
	r := strings.NewReplacer(
		PlaceholderCode, vars.Code,
		PlaceholderSource, vars.Source,
		PlaceholderArtifact, vars.Artifact,
		PlaceholderWorkdir, vars.Workdir,
	)
	out := make([]string, len(template))
	for i, arg := range template {
		out[i] = r.Replace(arg)
	}
	return out
}

func usesScratch(arg string) bool {
	return strings.Contains(arg, PlaceholderWorkdir) ||
		strings.Contains(arg, PlaceholderArtifact) ||
		strings.Contains(arg, PlaceholderSource)
}

func (s Spec) clone() Spec {
	s.Aliases = slices.Clone(s.Aliases)
	s.Extensions = slices.Clone(s.Extensions)
	s.Probe = slices.Clone(s.Probe)
	s.Compile = slices.Clone(s.Compile)
	s.Run = slices.Clone(s.Run)
	return s
}
