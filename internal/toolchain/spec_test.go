// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"errors"
	"slices"
	"testing"
)

func TestExpand(t *testing.T) {
	t.Parallel()

	vars := Vars{Code: "print(1)", Source: "/w/Program.cs", Artifact: "/w/Program.exe", Workdir: "/w"}
	got := Expand([]string{"csc", "-out:" + PlaceholderArtifact, PlaceholderSource, "-c", PlaceholderCode, PlaceholderWorkdir}, vars)
	want := []string{"csc", "-out:/w/Program.exe", "/w/Program.cs", "-c", "print(1)", "/w"}
	if !slices.Equal(got, want) {
		t.Errorf("Expand() = %v, want %v", got, want)
	}
}

func TestExpandDoesNotReexpandCode(t *testing.T) {
	t.Parallel()

	got := Expand([]string{PlaceholderCode}, Vars{Code: "x = '{workdir}'", Workdir: "/tmp"})
	if got[0] != "x = '{workdir}'" {
		t.Errorf("Expand() = %q, code must be substituted literally", got[0])
	}
}

func TestProtocolIsValid(t *testing.T) {
	t.Parallel()

	for _, p := range []Protocol{ProtocolInterpreted, ProtocolCompiledThenRun} {
		if valid, errs := p.IsValid(); !valid {
			t.Errorf("%q.IsValid() = false, %v", p, errs)
		}
	}
	valid, errs := Protocol("jit").IsValid()
	if valid || len(errs) != 1 || !errors.Is(errs[0], ErrInvalidProtocol) {
		t.Errorf("Protocol(jit).IsValid() = %v, %v", valid, errs)
	}
}

func TestDeliveryIsValid(t *testing.T) {
	t.Parallel()

	valid, errs := Delivery("pipe").IsValid()
	if valid || len(errs) != 1 || !errors.Is(errs[0], ErrInvalidDelivery) {
		t.Errorf("Delivery(pipe).IsValid() = %v, %v", valid, errs)
	}
}

func TestNeedsWorkdir(t *testing.T) {
	t.Parallel()

	r := Default()
	tests := map[Language]bool{
		Python: false,
		Swift:  false,
		Go:     true,
		C:      true,
		Java:   true,
	}
	for lang, want := range tests {
		spec, err := r.Lookup(string(lang))
		if err != nil {
			t.Fatal(err)
		}
		if got := spec.NeedsWorkdir(); got != want {
			t.Errorf("%s NeedsWorkdir() = %v, want %v", lang, got, want)
		}
	}
}

func TestInvalidSpecErrorUnwrap(t *testing.T) {
	t.Parallel()

	valid, errs := Spec{Language: "x"}.IsValid()
	if valid {
		t.Fatal("IsValid() = true for empty spec")
	}
	if !errors.Is(errs[0], ErrInvalidSpec) {
		t.Errorf("errors.Is(ErrInvalidSpec) = false for %v", errs[0])
	}
}
