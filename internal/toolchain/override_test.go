// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"errors"
	"slices"
	"testing"
)

func TestWithOverrides(t *testing.T) {
	t.Parallel()

	base := Default()
	r, err := base.WithOverrides(map[string]Override{
		"py": {Probe: "python3 --version", Run: "python3 -c {code}"},
		"C":  {Compile: "'/opt/my gcc/bin/gcc' -x c - -o {artifact}"},
	})
	if err != nil {
		t.Fatalf("WithOverrides() error = %v", err)
	}

	py, err := r.Lookup("python")
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(py.Run, []string{"python3", "-c", PlaceholderCode}) {
		t.Errorf("python run = %v", py.Run)
	}
	if !slices.Equal(py.Probe, []string{"python3", "--version"}) {
		t.Errorf("python probe = %v", py.Probe)
	}

	c, err := r.Lookup("c")
	if err != nil {
		t.Fatal(err)
	}
	if c.Compile[0] != "/opt/my gcc/bin/gcc" {
		t.Errorf("c compile[0] = %q, want quoted path kept whole", c.Compile[0])
	}
	if !slices.Equal(c.Run, []string{PlaceholderArtifact}) {
		t.Errorf("c run = %v, want unchanged", c.Run)
	}

	orig, err := base.Lookup("python")
	if err != nil {
		t.Fatal(err)
	}
	if orig.Run[0] != "python" {
		t.Errorf("base registry mutated: %v", orig.Run)
	}
}

func TestWithOverridesUnknownLanguage(t *testing.T) {
	t.Parallel()

	_, err := Default().WithOverrides(map[string]Override{"cobol": {Run: "cobc -x {source}"}})
	if !errors.Is(err, ErrUnknownLanguage) {
		t.Errorf("WithOverrides() error = %v, want ErrUnknownLanguage", err)
	}
}

func TestWithOverridesRejectsInvalidResult(t *testing.T) {
	t.Parallel()

	_, err := Default().WithOverrides(map[string]Override{"ruby": {Run: "ruby script.rb"}})
	if !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("WithOverrides() error = %v, want ErrInvalidSpec", err)
	}
}

func TestWithOverridesEmptyReturnsReceiver(t *testing.T) {
	t.Parallel()

	base := Default()
	r, err := base.WithOverrides(nil)
	if err != nil || r != base {
		t.Errorf("WithOverrides(nil) = %p, %v; want receiver", r, err)
	}
}
