// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestValuesOrderedAndComplete(t *testing.T) {
	t.Parallel()

	values := Values()
	if len(values) != int(ClipboardUnavailableId) {
		t.Fatalf("Values() returned %d issues, want %d", len(values), ClipboardUnavailableId)
	}
	for i, is := range values {
		if want := Id(i + 1); is.Id() != want {
			t.Errorf("Values()[%d].Id() = %d, want %d", i, is.Id(), want)
		}
		if Get(is.Id()) != is {
			t.Errorf("Get(%d) does not return the catalog entry", is.Id())
		}
		if strings.TrimSpace(string(is.MarkdownMsg())) == "" {
			t.Errorf("issue %d has no message", is.Id())
		}
	}
}

func TestGetUnknown(t *testing.T) {
	t.Parallel()

	if Get(0) != nil || Get(Id(999)) != nil {
		t.Error("Get() of unknown id should return nil")
	}
}

func TestMarkdownAppendsLinks(t *testing.T) {
	t.Parallel()

	md := Get(TimedOutId).Markdown()
	if !strings.Contains(md, "## See also") || !strings.Contains(md, "<https://pkg.go.dev/time#ParseDuration>") {
		t.Errorf("Markdown() missing links:\n%s", md)
	}
	if strings.Contains(Get(EmptyInputId).Markdown(), "See also") {
		t.Error("issue without links should have no See also section")
	}

	links := Get(TimedOutId).ExtLinks()
	links[0] = "mutated"
	if Get(TimedOutId).ExtLinks()[0] == "mutated" {
		t.Error("ExtLinks() should return a copy")
	}
}

func TestRenderUsesGlamour(t *testing.T) {
	t.Parallel()

	for _, is := range Values() {
		out, err := is.Render("notty")
		if err != nil {
			t.Errorf("Render(%d) error = %v", is.Id(), err)
			continue
		}
		if strings.TrimSpace(out) == "" {
			t.Errorf("Render(%d) produced no output", is.Id())
		}
	}

	out, err := Get(ToolchainMissingId).Render("notty")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Toolchain not found") || !strings.Contains(out, "polyrun check") {
		t.Errorf("rendered output missing content:\n%s", out)
	}
}
