// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"strings"
	"testing"
)

const testSchema = `
#Settings: close({
	name?:  string
	level?: int & >=0 & <=3
	tags?: [...string]
})
`

func TestDecodeToMap(t *testing.T) {
	t.Parallel()

	got, err := DecodeToMap(testSchema, "#Settings", []byte(`name: "x"
level: 2
tags: ["a", "b"]
`), "settings.cue")
	if err != nil {
		t.Fatalf("DecodeToMap() error = %v", err)
	}
	if got["name"] != "x" {
		t.Errorf("name = %v", got["name"])
	}
	if _, ok := got["level"]; !ok {
		t.Error("level missing")
	}
	if tags, ok := got["tags"].([]any); !ok || len(tags) != 2 {
		t.Errorf("tags = %#v", got["tags"])
	}
}

func TestDecodeToMapPartial(t *testing.T) {
	t.Parallel()

	got, err := DecodeToMap(testSchema, "#Settings", []byte(`name: "only"`), "settings.cue")
	if err != nil {
		t.Fatalf("DecodeToMap() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %v, want only name", got)
	}
}

func TestDecodeToMapErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		want string
	}{
		{name: "constraint", data: "level: 7", want: "level"},
		{name: "unknown field", data: `colour: "red"`, want: "colour"},
		{name: "syntax", data: "name: {", want: "settings.cue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := DecodeToMap(testSchema, "#Settings", []byte(tt.data), "settings.cue")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
			if !strings.HasPrefix(err.Error(), "settings.cue") {
				t.Errorf("error %q should start with the file name", err)
			}
		})
	}
}

func TestDecodeToMapMissingDefinition(t *testing.T) {
	t.Parallel()

	_, err := DecodeToMap(testSchema, "#Nope", []byte(`name: "x"`), "settings.cue")
	if err == nil || !strings.Contains(err.Error(), "#Nope") {
		t.Errorf("error = %v, want missing definition", err)
	}
}

func TestFormatSource(t *testing.T) {
	t.Parallel()

	out, err := FormatSource([]byte("a:   1\nb: {c:    2}\n"))
	if err != nil {
		t.Fatalf("FormatSource() error = %v", err)
	}
	if !strings.Contains(string(out), "a: 1") {
		t.Errorf("formatted = %q", out)
	}
	if _, err := FormatSource([]byte("a: {")); err == nil {
		t.Error("expected error for invalid source")
	}
}
