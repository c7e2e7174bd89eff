package models

import (
	"encoding/json"
	"testing"
)

func TestModeUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Mode
		wantErr bool
	}{
		{name: "string", input: `"reading"`, want: "reading"},
		{name: "list uses first element", input: `["interaction", "reading"]`, want: "interaction"},
		{name: "single element list", input: `["reading"]`, want: "reading"},
		{name: "empty list", input: `[]`, wantErr: true},
		{name: "number", input: `3`, wantErr: true},
		{name: "list of numbers", input: `[1]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Mode
			err := json.Unmarshal([]byte(tt.input), &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Unmarshal(%s) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRawAssertionUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode string
		wantDesc string
		wantErr  bool
	}{
		{name: "numeric code", input: `[1, "Role is conveyed"]`, wantCode: "1", wantDesc: "Role is conveyed"},
		{name: "string code", input: `["2", "Name is conveyed"]`, wantCode: "2", wantDesc: "Name is conveyed"},
		{name: "non-numeric string code", input: `["x", "Kept as written"]`, wantCode: "x", wantDesc: "Kept as written"},
		{name: "decimal code keeps its text", input: `[1.0, "Decimal"]`, wantCode: "1.0", wantDesc: "Decimal"},
		{name: "null code", input: `[null, "a"]`, wantCode: "", wantDesc: "a"},
		{name: "boolean code", input: `[true, "a"]`, wantCode: "", wantDesc: "a"},
		{name: "object code", input: `[{}, "a"]`, wantCode: "", wantDesc: "a"},
		{name: "three elements", input: `[1, "a", "b"]`, wantCode: "1", wantDesc: "a"},
		{name: "one element", input: `[1]`, wantCode: "1", wantDesc: ""},
		{name: "empty array", input: `[]`, wantCode: "", wantDesc: ""},
		{name: "numeric description", input: `[1, 2]`, wantCode: "1", wantDesc: "2"},
		{name: "null description", input: `[1, null]`, wantCode: "1", wantDesc: ""},
		{name: "object", input: `{"priority": 1}`, wantErr: true},
		{name: "string", input: `"1"`, wantErr: true},
		{name: "null", input: `null`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got RawAssertion
			err := json.Unmarshal([]byte(tt.input), &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.PriorityCode != tt.wantCode || got.Description != tt.wantDesc {
				t.Errorf("Unmarshal(%s) = %+v, want {%s %s}", tt.input, got, tt.wantCode, tt.wantDesc)
			}
		})
	}
}

func TestApplicabilityConstructors(t *testing.T) {
	all := AllKnown([]string{"Screen Readers"})
	if all.Kind != ApplicabilityAllKnown {
		t.Errorf("AllKnown kind = %v, want ApplicabilityAllKnown", all.Kind)
	}
	if len(all.Keys) != 0 {
		t.Errorf("AllKnown keys = %v, want none", all.Keys)
	}
	if len(all.Declared) != 1 || all.Declared[0] != "Screen Readers" {
		t.Errorf("AllKnown declared = %v", all.Declared)
	}

	explicit := Explicit([]string{"JAWS", "NVDA"})
	if explicit.Kind != ApplicabilityExplicit {
		t.Errorf("Explicit kind = %v, want ApplicabilityExplicit", explicit.Kind)
	}
	if len(explicit.Keys) != 2 || len(explicit.Declared) != 2 {
		t.Errorf("Explicit = %+v, want two keys declared as written", explicit)
	}
}
