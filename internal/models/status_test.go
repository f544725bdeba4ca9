package models

import (
	"encoding/json"
	"testing"
)

func TestStatusConstants(t *testing.T) {
	tests := []struct {
		status   Status
		expected string
	}{
		{StatusFatal, "fatal"},
		{StatusCritique, "critique"},
		{StatusMineur, "mineur"},
		{StatusInformation, "information"},
		{StatusOK, "ok"},
		{StatusDeconnecte, "deconnecte"},
	}

	for _, tc := range tests {
		if string(tc.status) != tc.expected {
			t.Errorf("expected %s, got %s", tc.expected, tc.status)
		}
	}
}

func TestIsValidStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"fatal", true},
		{"ok", true},
		{"deconnecte", true},
		{"herite", false}, // only valid as an element's own status
		{"", false},
		{"OK", false}, // case sensitive
	}

	for _, tc := range tests {
		if got := IsValidStatus(tc.input); got != tc.expected {
			t.Errorf("IsValidStatus(%q) = %v, expected %v", tc.input, got, tc.expected)
		}
	}
}

func TestOwnStatus_ZeroValueIsOK(t *testing.T) {
	var o OwnStatus
	s, ok := o.Explicit()
	if !ok || s != StatusOK {
		t.Errorf("zero OwnStatus: got (%q, %v), want (ok, true)", s, ok)
	}
	if o.IsInherited() {
		t.Error("zero OwnStatus should not be inherited")
	}
}

func TestParseOwnStatus(t *testing.T) {
	tests := []struct {
		input     string
		inherited bool
		want      Status
		wantErr   bool
	}{
		{input: "herite", inherited: true},
		{input: "mineur", want: StatusMineur},
		{input: "", want: StatusOK},
		{input: "broken", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseOwnStatus(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseOwnStatus(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if tc.wantErr {
				return
			}
			if got.IsInherited() != tc.inherited {
				t.Errorf("IsInherited: got %v, want %v", got.IsInherited(), tc.inherited)
			}
			if s, ok := got.Explicit(); ok && s != tc.want {
				t.Errorf("Explicit: got %s, want %s", s, tc.want)
			}
		})
	}
}

func TestOwnStatus_JSON(t *testing.T) {
	el := Element{ID: "e1", Name: "Pump", Status: Inherited()}
	data, err := json.Marshal(el)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal raw: %v", err)
	}
	if raw["status"] != "herite" {
		t.Errorf("stored status: got %v, want herite", raw["status"])
	}

	var legacy Element
	if err := json.Unmarshal([]byte(`{"id":"e2","name":"x","status":"unknown-level"}`), &legacy); err != nil {
		t.Fatalf("Unmarshal legacy: %v", err)
	}
	if s, _ := legacy.Status.Explicit(); s != StatusOK {
		t.Errorf("unknown stored status: got %s, want ok", s)
	}
}
