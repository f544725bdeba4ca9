package models

import (
	"encoding/json"
	"fmt"
)

// Status defines the health of a cockpit entity
type Status string

const (
	StatusFatal       Status = "fatal"
	StatusCritique    Status = "critique"
	StatusMineur      Status = "mineur"
	StatusInformation Status = "information"
	StatusOK          Status = "ok"
	StatusDeconnecte  Status = "deconnecte" // no data received
)

// InheritedStatus is the stored form of an inherited element status.
const InheritedStatus = "herite"

// ValidStatuses contains all valid status values, most severe first
var ValidStatuses = []Status{
	StatusFatal,
	StatusCritique,
	StatusMineur,
	StatusInformation,
	StatusOK,
	StatusDeconnecte,
}

// IsValidStatus checks if a status string is a valid Status
func IsValidStatus(s string) bool {
	for _, status := range ValidStatuses {
		if string(status) == s {
			return true
		}
	}
	return false
}

// OwnStatus is the status an element carries itself: either an explicit
// status or a marker asking for the status to be derived from its children.
// The zero value reads as Explicit(StatusOK).
type OwnStatus struct {
	value     Status
	inherited bool
}

// Explicit returns an OwnStatus holding s.
func Explicit(s Status) OwnStatus {
	return OwnStatus{value: s}
}

// Inherited returns the OwnStatus that derives its value from children and linked peers.
func Inherited() OwnStatus {
	return OwnStatus{inherited: true}
}

// IsInherited reports whether the status must be derived.
func (o OwnStatus) IsInherited() bool {
	return o.inherited
}

// Explicit returns the explicit status and true, or false for an inherited status.
func (o OwnStatus) Explicit() (Status, bool) {
	if o.inherited {
		return "", false
	}
	if o.value == "" {
		return StatusOK, true
	}
	return o.value, true
}

func (o OwnStatus) String() string {
	if o.inherited {
		return InheritedStatus
	}
	s, _ := o.Explicit()
	return string(s)
}

// ParseOwnStatus parses a stored status string, accepting "herite".
func ParseOwnStatus(s string) (OwnStatus, error) {
	switch {
	case s == InheritedStatus:
		return Inherited(), nil
	case s == "":
		return Explicit(StatusOK), nil
	case IsValidStatus(s):
		return Explicit(Status(s)), nil
	}
	return OwnStatus{}, fmt.Errorf("invalid status: %q", s)
}

// MarshalJSON writes the status as its plain string form.
func (o OwnStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// UnmarshalJSON reads the plain string form. Unknown values fall back to ok so
// that stored data written by newer versions still loads.
func (o *OwnStatus) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseOwnStatus(s)
	if err != nil {
		parsed = Explicit(StatusOK)
	}
	*o = parsed
	return nil
}
