package domain

import "strings"

// RequestType is the kind of a staff scheduling request.
type RequestType string

const (
	RequestOff     RequestType = "off"
	RequestHoliday RequestType = "holiday"
	RequestWork    RequestType = "work"
)

// RequestStatusApproved marks requests the engine consumes. Requests in any
// other status are ignored.
const RequestStatusApproved = "approved"

// LeaveRequest is a staff request for a specific date. Only approved
// off/holiday requests act on the engine, as hard unavailability.
type LeaveRequest struct {
	StaffID string
	Date    Date
	Type    RequestType
	Status  string
	Start   string
	End     string
}

// Blocking reports whether the request removes the staff from its date.
func (r LeaveRequest) Blocking() bool {
	return r.Status == RequestStatusApproved &&
		(r.Type == RequestOff || r.Type == RequestHoliday)
}

// Mode selects how the engine attempts a solution.
type Mode string

const (
	// ModeAuto runs the regular tier cascade.
	ModeAuto Mode = "auto"
	// ModeMath is an alias of auto kept for callers that distinguish the
	// mathematical path from other generators.
	ModeMath Mode = "math"
	// ModeForce enables contract-limit relaxations from the first tier on.
	ModeForce Mode = "force"
)

// ParseMode parses a solve mode. An empty value defaults to auto.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeAuto, "":
		return ModeAuto, nil
	case ModeMath:
		return ModeMath, nil
	case ModeForce:
		return ModeForce, nil
	default:
		return "", NewInvalidInput("unknown mode %q", s)
	}
}

// Force reports whether the mode enables force relaxations for every tier.
func (m Mode) Force() bool { return m == ModeForce }
