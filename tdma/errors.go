package tdma

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownDevice is returned when a link references a device that was
	// never registered.
	ErrUnknownDevice = errors.New("tdma: unknown device")

	// ErrDuplicateDevice is returned when a device is registered twice.
	ErrDuplicateDevice = errors.New("tdma: duplicate device")

	// ErrInvalidDevice is returned for an empty device identifier.
	ErrInvalidDevice = errors.New("tdma: invalid device id")

	// ErrInvalidRate is returned for a negative generation rate.
	ErrInvalidRate = errors.New("tdma: invalid generation rate")

	// ErrCyclicTopology is returned when the directed link graph has a cycle
	// and forwarding requirements cannot be accumulated.
	ErrCyclicTopology = errors.New("tdma: topology contains a cycle")

	// ErrInvalidSchedule is returned by Validate when a plan breaks one of
	// the slot, channel or conservation rules.
	ErrInvalidSchedule = errors.New("tdma: invalid schedule")
)

// DeviceError reports a registration failure for a specific device.
type DeviceError struct {
	Op     string // "add device" or "add link"
	Device string
	Err    error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Op, e.Device, e.Err)
}

func (e *DeviceError) Unwrap() error {
	return e.Err
}

// CycleError lists the devices that could not be ordered because they sit on
// (or downstream of) a directed cycle.
type CycleError struct {
	Devices []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: unresolved devices [%s]", ErrCyclicTopology, strings.Join(e.Devices, ", "))
}

func (e *CycleError) Unwrap() error {
	return ErrCyclicTopology
}

// ViolationError describes the first rule a plan was found to break.
type ViolationError struct {
	Rule   string
	Detail string
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidSchedule, e.Rule, e.Detail)
}

func (e *ViolationError) Unwrap() error {
	return ErrInvalidSchedule
}
