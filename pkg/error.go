package pkg

import (
	"errors"
	"fmt"
)

// Library errors.
var (
	// ErrDuplicateBusNumbers indicates that two or more root hubs were
	// assigned the same bus number by the native enumeration library.
	ErrDuplicateBusNumbers = errors.New("duplicate root hub bus numbers")

	// ErrContextClosed indicates the device snapshot backing a view has
	// been released, typically by a rescan.
	ErrContextClosed = errors.New("device context closed")

	// ErrBackendClosed indicates an enumeration backend was used after
	// its native context was released.
	ErrBackendClosed = errors.New("backend closed")

	// ErrNoBackend indicates no enumeration backend is available.
	ErrNoBackend = errors.New("no enumeration backend registered")

	// ErrUnknownBackend indicates the named enumeration backend is not
	// registered.
	ErrUnknownBackend = errors.New("unknown enumeration backend")

	// ErrUnsupported indicates the backend is not available on this
	// platform.
	ErrUnsupported = errors.New("backend not supported on this platform")
)

// BusConflictError reports the libusb enumeration defect seen on some
// Windows builds: more root hubs than distinct bus numbers, meaning at
// least two root hubs share a bus number. A snapshot that trips this
// check is never handed out; the fix is a newer native library, not a
// retry.
type BusConflictError struct {
	RootHubs int // Number of root hub devices enumerated
	Buses    int // Number of distinct bus numbers among them
}

// Error implements the error interface.
func (e *BusConflictError) Error() string {
	return fmt.Sprintf(
		"libusb bug detected: %d root hubs share %d bus numbers; "+
			"update libusb (and any DLL bundled with its binding) to a newer version",
		e.RootHubs, e.Buses)
}

// Unwrap makes the error match ErrDuplicateBusNumbers under errors.Is.
func (e *BusConflictError) Unwrap() error {
	return ErrDuplicateBusNumbers
}
