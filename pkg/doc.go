// Package pkg provides shared utilities for the usbsnap library.
//
// This package contains the common functionality used across the snapshot
// core and the enumeration backends:
//
//   - Structured logging via Go's standard [log/slog] package
//   - Sentinel errors and the bus-conflict error type
//   - Component identifiers for log filtering
//
// The package relies only on the Go standard library.
//
// # Logging
//
// The logging subsystem wraps [log/slog] with usbsnap-specific context:
//
//	pkg.SetLogLevel(slog.LevelDebug)
//	pkg.LogInfo(pkg.ComponentContext, "snapshot built", "devices", n)
//
// # Errors
//
// Errors are defined as sentinel values so callers can test with
// [errors.Is]:
//
//	if errors.Is(err, pkg.ErrDuplicateBusNumbers) {
//	    // The libusb enumeration defect was detected.
//	}
package pkg
