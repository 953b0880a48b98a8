// Package hal defines the enumeration backend contract for usbsnap.
//
// A Backend wraps one native enumeration context: it is created, asked
// for the full device set, and closed. Backends are never reused across
// scans; the snapshot core opens a fresh Backend for every construction
// so that stale native state cannot leak from one scan into the next.
//
// Backends register themselves by name, typically from an init function:
//
//	hal.Register("libusb", Open)
//
// The snapshot core opens whichever backend holds the default slot. A
// backend claims the slot with SetDefault; when exactly one backend is
// registered it is used implicitly.
package hal
