// Package sysfs provides a pure-Go enumeration backend for Linux that
// reads /sys/bus/usb/devices directly, with no libusb dependency.
//
// Unlike libusb, sysfs has no long-lived native context, so this
// backend is immune to the context-reuse defect by construction; it
// exists as a no-cgo alternative and as the ground truth the libusb
// backend can be checked against.
//
// On Linux, importing this package registers the backend as "sysfs".
// On other platforms Open returns pkg.ErrUnsupported.
package sysfs
