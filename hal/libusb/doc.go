// Package libusb provides the enumeration backend over libusb, using
// the gousb binding.
//
// Every Backend wraps its own gousb (libusb) context. The snapshot core
// opens a fresh backend per scan and closes it before the next one, so
// the underlying libusb context is torn down and recreated on every
// rescan. This sidesteps a defect in some Windows libusb builds where
// re-enumerating on a live context can assign one bus number to two
// root hubs.
//
// Importing this package registers the backend as "libusb" and claims
// the default slot.
package libusb
