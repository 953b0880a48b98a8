package hal

import (
	"fmt"
	"strings"
)

// Speed represents the USB connection speed.
type Speed uint8

// USB speed constants.
const (
	SpeedUnknown Speed = iota // Not connected or unknown
	SpeedLow                  // Low Speed (1.5 Mbit/s)
	SpeedFull                 // Full Speed (12 Mbit/s)
	SpeedHigh                 // High Speed (480 Mbit/s)
	SpeedSuper                // SuperSpeed (5 Gbit/s and above)
)

// String returns a human-readable speed name.
func (s Speed) String() string {
	switch s {
	case SpeedLow:
		return "Low Speed"
	case SpeedFull:
		return "Full Speed"
	case SpeedHigh:
		return "High Speed"
	case SpeedSuper:
		return "SuperSpeed"
	default:
		return "Unknown"
	}
}

// DeviceInfo describes one device captured during an enumeration pass.
// It is plain data: holding a DeviceInfo does not keep the native
// enumeration context alive.
type DeviceInfo struct {
	Bus     int    // Bus number
	Address int    // Device address on the bus
	Path    []int  // Port path from the root hub; empty for root hubs
	Vendor  uint16 // USB Vendor ID
	Product uint16 // USB Product ID
	Class   uint8  // bDeviceClass
	Speed   Speed  // Connection speed
}

// Root reports whether the device is a root hub (top of its bus).
func (d *DeviceInfo) Root() bool {
	return len(d.Path) == 0
}

// Port returns the hub port the device is attached to, or 0 for root hubs.
func (d *DeviceInfo) Port() int {
	if len(d.Path) == 0 {
		return 0
	}
	return d.Path[len(d.Path)-1]
}

// Name returns the sysfs-style topology name for the device:
// "usb3" for a root hub, "3-1.2" for a device behind hub port 1, port 2.
func (d *DeviceInfo) Name() string {
	if len(d.Path) == 0 {
		return fmt.Sprintf("usb%d", d.Bus)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d-%d", d.Bus, d.Path[0])
	for _, p := range d.Path[1:] {
		fmt.Fprintf(&b, ".%d", p)
	}
	return b.String()
}

// Backend wraps a single native enumeration context.
//
// Enumerate captures the complete current device set, including hubs
// and root hubs, in the order the native library reports them. Close
// releases the native context; after Close the backend must not be
// used. Implementations are not required to be safe for concurrent use:
// the snapshot core serializes all access.
type Backend interface {
	// Enumerate returns the full set of currently attached devices.
	Enumerate() ([]DeviceInfo, error)

	// Close releases the native enumeration context.
	Close() error
}
