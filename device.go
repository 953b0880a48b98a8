package usbsnap

import (
	"fmt"

	"github.com/snagkit/usbsnap/hal"
)

// Device is a non-owning view of one enumerated device. It is valid
// for topology queries while its owning Context is alive; after the
// context is closed (typically by Rescan) the view is stale and Valid
// reports false. A Device never holds native resources of its own.
type Device struct {
	ctx    *Context
	info   hal.DeviceInfo
	parent *Device
}

// Bus returns the bus number.
func (d *Device) Bus() int { return d.info.Bus }

// Address returns the device address on its bus.
func (d *Device) Address() int { return d.info.Address }

// Port returns the hub port the device is attached to, or 0 for root hubs.
func (d *Device) Port() int { return d.info.Port() }

// Vendor returns the USB Vendor ID.
func (d *Device) Vendor() uint16 { return d.info.Vendor }

// Product returns the USB Product ID.
func (d *Device) Product() uint16 { return d.info.Product }

// Class returns the device class code.
func (d *Device) Class() uint8 { return d.info.Class }

// Speed returns the connection speed.
func (d *Device) Speed() hal.Speed { return d.info.Speed }

// Root reports whether the device is a root hub.
func (d *Device) Root() bool { return d.info.Root() }

// Parent returns the device's parent hub, or nil for root hubs.
func (d *Device) Parent() *Device { return d.parent }

// Valid reports whether the owning snapshot is still the live one.
func (d *Device) Valid() bool { return d.ctx.Alive() }

// String formats the device in lsusb style.
func (d *Device) String() string {
	return fmt.Sprintf("Bus %03d Device %03d: ID %04x:%04x",
		d.info.Bus, d.info.Address, d.info.Vendor, d.info.Product)
}

// attr resolves a filter attribute by name. The second result is false
// for names the device model does not expose; Find treats those as a
// failed criterion, never as an error.
func (d *Device) attr(name string) (any, bool) {
	switch name {
	case "bus":
		return d.info.Bus, true
	case "address":
		return d.info.Address, true
	case "port":
		return d.info.Port(), true
	case "vendor":
		return d.info.Vendor, true
	case "product":
		return d.info.Product, true
	case "class":
		return d.info.Class, true
	case "speed":
		return d.info.Speed, true
	case "root":
		return d.info.Root(), true
	default:
		return nil, false
	}
}
