//go:build cgo

package libusb

import (
	"sync"

	"github.com/google/gousb"

	"github.com/snagkit/usbsnap/hal"
	"github.com/snagkit/usbsnap/pkg"
)

func init() {
	hal.Register("libusb", Open)
	// Registration precedes any SetDefault call, so this cannot fail.
	_ = hal.SetDefault("libusb")
}

// Backend wraps one libusb context.
type Backend struct {
	mu     sync.Mutex
	ctx    *gousb.Context
	closed bool
}

// Open creates a backend around a fresh libusb context.
func Open() (hal.Backend, error) {
	return &Backend{ctx: gousb.NewContext()}, nil
}

// Enumerate lists every device libusb currently knows about, including
// hubs and root hubs. Devices are never opened: only descriptors are
// read, so no caller ends up holding a handle that could pin the
// context past a rescan.
func (b *Backend) Enumerate() ([]hal.DeviceInfo, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, pkg.ErrBackendClosed
	}

	var infos []hal.DeviceInfo
	_, err := b.ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		infos = append(infos, hal.DeviceInfo{
			Bus:     desc.Bus,
			Address: desc.Address,
			Path:    append([]int(nil), desc.Path...),
			Vendor:  uint16(desc.Vendor),
			Product: uint16(desc.Product),
			Class:   uint8(desc.Class),
			Speed:   mapSpeed(desc.Speed),
		})
		return false
	})
	if err != nil {
		return nil, err
	}
	pkg.LogDebug(pkg.ComponentHAL, "libusb enumeration complete", "devices", len(infos))
	return infos, nil
}

// Close releases the libusb context.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return pkg.ErrBackendClosed
	}
	b.closed = true
	return b.ctx.Close()
}

// mapSpeed converts the gousb speed constant.
func mapSpeed(s gousb.Speed) hal.Speed {
	switch s {
	case gousb.SpeedLow:
		return hal.SpeedLow
	case gousb.SpeedFull:
		return hal.SpeedFull
	case gousb.SpeedHigh:
		return hal.SpeedHigh
	case gousb.SpeedSuper:
		return hal.SpeedSuper
	default:
		return hal.SpeedUnknown
	}
}
