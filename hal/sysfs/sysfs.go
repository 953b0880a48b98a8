//go:build linux

package sysfs

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/snagkit/usbsnap/hal"
	"github.com/snagkit/usbsnap/pkg"
)

// DefaultPath is the base path for USB devices in sysfs.
const DefaultPath = "/sys/bus/usb/devices"

func init() {
	hal.Register("sysfs", Open)
}

// Backend scans a sysfs USB device directory. It holds no native
// resources; Close only invalidates the backend.
type Backend struct {
	root   string
	closed bool
}

// Open creates a backend over the standard sysfs location.
func Open() (hal.Backend, error) {
	return OpenAt(DefaultPath)
}

// OpenAt creates a backend over an alternate sysfs root, used in tests.
func OpenAt(root string) (hal.Backend, error) {
	return &Backend{root: root}, nil
}

// Enumerate scans the sysfs directory for USB devices, including root
// hubs (the "usbN" entries). Results are ordered by bus number, then
// address, matching the stable order the kernel exposes.
func (b *Backend) Enumerate() ([]hal.DeviceInfo, error) {
	if b.closed {
		return nil, pkg.ErrBackendClosed
	}

	entries, err := os.ReadDir(b.root)
	if err != nil {
		return nil, err
	}

	var devices []hal.DeviceInfo
	for _, entry := range entries {
		name := entry.Name()

		// Interface entries ("1-1:1.0") describe functions of a device
		// already listed under its own name.
		if strings.Contains(name, ":") {
			continue
		}

		bus, path, ok := parseName(name)
		if !ok {
			continue
		}

		info, err := b.readDevice(filepath.Join(b.root, name))
		if err != nil {
			// Entries can disappear mid-scan; skip what we cannot read.
			pkg.LogDebug(pkg.ComponentHAL, "skipping sysfs entry",
				"entry", name, "error", err)
			continue
		}
		info.Bus = bus
		info.Path = path
		devices = append(devices, info)
	}

	sort.Slice(devices, func(i, j int) bool {
		if devices[i].Bus != devices[j].Bus {
			return devices[i].Bus < devices[j].Bus
		}
		return devices[i].Address < devices[j].Address
	})

	pkg.LogDebug(pkg.ComponentHAL, "sysfs enumeration complete", "devices", len(devices))
	return devices, nil
}

// Close invalidates the backend.
func (b *Backend) Close() error {
	if b.closed {
		return pkg.ErrBackendClosed
	}
	b.closed = true
	return nil
}

// =============================================================================
// Sysfs Parsing
// =============================================================================

// parseName decodes a sysfs device entry name into bus and port path.
// Root hubs are named "usbN"; devices are named "B-p" or "B-p.p.p" for
// nested hub topologies. Anything else is not a device entry.
func parseName(name string) (bus int, path []int, ok bool) {
	if n, found := strings.CutPrefix(name, "usb"); found {
		bus, err := strconv.Atoi(n)
		if err != nil || bus <= 0 {
			return 0, nil, false
		}
		return bus, nil, true
	}

	busStr, portStr, found := strings.Cut(name, "-")
	if !found {
		return 0, nil, false
	}
	bus, err := strconv.Atoi(busStr)
	if err != nil || bus <= 0 {
		return 0, nil, false
	}
	for _, p := range strings.Split(portStr, ".") {
		port, err := strconv.Atoi(p)
		if err != nil || port <= 0 {
			return 0, nil, false
		}
		path = append(path, port)
	}
	return bus, path, true
}

// readDevice reads the per-device attribute files. Bus and Path are
// filled in by the caller from the entry name; busnum is still read to
// reject directories that are not devices.
func (b *Backend) readDevice(dir string) (hal.DeviceInfo, error) {
	var info hal.DeviceInfo

	if _, err := readUint(filepath.Join(dir, "busnum"), 8); err != nil {
		return info, err
	}

	devNum, err := readUint(filepath.Join(dir, "devnum"), 8)
	if err != nil {
		return info, err
	}
	info.Address = int(devNum)

	if v, err := readHex(filepath.Join(dir, "idVendor"), 16); err == nil {
		info.Vendor = uint16(v)
	}
	if v, err := readHex(filepath.Join(dir, "idProduct"), 16); err == nil {
		info.Product = uint16(v)
	}
	if v, err := readHex(filepath.Join(dir, "bDeviceClass"), 8); err == nil {
		info.Class = uint8(v)
	}
	if s, err := readString(filepath.Join(dir, "speed")); err == nil {
		info.Speed = parseSpeed(s)
	}

	return info, nil
}

// parseSpeed converts the sysfs speed attribute (Mbit/s) to hal.Speed.
func parseSpeed(s string) hal.Speed {
	switch s {
	case "1.5":
		return hal.SpeedLow
	case "12":
		return hal.SpeedFull
	case "480":
		return hal.SpeedHigh
	case "5000", "10000", "20000":
		return hal.SpeedSuper
	default:
		return hal.SpeedUnknown
	}
}

// =============================================================================
// Sysfs Read Helpers
// =============================================================================

// readString reads a trimmed string from a sysfs attribute file.
func readString(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// readUint reads an unsigned decimal integer from a sysfs attribute file.
func readUint(path string, bitSize int) (uint64, error) {
	s, err := readString(path)
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(s, 10, bitSize)
}

// readHex reads a hexadecimal value from a sysfs attribute file.
func readHex(path string, bitSize int) (uint64, error) {
	s, err := readString(path)
	if err != nil {
		return 0, err
	}
	s = strings.TrimPrefix(s, "0x")
	return strconv.ParseUint(s, 16, bitSize)
}
