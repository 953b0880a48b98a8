//go:build linux

package sysfs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/snagkit/usbsnap/hal"
	"github.com/snagkit/usbsnap/pkg"
)

// =============================================================================
// parseName Tests
// =============================================================================

func TestParseName(t *testing.T) {
	tests := []struct {
		name     string
		wantBus  int
		wantPath []int
		wantOK   bool
	}{
		{"usb1", 1, nil, true},
		{"usb12", 12, nil, true},
		{"1-1", 1, []int{1}, true},
		{"3-1.2", 3, []int{1, 2}, true},
		{"2-4.1.3", 2, []int{4, 1, 3}, true},
		{"usb0", 0, nil, false},
		{"usbX", 0, nil, false},
		{"1-0", 0, nil, false},
		{"1-", 0, nil, false},
		{"-1", 0, nil, false},
		{"ep_81", 0, nil, false},
		{"", 0, nil, false},
	}

	for _, tt := range tests {
		bus, path, ok := parseName(tt.name)
		if ok != tt.wantOK {
			t.Errorf("parseName(%q) ok = %v, want %v", tt.name, ok, tt.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if bus != tt.wantBus {
			t.Errorf("parseName(%q) bus = %d, want %d", tt.name, bus, tt.wantBus)
		}
		if len(path) != len(tt.wantPath) {
			t.Errorf("parseName(%q) path = %v, want %v", tt.name, path, tt.wantPath)
			continue
		}
		for i := range path {
			if path[i] != tt.wantPath[i] {
				t.Errorf("parseName(%q) path = %v, want %v", tt.name, path, tt.wantPath)
				break
			}
		}
	}
}

// =============================================================================
// parseSpeed Tests
// =============================================================================

func TestParseSpeed(t *testing.T) {
	tests := []struct {
		input    string
		expected hal.Speed
	}{
		{"1.5", hal.SpeedLow},
		{"12", hal.SpeedFull},
		{"480", hal.SpeedHigh},
		{"5000", hal.SpeedSuper},
		{"10000", hal.SpeedSuper},
		{"", hal.SpeedUnknown},
		{"invalid", hal.SpeedUnknown},
	}

	for _, tt := range tests {
		if got := parseSpeed(tt.input); got != tt.expected {
			t.Errorf("parseSpeed(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

// =============================================================================
// Enumerate Tests
// =============================================================================

// writeDevice populates a fake sysfs device directory.
func writeDevice(t *testing.T, root, name string, attrs map[string]string) {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for attr, val := range attrs {
		if err := os.WriteFile(filepath.Join(dir, attr), []byte(val+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestEnumerate(t *testing.T) {
	root := t.TempDir()

	writeDevice(t, root, "usb1", map[string]string{
		"busnum": "1", "devnum": "1",
		"idVendor": "1d6b", "idProduct": "0002",
		"bDeviceClass": "09", "speed": "480",
	})
	writeDevice(t, root, "1-1", map[string]string{
		"busnum": "1", "devnum": "2",
		"idVendor": "0483", "idProduct": "df11",
		"bDeviceClass": "00", "speed": "12",
	})
	writeDevice(t, root, "1-1.2", map[string]string{
		"busnum": "1", "devnum": "3",
		"idVendor": "046d", "idProduct": "c077",
		"bDeviceClass": "00", "speed": "1.5",
	})
	// Interface entry and unreadable entry must both be skipped.
	writeDevice(t, root, "1-1:1.0", map[string]string{
		"bInterfaceClass": "03",
	})
	if err := os.MkdirAll(filepath.Join(root, "2-1"), 0o755); err != nil {
		t.Fatal(err)
	}

	b, err := OpenAt(root)
	if err != nil {
		t.Fatalf("OpenAt failed: %v", err)
	}
	defer b.Close()

	devices, err := b.Enumerate()
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}
	if len(devices) != 3 {
		t.Fatalf("Enumerate returned %d devices, want 3", len(devices))
	}

	hub := devices[0]
	if !hub.Root() || hub.Bus != 1 || hub.Address != 1 || hub.Class != 0x09 {
		t.Errorf("root hub = %+v", hub)
	}
	if hub.Speed != hal.SpeedHigh {
		t.Errorf("root hub speed = %v, want High Speed", hub.Speed)
	}

	dev := devices[1]
	if dev.Root() || dev.Vendor != 0x0483 || dev.Product != 0xdf11 {
		t.Errorf("device 1-1 = %+v", dev)
	}
	if dev.Port() != 1 {
		t.Errorf("device 1-1 port = %d, want 1", dev.Port())
	}

	nested := devices[2]
	if nested.Name() != "1-1.2" || nested.Speed != hal.SpeedLow {
		t.Errorf("device 1-1.2 = %+v", nested)
	}
}

func TestEnumerate_MissingRoot(t *testing.T) {
	b, err := OpenAt(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("OpenAt failed: %v", err)
	}
	if _, err := b.Enumerate(); err == nil {
		t.Error("Enumerate on missing directory succeeded, want error")
	}
}

func TestBackend_Close(t *testing.T) {
	b, err := OpenAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenAt failed: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := b.Enumerate(); !errors.Is(err, pkg.ErrBackendClosed) {
		t.Errorf("Enumerate after Close error = %v, want ErrBackendClosed", err)
	}
	if err := b.Close(); !errors.Is(err, pkg.ErrBackendClosed) {
		t.Errorf("double Close error = %v, want ErrBackendClosed", err)
	}
}
