package hal

import (
	"errors"
	"testing"

	"github.com/snagkit/usbsnap/pkg"
)

// =============================================================================
// DeviceInfo Tests
// =============================================================================

func TestDeviceInfo_Topology(t *testing.T) {
	tests := []struct {
		name     string
		info     DeviceInfo
		wantRoot bool
		wantPort int
		wantName string
	}{
		{
			name:     "root hub",
			info:     DeviceInfo{Bus: 3, Address: 1},
			wantRoot: true,
			wantPort: 0,
			wantName: "usb3",
		},
		{
			name:     "directly attached",
			info:     DeviceInfo{Bus: 1, Address: 2, Path: []int{4}},
			wantRoot: false,
			wantPort: 4,
			wantName: "1-4",
		},
		{
			name:     "behind nested hubs",
			info:     DeviceInfo{Bus: 2, Address: 7, Path: []int{1, 3, 2}},
			wantRoot: false,
			wantPort: 2,
			wantName: "2-1.3.2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.Root(); got != tt.wantRoot {
				t.Errorf("Root() = %v, want %v", got, tt.wantRoot)
			}
			if got := tt.info.Port(); got != tt.wantPort {
				t.Errorf("Port() = %d, want %d", got, tt.wantPort)
			}
			if got := tt.info.Name(); got != tt.wantName {
				t.Errorf("Name() = %q, want %q", got, tt.wantName)
			}
		})
	}
}

func TestSpeed_String(t *testing.T) {
	tests := []struct {
		speed Speed
		want  string
	}{
		{SpeedLow, "Low Speed"},
		{SpeedFull, "Full Speed"},
		{SpeedHigh, "High Speed"},
		{SpeedSuper, "SuperSpeed"},
		{SpeedUnknown, "Unknown"},
		{Speed(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.speed.String(); got != tt.want {
			t.Errorf("Speed(%d).String() = %q, want %q", tt.speed, got, tt.want)
		}
	}
}

// =============================================================================
// Registry Tests
// =============================================================================

type nopBackend struct{}

func (nopBackend) Enumerate() ([]DeviceInfo, error) { return nil, nil }
func (nopBackend) Close() error                     { return nil }

// resetRegistry clears registry state between tests.
func resetRegistry() {
	registryMu.Lock()
	backends = make(map[string]Factory)
	defaultName = ""
	registryMu.Unlock()
}

func TestRegistry_OpenByName(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	Register("nop", func() (Backend, error) { return nopBackend{}, nil })

	b, err := Open("nop")
	if err != nil {
		t.Fatalf("Open(nop) failed: %v", err)
	}
	if b == nil {
		t.Fatal("Open(nop) returned nil backend")
	}

	if _, err := Open("missing"); !errors.Is(err, pkg.ErrUnknownBackend) {
		t.Errorf("Open(missing) error = %v, want ErrUnknownBackend", err)
	}
}

func TestRegistry_Default(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	// No backends at all.
	if _, err := OpenDefault(); !errors.Is(err, pkg.ErrNoBackend) {
		t.Errorf("OpenDefault() error = %v, want ErrNoBackend", err)
	}

	// A single registered backend is the implicit default.
	Register("only", func() (Backend, error) { return nopBackend{}, nil })
	if _, err := OpenDefault(); err != nil {
		t.Errorf("OpenDefault() with one backend failed: %v", err)
	}

	// Two backends and no claim: ambiguous.
	Register("other", func() (Backend, error) { return nopBackend{}, nil })
	if _, err := OpenDefault(); !errors.Is(err, pkg.ErrNoBackend) {
		t.Errorf("OpenDefault() with two backends error = %v, want ErrNoBackend", err)
	}

	// An explicit claim resolves it.
	if err := SetDefault("other"); err != nil {
		t.Fatalf("SetDefault(other) failed: %v", err)
	}
	if _, err := OpenDefault(); err != nil {
		t.Errorf("OpenDefault() after SetDefault failed: %v", err)
	}

	if err := SetDefault("missing"); !errors.Is(err, pkg.ErrUnknownBackend) {
		t.Errorf("SetDefault(missing) error = %v, want ErrUnknownBackend", err)
	}
}

func TestRegistry_Backends(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	Register("zeta", func() (Backend, error) { return nopBackend{}, nil })
	Register("alpha", func() (Backend, error) { return nopBackend{}, nil })

	got := Backends()
	if len(got) != 2 || got[0] != "alpha" || got[1] != "zeta" {
		t.Errorf("Backends() = %v, want [alpha zeta]", got)
	}
}
