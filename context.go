package usbsnap

import (
	"runtime"
	"sync"

	"github.com/snagkit/usbsnap/hal"
	"github.com/snagkit/usbsnap/pkg"
)

// Context owns one snapshot of the enumerated device tree together
// with the native enumeration context that produced it. Snapshot
// contents are immutable after construction; Close releases the native
// context and invalidates every view handed out.
type Context struct {
	mu      sync.RWMutex
	backend hal.Backend
	devices []*Device
	closed  bool
}

var (
	// singletonMu serializes access to the process-wide snapshot.
	singletonMu sync.Mutex
	singleton   *Context

	// hostOS gates the Windows-only bus number check. It's a variable
	// in case you need to override it during tests.
	hostOS = runtime.GOOS
)

// GetContext returns the current process-wide snapshot, constructing
// one from the default backend on first use.
func GetContext() (*Context, error) {
	singletonMu.Lock()
	defer singletonMu.Unlock()
	if singleton == nil {
		c, err := newDefaultContext()
		if err != nil {
			return nil, err
		}
		singleton = c
	}
	return singleton, nil
}

// Rescan discards the process-wide snapshot and constructs a fresh one.
//
// The old native context is torn down synchronously before the new
// enumeration runs. Reusing a live context across enumerations is
// exactly what provokes the duplicate-bus defect on affected libusb
// builds, so the old context must be gone, not merely unreferenced,
// before the next scan starts.
//
// If the new construction fails, the singleton is left unset and the
// error is returned; the prior snapshot is not restored.
func Rescan() (*Context, error) {
	singletonMu.Lock()
	defer singletonMu.Unlock()

	if singleton != nil {
		if err := singleton.Close(); err != nil {
			pkg.LogWarn(pkg.ComponentContext, "error releasing previous context", "error", err)
		}
		singleton = nil
	}

	c, err := newDefaultContext()
	if err != nil {
		return nil, err
	}
	singleton = c
	return c, nil
}

func newDefaultContext() (*Context, error) {
	b, err := hal.OpenDefault()
	if err != nil {
		return nil, err
	}
	return NewContext(b)
}

// NewContext builds a snapshot from the given backend and takes
// ownership of it: the backend is closed when the context is closed,
// or immediately if construction fails. Most callers want GetContext
// and Rescan instead; NewContext exists for embedders that manage the
// snapshot lifetime themselves.
func NewContext(b hal.Backend) (*Context, error) {
	infos, err := b.Enumerate()
	if err != nil {
		_ = b.Close()
		return nil, err
	}

	c := &Context{backend: b}
	c.devices = link(c, infos)

	if err := c.checkBusNumbers(hostOS); err != nil {
		_ = b.Close()
		return nil, err
	}

	pkg.LogInfo(pkg.ComponentContext, "snapshot built", "devices", len(c.devices))
	return c, nil
}

// link wraps enumeration records in views and connects each device to
// its parent hub. Parents are resolved by topology: a device's parent
// is the device whose port path is its own with the last hop removed,
// and a device with an empty path is a root hub.
func link(c *Context, infos []hal.DeviceInfo) []*Device {
	devices := make([]*Device, len(infos))
	byName := make(map[string]*Device, len(infos))
	for i := range infos {
		devices[i] = &Device{ctx: c, info: infos[i]}
		byName[infos[i].Name()] = devices[i]
	}
	for _, d := range devices {
		if d.info.Root() {
			continue
		}
		parent := d.info
		parent.Path = d.info.Path[:len(d.info.Path)-1]
		d.parent = byName[parent.Name()]
	}
	return devices
}

// checkBusNumbers runs the construction-time sanity check for the
// libusb enumeration defect. Only the Windows builds of libusb are
// affected, so it is a no-op elsewhere. More root hubs than distinct
// bus numbers means at least two root hubs share a bus.
func (c *Context) checkBusNumbers(goos string) error {
	if goos != "windows" {
		return nil
	}

	// A root hub is any device without a parent in the enumeration tree.
	rootHubs := 0
	buses := make(map[int]struct{})
	for _, d := range c.devices {
		if d.Parent() == nil {
			rootHubs++
			buses[d.Bus()] = struct{}{}
		}
	}
	if rootHubs > len(buses) {
		err := &pkg.BusConflictError{RootHubs: rootHubs, Buses: len(buses)}
		pkg.LogError(pkg.ComponentContext, "enumeration defect detected",
			"rootHubs", rootHubs, "buses", len(buses))
		return err
	}
	return nil
}

// Devices returns views of every device in the snapshot, in
// enumeration order. It returns nil once the context is closed.
func (c *Context) Devices() []*Device {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil
	}
	out := make([]*Device, len(c.devices))
	copy(out, c.devices)
	return out
}

// Len returns the number of devices in the snapshot, or 0 once closed.
func (c *Context) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return 0
	}
	return len(c.devices)
}

// Alive reports whether the snapshot still owns its native context.
func (c *Context) Alive() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.closed
}

// Close releases the native enumeration context and invalidates all
// views. Closing an already-closed context returns ErrContextClosed.
func (c *Context) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return pkg.ErrContextClosed
	}
	c.closed = true
	backend := c.backend
	c.backend = nil
	c.devices = nil
	c.mu.Unlock()

	pkg.LogDebug(pkg.ComponentContext, "releasing native enumeration context")
	return backend.Close()
}
