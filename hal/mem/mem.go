package mem

import (
	"sync"

	"github.com/snagkit/usbsnap/hal"
	"github.com/snagkit/usbsnap/pkg"
)

// Event names recorded by a Provider.
const (
	EventOpen      = "open"
	EventEnumerate = "enumerate"
	EventClose     = "close"
)

// Provider scripts successive enumeration passes. Each Backend opened
// from the provider serves the next scripted device set; when the
// script runs out, the last set repeats.
type Provider struct {
	mu     sync.Mutex
	passes [][]hal.DeviceInfo
	next   int
	events []string
	fail   error
}

// NewProvider creates a provider serving the given device sets in order.
func NewProvider(passes ...[]hal.DeviceInfo) *Provider {
	return &Provider{passes: passes}
}

// FailNext makes the next Enumerate call return err instead of devices.
// The failure is consumed by that one call.
func (p *Provider) FailNext(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fail = err
}

// Events returns the ordered open/enumerate/close history.
func (p *Provider) Events() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	copy(out, p.events)
	return out
}

// Opens returns the number of backends opened so far.
func (p *Provider) Opens() int {
	return p.count(EventOpen)
}

// Closes returns the number of backends closed so far.
func (p *Provider) Closes() int {
	return p.count(EventClose)
}

func (p *Provider) count(event string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.events {
		if e == event {
			n++
		}
	}
	return n
}

func (p *Provider) record(event string) {
	p.mu.Lock()
	p.events = append(p.events, event)
	p.mu.Unlock()
}

// Factory returns a hal.Factory that opens backends from this provider.
func (p *Provider) Factory() hal.Factory {
	return func() (hal.Backend, error) {
		return p.open(), nil
	}
}

func (p *Provider) open() *Backend {
	p.mu.Lock()
	var devices []hal.DeviceInfo
	if len(p.passes) > 0 {
		i := p.next
		if i >= len(p.passes) {
			i = len(p.passes) - 1
		}
		devices = p.passes[i]
		p.next++
	}
	p.events = append(p.events, EventOpen)
	p.mu.Unlock()
	return &Backend{provider: p, devices: devices}
}

// Backend serves one scripted enumeration pass.
type Backend struct {
	provider *Provider
	mu       sync.Mutex
	devices  []hal.DeviceInfo
	closed   bool
}

// Enumerate returns a copy of the scripted device set.
func (b *Backend) Enumerate() ([]hal.DeviceInfo, error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, pkg.ErrBackendClosed
	}
	devices := b.devices
	b.mu.Unlock()

	b.provider.mu.Lock()
	fail := b.provider.fail
	b.provider.fail = nil
	b.provider.events = append(b.provider.events, EventEnumerate)
	b.provider.mu.Unlock()

	if fail != nil {
		return nil, fail
	}
	out := make([]hal.DeviceInfo, len(devices))
	copy(out, devices)
	return out, nil
}

// Close marks the backend closed. Closing twice is an error, matching
// the discipline real native contexts require.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return pkg.ErrBackendClosed
	}
	b.closed = true
	b.provider.record(EventClose)
	return nil
}

func init() {
	// A bare provider with no script: "mem" enumerates nothing unless a
	// test registers its own provider under the same name.
	hal.Register("mem", NewProvider().Factory())
}
