package usbsnap

import (
	"iter"
	"math"

	"github.com/snagkit/usbsnap/hal"
)

// Find returns a lazy sequence of devices matching every criterion.
//
// Criteria map attribute names to expected values; supported names are
// "bus", "address", "port", "vendor", "product", "class", "speed", and
// "root". Matching is conjunctive and permissive: a criterion naming an
// attribute the device model does not expose simply never matches.
// Integer values compare across Go integer types, so Find(map[string]any
// {"vendor": 0x0483}) matches a uint16 vendor attribute.
//
// The sequence is restartable — ranging over it again re-filters the
// snapshot — and performs no native calls. Once the context is closed
// the sequence is empty.
func (c *Context) Find(criteria map[string]any) iter.Seq[*Device] {
	return func(yield func(*Device) bool) {
		c.mu.RLock()
		devices := c.devices
		c.mu.RUnlock()

		for _, d := range devices {
			if d.matches(criteria) && !yield(d) {
				return
			}
		}
	}
}

// FindAll collects the results of Find into a slice.
func (c *Context) FindAll(criteria map[string]any) []*Device {
	var out []*Device
	for d := range c.Find(criteria) {
		out = append(out, d)
	}
	return out
}

func (d *Device) matches(criteria map[string]any) bool {
	for name, want := range criteria {
		got, ok := d.attr(name)
		if !ok || !valueEqual(got, want) {
			return false
		}
	}
	return true
}

// valueEqual compares an attribute value with a criterion value.
// Integers compare by value regardless of their Go type; everything
// else compares by interface equality.
func valueEqual(a, b any) bool {
	ai, aok := toInt64(a)
	bi, bok := toInt64(b)
	if aok || bok {
		return aok && bok && ai == bi
	}
	return a == b
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case hal.Speed:
		return int64(n), true
	default:
		return 0, false
	}
}
