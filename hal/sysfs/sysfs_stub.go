//go:build !linux

package sysfs

import (
	"github.com/snagkit/usbsnap/hal"
	"github.com/snagkit/usbsnap/pkg"
)

// Open reports that sysfs enumeration is Linux-only.
func Open() (hal.Backend, error) {
	return nil, pkg.ErrUnsupported
}
