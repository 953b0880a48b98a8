// Package usbsnap manages point-in-time snapshots of the USB device
// tree and the native enumeration context behind them.
//
// Some Windows builds of libusb have a defect where re-enumerating
// devices on a live context can assign the same bus number to two
// distinct root hubs. usbsnap dodges the whole defect class instead of
// patching around it: every rescan tears down the previous native
// context completely before a new enumeration is performed, and callers
// only ever receive non-owning views, so nothing they hold can keep the
// old context alive.
//
// Typical use goes through the process-wide singleton:
//
//	ctx, err := usbsnap.GetContext()
//	if err != nil {
//	    return err
//	}
//	for dev := range ctx.Find(map[string]any{"vendor": 0x0483}) {
//	    fmt.Println(dev)
//	}
//
//	// Device replugged in DFU mode; scan again from scratch.
//	ctx, err = usbsnap.Rescan()
//
// Each snapshot additionally runs a sanity check at construction: on
// Windows, if two root hubs report the same bus number, construction
// fails with pkg.ErrDuplicateBusNumbers rather than handing out a
// corrupted view of the bus topology.
package usbsnap
