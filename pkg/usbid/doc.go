// Package usbid looks up vendor and product names in the USB ID
// database, the file maintained by the USB Implementers Forum and
// shipped by most Linux distributions as usb.ids.
//
// Load the database once, then query it:
//
//	db := usbid.New()
//	db.Load()
//	fmt.Println(db.Describe(0x046d, 0xc077))
//
// The standard search paths only exist on Linux; on systems without a
// database file, lookups simply return empty strings.
package usbid
