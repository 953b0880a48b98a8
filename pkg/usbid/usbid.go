package usbid

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
)

// DefaultPaths lists the standard locations for the USB ID database.
var DefaultPaths = []string{
	"/usr/share/hwdata/usb.ids",
	"/var/lib/usbutils/usb.ids",
	"/usr/share/misc/usb.ids",
}

// Database caches vendor and product names from the USB ID database.
// All methods are safe for concurrent use.
type Database struct {
	mu       sync.RWMutex
	vendors  map[uint16]string // VID -> vendor name
	products map[uint32]string // (VID<<16)|PID -> product name
	loaded   bool
	paths    []string
}

// New creates a database that searches the default paths.
func New() *Database {
	return NewWithPaths(DefaultPaths...)
}

// NewWithPaths creates a database that searches the given paths in order.
func NewWithPaths(paths ...string) *Database {
	return &Database{
		vendors:  make(map[uint16]string),
		products: make(map[uint32]string),
		paths:    paths,
	}
}

// Load parses the first database file found. It is idempotent; once a
// load has been attempted, subsequent calls do nothing. Returns false
// if no database file could be found.
func (db *Database) Load() bool {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.loaded {
		return len(db.vendors) > 0
	}
	// One attempt per database, found or not.
	db.loaded = true

	for _, path := range db.paths {
		file, err := os.Open(path)
		if err != nil {
			continue
		}
		db.parse(file)
		file.Close()
		return true
	}
	return false
}

// parse reads the usb.ids format: vendor lines are "vvvv  Name",
// product lines are indented with a tab, and any other section (class
// codes, audio terminal types) ends the vendor list.
func (db *Database) parse(r io.Reader) {
	scanner := bufio.NewScanner(r)
	var currentVID uint16
	haveVendor := false

	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		if line[0] == '\t' {
			if !haveVendor {
				continue
			}
			id, name, ok := parseEntry(line[1:])
			if !ok {
				continue
			}
			db.products[uint32(currentVID)<<16|uint32(id)] = name
			continue
		}

		id, name, ok := parseEntry(line)
		if !ok {
			// A non-vendor section; stop attributing products.
			haveVendor = false
			continue
		}
		currentVID = id
		haveVendor = true
		db.vendors[id] = name
	}
}

// parseEntry splits "xxxx  Some Name" into its ID and name.
func parseEntry(line string) (uint16, string, bool) {
	if len(line) < 6 || line[4] != ' ' {
		return 0, "", false
	}
	id, err := strconv.ParseUint(line[:4], 16, 16)
	if err != nil {
		return 0, "", false
	}
	name := strings.TrimLeft(line[5:], " ")
	if name == "" {
		return 0, "", false
	}
	return uint16(id), name, true
}

// Vendor returns the vendor name for the given VID, or "" if unknown.
func (db *Database) Vendor(vid uint16) string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.vendors[vid]
}

// Product returns the product name for the given VID/PID pair, or ""
// if unknown.
func (db *Database) Product(vid, pid uint16) string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.products[uint32(vid)<<16|uint32(pid)]
}

// Describe formats "Vendor Product" with whatever parts are known, or
// "" when neither is.
func (db *Database) Describe(vid, pid uint16) string {
	vendor := db.Vendor(vid)
	product := db.Product(vid, pid)
	switch {
	case vendor != "" && product != "":
		return vendor + " " + product
	case vendor != "":
		return vendor
	default:
		return product
	}
}

// Loaded reports whether a load has been attempted.
func (db *Database) Loaded() bool {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.loaded
}
