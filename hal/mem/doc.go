// Package mem provides a scripted in-memory enumeration backend.
//
// A Provider holds a sequence of device sets, one per enumeration pass,
// and hands out a fresh Backend for each pass through its Factory. The
// provider records every open, enumerate, and close event so tests can
// assert teardown ordering across rescans.
//
// The backend registers itself under the name "mem" but never claims
// the default slot.
package mem
