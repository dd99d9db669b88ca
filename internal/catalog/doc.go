// Package catalog is the static encoder reference table: for every
// (codec family, vendor) pair it records the ffmpeg encoder name, a display
// name, an estimated speed-up factor versus software encoding, and the vendor
// category. Detection stamps availability onto fresh copies; the table itself
// never changes at runtime.
package catalog
