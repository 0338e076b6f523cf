// Package storage holds the device settings consulted by the passphrase
// gate.
//
// [FileStore] persists settings as a CBOR record authenticated with an
// AES-CMAC tag, keyed from a device secret, so that flipping the
// passphrase protection flag on disk is detected rather than obeyed.
// [MemoryStore] keeps settings in memory only.
package storage
