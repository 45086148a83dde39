// Package common holds small shared utilities and sentinel errors used by
// the todokeeper client packages. Callers should match errors with errors.Is.
package common

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
)

var (
	// Storage-level errors.
	ErrStorageRead  = errors.New("storage read failure")
	ErrStorageWrite = errors.New("storage write failure")
)

// GenerateRandByteArray returns size cryptographically random bytes.
// It panics only if the platform randomness source is broken.
func GenerateRandByteArray(size int) []byte {
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return buf
}

// MakeRandHexString returns a hex string encoding size random bytes
// (so the result is 2*size characters long).
func MakeRandHexString(size int) (string, error) {
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// WipeByteArray zeroes the buffer in place. Safe to call with nil.
func WipeByteArray(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
