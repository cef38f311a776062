package usecase

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"
)

// GenerateOrderNumber produces a human-readable order number of the form
// ORD-YYYYMMDD-NNNNNN with a random 6-digit suffix. Uniqueness is enforced
// by the orders table; callers regenerate on conflict.
func GenerateOrderNumber(now time.Time) string {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand only fails when the platform entropy source is broken;
		// fall back to the clock rather than abort a checkout.
		binary.BigEndian.PutUint32(buf[:], uint32(now.UnixNano()))
	}
	suffix := binary.BigEndian.Uint32(buf[:]) % 1_000_000
	return fmt.Sprintf("ORD-%s-%06d", now.Format("20060102"), suffix)
}
