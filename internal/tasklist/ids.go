package tasklist

import (
	"strconv"

	"github.com/google/uuid"
)

// IDGenerator returns a fresh identifier on every call.
type IDGenerator func() string

// UUIDGenerator returns random v4 UUIDs.
func UUIDGenerator() IDGenerator {
	return func() string { return uuid.NewString() }
}

// SequentialGenerator returns prefix1, prefix2, ... Useful for deterministic
// tests.
func SequentialGenerator(prefix string) IDGenerator {
	n := 0
	return func() string {
		n++
		return prefix + strconv.Itoa(n)
	}
}
