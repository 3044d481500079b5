// Package idgen implements the domain IDGenerator port with random UUIDs.
package idgen

import "github.com/google/uuid"

// UUIDGenerator yields random v4 UUID strings.
type UUIDGenerator struct{}

// New returns a UUIDGenerator.
func New() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewID returns a fresh identifier.
func (g *UUIDGenerator) NewID() string {
	return uuid.NewString()
}
