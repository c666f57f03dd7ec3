// Package uuid is a simple id generator that allows mocking
package uuid

//go:generate mockgen -destination=mocks/mock_generator.go -package=mockuuid -source=uuid.go

import (
	"github.com/google/uuid"
)

// Generator is an interface for generating unique ids
type Generator interface {
	New() string
}

// GoogleUUIDGenerator implements the Generator interface using Google's UUID package
type GoogleUUIDGenerator struct{}

// New generates a new UUID string
func (g *GoogleUUIDGenerator) New() string {
	return uuid.New().String()
}

// NewGoogleUUIDGenerator creates a new GoogleUUIDGenerator
func NewGoogleUUIDGenerator() *GoogleUUIDGenerator {
	return &GoogleUUIDGenerator{}
}
