// Package domain defines the entry event journal types and ports
package domain

import (
	"context"
	"time"
)

// Op names the mutation an event records
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Event is one successful entry mutation
type Event struct {
	Kind      string    `json:"kind"`
	Op        Op        `json:"op"`
	Hash      string    `json:"hash"`
	RequestID string    `json:"request_id,omitempty"`
	At        time.Time `json:"at"`
}

// RecorderPort accepts events without blocking the caller
type RecorderPort interface {
	Record(ctx context.Context, ev Event)
}

// ReaderPort reads back recent events
type ReaderPort interface {
	Recent(ctx context.Context, q RecentQuery) ([]Event, error)
}

// WorkerPort drains buffered events until ctx ends
type WorkerPort interface {
	Run(ctx context.Context) error
}

// RecentQuery filters the events listing
type RecentQuery struct {
	Kind  string
	Limit int
}

// Nop discards every event
type Nop struct{}

// Record implements RecorderPort
func (Nop) Record(context.Context, Event) {}
