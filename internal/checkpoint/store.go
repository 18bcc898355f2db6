// Package checkpoint provides on-disk memoization of fully-resolved
// export entities, keyed by (kind, id). A hit short-circuits the remote
// fetch for that entity. Entries are immutable once written and
// authoritative until cleared.
package checkpoint

import "encoding/json"

// Kind identifies the entity type of a checkpoint entry.
type Kind string

const (
	// KindMilestone marks a fully-resolved milestone document.
	KindMilestone Kind = "milestone"

	// KindIssue marks a fully-resolved issue or pull request document.
	KindIssue Kind = "issue"
)

// Store is a content cache for resolved entity documents. Backends:
// filesystem and SQLite.
type Store interface {
	// Get returns the cached document for (kind, id), or ok=false on a
	// miss. A miss is not an error.
	Get(kind Kind, id string) (doc json.RawMessage, ok bool, err error)

	// Put stores a document under (kind, id), overwriting any prior
	// content.
	Put(kind Kind, id string, doc json.RawMessage) error

	// Clear removes every entry from the store.
	Clear() error

	// Stats reports entry count and total size.
	Stats() (Stats, error)

	// Close releases backend resources.
	Close() error
}

// Stats describes the contents of a store.
type Stats struct {
	Location   string `json:"location"`
	Entries    int    `json:"entries"`
	TotalBytes int64  `json:"total_bytes"`
}

// disabled is a Store that never hits and drops writes. Used when
// checkpoint reuse is turned off: every entity is always refetched.
type disabled struct{}

// Disabled returns a no-op store.
func Disabled() Store { return disabled{} }

func (disabled) Get(Kind, string) (json.RawMessage, bool, error) { return nil, false, nil }
func (disabled) Put(Kind, string, json.RawMessage) error         { return nil }
func (disabled) Clear() error                                    { return nil }
func (disabled) Stats() (Stats, error)                           { return Stats{}, nil }
func (disabled) Close() error                                    { return nil }
