package driver

import (
	"context"

	"github.com/iptecharch/iosxr-driver/models"
)

// NetworkDriver is the vendor neutral operation surface of the adapter. Any
// device family implementation satisfies this contract; XRDriver is the
// IOS-XR one.
type NetworkDriver interface {
	// Open establishes the device session. With the eager locking policy the
	// configuration lock is acquired right away.
	Open(ctx context.Context) error
	// Close releases a held lock (eager policy) and tears the session down.
	Close(ctx context.Context) error

	// LoadMergeCandidate stages a merge candidate from a file or an inline
	// config blob; exactly one of the two must be given.
	LoadMergeCandidate(ctx context.Context, filename, config string) error
	// LoadReplaceCandidate stages a replace candidate, same source rules.
	LoadReplaceCandidate(ctx context.Context, filename, config string) error
	// CompareConfig returns the device diff of candidate vs running config.
	CompareConfig(ctx context.Context) (string, error)
	// CommitConfig commits the candidate to running.
	CommitConfig(ctx context.Context) error
	// DiscardConfig drops the staged candidate changes.
	DiscardConfig(ctx context.Context) error
	// Rollback is not supported on this platform and is a no-op.
	Rollback(ctx context.Context) error

	GetFacts(ctx context.Context) (*models.Facts, error)
	GetInterfaces(ctx context.Context) (map[string]*models.Interface, error)
	GetInterfacesCounters(ctx context.Context) (map[string]*models.InterfaceCounters, error)
	GetEnvironment(ctx context.Context) (*models.Environment, error)
	GetBGPNeighbors(ctx context.Context) (map[string]*models.BGPInstance, error)
}
