package netconf

import "github.com/iptecharch/iosxr-driver/netconf/types"

// Operation values accepted by EditConfig.
const (
	OperationMerge   = "merge"
	OperationReplace = "replace"
)

// Driver is the device session capability the adapter is layered on. One
// Driver owns one connection; all calls are strictly sequential.
type Driver interface {
	// Get config or state
	Get(filter string) (*types.NetconfResponse, error)
	// GetConfig retrieves the given source datastore, optionally filtered
	GetConfig(source string, filter string) (*types.NetconfResponse, error)
	// EditConfig applies the xml config to the provided target datastore
	// (candidate|running) with the given default operation (merge|replace)
	EditConfig(target string, config string, operation string) (*types.NetconfResponse, error)
	// CompareConfig returns the device diff of candidate vs running as text
	CompareConfig() (string, error)
	// lock a target datastore
	Lock(target string) (*types.NetconfResponse, error)
	// unlock a target datastore
	Unlock(target string) (*types.NetconfResponse, error)
	// validate a source datastore
	Validate(source string) (*types.NetconfResponse, error)
	// Commit applies the candidate changes to the running config
	Commit() error
	// discard a candidate config
	Discard() error
	// IsAlive reports whether the connection is established
	IsAlive() bool
	// Close the connection to the device
	Close() error
}
