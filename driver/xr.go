package driver

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/iptecharch/iosxr-driver/config"
	"github.com/iptecharch/iosxr-driver/netconf"
	scrapligodriver "github.com/iptecharch/iosxr-driver/netconf/driver/scrapligo"
	"github.com/iptecharch/iosxr-driver/netconf/types"
	"github.com/iptecharch/iosxr-driver/tree"
)

// candidateDatastore is the datastore the configuration lock and all edits
// are issued against.
const candidateDatastore = "candidate"

// sessionState is the explicit session state. Locked implies open, so the
// invalid locked-while-closed combination cannot be represented.
type sessionState uint8

const (
	stateClosed sessionState = iota
	stateOpen
	stateLocked
)

// XRDriver drives one IOS-XR device session over netconf. It is not safe for
// concurrent use; all rpcs against one session are strictly sequential by
// contract.
type XRDriver struct {
	cfg    *config.Target
	driver netconf.Driver
	state  sessionState

	// dial is swappable for tests
	dial    func(*config.Target) (netconf.Driver, error)
	metrics *rpcMetrics
}

var _ NetworkDriver = (*XRDriver)(nil)

// New validates the target config, applies defaults and returns an XRDriver.
// The session is not established until Open is called.
func New(cfg *config.Target) (*XRDriver, error) {
	if cfg == nil {
		return nil, fmt.Errorf("missing target config")
	}
	if err := cfg.ValidateSetDefaults(); err != nil {
		return nil, err
	}
	return &XRDriver{
		cfg: cfg,
		dial: func(c *config.Target) (netconf.Driver, error) {
			return scrapligodriver.NewScrapligoNetconfTarget(c)
		},
		metrics: newRPCMetrics(),
	}, nil
}

func (d *XRDriver) Open(ctx context.Context) error {
	if d.state != stateClosed {
		return nil
	}
	dev, err := d.dial(d.cfg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	d.driver = dev
	d.state = stateOpen
	log.Infof("connected to %s:%d", d.cfg.Address, d.cfg.Port)

	if d.cfg.EagerLock() {
		// a lock failure propagates, the session stays open but unlocked
		// and the caller still owns the Close
		return d.acquireLock()
	}
	return nil
}

func (d *XRDriver) Close(ctx context.Context) error {
	if d.state == stateClosed {
		return nil
	}
	var unlockErr error
	if d.cfg.EagerLock() && d.state == stateLocked {
		unlockErr = d.releaseLock()
		if unlockErr != nil {
			// the disconnect below is still attempted
			log.Errorf("failed to release configuration lock on close: %v", unlockErr)
		}
	}
	closeErr := d.driver.Close()
	d.driver = nil
	d.state = stateClosed
	log.Infof("disconnected from %s", d.cfg.Address)

	if unlockErr != nil {
		if closeErr != nil {
			return fmt.Errorf("%w (disconnect also failed: %v)", unlockErr, closeErr)
		}
		return unlockErr
	}
	if closeErr != nil {
		return fmt.Errorf("%w: %v", ErrConnection, closeErr)
	}
	return nil
}

// IsAlive reports whether the session is currently established.
func (d *XRDriver) IsAlive() bool {
	return d.state != stateClosed && d.driver != nil && d.driver.IsAlive()
}

// acquireLock locks the candidate datastore. It is a no-op when the lock is
// already held.
func (d *XRDriver) acquireLock() error {
	switch d.state {
	case stateLocked:
		return nil
	case stateClosed:
		return fmt.Errorf("%w: session not open", ErrConnection)
	}
	err := d.observe("lock", func() error {
		_, err := d.driver.Lock(candidateDatastore)
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSessionLocked, err)
	}
	d.state = stateLocked
	log.Debugf("locked %s datastore on %s", candidateDatastore, d.cfg.Address)
	return nil
}

// releaseLock unlocks the candidate datastore. It is a no-op when the lock is
// not held.
func (d *XRDriver) releaseLock() error {
	if d.state != stateLocked {
		return nil
	}
	err := d.observe("unlock", func() error {
		_, err := d.driver.Unlock(candidateDatastore)
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSessionLocked, err)
	}
	d.state = stateOpen
	log.Debugf("unlocked %s datastore on %s", candidateDatastore, d.cfg.Address)
	return nil
}

// getOper fetches the oper subtrees selected by filter and decodes the reply
// into a generic tree node rooted at the rpc-reply data element.
func (d *XRDriver) getOper(rpc, filter string) (interface{}, error) {
	if d.state == stateClosed {
		return nil, fmt.Errorf("%w: session not open", ErrConnection)
	}
	var rsp *types.NetconfResponse
	err := d.observe(rpc, func() error {
		var err error
		rsp, err = d.driver.Get(filter)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrOperationFailed, rpc, err)
	}
	root := rsp.Doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: %s: empty response document", ErrOperationFailed, rpc)
	}
	return tree.FromElement(root), nil
}
