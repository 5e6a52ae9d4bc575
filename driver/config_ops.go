package driver

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/iptecharch/iosxr-driver/netconf"
)

func (d *XRDriver) LoadMergeCandidate(ctx context.Context, filename, config string) error {
	return d.loadCandidate(filename, config, netconf.OperationMerge)
}

func (d *XRDriver) LoadReplaceCandidate(ctx context.Context, filename, config string) error {
	return d.loadCandidate(filename, config, netconf.OperationReplace)
}

func (d *XRDriver) loadCandidate(filename, config, operation string) error {
	if d.state == stateClosed {
		return fmt.Errorf("%w: session not open", ErrConnection)
	}
	if (filename == "") == (config == "") {
		return fmt.Errorf("exactly one of filename or config must be provided")
	}
	if filename != "" {
		b, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read candidate file: %w", err)
		}
		config = string(b)
	}

	// lazy locking policy locks around the edit
	if !d.cfg.EagerLock() {
		if err := d.acquireLock(); err != nil {
			return err
		}
	}

	err := d.observe("edit-config", func() error {
		_, err := d.driver.EditConfig(candidateDatastore, config, operation)
		return err
	})
	if err != nil {
		if operation == netconf.OperationReplace {
			return fmt.Errorf("%w: %v", ErrReplaceConfig, err)
		}
		return fmt.Errorf("%w: %v", ErrMergeConfig, err)
	}
	log.Debugf("loaded %s candidate on %s", operation, d.cfg.Address)
	return nil
}

// CompareConfig returns the device diff of candidate vs running as opaque
// text, no local diffing happens here.
func (d *XRDriver) CompareConfig(ctx context.Context) (string, error) {
	if d.state == stateClosed {
		return "", fmt.Errorf("%w: session not open", ErrConnection)
	}
	var out string
	err := d.observe("compare-config", func() error {
		var err error
		out, err = d.driver.CompareConfig()
		return err
	})
	if err != nil {
		return "", fmt.Errorf("%w: compare-config: %v", ErrOperationFailed, err)
	}
	return out, nil
}

func (d *XRDriver) CommitConfig(ctx context.Context) error {
	if d.state == stateClosed {
		return fmt.Errorf("%w: session not open", ErrConnection)
	}
	err := d.observe("commit", d.driver.Commit)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCommit, err)
	}
	log.Infof("committed candidate config on %s", d.cfg.Address)
	return d.releaseAfterChange("commit")
}

func (d *XRDriver) DiscardConfig(ctx context.Context) error {
	if d.state == stateClosed {
		return fmt.Errorf("%w: session not open", ErrConnection)
	}
	err := d.observe("discard-changes", d.driver.Discard)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDiscard, err)
	}
	log.Infof("discarded candidate config on %s", d.cfg.Address)
	return d.releaseAfterChange("discard")
}

// releaseAfterChange drops the lock after a successful commit/discard under
// the lazy locking policy. The commit or discard already happened; if the
// unlock fails both outcomes are reported, never only the first.
func (d *XRDriver) releaseAfterChange(op string) error {
	if d.cfg.EagerLock() {
		return nil
	}
	if err := d.releaseLock(); err != nil {
		log.Errorf("%s succeeded but the configuration lock release failed: %v", op, err)
		return fmt.Errorf("%s succeeded, but releasing the configuration lock failed: %w", op, err)
	}
	return nil
}

// Rollback is not available through the xr netconf interface. It is a
// deliberate no-op so callers probing for availability are not broken;
// callers expecting semantics get silent non-action.
func (d *XRDriver) Rollback(ctx context.Context) error {
	log.Warnf("rollback is not supported on this platform, ignoring")
	return nil
}
