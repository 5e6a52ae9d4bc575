package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/AlekSi/pointer"
	"github.com/beevik/etree"

	"github.com/iptecharch/iosxr-driver/config"
	"github.com/iptecharch/iosxr-driver/netconf"
	"github.com/iptecharch/iosxr-driver/netconf/types"
)

// fakeDriver is an in-memory netconf.Driver counting the rpcs issued
// against it.
type fakeDriver struct {
	lockCalls    int
	unlockCalls  int
	editCalls    int
	commitCalls  int
	discardCalls int
	getCalls     int

	lockErr    error
	unlockErr  error
	editErr    error
	commitErr  error
	discardErr error
	getErr     error

	getResult     string
	compareResult string

	lastEditTarget    string
	lastEditConfig    string
	lastEditOperation string

	closed bool
}

func (f *fakeDriver) Get(filter string) (*types.NetconfResponse, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	doc := etree.NewDocument()
	result := f.getResult
	if result == "" {
		result = "<data></data>"
	}
	if err := doc.ReadFromString(result); err != nil {
		return nil, err
	}
	return types.NewNetconfResponse(doc), nil
}

func (f *fakeDriver) GetConfig(source, filter string) (*types.NetconfResponse, error) {
	return f.Get(filter)
}

func (f *fakeDriver) EditConfig(target, config, operation string) (*types.NetconfResponse, error) {
	f.editCalls++
	f.lastEditTarget = target
	f.lastEditConfig = config
	f.lastEditOperation = operation
	if f.editErr != nil {
		return nil, f.editErr
	}
	return types.NewNetconfResponse(etree.NewDocument()), nil
}

func (f *fakeDriver) CompareConfig() (string, error) {
	return f.compareResult, nil
}

func (f *fakeDriver) Lock(target string) (*types.NetconfResponse, error) {
	f.lockCalls++
	if f.lockErr != nil {
		return nil, f.lockErr
	}
	return types.NewNetconfResponse(etree.NewDocument()), nil
}

func (f *fakeDriver) Unlock(target string) (*types.NetconfResponse, error) {
	f.unlockCalls++
	if f.unlockErr != nil {
		return nil, f.unlockErr
	}
	return types.NewNetconfResponse(etree.NewDocument()), nil
}

func (f *fakeDriver) Validate(source string) (*types.NetconfResponse, error) {
	return types.NewNetconfResponse(etree.NewDocument()), nil
}

func (f *fakeDriver) Commit() error {
	f.commitCalls++
	return f.commitErr
}

func (f *fakeDriver) Discard() error {
	f.discardCalls++
	return f.discardErr
}

func (f *fakeDriver) IsAlive() bool { return !f.closed }

func (f *fakeDriver) Close() error {
	f.closed = true
	return nil
}

func newTestDriver(t *testing.T, eager bool, fake *fakeDriver) *XRDriver {
	t.Helper()
	cfg := &config.Target{
		Address:     "r1.example.com",
		Credentials: &config.Creds{Username: "admin", Password: "admin"},
		ConfigLock:  pointer.ToBool(eager),
	}
	d, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	d.dial = func(*config.Target) (netconf.Driver, error) {
		return fake, nil
	}
	return d
}

func TestOpenEagerLocksAndCloseUnlocks(t *testing.T) {
	ctx := context.TODO()
	fake := &fakeDriver{}
	d := newTestDriver(t, true, fake)

	if err := d.Open(ctx); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if fake.lockCalls != 1 {
		t.Errorf("lock rpcs = %d, want 1", fake.lockCalls)
	}
	if d.state != stateLocked {
		t.Errorf("state = %v, want locked", d.state)
	}

	if err := d.Close(ctx); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if fake.unlockCalls != 1 {
		t.Errorf("unlock rpcs = %d, want 1", fake.unlockCalls)
	}
	if !fake.closed {
		t.Error("underlying driver was not closed")
	}
	if d.state != stateClosed {
		t.Errorf("state = %v, want closed", d.state)
	}
}

func TestOpenLazyDoesNotLock(t *testing.T) {
	ctx := context.TODO()
	fake := &fakeDriver{}
	d := newTestDriver(t, false, fake)

	if err := d.Open(ctx); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := d.Close(ctx); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if fake.lockCalls != 0 || fake.unlockCalls != 0 {
		t.Errorf("lock/unlock rpcs = %d/%d, want 0/0", fake.lockCalls, fake.unlockCalls)
	}
}

func TestOpenDialFailure(t *testing.T) {
	d := newTestDriver(t, true, &fakeDriver{})
	d.dial = func(*config.Target) (netconf.Driver, error) {
		return nil, fmt.Errorf("ssh: unable to authenticate")
	}
	err := d.Open(context.TODO())
	if !errors.Is(err, ErrConnection) {
		t.Fatalf("Open() error = %v, want ErrConnection", err)
	}
	if d.state != stateClosed {
		t.Errorf("state = %v, want closed", d.state)
	}
}

func TestOpenLockFailureLeavesSessionOpen(t *testing.T) {
	ctx := context.TODO()
	fake := &fakeDriver{lockErr: fmt.Errorf("lock denied: session 42 holds the lock")}
	d := newTestDriver(t, true, fake)

	err := d.Open(ctx)
	if !errors.Is(err, ErrSessionLocked) {
		t.Fatalf("Open() error = %v, want ErrSessionLocked", err)
	}
	// the session is open but unlocked, the caller still owns the Close
	if d.state != stateOpen {
		t.Errorf("state = %v, want open", d.state)
	}
	if err := d.Close(ctx); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if fake.unlockCalls != 0 {
		t.Errorf("unlock rpcs = %d, want 0", fake.unlockCalls)
	}
}

func TestLockUnlockIdempotent(t *testing.T) {
	ctx := context.TODO()
	fake := &fakeDriver{}
	d := newTestDriver(t, false, fake)
	if err := d.Open(ctx); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if err := d.acquireLock(); err != nil {
		t.Fatalf("acquireLock() error = %v", err)
	}
	if err := d.acquireLock(); err != nil {
		t.Fatalf("acquireLock() second call error = %v", err)
	}
	if fake.lockCalls != 1 {
		t.Errorf("lock rpcs = %d, want 1", fake.lockCalls)
	}

	if err := d.releaseLock(); err != nil {
		t.Fatalf("releaseLock() error = %v", err)
	}
	if err := d.releaseLock(); err != nil {
		t.Fatalf("releaseLock() second call error = %v", err)
	}
	if fake.unlockCalls != 1 {
		t.Errorf("unlock rpcs = %d, want 1", fake.unlockCalls)
	}
}

func TestLazyLoadCommitLockCycle(t *testing.T) {
	ctx := context.TODO()
	fake := &fakeDriver{}
	d := newTestDriver(t, false, fake)
	if err := d.Open(ctx); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if err := d.LoadMergeCandidate(ctx, "", "interface Gi0/0/0/0 description up"); err != nil {
		t.Fatalf("LoadMergeCandidate() error = %v", err)
	}
	if fake.lockCalls != 1 {
		t.Errorf("lock rpcs after load = %d, want 1", fake.lockCalls)
	}
	if fake.lastEditOperation != netconf.OperationMerge {
		t.Errorf("edit operation = %q, want merge", fake.lastEditOperation)
	}

	// a second load while the lock is held must not lock again
	if err := d.LoadMergeCandidate(ctx, "", "more config"); err != nil {
		t.Fatalf("LoadMergeCandidate() second call error = %v", err)
	}
	if fake.lockCalls != 1 {
		t.Errorf("lock rpcs after second load = %d, want 1", fake.lockCalls)
	}

	if err := d.CommitConfig(ctx); err != nil {
		t.Fatalf("CommitConfig() error = %v", err)
	}
	if fake.commitCalls != 1 {
		t.Errorf("commit rpcs = %d, want 1", fake.commitCalls)
	}
	if fake.unlockCalls != 1 {
		t.Errorf("unlock rpcs after commit = %d, want 1", fake.unlockCalls)
	}
	if d.state != stateOpen {
		t.Errorf("state = %v, want open", d.state)
	}
}

func TestLazyDiscardReleasesLock(t *testing.T) {
	ctx := context.TODO()
	fake := &fakeDriver{}
	d := newTestDriver(t, false, fake)
	if err := d.Open(ctx); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := d.LoadReplaceCandidate(ctx, "", "hostname r2"); err != nil {
		t.Fatalf("LoadReplaceCandidate() error = %v", err)
	}
	if fake.lastEditOperation != netconf.OperationReplace {
		t.Errorf("edit operation = %q, want replace", fake.lastEditOperation)
	}
	if err := d.DiscardConfig(ctx); err != nil {
		t.Fatalf("DiscardConfig() error = %v", err)
	}
	if fake.discardCalls != 1 {
		t.Errorf("discard rpcs = %d, want 1", fake.discardCalls)
	}
	if fake.unlockCalls != 1 {
		t.Errorf("unlock rpcs after discard = %d, want 1", fake.unlockCalls)
	}
}

func TestEditFailureDisambiguation(t *testing.T) {
	tests := []struct {
		name    string
		load    func(ctx context.Context, d *XRDriver) error
		wantErr error
	}{
		{
			name: "replace",
			load: func(ctx context.Context, d *XRDriver) error {
				return d.LoadReplaceCandidate(ctx, "", "hostname r2")
			},
			wantErr: ErrReplaceConfig,
		},
		{
			name: "merge",
			load: func(ctx context.Context, d *XRDriver) error {
				return d.LoadMergeCandidate(ctx, "", "hostname r2")
			},
			wantErr: ErrMergeConfig,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.TODO()
			fake := &fakeDriver{editErr: fmt.Errorf("syntax error on line 1")}
			d := newTestDriver(t, true, fake)
			if err := d.Open(ctx); err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			err := tt.load(ctx, d)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("load error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadCandidateSourceValidation(t *testing.T) {
	ctx := context.TODO()
	d := newTestDriver(t, true, &fakeDriver{})
	if err := d.Open(ctx); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := d.LoadMergeCandidate(ctx, "", ""); err == nil {
		t.Error("expected an error when neither filename nor config is given")
	}
	if err := d.LoadMergeCandidate(ctx, "some-file", "some config"); err == nil {
		t.Error("expected an error when both filename and config are given")
	}
}

func TestLoadCandidateFromFile(t *testing.T) {
	ctx := context.TODO()
	fake := &fakeDriver{}
	d := newTestDriver(t, true, fake)
	if err := d.Open(ctx); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	file := filepath.Join(t.TempDir(), "candidate.cfg")
	content := "interface GigabitEthernet0/0/0/0\n description uplink\n"
	if err := os.WriteFile(file, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := d.LoadMergeCandidate(ctx, file, ""); err != nil {
		t.Fatalf("LoadMergeCandidate() error = %v", err)
	}
	if fake.lastEditConfig != content {
		t.Errorf("edit config = %q, want file content", fake.lastEditConfig)
	}
	if fake.lastEditTarget != candidateDatastore {
		t.Errorf("edit target = %q, want %q", fake.lastEditTarget, candidateDatastore)
	}
}

func TestCommitFailureKeepsLock(t *testing.T) {
	ctx := context.TODO()
	fake := &fakeDriver{commitErr: fmt.Errorf("commit failed: config invalid")}
	d := newTestDriver(t, false, fake)
	if err := d.Open(ctx); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := d.LoadMergeCandidate(ctx, "", "hostname r2"); err != nil {
		t.Fatalf("LoadMergeCandidate() error = %v", err)
	}
	err := d.CommitConfig(ctx)
	if !errors.Is(err, ErrCommit) {
		t.Fatalf("CommitConfig() error = %v, want ErrCommit", err)
	}
	// the lock is released only on the success path
	if fake.unlockCalls != 0 {
		t.Errorf("unlock rpcs = %d, want 0", fake.unlockCalls)
	}
	if d.state != stateLocked {
		t.Errorf("state = %v, want locked", d.state)
	}
}

func TestCommitSucceedsButUnlockFails(t *testing.T) {
	ctx := context.TODO()
	fake := &fakeDriver{unlockErr: fmt.Errorf("unlock denied")}
	d := newTestDriver(t, false, fake)
	if err := d.Open(ctx); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := d.LoadMergeCandidate(ctx, "", "hostname r2"); err != nil {
		t.Fatalf("LoadMergeCandidate() error = %v", err)
	}
	err := d.CommitConfig(ctx)
	if err == nil {
		t.Fatal("CommitConfig() expected an error reporting the failed unlock")
	}
	// both outcomes must be visible: the commit happened and the unlock failed
	if fake.commitCalls != 1 {
		t.Errorf("commit rpcs = %d, want 1", fake.commitCalls)
	}
	if !errors.Is(err, ErrSessionLocked) {
		t.Errorf("error = %v, want it to wrap ErrSessionLocked", err)
	}
}

func TestCloseReportsUnlockFailureButDisconnects(t *testing.T) {
	ctx := context.TODO()
	fake := &fakeDriver{unlockErr: fmt.Errorf("unlock denied")}
	d := newTestDriver(t, true, fake)
	if err := d.Open(ctx); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	err := d.Close(ctx)
	if !errors.Is(err, ErrSessionLocked) {
		t.Fatalf("Close() error = %v, want ErrSessionLocked", err)
	}
	if !fake.closed {
		t.Error("disconnect was not attempted after the failed unlock")
	}
}

func TestCompareConfigPassthrough(t *testing.T) {
	ctx := context.TODO()
	fake := &fakeDriver{compareResult: "-hostname r1\n+hostname r2"}
	d := newTestDriver(t, true, fake)
	if err := d.Open(ctx); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	out, err := d.CompareConfig(ctx)
	if err != nil {
		t.Fatalf("CompareConfig() error = %v", err)
	}
	if out != fake.compareResult {
		t.Errorf("CompareConfig() = %q, want %q", out, fake.compareResult)
	}
}

func TestRollbackIsANoop(t *testing.T) {
	ctx := context.TODO()
	fake := &fakeDriver{}
	d := newTestDriver(t, true, fake)
	if err := d.Open(ctx); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := d.Rollback(ctx); err != nil {
		t.Fatalf("Rollback() error = %v", err)
	}
	if fake.editCalls != 0 || fake.commitCalls != 0 {
		t.Error("rollback issued rpcs, want none")
	}
}

func TestGetEnvironmentNeverFails(t *testing.T) {
	d := newTestDriver(t, true, &fakeDriver{})
	env, err := d.GetEnvironment(context.TODO())
	if err != nil {
		t.Fatalf("GetEnvironment() error = %v", err)
	}
	if env.Fans == nil || env.Temperature == nil || env.Power == nil || env.CPU == nil || env.Memory == nil {
		t.Error("environment maps must be initialized")
	}
}

func TestGettersRequireOpenSession(t *testing.T) {
	d := newTestDriver(t, true, &fakeDriver{})
	_, err := d.GetInterfaces(context.TODO())
	if !errors.Is(err, ErrConnection) {
		t.Fatalf("GetInterfaces() error = %v, want ErrConnection", err)
	}
}

func TestGetterTransportErrorWrapped(t *testing.T) {
	ctx := context.TODO()
	fake := &fakeDriver{getErr: fmt.Errorf("rpc timeout")}
	d := newTestDriver(t, false, fake)
	if err := d.Open(ctx); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	_, err := d.GetInterfaces(ctx)
	if !errors.Is(err, ErrOperationFailed) {
		t.Fatalf("GetInterfaces() error = %v, want ErrOperationFailed", err)
	}
}
