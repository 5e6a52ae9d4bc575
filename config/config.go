package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/AlekSi/pointer"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Target *Target `yaml:"target,omitempty" json:"target,omitempty"`
}

// Target describes how to reach one device.
type Target struct {
	Address string `yaml:"address,omitempty" json:"address,omitempty"`
	// Transport selects the RPC transport, "netconf" (default) or "grpc".
	// It only influences the default port at the moment, sessions are
	// always established over NETCONF.
	Transport   string `yaml:"transport,omitempty" json:"transport,omitempty"`
	Port        int    `yaml:"port,omitempty" json:"port,omitempty"`
	Credentials *Creds `yaml:"credentials,omitempty" json:"credentials,omitempty"`
	// Timeout bounds each RPC, in seconds.
	Timeout int `yaml:"timeout,omitempty" json:"timeout,omitempty"`
	// ConfigLock selects the locking policy: true locks the configuration
	// datastore for the whole session (eager), false only around edits (lazy).
	ConfigLock *bool `yaml:"config-lock,omitempty" json:"config-lock,omitempty"`
}

type Creds struct {
	Username string `yaml:"username,omitempty" json:"username,omitempty"`
	Password string `yaml:"password,omitempty" json:"password,omitempty"`
}

func New(file string) (*Config, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	c := new(Config)
	err = yaml.Unmarshal(b, c)
	if err != nil {
		return nil, err
	}
	err = c.validateSetDefaults()
	return c, err
}

func (c *Config) validateSetDefaults() error {
	if c.Target == nil {
		return errors.New("target definition is required")
	}
	return c.Target.ValidateSetDefaults()
}

func (t *Target) ValidateSetDefaults() error {
	if t.Address == "" {
		return errors.New("missing target address")
	}
	switch t.Transport {
	case "":
		t.Transport = TransportNetconf
	case TransportNetconf, TransportGRPC:
	default:
		return fmt.Errorf("unknown transport %q", t.Transport)
	}
	if t.Port <= 0 {
		t.Port = defaultNCPort
		if t.Transport == TransportGRPC {
			t.Port = defaultGRPCPort
		}
	}
	if t.Timeout <= 0 {
		t.Timeout = defaultTimeout
	}
	if t.Credentials == nil || t.Credentials.Username == "" {
		return errors.New("missing target credentials")
	}
	if t.ConfigLock == nil {
		t.ConfigLock = pointer.ToBool(true)
	}
	return nil
}

// EagerLock reports whether the session holds the configuration lock for its
// whole lifetime.
func (t *Target) EagerLock() bool {
	return t.ConfigLock == nil || *t.ConfigLock
}
