// Package config loads server and node settings from flags, COHERE_*
// environment variables and an optional YAML file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "COHERE"

type ServerConfig struct {
	Host         string
	RequestPort  int
	QueuePort    int
	DataDir      string
	RaftID       string
	RaftAddr     string // empty runs raft on an in-process transport
	HTTPAddr     string // empty disables the admin surface
	LogLevel     string
	ApplyTimeout time.Duration

	CallbackTimeout   time.Duration
	SessionTTL        time.Duration
	HeartbeatInterval time.Duration
	AcquireTimeout    time.Duration
	Workers           int64
}

func (c ServerConfig) RequestAddr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.RequestPort))
}

func (c ServerConfig) QueueAddr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.QueuePort))
}

type NodeConfig struct {
	NodeID       string
	ServerHost   string
	RequestPort  int
	QueuePort    int
	CallbackHost string
	CallbackPort int
	DataDir      string
	LogLevel     string
	Policy       string

	MaxPending   int
	AckTimeout   time.Duration
	MaxRetries   int
	MaxReconnect time.Duration
	Workers      int64
}

func (c NodeConfig) RequestAddr() string {
	return net.JoinHostPort(c.ServerHost, strconv.Itoa(c.RequestPort))
}

func (c NodeConfig) QueueAddr() string {
	return net.JoinHostPort(c.ServerHost, strconv.Itoa(c.QueuePort))
}

func (c NodeConfig) CallbackAddr() string {
	return net.JoinHostPort(c.CallbackHost, strconv.Itoa(c.CallbackPort))
}

// registers the flags shared by every command
func CommonFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "path to a YAML config file")
	flags.String("log-level", DefaultLogLevel, "log level (trace, debug, info, warn, error)")
	flags.String("host", DefaultHost, "server host")
	flags.Int("request-port", DefaultRequestPort, "server request port")
	flags.Int("queue-port", DefaultQueuePort, "server update-queue port")
}

func ServerFlags(flags *pflag.FlagSet) {
	CommonFlags(flags)
	flags.String("data-dir", DefaultDataDir, "durable directory for the raft log and snapshots")
	flags.String("raft-id", "", "raft server id (generated if empty)")
	flags.String("raft-addr", DefaultRaftAddr, "raft bind address, empty for an in-process transport")
	flags.String("http-addr", DefaultHTTPAddr, "HTTP admin address, empty to disable")
	flags.Duration("apply-timeout", DefaultApplyTimeout, "bound for one commit log append")
	flags.Duration("callback-timeout", DefaultCallbackTimeout, "revoke a node that leaves a callback unanswered this long")
	flags.Duration("session-ttl", DefaultSessionTTL, "end a session after this long without a heartbeat")
	flags.Duration("heartbeat-interval", DefaultHeartbeatInterval, "heartbeat interval advertised to nodes")
	flags.Duration("acquire-timeout", DefaultAcquireTimeout, "server-side bound for a blocked acquire, 0 for none")
	flags.Int64("workers", DefaultWorkers, "scheduler capacity")
}

func NodeFlags(flags *pflag.FlagSet) {
	CommonFlags(flags)
	flags.String("node-id", "", "node id (kept in the node directory when empty)")
	flags.String("callback-host", DefaultHost, "address the server calls this node back on")
	flags.Int("callback-port", DefaultCallbackPort, "node callback port")
	flags.String("node-dir", DefaultNodeState, "node directory for the update-queue journal")
	flags.String("policy", PolicyRetainUntilCallback, "retention policy (retain-until-callback, release-after-commit, retain-reads)")
	flags.Int("max-pending", DefaultQueueMaxPending, "unacknowledged batches before commits block")
	flags.Duration("ack-timeout", DefaultAckTimeout, "bound for one batch delivery")
	flags.Int("max-retries", DefaultMaxRetries, "delivery attempts before commits fail as store unavailable")
	flags.Duration("max-reconnect", DefaultMaxReconnect, "upper bound between reconnect attempts")
	flags.Int64("workers", DefaultWorkers, "scheduler capacity")
}

// binds every flag in flags to a fresh viper instance with env and file lookups
func bind(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		if bindErr := v.BindPFlag(f.Name, f); bindErr != nil && err == nil {
			err = bindErr
		}
	})
	if err != nil {
		return nil, err
	}

	if path := strings.TrimSpace(v.GetString("config")); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %q: %w", path, err)
		}
	}
	return v, nil
}

func LoadServer(flags *pflag.FlagSet) (ServerConfig, error) {
	v, err := bind(flags)
	if err != nil {
		return ServerConfig{}, err
	}
	cfg := ServerConfig{
		Host:              v.GetString("host"),
		RequestPort:       v.GetInt("request-port"),
		QueuePort:         v.GetInt("queue-port"),
		DataDir:           v.GetString("data-dir"),
		RaftID:            v.GetString("raft-id"),
		RaftAddr:          v.GetString("raft-addr"),
		HTTPAddr:          v.GetString("http-addr"),
		LogLevel:          v.GetString("log-level"),
		ApplyTimeout:      v.GetDuration("apply-timeout"),
		CallbackTimeout:   v.GetDuration("callback-timeout"),
		SessionTTL:        v.GetDuration("session-ttl"),
		HeartbeatInterval: v.GetDuration("heartbeat-interval"),
		AcquireTimeout:    v.GetDuration("acquire-timeout"),
		Workers:           v.GetInt64("workers"),
	}
	if cfg.RaftID == "" {
		cfg.RaftID = uuid.NewString()
	}
	return cfg, cfg.Validate()
}

func LoadNode(flags *pflag.FlagSet) (NodeConfig, error) {
	v, err := bind(flags)
	if err != nil {
		return NodeConfig{}, err
	}
	cfg := NodeConfig{
		NodeID:       v.GetString("node-id"),
		ServerHost:   v.GetString("host"),
		RequestPort:  v.GetInt("request-port"),
		QueuePort:    v.GetInt("queue-port"),
		CallbackHost: v.GetString("callback-host"),
		CallbackPort: v.GetInt("callback-port"),
		DataDir:      v.GetString("node-dir"),
		LogLevel:     v.GetString("log-level"),
		Policy:       v.GetString("policy"),
		MaxPending:   v.GetInt("max-pending"),
		AckTimeout:   v.GetDuration("ack-timeout"),
		MaxRetries:   v.GetInt("max-retries"),
		MaxReconnect: v.GetDuration("max-reconnect"),
		Workers:      v.GetInt64("workers"),
	}
	return cfg, cfg.Validate()
}

func validPort(name string, port int) error {
	if port <= 0 || port > 65535 {
		return fmt.Errorf("%s %d out of range", name, port)
	}
	return nil
}

func (c ServerConfig) Validate() error {
	var result *multierror.Error
	if strings.TrimSpace(c.DataDir) == "" {
		result = multierror.Append(result, errors.New("data-dir is required"))
	}
	for name, port := range map[string]int{"request-port": c.RequestPort, "queue-port": c.QueuePort} {
		if err := validPort(name, port); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if c.RequestPort == c.QueuePort {
		result = multierror.Append(result, fmt.Errorf("request-port and queue-port must differ, both are %d", c.RequestPort))
	}
	for name, d := range map[string]time.Duration{
		"apply-timeout":      c.ApplyTimeout,
		"callback-timeout":   c.CallbackTimeout,
		"session-ttl":        c.SessionTTL,
		"heartbeat-interval": c.HeartbeatInterval,
	} {
		if d <= 0 {
			result = multierror.Append(result, fmt.Errorf("%s must be positive", name))
		}
	}
	if c.AcquireTimeout < 0 {
		result = multierror.Append(result, errors.New("acquire-timeout must not be negative"))
	}
	if c.HeartbeatInterval >= c.SessionTTL && c.SessionTTL > 0 {
		result = multierror.Append(result, errors.New("heartbeat-interval must be shorter than session-ttl"))
	}
	if c.Workers <= 0 {
		result = multierror.Append(result, errors.New("workers must be positive"))
	}
	return result.ErrorOrNil()
}

func (c NodeConfig) Validate() error {
	var result *multierror.Error
	if strings.TrimSpace(c.DataDir) == "" {
		result = multierror.Append(result, errors.New("node-dir is required"))
	}
	for name, port := range map[string]int{"request-port": c.RequestPort, "queue-port": c.QueuePort} {
		if err := validPort(name, port); err != nil {
			result = multierror.Append(result, err)
		}
	}
	//0 picks a free port
	if c.CallbackPort < 0 || c.CallbackPort > 65535 {
		result = multierror.Append(result, fmt.Errorf("callback-port %d out of range", c.CallbackPort))
	}
	if c.RequestPort == c.QueuePort {
		result = multierror.Append(result, fmt.Errorf("request-port and queue-port must differ, both are %d", c.RequestPort))
	}
	switch c.Policy {
	case PolicyRetainUntilCallback, PolicyReleaseAfterCommit, PolicyRetainReads:
	default:
		result = multierror.Append(result, fmt.Errorf("unknown retention policy %q", c.Policy))
	}
	if c.MaxPending <= 0 {
		result = multierror.Append(result, errors.New("max-pending must be positive"))
	}
	if c.AckTimeout <= 0 {
		result = multierror.Append(result, errors.New("ack-timeout must be positive"))
	}
	if c.MaxReconnect <= 0 {
		result = multierror.Append(result, errors.New("max-reconnect must be positive"))
	}
	if c.Workers <= 0 {
		result = multierror.Append(result, errors.New("workers must be positive"))
	}
	return result.ErrorOrNil()
}
