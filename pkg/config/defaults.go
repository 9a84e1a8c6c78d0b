package config

import "time"

const (
	DefaultHost         = "127.0.0.1"
	DefaultRequestPort  = 44540
	DefaultCallbackPort = 44541
	DefaultQueuePort    = 44542

	DefaultDataDir   = "./data"
	DefaultRaftAddr  = ""
	DefaultHTTPAddr  = ":8080"
	DefaultLogLevel  = "info"
	DefaultNodeState = "./node"

	DefaultCallbackTimeout   = 10 * time.Second
	DefaultSessionTTL        = 15 * time.Second
	DefaultHeartbeatInterval = 5 * time.Second
	DefaultAcquireTimeout    = 0
	DefaultApplyTimeout      = 5 * time.Second

	DefaultQueueMaxPending = 1024
	DefaultAckTimeout      = 5 * time.Second
	DefaultMaxRetries      = 20
	DefaultMaxReconnect    = 5 * time.Second
	DefaultWorkers         = 64
)

// retention policies selectable by name
const (
	PolicyRetainUntilCallback = "retain-until-callback"
	PolicyReleaseAfterCommit  = "release-after-commit"
	PolicyRetainReads         = "retain-reads"
)
