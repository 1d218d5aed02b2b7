package launcher

import "time"

// Defaults bundles the baseline configuration the launcher uses before CLI
// flags override it.
type Defaults struct {
	Node    NodeDefaults
	Chain   ChainDefaults
	Logging LoggingDefaults
}

type NodeDefaults struct {
	DataDir string // filesystem root for node state and logs
	Name    string // node identity shown in logs
}

type ChainDefaults struct {
	Network      string        // network preset used when no --network flag is given
	RPCEndpoint  string        // execution-layer JSON-RPC endpoint
	PollInterval time.Duration // how often the head follower queries the execution layer
}

type LoggingDefaults struct {
	Verbosity int    // log level numeric (0=crit, 1=error, 2=warn, 3=info, 4=debug, 5=trace)
	Format    string // log output format (text vs json)
	Color     bool   // ANSI color codes in text output
}

// DefaultConfig returns the baseline defaults.
func DefaultConfig() Defaults {
	return Defaults{
		Node: NodeDefaults{
			DataDir: "~/.assetbft",
			Name:    "assetbft",
		},
		Chain: ChainDefaults{
			Network:      "main",
			RPCEndpoint:  "http://127.0.0.1:8545",
			PollInterval: 3 * time.Second,
		},
		Logging: LoggingDefaults{
			Verbosity: 3,
			Format:    "text",
			Color:     true,
		},
	}
}
