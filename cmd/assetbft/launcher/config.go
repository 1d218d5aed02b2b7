package launcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-asset-bft/asset"
)

// Config aggregates every subsystem's configuration the launcher needs.
type Config struct {
	Node    NodeConfig
	Chain   ChainConfig
	Logging LoggingConfig
}

type NodeConfig struct {
	DataDir string
	Name    string
}

// ChainConfig carries the network rules and the execution-layer wiring the
// validator-set core runs against.
type ChainConfig struct {
	Rules            asset.Rules
	RPCEndpoint      string
	PollInterval     time.Duration
	GenesisExtraPath string
}

type LoggingConfig struct {
	Verbosity int
	Format    string
	Color     bool
	SentryDSN string
}

func defaultConfig() Config {
	defaults := DefaultConfig()
	return Config{
		Node: NodeConfig{
			DataDir: filepath.Join(GuessHomeDir(), ".assetbft"),
			Name:    defaults.Node.Name,
		},
		Chain: ChainConfig{
			Rules:        asset.MainNetRules(),
			RPCEndpoint:  defaults.Chain.RPCEndpoint,
			PollInterval: defaults.Chain.PollInterval,
		},
		Logging: LoggingConfig{
			Verbosity: defaults.Logging.Verbosity,
			Format:    defaults.Logging.Format,
			Color:     defaults.Logging.Color,
		},
	}
}

// MakeAllConfigs merges defaults and CLI flag overrides into a single config
// struct and prepares the data directory.
func MakeAllConfigs(ctx *cli.Context) (Config, error) {
	cfg := defaultConfig()
	if err := applyCLIOverrides(ctx, &cfg); err != nil {
		return Config{}, err
	}
	if err := ensureDir(cfg.Node.DataDir); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func rulesPreset(name string) (asset.Rules, error) {
	switch name {
	case "main":
		return asset.MainNetRules(), nil
	case "test":
		return asset.TestNetRules(), nil
	case "fake":
		return asset.FakeNetRules(), nil
	default:
		return asset.Rules{}, fmt.Errorf("unknown network preset %q, expected main, test or fake", name)
	}
}

func applyCLIOverrides(ctx *cli.Context, cfg *Config) error {
	rules, err := rulesPreset(ctx.String("network"))
	if err != nil {
		return err
	}
	cfg.Chain.Rules = rules

	if ctx.IsSet("datadir") {
		cfg.Node.DataDir = resolvePath(ctx.String("datadir"))
	}
	if ctx.IsSet("identity") {
		cfg.Node.Name = ctx.String("identity")
	}

	if ctx.IsSet("el.rpc") {
		cfg.Chain.RPCEndpoint = ctx.String("el.rpc")
	}
	if ctx.IsSet("el.pollinterval") {
		cfg.Chain.PollInterval = ctx.Duration("el.pollinterval")
	}
	if ctx.IsSet("genesis.extra") {
		cfg.Chain.GenesisExtraPath = resolvePath(ctx.String("genesis.extra"))
	}
	if ctx.IsSet("stakehub") {
		addr := ctx.String("stakehub")
		if !common.IsHexAddress(addr) {
			return fmt.Errorf("invalid StakeHub contract address %q", addr)
		}
		cfg.Chain.Rules.Staking.StakeHubContract = common.HexToAddress(addr)
	}

	if ctx.IsSet("log.format") {
		cfg.Logging.Format = ctx.String("log.format")
	}
	if ctx.IsSet("log.verbosity") {
		cfg.Logging.Verbosity = ctx.Int("log.verbosity")
	}
	if ctx.IsSet("log.color") {
		cfg.Logging.Color = ctx.Bool("log.color")
	}
	if ctx.IsSet("sentry.dsn") {
		cfg.Logging.SentryDSN = ctx.String("sentry.dsn")
	}
	return nil
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create datadir %s: %w", dir, err)
	}
	return nil
}

func resolvePath(p string) string {
	if strings.HasPrefix(p, "~") {
		return filepath.Join(GuessHomeDir(), strings.TrimPrefix(p, "~"))
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(GuessWorkDir(), p)
}

func GuessWorkDir() string {
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func GuessHomeDir() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return dir
	}
	return "."
}
