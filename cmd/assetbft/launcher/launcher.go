package launcher

import (
	"context"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/log"
	"github.com/evalphobia/logrus_sentry"
	"github.com/sirupsen/logrus"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-asset-bft/asset/genesis"
	"github.com/rony4d/go-asset-bft/flags"
	"github.com/rony4d/go-asset-bft/gov"
)

var app = flags.NewApp()

func init() {
	app.Flags = append(app.Flags, flags.CommonFlags()...)
	app.Flags = append(app.Flags, flags.NodeFlags()...)
	app.Flags = append(app.Flags, flags.ChainFlags()...)
	app.Action = assetBFTMain
}

// Launch parses the command line and runs the node.
func Launch(args []string) error {
	return app.Run(args)
}

func assetBFTMain(ctx *cli.Context) error {
	cfg, err := MakeAllConfigs(ctx)
	if err != nil {
		return err
	}
	if err := setupLogging(cfg.Logging); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"node":    cfg.Node.Name,
		"network": cfg.Chain.Rules.Name,
		"datadir": cfg.Node.DataDir,
	}).Info("Starting Asset Chain BFT node")

	client, err := ethclient.Dial(cfg.Chain.RPCEndpoint)
	if err != nil {
		return fmt.Errorf("failed to dial execution layer at %s: %v", cfg.Chain.RPCEndpoint, err)
	}
	defer client.Close()

	executor, err := bootstrapExecutor(client, cfg.Chain)
	if err != nil {
		return err
	}

	return runEpochLoop(executor, client, cfg.Chain.PollInterval)
}

// bootstrapExecutor decodes the genesis extraData and installs the bootstrap
// validator set.
func bootstrapExecutor(caller gov.ContractCaller, cfg ChainConfig) (*gov.ValidatorExecutor, error) {
	extra, err := readGenesisExtra(cfg.GenesisExtraPath)
	if err != nil {
		return nil, err
	}
	validators, epochLength, err := genesis.DecodeExtra(extra)
	if err != nil {
		return nil, err
	}

	executor := gov.NewValidatorExecutor(gov.NewStakeHub(caller, cfg.Rules.Staking.StakeHubContract))
	if err := executor.ApplyGenesis(validators, epochLength); err != nil {
		return nil, err
	}
	return executor, nil
}

func readGenesisExtra(path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("no genesis extraData file configured (--genesis.extra)")
	}
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read genesis extraData: %v", err)
	}
	extra := common.FromHex(strings.TrimSpace(string(raw)))
	if len(extra) == 0 {
		return nil, fmt.Errorf("genesis extraData file %s holds no hex data", path)
	}
	return extra, nil
}

// runEpochLoop follows the execution layer's head and feeds every new block
// through the executor's epoch check. Blocks are processed in order and
// exactly once, so epoch boundaries are not skipped when the head advances by
// more than one block between polls.
func runEpochLoop(executor *gov.ValidatorExecutor, client *ethclient.Client, pollInterval time.Duration) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	head, err := client.BlockNumber(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch head block: %v", err)
	}
	lastProcessed := head
	log.Info("Following chain head", "head", head, "epoch", executor.BootstrapEpochLength())

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case sig := <-sigs:
			logrus.WithField("signal", sig.String()).Info("Shutting down")
			return nil
		case <-ticker.C:
			head, err := client.BlockNumber(ctx)
			if err != nil {
				log.Warn("Failed to fetch head block", "err", err)
				continue
			}
			for b := lastProcessed + 1; b <= head; b++ {
				executor.ProcessBlock(ctx, idx.Block(b))
			}
			if head > lastProcessed {
				lastProcessed = head
			}
		}
	}
}

// setupLogging configures both log sinks: the geth key-value logger used by
// the core packages and the logrus logger used by the launcher, with an
// optional Sentry hook for error reporting.
func setupLogging(cfg LoggingConfig) error {
	var format log.Format
	switch cfg.Format {
	case "json":
		format = log.JSONFormat()
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		format = log.TerminalFormat(cfg.Color)
	default:
		return fmt.Errorf("unknown log format %q, expected text or json", cfg.Format)
	}
	log.Root().SetHandler(log.LvlFilterHandler(log.Lvl(cfg.Verbosity), log.StreamHandler(os.Stderr, format)))
	logrus.SetLevel(logrusLevel(cfg.Verbosity))

	if cfg.SentryDSN != "" {
		hook, err := logrus_sentry.NewSentryHook(cfg.SentryDSN, []logrus.Level{
			logrus.PanicLevel,
			logrus.FatalLevel,
			logrus.ErrorLevel,
		})
		if err != nil {
			return fmt.Errorf("failed to set up Sentry reporting: %v", err)
		}
		hook.StacktraceConfiguration.Enable = true
		logrus.AddHook(hook)
	}
	return nil
}

// logrusLevel maps the geth-style numeric verbosity onto logrus levels.
func logrusLevel(verbosity int) logrus.Level {
	switch {
	case verbosity <= 1:
		return logrus.ErrorLevel
	case verbosity == 2:
		return logrus.WarnLevel
	case verbosity == 3:
		return logrus.InfoLevel
	case verbosity == 4:
		return logrus.DebugLevel
	default:
		return logrus.TraceLevel
	}
}
