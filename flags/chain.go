package flags

import (
	cli "gopkg.in/urfave/cli.v1"
)

// ChainFlags selects the network preset and its consensus-critical overrides.
func ChainFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "network",
			Usage: "Network preset to run (main|test|fake)",
			Value: "main",
		},
		cli.StringFlag{
			Name:  "stakehub",
			Usage: "Override the StakeHub contract address",
		},
		cli.StringFlag{
			Name:  "genesis.extra",
			Usage: "Path to a file holding the hex-encoded genesis extraData",
		},
	}
}
