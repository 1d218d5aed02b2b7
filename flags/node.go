package flags

import (
	"time"

	cli "gopkg.in/urfave/cli.v1"
)

// NodeFlags holds knobs specific to the local node instance.
func NodeFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "identity",
			Usage: "Custom node name used in logs",
		},
		cli.StringFlag{
			Name:  "el.rpc",
			Usage: "JSON-RPC endpoint of the execution-layer client",
			Value: "http://127.0.0.1:8545",
		},
		cli.DurationFlag{
			Name:  "el.pollinterval",
			Usage: "How often to poll the execution layer for new head blocks",
			Value: 3 * time.Second,
		},
	}
}
