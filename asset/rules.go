// Package asset defines the network rules and configuration parameters for
// the Asset Chain network.
//
// This package provides:
//   - Network identification constants (MainNet, TestNet, FakeNet)
//   - Epoch rules governing validator-set rotation
//   - Staking rules naming the system contracts the node talks to
//
// The Rules type is the central configuration structure that defines the
// consensus-critical parameters for a given Asset Chain deployment.
package asset

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
)

// Network identification constants
const (
	// MainNetworkID is the chain ID for the Asset Chain mainnet.
	MainNetworkID uint64 = 0xa5e

	// TestNetworkID is the chain ID for the Asset Chain testnet.
	TestNetworkID uint64 = 0xa5e2

	// FakeNetworkID is the chain ID for local/fake networks used in testing.
	FakeNetworkID uint64 = 0xa5e3
)

// StakeHubContractAddress is the fixed address of the StakeHub system
// contract. The contract is deployed at genesis, so the address is a network
// constant rather than a configuration value.
var StakeHubContractAddress = common.HexToAddress("0x0000000000000000000000000000000000002002")

// Rules describes the configuration of an Asset Chain network.
type Rules struct {
	Name      string // network name identifier (e.g. "main", "test", "fake")
	NetworkID uint64 // chain ID for transaction signing and network identification

	// Epochs options - validator-set rotation
	Epochs EpochsRules

	// Staking options - system contract wiring
	Staking StakingRules
}

// EpochsRules defines the rules for epoch management. An epoch is a fixed
// number of consecutive blocks during which one validator set is
// authoritative; a new set takes effect at each epoch boundary.
type EpochsRules struct {
	// DefaultEpochLength is the epoch length (in blocks) assumed before the
	// genesis extraData supplies the authoritative value. The StakeHub
	// contract may later re-define it for elected epochs.
	DefaultEpochLength uint64
}

// StakingRules names the on-chain contracts the validator-set core reads.
type StakingRules struct {
	// StakeHubContract is the address of the staking contract that holds
	// candidate registrations, stakes, and election parameters.
	StakeHubContract common.Address
}

// MainNetRules returns the configuration rules for the Asset Chain mainnet.
func MainNetRules() Rules {
	return Rules{
		Name:      "main",
		NetworkID: MainNetworkID,
		Epochs: EpochsRules{
			DefaultEpochLength: 7200, // one rotation per day at 12s blocks
		},
		Staking: StakingRules{
			StakeHubContract: StakeHubContractAddress,
		},
	}
}

// TestNetRules returns the configuration rules for the Asset Chain testnet.
func TestNetRules() Rules {
	return Rules{
		Name:      "test",
		NetworkID: TestNetworkID,
		Epochs: EpochsRules{
			DefaultEpochLength: 7200,
		},
		Staking: StakingRules{
			StakeHubContract: StakeHubContractAddress,
		},
	}
}

// FakeNetRules returns the configuration rules for fake/local networks.
// Fake networks rotate the validator set much faster so election paths get
// exercised within minutes rather than days.
func FakeNetRules() Rules {
	return Rules{
		Name:      "fake",
		NetworkID: FakeNetworkID,
		Epochs: EpochsRules{
			DefaultEpochLength: 50,
		},
		Staking: StakingRules{
			StakeHubContract: StakeHubContractAddress,
		},
	}
}

// String returns a JSON representation of Rules for debugging and logging.
func (r Rules) String() string {
	b, _ := json.Marshal(&r)
	return string(b)
}
