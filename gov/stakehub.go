// Package gov sources and ranks the validator set for the Asset Chain BFT
// engine. It covers the read side of the StakeHub system contract (election
// parameters and the candidate list), the deterministic top-K election, and
// the executor that decides per block which validator set is authoritative.
package gov

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// stakeHubABI is the subset of the StakeHub contract interface this node
// reads. The contract is deployed at genesis; its ABI is fixed per network.
const stakeHubABI = `[
	{"inputs":[],"name":"epochLength","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"maxElectedValidators","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"internalType":"uint256","name":"offset","type":"uint256"},{"internalType":"uint256","name":"limit","type":"uint256"}],"name":"getValidatorElectionInfo","outputs":[{"internalType":"address[]","name":"consensusAddrs","type":"address[]"},{"internalType":"uint256[]","name":"votingPowers","type":"uint256[]"},{"internalType":"address[]","name":"operatorAddrs","type":"address[]"},{"internalType":"bytes[]","name":"voteAddrs","type":"bytes[]"},{"internalType":"uint256","name":"totalLength","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

const (
	contractFunc_EpochLength  = "epochLength"
	contractFunc_MaxElected   = "maxElectedValidators"
	contractFunc_ElectionInfo = "getValidatorElectionInfo"

	// callGas caps eth_call execution; the read-only queries never get close.
	callGas = uint64(math.MaxUint64 / 2)
)

// ContractCaller executes a read-only contract call and returns the raw
// returned bytes. *ethclient.Client satisfies it. Timeouts and retry policy
// belong to the implementation, not to this package: a failed call is
// terminal for that attempt.
type ContractCaller interface {
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// StakeHub is a typed read client over the StakeHub staking contract.
// Each operation performs exactly one contract call and one structured
// decode; transient failures propagate to the caller unchanged.
type StakeHub struct {
	caller   ContractCaller
	contract *common.Address
	abi      abi.ABI
}

// NewStakeHub creates a client bound to the StakeHub contract at the given
// address.
func NewStakeHub(caller ContractCaller, contract common.Address) *StakeHub {
	hubABI, _ := abi.JSON(strings.NewReader(stakeHubABI))
	return &StakeHub{
		caller:   caller,
		contract: &contract,
		abi:      hubABI,
	}
}

// call packs a function invocation against the StakeHub ABI and executes it
// at the latest block.
func (s *StakeHub) call(ctx context.Context, name string, args ...interface{}) ([]byte, error) {
	data, err := s.abi.Pack(name, args...)
	if err != nil {
		return nil, err
	}

	msg := ethereum.CallMsg{
		To:   s.contract,
		Gas:  callGas,
		Data: data,
	}
	return s.caller.CallContract(ctx, msg, nil)
}

// EpochLength returns the epoch length (in blocks) currently configured in
// the StakeHub contract.
func (s *StakeHub) EpochLength(ctx context.Context) (uint64, error) {
	raw, err := s.call(ctx, contractFunc_EpochLength)
	if err != nil {
		return 0, err
	}

	var length *big.Int
	if err := s.abi.UnpackIntoInterface(&length, contractFunc_EpochLength, raw); err != nil {
		return 0, fmt.Errorf("failed to decode %s result: %v", contractFunc_EpochLength, err)
	}
	return length.Uint64(), nil
}

// MaxElectedValidators returns the contract-defined cap on validator set
// size.
func (s *StakeHub) MaxElectedValidators(ctx context.Context) (*big.Int, error) {
	raw, err := s.call(ctx, contractFunc_MaxElected)
	if err != nil {
		return nil, err
	}

	var maxElected *big.Int
	if err := s.abi.UnpackIntoInterface(&maxElected, contractFunc_MaxElected, raw); err != nil {
		return nil, fmt.Errorf("failed to decode %s result: %v", contractFunc_MaxElected, err)
	}
	return maxElected, nil
}

// ValidatorElectionInfo returns the full candidate list registered in the
// StakeHub contract: consensus identity, raw on-chain voting power (in the
// contract's stake denomination), operator identity, and BFT key material
// per candidate.
//
// The contract reports the candidates as four parallel arrays; arrays of
// unequal length are a defect in the upstream data and surface as a decode
// error, never as a truncated list.
func (s *StakeHub) ValidatorElectionInfo(ctx context.Context) ([]ElectionCandidate, error) {
	// offset 0 / limit 0 requests the whole candidate list.
	raw, err := s.call(ctx, contractFunc_ElectionInfo, big.NewInt(0), big.NewInt(0))
	if err != nil {
		return nil, err
	}

	var out struct {
		ConsensusAddrs []common.Address
		VotingPowers   []*big.Int
		OperatorAddrs  []common.Address
		VoteAddrs      [][]byte
		TotalLength    *big.Int
	}
	if err := s.abi.UnpackIntoInterface(&out, contractFunc_ElectionInfo, raw); err != nil {
		return nil, fmt.Errorf("failed to decode %s result: %v", contractFunc_ElectionInfo, err)
	}

	n := len(out.ConsensusAddrs)
	if len(out.VotingPowers) != n || len(out.OperatorAddrs) != n || len(out.VoteAddrs) != n {
		return nil, fmt.Errorf(
			"invalid election info: %d consensus addresses, %d voting powers, %d operator addresses, %d vote keys",
			n, len(out.VotingPowers), len(out.OperatorAddrs), len(out.VoteAddrs))
	}

	candidates := make([]ElectionCandidate, n)
	for i := 0; i < n; i++ {
		candidates[i] = ElectionCandidate{
			ConsensusAddr: out.ConsensusAddrs[i],
			VotingPower:   out.VotingPowers[i],
			OperatorAddr:  out.OperatorAddrs[i],
			PubKey:        out.VoteAddrs[i],
		}
	}
	return candidates, nil
}
