package gov

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/log"

	"github.com/rony4d/go-asset-bft/asset/genesis"
	"github.com/rony4d/go-asset-bft/inter"
	"github.com/rony4d/go-asset-bft/inter/validatorpk"
)

// SetSource identifies which origin the active validator set came from.
// The transition SourceGenesis -> SourceContract happens on the first
// successful election and is irreversible: once the chain has elected a set
// from the StakeHub contract, it never falls back to the genesis bootstrap
// set.
type SetSource int

const (
	// SourceGenesis marks the one-time bootstrap set decoded from the
	// genesis header's extraData.
	SourceGenesis SetSource = iota
	// SourceContract marks a set elected from the StakeHub contract.
	SourceContract
)

func (s SetSource) String() string {
	switch s {
	case SourceGenesis:
		return "genesis"
	case SourceContract:
		return "contract"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// ValidatorExecutor owns the node's "current validator set" slot and decides,
// per block, whether a re-election is due.
//
// The slot is replaced atomically and only by the executor itself,
// sequentially with block processing; concurrent readers (the BFT engine)
// always observe either the previous or the new set, never a partial one.
type ValidatorExecutor struct {
	hub *StakeHub

	mu sync.RWMutex
	// current is the authoritative validator set, nil until genesis is
	// applied.
	current *inter.ValidatorSet
	// source is sticky: it moves to SourceContract on the first successful
	// election and never reverts.
	source SetSource
	// epochLength is the bootstrap epoch length decoded from genesis
	// extraData, in blocks.
	epochLength uint64
}

// NewValidatorExecutor creates an executor that elects validator sets
// through the given StakeHub client.
func NewValidatorExecutor(hub *StakeHub) *ValidatorExecutor {
	return &ValidatorExecutor{
		hub:    hub,
		source: SourceGenesis,
	}
}

// IsEpochBoundary reports whether the given block is an epoch boundary: the
// block number is positive and exactly divisible by the epoch length. Block
// zero is never a boundary, so the chain does not re-elect at genesis itself.
// A zero epoch length has no boundaries.
func IsEpochBoundary(block idx.Block, epochLength uint64) bool {
	return block > 0 && epochLength > 0 && uint64(block)%epochLength == 0
}

// ApplyGenesis installs the one-time bootstrap validator set decoded from
// the genesis extraData. It is valid exactly once, at chain start.
func (e *ValidatorExecutor) ApplyGenesis(validators []genesis.ValidatorInfo, epochLength uint64) error {
	if epochLength == 0 {
		return errors.New("genesis epoch length is zero")
	}

	members := make([]inter.Validator, len(validators))
	for i, v := range validators {
		members[i] = inter.Validator{
			Address:     v.ConsensusAddr,
			Operator:    v.OperatorAddr,
			PubKey:      v.PubKey,
			VotingPower: v.VotingPower,
		}
	}
	set, err := inter.NewValidatorSet(members)
	if err != nil {
		return fmt.Errorf("invalid genesis validator set: %v", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current != nil {
		return errors.New("genesis validator set already applied")
	}
	e.current = set
	e.epochLength = epochLength

	log.Info("Applied genesis validator set",
		"validators", set.Len(), "totalPower", set.TotalVotingPower(), "epoch", epochLength)
	return nil
}

// EpochLength fetches the current epoch length from the StakeHub contract.
// Failures propagate unchanged; there is no local default to fall back to.
func (e *ValidatorExecutor) EpochLength(ctx context.Context) (uint64, error) {
	return e.hub.EpochLength(ctx)
}

// BootstrapEpochLength returns the epoch length decoded from genesis.
func (e *ValidatorExecutor) BootstrapEpochLength() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.epochLength
}

// Current returns the authoritative validator set, or nil before genesis has
// been applied. The returned set is immutable.
func (e *ValidatorExecutor) Current() *inter.ValidatorSet {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.current
}

// Source returns the origin of the authoritative set.
func (e *ValidatorExecutor) Source() SetSource {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.source
}

// ElectValidatorSet produces the next epoch's validator set from the
// StakeHub contract: fetch the election parameters and candidate list, rank
// them, and assemble the canonical set.
//
// The three fetches and the assembly form a single logical unit: on any
// failure in the chain (contract call, decode mismatch, malformed key
// material) the method reports the condition and returns nil — "no new set
// available" — so the caller keeps the currently active set instead of
// stalling block production. A transient RPC outage must not halt consensus.
func (e *ValidatorExecutor) ElectValidatorSet(ctx context.Context) *inter.ValidatorSet {
	maxElected, err := e.hub.MaxElectedValidators(ctx)
	if err != nil {
		log.Warn("Validator election unavailable", "stage", contractFunc_MaxElected, "err", err)
		return nil
	}

	candidates, err := e.hub.ValidatorElectionInfo(ctx)
	if err != nil {
		log.Warn("Validator election unavailable", "stage", contractFunc_ElectionInfo, "err", err)
		return nil
	}

	elected := TopValidatorsByVotingPower(candidates, maxElected)
	set, err := assembleValidatorSet(elected)
	if err != nil {
		log.Warn("Validator election unavailable", "stage", "assembly", "err", err)
		return nil
	}

	log.Info("Elected validator set from StakeHub",
		"validators", set.Len(), "totalPower", set.TotalVotingPower(), "hash", set.Hash())
	return set
}

// ProcessBlock runs the per-block epoch check. At an epoch boundary it
// attempts a re-election and, on success, atomically replaces the current
// set and marks the source contract-elected. On failure the previous set
// stays authoritative. Returns whether the set was replaced.
//
// ProcessBlock must be called sequentially with block processing; it is the
// single writer of the current-set slot.
func (e *ValidatorExecutor) ProcessBlock(ctx context.Context, block idx.Block) bool {
	e.mu.RLock()
	epochLength := e.epochLength
	bootstrapped := e.current != nil
	e.mu.RUnlock()

	if !bootstrapped || !IsEpochBoundary(block, epochLength) {
		return false
	}

	set := e.ElectValidatorSet(ctx)
	if set == nil {
		log.Warn("Keeping previous validator set", "block", block)
		return false
	}

	e.mu.Lock()
	e.current = set
	e.source = SourceContract
	e.mu.Unlock()

	log.Info("Validator set replaced at epoch boundary", "block", block, "validators", set.Len())
	return true
}

// assembleValidatorSet maps the elected parallel sequences into the
// canonical set type. Key material of unexpected width is a hard defect for
// the whole set: partial validator sets are never produced.
func assembleValidatorSet(elected ElectedValidators) (*inter.ValidatorSet, error) {
	members := make([]inter.Validator, elected.Len())
	for i := 0; i < elected.Len(); i++ {
		pk := validatorpk.PubKey{
			Type: validatorpk.Types.Ed25519,
			Raw:  elected.PubKeys[i],
		}
		if err := pk.Validate(); err != nil {
			return nil, fmt.Errorf("elected validator %s: %v", elected.ConsensusAddrs[i].Hex(), err)
		}
		members[i] = inter.Validator{
			Address:     elected.ConsensusAddrs[i],
			Operator:    elected.OperatorAddrs[i],
			PubKey:      pk,
			VotingPower: elected.VotingPowers[i],
		}
	}
	return inter.NewValidatorSet(members)
}
