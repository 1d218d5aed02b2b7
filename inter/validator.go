// Package inter defines the core consensus data structures shared between the
// validator-set sourcing layer and the BFT engine. This file contains the
// canonical Validator and ValidatorSet types: the single output shape both
// the genesis bootstrap path and the StakeHub election path converge on.
//
// Key concepts:
//   - Validator: one member of the set, identified by its consensus address
//   - ValidatorSet: an ordered, duplicate-free collection with strictly
//     positive voting powers
//
// The BFT engine consumes a ValidatorSet as an immutable input for one
// epoch's worth of proposer scheduling and vote-power weighting.
package inter

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/rony4d/go-asset-bft/inter/validatorpk"
)

// Validator is one member of the consensus validator set.
type Validator struct {
	// Address is the consensus identity: the address the validator signs
	// block votes with.
	Address common.Address
	// Operator is the contract-level identity used for stake accounting.
	// It never signs blocks and may differ from Address.
	Operator common.Address
	// PubKey is the validator's Ed25519 key material for the BFT scheme.
	PubKey validatorpk.PubKey
	// VotingPower is the validator's weight in consensus decisions, already
	// scaled down from the on-chain stake denomination.
	VotingPower uint64
}

// Copy creates a deep copy of the validator, detaching the PubKey bytes.
func (v Validator) Copy() Validator {
	cp := v
	cp.PubKey = v.PubKey.Copy()
	return cp
}

// ValidatorSet is an ordered collection of validators with no duplicate
// consensus addresses. The order is fixed at construction and is part of the
// network-wide agreement: every node must hold the members in the same order.
type ValidatorSet struct {
	validators []Validator
	indexOf    map[common.Address]int
}

// NewValidatorSet builds a set from an ordered validator list, enforcing the
// set invariants:
//   - the set is not empty,
//   - no two validators share a consensus address,
//   - every voting power is strictly positive,
//   - every public key is well-formed for the BFT scheme.
//
// An empty input is a signaled failure, not a valid state: the chain never
// operates with zero validators.
func NewValidatorSet(validators []Validator) (*ValidatorSet, error) {
	if len(validators) == 0 {
		return nil, errors.New("empty validator set")
	}

	vs := &ValidatorSet{
		validators: make([]Validator, len(validators)),
		indexOf:    make(map[common.Address]int, len(validators)),
	}
	for i, v := range validators {
		if _, ok := vs.indexOf[v.Address]; ok {
			return nil, fmt.Errorf("duplicate validator %s", v.Address.Hex())
		}
		if v.VotingPower == 0 {
			return nil, fmt.Errorf("validator %s has zero voting power", v.Address.Hex())
		}
		if err := v.PubKey.Validate(); err != nil {
			return nil, fmt.Errorf("validator %s: %v", v.Address.Hex(), err)
		}
		vs.validators[i] = v.Copy()
		vs.indexOf[v.Address] = i
	}
	return vs, nil
}

// Len returns the number of validators in the set.
func (vs *ValidatorSet) Len() int {
	return len(vs.validators)
}

// Validators returns a deep copy of the members in set order.
func (vs *ValidatorSet) Validators() []Validator {
	res := make([]Validator, len(vs.validators))
	for i, v := range vs.validators {
		res[i] = v.Copy()
	}
	return res
}

// Get returns the validator with the given consensus address, if present.
func (vs *ValidatorSet) Get(addr common.Address) (Validator, bool) {
	i, ok := vs.indexOf[addr]
	if !ok {
		return Validator{}, false
	}
	return vs.validators[i].Copy(), true
}

// Contains reports whether the given consensus address is a set member.
func (vs *ValidatorSet) Contains(addr common.Address) bool {
	_, ok := vs.indexOf[addr]
	return ok
}

// TotalVotingPower returns the sum of all members' voting powers. The BFT
// engine derives its quorum thresholds from this value.
func (vs *ValidatorSet) TotalVotingPower() uint64 {
	var total uint64
	for _, v := range vs.validators {
		total += v.VotingPower
	}
	return total
}

// Copy creates a deep copy of the set.
func (vs *ValidatorSet) Copy() *ValidatorSet {
	cp := &ValidatorSet{
		validators: make([]Validator, len(vs.validators)),
		indexOf:    make(map[common.Address]int, len(vs.indexOf)),
	}
	for i, v := range vs.validators {
		cp.validators[i] = v.Copy()
		cp.indexOf[v.Address] = i
	}
	return cp
}

// Hash returns the Keccak256 commitment over the RLP encoding of the ordered
// member list. Two sets hash equal iff they hold the same members, in the
// same order, with the same powers and keys.
func (vs *ValidatorSet) Hash() common.Hash {
	enc, err := rlp.EncodeToBytes(vs.validators)
	if err != nil {
		// Validator contains only RLP-encodable fields, so this cannot fail
		// on a constructed set.
		panic(fmt.Errorf("failed to RLP-encode validator set: %v", err))
	}
	return crypto.Keccak256Hash(enc)
}
