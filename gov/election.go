package gov

import (
	"container/heap"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// PowerReduction is the fixed divisor that normalizes raw on-chain stake
// (contract denomination, 18 decimals) to the BFT engine's voting-power unit.
// The division truncates toward zero; every node must compute the same
// quotient or quorum weights diverge.
var PowerReduction = big.NewInt(1e10)

// ElectionCandidate is one StakeHub registration competing for a validator
// slot. It exists only for the duration of one election computation.
type ElectionCandidate struct {
	// ConsensusAddr is the candidate's consensus identity.
	ConsensusAddr common.Address
	// VotingPower is the raw on-chain stake backing the candidate. Its range
	// exceeds uint64; it is scaled down by PowerReduction on election.
	VotingPower *big.Int
	// OperatorAddr is the candidate's contract-level identity.
	OperatorAddr common.Address
	// PubKey is the candidate's BFT key material as returned by the
	// contract, width-checked only during canonical assembly.
	PubKey []byte
}

// ElectedValidators holds the election result as four parallel sequences of
// equal length, ordered by descending voting power (ties broken as described
// on TopValidatorsByVotingPower).
type ElectedValidators struct {
	ConsensusAddrs []common.Address
	// VotingPowers are already scaled down by PowerReduction.
	VotingPowers  []uint64
	OperatorAddrs []common.Address
	PubKeys       [][]byte
}

// Len returns the number of elected validators.
func (ev ElectedValidators) Len() int {
	return len(ev.ConsensusAddrs)
}

// candidateHeap is a max-heap of election candidates. Ordering: primary key
// is raw voting power, descending; ties are broken by the checksummed hex
// representation of the consensus address, descending (the lexicographically
// greater address wins). The tie-break is consensus-critical: every node in
// the network must extract candidates in exactly this order.
type candidateHeap []ElectionCandidate

func (h candidateHeap) Len() int { return len(h) }

func (h candidateHeap) Less(i, j int) bool {
	if cmp := h[i].VotingPower.Cmp(h[j].VotingPower); cmp != 0 {
		return cmp > 0
	}
	return h[i].ConsensusAddr.Hex() > h[j].ConsensusAddr.Hex()
}

func (h candidateHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *candidateHeap) Push(x interface{}) {
	*h = append(*h, x.(ElectionCandidate))
}

func (h *candidateHeap) Pop() interface{} {
	old := *h
	n := len(old)
	res := old[n-1]
	*h = old[:n-1]
	return res
}

// TopValidatorsByVotingPower reduces the full candidate list to the elected
// subset:
//
//  1. candidates without strictly positive raw voting power are discarded,
//  2. the remaining candidates are ranked by the heap ordering above,
//  3. min(maxElected, remaining) candidates are extracted in rank order,
//  4. each winner's raw power is divided by PowerReduction (truncating)
//     and narrowed to uint64.
//
// The function is deterministic and side-effect free; it never pads or
// duplicates entries when maxElected exceeds the candidate count.
func TopValidatorsByVotingPower(candidates []ElectionCandidate, maxElected *big.Int) ElectedValidators {
	h := make(candidateHeap, 0, len(candidates))
	for _, c := range candidates {
		if c.VotingPower != nil && c.VotingPower.Sign() > 0 {
			h = append(h, c)
		}
	}
	heap.Init(&h)

	topN := len(h)
	if maxElected != nil && maxElected.IsUint64() && maxElected.Uint64() < uint64(topN) {
		topN = int(maxElected.Uint64())
	}

	elected := ElectedValidators{
		ConsensusAddrs: make([]common.Address, 0, topN),
		VotingPowers:   make([]uint64, 0, topN),
		OperatorAddrs:  make([]common.Address, 0, topN),
		PubKeys:        make([][]byte, 0, topN),
	}
	for i := 0; i < topN; i++ {
		c := heap.Pop(&h).(ElectionCandidate)
		scaled := new(big.Int).Quo(c.VotingPower, PowerReduction)
		elected.ConsensusAddrs = append(elected.ConsensusAddrs, c.ConsensusAddr)
		elected.VotingPowers = append(elected.VotingPowers, scaled.Uint64())
		elected.OperatorAddrs = append(elected.OperatorAddrs, c.OperatorAddr)
		elected.PubKeys = append(elected.PubKeys, c.PubKey)
	}
	return elected
}
