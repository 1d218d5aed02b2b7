package genesis

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

// TestFakeValidatorsDeterministic verifies that every node derives the same
// fake validator identities from the same indexes.
func TestFakeValidatorsDeterministic(t *testing.T) {
	require := require.New(t)

	a := FakeValidators(5)
	b := FakeValidators(5)
	require.Equal(a, b)

	seen := map[common.Address]bool{}
	for i, v := range a {
		require.False(seen[v.ConsensusAddr], "duplicate fake validator address")
		seen[v.ConsensusAddr] = true
		require.Equal(uint64(i+1), v.VotingPower)
		require.NoError(v.PubKey.Validate())
	}
}

// TestFakeExtraRoundTrip verifies that the generated extraData decodes back to
// the same records.
func TestFakeExtraRoundTrip(t *testing.T) {
	require := require.New(t)

	extra := FakeExtra(3, 50)
	validators, epochLength, err := DecodeExtra(extra)
	require.NoError(err)
	require.Equal(uint64(50), epochLength)
	require.Equal(FakeValidators(3), validators)
}
