package asset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRulesPresets verifies that each preset is internally consistent and
// that network IDs stay distinct.
func TestRulesPresets(t *testing.T) {
	require := require.New(t)

	main := MainNetRules()
	test := TestNetRules()
	fake := FakeNetRules()

	require.Equal("main", main.Name)
	require.Equal("test", test.Name)
	require.Equal("fake", fake.Name)

	ids := map[uint64]bool{
		main.NetworkID: true,
		test.NetworkID: true,
		fake.NetworkID: true,
	}
	require.Len(ids, 3, "network IDs must be distinct")

	for _, r := range []Rules{main, test, fake} {
		require.NotZero(r.Epochs.DefaultEpochLength)
		require.Equal(StakeHubContractAddress, r.Staking.StakeHubContract)
	}

	// Fake networks rotate faster than production networks.
	require.Less(fake.Epochs.DefaultEpochLength, main.Epochs.DefaultEpochLength)
}
