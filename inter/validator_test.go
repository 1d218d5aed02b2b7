package inter

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-asset-bft/inter/validatorpk"
)

// testPubKey builds a well-formed Ed25519 key whose material starts with the
// given marker byte, so validators in a test are distinguishable.
func testPubKey(marker byte) validatorpk.PubKey {
	raw := make([]byte, validatorpk.Ed25519Size)
	raw[0] = marker
	return validatorpk.PubKey{Type: validatorpk.Types.Ed25519, Raw: raw}
}

func testValidator(addrHex string, power uint64, marker byte) Validator {
	return Validator{
		Address:     common.HexToAddress(addrHex),
		Operator:    common.HexToAddress("0x9900000000000000000000000000000000000099"),
		PubKey:      testPubKey(marker),
		VotingPower: power,
	}
}

// TestNewValidatorSet covers the construction invariants: non-empty input,
// unique consensus addresses, strictly positive powers, well-formed keys.
func TestNewValidatorSet(t *testing.T) {
	v1 := testValidator("0xaa000000000000000000000000000000000000aa", 10, 1)
	v2 := testValidator("0xbb000000000000000000000000000000000000bb", 20, 2)

	t.Run("Valid", func(t *testing.T) {
		require := require.New(t)
		vs, err := NewValidatorSet([]Validator{v1, v2})
		require.NoError(err)
		require.Equal(2, vs.Len())
		require.Equal(uint64(30), vs.TotalVotingPower())
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := NewValidatorSet(nil)
		require.Error(t, err)
	})

	t.Run("Duplicate", func(t *testing.T) {
		dup := v1
		dup.VotingPower = 5
		_, err := NewValidatorSet([]Validator{v1, dup})
		require.Error(t, err)
	})

	t.Run("ZeroPower", func(t *testing.T) {
		zero := testValidator("0xcc000000000000000000000000000000000000cc", 0, 3)
		_, err := NewValidatorSet([]Validator{v1, zero})
		require.Error(t, err)
	})

	t.Run("MalformedPubKey", func(t *testing.T) {
		bad := v2
		bad.PubKey = validatorpk.PubKey{Type: validatorpk.Types.Ed25519, Raw: []byte{1, 2, 3}}
		_, err := NewValidatorSet([]Validator{v1, bad})
		require.Error(t, err)
	})
}

// TestValidatorSetOrder verifies that construction preserves the input order:
// member order is part of the network-wide agreement.
func TestValidatorSetOrder(t *testing.T) {
	require := require.New(t)

	vals := []Validator{
		testValidator("0xcc000000000000000000000000000000000000cc", 3, 3),
		testValidator("0xaa000000000000000000000000000000000000aa", 1, 1),
		testValidator("0xbb000000000000000000000000000000000000bb", 2, 2),
	}
	vs, err := NewValidatorSet(vals)
	require.NoError(err)

	got := vs.Validators()
	require.Len(got, 3)
	for i := range vals {
		require.Equal(vals[i].Address, got[i].Address)
		require.Equal(vals[i].VotingPower, got[i].VotingPower)
	}
}

// TestLookup verifies Get/Contains by consensus address.
func TestLookup(t *testing.T) {
	require := require.New(t)

	v1 := testValidator("0xaa000000000000000000000000000000000000aa", 10, 1)
	vs, err := NewValidatorSet([]Validator{v1})
	require.NoError(err)

	require.True(vs.Contains(v1.Address))
	got, ok := vs.Get(v1.Address)
	require.True(ok)
	require.Equal(v1.Address, got.Address)
	require.Equal(uint64(10), got.VotingPower)

	other := common.HexToAddress("0xdd000000000000000000000000000000000000dd")
	require.False(vs.Contains(other))
	_, ok = vs.Get(other)
	require.False(ok)
}

// TestCopyIsolation verifies that copies and accessors do not share mutable
// memory with the set: readers during consensus must never observe mutation.
func TestCopyIsolation(t *testing.T) {
	require := require.New(t)

	v1 := testValidator("0xaa000000000000000000000000000000000000aa", 10, 1)
	vs, err := NewValidatorSet([]Validator{v1})
	require.NoError(err)

	cp := vs.Copy()
	cp.validators[0].VotingPower = 999
	cp.validators[0].PubKey.Raw[0] = 0xFF

	orig := vs.Validators()[0]
	require.Equal(uint64(10), orig.VotingPower)
	require.Equal(uint8(1), orig.PubKey.Raw[0])

	leaked := vs.Validators()
	leaked[0].PubKey.Raw[0] = 0xEE
	require.Equal(uint8(1), vs.Validators()[0].PubKey.Raw[0])
}

// TestHash verifies that the set commitment is deterministic and sensitive to
// member order, powers, and keys.
func TestHash(t *testing.T) {
	require := require.New(t)

	v1 := testValidator("0xaa000000000000000000000000000000000000aa", 10, 1)
	v2 := testValidator("0xbb000000000000000000000000000000000000bb", 20, 2)

	a, err := NewValidatorSet([]Validator{v1, v2})
	require.NoError(err)
	b, err := NewValidatorSet([]Validator{v1, v2})
	require.NoError(err)
	require.Equal(a.Hash(), b.Hash())

	reordered, err := NewValidatorSet([]Validator{v2, v1})
	require.NoError(err)
	require.NotEqual(a.Hash(), reordered.Hash())

	v2Bumped := v2
	v2Bumped.VotingPower = 21
	bumped, err := NewValidatorSet([]Validator{v1, v2Bumped})
	require.NoError(err)
	require.NotEqual(a.Hash(), bumped.Hash())
}
