package genesis

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-asset-bft/inter/validatorpk"
)

func makeValidatorInfo(i byte, power uint64) ValidatorInfo {
	raw := make([]byte, validatorpk.Ed25519Size)
	for j := range raw {
		raw[j] = i
	}
	var consensus, operator common.Address
	consensus[0] = i
	consensus[19] = i
	operator[0] = 0xF0 | i
	return ValidatorInfo{
		ConsensusAddr: consensus,
		OperatorAddr:  operator,
		PubKey:        validatorpk.PubKey{Type: validatorpk.Types.Ed25519, Raw: raw},
		VotingPower:   power,
	}
}

// TestRoundTrip verifies that any list built as vanity(32) + N records(80) +
// epoch(8) + seal(65) decodes to exactly N records in input order, with every
// field matching the encoded bytes.
func TestRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 3, 7} {
		vals := make([]ValidatorInfo, n)
		for i := range vals {
			vals[i] = makeValidatorInfo(byte(i+1), uint64(i+1)*100)
		}

		extra, err := EncodeExtra(vals, 7200)
		require.NoError(t, err)
		require.Len(t, extra, ExtraVanity+n*80+8+ExtraSeal)

		got, epoch, err := DecodeExtra(extra)
		require.NoError(t, err)
		require.Equal(t, uint64(7200), epoch)
		require.Len(t, got, n)
		for i := range vals {
			require.Equal(t, vals[i].ConsensusAddr, got[i].ConsensusAddr, "record %d", i)
			require.Equal(t, vals[i].OperatorAddr, got[i].OperatorAddr, "record %d", i)
			require.Equal(t, vals[i].VotingPower, got[i].VotingPower, "record %d", i)
			require.Equal(t, vals[i].PubKey, got[i].PubKey, "record %d", i)
		}
	}
}

// TestDecodeFieldLayout decodes a hand-packed buffer so the byte offsets of
// each field are pinned independently of the encoder.
func TestDecodeFieldLayout(t *testing.T) {
	require := require.New(t)

	extra := make([]byte, ExtraVanity+80+8+ExtraSeal)
	record := extra[ExtraVanity:]
	// consensus address: 0xAA..., operator address: 0xBB...
	for i := 0; i < 20; i++ {
		record[i] = 0xAA
		record[20+i] = 0xBB
	}
	// voting power 258 = 0x0102, big-endian in bytes [40,48)
	record[46] = 0x01
	record[47] = 0x02
	// pubkey bytes [48,80)
	for i := 48; i < 80; i++ {
		record[i] = 0xCC
	}
	// epoch length 50, big-endian right before the seal
	extra[len(extra)-ExtraSeal-1] = 50

	got, epoch, err := DecodeExtra(extra)
	require.NoError(err)
	require.Equal(uint64(50), epoch)
	require.Len(got, 1)

	v := got[0]
	require.Equal(common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"), v.ConsensusAddr)
	require.Equal(common.HexToAddress("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"), v.OperatorAddr)
	require.Equal(uint64(258), v.VotingPower)
	require.Equal(uint8(validatorpk.Types.Ed25519), v.PubKey.Type)
	require.Len(v.PubKey.Raw, validatorpk.Ed25519Size)
	for _, b := range v.PubKey.Raw {
		require.Equal(byte(0xCC), b)
	}
}

// TestDecodeFormatErrors walks the three validation boundaries in order:
// total length below minimum, middle region too short for the epoch length,
// and a validator region that is not a multiple of the record size.
func TestDecodeFormatErrors(t *testing.T) {
	t.Run("TotalTooShort", func(t *testing.T) {
		// 96 < 97: below vanity + seal.
		_, _, err := DecodeExtra(make([]byte, 96))
		require.Error(t, err)
		require.Contains(t, err.Error(), "96")
		require.Contains(t, err.Error(), "97")
	})

	t.Run("MiddleTooShort", func(t *testing.T) {
		// 100 bytes leaves a 3-byte middle region, no room for the epoch length.
		_, _, err := DecodeExtra(make([]byte, 100))
		require.Error(t, err)
		require.Contains(t, err.Error(), "middle section")
	})

	t.Run("RecordRegionNotMultiple", func(t *testing.T) {
		// 117 bytes leaves a 12-byte validator region; 12 % 80 != 0.
		_, _, err := DecodeExtra(make([]byte, 117))
		require.Error(t, err)
		require.Contains(t, err.Error(), "multiple")
	})

	t.Run("ExactMinimumPlusEpoch", func(t *testing.T) {
		// 105 bytes = vanity + epoch + seal: zero validators, epoch zero.
		got, epoch, err := DecodeExtra(make([]byte, 105))
		require.NoError(t, err)
		require.Empty(t, got)
		require.Zero(t, epoch)
	})
}

// TestEncodeRejectsMalformedKey verifies that the encoder refuses key
// material of the wrong width instead of producing a corrupt layout.
func TestEncodeRejectsMalformedKey(t *testing.T) {
	bad := makeValidatorInfo(1, 100)
	bad.PubKey.Raw = bad.PubKey.Raw[:16]
	_, err := EncodeExtra([]ValidatorInfo{bad}, 100)
	require.Error(t, err)
}
