// Package genesis handles the chain-specific bootstrap information carried in
// the genesis block header's extraData field. The field packs the initial
// validator set and the epoch length into a fixed binary layout with no
// self-describing framing:
//
//	vanity(32) + [consensusAddr(20) + operatorAddr(20) + votingPower(8) + pubKey(32)] * N + epochLength(8) + seal(65)
//
// All integer fields are big-endian. Record count N is derived from the total
// length; a length that does not fit the layout is a format error, never a
// best-effort decode.
package genesis

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"

	"github.com/rony4d/go-asset-bft/inter/validatorpk"
	"github.com/rony4d/go-asset-bft/utils/fast"
)

const (
	// ExtraVanity is the fixed number of leading extraData bytes reserved
	// for arbitrary vanity content. Ignored by the decoder.
	ExtraVanity = 32
	// ExtraSeal is the fixed number of trailing extraData bytes reserved
	// for the header seal. All zeros in genesis; ignored by the decoder.
	ExtraSeal = 65
	// epochLengthSize is the width of the big-endian epoch length field.
	epochLengthSize = 8
	// validatorRecordSize is the width of one packed validator record:
	// consensusAddr(20) + operatorAddr(20) + votingPower(8) + pubKey(32).
	validatorRecordSize = common.AddressLength + common.AddressLength + 8 + validatorpk.Ed25519Size
)

// ValidatorInfo is one bootstrap validator record decoded from extraData.
type ValidatorInfo struct {
	// ConsensusAddr is the address the validator signs block votes with.
	ConsensusAddr common.Address
	// OperatorAddr is the address used for contract-level stake accounting.
	OperatorAddr common.Address
	// PubKey is the validator's Ed25519 key material.
	PubKey validatorpk.PubKey
	// VotingPower is the validator's genesis voting power.
	VotingPower uint64
}

// DecodeExtra parses the genesis extraData into the bootstrap validator list
// and the epoch length (in blocks).
//
// Decoding is total and order-preserving: record i occupies the i-th 80-byte
// slot after the vanity region, and the returned list holds the records in
// that order. A single misplaced byte corrupts every downstream validator
// identity, so any length that does not match the layout exactly is rejected
// up front with a format error naming the observed and expected sizes.
func DecodeExtra(extra []byte) ([]ValidatorInfo, uint64, error) {
	if len(extra) < ExtraVanity+ExtraSeal {
		return nil, 0, fmt.Errorf("extraData too short: %d bytes, expected at least %d",
			len(extra), ExtraVanity+ExtraSeal)
	}

	middleLen := len(extra) - ExtraVanity - ExtraSeal
	if middleLen < epochLengthSize {
		return nil, 0, fmt.Errorf(
			"invalid extraData: middle section is %d bytes, expected vanity(%d) + validator records + epochLength(%d) + seal(%d)",
			middleLen, ExtraVanity, epochLengthSize, ExtraSeal)
	}

	validatorDataLen := middleLen - epochLengthSize
	if validatorDataLen%validatorRecordSize != 0 {
		return nil, 0, fmt.Errorf(
			"invalid extraData: validator region is %d bytes, not a multiple of the %d-byte record size",
			validatorDataLen, validatorRecordSize)
	}
	count := validatorDataLen / validatorRecordSize

	r := fast.NewReader(extra)
	r.Read(ExtraVanity) // vanity content is ignored

	validators := make([]ValidatorInfo, count)
	for i := 0; i < count; i++ {
		consensusAddr := common.BytesToAddress(r.Read(common.AddressLength))
		operatorAddr := common.BytesToAddress(r.Read(common.AddressLength))
		votingPower := r.ReadUint64()
		pubKey := validatorpk.PubKey{
			Type: validatorpk.Types.Ed25519,
			Raw:  common.CopyBytes(r.Read(validatorpk.Ed25519Size)),
		}
		validators[i] = ValidatorInfo{
			ConsensusAddr: consensusAddr,
			OperatorAddr:  operatorAddr,
			PubKey:        pubKey,
			VotingPower:   votingPower,
		}
	}
	epochLength := r.ReadUint64()

	log.Debug("Decoded genesis extraData",
		"bytes", len(extra), "validators", count, "epoch", epochLength)

	return validators, epochLength, nil
}

// EncodeExtra is the inverse of DecodeExtra. It is used when constructing
// genesis headers for fake networks and in tests; the vanity and seal regions
// are zero-filled.
func EncodeExtra(validators []ValidatorInfo, epochLength uint64) ([]byte, error) {
	size := ExtraVanity + len(validators)*validatorRecordSize + epochLengthSize + ExtraSeal
	w := fast.NewWriter(make([]byte, 0, size))

	w.Write(make([]byte, ExtraVanity))
	for i, v := range validators {
		if err := v.PubKey.Validate(); err != nil {
			return nil, fmt.Errorf("validator #%d: %v", i, err)
		}
		w.Write(v.ConsensusAddr.Bytes())
		w.Write(v.OperatorAddr.Bytes())
		w.WriteUint64(v.VotingPower)
		w.Write(v.PubKey.Raw)
	}
	w.WriteUint64(epochLength)
	w.Write(make([]byte, ExtraSeal))

	return w.Bytes(), nil
}
