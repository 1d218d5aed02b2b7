package genesis

import (
	"crypto/ecdsa"
	"math/rand"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/rony4d/go-asset-bft/inter/validatorpk"
)

// FakeKey generates a deterministic private key for fake networks: the same
// index always yields the same key, so every node derives the same validator
// identities without any exchange.
func FakeKey(n int) *ecdsa.PrivateKey {
	reader := rand.New(rand.NewSource(int64(n)))
	key, err := ecdsa.GenerateKey(crypto.S256(), reader)
	if err != nil {
		panic(err)
	}
	return key
}

// FakeValidators derives n deterministic bootstrap validator records for a
// fake network. Validator i uses the address of FakeKey(i+1) for both its
// consensus and operator identity and gets i+1 voting power, so the set has a
// known total and a strict power ordering.
func FakeValidators(n int) []ValidatorInfo {
	validators := make([]ValidatorInfo, n)
	for i := 0; i < n; i++ {
		addr := crypto.PubkeyToAddress(FakeKey(i + 1).PublicKey)
		validators[i] = ValidatorInfo{
			ConsensusAddr: addr,
			OperatorAddr:  addr,
			PubKey: validatorpk.PubKey{
				Type: validatorpk.Types.Ed25519,
				Raw:  crypto.Keccak256(addr.Bytes()),
			},
			VotingPower: uint64(i + 1),
		}
	}
	return validators
}

// FakeExtra builds the genesis extraData for a fake network of n validators.
func FakeExtra(n int, epochLength uint64) []byte {
	extra, err := EncodeExtra(FakeValidators(n), epochLength)
	if err != nil {
		panic(err) // fake records are well-formed by construction
	}
	return extra
}
