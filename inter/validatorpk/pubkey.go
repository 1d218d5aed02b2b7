// Package validatorpk provides abstractions for handling validator public keys.
// It defines a generic PubKey structure that decouples the key scheme from the
// raw bytes and provides utilities for serialization, deserialization, and hex
// string conversion. The BFT engine signs and verifies with Ed25519, but the
// abstraction keeps the rest of the codebase independent of the curve details.
package validatorpk

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Ed25519Size is the exact byte length of Ed25519 public key material.
// The genesis extraData layout and the StakeHub contract both carry keys of
// this width; anything else is a malformed validator record.
const Ed25519Size = 32

// PubKey represents a validator's public key.
// The Type byte allows additional signature schemes to join later without
// changing stored or transmitted key material.
type PubKey struct {
	// Type identifies the signature scheme (see Types).
	Type uint8
	// Raw contains the actual public key bytes.
	Raw []byte
}

// Types defines the supported public key type constants.
var Types = struct {
	Ed25519 uint8
}{
	// 0xc1 identifies Ed25519, the scheme the BFT engine votes with.
	Ed25519: 0xc1,
}

// Empty checks if the public key is uninitialized or zeroed out.
func (pk PubKey) Empty() bool {
	return len(pk.Raw) == 0 && pk.Type == 0
}

// Validate checks that the key material has the exact width its scheme
// requires. A key of unexpected width must never reach the consensus engine.
func (pk PubKey) Validate() error {
	if pk.Type != Types.Ed25519 {
		return fmt.Errorf("unknown pubkey type 0x%x", pk.Type)
	}
	if len(pk.Raw) != Ed25519Size {
		return fmt.Errorf("malformed ed25519 pubkey: %d bytes, expected %d", len(pk.Raw), Ed25519Size)
	}
	return nil
}

// String returns the hexadecimal representation of the public key, prefixed
// with "0x". It includes the Type byte followed by the Raw bytes.
func (pk PubKey) String() string {
	return "0x" + common.Bytes2Hex(pk.Bytes())
}

// Bytes returns the flat byte representation: [Type byte] + [Raw bytes...].
func (pk PubKey) Bytes() []byte {
	return append([]byte{pk.Type}, pk.Raw...)
}

// Copy creates a deep copy of the PubKey.
// Raw is a slice, so a plain assignment would share the underlying memory.
func (pk PubKey) Copy() PubKey {
	return PubKey{
		Type: pk.Type,
		Raw:  common.CopyBytes(pk.Raw),
	}
}

// FromString parses a hex string (with or without "0x" prefix) into a PubKey.
func FromString(str string) (PubKey, error) {
	return FromBytes(common.FromHex(str))
}

// FromBytes reconstructs a PubKey from a flat byte slice.
// The first byte is the Type, the rest is the raw key material.
func FromBytes(b []byte) (PubKey, error) {
	if len(b) == 0 {
		return PubKey{}, errors.New("empty pubkey")
	}
	return PubKey{b[0], b[1:]}, nil
}

// MarshalText implements encoding.TextMarshaler, so a PubKey JSON-encodes as
// its hex string form.
func (pk *PubKey) MarshalText() ([]byte, error) {
	return []byte(pk.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (pk *PubKey) UnmarshalText(input []byte) error {
	res, err := FromString(string(input))
	if err != nil {
		return err
	}
	*pk = res
	return nil
}
