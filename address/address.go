// Package address derives account addresses from creation parameters, secret keys and signatures
package address

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Create returns the address of a contract created by sender with the given nonce
func Create(sender common.Address, nonce uint64) common.Address {
	return crypto.CreateAddress(sender, nonce)
}

// Create2 returns the address of a contract created through CREATE2.
// The salt is left padded to 32 bytes.
func Create2(sender common.Address, salt []byte, initCode []byte) (common.Address, error) {
	if len(salt) > common.HashLength {
		return common.Address{}, fmt.Errorf("salt is %d bytes, at most %d allowed", len(salt), common.HashLength)
	}
	var s [32]byte
	copy(s[:], common.LeftPadBytes(salt, common.HashLength))
	return crypto.CreateAddress2(sender, s, crypto.Keccak256(initCode)), nil
}

// FromSecretKey returns the address controlled by a secp256k1 secret key
func FromSecretKey(sk []byte) (common.Address, error) {
	key, err := crypto.ToECDSA(sk)
	if err != nil {
		return common.Address{}, fmt.Errorf("invalid secret key (%v)", err)
	}
	return crypto.PubkeyToAddress(key.PublicKey), nil
}

// FromSignature recovers the signer address of a message hash.
// Recovery ids of 27 and above are reduced by 27.
func FromSignature(hash []byte, v, r, s *big.Int) (common.Address, error) {
	if len(hash) != common.HashLength {
		return common.Address{}, fmt.Errorf("hash is %d bytes, expected %d", len(hash), common.HashLength)
	}
	recID := new(big.Int).Set(v)
	if recID.Cmp(big.NewInt(27)) >= 0 {
		recID.Sub(recID, big.NewInt(27))
	}
	if !recID.IsUint64() || recID.Uint64() > 1 {
		return common.Address{}, fmt.Errorf("invalid recovery id %s", v)
	}
	if r.BitLen() > 256 || s.BitLen() > 256 {
		return common.Address{}, fmt.Errorf("signature values exceed 32 bytes")
	}
	sig := make([]byte, crypto.SignatureLength)
	r.FillBytes(sig[:32])
	s.FillBytes(sig[32:64])
	sig[crypto.RecoveryIDOffset] = byte(recID.Uint64())
	pub, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("unable to recover public key (%v)", err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}
