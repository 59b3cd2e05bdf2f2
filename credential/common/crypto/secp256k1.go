package crypto

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/ethereum/go-ethereum/crypto"
)

// Sign signs a digest using ECDSA over secp256k1, producing a 65-byte
// [r, s, v] signature.
func Sign(digest []byte, hexPrivateKey string) ([]byte, error) {
	privKey, err := crypto.HexToECDSA(hexPrivateKey)
	if err != nil {
		return nil, fmt.Errorf("ecdsa: invalid private key: %w", err)
	}

	signature, err := crypto.Sign(digest, privKey)
	if err != nil {
		return nil, fmt.Errorf("ecdsa: sign error: %w", err)
	}
	if len(signature) != 65 {
		return nil, fmt.Errorf("ecdsa: invalid signature length, expected 65 bytes")
	}
	return signature, nil
}

// VerifySignature checks a hex-encoded secp256k1 signature over a digest.
// Compressed public keys are accepted and expanded before verification; the
// signature may be 64 bytes (r, s) or 65 bytes (r, s, v).
func VerifySignature(publicKeyHex, signatureHex string, digest []byte) (bool, error) {
	pubKeyBytes, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return false, fmt.Errorf("failed to decode public key: %w", err)
	}
	if len(pubKeyBytes) == 0 {
		return false, fmt.Errorf("public key is empty")
	}

	if pubKeyBytes[0] == 0x02 || pubKeyBytes[0] == 0x03 {
		pubKeyParsed, err := btcec.ParsePubKey(pubKeyBytes)
		if err != nil {
			return false, fmt.Errorf("failed to parse compressed public key: %w", err)
		}
		pubKeyBytes = pubKeyParsed.SerializeUncompressed()
	}

	pubKey, err := crypto.UnmarshalPubkey(pubKeyBytes)
	if err != nil {
		return false, fmt.Errorf("failed to parse public key: %w", err)
	}

	sigBytes, err := hex.DecodeString(signatureHex)
	if err != nil {
		return false, fmt.Errorf("failed to decode signature: %w", err)
	}

	var rsBytes []byte
	switch len(sigBytes) {
	case 65:
		rsBytes = sigBytes[:64]
	case 64:
		rsBytes = sigBytes
	default:
		return false, fmt.Errorf("invalid signature length: got %d, want 64 or 65 bytes", len(sigBytes))
	}

	r := new(big.Int).SetBytes(rsBytes[:32])
	s := new(big.Int).SetBytes(rsBytes[32:])

	return ecdsa.Verify(pubKey, digest, r, s), nil
}

// VerifyKeyPairFromHex reports whether a hex private key and hex public key
// form a matching secp256k1 pair.
func VerifyKeyPairFromHex(privateKeyHex, publicKeyHex string) (bool, error) {
	privateKey, err := crypto.HexToECDSA(privateKeyHex)
	if err != nil {
		return false, fmt.Errorf("failed to convert private key hex: %w", err)
	}

	publicKeyBytes, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return false, fmt.Errorf("failed to decode public key hex: %w", err)
	}

	if len(publicKeyBytes) == 33 && (publicKeyBytes[0] == 0x02 || publicKeyBytes[0] == 0x03) {
		pubKeyParsed, err := btcec.ParsePubKey(publicKeyBytes)
		if err != nil {
			return false, fmt.Errorf("failed to parse compressed public key: %w", err)
		}
		publicKeyBytes = pubKeyParsed.SerializeUncompressed()
	}

	publicKey, err := crypto.UnmarshalPubkey(publicKeyBytes)
	if err != nil {
		return false, fmt.Errorf("failed to unmarshal public key: %w", err)
	}

	derived := &privateKey.PublicKey
	return derived.X.Cmp(publicKey.X) == 0 && derived.Y.Cmp(publicKey.Y) == 0, nil
}

// PublicKeyHexFromPrivate derives the uncompressed hex public key for a hex
// private key.
func PublicKeyHexFromPrivate(privateKeyHex string) (string, error) {
	privateKey, err := crypto.HexToECDSA(privateKeyHex)
	if err != nil {
		return "", fmt.Errorf("failed to convert private key hex: %w", err)
	}
	return hex.EncodeToString(crypto.FromECDSAPub(&privateKey.PublicKey)), nil
}
