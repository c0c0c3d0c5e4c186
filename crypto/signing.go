// Package crypto provides the signing primitive of the handshake.
//
// This package provides:
//   - SHA256 digest of the freshness-token bytes
//   - Raw RSA PKCS#1 v1.5 signing of that digest
//   - Uniform boolean verification
//
// # Signing
//
// The fob signs the digest of the freshness token:
//
//	sig, err := crypto.Sign(privateKey, crypto.Digest(token[:]))
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Verification
//
// The vehicle recovers the padded block with the public key and compares
// it against the independently recomputed digest:
//
//	valid := crypto.Verify(publicKey, crypto.Digest(token[:]), sig)
//
// Verify collapses every failure cause (wrong block size, bad padding,
// digest mismatch) into false, so a caller cannot tell why a signature
// was rejected.
//
// The padding is deterministic and no randomization is involved: the same
// token always produces the same signature block, sized to the key
// modulus.
package crypto

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"fmt"
)

// DigestLength is the size of the digest the signature covers.
const DigestLength = sha256.Size

// Digest hashes the freshness-token bytes. The signature covers this
// digest and nothing else; the kind tag is not authenticated.
func Digest(data []byte) []byte {
	hash := sha256.Sum256(data)
	return hash[:]
}

// Sign applies the raw private-key transform to digest with
// deterministic PKCS#1 v1.5 padding. The result is a single block sized
// to the key modulus.
func Sign(privateKey *rsa.PrivateKey, digest []byte) ([]byte, error) {
	// crypto.Hash(0) signs the digest bytes directly, without a
	// DigestInfo prefix.
	sig, err := rsa.SignPKCS1v15(nil, privateKey, crypto.Hash(0), digest)
	if err != nil {
		return nil, fmt.Errorf("failed to sign digest: %w", err)
	}
	return sig, nil
}

// Verify applies the inverse public-key transform to sig and compares
// the recovered block against digest over its full length. All failure
// causes report false.
func Verify(publicKey *rsa.PublicKey, digest []byte, sig []byte) bool {
	return rsa.VerifyPKCS1v15(publicKey, crypto.Hash(0), digest, sig) == nil
}

// BlockSize returns the signature block size produced under publicKey.
func BlockSize(publicKey *rsa.PublicKey) int {
	return publicKey.Size()
}
