// Package keys provides key-pair provisioning for the handshake roles.
//
// Pairs are provisioned out-of-band, before any handshake begins: the
// vehicle receives only the public half, the fob only the private half.
//
// # Key File Format
//
// Keys are stored as PKCS#1 PEM, two files per pair:
//
//	<name>.public.pem  - "RSA PUBLIC KEY" block
//	<name>.private.pem - "RSA PRIVATE KEY" block
//
// # Provisioning
//
// Generate and persist a pair:
//
//	privateKey, err := keys.Generate(2048)
//	if err != nil {
//		log.Fatal(err)
//	}
//	privPath, pubPath, err := keys.SavePair(dir, "fob", privateKey)
//
// Or load previously provisioned halves:
//
//	privateKey, err := keys.LoadPrivateKey(privPath)
//	publicKey, err := keys.LoadPublicKey(pubPath)
package keys

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
)

const (
	privateBlockType = "RSA PRIVATE KEY"
	publicBlockType  = "RSA PUBLIC KEY"
)

// Generate creates a fresh RSA key pair with the given modulus size.
func Generate(bits int) (*rsa.PrivateKey, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA key pair: %w", err)
	}
	return privateKey, nil
}

// EncodePrivatePEM serializes the private half as a PKCS#1 PEM block.
func EncodePrivatePEM(privateKey *rsa.PrivateKey) []byte {
	return pem.EncodeToMemory(&pem.Block{
		Type:  privateBlockType,
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	})
}

// EncodePublicPEM serializes the public half as a PKCS#1 PEM block.
func EncodePublicPEM(publicKey *rsa.PublicKey) []byte {
	return pem.EncodeToMemory(&pem.Block{
		Type:  publicBlockType,
		Bytes: x509.MarshalPKCS1PublicKey(publicKey),
	})
}

// SavePair writes the two halves of a pair to dir and returns the
// private and public file paths. The private file is written with owner
// only permissions.
func SavePair(dir, name string, privateKey *rsa.PrivateKey) (string, string, error) {
	privPath := filepath.Join(dir, name+".private.pem")
	pubPath := filepath.Join(dir, name+".public.pem")

	if err := os.WriteFile(privPath, EncodePrivatePEM(privateKey), 0600); err != nil {
		return "", "", fmt.Errorf("failed to write private key file: %w", err)
	}
	if err := os.WriteFile(pubPath, EncodePublicPEM(&privateKey.PublicKey), 0644); err != nil {
		return "", "", fmt.Errorf("failed to write public key file: %w", err)
	}

	return privPath, pubPath, nil
}

// LoadPrivateKey reads the fob's half from a PKCS#1 PEM file.
func LoadPrivateKey(path string) (*rsa.PrivateKey, error) {
	block, err := readBlock(path, privateBlockType)
	if err != nil {
		return nil, err
	}

	privateKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	return privateKey, nil
}

// LoadPublicKey reads the vehicle's half from a PKCS#1 PEM file.
func LoadPublicKey(path string) (*rsa.PublicKey, error) {
	block, err := readBlock(path, publicBlockType)
	if err != nil {
		return nil, err
	}

	publicKey, err := x509.ParsePKCS1PublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}
	return publicKey, nil
}

func readBlock(path, blockType string) (*pem.Block, error) {
	pemBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, fmt.Errorf("no PEM block found in %s", path)
	}
	if block.Type != blockType {
		return nil, fmt.Errorf("unexpected PEM block type %q, expected %q", block.Type, blockType)
	}
	return block, nil
}
