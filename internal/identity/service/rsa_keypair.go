package service

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

// rsaKeyBits is the modulus size for provisioned keypairs. 2048 bits leaves
// ample room for a 32-byte symmetric key under OAEP/SHA-256 padding.
const rsaKeyBits = 2048

// rsaKeypairProvisioner implements KeypairProvisioner with RSA keypairs.
type rsaKeypairProvisioner struct{}

// NewRSAKeypairProvisioner creates a KeypairProvisioner generating RSA-2048
// keypairs, PEM-encoded as PKIX (public) and PKCS#8 (private).
func NewRSAKeypairProvisioner() KeypairProvisioner {
	return &rsaKeypairProvisioner{}
}

// Provision generates a fresh RSA keypair.
func (p *rsaKeypairProvisioner) Provision() (string, string, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, rsaKeyBits)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate keypair: %w", err)
	}

	privateDER, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal private key: %w", err)
	}

	publicDER, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal public key: %w", err)
	}

	privatePEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privateDER})
	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicDER})

	return string(publicPEM), string(privatePEM), nil
}
