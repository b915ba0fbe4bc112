package service

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRSAKeypairProvisioner_Provision(t *testing.T) {
	provisioner := NewRSAKeypairProvisioner()

	publicKeyPEM, privateKeyPEM, err := provisioner.Provision()
	require.NoError(t, err)

	publicBlock, _ := pem.Decode([]byte(publicKeyPEM))
	require.NotNil(t, publicBlock)
	assert.Equal(t, "PUBLIC KEY", publicBlock.Type)

	privateBlock, _ := pem.Decode([]byte(privateKeyPEM))
	require.NotNil(t, privateBlock)
	assert.Equal(t, "PRIVATE KEY", privateBlock.Type)

	parsedPublic, err := x509.ParsePKIXPublicKey(publicBlock.Bytes)
	require.NoError(t, err)
	publicKey, ok := parsedPublic.(*rsa.PublicKey)
	require.True(t, ok)

	parsedPrivate, err := x509.ParsePKCS8PrivateKey(privateBlock.Bytes)
	require.NoError(t, err)
	privateKey, ok := parsedPrivate.(*rsa.PrivateKey)
	require.True(t, ok)

	// Both halves belong to the same keypair
	assert.Equal(t, publicKey.N, privateKey.PublicKey.N)
	assert.Equal(t, rsaKeyBits, privateKey.N.BitLen())
}

func TestRSAKeypairProvisioner_UniquePerCall(t *testing.T) {
	provisioner := NewRSAKeypairProvisioner()

	public1, private1, err := provisioner.Provision()
	require.NoError(t, err)
	public2, private2, err := provisioner.Provision()
	require.NoError(t, err)

	assert.NotEqual(t, public1, public2)
	assert.NotEqual(t, private1, private2)
}
