package providers_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xy-planning-network/waypoint/jwt"
	"github.com/xy-planning-network/waypoint/jwt/providers"
)

func TestKeyStoreSignVerify(t *testing.T) {
	tcs := []struct {
		name   string
		alg    jwt.Alg
		params string
	}{
		{"HS256", jwt.HS256, ""},
		{"RS256", jwt.RS256, "1024"},
		{"ES256", jwt.ES256, ""},
		{"EdDSA", jwt.EdDSA, ""},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			ks := providers.NewKeyStore()
			require.True(t, ks.GenerateKeyPair("k1", tc.alg, tc.params).Ok())
			data := []byte("header.payload")

			// Act
			signature, err := ks.Sign(tc.alg, "k1", data)

			// Assert
			require.True(t, err.Ok(), err.Error())
			require.NotEmpty(t, signature)
			require.True(t, ks.Verify(tc.alg, "k1", data, signature).Ok())

			tampered := append([]byte{}, data...)
			tampered[0] ^= 0xff
			require.Equal(t, jwt.SignatureMismatch, ks.Verify(tc.alg, "k1", tampered, signature).Code)
		})
	}
}

func TestKeyStoreUnknownKid(t *testing.T) {
	// Arrange
	ks := providers.NewKeyStore()

	// Act + Assert
	_, err := ks.Sign(jwt.HS256, "nope", []byte("data"))
	require.Equal(t, jwt.KeyNotFound, err.Code)
	require.Equal(t, jwt.KeyNotFound, ks.Verify(jwt.HS256, "nope", []byte("data"), nil).Code)
	require.Equal(t, jwt.KeyNotFound, ks.SavePrivateKeyToPemFile("nope", "anywhere.pem").Code)
	require.Equal(t, jwt.KeyNotFound, ks.SavePublicKeyToPemFile("nope", "anywhere.pem", jwt.UseSig).Code)
}

func TestKeyStoreRemoveKey(t *testing.T) {
	// Arrange
	ks := providers.NewKeyStore()
	require.True(t, ks.GenerateKeyPair("k1", jwt.HS256, "").Ok())

	// Act
	require.True(t, ks.RemoveKey("k1").Ok())

	// Assert
	_, err := ks.Sign(jwt.HS256, "k1", []byte("data"))
	require.Equal(t, jwt.KeyNotFound, err.Code)
}

func TestKeyStoreGenerateUnsupported(t *testing.T) {
	ks := providers.NewKeyStore()
	require.Equal(t, jwt.UnsupportedAlg, ks.GenerateKeyPair("k1", jwt.Alg(99), "").Code)
}

func TestKeyStorePemRoundTrip(t *testing.T) {
	tcs := []struct {
		name   string
		alg    jwt.Alg
		params string
	}{
		{"HS256", jwt.HS256, ""},
		{"RS256", jwt.RS256, "1024"},
		{"ES256", jwt.ES256, ""},
		{"EdDSA", jwt.EdDSA, ""},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			dir := t.TempDir()
			privPath := filepath.Join(dir, "key.private.pem")
			pubPath := filepath.Join(dir, "key.public.pem")

			orig := providers.NewKeyStore()
			require.True(t, orig.GenerateKeyPair("k1", tc.alg, tc.params).Ok())
			require.True(t, orig.SavePrivateKeyToPemFile("k1", privPath).Ok())
			require.True(t, orig.SavePublicKeyToPemFile("k1", pubPath, jwt.UseSig).Ok())

			// Act
			restored := providers.NewKeyStore()
			require.True(t, restored.LoadPrivateKeyFromPemFile("k1", privPath).Ok())
			require.True(t, restored.LoadPublicKeyFromPemFile("k1", pubPath, jwt.UseSig).Ok())

			// Assert: the original verifies what the restored store signs
			data := []byte("header.payload")
			signature, err := restored.Sign(tc.alg, "k1", data)
			require.True(t, err.Ok(), err.Error())
			require.True(t, orig.Verify(tc.alg, "k1", data, signature).Ok())
		})
	}
}

func TestKeyStoreLoadFailures(t *testing.T) {
	// Arrange
	ks := providers.NewKeyStore()
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.pem")
	require.NoError(t, os.WriteFile(garbage, []byte("not pem at all"), 0o600))

	// Act + Assert
	require.Equal(t, jwt.IOError, ks.LoadPrivateKeyFromPemFile("k1", filepath.Join(dir, "missing.pem")).Code)
	require.Equal(t, jwt.IOError, ks.LoadPublicKeyFromPemFile("k1", filepath.Join(dir, "missing.pem"), jwt.UseSig).Code)
	require.Equal(t, jwt.CertificateNotFound, ks.LoadCertificateFromPemFile("k1", filepath.Join(dir, "missing.pem")).Code)
	require.Equal(t, jwt.CryptoError, ks.LoadPrivateKeyFromPemFile("k1", garbage).Code)
	require.Equal(t, jwt.CryptoError, ks.LoadPublicKeyFromPemFile("k1", garbage, jwt.UseSig).Code)
}

func TestKeyStoreLoadCertificate(t *testing.T) {
	// Arrange: a self-signed certificate over a fresh P-256 key
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "waypoint-test"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	require.NoError(t, err)

	certPath := filepath.Join(t.TempDir(), "cert.pem")
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	require.NoError(t, os.WriteFile(certPath, certPEM, 0o644))

	// a store holding the private key signs; a store fed only the
	// certificate must verify
	signer := providers.NewKeyStore()
	privDER, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	privPath := filepath.Join(t.TempDir(), "key.pem")
	require.NoError(t, os.WriteFile(privPath, pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER}), 0o600))
	require.True(t, signer.LoadPrivateKeyFromPemFile("k1", privPath).Ok())

	verifier := providers.NewKeyStore()

	// Act
	loadErr := verifier.LoadCertificateFromPemFile("k1", certPath)

	// Assert
	require.True(t, loadErr.Ok(), loadErr.Error())

	data := []byte("header.payload")
	signature, signErr := signer.Sign(jwt.ES256, "k1", data)
	require.True(t, signErr.Ok(), signErr.Error())
	require.True(t, verifier.Verify(jwt.ES256, "k1", data, signature).Ok())
}

func TestKeyStoreBase64(t *testing.T) {
	// Arrange
	ks := providers.NewKeyStore()

	// Act
	encoded, err := ks.Base64URLEncode([]byte("waypoint"))
	require.True(t, err.Ok())

	// Assert
	require.Equal(t, "d2F5cG9pbnQ", encoded)

	decoded, err := ks.Base64URLDecode(encoded)
	require.True(t, err.Ok())
	require.Equal(t, []byte("waypoint"), decoded)

	// padded input is tolerated
	decoded, err = ks.Base64URLDecode("d2F5cG9pbnQ=")
	require.True(t, err.Ok())
	require.Equal(t, []byte("waypoint"), decoded)

	_, err = ks.Base64URLDecode("!!!")
	require.Equal(t, jwt.InvalidBase64Url, err.Code)
}
