package providers

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"os"
	"strconv"
	"strings"
	"sync"

	jwtlib "github.com/golang-jwt/jwt/v4"
	"github.com/xy-planning-network/waypoint/jwt"
)

var _ jwt.CryptoProvider = (*KeyStore)(nil)

// PEM block type for persisted HMAC secrets,
// which have no standard encoding of their own.
const symmetricKeyPemType = "SYMMETRIC KEY"

// A keyEntry holds whatever material is known for one kid. An HMAC secret
// and an asymmetric keypair are mutually exclusive in practice but the
// entry does not enforce it; signing picks by algorithm.
type keyEntry struct {
	secret  []byte
	private any
	public  any
	cert    *x509.Certificate
}

// A KeyStore is a [jwt.CryptoProvider] keeping key material in memory,
// keyed by kid. Signature math delegates to the signing methods of
// github.com/golang-jwt/jwt.
//
// A KeyStore is safe for concurrent use.
type KeyStore struct {
	mu   sync.RWMutex
	keys map[string]*keyEntry
}

// NewKeyStore constructs an empty [*KeyStore].
func NewKeyStore() *KeyStore {
	return &KeyStore{keys: make(map[string]*keyEntry)}
}

// entry returns the keyEntry for kid, creating it when create is set.
// Callers hold the appropriate lock.
func (ks *KeyStore) entry(kid string, create bool) *keyEntry {
	e, ok := ks.keys[kid]
	if !ok && create {
		e = &keyEntry{}
		ks.keys[kid] = e
	}

	return e
}

// LoadPrivateKeyFromPemFile installs the private key in the PEM file under
// kid, deriving the matching public key. HMAC secrets persisted by
// [KeyStore.SavePrivateKeyToPemFile] load back as secrets.
func (ks *KeyStore) LoadPrivateKeyFromPemFile(kid, pemPath string) jwt.Error {
	data, err := os.ReadFile(pemPath)
	if err != nil {
		return jwt.NewError(jwt.IOError, "read private key: "+err.Error())
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return jwt.NewError(jwt.CryptoError, "no PEM block in private key file")
	}

	ks.mu.Lock()
	defer ks.mu.Unlock()
	e := ks.entry(kid, true)

	if block.Type == symmetricKeyPemType {
		e.secret = block.Bytes
		return jwt.Error{}
	}

	if key, err := jwtlib.ParseRSAPrivateKeyFromPEM(data); err == nil {
		e.private, e.public = key, &key.PublicKey
		return jwt.Error{}
	}

	if key, err := jwtlib.ParseECPrivateKeyFromPEM(data); err == nil {
		e.private, e.public = key, &key.PublicKey
		return jwt.Error{}
	}

	if key, err := jwtlib.ParseEdPrivateKeyFromPEM(data); err == nil {
		if ed, ok := key.(ed25519.PrivateKey); ok {
			e.private, e.public = ed, ed.Public()
			return jwt.Error{}
		}
	}

	return jwt.NewError(jwt.CryptoError, "unsupported private key format")
}

// LoadPublicKeyFromPemFile installs the public key in the PEM file under kid.
func (ks *KeyStore) LoadPublicKeyFromPemFile(kid, pemPath string, use jwt.Use) jwt.Error {
	data, err := os.ReadFile(pemPath)
	if err != nil {
		return jwt.NewError(jwt.IOError, "read public key: "+err.Error())
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return jwt.NewError(jwt.CryptoError, "no PEM block in public key file")
	}

	ks.mu.Lock()
	defer ks.mu.Unlock()
	e := ks.entry(kid, true)

	if block.Type == symmetricKeyPemType {
		e.secret = block.Bytes
		return jwt.Error{}
	}

	if key, err := jwtlib.ParseRSAPublicKeyFromPEM(data); err == nil {
		e.public = key
		return jwt.Error{}
	}

	if key, err := jwtlib.ParseECPublicKeyFromPEM(data); err == nil {
		e.public = key
		return jwt.Error{}
	}

	if key, err := jwtlib.ParseEdPublicKeyFromPEM(data); err == nil {
		e.public = key
		return jwt.Error{}
	}

	return jwt.NewError(jwt.CryptoError, "unsupported public key format")
}

// LoadCertificateFromPemFile installs the certificate in the PEM file
// under kid, keeping its public key for verification.
func (ks *KeyStore) LoadCertificateFromPemFile(kid, pemPath string) jwt.Error {
	data, err := os.ReadFile(pemPath)
	if err != nil {
		return jwt.NewError(jwt.CertificateNotFound, "read certificate: "+err.Error())
	}

	block, _ := pem.Decode(data)
	if block == nil || block.Type != "CERTIFICATE" {
		return jwt.NewError(jwt.CertificateNotFound, "no CERTIFICATE block in file")
	}

	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return jwt.NewError(jwt.CryptoError, "parse certificate: "+err.Error())
	}

	ks.mu.Lock()
	defer ks.mu.Unlock()
	e := ks.entry(kid, true)
	e.cert = cert
	e.public = cert.PublicKey

	return jwt.Error{}
}

// SavePrivateKeyToPemFile persists kid's private material as PEM.
// Asymmetric keys write as PKCS#8; HMAC secrets as a SYMMETRIC KEY block.
func (ks *KeyStore) SavePrivateKeyToPemFile(kid, pemPath string) jwt.Error {
	ks.mu.RLock()
	e := ks.entry(kid, false)
	ks.mu.RUnlock()

	if e == nil {
		return jwt.NewError(jwt.KeyNotFound, "unknown kid: "+kid)
	}

	var block *pem.Block
	switch {
	case e.secret != nil:
		block = &pem.Block{Type: symmetricKeyPemType, Bytes: e.secret}
	case e.private != nil:
		der, err := x509.MarshalPKCS8PrivateKey(e.private)
		if err != nil {
			return jwt.NewError(jwt.CryptoError, "marshal private key: "+err.Error())
		}
		block = &pem.Block{Type: "PRIVATE KEY", Bytes: der}
	default:
		return jwt.NewError(jwt.KeyNotFound, "no private material for kid: "+kid)
	}

	if err := os.WriteFile(pemPath, pem.EncodeToMemory(block), 0o600); err != nil {
		return jwt.NewError(jwt.IOError, "write private key: "+err.Error())
	}

	return jwt.Error{}
}

// SavePublicKeyToPemFile persists kid's public material as PEM. For HMAC
// keys the secret itself is written so a later load restores signing.
func (ks *KeyStore) SavePublicKeyToPemFile(kid, pemPath string, use jwt.Use) jwt.Error {
	ks.mu.RLock()
	e := ks.entry(kid, false)
	ks.mu.RUnlock()

	if e == nil {
		return jwt.NewError(jwt.KeyNotFound, "unknown kid: "+kid)
	}

	var block *pem.Block
	switch {
	case e.secret != nil:
		block = &pem.Block{Type: symmetricKeyPemType, Bytes: e.secret}
	case e.public != nil:
		der, err := x509.MarshalPKIXPublicKey(e.public)
		if err != nil {
			return jwt.NewError(jwt.CryptoError, "marshal public key: "+err.Error())
		}
		block = &pem.Block{Type: "PUBLIC KEY", Bytes: der}
	default:
		return jwt.NewError(jwt.KeyNotFound, "no public material for kid: "+kid)
	}

	if err := os.WriteFile(pemPath, pem.EncodeToMemory(block), 0o644); err != nil {
		return jwt.NewError(jwt.IOError, "write public key: "+err.Error())
	}

	return jwt.Error{}
}

// GenerateKeyPair creates fresh key material for the algorithm under kid,
// replacing whatever the kid held before. For RS256, params may carry the
// modulus size in bits; the default is 2048.
func (ks *KeyStore) GenerateKeyPair(kid string, alg jwt.Alg, params string) jwt.Error {
	entry := &keyEntry{}

	switch alg {
	case jwt.HS256:
		secret := make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return jwt.NewError(jwt.CryptoError, "generate secret: "+err.Error())
		}
		entry.secret = secret

	case jwt.RS256:
		bits := 2048
		if params != "" {
			parsed, err := strconv.Atoi(params)
			if err != nil {
				return jwt.NewError(jwt.CryptoError, "bad RSA params: "+params)
			}
			bits = parsed
		}
		key, err := rsa.GenerateKey(rand.Reader, bits)
		if err != nil {
			return jwt.NewError(jwt.CryptoError, "generate RSA key: "+err.Error())
		}
		entry.private, entry.public = key, &key.PublicKey

	case jwt.ES256:
		key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		if err != nil {
			return jwt.NewError(jwt.CryptoError, "generate ECDSA key: "+err.Error())
		}
		entry.private, entry.public = key, &key.PublicKey

	case jwt.EdDSA:
		pub, priv, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return jwt.NewError(jwt.CryptoError, "generate Ed25519 key: "+err.Error())
		}
		entry.private, entry.public = priv, pub

	default:
		return jwt.NewError(jwt.UnsupportedAlg, "cannot generate keys for algorithm")
	}

	ks.mu.Lock()
	ks.keys[kid] = entry
	ks.mu.Unlock()

	return jwt.Error{}
}

// RemoveKey drops all material held under kid.
func (ks *KeyStore) RemoveKey(kid string) jwt.Error {
	ks.mu.Lock()
	delete(ks.keys, kid)
	ks.mu.Unlock()

	return jwt.Error{}
}

// Sign produces the raw signature over data under (alg, kid).
func (ks *KeyStore) Sign(alg jwt.Alg, kid string, data []byte) ([]byte, jwt.Error) {
	ks.mu.RLock()
	e := ks.entry(kid, false)
	ks.mu.RUnlock()

	if e == nil {
		return nil, jwt.NewError(jwt.KeyNotFound, "unknown kid: "+kid)
	}

	method := jwtlib.GetSigningMethod(alg.String())
	if method == nil {
		return nil, jwt.NewError(jwt.UnsupportedAlg, "no signing method for algorithm")
	}

	key, jerr := e.signingKey(alg)
	if !jerr.Ok() {
		return nil, jerr
	}

	// NOTE: jwt/v4 signing methods emit the signature already
	// base64url-encoded; undo that to honor the raw-bytes contract.
	sigText, err := method.Sign(string(data), key)
	if err != nil {
		return nil, jwt.NewError(jwt.CryptoError, "sign: "+err.Error())
	}

	signature, err := base64.RawURLEncoding.DecodeString(sigText)
	if err != nil {
		return nil, jwt.NewError(jwt.CryptoError, "decode signature: "+err.Error())
	}

	return signature, jwt.Error{}
}

// Verify checks the raw signature over data under (alg, kid).
func (ks *KeyStore) Verify(alg jwt.Alg, kid string, data, signature []byte) jwt.Error {
	ks.mu.RLock()
	e := ks.entry(kid, false)
	ks.mu.RUnlock()

	if e == nil {
		return jwt.NewError(jwt.KeyNotFound, "unknown kid: "+kid)
	}

	method := jwtlib.GetSigningMethod(alg.String())
	if method == nil {
		return jwt.NewError(jwt.UnsupportedAlg, "no signing method for algorithm")
	}

	key, jerr := e.verifyingKey(alg)
	if !jerr.Ok() {
		return jerr
	}

	sigText := base64.RawURLEncoding.EncodeToString(signature)
	if err := method.Verify(string(data), sigText, key); err != nil {
		if errors.Is(err, jwtlib.ErrInvalidKeyType) || errors.Is(err, jwtlib.ErrInvalidKey) {
			return jwt.NewError(jwt.CryptoError, "verify: "+err.Error())
		}

		return jwt.NewError(jwt.SignatureMismatch, "signature verification failed")
	}

	return jwt.Error{}
}

// Base64URLEncode encodes data without padding per RFC 4648 §5.
func (ks *KeyStore) Base64URLEncode(data []byte) (string, jwt.Error) {
	return base64.RawURLEncoding.EncodeToString(data), jwt.Error{}
}

// Base64URLDecode decodes text, accepting both padded and unpadded forms.
func (ks *KeyStore) Base64URLDecode(text string) ([]byte, jwt.Error) {
	data, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(text, "="))
	if err != nil {
		return nil, jwt.NewError(jwt.InvalidBase64Url, "decode base64url: "+err.Error())
	}

	return data, jwt.Error{}
}

func (e *keyEntry) signingKey(alg jwt.Alg) (any, jwt.Error) {
	if alg == jwt.HS256 {
		if e.secret == nil {
			return nil, jwt.NewError(jwt.KeyNotFound, "no HMAC secret for kid")
		}

		return e.secret, jwt.Error{}
	}

	if e.private == nil {
		return nil, jwt.NewError(jwt.KeyNotFound, "no private key for kid")
	}

	return e.private, jwt.Error{}
}

func (e *keyEntry) verifyingKey(alg jwt.Alg) (any, jwt.Error) {
	if alg == jwt.HS256 {
		if e.secret == nil {
			return nil, jwt.NewError(jwt.KeyNotFound, "no HMAC secret for kid")
		}

		return e.secret, jwt.Error{}
	}

	if e.public == nil {
		return nil, jwt.NewError(jwt.KeyNotFound, "no public key for kid")
	}

	return e.public, jwt.Error{}
}
