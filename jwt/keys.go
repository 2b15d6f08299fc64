package jwt

import (
	"os"
	"path/filepath"
)

// Key-management passthroughs. The engine holds no key state of its own;
// the crypto provider is the single source of truth.

func (e *Engine) LoadPrivateKeyFromPemFile(kid, pemPath string) Error {
	return e.crypto.LoadPrivateKeyFromPemFile(kid, pemPath)
}

func (e *Engine) LoadPublicKeyFromPemFile(kid, pemPath string, use Use) Error {
	return e.crypto.LoadPublicKeyFromPemFile(kid, pemPath, use)
}

func (e *Engine) LoadCertificateFromPemFile(kid, pemPath string) Error {
	return e.crypto.LoadCertificateFromPemFile(kid, pemPath)
}

func (e *Engine) SavePrivateKeyToPemFile(kid, pemPath string) Error {
	return e.crypto.SavePrivateKeyToPemFile(kid, pemPath)
}

func (e *Engine) SavePublicKeyToPemFile(kid, pemPath string, use Use) Error {
	return e.crypto.SavePublicKeyToPemFile(kid, pemPath, use)
}

func (e *Engine) GenerateKeyPair(kid string, alg Alg, params string) Error {
	return e.crypto.GenerateKeyPair(kid, alg, params)
}

func (e *Engine) RemoveKey(kid string) Error {
	return e.crypto.RemoveKey(kid)
}

// DefaultPrivateKeyFile and DefaultPublicKeyFile name the PEM files
// [Engine.EnsureKeyPairInBinaryDir] works with by convention.
const (
	DefaultPrivateKeyFile = "jwt.private.pem"
	DefaultPublicKeyFile  = "jwt.public.pem"
)

// EnsureKeyPairInBinaryDir makes sure a keypair under kid is available,
// persisted next to the running binary.
//
// When both PEM files already exist there, they are loaded (private then
// public). Otherwise a fresh keypair is generated under kid and saved
// (private then public). The first failure is returned.
func (e *Engine) EnsureKeyPairInBinaryDir(kid string, alg Alg, privName, pubName string, use Use, params string) Error {
	dir := binaryDir()
	privPath := filepath.Join(dir, privName)
	pubPath := filepath.Join(dir, pubName)

	if fileExists(privPath) && fileExists(pubPath) {
		if err := e.crypto.LoadPrivateKeyFromPemFile(kid, privPath); !err.Ok() {
			return err
		}

		return e.crypto.LoadPublicKeyFromPemFile(kid, pubPath, use)
	}

	if err := e.crypto.GenerateKeyPair(kid, alg, params); !err.Ok() {
		return err
	}

	if err := e.crypto.SavePrivateKeyToPemFile(kid, privPath); !err.Ok() {
		return err
	}

	return e.crypto.SavePublicKeyToPemFile(kid, pubPath, use)
}

// binaryDir resolves the directory holding the running executable,
// falling back to the current working directory.
func binaryDir() string {
	if exe, err := os.Executable(); err == nil {
		return filepath.Dir(exe)
	}

	if wd, err := os.Getwd(); err == nil {
		return wd
	}

	return "."
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
