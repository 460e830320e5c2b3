package gpg

//go:generate mockgen -source=interfaces.go -destination=../mock/engine_mock.go -package=mock

import "context"

// Engine is the narrow contract the vault core holds against the external
// OpenPGP implementation. The core never inspects key material: it hands
// over a recipient identifier and plaintext and gets ciphertext back, or
// the reverse.
//
// Both calls may block the calling goroutine for an unbounded time, since
// a subprocess backend can sit in an interactive pinentry prompt. That is a
// deliberate blocking boundary; callers inside event-driven UIs must
// invoke the engine from a context that tolerates blocking.
type Engine interface {
	// Encrypt encrypts plaintext for the given recipient identifier
	// (typically an email bound to a key in the external keyring).
	// Returns ErrRecipientNotFound when the identifier resolves to no
	// usable key, ErrEncryptFailed for any other engine failure.
	Encrypt(ctx context.Context, recipient string, plaintext []byte) ([]byte, error)

	// Decrypt decrypts a ciphertext envelope previously produced by
	// Encrypt. Wrong key, corrupted ciphertext and refused passphrase all
	// surface as ErrDecryptFailed; the engine's diagnostics are opaque to
	// the core.
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
}
