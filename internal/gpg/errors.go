package gpg

import "errors"

// Sentinel errors returned by Engine implementations. Callers should use
// [errors.Is] to match against these values; the wrapped message carries
// the engine's diagnostic where one is safe to surface.
var (
	// ErrRecipientNotFound is returned when the recipient identifier does
	// not resolve to a usable key in the engine's keyring. Fatal for the
	// attempted write path.
	ErrRecipientNotFound = errors.New("recipient not found in keyring")

	// ErrEncryptFailed is returned for engine failures during encryption
	// other than an unresolvable recipient.
	ErrEncryptFailed = errors.New("failed to encrypt")

	// ErrDecryptFailed is returned for any decryption failure: wrong or
	// expired key, corrupted ciphertext, refused passphrase. The cause is
	// deliberately not distinguished.
	ErrDecryptFailed = errors.New("failed to decrypt")
)
