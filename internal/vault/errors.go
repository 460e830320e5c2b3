package vault

import "errors"

// Sentinel errors for the storage layer. Callers should use [errors.Is]
// to match against these values; the wrapped message carries path context
// and, for not-found cases, a remediation hint the front end can show.
var (
	// ErrVaultNotFound is returned when a vault directory is missing.
	// Recoverable: the front end should offer to create the vault.
	ErrVaultNotFound = errors.New("vault does not exist")

	// ErrAccountNotFound is returned when an account directory or its
	// data.gpg envelope is missing. Recoverable: offer creation.
	ErrAccountNotFound = errors.New("account does not exist")

	// ErrRecipientInvalid is returned when the vault's recipient file is
	// missing, empty, or names a key the engine cannot resolve. Fatal for
	// the attempted write path.
	ErrRecipientInvalid = errors.New("vault recipient is missing or unresolvable")

	// ErrMalformedData is returned when a decrypted envelope does not
	// parse as "<username>:<password>": missing separator or empty
	// password. Signals on-disk corruption; not retryable.
	ErrMalformedData = errors.New("decrypted data is malformed")
)
