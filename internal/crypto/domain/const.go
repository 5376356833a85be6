package domain

// Algorithm represents the cryptographic algorithm recorded in envelope metadata.
//
// The engine supports exactly one algorithm. Decryption compares the metadata
// value against it before any key material is touched, so a tampered or future
// algorithm name is rejected rather than silently reinterpreted.
type Algorithm string

const (
	// AES256GCM represents AES-256 in Galois/Counter Mode with a 128-bit IV.
	//
	// The same construction is used for both envelope steps:
	//   - wrapping the DEK under the master key
	//   - encrypting the payload under the DEK
	//
	// Key features:
	//   - 256-bit key size
	//   - 16-byte IV (128 bits), freshly generated per step
	//   - 16-byte authentication tag, stored detached from the ciphertext
	AES256GCM Algorithm = "aes-256-gcm"
)

const (
	// KeySize is the length in bytes of master keys and DEKs.
	KeySize = 32

	// IVSize is the length in bytes of every IV generated by the engine.
	IVSize = 16

	// TagSize is the length in bytes of every GCM authentication tag.
	TagSize = 16

	// MetadataVersion is the schema version written into new envelope metadata.
	MetadataVersion = 1

	// MaxPayloadSize bounds plaintext and ciphertext accepted over HTTP.
	MaxPayloadSize = 1 << 20
)
