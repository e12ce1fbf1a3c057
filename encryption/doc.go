// Package encryption provides symmetric payload encryption for event
// streams delivered over shared infrastructure.
//
// Keys are derived from passphrases using SHA-256 hashing, producing
// 256-bit keys for AES-256-GCM (default) or ChaCha20-Poly1305
// authenticated encryption. Ciphertext is base64(nonce || sealed).
//
// # Usage
//
//	enc, err := encryption.New("my-secret-passphrase")
//	ciphertext, err := enc.Encrypt(plaintext)
//	plaintext, err := enc.Decrypt(ciphertext)
//
//	// ChaCha20-Poly1305 instead of AES-GCM:
//	enc, err = encryption.New(key, encryption.WithAlgorithm(encryption.AlgorithmChaCha20))
//
// An Encryptor plugs into sse.Publish (seal before broadcast) and
// sse.Source (open on receive) to keep payloads sealed end to end.
package encryption
