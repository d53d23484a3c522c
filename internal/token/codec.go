// SPDX-License-Identifier: Apache-2.0

// Package token implements the encrypted connection-token codec understood by
// the guacamole-lite gateway.
//
// A token is built in two layers:
//
//	plaintext  = JSON(descriptor)
//	ciphertext = AES-256-CBC(PKCS#7(plaintext), key, random IV)
//	envelope   = JSON({"iv": base64(IV), "value": base64(ciphertext)})
//	token      = base64(envelope)
//
// The field names, the double base64 pass, and the cipher parameters are a
// bit-exact wire contract with the gateway and must not change.
package token

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
)

// KeyLength is the required secret key size in bytes. The gateway expects a
// 32-character ASCII key used directly as the AES-256 key material (no hex or
// base64 interpretation).
const KeyLength = 32

// envelope is the intermediate two-field structure wrapping the IV and the
// ciphertext before the final base64 pass.
type envelope struct {
	IV    string `json:"iv"`
	Value string `json:"value"`
}

// Codec encrypts connection descriptors into opaque tokens and decrypts them
// back. The key is validated once at construction and never mutated, so a
// single Codec is safe for concurrent use.
type Codec struct {
	key []byte
}

// NewCodec constructs a [Codec] from raw key material. The key must be
// exactly [KeyLength] bytes; any other length returns [ErrKeyLength] before
// any cipher state is created.
func NewCodec(key []byte) (*Codec, error) {
	if len(key) != KeyLength {
		return nil, fmt.Errorf("%w: got %d", ErrKeyLength, len(key))
	}

	c := &Codec{key: make([]byte, KeyLength)}
	copy(c.key, key)
	return c, nil
}

// Encrypt serializes descriptor to JSON and encrypts it into an opaque token
// string. A fresh random IV is generated on every call, so encrypting the
// same descriptor twice yields different tokens that decrypt to the same
// value. The output uses only the standard base64 alphabet and is safe to
// place in a URL query parameter after percent-encoding.
func (c *Codec) Encrypt(descriptor any) (string, error) {
	// 1. Serialize the descriptor
	plaintext, err := json.Marshal(descriptor)
	if err != nil {
		return "", fmt.Errorf("marshal descriptor: %w", err)
	}

	// 2. Fresh random IV, one per call
	iv := make([]byte, aes.BlockSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("generate iv: %w", err)
	}

	// 3. Pad to the block size and encrypt in CBC mode
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	// 4. Wrap IV and ciphertext into the envelope, then base64 the whole thing
	env := envelope{
		IV:    base64.StdEncoding.EncodeToString(iv),
		Value: base64.StdEncoding.EncodeToString(ciphertext),
	}

	envJSON, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("marshal envelope: %w", err)
	}

	return base64.StdEncoding.EncodeToString(envJSON), nil
}

// Decrypt reverses [Codec.Encrypt]: it peels both base64 layers, parses the
// envelope, decrypts the ciphertext with the embedded IV, strips the padding,
// and unmarshals the plaintext JSON into target. target must be a non-nil
// pointer, same as for [encoding/json.Unmarshal].
//
// Every failure mode returns an error wrapping [ErrDecode]; target is never
// left holding a partial descriptor on error.
func (c *Codec) Decrypt(tok string, target any) error {
	// 1. Outer base64 layer
	envJSON, err := base64.StdEncoding.DecodeString(tok)
	if err != nil {
		return fmt.Errorf("%w: outer base64: %v", ErrMalformedToken, err)
	}

	// 2. Envelope fields
	var env envelope
	if err := json.Unmarshal(envJSON, &env); err != nil {
		return fmt.Errorf("%w: envelope json: %v", ErrMalformedToken, err)
	}
	if env.IV == "" || env.Value == "" {
		return fmt.Errorf("%w: missing iv or value field", ErrMalformedToken)
	}

	iv, err := base64.StdEncoding.DecodeString(env.IV)
	if err != nil {
		return fmt.Errorf("%w: iv base64: %v", ErrMalformedToken, err)
	}
	if len(iv) != aes.BlockSize {
		return fmt.Errorf("%w: iv length %d", ErrMalformedToken, len(iv))
	}

	ciphertext, err := base64.StdEncoding.DecodeString(env.Value)
	if err != nil {
		return fmt.Errorf("%w: value base64: %v", ErrMalformedToken, err)
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return fmt.Errorf("%w: got %d bytes", ErrCiphertextLength, len(ciphertext))
	}

	// 3. Decrypt and strip padding
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return fmt.Errorf("create cipher: %w", err)
	}

	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)

	plaintext, err := pkcs7Unpad(padded, aes.BlockSize)
	if err != nil {
		return err
	}

	// 4. Parse the recovered descriptor. Garbage that survives padding checks
	// (a wrong key, essentially) fails here.
	if err := json.Unmarshal(plaintext, target); err != nil {
		return fmt.Errorf("%w: plaintext is not a descriptor: %v", ErrDecode, err)
	}

	return nil
}

// pkcs7Pad appends PKCS#7 padding so len(result) is a multiple of blockSize.
// When the input is already block-aligned a full extra block is appended, so
// the pad count is always in [1, blockSize] and removal is unambiguous.
func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+padLen)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padLen)
	}
	return padded
}

// pkcs7Unpad removes PKCS#7 padding. It returns [ErrBadPadding] if the input
// is empty, the pad count is out of range, or any pad byte disagrees with the
// count.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("%w: input not block-aligned", ErrBadPadding)
	}

	padLen := int(data[len(data)-1])
	if padLen < 1 || padLen > blockSize {
		return nil, fmt.Errorf("%w: pad count %d out of range", ErrBadPadding, padLen)
	}

	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, fmt.Errorf("%w: inconsistent pad bytes", ErrBadPadding)
		}
	}

	return data[:len(data)-padLen], nil
}
