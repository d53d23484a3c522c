// SPDX-License-Identifier: Apache-2.0

package token

import (
	"errors"
	"fmt"
)

// ErrKeyLength is returned by [NewCodec] when the secret key is not exactly
// 32 bytes long. It is a configuration error and is always raised before any
// cipher work, so callers can distinguish it from decode failures.
var ErrKeyLength = errors.New("secret key must be exactly 32 bytes")

// ErrDecode is the base error for every failure on the decrypt path.
// All specific decode errors wrap it, so callers that do not care about the
// exact failure mode can match with errors.Is(err, ErrDecode).
var ErrDecode = errors.New("token decode failed")

// Specific decode failures. Each wraps [ErrDecode].
var (
	// ErrMalformedToken indicates the outer or inner base64 layer could not
	// be decoded, the envelope JSON could not be parsed, or the envelope is
	// missing the "iv" or "value" field.
	ErrMalformedToken = fmt.Errorf("%w: malformed token envelope", ErrDecode)

	// ErrCiphertextLength indicates the decoded ciphertext is empty or its
	// length is not a multiple of the AES block size.
	ErrCiphertextLength = fmt.Errorf("%w: ciphertext length is not a multiple of the block size", ErrDecode)

	// ErrBadPadding indicates PKCS#7 padding removal found an out-of-range
	// pad count or inconsistent pad bytes. This is the usual symptom of
	// decrypting with the wrong key.
	ErrBadPadding = fmt.Errorf("%w: invalid padding", ErrDecode)
)
