// SPDX-License-Identifier: Apache-2.0

package adapter

import "errors"

var (
	// ErrTokenRejected means tokend answered 400: the token did not decode
	// under the service's key.
	ErrTokenRejected = errors.New("token rejected by decode service")

	// ErrUnexpectedStatus means tokend answered with a status the client
	// does not know how to interpret.
	ErrUnexpectedStatus = errors.New("unexpected decode service response")
)
