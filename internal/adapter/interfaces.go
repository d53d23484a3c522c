// SPDX-License-Identifier: Apache-2.0

// Package adapter holds outbound HTTP integrations. Its only client talks to
// a running tokend instance so the CLI can confirm a freshly minted token
// decodes on the gateway side.
package adapter

import (
	"context"

	"github.com/bastion-tools/guactoken/internal/descriptor"
)

// TokendAdapter is the client-side view of the tokend decode service.
type TokendAdapter interface {
	// Verify posts tok to the decode endpoint and returns the descriptor the
	// service recovered. A non-2xx response or transport failure returns an
	// error and a nil descriptor.
	Verify(ctx context.Context, tok string) (descriptor.Descriptor, error)
}
