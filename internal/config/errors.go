// SPDX-License-Identifier: Apache-2.0

package config

import "errors"

// ErrInvalidSecretKey indicates the merged configuration carries a secret key
// that is not exactly 32 characters long. It is fatal: the process must exit
// before any descriptor or cipher work is attempted.
var ErrInvalidSecretKey = errors.New("secret key must be exactly 32 characters")
