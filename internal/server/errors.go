// SPDX-License-Identifier: Apache-2.0

package server

import "errors"

var (
	errNoAddress = errors.New("no listen address configured")
)
