// SPDX-License-Identifier: Apache-2.0

package descriptor

import (
	"fmt"
	"strings"
)

// ValidationError reports required connection parameters that are missing or
// empty. It is raised by the builder functions before any cipher work, so a
// bad request never reaches the token codec.
type ValidationError struct {
	// Mode is the request kind the parameters were built for
	// ("rdp", "ssh", "vnc", or "join").
	Mode string

	// Missing lists the parameter names that failed the presence check,
	// in the order they were checked.
	Missing []string
}

// Error implements the error interface. The message names every missing
// field so CLI usage errors stay actionable.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s connection requires %s", e.Mode, strings.Join(e.Missing, ", "))
}

// validate returns a *ValidationError for mode if any of the checks carries
// an empty value, or nil if all required fields are present.
func validate(mode string, checks map[string]string, order []string) error {
	var missing []string
	for _, name := range order {
		if checks[name] == "" {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return &ValidationError{Mode: mode, Missing: missing}
	}
	return nil
}
