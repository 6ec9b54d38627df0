// Copyright (c) 2025 The LunaStake developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

import (
	"errors"
	"fmt"
)

// ErrUnexpectedEOF is returned when a buffer is shorter than the region being
// decoded.
var ErrUnexpectedEOF = errors.New("unexpected end of record buffer")

// InvalidTagError is returned when the leading 4 bytes of a record hold a
// value outside the known discriminants.
type InvalidTagError struct {
	Raw uint32
}

func (e *InvalidTagError) Error() string {
	return fmt.Sprintf("invalid stake record tag %d", e.Raw)
}

// IsInvalidTag returns whether err carries an InvalidTagError.
func IsInvalidTag(err error) bool {
	var e *InvalidTagError
	return errors.As(err, &e)
}

// InvalidTransitionError is returned when a writer is asked for a state
// transition the record's current tag does not permit. The buffer is left
// byte-for-byte unmodified.
type InvalidTransitionError struct {
	From Tag
	To   Tag
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid stake record transition %v -> %v", e.From, e.To)
}

// IsInvalidTransition returns whether err carries an InvalidTransitionError.
func IsInvalidTransition(err error) bool {
	var e *InvalidTransitionError
	return errors.As(err, &e)
}
