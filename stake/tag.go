// Copyright (c) 2025 The LunaStake developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

import "encoding/binary"

// Tag is the record discriminant, stored as the leading 4 bytes (u32 LE).
type Tag uint32

const (
	TagUninitialized Tag = iota // freshly created, no meta yet
	TagInitialized              // meta written, no delegation
	TagActive                   // meta + delegation
	TagRewardsPool              // terminal, never produced by transitions
)

// String implements the stringer interface.
func (t Tag) String() string {
	switch t {
	case TagUninitialized:
		return "uninitialized"
	case TagInitialized:
		return "initialized"
	case TagActive:
		return "active"
	case TagRewardsPool:
		return "rewards-pool"
	default:
		return "invalid"
	}
}

// DecodeTag decodes the discriminant from the head of a record buffer. Bytes
// beyond the first 4 are ignored. A buffer shorter than 4 bytes fails with
// ErrUnexpectedEOF, a raw value outside 0-3 with InvalidTagError.
func DecodeTag(b []byte) (Tag, error) {
	if len(b) < tagSize {
		return 0, ErrUnexpectedEOF
	}
	raw := binary.LittleEndian.Uint32(b)
	if raw > uint32(TagRewardsPool) {
		return 0, &InvalidTagError{Raw: raw}
	}
	return Tag(raw), nil
}
