// Copyright (c) 2025 The LunaStake developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

// The on-disk record is a fixed 200-byte window. The first 4 bytes select the
// variant, the rest is carved into fixed regions. Every integer is stored
// little-endian at byte alignment, since the backing buffer guarantees no
// native alignment. Offsets and widths below are wire format and must never
// change: buffers written by the legacy variable-length encoder, zero-padded
// to 200 bytes, decode through this exact layout.
const (
	// RecordSize is the total size of a stake account record.
	RecordSize = 200

	tagOffset = 0
	tagSize   = 4

	metaOffset = tagOffset + tagSize
	metaSize   = 120

	stakeOffset = metaOffset + metaSize
	stakeSize   = 72

	flagsOffset = stakeOffset + stakeSize
	flagsSize   = 1

	paddingOffset = flagsOffset + flagsSize
	paddingSize   = 3
)

// Meta region internals.
const (
	rentExemptReserveOffset = metaOffset
	authStakerOffset        = rentExemptReserveOffset + 8
	authWithdrawerOffset    = authStakerOffset + PubkeyLength
	lockupTimestampOffset   = authWithdrawerOffset + PubkeyLength
	lockupEpochOffset       = lockupTimestampOffset + 8
	lockupCustodianOffset   = lockupEpochOffset + 8
)

// Stake region internals.
const (
	voterOffset             = stakeOffset
	stakeAmountOffset       = voterOffset + PubkeyLength
	activationEpochOffset   = stakeAmountOffset + 8
	deactivationEpochOffset = activationEpochOffset + 8
	reservedOffset          = deactivationEpochOffset + 8
	creditsObservedOffset   = reservedOffset + 8
)

// Compile-time layout checks. A mis-sized region fails the build rather than
// corrupting records at runtime.
var (
	_ [RecordSize]byte  = [tagSize + metaSize + stakeSize + flagsSize + paddingSize]byte{}
	_ [metaSize]byte    = [8 + 2*PubkeyLength + 8 + 8 + PubkeyLength]byte{}
	_ [stakeSize]byte   = [PubkeyLength + 8 + 8 + 8 + 8 + 8]byte{}
	_ [RecordSize]byte  = [paddingOffset + paddingSize]byte{}
	_ [stakeOffset]byte = [lockupCustodianOffset + PubkeyLength]byte{}
	_ [flagsOffset]byte = [creditsObservedOffset + 8]byte{}
)
