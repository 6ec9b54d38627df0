// Copyright (c) 2025 The LunaStake developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

import "math"

// EpochNever is the sentinel epoch meaning "not scheduled". A delegation whose
// DeactivationEpoch holds this value is not mid-deactivation.
const EpochNever = uint64(math.MaxUint64)

// Clock is the externally supplied notion of time used by lockup checks.
type Clock struct {
	UnixTimestamp int64
	Epoch         uint64
}

// Authorized holds the two signing authorities over a stake record.
type Authorized struct {
	Staker     Pubkey // may delegate and deactivate
	Withdrawer Pubkey // may withdraw and change authorities
}

// Lockup restricts withdrawal and authority changes until a wall-clock time
// and an epoch have both passed, absent a custodian signature. Custodian
// signature checks happen outside this package.
type Lockup struct {
	UnixTimestamp int64
	Epoch         uint64
	Custodian     Pubkey
}

// IsInForce returns whether the lockup is still active relative to clock.
func (l Lockup) IsInForce(clock Clock) bool {
	return l.UnixTimestamp > clock.UnixTimestamp || l.Epoch > clock.Epoch
}

// Meta is the delegation-independent half of a record.
type Meta struct {
	RentExemptReserve uint64
	Authorized        Authorized
	Lockup            Lockup
}

// Delegation describes stake committed to a validator.
type Delegation struct {
	Voter             Pubkey
	Stake             uint64
	ActivationEpoch   uint64
	DeactivationEpoch uint64
	// Reserved carries the trailing 8 bytes of the legacy delegation encoding.
	// It has no live meaning but must round-trip unchanged.
	Reserved [8]byte
}

// IsDeactivating returns whether a deactivation epoch has been set.
func (d *Delegation) IsDeactivating() bool {
	return d.DeactivationEpoch != EpochNever
}

// Stake is the delegation plus its reward-accounting checkpoint.
type Stake struct {
	Delegation      Delegation
	CreditsObserved uint64
}

// Flags is a 1-byte bitset attached to active records. Only bit 0 is
// currently meaningful; reserved bits round-trip unchanged.
type Flags byte

// FlagMustFullyActivateBeforeDeactivate marks stake that was redelegated and
// may not deactivate until fully activated.
const FlagMustFullyActivateBeforeDeactivate Flags = 1 << 0

// Has returns whether all bits of f2 are set in f.
func (f Flags) Has(f2 Flags) bool {
	return f&f2 == f2
}

// Union returns the bitwise union of both flag sets.
func (f Flags) Union(f2 Flags) Flags {
	return f | f2
}

// IsEmpty returns whether no bit is set.
func (f Flags) IsEmpty() bool {
	return f == 0
}
