// Copyright (c) 2025 The LunaStake developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package merge classifies pairs of stake account records and computes the
// combined record.
//
// The engine is purely computational: the caller supplies the records, the
// lamports each account holds, the clock and the activation status produced
// by the external stake-history oracle. Lamport transfer and persistence of
// the result stay with the caller.
package merge

import (
	"errors"

	"github.com/lunastake/stakestate/log"
	"github.com/lunastake/stakestate/stake"
	"github.com/lunastake/stakestate/u128"
)

var logger = log.WithContext("pkg", "merge")

// SetLogger overrides the package logger.
func SetLogger(l log.Logger) {
	logger = l
}

var (
	// ErrNotMergeable is returned when a record variant cannot take part in a
	// merge at all (Uninitialized, RewardsPool).
	ErrNotMergeable = errors.New("stake record is not mergeable")

	// ErrMismatch is returned when two records are individually mergeable but
	// incompatible with each other, or when the (destination, source) kind
	// pair is not one of the permitted combinations.
	ErrMismatch = errors.New("stake records are not compatible for merge")

	// ErrTransientStake is returned when a delegation is mid warmup or
	// cooldown and therefore has no stable classification.
	ErrTransientStake = errors.New("stake is transient, wait for warmup or cooldown to finish")

	// ErrArithmeticOverflow is returned when combined stake or weighted
	// credits exceed 64-bit / 128-bit bounds.
	ErrArithmeticOverflow = errors.New("arithmetic overflow in stake accounting")
)

// Status is the activation breakdown of one delegation at the current epoch,
// computed by the external stake-history oracle.
type Status struct {
	Effective    uint64
	Activating   uint64
	Deactivating uint64
}

// Kind is the merge classification of one record.
type Kind uint8

const (
	// KindInactive holds no effective, activating or deactivating stake.
	KindInactive Kind = iota
	// KindActivationEpoch is still within its activation epoch: nothing
	// effective yet, but stake is activating or deactivating.
	KindActivationEpoch
	// KindFullyActive has effective stake and no transient amounts.
	KindFullyActive
)

// String implements the stringer interface.
func (k Kind) String() string {
	switch k {
	case KindInactive:
		return "inactive"
	case KindActivationEpoch:
		return "activation-epoch"
	case KindFullyActive:
		return "fully-active"
	default:
		return "unknown"
	}
}

// Classified is one record reduced to its merge kind. Stake is meaningful for
// KindActivationEpoch and KindFullyActive, Flags for KindInactive and
// KindActivationEpoch, Lamports for KindInactive sources.
type Classified struct {
	Kind     Kind
	Meta     stake.Meta
	Stake    stake.Stake
	Flags    stake.Flags
	Lamports uint64
}

// Classify reduces a record to its merge kind given the lamports the account
// holds and its activation status.
func Classify(rec *stake.Record, lamports uint64, status Status) (*Classified, error) {
	switch rec.Tag {
	case stake.TagInitialized:
		return &Classified{Kind: KindInactive, Meta: rec.Meta, Lamports: lamports}, nil

	case stake.TagActive:
		switch {
		case status.Effective == 0 && status.Activating == 0 && status.Deactivating == 0:
			return &Classified{
				Kind:     KindInactive,
				Meta:     rec.Meta,
				Flags:    rec.Flags,
				Lamports: lamports,
			}, nil
		case status.Effective == 0:
			return &Classified{
				Kind:     KindActivationEpoch,
				Meta:     rec.Meta,
				Stake:    rec.Stake,
				Flags:    rec.Flags,
				Lamports: lamports,
			}, nil
		case status.Activating == 0 && status.Deactivating == 0:
			return &Classified{
				Kind:     KindFullyActive,
				Meta:     rec.Meta,
				Stake:    rec.Stake,
				Lamports: lamports,
			}, nil
		default:
			return nil, ErrTransientStake
		}

	default:
		return nil, ErrNotMergeable
	}
}

// MetasCompatible checks that two records may merge: identical authorities,
// and identical lockups unless both lockups are out of force. The rent-exempt
// reserve is deliberately not compared; the caller settles lamport
// differences.
func MetasCompatible(a, b *stake.Meta, clock stake.Clock) error {
	if a.Authorized != b.Authorized {
		return ErrMismatch
	}
	if a.Lockup != b.Lockup && (a.Lockup.IsInForce(clock) || b.Lockup.IsInForce(clock)) {
		return ErrMismatch
	}
	return nil
}

// DelegationsCompatible checks that two live delegations may merge: same vote
// account, and neither side mid-deactivation.
func DelegationsCompatible(a, b *stake.Delegation) error {
	if a.Voter != b.Voter {
		return ErrMismatch
	}
	if a.IsDeactivating() || b.IsDeactivating() {
		return ErrMismatch
	}
	return nil
}

// Merge computes the combined record for a (destination, source) pair of
// classifications. A nil record with a nil error means the merge is a pure
// lamport move with no record change; persisting the returned record and
// moving lamports is the caller's job.
//
// Exactly five kind pairs are permitted. The asymmetry (a fully active
// destination absorbs only a fully active source) mirrors accepted historic
// behavior and must not be generalized.
func Merge(dst, src *Classified, clock stake.Clock) (*stake.Record, error) {
	if err := MetasCompatible(&dst.Meta, &src.Meta, clock); err != nil {
		return nil, err
	}
	if dst.Kind != KindInactive && src.Kind != KindInactive {
		if err := DelegationsCompatible(&dst.Stake.Delegation, &src.Stake.Delegation); err != nil {
			return nil, err
		}
	}

	logger.Debug("merging stake records",
		"dst", dst.Kind, "src", src.Kind,
		"voter", dst.Stake.Delegation.Voter.AbbrevString(),
	)

	switch {
	case dst.Kind == KindInactive && (src.Kind == KindInactive || src.Kind == KindActivationEpoch):
		// Pure lamport merge, no record change.
		return nil, nil

	case dst.Kind == KindActivationEpoch && src.Kind == KindInactive:
		// The source never activated anything; its whole balance joins the
		// destination's activating stake. Credits observed are untouched.
		stk := dst.Stake
		amount, ok := checkedAdd(stk.Delegation.Stake, src.Lamports)
		if !ok {
			return nil, ErrArithmeticOverflow
		}
		stk.Delegation.Stake = amount
		return &stake.Record{
			Tag:   stake.TagActive,
			Meta:  dst.Meta,
			Stake: stk,
			Flags: dst.Flags.Union(src.Flags),
		}, nil

	case dst.Kind == KindActivationEpoch && src.Kind == KindActivationEpoch:
		// Both sides are still activating; the source's rent reserve rides
		// along since the destination keeps a single reserve.
		absorbed, ok := checkedAdd(src.Meta.RentExemptReserve, src.Stake.Delegation.Stake)
		if !ok {
			return nil, ErrArithmeticOverflow
		}
		stk := dst.Stake
		if err := combine(&stk, absorbed, src.Stake.CreditsObserved); err != nil {
			return nil, err
		}
		return &stake.Record{
			Tag:   stake.TagActive,
			Meta:  dst.Meta,
			Stake: stk,
			Flags: dst.Flags.Union(src.Flags),
		}, nil

	case dst.Kind == KindFullyActive && src.Kind == KindFullyActive:
		// Only the delegated amount moves. Absorbing the source's rent
		// reserve here would retroactively activate lamports that were never
		// delegated.
		stk := dst.Stake
		if err := combine(&stk, src.Stake.Delegation.Stake, src.Stake.CreditsObserved); err != nil {
			return nil, err
		}
		return &stake.Record{
			Tag:   stake.TagActive,
			Meta:  dst.Meta,
			Stake: stk,
		}, nil

	default:
		return nil, ErrMismatch
	}
}

// combine folds absorbed lamports and their credits checkpoint into dst,
// updating the delegated amount and the stake-weighted credits observed.
//
// new_credits = ceil((dst_credits*dst_stake + absorbed_credits*absorbed) / total)
//
// The ceiling rounds in favor of the merged account so merging never
// under-rewards. When both checkpoints agree the division is skipped
// entirely, avoiding spurious rounding.
func combine(dst *stake.Stake, absorbedLamports, absorbedCredits uint64) error {
	total, ok := checkedAdd(dst.Delegation.Stake, absorbedLamports)
	if !ok {
		return ErrArithmeticOverflow
	}

	if dst.CreditsObserved != absorbedCredits {
		if total == 0 {
			return ErrArithmeticOverflow
		}
		weighted, ok := u128.Mul64(dst.CreditsObserved, dst.Delegation.Stake).
			CheckedAdd(u128.Mul64(absorbedCredits, absorbedLamports))
		if !ok {
			return ErrArithmeticOverflow
		}
		// ceil(weighted/total) as floor((weighted + total - 1) / total). The
		// quotient is bounded by max(dst credits, absorbed credits), so the
		// clamp never engages for reachable inputs.
		numerator, ok := weighted.CheckedAdd64(total - 1)
		if !ok {
			return ErrArithmeticOverflow
		}
		dst.CreditsObserved = u128.FloorDivClamped(numerator, u128.From64(total), maxUint64)
	}

	dst.Delegation.Stake = total
	return nil
}

const maxUint64 = ^uint64(0)

func checkedAdd(a, b uint64) (uint64, bool) {
	sum := a + b
	if sum < a {
		return 0, false
	}
	return sum, true
}
