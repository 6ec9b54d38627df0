// Copyright (c) 2025 The LunaStake developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

import "encoding/binary"

// Writer mutates a stake account record in place. It drives the record's
// state machine:
//
//	Uninitialized --IntoInitialized--> Initialized --IntoActive--> Active
//	Active --IntoActive--> Active (re-delegation)
//
// RewardsPool is terminal; no transition leads out of it. Every transition
// validates fully before the first write, so a failed call leaves the buffer
// byte-for-byte unmodified. No operation ever writes a byte at or beyond
// offset RecordSize, even when the caller's buffer is longer.
//
// A Writer must not be used while another Writer or a View over the same
// buffer is live; see View for the aliasing contract.
type Writer struct {
	buf []byte
	tag Tag
}

// NewWriter wraps buf for in-place mutation. The buffer must already encode
// one of the four legal tags; any legal tag is accepted.
func NewWriter(buf []byte) (*Writer, error) {
	if len(buf) < RecordSize {
		return nil, ErrUnexpectedEOF
	}
	tag, err := DecodeTag(buf)
	if err != nil {
		return nil, err
	}
	return &Writer{buf: buf[:RecordSize], tag: tag}, nil
}

// Tag returns the record's current discriminant.
func (w *Writer) Tag() Tag {
	return w.tag
}

// View returns a read-only view over the same buffer, valid until the next
// mutation.
func (w *Writer) View() *View {
	return &View{buf: w.buf, tag: w.tag}
}

// IntoInitialized transitions Uninitialized -> Initialized, writing meta and
// zeroing the stake, flags and padding regions.
func (w *Writer) IntoInitialized(meta Meta) error {
	if w.tag != TagUninitialized {
		return &InvalidTransitionError{From: w.tag, To: TagInitialized}
	}
	clear(w.buf[stakeOffset : paddingOffset+paddingSize])
	putMeta(w.buf, &meta)
	w.setTag(TagInitialized)
	return nil
}

// IntoActive transitions Initialized -> Active or re-delegates an Active
// record. A fresh activation zeroes the flags and padding bytes; an
// Active -> Active overwrite preserves them unchanged.
func (w *Writer) IntoActive(meta Meta, stk Stake) error {
	switch w.tag {
	case TagInitialized:
		clear(w.buf[flagsOffset : paddingOffset+paddingSize])
		putMeta(w.buf, &meta)
		putStake(w.buf, &stk)
		w.setTag(TagActive)
	case TagActive:
		putMeta(w.buf, &meta)
		putStake(w.buf, &stk)
	default:
		return &InvalidTransitionError{From: w.tag, To: TagActive}
	}
	return nil
}

// Meta returns the in-place meta mutator. Like View.Meta, it is absent for
// variants that carry no meta.
func (w *Writer) Meta() (MetaMut, bool) {
	if w.tag != TagInitialized && w.tag != TagActive {
		return MetaMut{}, false
	}
	return MetaMut{MetaView{buf: w.buf}}, true
}

// Stake returns the in-place stake mutator, present for Active records only.
func (w *Writer) Stake() (StakeMut, bool) {
	if w.tag != TagActive {
		return StakeMut{}, false
	}
	return StakeMut{StakeView{buf: w.buf}}, true
}

// SetFlags overwrites the flags byte of an Active record. The padding bytes
// are not touched.
func (w *Writer) SetFlags(f Flags) error {
	if w.tag != TagActive {
		return &InvalidTransitionError{From: w.tag, To: TagActive}
	}
	w.buf[flagsOffset] = byte(f)
	return nil
}

func (w *Writer) setTag(t Tag) {
	binary.LittleEndian.PutUint32(w.buf[tagOffset:], uint32(t))
	w.tag = t
}

// MetaMut mutates meta fields in place. Setters write only the field's own
// bytes; the flags byte, the padding bytes and everything outside the record
// window stay untouched.
type MetaMut struct {
	MetaView
}

func (m MetaMut) SetRentExemptReserve(v uint64) {
	binary.LittleEndian.PutUint64(m.buf[rentExemptReserveOffset:], v)
}

func (m MetaMut) SetAuthorizedStaker(p Pubkey) {
	copy(m.buf[authStakerOffset:authStakerOffset+PubkeyLength], p[:])
}

func (m MetaMut) SetAuthorizedWithdrawer(p Pubkey) {
	copy(m.buf[authWithdrawerOffset:authWithdrawerOffset+PubkeyLength], p[:])
}

func (m MetaMut) SetLockup(l Lockup) {
	binary.LittleEndian.PutUint64(m.buf[lockupTimestampOffset:], uint64(l.UnixTimestamp))
	binary.LittleEndian.PutUint64(m.buf[lockupEpochOffset:], l.Epoch)
	copy(m.buf[lockupCustodianOffset:lockupCustodianOffset+PubkeyLength], l.Custodian[:])
}

// StakeMut mutates stake fields in place, with the same write discipline as
// MetaMut.
type StakeMut struct {
	StakeView
}

func (s StakeMut) SetVoter(p Pubkey) {
	copy(s.buf[voterOffset:voterOffset+PubkeyLength], p[:])
}

func (s StakeMut) SetStakeAmount(v uint64) {
	binary.LittleEndian.PutUint64(s.buf[stakeAmountOffset:], v)
}

func (s StakeMut) SetDeactivationEpoch(epoch uint64) {
	binary.LittleEndian.PutUint64(s.buf[deactivationEpochOffset:], epoch)
}

func (s StakeMut) SetCreditsObserved(v uint64) {
	binary.LittleEndian.PutUint64(s.buf[creditsObservedOffset:], v)
}
