// Copyright (c) 2025 The LunaStake developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

import "encoding/binary"

// View is a read-only, zero-copy decoding of a stake account record. It keeps
// a reference to the caller's buffer and reads fields straight out of it; no
// bytes are copied up front.
//
// A View must not outlive its buffer, and must not be read while a Writer
// over the same buffer is mutating it. There is no runtime aliasing check at
// this layer; the single-writer-or-many-readers discipline is by contract.
type View struct {
	buf []byte
	tag Tag
}

// FromBytes decodes buf as a stake account record. buf must be at least
// RecordSize bytes; bytes beyond RecordSize are ignored.
func FromBytes(buf []byte) (*View, error) {
	if len(buf) < RecordSize {
		return nil, ErrUnexpectedEOF
	}
	tag, err := DecodeTag(buf)
	if err != nil {
		return nil, err
	}
	return &View{buf: buf[:RecordSize], tag: tag}, nil
}

// Tag returns the record's discriminant.
func (v *View) Tag() Tag {
	return v.tag
}

// Meta returns the meta region accessor. The second return value is false for
// variants that carry no meta (Uninitialized, RewardsPool); their meta bytes
// are never inspected.
func (v *View) Meta() (MetaView, bool) {
	if v.tag != TagInitialized && v.tag != TagActive {
		return MetaView{}, false
	}
	return MetaView{buf: v.buf}, true
}

// Stake returns the stake region accessor, present for Active records only.
func (v *View) Stake() (StakeView, bool) {
	if v.tag != TagActive {
		return StakeView{}, false
	}
	return StakeView{buf: v.buf}, true
}

// Flags returns the record flags, present for Active records only.
func (v *View) Flags() (Flags, bool) {
	if v.tag != TagActive {
		return 0, false
	}
	return Flags(v.buf[flagsOffset]), true
}

// Record materializes the logical record, copying the live fields out of the
// buffer.
func (v *View) Record() Record {
	rec := Record{Tag: v.tag}
	if m, ok := v.Meta(); ok {
		rec.Meta = m.Meta()
	}
	if s, ok := v.Stake(); ok {
		rec.Stake = s.Stake()
	}
	if f, ok := v.Flags(); ok {
		rec.Flags = f
	}
	return rec
}

// MetaView reads meta fields at fixed offsets out of a record buffer.
type MetaView struct {
	buf []byte
}

func (m MetaView) RentExemptReserve() uint64 {
	return binary.LittleEndian.Uint64(m.buf[rentExemptReserveOffset:])
}

func (m MetaView) AuthorizedStaker() Pubkey {
	return BytesToPubkey(m.buf[authStakerOffset : authStakerOffset+PubkeyLength])
}

func (m MetaView) AuthorizedWithdrawer() Pubkey {
	return BytesToPubkey(m.buf[authWithdrawerOffset : authWithdrawerOffset+PubkeyLength])
}

func (m MetaView) Authorized() Authorized {
	return Authorized{
		Staker:     m.AuthorizedStaker(),
		Withdrawer: m.AuthorizedWithdrawer(),
	}
}

func (m MetaView) Lockup() Lockup {
	return Lockup{
		UnixTimestamp: int64(binary.LittleEndian.Uint64(m.buf[lockupTimestampOffset:])),
		Epoch:         binary.LittleEndian.Uint64(m.buf[lockupEpochOffset:]),
		Custodian:     BytesToPubkey(m.buf[lockupCustodianOffset : lockupCustodianOffset+PubkeyLength]),
	}
}

// Meta materializes the whole meta region.
func (m MetaView) Meta() Meta {
	return Meta{
		RentExemptReserve: m.RentExemptReserve(),
		Authorized:        m.Authorized(),
		Lockup:            m.Lockup(),
	}
}

// StakeView reads stake fields at fixed offsets out of a record buffer.
type StakeView struct {
	buf []byte
}

func (s StakeView) Voter() Pubkey {
	return BytesToPubkey(s.buf[voterOffset : voterOffset+PubkeyLength])
}

func (s StakeView) StakeAmount() uint64 {
	return binary.LittleEndian.Uint64(s.buf[stakeAmountOffset:])
}

func (s StakeView) ActivationEpoch() uint64 {
	return binary.LittleEndian.Uint64(s.buf[activationEpochOffset:])
}

func (s StakeView) DeactivationEpoch() uint64 {
	return binary.LittleEndian.Uint64(s.buf[deactivationEpochOffset:])
}

func (s StakeView) CreditsObserved() uint64 {
	return binary.LittleEndian.Uint64(s.buf[creditsObservedOffset:])
}

func (s StakeView) Delegation() Delegation {
	var d Delegation
	d.Voter = s.Voter()
	d.Stake = s.StakeAmount()
	d.ActivationEpoch = s.ActivationEpoch()
	d.DeactivationEpoch = s.DeactivationEpoch()
	copy(d.Reserved[:], s.buf[reservedOffset:reservedOffset+8])
	return d
}

// Stake materializes the whole stake region.
func (s StakeView) Stake() Stake {
	return Stake{
		Delegation:      s.Delegation(),
		CreditsObserved: s.CreditsObserved(),
	}
}
