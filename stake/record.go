// Copyright (c) 2025 The LunaStake developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

import "encoding/binary"

// Record is the decoded, logical form of a stake account record. Which fields
// are live is determined by Tag: Meta for Initialized and Active, Stake and
// Flags for Active only. Non-live fields are ignored by Encode.
type Record struct {
	Tag   Tag
	Meta  Meta
	Stake Stake
	Flags Flags
}

// EncodeTo writes the 200-byte wire form of the record into buf. Regions not
// live for the record's tag are zeroed, matching the zero-padding rule of the
// legacy encoding. Bytes of buf beyond RecordSize are left untouched.
func (r *Record) EncodeTo(buf []byte) error {
	if len(buf) < RecordSize {
		return ErrUnexpectedEOF
	}
	if r.Tag > TagRewardsPool {
		return &InvalidTagError{Raw: uint32(r.Tag)}
	}
	b := buf[:RecordSize]
	clear(b)
	binary.LittleEndian.PutUint32(b[tagOffset:], uint32(r.Tag))
	switch r.Tag {
	case TagInitialized:
		putMeta(b, &r.Meta)
	case TagActive:
		putMeta(b, &r.Meta)
		putStake(b, &r.Stake)
		b[flagsOffset] = byte(r.Flags)
	}
	return nil
}

// Encode returns the 200-byte wire form of the record.
func (r *Record) Encode() ([RecordSize]byte, error) {
	var b [RecordSize]byte
	if err := r.EncodeTo(b[:]); err != nil {
		return b, err
	}
	return b, nil
}

// DecodeRecord decodes the logical record held by a 200-byte buffer.
func DecodeRecord(buf []byte) (Record, error) {
	v, err := FromBytes(buf)
	if err != nil {
		return Record{}, err
	}
	return v.Record(), nil
}

func putMeta(b []byte, m *Meta) {
	binary.LittleEndian.PutUint64(b[rentExemptReserveOffset:], m.RentExemptReserve)
	copy(b[authStakerOffset:], m.Authorized.Staker[:])
	copy(b[authWithdrawerOffset:], m.Authorized.Withdrawer[:])
	binary.LittleEndian.PutUint64(b[lockupTimestampOffset:], uint64(m.Lockup.UnixTimestamp))
	binary.LittleEndian.PutUint64(b[lockupEpochOffset:], m.Lockup.Epoch)
	copy(b[lockupCustodianOffset:], m.Lockup.Custodian[:])
}

func putStake(b []byte, s *Stake) {
	copy(b[voterOffset:], s.Delegation.Voter[:])
	binary.LittleEndian.PutUint64(b[stakeAmountOffset:], s.Delegation.Stake)
	binary.LittleEndian.PutUint64(b[activationEpochOffset:], s.Delegation.ActivationEpoch)
	binary.LittleEndian.PutUint64(b[deactivationEpochOffset:], s.Delegation.DeactivationEpoch)
	copy(b[reservedOffset:], s.Delegation.Reserved[:])
	binary.LittleEndian.PutUint64(b[creditsObservedOffset:], s.CreditsObserved)
}
