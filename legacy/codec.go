// Copyright (c) 2025 The LunaStake developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package legacy implements the variable-length bincode encoding that
// predates the fixed 200-byte record layout.
//
// The fixed layout is defined as "whatever this encoder produces, zero-padded
// to 200 bytes", so the codec is kept hand-written field by field: the wire
// contract is owned by an external format, not by any struct's natural
// layout. Every encoded record starts with the 4-byte little-endian variant
// tag, followed by the variant's fields in declaration order.
package legacy

import (
	"bytes"
	"encoding/binary"

	bin "github.com/gagliardetto/binary"
	"github.com/pkg/errors"

	"github.com/lunastake/stakestate/stake"
)

// Encoded sizes of the four variants before padding.
const (
	uninitializedLen = 4
	initializedLen   = 4 + 120
	activeLen        = 4 + 120 + 72 + 1
	rewardsPoolLen   = 4
)

// Marshal encodes a record in the legacy variable-length form.
func Marshal(rec *stake.Record) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := bin.NewBinEncoder(buf)

	if rec.Tag > stake.TagRewardsPool {
		return nil, &stake.InvalidTagError{Raw: uint32(rec.Tag)}
	}
	if err := enc.WriteUint32(uint32(rec.Tag), binary.LittleEndian); err != nil {
		return nil, errors.Wrap(err, "write tag")
	}
	switch rec.Tag {
	case stake.TagInitialized:
		if err := writeMeta(enc, &rec.Meta); err != nil {
			return nil, err
		}
	case stake.TagActive:
		if err := writeMeta(enc, &rec.Meta); err != nil {
			return nil, err
		}
		if err := writeStake(enc, &rec.Stake); err != nil {
			return nil, err
		}
		if err := enc.WriteByte(byte(rec.Flags)); err != nil {
			return nil, errors.Wrap(err, "write flags")
		}
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a legacy-encoded record. Trailing zero padding is
// permitted and ignored.
func Unmarshal(data []byte) (stake.Record, error) {
	dec := bin.NewBinDecoder(data)

	tag, err := readTag(dec)
	if err != nil {
		return stake.Record{}, err
	}
	rec := stake.Record{Tag: tag}
	switch tag {
	case stake.TagInitialized:
		if rec.Meta, err = readMeta(dec); err != nil {
			return stake.Record{}, err
		}
	case stake.TagActive:
		if rec.Meta, err = readMeta(dec); err != nil {
			return stake.Record{}, err
		}
		if rec.Stake, err = readStake(dec); err != nil {
			return stake.Record{}, err
		}
		flags, err := dec.ReadByte()
		if err != nil {
			return stake.Record{}, errors.Wrap(err, "read flags")
		}
		rec.Flags = stake.Flags(flags)
	}
	return rec, nil
}

// Pad zero-pads a legacy encoding out to the fixed record size. Inputs longer
// than the fixed size are rejected.
func Pad(data []byte) ([]byte, error) {
	if len(data) > stake.RecordSize {
		return nil, errors.Errorf("legacy encoding is %d bytes, exceeds record size %d", len(data), stake.RecordSize)
	}
	padded := make([]byte, stake.RecordSize)
	copy(padded, data)
	return padded, nil
}

func readTag(dec *bin.Decoder) (stake.Tag, error) {
	raw, err := dec.ReadUint32(binary.LittleEndian)
	if err != nil {
		return 0, stake.ErrUnexpectedEOF
	}
	if raw > uint32(stake.TagRewardsPool) {
		return 0, &stake.InvalidTagError{Raw: raw}
	}
	return stake.Tag(raw), nil
}

func writeMeta(enc *bin.Encoder, m *stake.Meta) error {
	if err := enc.WriteUint64(m.RentExemptReserve, binary.LittleEndian); err != nil {
		return errors.Wrap(err, "write rent exempt reserve")
	}
	if err := enc.WriteBytes(m.Authorized.Staker[:], false); err != nil {
		return errors.Wrap(err, "write authorized staker")
	}
	if err := enc.WriteBytes(m.Authorized.Withdrawer[:], false); err != nil {
		return errors.Wrap(err, "write authorized withdrawer")
	}
	if err := enc.WriteInt64(m.Lockup.UnixTimestamp, binary.LittleEndian); err != nil {
		return errors.Wrap(err, "write lockup timestamp")
	}
	if err := enc.WriteUint64(m.Lockup.Epoch, binary.LittleEndian); err != nil {
		return errors.Wrap(err, "write lockup epoch")
	}
	if err := enc.WriteBytes(m.Lockup.Custodian[:], false); err != nil {
		return errors.Wrap(err, "write lockup custodian")
	}
	return nil
}

func readMeta(dec *bin.Decoder) (stake.Meta, error) {
	var (
		m   stake.Meta
		err error
	)
	if m.RentExemptReserve, err = dec.ReadUint64(binary.LittleEndian); err != nil {
		return m, errors.Wrap(err, "read rent exempt reserve")
	}
	if err = readPubkey(dec, &m.Authorized.Staker); err != nil {
		return m, errors.Wrap(err, "read authorized staker")
	}
	if err = readPubkey(dec, &m.Authorized.Withdrawer); err != nil {
		return m, errors.Wrap(err, "read authorized withdrawer")
	}
	if m.Lockup.UnixTimestamp, err = dec.ReadInt64(binary.LittleEndian); err != nil {
		return m, errors.Wrap(err, "read lockup timestamp")
	}
	if m.Lockup.Epoch, err = dec.ReadUint64(binary.LittleEndian); err != nil {
		return m, errors.Wrap(err, "read lockup epoch")
	}
	if err = readPubkey(dec, &m.Lockup.Custodian); err != nil {
		return m, errors.Wrap(err, "read lockup custodian")
	}
	return m, nil
}

func writeStake(enc *bin.Encoder, s *stake.Stake) error {
	if err := enc.WriteBytes(s.Delegation.Voter[:], false); err != nil {
		return errors.Wrap(err, "write voter")
	}
	if err := enc.WriteUint64(s.Delegation.Stake, binary.LittleEndian); err != nil {
		return errors.Wrap(err, "write stake amount")
	}
	if err := enc.WriteUint64(s.Delegation.ActivationEpoch, binary.LittleEndian); err != nil {
		return errors.Wrap(err, "write activation epoch")
	}
	if err := enc.WriteUint64(s.Delegation.DeactivationEpoch, binary.LittleEndian); err != nil {
		return errors.Wrap(err, "write deactivation epoch")
	}
	if err := enc.WriteBytes(s.Delegation.Reserved[:], false); err != nil {
		return errors.Wrap(err, "write reserved")
	}
	if err := enc.WriteUint64(s.CreditsObserved, binary.LittleEndian); err != nil {
		return errors.Wrap(err, "write credits observed")
	}
	return nil
}

func readStake(dec *bin.Decoder) (stake.Stake, error) {
	var (
		s   stake.Stake
		err error
	)
	if err = readPubkey(dec, &s.Delegation.Voter); err != nil {
		return s, errors.Wrap(err, "read voter")
	}
	if s.Delegation.Stake, err = dec.ReadUint64(binary.LittleEndian); err != nil {
		return s, errors.Wrap(err, "read stake amount")
	}
	if s.Delegation.ActivationEpoch, err = dec.ReadUint64(binary.LittleEndian); err != nil {
		return s, errors.Wrap(err, "read activation epoch")
	}
	if s.Delegation.DeactivationEpoch, err = dec.ReadUint64(binary.LittleEndian); err != nil {
		return s, errors.Wrap(err, "read deactivation epoch")
	}
	b, err := dec.ReadNBytes(len(s.Delegation.Reserved))
	if err != nil {
		return s, errors.Wrap(err, "read reserved")
	}
	copy(s.Delegation.Reserved[:], b)
	if s.CreditsObserved, err = dec.ReadUint64(binary.LittleEndian); err != nil {
		return s, errors.Wrap(err, "read credits observed")
	}
	return s, nil
}

func readPubkey(dec *bin.Decoder, p *stake.Pubkey) error {
	b, err := dec.ReadNBytes(stake.PubkeyLength)
	if err != nil {
		return err
	}
	copy(p[:], b)
	return nil
}
