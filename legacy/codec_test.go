// Copyright (c) 2025 The LunaStake developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package legacy

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunastake/stakestate/stake"
	"github.com/lunastake/stakestate/test/datagen"
)

func TestVariantLengths(t *testing.T) {
	tests := []struct {
		rec  stake.Record
		want int
	}{
		{stake.Record{Tag: stake.TagUninitialized}, uninitializedLen},
		{stake.Record{Tag: stake.TagInitialized, Meta: datagen.RandMeta()}, initializedLen},
		{stake.Record{
			Tag:   stake.TagActive,
			Meta:  datagen.RandMeta(),
			Stake: datagen.RandStake(),
			Flags: stake.FlagMustFullyActivateBeforeDeactivate,
		}, activeLen},
		{stake.Record{Tag: stake.TagRewardsPool}, rewardsPoolLen},
	}
	for _, tt := range tests {
		data, err := Marshal(&tt.rec)
		require.NoError(t, err)
		assert.Len(t, data, tt.want, "tag %v", tt.rec.Tag)
	}
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	records := []stake.Record{
		{Tag: stake.TagUninitialized},
		{Tag: stake.TagInitialized, Meta: datagen.RandMeta()},
		{
			Tag:   stake.TagActive,
			Meta:  datagen.RandMeta(),
			Stake: datagen.RandStake(),
			Flags: stake.Flags(datagen.RandIntN(256)),
		},
		{Tag: stake.TagRewardsPool},
	}
	for _, rec := range records {
		data, err := Marshal(&rec)
		require.NoError(t, err)

		decoded, err := Unmarshal(data)
		require.NoError(t, err)
		assert.Equal(t, rec, decoded, "tag %v", rec.Tag)
	}
}

func TestUnmarshalTolerantOfPadding(t *testing.T) {
	rec := stake.Record{Tag: stake.TagInitialized, Meta: datagen.RandMeta()}
	data, err := Marshal(&rec)
	require.NoError(t, err)
	padded, err := Pad(data)
	require.NoError(t, err)

	decoded, err := Unmarshal(padded)
	require.NoError(t, err)
	assert.Equal(t, rec, decoded)
}

func TestUnmarshalErrors(t *testing.T) {
	_, err := Unmarshal([]byte{1, 0})
	assert.ErrorIs(t, err, stake.ErrUnexpectedEOF)

	_, err = Unmarshal([]byte{9, 0, 0, 0})
	assert.True(t, stake.IsInvalidTag(err))

	// truncated meta
	_, err = Unmarshal([]byte{1, 0, 0, 0, 0xab})
	assert.Error(t, err)
}

func TestPadRejectsOversized(t *testing.T) {
	_, err := Pad(make([]byte, stake.RecordSize+1))
	assert.Error(t, err)
}

// The fixed 200-byte layout is defined as the zero-padded legacy encoding;
// this is the compatibility contract between the two codecs.
func TestFixedLayoutMatchesPaddedLegacy(t *testing.T) {
	records := []stake.Record{
		{Tag: stake.TagUninitialized},
		{Tag: stake.TagInitialized, Meta: datagen.RandMeta()},
		{
			Tag:   stake.TagActive,
			Meta:  datagen.RandMeta(),
			Stake: datagen.RandStake(),
			Flags: stake.Flags(datagen.RandIntN(256)),
		},
		{Tag: stake.TagRewardsPool},
	}
	for _, rec := range records {
		legacyBytes, err := Marshal(&rec)
		require.NoError(t, err)
		padded, err := Pad(legacyBytes)
		require.NoError(t, err)

		fixed, err := rec.Encode()
		require.NoError(t, err)
		assert.Equal(t, padded, fixed[:], "tag %v", rec.Tag)

		// and the zero-copy decoder agrees with the legacy decoder
		v, err := stake.FromBytes(padded)
		require.NoError(t, err)
		assert.Equal(t, rec, v.Record(), "tag %v", rec.Tag)
	}
}

func TestKnownEncoding(t *testing.T) {
	rec := stake.Record{Tag: stake.TagActive}
	rec.Meta.RentExemptReserve = 0x1122334455667788
	rec.Stake.Delegation.Stake = 100
	rec.Stake.Delegation.DeactivationEpoch = stake.EpochNever
	rec.Stake.CreditsObserved = 7

	data, err := Marshal(&rec)
	require.NoError(t, err)

	// tag
	assert.Equal(t, []byte{2, 0, 0, 0}, data[:4])
	// rent exempt reserve, little-endian
	assert.Equal(t, []byte{0x88, 0x77, 0x66, 0x55, 0x44, 0x33, 0x22, 0x11}, data[4:12])
	// stake amount at 4 + 120 + 32
	assert.Equal(t, uint64(100), binary.LittleEndian.Uint64(data[156:164]))
	// deactivation epoch sentinel
	assert.Equal(t, ^uint64(0), binary.LittleEndian.Uint64(data[172:180]))
	// credits observed
	assert.Equal(t, uint64(7), binary.LittleEndian.Uint64(data[188:196]))
	// flags
	assert.Equal(t, byte(0), data[196])
}
