// Copyright (c) 2025 The LunaStake developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunastake/stakestate/stake"
	"github.com/lunastake/stakestate/test/datagen"
)

func TestWriterRejectsBadBuffers(t *testing.T) {
	_, err := stake.NewWriter(make([]byte, stake.RecordSize-1))
	assert.ErrorIs(t, err, stake.ErrUnexpectedEOF)

	buf := make([]byte, stake.RecordSize)
	buf[0] = 200
	_, err = stake.NewWriter(buf)
	assert.True(t, stake.IsInvalidTag(err))
}

func TestIntoInitialized(t *testing.T) {
	// garbage in the soon-to-be-dead regions must be wiped
	buf := make([]byte, stake.RecordSize)
	for i := 4; i < len(buf); i++ {
		buf[i] = 0xee
	}
	buf[0], buf[1], buf[2], buf[3] = 0, 0, 0, 0

	w, err := stake.NewWriter(buf)
	require.NoError(t, err)

	meta := datagen.RandMeta()
	require.NoError(t, w.IntoInitialized(meta))
	assert.Equal(t, stake.TagInitialized, w.Tag())

	v, err := stake.FromBytes(buf)
	require.NoError(t, err)
	assert.Equal(t, stake.Record{Tag: stake.TagInitialized, Meta: meta}, v.Record())

	// stake region, flags and padding all zeroed
	for i := 124; i < stake.RecordSize; i++ {
		assert.Equal(t, byte(0), buf[i], "offset %d", i)
	}
}

func TestIntoActiveFromInitialized(t *testing.T) {
	buf := make([]byte, stake.RecordSize)
	w, err := stake.NewWriter(buf)
	require.NoError(t, err)
	require.NoError(t, w.IntoInitialized(datagen.RandMeta()))

	// dirty the flags and padding to prove a fresh activation clears them
	buf[196], buf[197], buf[198], buf[199] = 0xff, 0xff, 0xff, 0xff

	meta, stk := datagen.RandMeta(), datagen.RandStake()
	require.NoError(t, w.IntoActive(meta, stk))
	assert.Equal(t, stake.TagActive, w.Tag())

	rec := w.View().Record()
	assert.Equal(t, meta, rec.Meta)
	assert.Equal(t, stk, rec.Stake)
	assert.True(t, rec.Flags.IsEmpty())
	assert.Equal(t, []byte{0, 0, 0}, buf[197:200])
}

func TestIntoActiveRedelegationPreservesFlags(t *testing.T) {
	buf := make([]byte, stake.RecordSize)
	w, err := stake.NewWriter(buf)
	require.NoError(t, err)
	require.NoError(t, w.IntoInitialized(datagen.RandMeta()))
	require.NoError(t, w.IntoActive(datagen.RandMeta(), datagen.RandStake()))

	// reserved flag bits and padding must survive a re-delegation untouched
	buf[196] = 0xa5
	buf[197], buf[198], buf[199] = 1, 2, 3

	meta, stk := datagen.RandMeta(), datagen.RandStake()
	require.NoError(t, w.IntoActive(meta, stk))

	assert.Equal(t, byte(0xa5), buf[196])
	assert.Equal(t, []byte{1, 2, 3}, buf[197:200])

	rec := w.View().Record()
	assert.Equal(t, meta, rec.Meta)
	assert.Equal(t, stk, rec.Stake)
}

func TestInvalidTransitionsLeaveBufferUntouched(t *testing.T) {
	tests := []struct {
		name string
		tag  stake.Tag
		op   func(w *stake.Writer) error
		to   stake.Tag
	}{
		{"uninitialized to active", stake.TagUninitialized, func(w *stake.Writer) error {
			return w.IntoActive(datagen.RandMeta(), datagen.RandStake())
		}, stake.TagActive},
		{"initialized to initialized", stake.TagInitialized, func(w *stake.Writer) error {
			return w.IntoInitialized(datagen.RandMeta())
		}, stake.TagInitialized},
		{"active to initialized", stake.TagActive, func(w *stake.Writer) error {
			return w.IntoInitialized(datagen.RandMeta())
		}, stake.TagInitialized},
		{"rewards pool to initialized", stake.TagRewardsPool, func(w *stake.Writer) error {
			return w.IntoInitialized(datagen.RandMeta())
		}, stake.TagInitialized},
		{"rewards pool to active", stake.TagRewardsPool, func(w *stake.Writer) error {
			return w.IntoActive(datagen.RandMeta(), datagen.RandStake())
		}, stake.TagActive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := stake.Record{Tag: tt.tag, Meta: datagen.RandMeta(), Stake: datagen.RandStake()}
			buf := encodeRecord(t, rec)
			snapshot := bytes.Clone(buf)

			w, err := stake.NewWriter(buf)
			require.NoError(t, err)

			err = tt.op(w)
			require.True(t, stake.IsInvalidTransition(err))

			var transErr *stake.InvalidTransitionError
			require.ErrorAs(t, err, &transErr)
			assert.Equal(t, tt.tag, transErr.From)
			assert.Equal(t, tt.to, transErr.To)

			assert.Equal(t, snapshot, buf, "failed transition must not write")
			assert.Equal(t, tt.tag, w.Tag())
		})
	}
}

func TestFieldMutation(t *testing.T) {
	buf := make([]byte, stake.RecordSize)
	w, err := stake.NewWriter(buf)
	require.NoError(t, err)
	require.NoError(t, w.IntoInitialized(datagen.RandMeta()))
	require.NoError(t, w.IntoActive(datagen.RandMeta(), datagen.RandStake()))

	// field setters must leave flags and padding alone
	buf[196] = 0x80
	buf[197], buf[198], buf[199] = 7, 8, 9

	m, ok := w.Meta()
	require.True(t, ok)
	m.SetRentExemptReserve(4242)
	assert.Equal(t, uint64(4242), m.RentExemptReserve())

	staker := datagen.RandPubkey()
	m.SetAuthorizedStaker(staker)
	assert.Equal(t, staker, m.AuthorizedStaker())

	lockup := datagen.RandLockup()
	m.SetLockup(lockup)
	assert.Equal(t, lockup, m.Lockup())

	s, ok := w.Stake()
	require.True(t, ok)
	s.SetCreditsObserved(123456)
	assert.Equal(t, uint64(123456), s.CreditsObserved())
	s.SetStakeAmount(99)
	assert.Equal(t, uint64(99), s.StakeAmount())
	s.SetDeactivationEpoch(77)
	assert.Equal(t, uint64(77), s.DeactivationEpoch())

	assert.Equal(t, byte(0x80), buf[196])
	assert.Equal(t, []byte{7, 8, 9}, buf[197:200])
}

func TestFieldMutationAbsentForWrongVariant(t *testing.T) {
	buf := encodeRecord(t, stake.Record{Tag: stake.TagUninitialized})
	w, err := stake.NewWriter(buf)
	require.NoError(t, err)

	_, ok := w.Meta()
	assert.False(t, ok)
	_, ok = w.Stake()
	assert.False(t, ok)
	assert.True(t, stake.IsInvalidTransition(w.SetFlags(0)))
}

func TestSetFlags(t *testing.T) {
	buf := make([]byte, stake.RecordSize)
	w, err := stake.NewWriter(buf)
	require.NoError(t, err)
	require.NoError(t, w.IntoInitialized(datagen.RandMeta()))
	require.NoError(t, w.IntoActive(datagen.RandMeta(), datagen.RandStake()))

	require.NoError(t, w.SetFlags(stake.FlagMustFullyActivateBeforeDeactivate))
	f, ok := w.View().Flags()
	require.True(t, ok)
	assert.True(t, f.Has(stake.FlagMustFullyActivateBeforeDeactivate))
	assert.Equal(t, []byte{0, 0, 0}, buf[197:200])
}

func TestWriterNeverTouchesTrailingBytes(t *testing.T) {
	buf := make([]byte, stake.RecordSize+8)
	for i := stake.RecordSize; i < len(buf); i++ {
		buf[i] = 0x5a
	}

	w, err := stake.NewWriter(buf)
	require.NoError(t, err)
	require.NoError(t, w.IntoInitialized(datagen.RandMeta()))
	require.NoError(t, w.IntoActive(datagen.RandMeta(), datagen.RandStake()))
	require.NoError(t, w.IntoActive(datagen.RandMeta(), datagen.RandStake()))
	require.NoError(t, w.SetFlags(0xff))
	if m, ok := w.Meta(); ok {
		m.SetRentExemptReserve(1)
	}
	if s, ok := w.Stake(); ok {
		s.SetCreditsObserved(2)
	}

	for i := stake.RecordSize; i < len(buf); i++ {
		assert.Equal(t, byte(0x5a), buf[i], "offset %d", i)
	}
}
