// Copyright (c) 2025 The LunaStake developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeTag(t *testing.T) {
	for raw, want := range map[uint32]Tag{
		0: TagUninitialized,
		1: TagInitialized,
		2: TagActive,
		3: TagRewardsPool,
	} {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], raw)
		tag, err := DecodeTag(b[:])
		assert.NoError(t, err)
		assert.Equal(t, want, tag)
	}
}

func TestDecodeTagInvalid(t *testing.T) {
	for _, raw := range []uint32{4, 5, 0xff, 0xffffffff} {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], raw)
		_, err := DecodeTag(b[:])
		assert.True(t, IsInvalidTag(err))

		var tagErr *InvalidTagError
		assert.ErrorAs(t, err, &tagErr)
		assert.Equal(t, raw, tagErr.Raw)
	}
}

func TestDecodeTagShortBuffer(t *testing.T) {
	for _, b := range [][]byte{nil, {}, {1}, {1, 0}, {1, 0, 0}} {
		_, err := DecodeTag(b)
		assert.ErrorIs(t, err, ErrUnexpectedEOF)
	}
}

func TestDecodeTagIgnoresTrailingBytes(t *testing.T) {
	b := []byte{2, 0, 0, 0, 0xde, 0xad, 0xbe, 0xef}
	tag, err := DecodeTag(b)
	assert.NoError(t, err)
	assert.Equal(t, TagActive, tag)
}

func TestTagString(t *testing.T) {
	assert.Equal(t, "uninitialized", TagUninitialized.String())
	assert.Equal(t, "initialized", TagInitialized.String())
	assert.Equal(t, "active", TagActive.String())
	assert.Equal(t, "rewards-pool", TagRewardsPool.String())
	assert.Equal(t, "invalid", Tag(42).String())
}
