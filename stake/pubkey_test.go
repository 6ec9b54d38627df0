// Copyright (c) 2025 The LunaStake developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

import (
	"crypto/rand"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPubkeyStringRoundTrip(t *testing.T) {
	var p Pubkey
	rand.Read(p[:])

	parsed, err := ParsePubkey(p.String())
	assert.NoError(t, err)
	assert.Equal(t, p, parsed)
}

func TestParsePubkeyInvalid(t *testing.T) {
	// "0" is not in the base58 alphabet
	_, err := ParsePubkey("0invalid")
	assert.Error(t, err)

	// valid base58 but wrong length
	_, err = ParsePubkey("3yZe7d")
	assert.Error(t, err)
}

func TestPubkeyJSON(t *testing.T) {
	var p Pubkey
	rand.Read(p[:])

	data, err := json.Marshal(&p)
	assert.NoError(t, err)

	var decoded Pubkey
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, p, decoded)
}

func TestBytesToPubkey(t *testing.T) {
	// short input extends from the left
	p := BytesToPubkey([]byte("voter"))
	assert.Equal(t, "voter", string(p[PubkeyLength-5:]))
	assert.True(t, p[0] == 0)

	// long input crops from the left
	long := make([]byte, PubkeyLength+4)
	rand.Read(long)
	assert.Equal(t, long[4:], BytesToPubkey(long).Bytes())
}

func TestPubkeyIsZero(t *testing.T) {
	var p Pubkey
	assert.True(t, p.IsZero())
	p[31] = 1
	assert.False(t, p.IsZero())
}
