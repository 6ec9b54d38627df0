// Copyright (c) 2025 The LunaStake developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

// PubkeyLength length of a stake address in bytes.
const PubkeyLength = 32

// Pubkey array of 32 bytes, the address form used throughout stake records.
type Pubkey [PubkeyLength]byte

var (
	_ json.Marshaler   = (*Pubkey)(nil)
	_ json.Unmarshaler = (*Pubkey)(nil)
)

// String implements the stringer interface, rendering base58.
func (p Pubkey) String() string {
	return base58.Encode(p[:])
}

// AbbrevString returns abbrev string presentation.
func (p Pubkey) AbbrevString() string {
	s := p.String()
	if len(s) <= 8 {
		return s
	}
	return fmt.Sprintf("%s…%s", s[:4], s[len(s)-4:])
}

// Bytes returns byte slice form of the pubkey.
func (p Pubkey) Bytes() []byte {
	return p[:]
}

// IsZero returns if the pubkey has all zero bytes.
func (p Pubkey) IsZero() bool {
	return p == Pubkey{}
}

// MarshalJSON implements json.Marshaler.
func (p *Pubkey) MarshalJSON() ([]byte, error) {
	if p == nil {
		return json.Marshal(nil)
	}
	return json.Marshal(p.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Pubkey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParsePubkey(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePubkey converts a base58 string presented pubkey into Pubkey type.
func ParsePubkey(s string) (Pubkey, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return Pubkey{}, err
	}
	if len(b) != PubkeyLength {
		return Pubkey{}, errors.New("invalid length")
	}
	var p Pubkey
	copy(p[:], b)
	return p, nil
}

// BytesToPubkey converts a byte slice into a pubkey.
// If b is larger than pubkey length, b will be cropped (from the left).
// If b is smaller than pubkey length, b will be extended (from the left).
func BytesToPubkey(b []byte) Pubkey {
	var p Pubkey
	if len(b) > PubkeyLength {
		b = b[len(b)-PubkeyLength:]
	}
	copy(p[PubkeyLength-len(b):], b)
	return p
}
