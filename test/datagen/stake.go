// Copyright (c) 2025 The LunaStake developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/rand"

	"github.com/lunastake/stakestate/stake"
)

func RandPubkey() (p stake.Pubkey) {
	rand.Read(p[:])
	return
}

func RandAuthorized() stake.Authorized {
	return stake.Authorized{
		Staker:     RandPubkey(),
		Withdrawer: RandPubkey(),
	}
}

func RandLockup() stake.Lockup {
	return stake.Lockup{
		UnixTimestamp: int64(RandUint64()),
		Epoch:         RandUint64(),
		Custodian:     RandPubkey(),
	}
}

func RandMeta() stake.Meta {
	return stake.Meta{
		RentExemptReserve: RandUint64(),
		Authorized:        RandAuthorized(),
		Lockup:            RandLockup(),
	}
}

func RandStake() stake.Stake {
	var reserved [8]byte
	rand.Read(reserved[:])
	return stake.Stake{
		Delegation: stake.Delegation{
			Voter:             RandPubkey(),
			Stake:             RandUint64(),
			ActivationEpoch:   RandUint64(),
			DeactivationEpoch: RandUint64(),
			Reserved:          reserved,
		},
		CreditsObserved: RandUint64(),
	}
}
