package severityVote

import (
	"math/big"

	"bounty-node/modules/common/params"
)

// All slash math widens through big.Int before dividing so stakes near
// the int64 ceiling cannot overflow the intermediate product.

// SlashAmount is the total taken from the losing buckets:
// floor(minority_stake * slash_rate)
func SlashAmount(totalStaked int64, winningStake int64) int64 {
	minorityStake := totalStaked - winningStake
	return mulDiv(minorityStake, params.SLASH_RATE_PPTT, params.PPTT_DENOMINATOR)
}

// RewardShare is a majority voter's cut of the slash pot, proportional
// to their share of the winning bucket: floor(stake * slash / winning)
func RewardShare(voterStake int64, slashAmount int64, winningStake int64) int64 {
	if winningStake == 0 {
		return 0
	}
	return mulDiv(voterStake, slashAmount, winningStake)
}

// MinoritySlash is the slashed part of one losing ballot. Rounds UP so
// the per-voter deductions always cover the aggregate SlashAmount and
// the pool stays solvent. See DESIGN.md.
func MinoritySlash(voterStake int64) int64 {
	return mulDivCeil(voterStake, params.SLASH_RATE_PPTT, params.PPTT_DENOMINATOR)
}

// MinorityReturn is what a losing voter reclaims after slashing.
func MinorityReturn(voterStake int64) int64 {
	return voterStake - MinoritySlash(voterStake)
}

func mulDiv(a int64, b int64, den int64) int64 {
	out := new(big.Int).Mul(big.NewInt(a), big.NewInt(b))
	out.Quo(out, big.NewInt(den))
	return out.Int64()
}

func mulDivCeil(a int64, b int64, den int64) int64 {
	num := new(big.Int).Mul(big.NewInt(a), big.NewInt(b))
	quo, rem := new(big.Int).QuoRem(num, big.NewInt(den), new(big.Int))
	if rem.Sign() != 0 {
		quo.Add(quo, big.NewInt(1))
	}
	return quo.Int64()
}
