package denom

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// TokenDenomination names an entry on the fixed token denomination ladder.
type TokenDenomination string

// AssetDenomination names an entry on the base-asset denomination ladder.
type AssetDenomination string

const (
	TokenFull  TokenDenomination = "full"
	TokenMilli TokenDenomination = "milli"
	TokenMicro TokenDenomination = "micro"
	TokenNano  TokenDenomination = "nano"
	TokenPico  TokenDenomination = "pico"
	TokenFemto TokenDenomination = "femto"
	TokenAtto  TokenDenomination = "atto"
)

const (
	AssetFull   AssetDenomination = "full"
	AssetMilli  AssetDenomination = "milli"
	AssetMicro  AssetDenomination = "micro"
	AssetNano   AssetDenomination = "nano"
	AssetPico   AssetDenomination = "pico"
	AssetFemto  AssetDenomination = "femto"
	AssetAettos AssetDenomination = "aettos"
)

// TokenMagnitude maps each token ladder entry to its power-of-ten magnitude.
var TokenMagnitude = map[TokenDenomination]int64{
	TokenFull:  0,
	TokenMilli: -3,
	TokenMicro: -6,
	TokenNano:  -9,
	TokenPico:  -12,
	TokenFemto: -15,
	TokenAtto:  -18,
}

// AssetMagnitude maps each base-asset ladder entry to its power-of-ten magnitude.
// The smallest entry is the ledger's indivisible settlement unit.
var AssetMagnitude = map[AssetDenomination]int64{
	AssetFull:   0,
	AssetMilli:  -3,
	AssetMicro:  -6,
	AssetNano:   -9,
	AssetPico:   -12,
	AssetFemto:  -15,
	AssetAettos: -18,
}

// ErrAmbiguousDenomination is returned when a conversion is requested without
// a resolvable decimal magnitude.
var ErrAmbiguousDenomination = errors.New("either a custom token decimal count or a ladder denomination must be set")

// Denomination describes how a human-facing count is denominated. A custom
// token decimal count, when present, overrides the token ladder entry.
type Denomination struct {
	Asset               AssetDenomination
	Token               TokenDenomination
	CustomTokenDecimals *int64
}

// Default is full units on both ladders.
func Default() Denomination {
	return Denomination{Asset: AssetFull, Token: TokenFull}
}

// TokenDecimals resolves a denomination descriptor to a single decimal count.
// Resolution happens exactly once, at the entry of a conversion; arithmetic
// never re-resolves.
func TokenDecimals(d Denomination) (int64, error) {
	if d.CustomTokenDecimals != nil {
		return *d.CustomTokenDecimals, nil
	}
	if d.Token == "" {
		return 0, ErrAmbiguousDenomination
	}
	mag, ok := TokenMagnitude[d.Token]
	if !ok {
		return 0, fmt.Errorf("%w: unknown token denomination %q", ErrAmbiguousDenomination, d.Token)
	}
	return -mag, nil
}

func assetMagnitude(a AssetDenomination) (int64, error) {
	if a == "" {
		a = AssetFull
	}
	mag, ok := AssetMagnitude[a]
	if !ok {
		return 0, fmt.Errorf("%w: unknown asset denomination %q", ErrAmbiguousDenomination, a)
	}
	return mag, nil
}

// ToTokenUnits rescales count from a denomination decimal count to the token's
// native decimal count and returns whole token base units. Fractional base
// units below the target resolution are truncated at the decimal boundary.
func ToTokenUnits(count decimal.Decimal, denominationDecimals, decimals int64) *big.Int {
	return count.Shift(int32(decimals - denominationDecimals)).BigInt()
}

// TokenUnits resolves d and rescales count to the token's native base units.
func TokenUnits(count decimal.Decimal, d Denomination, decimals int64) (*big.Int, error) {
	denominationDecimals, err := TokenDecimals(d)
	if err != nil {
		return nil, err
	}
	return ToTokenUnits(count, denominationDecimals, decimals), nil
}

// ChangeTokenToAssetDenomination translates a token-denominated quantity into
// the asset denomination of d, or the reverse when tokenToAsset is false. The
// shift itself is exact decimal arithmetic; precision already lost by the
// caller is not recovered.
func ChangeTokenToAssetDenomination(count decimal.Decimal, d Denomination, tokenToAsset bool) (string, error) {
	denominationDecimals, err := TokenDecimals(d)
	if err != nil {
		return "", err
	}
	tokenMag := -denominationDecimals

	assetMag, err := assetMagnitude(d.Asset)
	if err != nil {
		return "", err
	}

	shift := tokenMag - assetMag
	if !tokenToAsset {
		shift = -shift
	}
	return count.Shift(int32(shift)).String(), nil
}

// FormatAssetAmount rescales a base-asset quantity between two ladder entries
// and renders it as a canonical decimal string.
func FormatAssetAmount(count decimal.Decimal, from, to AssetDenomination) (string, error) {
	fromMag, err := assetMagnitude(from)
	if err != nil {
		return "", err
	}
	toMag, err := assetMagnitude(to)
	if err != nil {
		return "", err
	}
	return count.Shift(int32(fromMag - toMag)).String(), nil
}
