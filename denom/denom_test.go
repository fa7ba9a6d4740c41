package denom

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func custom(n int64) *int64 {
	return &n
}

func TestTokenDecimals(t *testing.T) {
	decimals, err := TokenDecimals(Denomination{Token: TokenFull})
	require.NoError(t, err)
	require.Equal(t, int64(0), decimals)

	decimals, err = TokenDecimals(Denomination{Token: TokenAtto})
	require.NoError(t, err)
	require.Equal(t, int64(18), decimals)

	// a custom decimal count wins over the ladder entry
	decimals, err = TokenDecimals(Denomination{Token: TokenAtto, CustomTokenDecimals: custom(6)})
	require.NoError(t, err)
	require.Equal(t, int64(6), decimals)

	_, err = TokenDecimals(Denomination{})
	require.ErrorIs(t, err, ErrAmbiguousDenomination)

	_, err = TokenDecimals(Denomination{Token: "bogus"})
	require.ErrorIs(t, err, ErrAmbiguousDenomination)
}

func TestToTokenUnits(t *testing.T) {
	one := decimal.NewFromInt(1)

	require.Equal(t, "1000000000000000000", ToTokenUnits(one, 0, 18).String())
	require.Equal(t, "1", ToTokenUnits(one, 18, 18).String())
	require.Equal(t, "10", ToTokenUnits(one, 0, 1).String())

	// fractional base units truncate at the decimal boundary
	require.Equal(t, "0", ToTokenUnits(one, 1, 0).String())
	require.Equal(t, "1500000", ToTokenUnits(decimal.RequireFromString("1.5"), 0, 6).String())
}

func TestTokenUnits(t *testing.T) {
	units, err := TokenUnits(decimal.NewFromInt(1), Denomination{Token: TokenAtto}, 18)
	require.NoError(t, err)
	require.Equal(t, "1", units.String())

	units, err = TokenUnits(decimal.NewFromInt(1), Denomination{Token: TokenFull}, 18)
	require.NoError(t, err)
	require.Equal(t, "1000000000000000000", units.String())

	_, err = TokenUnits(decimal.NewFromInt(1), Denomination{}, 18)
	require.ErrorIs(t, err, ErrAmbiguousDenomination)
}

func TestChangeTokenToAssetDenomination(t *testing.T) {
	one := decimal.NewFromInt(1)
	two := decimal.NewFromInt(2)

	tests := []struct {
		name         string
		count        decimal.Decimal
		denomination Denomination
		tokenToAsset bool
		expected     string
	}{
		{"equal default 0, 0", one, Default(), true, "1"},
		{"equal -18, -18", one, Denomination{Asset: AssetAettos, Token: TokenAtto}, true, "1"},
		{"atto to full -18, 0", one, Denomination{Asset: AssetFull, Token: TokenAtto}, true, "0.000000000000000001"},
		{"full to aettos 0, -18", one, Denomination{Asset: AssetAettos, Token: TokenFull}, true, "1000000000000000000"},
		{"custom to aettos -1, -18", one, Denomination{Asset: AssetAettos, CustomTokenDecimals: custom(1)}, true, "100000000000000000"},
		{"custom to full -1, 0", one, Denomination{Asset: AssetFull, CustomTokenDecimals: custom(1)}, true, "0.1"},
		{"reverse default", two, Default(), false, "2"},
		{"reverse aettos, full", two, Denomination{Asset: AssetAettos, Token: TokenFull}, false, "0.000000000000000002"},
		{"reverse full, atto", two, Denomination{Asset: AssetFull, Token: TokenAtto}, false, "2000000000000000000"},
		{"reverse custom -1", two, Denomination{CustomTokenDecimals: custom(1)}, false, "20"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ChangeTokenToAssetDenomination(tc.count, tc.denomination, tc.tokenToAsset)
			require.NoError(t, err)
			require.Equal(t, tc.expected, got)
		})
	}

	_, err := ChangeTokenToAssetDenomination(one, Denomination{}, true)
	require.ErrorIs(t, err, ErrAmbiguousDenomination)
}

func TestChangeTokenToAssetDenominationRoundTrip(t *testing.T) {
	count := decimal.RequireFromString("123456.789")

	for token := range TokenMagnitude {
		for asset := range AssetMagnitude {
			d := Denomination{Asset: asset, Token: token}

			forward, err := ChangeTokenToAssetDenomination(count, d, true)
			require.NoError(t, err)

			back, err := ChangeTokenToAssetDenomination(decimal.RequireFromString(forward), d, false)
			require.NoError(t, err)
			require.Equal(t, count.String(), back, "token %s asset %s", token, asset)
		}
	}
}

func TestFormatAssetAmount(t *testing.T) {
	got, err := FormatAssetAmount(decimal.NewFromInt(110550), AssetFemto, AssetFull)
	require.NoError(t, err)
	require.Equal(t, "0.00000000011055", got)

	got, err = FormatAssetAmount(decimal.NewFromInt(1), AssetAettos, AssetAettos)
	require.NoError(t, err)
	require.Equal(t, "1", got)

	got, err = FormatAssetAmount(decimal.NewFromInt(1), AssetFull, AssetAettos)
	require.NoError(t, err)
	require.Equal(t, "1000000000000000000", got)

	_, err = FormatAssetAmount(decimal.NewFromInt(1), "bogus", AssetFull)
	require.ErrorIs(t, err, ErrAmbiguousDenomination)
}
