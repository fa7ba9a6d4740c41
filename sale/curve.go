package sale

import (
	"math/big"

	"github.com/bctsl/bctsl-sdk/denom"
	"github.com/bctsl/bctsl-sdk/ledger"
	"github.com/bctsl/bctsl-sdk/util"
	"github.com/shopspring/decimal"
)

// EstimateInitialBuyPrice queries the curve for the base-asset cost of moving
// supply from zero to count and, when a protocol fee fraction is given,
// inflates it by cost * (1 + fee), rounded up to the next whole smallest
// unit. Ceiling, never floor: an undercharged buy would be rejected by the
// stricter check on chain.
func EstimateInitialBuyPrice(client ledger.QueryClient, curveID string, count decimal.Decimal, d denom.Denomination, feeFraction decimal.Decimal) (*big.Int, error) {
	denominationDecimals, err := denom.TokenDecimals(d)
	if err != nil {
		return nil, err
	}

	decimals, err := client.CurveDecimals(curveID)
	if err != nil {
		return nil, err
	}

	units := denom.ToTokenUnits(count, denominationDecimals, decimals)

	price, err := client.CurveBuyPrice(curveID, units)
	if err != nil {
		return nil, err
	}

	if feeFraction.IsZero() {
		return price, nil
	}

	p := util.ToNumeric(price)
	return p.Mul(feeFraction).Add(p).Ceil().BigInt(), nil
}
