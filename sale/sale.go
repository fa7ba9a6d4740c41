// Package sale prices and executes trades against a bonding-curve token sale.
// The remote curve is the source of truth for every price; this package only
// derives trade bounds from freshly fetched quotes.
package sale

import (
	"math/big"

	"github.com/bctsl/bctsl-sdk/allowance"
	"github.com/bctsl/bctsl-sdk/config"
	"github.com/bctsl/bctsl-sdk/denom"
	"github.com/bctsl/bctsl-sdk/ledger"
	"github.com/bctsl/bctsl-sdk/util"
	"github.com/shopspring/decimal"
)

// TokenMeta describes the fungible token a sale trades.
type TokenMeta struct {
	Contract string
	Name     string
	Symbol   string
	Decimals int64
}

// MetaInfo merges sale contract state with the traded token's meta info.
type MetaInfo struct {
	Owner        string
	Beneficiary  string
	BondingCurve string
	Token        TokenMeta
}

// Quote is the immutable result of one curve query: the trade size in token
// base units, the price or return as fetched, and the slippage-adjusted bound
// submitted alongside the trade.
type Quote struct {
	TokenUnits *big.Int
	Raw        *big.Int
	Bound      *big.Int
}

// TokenSale is a handle on one token sale contract. The token contract id and
// its decimal count are fetched lazily and kept for the handle's lifetime.
// Both are immutable after deployment, so a concurrent first use at worst
// duplicates a fetch.
type TokenSale struct {
	client ledger.Client
	ID     string

	tokenID  string
	decimals *int64
}

func New(client ledger.Client, id string) *TokenSale {
	return &TokenSale{client: client, ID: id}
}

func (s *TokenSale) SaleType() (string, error) {
	state, err := s.client.SaleState(s.ID)
	if err != nil {
		return "", err
	}
	return state.SaleType, nil
}

func (s *TokenSale) Version() (uint64, error) {
	state, err := s.client.SaleState(s.ID)
	if err != nil {
		return 0, err
	}
	return state.Version, nil
}

func (s *TokenSale) Owner() (string, error) {
	state, err := s.client.SaleState(s.ID)
	if err != nil {
		return "", err
	}
	return state.Owner, nil
}

// TokenContract returns the traded token's contract id, fetching it on first
// use.
func (s *TokenSale) TokenContract() (string, error) {
	if s.tokenID != "" {
		return s.tokenID, nil
	}

	state, err := s.client.SaleState(s.ID)
	if err != nil {
		return "", err
	}
	s.tokenID = state.TokenContract
	return s.tokenID, nil
}

// Decimals returns the traded token's decimal count, fetching it on first
// use.
func (s *TokenSale) Decimals() (int64, error) {
	if s.decimals != nil {
		return *s.decimals, nil
	}

	tokenID, err := s.TokenContract()
	if err != nil {
		return 0, err
	}

	meta, err := s.client.TokenMetaInfo(tokenID)
	if err != nil {
		return 0, err
	}
	s.decimals = &meta.Decimals
	return meta.Decimals, nil
}

// tokenUnits rescales a human-facing count to the token's base units. The
// denomination is resolved before any remote call so an ambiguous descriptor
// never starts a half-completed sequence.
func (s *TokenSale) tokenUnits(count decimal.Decimal, d denom.Denomination) (*big.Int, error) {
	denominationDecimals, err := denom.TokenDecimals(d)
	if err != nil {
		return nil, err
	}

	decimals, err := s.Decimals()
	if err != nil {
		return nil, err
	}

	return denom.ToTokenUnits(count, denominationDecimals, decimals), nil
}

// buyBound is price * (1 + slippage/100), truncated to whole smallest units.
// Truncation matches the contract's own rounding so the authorized amount is
// never below what the contract recomputes at execution time. When the
// slippage margin is under one smallest unit the bound equals the raw price.
func buyBound(price, slippagePercent decimal.Decimal) *big.Int {
	return price.Add(price.Mul(slippagePercent).Shift(-2)).BigInt()
}

// sellBound is return * (1 - slippage/100), floored. The caller submits it as
// the "accept no less than" check, so it must never exceed reality.
func sellBound(sellReturn, slippagePercent decimal.Decimal) *big.Int {
	return sellReturn.Sub(sellReturn.Mul(slippagePercent).Shift(-2)).Floor().BigInt()
}

// Price returns the current buy price for count, rendered in the asset
// denomination of d.
func (s *TokenSale) Price(count decimal.Decimal, d denom.Denomination) (string, error) {
	units, err := s.tokenUnits(count, d)
	if err != nil {
		return "", err
	}

	price, err := s.client.SalePrice(s.ID, units)
	if err != nil {
		return "", err
	}

	return denom.FormatAssetAmount(util.ToNumeric(price), denom.AssetAettos, d.Asset)
}

// SellReturn returns the current sell return for count, rendered in the asset
// denomination of d.
func (s *TokenSale) SellReturn(count decimal.Decimal, d denom.Denomination) (string, error) {
	units, err := s.tokenUnits(count, d)
	if err != nil {
		return "", err
	}

	sellReturn, err := s.client.SaleSellReturn(s.ID, units)
	if err != nil {
		return "", err
	}

	return denom.FormatAssetAmount(util.ToNumeric(sellReturn), denom.AssetAettos, d.Asset)
}

// QuoteBuy fetches the current price for count and derives the base-asset
// amount to authorize under the given slippage tolerance. Negative slippage
// is legal and means the caller is only willing to pay less than the quoted
// price; if the price has moved up by execution time the node rejects the buy
// and that rejection propagates unchanged.
func (s *TokenSale) QuoteBuy(count decimal.Decimal, d denom.Denomination, slippagePercent decimal.Decimal) (*Quote, error) {
	units, err := s.tokenUnits(count, d)
	if err != nil {
		return nil, err
	}

	price, err := s.client.SalePrice(s.ID, units)
	if err != nil {
		return nil, err
	}

	return &Quote{
		TokenUnits: units,
		Raw:        price,
		Bound:      buyBound(util.ToNumeric(price), slippagePercent),
	}, nil
}

// QuoteSell fetches the current sell return for count and derives the minimum
// base-asset amount to accept under the given slippage tolerance.
func (s *TokenSale) QuoteSell(count decimal.Decimal, d denom.Denomination, slippagePercent decimal.Decimal) (*Quote, error) {
	units, err := s.tokenUnits(count, d)
	if err != nil {
		return nil, err
	}

	sellReturn, err := s.client.SaleSellReturn(s.ID, units)
	if err != nil {
		return nil, err
	}

	return &Quote{
		TokenUnits: units,
		Raw:        sellReturn,
		Bound:      sellBound(util.ToNumeric(sellReturn), slippagePercent),
	}, nil
}

// Buy quotes and submits a buy in one sequence; nothing happens between the
// quote and the bound computation but the submission round trip itself.
func (s *TokenSale) Buy(account string, count decimal.Decimal, d denom.Denomination, slippagePercent decimal.Decimal) (string, error) {
	quote, err := s.QuoteBuy(count, d, slippagePercent)
	if err != nil {
		return "", err
	}

	config.Log.Debugf("Buying %v token units for at most %v smallest units", quote.TokenUnits, quote.Bound)
	return s.client.SubmitBuy(s.ID, account, quote.TokenUnits, quote.Bound)
}

// CreateSellAllowance moves the owner's allowance toward the sale's account
// to exactly the units being sold, and returns those units.
func (s *TokenSale) CreateSellAllowance(owner string, count decimal.Decimal, d denom.Denomination) (*big.Int, error) {
	units, err := s.tokenUnits(count, d)
	if err != nil {
		return nil, err
	}

	tokenID, err := s.TokenContract()
	if err != nil {
		return nil, err
	}

	err = allowance.Ensure(s.client, tokenID, owner, ledger.ContractAccount(s.ID), units)
	if err != nil {
		return nil, err
	}
	return units, nil
}

// SellWithExistingAllowance fetches the current return for tokenUnits and
// submits the sell with its slippage-derived minimum.
func (s *TokenSale) SellWithExistingAllowance(account string, tokenUnits *big.Int, slippagePercent decimal.Decimal) (string, error) {
	sellReturn, err := s.client.SaleSellReturn(s.ID, tokenUnits)
	if err != nil {
		return "", err
	}

	bound := sellBound(util.ToNumeric(sellReturn), slippagePercent)
	config.Log.Debugf("Selling %v token units for at least %v smallest units", tokenUnits, bound)
	return s.client.SubmitSell(s.ID, account, tokenUnits, bound)
}

// Sell adjusts the allowance and submits the sell as one sequence. If the
// allowance step fails the sell is never attempted.
func (s *TokenSale) Sell(account string, count decimal.Decimal, d denom.Denomination, slippagePercent decimal.Decimal) (string, error) {
	units, err := s.CreateSellAllowance(account, count, d)
	if err != nil {
		return "", err
	}

	return s.SellWithExistingAllowance(account, units, slippagePercent)
}

// MetaInfo fetches sale state and token meta info, caching the token id and
// decimal count along the way.
func (s *TokenSale) MetaInfo() (MetaInfo, error) {
	state, err := s.client.SaleState(s.ID)
	if err != nil {
		return MetaInfo{}, err
	}
	s.tokenID = state.TokenContract

	meta, err := s.client.TokenMetaInfo(state.TokenContract)
	if err != nil {
		return MetaInfo{}, err
	}
	s.decimals = &meta.Decimals

	return MetaInfo{
		Owner:        state.Owner,
		Beneficiary:  state.Beneficiary,
		BondingCurve: state.BondingCurve,
		Token: TokenMeta{
			Contract: state.TokenContract,
			Name:     meta.Name,
			Symbol:   meta.Symbol,
			Decimals: meta.Decimals,
		},
	}, nil
}
