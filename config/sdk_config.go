package config

import (
	"errors"
	"fmt"

	"github.com/bctsl/bctsl-sdk/denom"
	"github.com/bctsl/bctsl-sdk/util"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// These configs are shared by every CLI command
type log struct {
	Level  string
	Path   string
	Pretty bool
}

type Node struct {
	URL string `mapstructure:"url"`
}

type Trade struct {
	SlippagePercent     string `mapstructure:"slippage-percent"`
	DenominationAsset   string `mapstructure:"denomination-asset"`
	DenominationToken   string `mapstructure:"denomination-token"`
	CustomTokenDecimals int64  `mapstructure:"custom-token-decimals"`
}

type SdkConfig struct {
	ConfigFileLocation string
	Log                log
	Node               Node
	Trade              Trade
}

func SetupLogFlags(logConf *log, cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&logConf.Level, "log.level", "info", "log level")
	cmd.PersistentFlags().BoolVar(&logConf.Pretty, "log.pretty", false, "pretty logs")
	cmd.PersistentFlags().StringVar(&logConf.Path, "log.path", "", "log path (default is stdout only)")
}

func SetupNodeFlags(nodeConf *Node, cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&nodeConf.URL, "node.url", "", "node REST endpoint")
}

func SetupTradeFlags(tradeConf *Trade, cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&tradeConf.SlippagePercent, "trade.slippage-percent", "3", "slippage tolerance in percent")
	cmd.PersistentFlags().StringVar(&tradeConf.DenominationAsset, "trade.denomination-asset", string(denom.AssetFull), "base-asset denomination for amounts")
	cmd.PersistentFlags().StringVar(&tradeConf.DenominationToken, "trade.denomination-token", string(denom.TokenFull), "token denomination for counts")
	cmd.PersistentFlags().Int64Var(&tradeConf.CustomTokenDecimals, "trade.custom-token-decimals", -1, "explicit token decimal count, overrides the denomination ladder")
}

func validateNodeConf(nodeConf Node) error {
	if util.StrNotSet(nodeConf.URL) {
		return errors.New("node url must be set")
	}
	return nil
}

func validateTradeConf(tradeConf Trade) error {
	if _, err := decimal.NewFromString(tradeConf.SlippagePercent); err != nil {
		return fmt.Errorf("slippage percent %q is not a decimal number", tradeConf.SlippagePercent)
	}
	if _, err := denom.TokenDecimals(tradeConf.Denomination()); err != nil {
		return err
	}
	return nil
}

// Denomination builds the denomination descriptor the trade config describes.
// A custom decimal count of -1 means "use the ladder entry".
func (tradeConf Trade) Denomination() denom.Denomination {
	d := denom.Denomination{
		Asset: denom.AssetDenomination(tradeConf.DenominationAsset),
		Token: denom.TokenDenomination(tradeConf.DenominationToken),
	}
	if tradeConf.CustomTokenDecimals >= 0 {
		custom := tradeConf.CustomTokenDecimals
		d.CustomTokenDecimals = &custom
	}
	return d
}

// Slippage returns the configured slippage tolerance as an exact decimal.
func (tradeConf Trade) Slippage() decimal.Decimal {
	return decimal.RequireFromString(tradeConf.SlippagePercent)
}

func (conf *SdkConfig) Validate() error {
	if err := validateNodeConf(conf.Node); err != nil {
		return err
	}
	return validateTradeConf(conf.Trade)
}
