package cmd

import (
	"fmt"

	"github.com/bctsl/bctsl-sdk/config"
	"github.com/bctsl/bctsl-sdk/sale"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var priceConfig struct {
	Sale  string
	Curve string
	Count string
	Fee   string
	Sell  bool
}

func init() {
	priceCmd.Flags().StringVar(&priceConfig.Sale, "sale", "", "token sale contract id")
	priceCmd.Flags().StringVar(&priceConfig.Count, "count", "1", "token count to price")
	priceCmd.Flags().BoolVar(&priceConfig.Sell, "sell", false, "quote the sell return instead of the buy price")
	rootCmd.AddCommand(priceCmd)

	initialPriceCmd.Flags().StringVar(&priceConfig.Curve, "curve", "", "bonding curve contract id")
	initialPriceCmd.Flags().StringVar(&priceConfig.Count, "count", "1", "token count to price")
	initialPriceCmd.Flags().StringVar(&priceConfig.Fee, "fee", "0", "protocol fee fraction applied on top of the curve price")
	rootCmd.AddCommand(initialPriceCmd)
}

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Quotes the current buy price or sell return of a token sale.",
	Run: func(cmd *cobra.Command, args []string) {
		client := nodeClient()
		count := parseCount(priceConfig.Count)
		s := sale.New(client, priceConfig.Sale)

		var result string
		var err error
		if priceConfig.Sell {
			result, err = s.SellReturn(count, conf.Trade.Denomination())
		} else {
			result, err = s.Price(count, conf.Trade.Denomination())
		}
		if err != nil {
			config.Log.Fatal("Could not fetch quote", err)
		}

		fmt.Println(result)
	},
}

var initialPriceCmd = &cobra.Command{
	Use:   "initial-price",
	Short: "Estimates the cost of the first buy on a fresh bonding curve.",
	Long: `Estimates the base-asset cost of moving a bonding curve's supply from
	zero to the requested count, inflated by the protocol fee and rounded up to
	the next whole smallest unit.`,
	Run: func(cmd *cobra.Command, args []string) {
		client := nodeClient()
		count := parseCount(priceConfig.Count)

		fee, err := decimal.NewFromString(priceConfig.Fee)
		if err != nil {
			config.Log.Fatalf("Fee %q is not a decimal number", priceConfig.Fee)
		}

		price, err := sale.EstimateInitialBuyPrice(client, priceConfig.Curve, count, conf.Trade.Denomination(), fee)
		if err != nil {
			config.Log.Fatal("Could not estimate initial buy price", err)
		}

		fmt.Println(price.String())
	},
}
