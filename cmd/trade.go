package cmd

import (
	"fmt"

	"github.com/bctsl/bctsl-sdk/config"
	"github.com/bctsl/bctsl-sdk/sale"
	"github.com/spf13/cobra"
)

var tradeConfig struct {
	Sale    string
	Account string
	Count   string
}

func setupTradeSpecificFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&tradeConfig.Sale, "sale", "", "token sale contract id")
	cmd.Flags().StringVar(&tradeConfig.Account, "account", "", "account the trade is submitted for")
	cmd.Flags().StringVar(&tradeConfig.Count, "count", "", "token count to trade")
}

func init() {
	setupTradeSpecificFlags(buyCmd)
	setupTradeSpecificFlags(sellCmd)
	rootCmd.AddCommand(buyCmd)
	rootCmd.AddCommand(sellCmd)
}

var buyCmd = &cobra.Command{
	Use:   "buy",
	Short: "Buys from a token sale under the configured slippage tolerance.",
	Long: `Fetches the current price for the requested count, authorizes it plus
	the configured slippage tolerance, and submits the buy. If the price rises
	past the authorized amount before execution the node rejects the buy and the
	rejection is printed verbatim.`,
	Run: func(cmd *cobra.Command, args []string) {
		client := nodeClient()
		count := parseCount(tradeConfig.Count)

		s := sale.New(client, tradeConfig.Sale)
		txHash, err := s.Buy(tradeConfig.Account, count, conf.Trade.Denomination(), conf.Trade.Slippage())
		if err != nil {
			config.Log.Fatal("Buy failed", err)
		}

		fmt.Println(txHash)
	},
}

var sellCmd = &cobra.Command{
	Use:   "sell",
	Short: "Sells to a token sale under the configured slippage tolerance.",
	Long: `Moves the sell allowance to the requested count, fetches the current
	return, and submits the sell with its slippage-derived minimum. If the
	allowance step fails the sell is never attempted.`,
	Run: func(cmd *cobra.Command, args []string) {
		client := nodeClient()
		count := parseCount(tradeConfig.Count)

		s := sale.New(client, tradeConfig.Sale)
		txHash, err := s.Sell(tradeConfig.Account, count, conf.Trade.Denomination(), conf.Trade.Slippage())
		if err != nil {
			config.Log.Fatal("Sell failed", err)
		}

		fmt.Println(txHash)
	},
}
