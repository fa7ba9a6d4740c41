package cmd

import (
	"fmt"

	"github.com/bctsl/bctsl-sdk/config"
	"github.com/bctsl/bctsl-sdk/denom"
	"github.com/spf13/cobra"
)

var convertConfig struct {
	Count        string
	AssetToToken bool
}

func init() {
	convertCmd.Flags().StringVar(&convertConfig.Count, "count", "", "quantity to convert")
	convertCmd.Flags().BoolVar(&convertConfig.AssetToToken, "asset-to-token", false, "convert from the asset denomination to the token denomination instead")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Converts a quantity between token and base-asset denominations.",
	Long: `Converts a quantity between the configured token denomination and the
	configured base-asset denomination using exact decimal arithmetic. Purely
	local, no node round trip.`,
	Run: func(cmd *cobra.Command, args []string) {
		count := parseCount(convertConfig.Count)

		result, err := denom.ChangeTokenToAssetDenomination(count, conf.Trade.Denomination(), !convertConfig.AssetToToken)
		if err != nil {
			config.Log.Fatal("Could not convert", err)
		}

		fmt.Println(result)
	},
}
