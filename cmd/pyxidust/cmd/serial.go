package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var mintQuantity int

var serialCmd = &cobra.Command{
	Use:   "serial",
	Short: "Mint and validate serials",
}

var serialMintCmd = &cobra.Command{
	Use:   "mint [existing-serial]",
	Short: "Mint the serials that follow an existing one",
	Long: `Mint serials. Without an existing serial a new base is taken from the
counter file. A base gets -0001, a full serial gets its counter
incremented, and a counter past 9999 starts a new base.

Examples:
  pyxidust serial mint
  pyxidust serial mint 20250042
  pyxidust serial mint 20250042-0007 -n 3`,
	Args: cobra.MaximumNArgs(1),
	RunE: run("mint", func(ctx context.Context, cmd *cobra.Command, args []string) error {
		existing := ""
		if len(args) == 1 {
			existing = strings.TrimSpace(args[0])
		}

		result, err := GetServices().MintSerial(existing, mintQuantity).Execute(ctx)
		if err != nil {
			return err
		}

		for _, s := range result.Serials {
			fmt.Println(s)
		}
		return nil
	}),
}

var serialBaseCmd = &cobra.Command{
	Use:   "base",
	Short: "Take the next base serial from the counter",
	Args:  cobra.NoArgs,
	RunE: run("base", func(ctx context.Context, cmd *cobra.Command, args []string) error {
		result, err := GetServices().NextBase().Execute(ctx)
		if err != nil {
			return err
		}

		fmt.Println(result.Base)
		return nil
	}),
}

var serialValidateCmd = &cobra.Command{
	Use:   "validate <serial>",
	Short: "Check the shape of a serial",
	Args:  cobra.ExactArgs(1),
	RunE: run("validate", func(ctx context.Context, cmd *cobra.Command, args []string) error {
		result, err := GetServices().ValidateSerial(args[0]).Execute(ctx)
		if err != nil {
			return err
		}

		fmt.Println(result.Message)
		return nil
	}),
}

func init() {
	serialMintCmd.Flags().IntVarP(&mintQuantity, "quantity", "n", 1, "number of serials to mint")

	serialCmd.AddCommand(serialMintCmd, serialBaseCmd, serialValidateCmd)
	rootCmd.AddCommand(serialCmd)
}
