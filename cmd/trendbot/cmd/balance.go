package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print the available wallet balance",
	RunE:  runBalance,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

func runBalance(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client := newClient(cfg)
	balance, err := client.BalanceUSD(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetch balance: %w", err)
	}

	fmt.Printf("Balance: $%.4f\n", balance)
	return nil
}
