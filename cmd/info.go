package cmd

import (
	"fmt"

	"github.com/Mohsinsiddi/tmbcli/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show token metadata and contract status",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		ctx := cmd.Context()
		tok := a.session.Token()
		pairs := [][2]string{{"Contract", a.session.ContractAddress().Hex()}}

		if name, err := tok.Name(ctx); err == nil {
			pairs = append(pairs, [2]string{"Name", name})
		} else {
			logger.Debug("name lookup failed", zap.Error(err))
		}
		pairs = append(pairs,
			[2]string{"Symbol", a.symbol},
			[2]string{"Decimals", fmt.Sprintf("%d", a.decimals)},
		)
		if supply, err := tok.TotalSupply(ctx); err == nil {
			pairs = append(pairs, [2]string{"Total supply", a.amount(supply)})
		}
		if capacity, err := tok.Cap(ctx); err == nil {
			pairs = append(pairs, [2]string{"Cap", a.amount(capacity)})
		}
		if claimed, err := tok.HasClaimedFaucet(ctx, tok.From()); err == nil {
			faucet := "available"
			if claimed {
				faucet = "already claimed"
			}
			pairs = append(pairs, [2]string{"Faucet", faucet})
		}

		fmt.Println(ui.KeyValueBlock("TMB Token", pairs))
		fmt.Println(ui.KeyValueBlock("Session", a.sessionPairs()))
		if a.network != nil {
			fmt.Println(ui.Meta(a.network.AddressURL(a.session.ContractAddress().Hex())))
		}
		return nil
	},
}
