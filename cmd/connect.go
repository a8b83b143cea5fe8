package cmd

import (
	"fmt"

	"github.com/Mohsinsiddi/tmbcli/internal/ui"
	"github.com/spf13/cobra"
)

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Connect the wallet and show the session",
	Long: `Request accounts from the configured wallet provider, switch it to the
contract's network and print the resulting session.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		fmt.Println(ui.Success("Wallet Connected!"))
		fmt.Println(ui.KeyValueBlock("Session", a.sessionPairs()))
		return nil
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the connected account's TMB balance",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		st := a.session.State()
		fmt.Printf("%s  %s\n", ui.Addr(st.Account.Hex()), ui.Val(st.Balance+" "+a.symbol))
		if st.Paused {
			fmt.Println(ui.Warn("Contract is currently paused"))
		}
		return nil
	},
}
