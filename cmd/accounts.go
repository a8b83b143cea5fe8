package cmd

import (
	"fmt"

	"github.com/Mohsinsiddi/tmbcli/internal/ui"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List the accounts the wallet exposes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		st := a.session.State()
		t := ui.NewTable([]ui.Column{
			{Title: "", Width: 2},
			{Title: "Account", Width: 42},
			{Title: "Balance", Width: 24},
		})
		tok := a.session.Token()
		for _, acc := range st.AvailableAccounts {
			mark := ""
			if st.Account != nil && acc == *st.Account {
				mark = "●"
			}
			bal := "?"
			if v, err := tok.BalanceOf(cmd.Context(), acc); err == nil {
				bal = a.amount(v)
			} else {
				logger.Debug("balance lookup failed", zap.Stringer("account", acc), zap.Error(err))
			}
			t.AddRow(ui.Row{mark, acc.Hex(), bal})
		}
		fmt.Println(t.Render())
		fmt.Println(ui.Hint("Switch with: tmb accounts use <address>"))
		return nil
	},
}

var accountsUseCmd = &cobra.Command{
	Use:   "use [address]",
	Short: "Switch the active account",
	Long: `Switch the session to another exposed account. Without an argument an
interactive picker is shown. For local wallets the choice is remembered
as the default wallet.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		st := a.session.State()
		var target common.Address
		if len(args) == 1 {
			if target, err = parseAddress(args[0], "account"); err != nil {
				return err
			}
		} else {
			items := make([]ui.PickerItem, 0, len(st.AvailableAccounts))
			for _, acc := range st.AvailableAccounts {
				items = append(items, ui.PickerItem{
					Label:   ui.TruncateAddr(acc.Hex()),
					Value:   acc.Hex(),
					Current: st.Account != nil && acc == *st.Account,
				})
			}
			picked, err := ui.PickItem("Select account", items)
			if err != nil {
				return err
			}
			if picked == "" {
				fmt.Println(ui.Meta("Cancelled."))
				return nil
			}
			target = common.HexToAddress(picked)
		}

		ctx := cmd.Context()
		if err := a.session.SwitchAccount(ctx, target); err != nil {
			return err
		}
		if a.keystore != nil {
			if err := a.keystore.Select(ctx, target); err != nil {
				return err
			}
			if err := rememberDefault(target); err != nil {
				logger.Warn("default wallet not saved", zap.Error(err))
			}
		}

		fmt.Println(ui.Success("Account switched!"))
		fmt.Println(ui.KeyValueBlock("Session", a.sessionPairs()))
		return nil
	},
}

// rememberDefault makes the wallet holding addr the default one.
func rememberDefault(addr common.Address) error {
	mgr := newWalletManager()
	w, err := mgr.FindByAddress(addr)
	if err != nil {
		return err
	}
	if err := mgr.SetDefault(w.Name); err != nil {
		return err
	}
	cfg.DefaultWallet = w.Name
	return cfg.Save()
}
