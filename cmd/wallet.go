package cmd

import (
	"fmt"
	"strings"

	"github.com/99designs/keyring"
	"github.com/Mohsinsiddi/tmbcli/internal/ui"
	"github.com/Mohsinsiddi/tmbcli/internal/wallet"
	"github.com/spf13/cobra"
)

var (
	walletKeyFlag   string
	walletUnlockAll bool
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage local wallets",
	Long: `Manage the wallets used by the keystore provider. Signing wallets keep
their private key in the OS keychain and are the accounts exposed on
connect. Watch-only wallets are kept for reference.`,
}

var walletAddCmd = &cobra.Command{
	Use:   "add <name> [address]",
	Short: "Add a wallet",
	Long: `Add a signing wallet from a private key, or a watch-only wallet from an
address. Without --key or an address the key is read from the terminal
without echo.

  tmb wallet add alice                # prompts for the key
  tmb wallet add alice --key 0xabc... # signing
  tmb wallet add bob 0x1234...        # watch-only`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		mgr := newWalletManager()

		if len(args) == 2 && walletKeyFlag == "" {
			if err := mgr.Add(name, &wallet.Wallet{Address: args[1], Type: wallet.TypeWatchOnly}); err != nil {
				return err
			}
			w, _ := mgr.Get(name)
			fmt.Println(ui.Success(fmt.Sprintf("Watch-only wallet %q added: %s", name, ui.Addr(w.Address))))
			return nil
		}

		key := walletKeyFlag
		if key == "" {
			var err error
			if key, err = keyring.TerminalPrompt("Private key for " + name); err != nil {
				return fmt.Errorf("reading key: %w", err)
			}
		}
		w, err := mgr.AddWithKey(name, strings.TrimSpace(key))
		if err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Signing wallet %q added: %s", name, ui.Addr(w.Address))))
		fmt.Println(ui.Hint("Set as default with: tmb wallet use " + name))
		return nil
	},
}

var walletListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all wallets",
	RunE: func(_ *cobra.Command, _ []string) error {
		mgr := newWalletManager()
		wallets := mgr.List()
		if len(wallets) == 0 {
			fmt.Println(ui.Info("No wallets configured yet."))
			fmt.Println(ui.Hint("Create one with: tmb wallet generate <name>"))
			return nil
		}

		cache := newKeyCache()
		t := ui.NewTable([]ui.Column{
			{Title: "Name", Width: 16},
			{Title: "Address", Width: 44},
			{Title: "Type", Width: 12},
			{Title: "Default", Width: 8},
			{Title: "Unlocked", Width: 8},
		})
		for _, w := range wallets {
			def, unlocked := "", ""
			if w.IsDefault {
				def = ui.StyleSuccess.Render("✓")
			}
			if w.CanSign() && cache.Unlocked(w.Name) {
				unlocked = ui.StyleSuccess.Render("✓")
			}
			t.AddRow(ui.Row{ui.Val(w.Name), ui.Addr(w.Address), ui.Meta(walletTypeLabel(w.Type)), def, unlocked})
		}
		fmt.Println(t.Render())
		fmt.Println(ui.Meta(fmt.Sprintf("%d wallet(s) configured", len(wallets))))
		return nil
	},
}

var walletRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a wallet and its stored key",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		name := args[0]
		if !assumeYes && !ui.ConfirmDanger(fmt.Sprintf("Remove wallet %q?", name)) {
			fmt.Println(ui.Meta("Cancelled."))
			return nil
		}
		if err := newWalletManager().Remove(name); err != nil {
			return err
		}
		if cfg.DefaultWallet == name {
			cfg.DefaultWallet = ""
			if err := cfg.Save(); err != nil {
				return err
			}
		}
		fmt.Println(ui.Success(fmt.Sprintf("Wallet %q removed.", name)))
		return nil
	},
}

var walletUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set the default wallet (the primary account on connect)",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		name := args[0]
		if err := newWalletManager().SetDefault(name); err != nil {
			return err
		}
		cfg.DefaultWallet = name
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Default wallet set to %q.", name)))
		return nil
	},
}

var walletGenerateCmd = &cobra.Command{
	Use:   "generate <name>",
	Short: "Generate a new signing wallet",
	Long: `Generate a new EVM keypair and store the private key in the OS keychain.

The private key is displayed once. Re-export later with: tmb wallet export <name>`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		w, hexKey, err := newWalletManager().Generate(args[0])
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Printf("  %s  %s\n", ui.Meta("Wallet :"), ui.Val(w.Name))
		fmt.Printf("  %s  %s\n\n", ui.Meta("Address:"), ui.Addr(w.Address))
		fmt.Println(ui.DangerBox(
			ui.Warn("SAVE YOUR PRIVATE KEY. It is shown only once. Never share it.") + "\n\n" +
				ui.Val(hexKey),
		))
		fmt.Println(ui.Hint("Fund it with Sepolia ETH for gas: tmb faucet eth"))
		return nil
	},
}

var walletExportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Reveal the private key of a signing wallet",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		name := args[0]
		fmt.Println(ui.Warn("You are about to reveal a private key. Keep it secret."))
		if ui.Prompt(fmt.Sprintf("Type wallet name %q to confirm", name), "") != name {
			fmt.Println(ui.Err("Name mismatch, export cancelled."))
			return nil
		}
		hexKey, err := newWalletManager().ExportKey(name)
		if err != nil {
			return err
		}
		fmt.Println(ui.DangerBox(ui.Warn("PRIVATE KEY. Do not share it.") + "\n\n" + ui.Val(hexKey)))
		return nil
	},
}

var walletUnlockCmd = &cobra.Command{
	Use:   "unlock [name]",
	Short: "Cache wallet keys so signing skips keychain prompts",
	Long: `Read private keys from the OS keychain once and keep them in a 0600
cache file until "tmb wallet lock".

  tmb wallet unlock         # pick a wallet
  tmb wallet unlock alice   # one wallet
  tmb wallet unlock --all   # every signing wallet`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		mgr := newWalletManager()
		cache := newKeyCache()
		signing := mgr.Signing()
		if len(signing) == 0 {
			fmt.Println(ui.Info("No signing wallets found."))
			return nil
		}

		var picked []*wallet.Wallet
		switch {
		case walletUnlockAll:
			picked = signing
		case len(args) == 1:
			w, err := mgr.Get(args[0])
			if err != nil {
				return err
			}
			if !w.CanSign() {
				return fmt.Errorf("wallet %q is watch-only", w.Name)
			}
			picked = []*wallet.Wallet{w}
		default:
			items := make([]ui.PickerItem, len(signing))
			for i, w := range signing {
				sub := ui.TruncateAddr(w.Address)
				if cache.Unlocked(w.Name) {
					sub += "  " + ui.Meta("[cached]")
				}
				items[i] = ui.PickerItem{Label: w.Name, SubLabel: sub, Value: w.Name, Current: w.IsDefault}
			}
			name, err := ui.PickItem("Unlock Wallet", items)
			if err != nil {
				return err
			}
			if name == "" {
				fmt.Println(ui.Meta("Cancelled."))
				return nil
			}
			w, err := mgr.Get(name)
			if err != nil {
				return err
			}
			picked = []*wallet.Wallet{w}
		}

		fmt.Println(ui.Info("Your OS keychain may prompt once per wallet."))
		cached := cache.Snapshot()
		keys := mgr.KeyStore()
		fresh := make(map[string]string)
		for _, w := range picked {
			if _, ok := cached[w.KeyRef]; ok {
				fmt.Println(ui.Meta(fmt.Sprintf("  %-20s already cached", w.Name)))
				continue
			}
			hexKey, err := keys.Retrieve(w.KeyRef)
			if err != nil {
				fmt.Println(ui.Err(fmt.Sprintf("  %-20s %v", w.Name, err)))
				continue
			}
			fresh[w.KeyRef] = hexKey
			fmt.Println(ui.Success(fmt.Sprintf("  %-20s unlocked", w.Name)))
		}
		if err := cache.PutAll(fresh); err != nil {
			return fmt.Errorf("writing key cache: %w", err)
		}
		if len(fresh) > 0 {
			fmt.Println(ui.Success(fmt.Sprintf("%d wallet(s) cached until 'tmb wallet lock'.", len(fresh))))
		}
		return nil
	},
}

var walletLockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Clear the key cache",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cache := newKeyCache()
		if !cache.Active() {
			fmt.Println(ui.Meta("No cached keys, nothing to clear."))
			return nil
		}
		if err := cache.Clear(); err != nil {
			return fmt.Errorf("clearing key cache: %w", err)
		}
		fmt.Println(ui.Success("Key cache cleared."))
		return nil
	},
}

// walletTypeLabel converts an internal wallet type to a user-friendly label.
func walletTypeLabel(t string) string {
	if t == wallet.TypeSigning {
		return "read-write"
	}
	return t
}

func init() {
	walletAddCmd.Flags().StringVar(&walletKeyFlag, "key", "", "private key for a signing wallet (stored in the OS keychain)")
	walletUnlockCmd.Flags().BoolVar(&walletUnlockAll, "all", false, "unlock every signing wallet")
	walletCmd.AddCommand(walletAddCmd, walletListCmd, walletRemoveCmd, walletUseCmd,
		walletGenerateCmd, walletExportCmd, walletUnlockCmd, walletLockCmd)
}
