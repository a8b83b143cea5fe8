package cmd

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Mohsinsiddi/tmbcli/internal/chain"
	"github.com/Mohsinsiddi/tmbcli/internal/config"
	"github.com/Mohsinsiddi/tmbcli/internal/contract"
	"github.com/Mohsinsiddi/tmbcli/internal/errmsg"
	"github.com/Mohsinsiddi/tmbcli/internal/provider"
	"github.com/Mohsinsiddi/tmbcli/internal/session"
	"github.com/Mohsinsiddi/tmbcli/internal/ui"
	"github.com/Mohsinsiddi/tmbcli/internal/wallet"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errPaused = errors.New("contract is currently paused")

// app is one connected session plus what commands need around it.
type app struct {
	session  *session.Manager
	keystore *provider.Keystore // nil for remote wallets
	network  *chain.Network
	symbol   string
	decimals uint8
	close    func()
}

// newWalletManager creates a Manager backed by the config-dir JSON store
// and the OS keychain.
func newWalletManager() *wallet.Manager {
	store := wallet.NewJSONStore(filepath.Join(cfg.Dir(), "wallets.json"))
	return wallet.NewManager(wallet.WithStore(store), wallet.WithKeyStore(newKeystore()))
}

func newKeyCache() *wallet.KeyCache {
	return wallet.NewKeyCache("")
}

func newKeystore() *wallet.Keystore {
	return wallet.DefaultKeystore(cfg.Dir(), newKeyCache())
}

// approver asks once per process before revealing keystore accounts.
func approver() provider.ApproveFunc {
	var (
		mu       sync.Mutex
		approved bool
	)
	return func(_ context.Context, accounts []common.Address) (bool, error) {
		mu.Lock()
		defer mu.Unlock()
		if approved || assumeYes {
			return true, nil
		}
		fmt.Println(ui.Info(fmt.Sprintf("tmb requests access to %d account(s):", len(accounts))))
		for _, a := range accounts {
			fmt.Println("  " + ui.Addr(a.Hex()))
		}
		approved = ui.Confirm("Connect these accounts?")
		return approved, nil
	}
}

// newProvider builds the configured wallet provider. It returns a nil
// provider when the keystore has no signing wallet.
func newProvider(ctx context.Context) (session.Provider, *provider.Keystore, func(), error) {
	switch cfg.Provider {
	case config.ProviderRemote:
		r, err := provider.DialRemote(ctx, cfg.WalletURL, provider.WithRemoteLogger(logger.Named("remote")))
		if err != nil {
			return nil, nil, nil, fmt.Errorf("%w: %w", session.ErrNoWalletFound, err)
		}
		return r, nil, r.Close, nil

	case config.ProviderKeystore, "":
		mgr := newWalletManager()
		if len(mgr.Signing()) == 0 {
			return nil, nil, func() {}, nil
		}
		if name := cfg.DefaultWallet; name != "" {
			if d := mgr.Default(); d == nil || d.Name != name {
				if err := mgr.SetDefault(name); err != nil {
					logger.Warn("default_wallet not applied", zap.String("wallet", name), zap.Error(err))
				}
			}
		}
		algo, err := cfg.Algorithm()
		if err != nil {
			return nil, nil, nil, err
		}
		k := provider.NewKeystore(mgr, chain.NewRegistry(),
			provider.WithApprover(approver()),
			provider.WithCustomRPCs(cfg.CustomRPCs),
			provider.WithAlgorithm(algo),
			provider.WithKeystoreLogger(logger.Named("keystore")),
		)
		return k, k, func() {}, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown provider %q (keystore, remote)", cfg.Provider)
	}
}

// openApp connects a session and loads the token's symbol and decimals.
// opts are appended to the session options.
func openApp(cmd *cobra.Command, opts ...session.Option) (*app, error) {
	ctx, cancel := context.WithTimeout(cmd.Context(), config.ConnectTimeout)
	defer cancel()

	addr, err := cfg.Contract(contract.DefaultAddress)
	if err != nil {
		return nil, err
	}
	p, ks, closeFn, err := newProvider(ctx)
	if err != nil {
		return nil, err
	}

	opts = append([]session.Option{
		session.WithLogger(logger.Named("session")),
		session.WithContract(addr),
	}, opts...)
	m := session.New(p, opts...)
	if err := m.Connect(ctx); err != nil {
		closeFn()
		return nil, err
	}

	a := &app{
		session:  m,
		keystore: ks,
		symbol:   "TMB",
		decimals: 18,
		close: func() {
			m.Disconnect()
			closeFn()
		},
	}
	a.network, _ = chain.NewRegistry().GetByChainID(m.RequiredChainID())

	tok := m.Token()
	if sym, err := tok.Symbol(ctx); err == nil && sym != "" {
		a.symbol = sym
	} else if err != nil {
		logger.Debug("symbol lookup failed", zap.Error(err))
	}
	if dec, err := tok.Decimals(ctx); err == nil {
		a.decimals = dec
	} else {
		logger.Debug("decimals lookup failed", zap.Error(err))
	}
	return a, nil
}

// amount renders raw token units with the symbol.
func (a *app) amount(raw *big.Int) string {
	return chain.FormatUnits(raw, a.decimals) + " " + a.symbol
}

func (a *app) txURL(hash common.Hash) string {
	if a.network == nil {
		return hash.Hex()
	}
	return a.network.TxURL(hash.Hex())
}

// sessionPairs is the session card shown by connect and balance.
func (a *app) sessionPairs() [][2]string {
	st := a.session.State()
	account := "none"
	if st.Account != nil {
		account = st.Account.Hex()
	}
	owner := "unknown"
	if st.Owner != nil {
		owner = st.Owner.Hex()
		if st.IsOwner() {
			owner += " (you)"
		}
	}
	status := ui.StyleSuccess.Render("active")
	if st.Paused {
		status = ui.StyleError.Render("paused")
	}
	network := fmt.Sprintf("%d", st.ChainID)
	if a.network != nil {
		network = fmt.Sprintf("%s (%d)", a.network.DisplayName, st.ChainID)
	}
	return [][2]string{
		{"Account", account},
		{"Accounts", fmt.Sprintf("%d available", len(st.AvailableAccounts))},
		{"Network", network},
		{"Contract", a.session.ContractAddress().Hex()},
		{"Balance", st.Balance + " " + a.symbol},
		{"Status", status},
		{"Owner", owner},
	}
}

// txFunc broadcasts one contract write.
type txFunc func(context.Context) (common.Hash, error)

// send previews a write, asks for confirmation, broadcasts it, waits for
// the receipt and refreshes the session. It reports false when the user
// declined.
func (a *app) send(cmd *cobra.Command, title string, preview [][2]string, write txFunc, diagnose func(context.Context) error) (bool, error) {
	fmt.Println(ui.KeyValueBlock(title, preview))
	if !assumeYes && !ui.Confirm("Send transaction?") {
		fmt.Println(ui.Meta("Cancelled."))
		return false, nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.TxWait())
	defer cancel()

	hash, err := a.broadcast(ctx, write, diagnose)
	if err != nil {
		return false, err
	}
	fmt.Println(ui.Info("Transaction sent! Waiting for confirmation..."))
	fmt.Println(ui.Meta("  " + a.txURL(hash)))

	if _, err := ui.Spin("Waiting for confirmation…", func() (*chain.Receipt, error) {
		return a.confirm(ctx, hash)
	}); err != nil {
		return false, err
	}
	if err := a.session.Refresh(ctx); err != nil {
		fmt.Println(ui.Warn(session.Message(err)))
	}
	return true, nil
}

// broadcast sends the write. diagnose, when set, re-runs the call
// statically after a failed send to surface the revert reason.
func (a *app) broadcast(ctx context.Context, write txFunc, diagnose func(context.Context) error) (common.Hash, error) {
	hash, err := write(ctx)
	if err != nil {
		if diagnose != nil {
			if derr := diagnose(ctx); derr != nil {
				err = derr
			}
		}
		logger.Debug("transaction failed", zap.Error(err))
		return common.Hash{}, txError(err)
	}
	logger.Info("transaction sent", zap.Stringer("hash", hash), zap.Stringer("from", a.session.Token().From()))
	return hash, nil
}

// confirm waits for hash to be mined; a reverted receipt is an error.
func (a *app) confirm(ctx context.Context, hash common.Hash) (*chain.Receipt, error) {
	receipt, err := a.session.Token().Wait(ctx, hash)
	if err == nil && receipt != nil && receipt.Status == 0 {
		err = errors.New("transaction reverted")
	}
	if err != nil {
		return receipt, txError(err)
	}
	logger.Info("transaction confirmed", zap.Stringer("hash", hash), zap.Uint64("block", receipt.BlockNumber))
	return receipt, nil
}

// transact is the non-interactive path used by the dashboard.
func (a *app) transact(ctx context.Context, write txFunc, diagnose func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, cfg.TxWait())
	defer cancel()

	hash, err := a.broadcast(ctx, write, diagnose)
	if err != nil {
		return err
	}
	if _, err := a.confirm(ctx, hash); err != nil {
		return err
	}
	if err := a.session.Refresh(ctx); err != nil {
		logger.Warn("refresh after transaction failed", zap.Error(err))
	}
	return nil
}

// txError replaces err's text with a friendly message while keeping it
// reachable through errors.Is/As.
func txError(err error) error {
	return &friendlyError{msg: errmsg.Translate(err), err: err}
}

type friendlyError struct {
	msg string
	err error
}

func (e *friendlyError) Error() string { return e.msg }
func (e *friendlyError) Unwrap() error { return e.err }

// parseAddress validates a user-supplied address; the zero address is refused.
func parseAddress(s, what string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid %s address %q", what, s)
	}
	addr := common.HexToAddress(s)
	if addr == (common.Address{}) {
		return common.Address{}, fmt.Errorf("invalid %s address: zero address", what)
	}
	return addr, nil
}

// parseAmount converts a decimal token amount into base units; it must be positive.
func parseAmount(s string, decimals uint8) (*big.Int, error) {
	v, err := chain.ParseUnits(s, decimals)
	if err != nil {
		return nil, err
	}
	if v.Sign() == 0 {
		return nil, fmt.Errorf("%w: amount must be greater than zero", chain.ErrInvalidAmount)
	}
	return v, nil
}
