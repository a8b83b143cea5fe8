// Package session owns the wallet connection: it asks the provider for
// accounts, keeps the wallet on the required chain, follows account
// changes and caches the token state shown to the user.
package session

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/Mohsinsiddi/tmbcli/internal/chain"
	"github.com/Mohsinsiddi/tmbcli/internal/contract"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// Provider is the wallet the session talks to.
type Provider interface {
	contract.Backend

	// RequestAccounts asks the user to authorize accounts.
	RequestAccounts(ctx context.Context) ([]common.Address, error)
	// Accounts lists the authorized accounts, primary first.
	Accounts(ctx context.Context) ([]common.Address, error)
	ChainID(ctx context.Context) (uint64, error)
	SwitchChain(ctx context.Context, id uint64) error
	// Signer resolves account, or the primary account when nil, to an
	// address the provider can send from.
	Signer(ctx context.Context, account *common.Address) (common.Address, error)
	// OnAccountsChanged registers fn for account changes. Calls must come
	// from the provider's own goroutine, never from inside another method.
	OnAccountsChanged(fn func([]common.Address)) (cancel func())
}

// Phase is the connection lifecycle state.
type Phase int

const (
	Disconnected Phase = iota
	Connecting
	Connected
	SwitchingAccount
)

func (p Phase) String() string {
	switch p {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case SwitchingAccount:
		return "switching account"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Session is the wallet connection record.
type Session struct {
	Connected         bool
	Connecting        bool
	Account           *common.Address
	AvailableAccounts []common.Address
	ChainID           uint64
}

// ContractView is the cached token state for the current account.
type ContractView struct {
	Owner   *common.Address
	Paused  bool
	Balance string
}

// State is a point-in-time copy of everything the Manager exposes.
type State struct {
	Phase Phase
	Session
	ContractView
}

// IsOwner reports whether the current account owns the contract.
func (s State) IsOwner() bool {
	return s.Account != nil && s.Owner != nil && *s.Account == *s.Owner
}

// Observer receives a State after every change. It runs on the goroutine
// that made the change and must not call the Manager's operations.
type Observer func(State)

// Manager is the session manager. Operations are serialized; State reads
// never wait on the network.
type Manager struct {
	provider     Provider
	contractAddr common.Address
	chainID      uint64
	log          *zap.Logger
	observers    []Observer

	op sync.Mutex

	mu          sync.RWMutex
	phase       Phase
	session     Session
	view        ContractView
	token       *contract.Token
	unsubscribe func()
	notifyCtx   context.Context
	notifyStop  context.CancelFunc
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithObserver adds a state observer.
func WithObserver(o Observer) Option {
	return func(m *Manager) { m.observers = append(m.observers, o) }
}

// WithContract overrides the token address.
func WithContract(addr common.Address) Option {
	return func(m *Manager) { m.contractAddr = addr }
}

// WithChainID overrides the chain the wallet must be on.
func WithChainID(id uint64) Option {
	return func(m *Manager) { m.chainID = id }
}

// New creates a disconnected Manager over p. A nil p is allowed; Connect
// then fails with ErrNoWalletFound.
func New(p Provider, opts ...Option) *Manager {
	m := &Manager{
		provider:     p,
		contractAddr: contract.DefaultAddress,
		chainID:      chain.SepoliaChainID,
		log:          zap.NewNop(),
		view:         initialView(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RequiredChainID is the chain the session enforces.
func (m *Manager) RequiredChainID() uint64 { return m.chainID }

// ContractAddress is the token the session binds to.
func (m *Manager) ContractAddress() common.Address { return m.contractAddr }

// Connect authorizes accounts, moves the wallet to the required chain and
// binds the token to the primary account. Connecting an already connected
// session does nothing.
func (m *Manager) Connect(ctx context.Context) (err error) {
	m.op.Lock()
	defer m.op.Unlock()

	if m.Phase() == Connected {
		return nil
	}
	defer func() { observeConnect(err) }()
	if m.provider == nil {
		return ErrNoWalletFound
	}

	m.update(func() {
		m.phase = Connecting
		m.session.Connecting = true
	})
	defer func() {
		if err != nil {
			m.log.Warn("wallet connect failed", zap.Error(err))
			m.reset()
		}
	}()

	if _, err := m.provider.RequestAccounts(ctx); err != nil {
		if isRejection(err) {
			return fmt.Errorf("%w: %w", ErrUserRejected, err)
		}
		return fmt.Errorf("%w: requesting accounts: %w", ErrConnectFailed, err)
	}
	if err := m.ensureChain(ctx); err != nil {
		return err
	}

	accounts, err := m.provider.Accounts(ctx)
	if err != nil {
		return fmt.Errorf("%w: listing accounts: %w", ErrConnectFailed, err)
	}
	primary, err := m.provider.Signer(ctx, nil)
	if err != nil {
		if isRejection(err) {
			return fmt.Errorf("%w: %w", ErrUserRejected, err)
		}
		return fmt.Errorf("%w: resolving signer: %w", ErrConnectFailed, err)
	}
	tok, err := contract.New(m.provider, m.contractAddr, primary)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConnectFailed, err)
	}
	view := m.fetchMetadata(ctx, tok)

	notifyCtx, stop := context.WithCancel(context.Background())
	m.update(func() {
		m.phase = Connected
		m.session = Session{
			Connected:         true,
			Account:           &primary,
			AvailableAccounts: withAccount(unique(accounts), primary),
			ChainID:           m.chainID,
		}
		m.view = view
		m.token = tok
		m.notifyCtx = notifyCtx
		m.notifyStop = stop
	})
	unsubscribe := m.provider.OnAccountsChanged(m.accountsChanged)
	m.mu.Lock()
	m.unsubscribe = unsubscribe
	m.mu.Unlock()

	setConnected(true)
	m.log.Info("wallet connected",
		zap.Stringer("account", primary),
		zap.Int("accounts", len(m.State().AvailableAccounts)),
		zap.Uint64("chain_id", m.chainID))

	if err := m.refresh(ctx); err != nil {
		m.log.Warn("initial balance refresh failed", zap.Error(err))
	}
	return nil
}

// Disconnect drops the session and stops following the wallet. It is
// safe to call at any time, any number of times.
func (m *Manager) Disconnect() {
	// Abort a notification-driven switch that may be holding the op lock.
	m.mu.RLock()
	stop := m.notifyStop
	m.mu.RUnlock()
	if stop != nil {
		stop()
	}

	m.op.Lock()
	defer m.op.Unlock()
	m.disconnect()
}

// SwitchAccount rebinds the session to target. It does nothing when target
// is already the current account or the session is not connected. On
// failure the previous account stays in place.
func (m *Manager) SwitchAccount(ctx context.Context, target common.Address) error {
	m.op.Lock()
	defer m.op.Unlock()
	return m.switchAccount(ctx, target, nil)
}

// Refresh re-reads the balance and paused flag. It makes no calls when
// disconnected. Failures are logged and returned wrapped in
// ErrRefreshFailed; the cached view is kept.
func (m *Manager) Refresh(ctx context.Context) error {
	m.op.Lock()
	defer m.op.Unlock()
	if m.Phase() != Connected {
		return nil
	}
	return m.refresh(ctx)
}

// State returns a copy of the current state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot()
}

// Phase returns the lifecycle phase.
func (m *Manager) Phase() Phase {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.phase
}

// IsOwner reports whether the connected account owns the contract.
func (m *Manager) IsOwner() bool {
	return m.State().IsOwner()
}

// Token returns the contract handle bound to the current account, or nil
// when disconnected.
func (m *Manager) Token() *contract.Token {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// --- internal ---

func (m *Manager) ensureChain(ctx context.Context) error {
	id, err := m.provider.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("%w: reading chain id: %w", ErrConnectFailed, err)
	}
	if id == m.chainID {
		return nil
	}

	m.log.Info("wallet on wrong chain, requesting switch", zap.Uint64("have", id), zap.Uint64("want", m.chainID))
	if err := m.provider.SwitchChain(ctx, m.chainID); err != nil {
		if errorCode(err) == codeUnrecognizedChain {
			return fmt.Errorf("%w: %w", ErrChainUnavailable, err)
		}
		return fmt.Errorf("%w: %w", ErrChainSwitchFailed, err)
	}

	id, err = m.provider.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrChainSwitchFailed, err)
	}
	if id != m.chainID {
		return fmt.Errorf("%w: wallet still on chain %d", ErrChainSwitchFailed, id)
	}
	return nil
}

// fetchMetadata reads owner and paused. Each read falls back to its
// default on failure.
func (m *Manager) fetchMetadata(ctx context.Context, tok *contract.Token) ContractView {
	view := initialView()
	if owner, err := tok.Owner(ctx); err != nil {
		m.log.Warn("failed to fetch contract owner", zap.Error(err))
	} else {
		view.Owner = &owner
	}
	if paused, err := tok.Paused(ctx); err != nil {
		m.log.Warn("failed to fetch paused status", zap.Error(err))
	} else {
		view.Paused = paused
	}
	return view
}

func (m *Manager) switchAccount(ctx context.Context, target common.Address, reported []common.Address) (err error) {
	st := m.State()
	if !st.Connected || st.Account == nil {
		return nil
	}
	if *st.Account == target {
		if reported != nil {
			m.update(func() { m.session.AvailableAccounts = withAccount(unique(reported), target) })
		}
		return nil
	}
	defer func() { observeSwitch(err) }()

	m.update(func() { m.phase = SwitchingAccount })
	defer func() {
		m.update(func() {
			if m.session.Connected {
				m.phase = Connected
			}
		})
	}()

	addr, err := m.provider.Signer(ctx, &target)
	if err != nil {
		m.log.Warn("account switch failed", zap.Stringer("target", target), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrAccountSwitchFailed, err)
	}
	tok, err := contract.New(m.provider, m.contractAddr, addr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAccountSwitchFailed, err)
	}
	view := m.fetchMetadata(ctx, tok)
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %w", ErrAccountSwitchFailed, ctx.Err())
	}

	m.update(func() {
		m.session.Account = &addr
		if reported != nil {
			m.session.AvailableAccounts = withAccount(unique(reported), addr)
		} else {
			m.session.AvailableAccounts = withAccount(m.session.AvailableAccounts, addr)
		}
		m.view = view
		m.token = tok
	})
	m.log.Info("account switched", zap.Stringer("from", *st.Account), zap.Stringer("to", addr))

	if err := m.refresh(ctx); err != nil {
		m.log.Warn("balance refresh after switch failed", zap.Error(err))
	}
	return nil
}

func (m *Manager) refresh(ctx context.Context) error {
	m.mu.RLock()
	tok, account := m.token, m.session.Account
	m.mu.RUnlock()
	if tok == nil || account == nil {
		return nil
	}

	err := func() error {
		balance, err := tok.BalanceOf(ctx, *account)
		if err != nil {
			return err
		}
		decimals, err := tok.Decimals(ctx)
		if err != nil {
			return err
		}
		paused, err := tok.Paused(ctx)
		if err != nil {
			return err
		}
		m.update(func() {
			m.view.Balance = chain.FormatUnits(balance, decimals)
			m.view.Paused = paused
		})
		return nil
	}()
	if err != nil {
		refreshFailures.Inc()
		m.log.Warn("failed to fetch balance or paused status", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}
	return nil
}

// accountsChanged handles wallet notifications for the session that was
// current when it was registered.
func (m *Manager) accountsChanged(accounts []common.Address) {
	m.mu.RLock()
	ctx := m.notifyCtx
	m.mu.RUnlock()
	if ctx == nil || ctx.Err() != nil {
		return
	}

	m.op.Lock()
	defer m.op.Unlock()
	m.mu.RLock()
	current := m.notifyCtx == ctx
	m.mu.RUnlock()
	if !current {
		return
	}

	if len(accounts) == 0 {
		m.log.Info("wallet reported no accounts, disconnecting")
		m.disconnect()
		return
	}
	if err := m.switchAccount(ctx, accounts[0], accounts); err != nil {
		m.log.Warn("following wallet account change failed", zap.Error(err))
	}
}

func (m *Manager) disconnect() {
	m.mu.RLock()
	unsubscribe, stop, was := m.unsubscribe, m.notifyStop, m.phase
	m.mu.RUnlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	if stop != nil {
		stop()
	}
	m.reset()
	setConnected(false)
	if was != Disconnected {
		m.log.Info("wallet disconnected")
	}
}

// reset returns every field to its initial value.
func (m *Manager) reset() {
	m.update(func() {
		m.phase = Disconnected
		m.session = Session{}
		m.view = initialView()
		m.token = nil
		m.unsubscribe = nil
		m.notifyCtx = nil
		m.notifyStop = nil
	})
}

// update applies fn under the state lock and notifies observers.
func (m *Manager) update(fn func()) {
	m.mu.Lock()
	fn()
	st := m.snapshot()
	m.mu.Unlock()

	for _, o := range m.observers {
		o(st)
	}
}

func (m *Manager) snapshot() State {
	st := State{
		Phase: m.phase,
		Session: Session{
			Connected:         m.session.Connected,
			Connecting:        m.session.Connecting,
			AvailableAccounts: slices.Clone(m.session.AvailableAccounts),
			ChainID:           m.session.ChainID,
		},
		ContractView: ContractView{
			Paused:  m.view.Paused,
			Balance: m.view.Balance,
		},
	}
	if st.AvailableAccounts == nil {
		st.AvailableAccounts = []common.Address{}
	}
	if m.session.Account != nil {
		a := *m.session.Account
		st.Account = &a
	}
	if m.view.Owner != nil {
		o := *m.view.Owner
		st.Owner = &o
	}
	return st
}

func initialView() ContractView {
	return ContractView{Balance: "0"}
}

// unique drops repeated addresses, keeping first occurrences in order.
func unique(accounts []common.Address) []common.Address {
	out := make([]common.Address, 0, len(accounts))
	for _, a := range accounts {
		if !slices.Contains(out, a) {
			out = append(out, a)
		}
	}
	return out
}

// withAccount makes sure a is listed, prepending it when missing.
func withAccount(accounts []common.Address, a common.Address) []common.Address {
	if slices.Contains(accounts, a) {
		return accounts
	}
	return append([]common.Address{a}, accounts...)
}
