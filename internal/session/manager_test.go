package session_test

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Mohsinsiddi/tmbcli/internal/chain"
	"github.com/Mohsinsiddi/tmbcli/internal/contract"
	"github.com/Mohsinsiddi/tmbcli/internal/mocks"
	"github.com/Mohsinsiddi/tmbcli/internal/provider"
	"github.com/Mohsinsiddi/tmbcli/internal/session"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	alice = common.HexToAddress("0x00000000000000000000000000000000000a11ce")
	bob   = common.HexToAddress("0x0000000000000000000000000000000000000b0b")
	carol = common.HexToAddress("0x00000000000000000000000000000000000ca201")
)

const (
	selOwner     = "0x8da5cb5b"
	selPaused    = "0x5c975abb"
	selBalanceOf = "0x70a08231"
	selDecimals  = "0x313ce567"
)

func anyCtx() interface{} {
	return mock.MatchedBy(func(context.Context) bool { return true })
}

func selector(hex string) interface{} {
	want := hexutil.MustDecode(hex)
	return mock.MatchedBy(func(data []byte) bool {
		return len(data) >= 4 && string(data[:4]) == string(want)
	})
}

func addrPtr(want common.Address) interface{} {
	return mock.MatchedBy(func(a *common.Address) bool { return a != nil && *a == want })
}

func packed(t *testing.T, method string, values ...interface{}) []byte {
	t.Helper()
	parsed, err := contract.ABI()
	require.NoError(t, err)
	out, err := parsed.Methods[method].Outputs.Pack(values...)
	require.NoError(t, err)
	return out
}

func tokens(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
}

// contractReads answers owner, paused, decimals and balanceOf for any caller.
func contractReads(t *testing.T, p *mocks.MockProvider, owner common.Address, paused bool, balance *big.Int) {
	t.Helper()
	p.EXPECT().CallContract(anyCtx(), mock.Anything, contract.DefaultAddress, selector(selOwner)).
		Return(packed(t, "owner", owner), nil).Maybe()
	p.EXPECT().CallContract(anyCtx(), mock.Anything, contract.DefaultAddress, selector(selPaused)).
		Return(packed(t, "paused", paused), nil).Maybe()
	p.EXPECT().CallContract(anyCtx(), mock.Anything, contract.DefaultAddress, selector(selDecimals)).
		Return(packed(t, "decimals", uint8(18)), nil).Maybe()
	p.EXPECT().CallContract(anyCtx(), mock.Anything, contract.DefaultAddress, selector(selBalanceOf)).
		Return(packed(t, "balanceOf", balance), nil).Maybe()
}

// walletReady sets up a wallet already on Sepolia that authorizes accounts
// and captures the account-change callback.
func walletReady(t *testing.T, p *mocks.MockProvider, accounts ...common.Address) *func([]common.Address) {
	t.Helper()
	var notify func([]common.Address)
	p.EXPECT().RequestAccounts(anyCtx()).Return(accounts, nil).Once()
	p.EXPECT().ChainID(anyCtx()).Return(chain.SepoliaChainID, nil).Once()
	p.EXPECT().Accounts(anyCtx()).Return(accounts, nil).Once()
	p.EXPECT().Signer(anyCtx(), (*common.Address)(nil)).Return(accounts[0], nil).Once()
	p.EXPECT().OnAccountsChanged(mock.Anything).RunAndReturn(func(fn func([]common.Address)) func() {
		notify = fn
		return func() {}
	}).Once()
	return &notify
}

func connected(t *testing.T, accounts ...common.Address) (*session.Manager, *mocks.MockProvider, *func([]common.Address)) {
	t.Helper()
	p := mocks.NewMockProvider(t)
	notify := walletReady(t, p, accounts...)
	contractReads(t, p, alice, false, tokens(10))

	m := session.New(p)
	require.NoError(t, m.Connect(context.Background()))
	return m, p, notify
}

func assertInitial(t *testing.T, st session.State) {
	t.Helper()
	assert.Equal(t, session.Disconnected, st.Phase)
	assert.False(t, st.Connected)
	assert.False(t, st.Connecting)
	assert.Nil(t, st.Account)
	assert.Empty(t, st.AvailableAccounts)
	assert.Zero(t, st.ChainID)
	assert.Nil(t, st.Owner)
	assert.False(t, st.Paused)
	assert.Equal(t, "0", st.Balance)
}

func TestNewIsDisconnected(t *testing.T) {
	assertInitial(t, session.New(mocks.NewMockProvider(t)).State())
}

func TestConnect(t *testing.T) {
	m, _, _ := connected(t, alice, bob)

	st := m.State()
	assert.Equal(t, session.Connected, st.Phase)
	assert.True(t, st.Connected)
	assert.False(t, st.Connecting)
	require.NotNil(t, st.Account)
	assert.Equal(t, alice, *st.Account)
	assert.Contains(t, st.AvailableAccounts, *st.Account)
	assert.Equal(t, []common.Address{alice, bob}, st.AvailableAccounts)
	assert.Equal(t, chain.SepoliaChainID, st.ChainID)
	assert.Equal(t, "10.0", st.Balance)
	assert.True(t, st.IsOwner())
	assert.True(t, m.IsOwner())
	require.NotNil(t, m.Token())
	assert.Equal(t, alice, m.Token().From())
}

func TestConnectTwiceIsNoop(t *testing.T) {
	m, _, _ := connected(t, alice)
	// Every wallet expectation was registered with Once.
	require.NoError(t, m.Connect(context.Background()))
	assert.True(t, m.State().Connected)
}

func TestConnectWithoutProvider(t *testing.T) {
	m := session.New(nil)
	err := m.Connect(context.Background())
	assert.ErrorIs(t, err, session.ErrNoWalletFound)
	assertInitial(t, m.State())
}

func TestConnectRejected(t *testing.T) {
	p := mocks.NewMockProvider(t)
	p.EXPECT().RequestAccounts(anyCtx()).Return(nil, &provider.Error{Code: 4001, Message: "User rejected the request."})

	m := session.New(p)
	err := m.Connect(context.Background())
	require.ErrorIs(t, err, session.ErrUserRejected)
	assert.Equal(t, "Connection cancelled", session.Message(err))

	st := m.State()
	assert.False(t, st.Connected)
	assert.False(t, st.Connecting)
	assert.Equal(t, session.Disconnected, st.Phase)
}

func TestConnectRejectedByMessage(t *testing.T) {
	p := mocks.NewMockProvider(t)
	p.EXPECT().RequestAccounts(anyCtx()).Return(nil, errors.New("request denied by user"))

	err := session.New(p).Connect(context.Background())
	assert.ErrorIs(t, err, session.ErrUserRejected)
}

func TestConnectOtherFailure(t *testing.T) {
	p := mocks.NewMockProvider(t)
	p.EXPECT().RequestAccounts(anyCtx()).Return(nil, errors.New("dial tcp: connection refused"))

	m := session.New(p)
	err := m.Connect(context.Background())
	require.ErrorIs(t, err, session.ErrConnectFailed)
	assert.Equal(t, "Failed to connect: dial tcp: connection refused", session.Message(err))
	assertInitial(t, m.State())
}

func TestConnectSwitchesChain(t *testing.T) {
	p := mocks.NewMockProvider(t)
	p.EXPECT().RequestAccounts(anyCtx()).Return([]common.Address{alice}, nil)
	p.EXPECT().ChainID(anyCtx()).Return(1, nil).Once()
	p.EXPECT().SwitchChain(anyCtx(), chain.SepoliaChainID).Return(nil)
	p.EXPECT().ChainID(anyCtx()).Return(chain.SepoliaChainID, nil).Once()
	p.EXPECT().Accounts(anyCtx()).Return([]common.Address{alice}, nil)
	p.EXPECT().Signer(anyCtx(), (*common.Address)(nil)).Return(alice, nil)
	p.EXPECT().OnAccountsChanged(mock.Anything).Return(func() {})
	contractReads(t, p, bob, true, big.NewInt(0))

	m := session.New(p)
	require.NoError(t, m.Connect(context.Background()))

	st := m.State()
	assert.Equal(t, chain.SepoliaChainID, st.ChainID)
	assert.True(t, st.Paused)
	assert.False(t, st.IsOwner())
	assert.Equal(t, "0.0", st.Balance)
}

func TestConnectChainSwitchErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    error
		message string
	}{
		{"unknown chain", &provider.Error{Code: 4902, Message: "Unrecognized chain ID"}, session.ErrChainUnavailable, "Please add the Sepolia network to your wallet"},
		{"rejected switch", &provider.Error{Code: 4001, Message: "User rejected the request."}, session.ErrChainSwitchFailed, "Failed to switch to Sepolia"},
		{"plain error", errors.New("boom"), session.ErrChainSwitchFailed, "Failed to switch to Sepolia"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mocks.NewMockProvider(t)
			p.EXPECT().RequestAccounts(anyCtx()).Return([]common.Address{alice}, nil)
			p.EXPECT().ChainID(anyCtx()).Return(1, nil)
			p.EXPECT().SwitchChain(anyCtx(), chain.SepoliaChainID).Return(tt.err)

			m := session.New(p)
			err := m.Connect(context.Background())
			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.message, session.Message(err))
			assertInitial(t, m.State())
		})
	}
}

func TestConnectChainStillWrongAfterSwitch(t *testing.T) {
	p := mocks.NewMockProvider(t)
	p.EXPECT().RequestAccounts(anyCtx()).Return([]common.Address{alice}, nil)
	p.EXPECT().ChainID(anyCtx()).Return(1, nil).Twice()
	p.EXPECT().SwitchChain(anyCtx(), chain.SepoliaChainID).Return(nil)

	err := session.New(p).Connect(context.Background())
	assert.ErrorIs(t, err, session.ErrChainSwitchFailed)
}

func TestConnectMetadataIsBestEffort(t *testing.T) {
	p := mocks.NewMockProvider(t)
	walletReady(t, p, alice)
	p.EXPECT().CallContract(anyCtx(), mock.Anything, contract.DefaultAddress, selector(selOwner)).
		Return(nil, errors.New("rpc down"))
	p.EXPECT().CallContract(anyCtx(), mock.Anything, contract.DefaultAddress, selector(selPaused)).
		Return(packed(t, "paused", true), nil)
	p.EXPECT().CallContract(anyCtx(), mock.Anything, contract.DefaultAddress, selector(selBalanceOf)).
		Return(packed(t, "balanceOf", tokens(3)), nil)
	p.EXPECT().CallContract(anyCtx(), mock.Anything, contract.DefaultAddress, selector(selDecimals)).
		Return(packed(t, "decimals", uint8(18)), nil)

	m := session.New(p)
	require.NoError(t, m.Connect(context.Background()))

	st := m.State()
	assert.True(t, st.Connected)
	assert.Nil(t, st.Owner)
	assert.True(t, st.Paused)
	assert.Equal(t, "3.0", st.Balance)
}

func TestConnectAddsPrimaryToAvailable(t *testing.T) {
	p := mocks.NewMockProvider(t)
	p.EXPECT().RequestAccounts(anyCtx()).Return([]common.Address{bob}, nil)
	p.EXPECT().ChainID(anyCtx()).Return(chain.SepoliaChainID, nil)
	p.EXPECT().Accounts(anyCtx()).Return([]common.Address{bob, bob}, nil)
	p.EXPECT().Signer(anyCtx(), (*common.Address)(nil)).Return(alice, nil)
	p.EXPECT().OnAccountsChanged(mock.Anything).Return(func() {})
	contractReads(t, p, alice, false, big.NewInt(0))

	m := session.New(p)
	require.NoError(t, m.Connect(context.Background()))
	assert.Equal(t, []common.Address{alice, bob}, m.State().AvailableAccounts)
}

func TestDisconnectRestoresInitialState(t *testing.T) {
	p := mocks.NewMockProvider(t)
	unsubscribed := false
	p.EXPECT().RequestAccounts(anyCtx()).Return([]common.Address{alice, bob}, nil)
	p.EXPECT().ChainID(anyCtx()).Return(chain.SepoliaChainID, nil)
	p.EXPECT().Accounts(anyCtx()).Return([]common.Address{alice, bob}, nil)
	p.EXPECT().Signer(anyCtx(), (*common.Address)(nil)).Return(alice, nil)
	p.EXPECT().OnAccountsChanged(mock.Anything).Return(func() { unsubscribed = true })
	contractReads(t, p, alice, true, tokens(5))

	m := session.New(p)
	require.NoError(t, m.Connect(context.Background()))
	require.True(t, m.State().Connected)

	m.Disconnect()
	assert.True(t, unsubscribed)
	assertInitial(t, m.State())
	assert.Nil(t, m.Token())

	// Idempotent.
	m.Disconnect()
	assertInitial(t, m.State())
}

func TestSwitchAccount(t *testing.T) {
	m, p, _ := connected(t, alice, bob)
	p.EXPECT().Signer(anyCtx(), addrPtr(bob)).Return(bob, nil)

	require.NoError(t, m.SwitchAccount(context.Background(), bob))

	st := m.State()
	assert.Equal(t, session.Connected, st.Phase)
	require.NotNil(t, st.Account)
	assert.Equal(t, bob, *st.Account)
	assert.Contains(t, st.AvailableAccounts, bob)
	assert.False(t, st.IsOwner())
	assert.Equal(t, bob, m.Token().From())
}

func TestSwitchAccountToNewAddressListsIt(t *testing.T) {
	m, p, _ := connected(t, alice)
	p.EXPECT().Signer(anyCtx(), addrPtr(carol)).Return(carol, nil)

	require.NoError(t, m.SwitchAccount(context.Background(), carol))
	assert.Equal(t, []common.Address{carol, alice}, m.State().AvailableAccounts)
}

func TestSwitchToCurrentAccountMakesNoCalls(t *testing.T) {
	m, p, _ := connected(t, alice, bob)
	before := len(p.Calls)

	require.NoError(t, m.SwitchAccount(context.Background(), alice))
	assert.Len(t, p.Calls, before)
	assert.Equal(t, alice, *m.State().Account)
}

func TestSwitchAccountWhileDisconnected(t *testing.T) {
	p := mocks.NewMockProvider(t)
	m := session.New(p)

	require.NoError(t, m.SwitchAccount(context.Background(), bob))
	assert.Empty(t, p.Calls)
	assertInitial(t, m.State())
}

func TestSwitchAccountFailureKeepsState(t *testing.T) {
	m, p, _ := connected(t, alice, bob)
	p.EXPECT().Signer(anyCtx(), addrPtr(bob)).Return(common.Address{}, &provider.Error{Code: 4100, Message: "unauthorized"})
	before := m.State()

	err := m.SwitchAccount(context.Background(), bob)
	require.ErrorIs(t, err, session.ErrAccountSwitchFailed)
	assert.Equal(t, "Failed to switch account", session.Message(err))

	after := m.State()
	assert.Equal(t, before.Account, after.Account)
	assert.Equal(t, before.AvailableAccounts, after.AvailableAccounts)
	assert.Equal(t, before.Balance, after.Balance)
	assert.Equal(t, session.Connected, after.Phase)
}

func TestRefresh(t *testing.T) {
	p := mocks.NewMockProvider(t)
	walletReady(t, p, alice)
	p.EXPECT().CallContract(anyCtx(), mock.Anything, contract.DefaultAddress, selector(selOwner)).
		Return(packed(t, "owner", alice), nil)
	p.EXPECT().CallContract(anyCtx(), mock.Anything, contract.DefaultAddress, selector(selDecimals)).
		Return(packed(t, "decimals", uint8(18)), nil)
	p.EXPECT().CallContract(anyCtx(), mock.Anything, contract.DefaultAddress, selector(selPaused)).
		Return(packed(t, "paused", false), nil)
	p.EXPECT().CallContract(anyCtx(), alice, contract.DefaultAddress, selector(selBalanceOf)).
		Return(packed(t, "balanceOf", tokens(10)), nil).Once()
	p.EXPECT().CallContract(anyCtx(), alice, contract.DefaultAddress, selector(selBalanceOf)).
		Return(packed(t, "balanceOf", tokens(20)), nil).Once()

	m := session.New(p)
	require.NoError(t, m.Connect(context.Background()))
	assert.Equal(t, "10.0", m.State().Balance)

	require.NoError(t, m.Refresh(context.Background()))
	assert.Equal(t, "20.0", m.State().Balance)
}

func TestRefreshFailureKeepsView(t *testing.T) {
	p := mocks.NewMockProvider(t)
	walletReady(t, p, alice)
	p.EXPECT().CallContract(anyCtx(), mock.Anything, contract.DefaultAddress, selector(selOwner)).
		Return(packed(t, "owner", alice), nil)
	p.EXPECT().CallContract(anyCtx(), mock.Anything, contract.DefaultAddress, selector(selDecimals)).
		Return(packed(t, "decimals", uint8(18)), nil)
	p.EXPECT().CallContract(anyCtx(), mock.Anything, contract.DefaultAddress, selector(selPaused)).
		Return(packed(t, "paused", false), nil)
	p.EXPECT().CallContract(anyCtx(), alice, contract.DefaultAddress, selector(selBalanceOf)).
		Return(packed(t, "balanceOf", tokens(10)), nil).Once()
	p.EXPECT().CallContract(anyCtx(), alice, contract.DefaultAddress, selector(selBalanceOf)).
		Return(nil, errors.New("timeout")).Once()

	m := session.New(p)
	require.NoError(t, m.Connect(context.Background()))

	err := m.Refresh(context.Background())
	require.ErrorIs(t, err, session.ErrRefreshFailed)
	assert.Equal(t, "Failed to fetch balance or paused status", session.Message(err))
	assert.Equal(t, "10.0", m.State().Balance)
	assert.True(t, m.State().Connected)
}

func TestRefreshWhileDisconnectedMakesNoCalls(t *testing.T) {
	p := mocks.NewMockProvider(t)
	m := session.New(p)

	require.NoError(t, m.Refresh(context.Background()))
	assert.Empty(t, p.Calls)
	assertInitial(t, m.State())
}

func TestNotificationWithNoAccountsDisconnects(t *testing.T) {
	m, _, notify := connected(t, alice, bob)
	require.NotNil(t, *notify)

	(*notify)(nil)
	assertInitial(t, m.State())
}

func TestNotificationSwitchesToFirstAccount(t *testing.T) {
	m, p, notify := connected(t, alice, bob)
	p.EXPECT().Signer(anyCtx(), addrPtr(bob)).Return(bob, nil)

	(*notify)([]common.Address{bob, carol})

	st := m.State()
	require.NotNil(t, st.Account)
	assert.Equal(t, bob, *st.Account)
	assert.Equal(t, []common.Address{bob, carol}, st.AvailableAccounts)
}

func TestNotificationForCurrentAccountUpdatesList(t *testing.T) {
	m, _, notify := connected(t, alice, bob)

	(*notify)([]common.Address{alice, carol})

	st := m.State()
	assert.Equal(t, alice, *st.Account)
	assert.Equal(t, []common.Address{alice, carol}, st.AvailableAccounts)
}

func TestNotificationAfterDisconnectIsIgnored(t *testing.T) {
	m, _, notify := connected(t, alice, bob)
	m.Disconnect()

	(*notify)([]common.Address{bob})
	assertInitial(t, m.State())
}

func TestOverlappingConnectRequestsAccountsOnce(t *testing.T) {
	p := mocks.NewMockProvider(t)
	var requests atomic.Int32
	p.EXPECT().RequestAccounts(anyCtx()).RunAndReturn(func(context.Context) ([]common.Address, error) {
		requests.Add(1)
		time.Sleep(20 * time.Millisecond)
		return []common.Address{alice}, nil
	}).Once()
	p.EXPECT().ChainID(anyCtx()).Return(chain.SepoliaChainID, nil).Once()
	p.EXPECT().Accounts(anyCtx()).Return([]common.Address{alice}, nil).Once()
	p.EXPECT().Signer(anyCtx(), (*common.Address)(nil)).Return(alice, nil).Once()
	p.EXPECT().OnAccountsChanged(mock.Anything).Return(func() {}).Once()
	contractReads(t, p, alice, false, tokens(1))

	m := session.New(p)
	var wg sync.WaitGroup
	errs := make([]error, 5)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = m.Connect(context.Background())
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), requests.Load())
	assert.True(t, m.State().Connected)
}

func TestOverlappingSwitchAccountSignsOnce(t *testing.T) {
	m, p, _ := connected(t, alice, bob)
	var rounds atomic.Int32
	p.EXPECT().Signer(anyCtx(), addrPtr(bob)).RunAndReturn(func(context.Context, *common.Address) (common.Address, error) {
		rounds.Add(1)
		time.Sleep(20 * time.Millisecond)
		return bob, nil
	}).Once()

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, m.SwitchAccount(context.Background(), bob))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), rounds.Load())
	assert.Equal(t, bob, *m.State().Account)
	assert.Equal(t, session.Connected, m.State().Phase)
}

func TestDisconnectAbortsNotificationSwitch(t *testing.T) {
	m, p, notify := connected(t, alice, bob)
	started := make(chan struct{})
	p.EXPECT().Signer(anyCtx(), addrPtr(bob)).RunAndReturn(func(ctx context.Context, _ *common.Address) (common.Address, error) {
		close(started)
		<-ctx.Done()
		return common.Address{}, ctx.Err()
	}).Once()

	handled := make(chan struct{})
	go func() {
		defer close(handled)
		(*notify)([]common.Address{bob, alice})
	}()
	<-started

	disconnected := make(chan struct{})
	go func() {
		defer close(disconnected)
		m.Disconnect()
	}()
	select {
	case <-disconnected:
	case <-time.After(2 * time.Second):
		t.Fatal("disconnect blocked behind the pending account switch")
	}
	<-handled

	assertInitial(t, m.State())
	assert.Nil(t, m.Token())
}

func TestObserverSeesPhases(t *testing.T) {
	p := mocks.NewMockProvider(t)
	walletReady(t, p, alice)
	contractReads(t, p, alice, false, tokens(1))

	var (
		mu     sync.Mutex
		phases []session.Phase
	)
	m := session.New(p, session.WithObserver(func(st session.State) {
		mu.Lock()
		defer mu.Unlock()
		if len(phases) == 0 || phases[len(phases)-1] != st.Phase {
			phases = append(phases, st.Phase)
		}
	}))
	require.NoError(t, m.Connect(context.Background()))
	m.Disconnect()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []session.Phase{session.Connecting, session.Connected, session.Disconnected}, phases)
}

func TestStateIsACopy(t *testing.T) {
	m, _, _ := connected(t, alice, bob)

	st := m.State()
	st.AvailableAccounts[0] = carol
	*st.Account = carol

	again := m.State()
	assert.Equal(t, alice, again.AvailableAccounts[0])
	assert.Equal(t, alice, *again.Account)
}

func TestCustomContractAndChain(t *testing.T) {
	custom := common.HexToAddress("0x00000000000000000000000000000000000c0de0")
	m := session.New(nil, session.WithContract(custom), session.WithChainID(31337))
	assert.Equal(t, custom, m.ContractAddress())
	assert.Equal(t, uint64(31337), m.RequiredChainID())
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "disconnected", session.Disconnected.String())
	assert.Equal(t, "switching account", session.SwitchingAccount.String())
	assert.Equal(t, "phase(9)", session.Phase(9).String())
}
