package contract

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/Mohsinsiddi/tmbcli/internal/chain"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// DefaultAddress is the TMB deployment on Sepolia.
var DefaultAddress = common.HexToAddress("0x12aCeCA2A8db549f99096f524905fbd6AAfeA77D")

// FaucetAmount is what claimFaucet mints, in whole tokens.
const FaucetAmount = "10"

// ErrNoContract is returned when a read comes back empty, which means
// nothing is deployed at the address on the connected chain.
var ErrNoContract = errors.New("no contract code at address")

// Backend is what a Token needs from a wallet provider.
type Backend interface {
	// CallContract executes a read-only call. A zero from is omitted.
	CallContract(ctx context.Context, from, to common.Address, data []byte) ([]byte, error)
	// SendTransaction submits a state-changing call from the given account.
	SendTransaction(ctx context.Context, from, to common.Address, data []byte) (common.Hash, error)
	// WaitMined blocks until the transaction is included.
	WaitMined(ctx context.Context, hash common.Hash) (*chain.Receipt, error)
}

var (
	parsedOnce sync.Once
	parsedABI  abi.ABI
	parsedErr  error
)

// ABI returns the parsed token ABI.
func ABI() (abi.ABI, error) {
	parsedOnce.Do(func() {
		parsedABI, parsedErr = abi.JSON(strings.NewReader(tmbABI))
	})
	return parsedABI, parsedErr
}

// Token is a handle to the token contract bound to a sending account.
type Token struct {
	backend Backend
	address common.Address
	from    common.Address
	abi     abi.ABI
}

// New binds the contract at address to backend, sending as from.
func New(backend Backend, address, from common.Address) (*Token, error) {
	parsed, err := ABI()
	if err != nil {
		return nil, fmt.Errorf("parsing token ABI: %w", err)
	}
	return &Token{backend: backend, address: address, from: from, abi: parsed}, nil
}

// Address returns the contract address.
func (t *Token) Address() common.Address { return t.address }

// From returns the account transactions are sent from.
func (t *Token) From() common.Address { return t.from }

// --- reads ---

func (t *Token) Name(ctx context.Context) (string, error) {
	return read[string](ctx, t, "name")
}

func (t *Token) Symbol(ctx context.Context) (string, error) {
	return read[string](ctx, t, "symbol")
}

func (t *Token) Decimals(ctx context.Context) (uint8, error) {
	return read[uint8](ctx, t, "decimals")
}

func (t *Token) TotalSupply(ctx context.Context) (*big.Int, error) {
	return read[*big.Int](ctx, t, "totalSupply")
}

// Cap is the maximum supply the faucet may mint up to.
func (t *Token) Cap(ctx context.Context) (*big.Int, error) {
	return read[*big.Int](ctx, t, "cap")
}

func (t *Token) BalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	return read[*big.Int](ctx, t, "balanceOf", account)
}

func (t *Token) Allowance(ctx context.Context, owner, spender common.Address) (*big.Int, error) {
	return read[*big.Int](ctx, t, "allowance", owner, spender)
}

// HasClaimedFaucet reports whether account already used its one claim.
func (t *Token) HasClaimedFaucet(ctx context.Context, account common.Address) (bool, error) {
	return read[bool](ctx, t, "hasClaimedFaucet", account)
}

func (t *Token) Owner(ctx context.Context) (common.Address, error) {
	return read[common.Address](ctx, t, "owner")
}

func (t *Token) Paused(ctx context.Context) (bool, error) {
	return read[bool](ctx, t, "paused")
}

// --- writes ---

func (t *Token) Transfer(ctx context.Context, to common.Address, amount *big.Int) (common.Hash, error) {
	return t.send(ctx, "transfer", to, amount)
}

func (t *Token) Approve(ctx context.Context, spender common.Address, amount *big.Int) (common.Hash, error) {
	return t.send(ctx, "approve", spender, amount)
}

func (t *Token) TransferFrom(ctx context.Context, from, to common.Address, amount *big.Int) (common.Hash, error) {
	return t.send(ctx, "transferFrom", from, to, amount)
}

// ClaimFaucet mints FaucetAmount tokens to the sender, once per account.
func (t *Token) ClaimFaucet(ctx context.Context) (common.Hash, error) {
	return t.send(ctx, "claimFaucet")
}

func (t *Token) Pause(ctx context.Context) (common.Hash, error) {
	return t.send(ctx, "pause")
}

func (t *Token) Unpause(ctx context.Context) (common.Hash, error) {
	return t.send(ctx, "unpause")
}

func (t *Token) TransferOwnership(ctx context.Context, newOwner common.Address) (common.Hash, error) {
	return t.send(ctx, "transferOwnership", newOwner)
}

// Simulate runs a write method as a static call from the bound account.
// It returns the revert error the real transaction would hit, or nil.
func (t *Token) Simulate(ctx context.Context, method string, args ...any) error {
	data, err := t.abi.Pack(method, args...)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", method, err)
	}
	if _, err := t.backend.CallContract(ctx, t.from, t.address, data); err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	return nil
}

// Wait blocks until the transaction is mined and fails if it reverted.
func (t *Token) Wait(ctx context.Context, hash common.Hash) (*chain.Receipt, error) {
	return t.backend.WaitMined(ctx, hash)
}

// --- internal ---

func (t *Token) send(ctx context.Context, method string, args ...any) (common.Hash, error) {
	data, err := t.abi.Pack(method, args...)
	if err != nil {
		return common.Hash{}, fmt.Errorf("encoding %s: %w", method, err)
	}
	hash, err := t.backend.SendTransaction(ctx, t.from, t.address, data)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%s: %w", method, err)
	}
	return hash, nil
}

func (t *Token) call(ctx context.Context, method string, args ...any) ([]any, error) {
	data, err := t.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", method, err)
	}
	raw, err := t.backend.CallContract(ctx, t.from, t.address, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%s: %w", method, ErrNoContract)
	}
	out, err := t.abi.Unpack(method, raw)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", method, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("decoding %s: empty result", method)
	}
	return out, nil
}

func read[T any](ctx context.Context, t *Token, method string, args ...any) (T, error) {
	var zero T
	out, err := t.call(ctx, method, args...)
	if err != nil {
		return zero, err
	}
	v, ok := out[0].(T)
	if !ok {
		return zero, fmt.Errorf("decoding %s: unexpected type %T", method, out[0])
	}
	return v, nil
}
