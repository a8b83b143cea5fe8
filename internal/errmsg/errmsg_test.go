package errmsg

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
)

type codedErr struct {
	code int
	msg  string
	data interface{}
}

func (e *codedErr) Error() string          { return e.msg }
func (e *codedErr) ErrorCode() int         { return e.code }
func (e *codedErr) ErrorData() interface{} { return e.data }

func TestSelectorKnownValues(t *testing.T) {
	assert.Equal(t, "0xa9059cbb", hexutil.Encode(Selector("transfer(address,uint256)")))
	assert.Equal(t, "0x08c379a0", hexutil.Encode(Selector("Error(string)")))
}

func TestTranslate(t *testing.T) {
	notOwner := hexutil.Encode(Selector("NotTheOwner()"))
	// Error(string) revert carrying a custom error name in the reason.
	reasonRevert := "0x08c379a0" +
		"0000000000000000000000000000000000000000000000000000000000000020" +
		"000000000000000000000000000000000000000000000000000000000000000e" +
		"436f6e747261637450617573656400000000000000000000000000000000000000"[:64]

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil", nil, ""},
		{"user rejected code", &codedErr{code: 4001, msg: "User denied"}, Rejected},
		{"wrapped rejection", fmt.Errorf("approve: %w", &codedErr{code: 4001, msg: "nope"}), Rejected},
		{"ethers rejection", errors.New("ACTION_REJECTED"), Rejected},
		{"custom error by name", errors.New("reverted with custom error InsufficientAllowance()"), "Insufficient allowance. Please approve first."},
		{"custom error by selector", &codedErr{code: 3, msg: "execution reverted", data: notOwner}, "Only the contract owner can do this"},
		{"selector in nested data", &codedErr{code: 3, msg: "execution reverted", data: map[string]interface{}{"data": notOwner}}, "Only the contract owner can do this"},
		{"reason string", &codedErr{code: 3, msg: "execution reverted", data: reasonRevert}, "Contract is currently paused"},
		{"first name wins", errors.New("TransferToZeroAddress InsufficientBalance"), "Cannot transfer to zero address"},
		{"plain revert", &codedErr{code: 3, msg: "execution reverted", data: "0x"}, CheckInputs},
		{"call exception", errors.New("CALL_EXCEPTION"), CheckInputs},
		{"gas", errors.New("insufficient funds for gas * price + value"), NoGas},
		{"nonce", errors.New("nonce too low"), NonceError},
		{"long", errors.New(strings.Repeat("x", 101)), TryAgain},
		{"short passthrough", errors.New("dial tcp: connection refused"), "dial tcp: connection refused"},
		{"empty", errors.New(""), Unexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Translate(tt.err))
		})
	}
}

func TestEveryCustomErrorHasSelector(t *testing.T) {
	assert.Len(t, customErrors, 10)
	for _, ce := range customErrors {
		data := hexutil.Encode(ce.selector)
		got := Translate(&codedErr{code: 3, msg: "execution reverted", data: data})
		assert.Equal(t, ce.message, got, ce.name)
	}
}
