// Package provider implements wallet providers: a local one backed by the
// wallet keystore and a remote one speaking EIP-1193 over JSON-RPC.
package provider

import (
	"errors"
	"fmt"
)

// EIP-1193 / EIP-3326 error codes.
const (
	CodeUserRejected      = 4001
	CodeUnauthorized      = 4100
	CodeUnsupportedMethod = 4200
	CodeDisconnected      = 4900
	CodeUnrecognizedChain = 4902
	CodeRequestPending    = -32002
	CodeInternal          = -32603
)

// ErrNoAccounts is returned when the provider has nothing to offer.
var ErrNoAccounts = errors.New("no signing accounts available")

// Error is a provider RPC error.
type Error struct {
	Code    int
	Message string
	Data    any
}

func (e *Error) Error() string {
	return fmt.Sprintf("provider error %d: %s", e.Code, e.Message)
}

// ErrorCode implements go-ethereum's rpc.Error.
func (e *Error) ErrorCode() int { return e.Code }

// ErrorData implements go-ethereum's rpc.DataError.
func (e *Error) ErrorData() any { return e.Data }

// Code returns the provider error code carried anywhere in err's chain,
// or 0 when there is none.
func Code(err error) int {
	var c interface{ ErrorCode() int }
	if errors.As(err, &c) {
		return c.ErrorCode()
	}
	return 0
}

func rejected(what string) *Error {
	return &Error{Code: CodeUserRejected, Message: "User rejected the " + what + "."}
}

func unauthorized(msg string) *Error {
	return &Error{Code: CodeUnauthorized, Message: msg}
}
