package errcode

import "fmt"

// Err is an API error carrying a stable business code alongside the message.
// Codes are grouped by concern: 1xxx generic, 2xxx session/wallet, 3xxx assets,
// 4xxx relay/pinning.
type Err struct {
	code uint32
	msg  string
}

func NewErr(code uint32, msg string) *Err {
	return &Err{code: code, msg: msg}
}

// NewCustomErr wraps an ad-hoc message under the custom code.
func NewCustomErr(msg string) *Err {
	return NewErr(CodeCustom, msg)
}

func (e *Err) Error() string {
	return fmt.Sprintf("code: %d, msg: %s", e.code, e.msg)
}

func (e *Err) Code() uint32 { return e.code }
func (e *Err) Msg() string  { return e.msg }

const (
	CodeOK     uint32 = 200
	CodeCustom uint32 = 1000

	CodeInvalidParams  uint32 = 1001
	CodeUnauthorized   uint32 = 1002
	CodeNotFound       uint32 = 1003
	CodeInternal       uint32 = 1004
	CodeNoActiveWallet uint32 = 2001
	CodeConnectFailed  uint32 = 2002
	CodeConnectTimeout uint32 = 2003
	CodeProviderConfig uint32 = 2004
	CodeAmountInvalid  uint32 = 3001
	CodeChainSubmit    uint32 = 3002
	CodeRelayUpstream  uint32 = 4001
)

var (
	ErrInvalidParams  = NewErr(CodeInvalidParams, "invalid params")
	ErrUnauthorized   = NewErr(CodeUnauthorized, "unauthorized")
	ErrNotFound       = NewErr(CodeNotFound, "not found")
	ErrInternal       = NewErr(CodeInternal, "internal error")
	ErrNoActiveWallet = NewErr(CodeNoActiveWallet, "no active wallet session")
	ErrConnectTimeout = NewErr(CodeConnectTimeout, "wallet connect timed out")
)

// IsErr reports whether err is an *Err produced by this package.
func IsErr(err error) (*Err, bool) {
	e, ok := err.(*Err)
	return e, ok
}
