// Package wallet unifies two incompatible wallet-connection models behind one
// session: traditional wallet adapters (extension-style, connect by wallet id)
// and a federated social-login account with a deterministically derived key.
package wallet

import (
	"context"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/types"
)

// Kind labels which connection model currently owns the session.
type Kind string

const (
	KindNone        Kind = "none"
	KindTraditional Kind = "traditional"
	KindFederated   Kind = "federated"
)

// Signer authorizes transactions for one address.
type Signer interface {
	Address() string
	// SignTransaction returns the transaction id and the signed bytes ready
	// for broadcast.
	SignTransaction(txn types.Transaction) (string, []byte, error)
}

// Profile carries display info for a social login.
type Profile struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
	Provider  string `json:"provider"`
}

// Provider is the capability set both connection models implement.
type Provider interface {
	Kind() Kind
	ActiveAddress() string
	Signer() Signer
	Connected() bool
	Loading() bool
	Disconnect(ctx context.Context) error
	// Subscribe registers fn to run synchronously after every state change.
	Subscribe(fn func())
}

// accountSigner signs with an in-memory ed25519 account.
type accountSigner struct {
	account crypto.Account
}

func newAccountSigner(account crypto.Account) Signer {
	return &accountSigner{account: account}
}

func (s *accountSigner) Address() string {
	return s.account.Address.String()
}

func (s *accountSigner) SignTransaction(txn types.Transaction) (string, []byte, error) {
	return crypto.SignTransaction(s.account.PrivateKey, txn)
}
