package wallet

import (
	"context"
	"crypto/ed25519"
	"crypto/sha512"
	"sync"
	"time"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/pkg/errors"
	"github.com/zeromicro/go-zero/core/syncx"

	"github.com/asaworks/asa-studio/base/errcode"
)

// connectWait bounds the broker round trip so a hung external login modal
// turns into a reported error instead of an infinite wait.
const connectWait = 30 * time.Second

// FederatedConfig configures the social-login provider.
type FederatedConfig struct {
	ClientID string `toml:"client_id" mapstructure:"client_id" json:"client_id"`
	Network  string `toml:"network" mapstructure:"network" json:"network"`
	// BrokerURL points at the hosted auth widget backend.
	BrokerURL string `toml:"broker_url" mapstructure:"broker_url" json:"broker_url"`
}

// LoginResult is what the auth broker reports after a successful login.
type LoginResult struct {
	// Subject is the stable identity the keypair is derived from.
	Subject   string `json:"subject"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
	Provider  string `json:"provider"`
}

// AuthBroker is the external identity widget. An empty provider name opens
// the general chooser; a named provider goes straight to it.
type AuthBroker interface {
	Login(ctx context.Context, clientID, network, provider string) (*LoginResult, error)
	Logout(ctx context.Context) error
}

// FederatedProvider wraps one broker session and the account derived from it.
type FederatedProvider struct {
	cfg    FederatedConfig
	broker AuthBroker

	mu      sync.Mutex
	signer  Signer
	address string
	profile *Profile
	loading bool
	subs    []func()
}

var (
	fedFlight = syncx.NewSingleFlight()
	fedMu     sync.Mutex
	fedInst   *FederatedProvider
)

// InitFederated performs the one-time provider setup. It is memoized
// process-wide: the first caller builds the instance, concurrent callers
// share the in-flight initialization, later callers get the same instance.
// A missing client id is a fatal initialization error.
func InitFederated(cfg FederatedConfig, broker AuthBroker) (*FederatedProvider, error) {
	v, err := fedFlight.Do("federated-init", func() (interface{}, error) {
		fedMu.Lock()
		defer fedMu.Unlock()
		if fedInst != nil {
			return fedInst, nil
		}
		if cfg.ClientID == "" {
			return nil, errcode.NewErr(errcode.CodeProviderConfig, "federated login client id is not configured")
		}
		if broker == nil {
			return nil, errcode.NewErr(errcode.CodeProviderConfig, "federated login broker is not configured")
		}
		fedInst = &FederatedProvider{cfg: cfg, broker: broker}
		return fedInst, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*FederatedProvider), nil
}

// resetFederated drops the memoized instance so the next InitFederated
// rebuilds from scratch. Invoked on logout: all in-memory provider state is
// reset, not just a connected flag.
func resetFederated() {
	fedMu.Lock()
	fedInst = nil
	fedMu.Unlock()
}

func (p *FederatedProvider) Kind() Kind { return KindFederated }

// Connect runs the broker login and derives the session account. Any failure
// rolls the provider back to fully disconnected.
func (p *FederatedProvider) Connect(ctx context.Context, provider string) error {
	p.setLoading(true)

	ctx, cancel := context.WithTimeout(ctx, connectWait)
	defer cancel()

	res, err := p.broker.Login(ctx, p.cfg.ClientID, p.cfg.Network, provider)
	if err != nil {
		p.rollback()
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return errcode.ErrConnectTimeout
		}
		return errcode.NewErr(errcode.CodeConnectFailed, err.Error())
	}
	if res == nil || res.Subject == "" {
		p.rollback()
		return errcode.NewErr(errcode.CodeConnectFailed, "malformed login response")
	}

	account, err := p.deriveAccount(res.Subject)
	if err != nil {
		p.rollback()
		return errcode.NewErr(errcode.CodeConnectFailed, err.Error())
	}

	p.mu.Lock()
	p.signer = newAccountSigner(account)
	p.address = account.Address.String()
	p.profile = &Profile{Name: res.Name, Email: res.Email, AvatarURL: res.AvatarURL, Provider: res.Provider}
	p.loading = false
	p.mu.Unlock()
	p.notify()
	return nil
}

// deriveAccount maps the authenticated identity to a deterministic keypair:
// the same (client id, network, subject) always yields the same address.
func (p *FederatedProvider) deriveAccount(subject string) (crypto.Account, error) {
	seed := sha512.Sum512_256([]byte(p.cfg.ClientID + "|" + p.cfg.Network + "|" + subject))
	sk := ed25519.NewKeyFromSeed(seed[:])
	account, err := crypto.AccountFromPrivateKey(sk)
	if err != nil {
		return crypto.Account{}, errors.Wrap(err, "failed on derive account")
	}
	return account, nil
}

// Disconnect logs out of the broker and resets all provider state, including
// the process-wide memoized instance. The next connect re-initializes the
// provider from scratch, so no stale "connecting" state can survive a logout.
func (p *FederatedProvider) Disconnect(ctx context.Context) error {
	err := p.broker.Logout(ctx)

	p.mu.Lock()
	if s, ok := p.signer.(*accountSigner); ok {
		for i := range s.account.PrivateKey {
			s.account.PrivateKey[i] = 0
		}
	}
	p.signer = nil
	p.address = ""
	p.profile = nil
	p.loading = false
	p.mu.Unlock()

	resetFederated()
	p.notify()
	if err != nil {
		return errors.Wrap(err, "failed on broker logout")
	}
	return nil
}

func (p *FederatedProvider) setLoading(v bool) {
	p.mu.Lock()
	p.loading = v
	p.mu.Unlock()
	p.notify()
}

func (p *FederatedProvider) rollback() {
	p.mu.Lock()
	p.signer = nil
	p.address = ""
	p.profile = nil
	p.loading = false
	p.mu.Unlock()
	p.notify()
}

func (p *FederatedProvider) ActiveAddress() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.address
}

func (p *FederatedProvider) Signer() Signer {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.signer
}

func (p *FederatedProvider) Connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.signer != nil && p.address != ""
}

func (p *FederatedProvider) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

func (p *FederatedProvider) Profile() *Profile {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.profile
}

func (p *FederatedProvider) Subscribe(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subs = append(p.subs, fn)
}

func (p *FederatedProvider) notify() {
	p.mu.Lock()
	subs := make([]func(), len(p.subs))
	copy(subs, p.subs)
	p.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}
