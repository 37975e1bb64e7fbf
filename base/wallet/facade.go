package wallet

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/asaworks/asa-studio/base/errcode"
)

// Session is the merged view over both providers: one address, one kind,
// one signer.
type Session struct {
	ActiveAddress string   `json:"active_address"`
	Kind          Kind     `json:"kind"`
	Loading       bool     `json:"loading"`
	Profile       *Profile `json:"profile,omitempty"`
}

// ConnectedWallet reconciles the traditional and federated providers behind
// one connect/disconnect surface. The merged session is a pure derivation of
// both providers' observable state, recomputed synchronously on every change
// notification; it is never polled and issues no calls of its own.
type ConnectedWallet struct {
	trad *TraditionalProvider
	fed  *FederatedProvider

	mu      sync.Mutex
	session Session
	signer  Signer
	subs    []func(Session)
}

// NewConnectedWallet builds the facade. fed may be nil when federated
// initialization failed; the traditional path stays usable on its own.
func NewConnectedWallet(trad *TraditionalProvider, fed *FederatedProvider) *ConnectedWallet {
	w := &ConnectedWallet{trad: trad, fed: fed}
	trad.Subscribe(w.recompute)
	if fed != nil {
		fed.Subscribe(w.recompute)
	}
	w.recompute()
	return w
}

// recompute derives the merged session. Precedence: a connected federated
// session with a derived address is authoritative even if a traditional
// wallet also reports one; then the traditional address; then none.
func (w *ConnectedWallet) recompute() {
	var s Session
	var signer Signer

	switch {
	case w.fed != nil && w.fed.Connected() && w.fed.ActiveAddress() != "":
		s = Session{
			ActiveAddress: w.fed.ActiveAddress(),
			Kind:          KindFederated,
			Profile:       w.fed.Profile(),
		}
		signer = w.fed.Signer()
	case w.trad.ActiveAddress() != "":
		s = Session{
			ActiveAddress: w.trad.ActiveAddress(),
			Kind:          KindTraditional,
		}
		signer = w.trad.Signer()
	default:
		s = Session{Kind: KindNone}
	}
	s.Loading = w.trad.Loading() || (w.fed != nil && w.fed.Loading())

	w.mu.Lock()
	w.session = s
	w.signer = signer
	subs := make([]func(Session), len(w.subs))
	copy(subs, w.subs)
	w.mu.Unlock()

	for _, fn := range subs {
		fn(s)
	}
}

// Session returns the current merged snapshot.
func (w *ConnectedWallet) Session() Session {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.session
}

// Signer returns the signer for the active address, or nil when no session
// is active.
func (w *ConnectedWallet) Signer() Signer {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.signer
}

// Subscribe registers fn to observe merged-session changes.
func (w *ConnectedWallet) Subscribe(fn func(Session)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.subs = append(w.subs, fn)
}

// Wallets lists the registered traditional adapters.
func (w *ConnectedWallet) Wallets() []AdapterInfo {
	return w.trad.Adapters()
}

// ConnectWallet activates a traditional adapter by id.
func (w *ConnectedWallet) ConnectWallet(ctx context.Context, walletID string) error {
	return w.trad.Connect(ctx, walletID)
}

// ConnectSocial runs the federated login flow. An empty provider opens the
// chooser; a named provider bypasses it.
func (w *ConnectedWallet) ConnectSocial(ctx context.Context, provider string) error {
	if w.fed == nil {
		return errcode.NewErr(errcode.CodeProviderConfig, "federated login is not available")
	}
	return w.fed.Connect(ctx, provider)
}

// Disconnect tears down every provider that reports activity. Both may run:
// precedence assumes exclusivity for reads, teardown does not.
func (w *ConnectedWallet) Disconnect(ctx context.Context) error {
	var firstErr error
	if w.fed != nil && w.fed.Connected() {
		if err := w.fed.Disconnect(ctx); err != nil {
			firstErr = err
		}
	}
	if w.trad.Connected() {
		if err := w.trad.Disconnect(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	w.recompute()
	if firstErr != nil {
		return errors.Wrap(firstErr, "failed on disconnect")
	}
	return nil
}
