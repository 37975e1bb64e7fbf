package wallet

import (
	"context"
	"sync"

	"github.com/algorand/go-algorand-sdk/v2/client/kmd"
	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/mnemonic"
	"github.com/pkg/errors"
)

// Adapter is one discoverable traditional wallet. Connect may block on an
// external approval flow, so it takes a context.
type Adapter interface {
	ID() string
	Name() string
	Connect(ctx context.Context) (crypto.Account, error)
	Disconnect(ctx context.Context) error
}

// TraditionalProvider holds the registered adapters and at most one active
// session among them.
type TraditionalProvider struct {
	mu       sync.Mutex
	adapters []Adapter
	active   Adapter
	signer   Signer
	address  string
	loading  bool
	subs     []func()
}

func NewTraditionalProvider(adapters ...Adapter) *TraditionalProvider {
	return &TraditionalProvider{adapters: adapters}
}

func (p *TraditionalProvider) Kind() Kind { return KindTraditional }

// AdapterInfo describes a registered adapter for listing.
type AdapterInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

func (p *TraditionalProvider) Adapters() []AdapterInfo {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]AdapterInfo, 0, len(p.adapters))
	for _, a := range p.adapters {
		out = append(out, AdapterInfo{ID: a.ID(), Name: a.Name(), Active: p.active != nil && p.active.ID() == a.ID()})
	}
	return out
}

// Connect activates the adapter with the given id. A previously active
// adapter is disconnected first so only one session exists in this variant.
func (p *TraditionalProvider) Connect(ctx context.Context, walletID string) error {
	p.mu.Lock()
	var target Adapter
	for _, a := range p.adapters {
		if a.ID() == walletID {
			target = a
			break
		}
	}
	if target == nil {
		p.mu.Unlock()
		return errors.Errorf("unknown wallet id: %s", walletID)
	}
	prev := p.active
	p.loading = true
	p.mu.Unlock()
	p.notify()

	if prev != nil && prev.ID() != walletID {
		if err := prev.Disconnect(ctx); err != nil {
			p.finishConnect(nil, nil, "")
			return errors.Wrap(err, "failed on disconnect previous wallet")
		}
		p.finishConnect(nil, nil, "")
	}

	account, err := target.Connect(ctx)
	if err != nil {
		p.finishConnect(nil, nil, "")
		return errors.Wrapf(err, "failed on connect wallet %s", walletID)
	}
	p.finishConnect(target, newAccountSigner(account), account.Address.String())
	return nil
}

func (p *TraditionalProvider) finishConnect(active Adapter, signer Signer, address string) {
	p.mu.Lock()
	p.active = active
	p.signer = signer
	p.address = address
	p.loading = false
	p.mu.Unlock()
	p.notify()
}

func (p *TraditionalProvider) Disconnect(ctx context.Context) error {
	p.mu.Lock()
	active := p.active
	p.mu.Unlock()
	if active == nil {
		return nil
	}
	err := active.Disconnect(ctx)
	p.finishConnect(nil, nil, "")
	if err != nil {
		return errors.Wrap(err, "failed on disconnect wallet")
	}
	return nil
}

func (p *TraditionalProvider) ActiveAddress() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.address
}

func (p *TraditionalProvider) Signer() Signer {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.signer
}

func (p *TraditionalProvider) Connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active != nil
}

func (p *TraditionalProvider) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

func (p *TraditionalProvider) Subscribe(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subs = append(p.subs, fn)
}

func (p *TraditionalProvider) notify() {
	p.mu.Lock()
	subs := make([]func(), len(p.subs))
	copy(subs, p.subs)
	p.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

// MnemonicAdapter is the local development wallet: a fixed account recovered
// from a 25-word mnemonic. Connect never prompts.
type MnemonicAdapter struct {
	id       string
	name     string
	mnemonic string
}

func NewMnemonicAdapter(id, name, words string) *MnemonicAdapter {
	return &MnemonicAdapter{id: id, name: name, mnemonic: words}
}

func (a *MnemonicAdapter) ID() string   { return a.id }
func (a *MnemonicAdapter) Name() string { return a.name }

func (a *MnemonicAdapter) Connect(_ context.Context) (crypto.Account, error) {
	sk, err := mnemonic.ToPrivateKey(a.mnemonic)
	if err != nil {
		return crypto.Account{}, errors.Wrap(err, "failed on recover account from mnemonic")
	}
	account, err := crypto.AccountFromPrivateKey(sk)
	if err != nil {
		return crypto.Account{}, errors.Wrap(err, "failed on build account")
	}
	return account, nil
}

func (a *MnemonicAdapter) Disconnect(_ context.Context) error { return nil }

// KMDAdapter connects to a localnet kmd wallet and exports the first key.
type KMDAdapter struct {
	id       string
	name     string
	address  string
	token    string
	wallet   string
	password string
}

func NewKMDAdapter(id, name, address, token, walletName, password string) *KMDAdapter {
	return &KMDAdapter{id: id, name: name, address: address, token: token, wallet: walletName, password: password}
}

func (a *KMDAdapter) ID() string   { return a.id }
func (a *KMDAdapter) Name() string { return a.name }

func (a *KMDAdapter) Connect(_ context.Context) (crypto.Account, error) {
	client, err := kmd.MakeClient(a.address, a.token)
	if err != nil {
		return crypto.Account{}, errors.Wrap(err, "failed on create kmd client")
	}

	wallets, err := client.ListWallets()
	if err != nil {
		return crypto.Account{}, errors.Wrap(err, "failed on list kmd wallets")
	}
	walletID := ""
	for _, w := range wallets.Wallets {
		if w.Name == a.wallet {
			walletID = w.ID
			break
		}
	}
	if walletID == "" {
		return crypto.Account{}, errors.Errorf("kmd wallet not found: %s", a.wallet)
	}

	handle, err := client.InitWalletHandle(walletID, a.password)
	if err != nil {
		return crypto.Account{}, errors.Wrap(err, "failed on init kmd wallet handle")
	}
	defer client.ReleaseWalletHandle(handle.WalletHandleToken)

	keys, err := client.ListKeys(handle.WalletHandleToken)
	if err != nil {
		return crypto.Account{}, errors.Wrap(err, "failed on list kmd keys")
	}
	if len(keys.Addresses) == 0 {
		return crypto.Account{}, errors.New("kmd wallet holds no keys")
	}

	exported, err := client.ExportKey(handle.WalletHandleToken, a.password, keys.Addresses[0])
	if err != nil {
		return crypto.Account{}, errors.Wrap(err, "failed on export kmd key")
	}
	account, err := crypto.AccountFromPrivateKey(exported.PrivateKey)
	if err != nil {
		return crypto.Account{}, errors.Wrap(err, "failed on build account")
	}
	return account, nil
}

func (a *KMDAdapter) Disconnect(_ context.Context) error { return nil }
