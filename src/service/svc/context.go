package svc

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/asaworks/asa-studio/base/chain/algoclient"
	"github.com/asaworks/asa-studio/base/logger/xzap"
	"github.com/asaworks/asa-studio/base/stores/localkv"
	"github.com/asaworks/asa-studio/base/wallet"
	"github.com/asaworks/asa-studio/src/common/relayclient"
	"github.com/asaworks/asa-studio/src/config"
	"github.com/asaworks/asa-studio/src/dao"
)

// ChainClient is the slice of the algod wrapper the services call.
type ChainClient interface {
	CreateAsset(ctx context.Context, signer wallet.Signer, p algoclient.CreateAssetParams) (*algoclient.CreateAssetResult, error)
	Transfer(ctx context.Context, signer wallet.Signer, p algoclient.TransferParams) (string, error)
}

type ServerCtx struct {
	C      *config.Config
	Store  *localkv.Store
	Dao    *dao.Dao
	Wallet *wallet.ConnectedWallet
	Chain  ChainClient
	Relay  *relayclient.Client
}

// NewServiceContext wires every component the API needs. A federated
// provider that fails to initialize is recorded and left out; the
// traditional wallet path stays usable on its own.
func NewServiceContext(c *config.Config) (*ServerCtx, error) {
	_, err := xzap.SetUp(c.Log)
	if err != nil {
		return nil, err
	}

	store, err := localkv.Open(c.Store.Path)
	if err != nil {
		return nil, errors.Wrap(err, "failed on open local store")
	}

	chain, err := algoclient.New(c.Algod.URL, c.Algod.Token)
	if err != nil {
		return nil, errors.Wrap(err, "failed on create chain client")
	}

	adapters := make([]wallet.Adapter, 0, len(c.Wallets))
	for _, w := range c.Wallets {
		switch w.Kind {
		case "mnemonic":
			adapters = append(adapters, wallet.NewMnemonicAdapter(w.ID, w.Name, w.Mnemonic))
		case "kmd":
			adapters = append(adapters, wallet.NewKMDAdapter(w.ID, w.Name, w.KmdURL, w.KmdToken, w.KmdWallet, w.KmdPassword))
		default:
			return nil, errors.Errorf("unknown wallet adapter kind: %s", w.Kind)
		}
	}
	trad := wallet.NewTraditionalProvider(adapters...)

	var fed *wallet.FederatedProvider
	fed, err = wallet.InitFederated(c.Federated, wallet.NewHTTPBroker(c.Federated.BrokerURL))
	if err != nil {
		// Fatal for this provider only: surface once and continue without it.
		xzap.WithContext(context.Background()).Error("federated login unavailable", zap.Error(err))
		fed = nil
	}

	d := dao.New(context.Background(), store)

	serverCtx := NewServerCtx(
		WithStore(store),
		WithDao(d),
		WithWallet(wallet.NewConnectedWallet(trad, fed)),
		WithChain(chain),
		WithRelay(relayclient.New(c.Relay.URL)),
	)
	serverCtx.C = c

	return serverCtx, nil
}
