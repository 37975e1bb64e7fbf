package svc

import (
	"github.com/asaworks/asa-studio/base/stores/localkv"
	"github.com/asaworks/asa-studio/base/wallet"
	"github.com/asaworks/asa-studio/src/common/relayclient"
	"github.com/asaworks/asa-studio/src/dao"
)

// CtxConfig collects the components a ServerCtx is assembled from.
type CtxConfig struct {
	store  *localkv.Store
	dao    *dao.Dao
	wallet *wallet.ConnectedWallet
	chain  ChainClient
	relay  *relayclient.Client
}

type CtxOption func(conf *CtxConfig)

func NewServerCtx(options ...CtxOption) *ServerCtx {
	c := &CtxConfig{}
	for _, opt := range options {
		opt(c)
	}
	return &ServerCtx{
		Store:  c.store,
		Dao:    c.dao,
		Wallet: c.wallet,
		Chain:  c.chain,
		Relay:  c.relay,
	}
}

func WithStore(store *localkv.Store) CtxOption {
	return func(conf *CtxConfig) {
		conf.store = store
	}
}

func WithDao(d *dao.Dao) CtxOption {
	return func(conf *CtxConfig) {
		conf.dao = d
	}
}

func WithWallet(w *wallet.ConnectedWallet) CtxOption {
	return func(conf *CtxConfig) {
		conf.wallet = w
	}
}

func WithChain(c ChainClient) CtxOption {
	return func(conf *CtxConfig) {
		conf.chain = c
	}
}

func WithRelay(r *relayclient.Client) CtxOption {
	return func(conf *CtxConfig) {
		conf.relay = r
	}
}
