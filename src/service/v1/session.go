package service

import (
	"context"

	"github.com/asaworks/asa-studio/base/errcode"
	"github.com/asaworks/asa-studio/base/wallet"
	"github.com/asaworks/asa-studio/src/service/svc"
	types "github.com/asaworks/asa-studio/src/types/v1"
)

// GetSession returns the merged session snapshot.
func GetSession(_ context.Context, svcCtx *svc.ServerCtx) *types.SessionResp {
	return &types.SessionResp{
		Session: svcCtx.Wallet.Session(),
		Network: svcCtx.C.Algod.Network,
	}
}

// ListWallets lists the registered traditional adapters.
func ListWallets(_ context.Context, svcCtx *svc.ServerCtx) *types.WalletsResp {
	return &types.WalletsResp{Wallets: svcCtx.Wallet.Wallets()}
}

// Connect runs one of the two connect flows and returns the resulting
// session. Any failure leaves the session fully disconnected on that path.
func Connect(ctx context.Context, svcCtx *svc.ServerCtx, req types.ConnectReq) (*types.SessionResp, error) {
	switch req.Kind {
	case string(wallet.KindTraditional):
		if req.WalletID == "" {
			return nil, errcode.NewErr(errcode.CodeInvalidParams, "wallet_id is required for a traditional connect")
		}
		if err := svcCtx.Wallet.ConnectWallet(ctx, req.WalletID); err != nil {
			return nil, err
		}
	case string(wallet.KindFederated):
		if err := svcCtx.Wallet.ConnectSocial(ctx, req.Provider); err != nil {
			return nil, err
		}
	default:
		return nil, errcode.NewErr(errcode.CodeInvalidParams, "unknown connect kind")
	}
	return GetSession(ctx, svcCtx), nil
}

// Disconnect tears down whichever provider(s) are active.
func Disconnect(ctx context.Context, svcCtx *svc.ServerCtx) (*types.SessionResp, error) {
	if err := svcCtx.Wallet.Disconnect(ctx); err != nil {
		return nil, err
	}
	return GetSession(ctx, svcCtx), nil
}
