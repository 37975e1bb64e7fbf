package types

import "github.com/asaworks/asa-studio/base/wallet"

// ConnectReq selects which connection model to use. For kind "traditional"
// WalletID names a registered adapter; for kind "federated" Provider names a
// social login provider, or is empty to open the general chooser.
type ConnectReq struct {
	Kind     string `json:"kind" validate:"required,oneof=traditional federated"`
	WalletID string `json:"wallet_id"`
	Provider string `json:"provider"`
}

type SessionResp struct {
	Session wallet.Session `json:"session"`
	Network string         `json:"network"`
}

type WalletsResp struct {
	Wallets []wallet.AdapterInfo `json:"wallets"`
}
