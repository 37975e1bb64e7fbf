package types

import "github.com/asaworks/asa-studio/src/dao"

// CreateAssetReq carries the asset creation form. Total and Decimals arrive
// as typed, so whole-number checks happen server-side before conversion.
type CreateAssetReq struct {
	Name     string `json:"name" validate:"required"`
	UnitName string `json:"unit_name" validate:"unitname"`
	Total    string `json:"total" validate:"required"`
	Decimals string `json:"decimals" validate:"required"`
	URL      string `json:"url"`
	Manager  string `json:"manager" validate:"omitempty,algoaddr"`
	Reserve  string `json:"reserve" validate:"omitempty,algoaddr"`
	Freeze   string `json:"freeze" validate:"omitempty,algoaddr"`
	Clawback string `json:"clawback" validate:"omitempty,algoaddr"`
}

type CreateAssetResp struct {
	AssetID uint64 `json:"asset_id"`
	TxID    string `json:"tx_id"`
}

// TransferReq is one transfer. Asset selects what moves: "algo" for the
// native currency, a well-known symbol (usdc), or a numeric asset id typed
// manually. The manual path requires whole-number id and amount.
type TransferReq struct {
	Asset     string `json:"asset" validate:"required"`
	Recipient string `json:"recipient" validate:"required,algoaddr"`
	Amount    string `json:"amount" validate:"required"`
	Note      string `json:"note"`
}

// TransferResp reports the confirmed transfer. Amount is the sent quantity
// rendered back at the asset's precision, normalized from whatever form the
// user typed it in ("1.50" comes back as "1.5").
type TransferResp struct {
	TxID   string `json:"tx_id"`
	Amount string `json:"amount"`
}

// MintNftResp reports both legs of an NFT mint: the off-chain metadata
// locator and the on-chain asset.
type MintNftResp struct {
	AssetID     uint64 `json:"asset_id"`
	TxID        string `json:"tx_id"`
	MetadataURL string `json:"metadata_url"`
}

type HistoryResp struct {
	Assets []dao.CreatedAssetRecord `json:"assets"`
}

type ThemeResp struct {
	Theme string `json:"theme"`
}

type ThemeReq struct {
	Theme string `json:"theme" validate:"required,oneof=light dark"`
}
