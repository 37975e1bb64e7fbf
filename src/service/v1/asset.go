package service

import (
	"context"
	"crypto/sha256"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/asaworks/asa-studio/base/amount"
	"github.com/asaworks/asa-studio/base/chain/algoclient"
	"github.com/asaworks/asa-studio/base/errcode"
	"github.com/asaworks/asa-studio/base/logger/xzap"
	"github.com/asaworks/asa-studio/base/wallet"
	"github.com/asaworks/asa-studio/src/dao"
	"github.com/asaworks/asa-studio/src/service/svc"
	types "github.com/asaworks/asa-studio/src/types/v1"
)

// activeSigner returns the session signer or the no-active-wallet error.
func activeSigner(svcCtx *svc.ServerCtx) (wallet.Signer, error) {
	s := svcCtx.Wallet.Session()
	signer := svcCtx.Wallet.Signer()
	if s.ActiveAddress == "" || signer == nil {
		return nil, errcode.ErrNoActiveWallet
	}
	return signer, nil
}

// wholeNumber reports whether s is a plain digit string.
func wholeNumber(s string) bool {
	if s == "" {
		return false
	}
	return !strings.ContainsFunc(s, func(r rune) bool { return r < '0' || r > '9' })
}

func amountErr(err error) error {
	return errcode.NewErr(errcode.CodeAmountInvalid, err.Error())
}

// CreateAsset validates the form, converts the total to base units, submits
// the creation, and appends the result to the created-asset history. Nothing
// is persisted on failure.
func CreateAsset(ctx context.Context, svcCtx *svc.ServerCtx, req types.CreateAssetReq) (*types.CreateAssetResp, error) {
	signer, err := activeSigner(svcCtx)
	if err != nil {
		return nil, err
	}

	if !wholeNumber(req.Total) {
		return nil, errcode.NewErr(errcode.CodeInvalidParams, "total supply must be a whole number")
	}
	if !wholeNumber(req.Decimals) {
		return nil, errcode.NewErr(errcode.CodeInvalidParams, "decimals must be a whole number")
	}
	decimals, err := strconv.ParseUint(req.Decimals, 10, 32)
	if err != nil || decimals > amount.MaxDecimals {
		return nil, errcode.NewErr(errcode.CodeInvalidParams, "decimals must be between 0 and 19")
	}

	total, err := amount.ToBaseUnitsUint64(req.Total, uint32(decimals))
	if err != nil {
		return nil, amountErr(err)
	}

	res, err := svcCtx.Chain.CreateAsset(ctx, signer, algoclient.CreateAssetParams{
		Total:     total,
		Decimals:  uint32(decimals),
		AssetName: req.Name,
		UnitName:  req.UnitName,
		URL:       req.URL,
		Manager:   req.Manager,
		Reserve:   req.Reserve,
		Freeze:    req.Freeze,
		Clawback:  req.Clawback,
	})
	if err != nil {
		return nil, errcode.NewErr(errcode.CodeChainSubmit, err.Error())
	}

	record := dao.CreatedAssetRecord{
		AssetID:   res.AssetID,
		Name:      req.Name,
		UnitName:  req.UnitName,
		Total:     req.Total,
		Decimals:  req.Decimals,
		URL:       req.URL,
		Manager:   req.Manager,
		Reserve:   req.Reserve,
		Freeze:    req.Freeze,
		Clawback:  req.Clawback,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := svcCtx.Dao.AppendCreatedAsset(record); err != nil {
		// The asset exists on chain; a history write failure must not report
		// the creation as failed.
		xzap.WithContext(ctx).Error("failed on append created asset",
			zap.Uint64("asset_id", res.AssetID), zap.Error(err))
	}

	return &types.CreateAssetResp{AssetID: res.AssetID, TxID: res.TxID}, nil
}

// TransferAsset resolves the asset selector, converts the amount with that
// asset's precision, and submits the transfer.
func TransferAsset(ctx context.Context, svcCtx *svc.ServerCtx, req types.TransferReq) (*types.TransferResp, error) {
	signer, err := activeSigner(svcCtx)
	if err != nil {
		return nil, err
	}

	selector := strings.ToLower(strings.TrimSpace(req.Asset))
	var assetID uint64
	var decimals uint32
	switch {
	case selector == AlgoAsset:
		assetID, decimals = 0, algoDecimals
	default:
		if known, ok := lookupWellKnown(svcCtx.C.Algod.Network, selector); ok {
			assetID, decimals = known.ID, known.Decimals
			break
		}
		// Manual asset: id and amount must be whole numbers.
		if !wholeNumber(selector) {
			return nil, errcode.NewErr(errcode.CodeInvalidParams, "asset id must be a whole number")
		}
		assetID, err = strconv.ParseUint(selector, 10, 64)
		if err != nil {
			return nil, errcode.NewErr(errcode.CodeInvalidParams, "asset id must be a whole number")
		}
		if assetID == 0 {
			return nil, errcode.NewErr(errcode.CodeInvalidParams, "asset id must be positive")
		}
		if !wholeNumber(strings.TrimSpace(req.Amount)) {
			return nil, errcode.NewErr(errcode.CodeInvalidParams, "amount must be a whole number for a manual asset")
		}
		decimals = 0
	}

	units, err := amount.ToBaseUnitsUint64(req.Amount, decimals)
	if err != nil {
		return nil, amountErr(err)
	}
	if units == 0 {
		return nil, errcode.NewErr(errcode.CodeInvalidParams, "amount must be positive")
	}

	txid, err := svcCtx.Chain.Transfer(ctx, signer, algoclient.TransferParams{
		Recipient: req.Recipient,
		AssetID:   assetID,
		Amount:    units,
		Note:      []byte(req.Note),
	})
	if err != nil {
		return nil, errcode.NewErr(errcode.CodeChainSubmit, err.Error())
	}
	return &types.TransferResp{
		TxID:   txid,
		Amount: amount.FromBaseUnits(units, decimals),
	}, nil
}

// MintNftParams carries the mint form; the file arrives as a stream from the
// multipart request.
type MintNftParams struct {
	FileName    string
	File        io.Reader `validate:"-"`
	Name        string    `validate:"required"`
	UnitName    string    `validate:"omitempty,unitname"`
	Description string
	Properties  string
	Manager     string `validate:"omitempty,algoaddr"`
}

// MintNft pins the image and metadata through the relay (the off-chain leg),
// then creates a 1-of-1 zero-decimals asset pointing at the metadata locator
// with its hash attached.
func MintNft(ctx context.Context, svcCtx *svc.ServerCtx, p MintNftParams) (*types.MintNftResp, error) {
	signer, err := activeSigner(svcCtx)
	if err != nil {
		return nil, err
	}
	if p.File == nil {
		return nil, errcode.NewErr(errcode.CodeInvalidParams, "a file is required")
	}
	if p.Name == "" {
		return nil, errcode.NewErr(errcode.CodeInvalidParams, "name is required")
	}

	metadataURL, err := svcCtx.Relay.PinImage(ctx, p.FileName, p.File, p.Name, p.Description, p.Properties)
	if err != nil {
		// Already coded as a relay failure so the user knows which leg broke.
		return nil, err
	}

	hash := sha256.Sum256([]byte(metadataURL))
	res, err := svcCtx.Chain.CreateAsset(ctx, signer, algoclient.CreateAssetParams{
		Total:        1,
		Decimals:     0,
		AssetName:    p.Name,
		UnitName:     p.UnitName,
		URL:          metadataURL,
		MetadataHash: string(hash[:]),
		Manager:      p.Manager,
	})
	if err != nil {
		return nil, errcode.NewErr(errcode.CodeChainSubmit, err.Error())
	}

	record := dao.CreatedAssetRecord{
		AssetID:   res.AssetID,
		Name:      p.Name,
		UnitName:  p.UnitName,
		Total:     "1",
		Decimals:  "0",
		URL:       metadataURL,
		Manager:   p.Manager,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := svcCtx.Dao.AppendCreatedAsset(record); err != nil {
		xzap.WithContext(ctx).Error("failed on append created asset",
			zap.Uint64("asset_id", res.AssetID), zap.Error(err))
	}

	return &types.MintNftResp{AssetID: res.AssetID, TxID: res.TxID, MetadataURL: metadataURL}, nil
}
