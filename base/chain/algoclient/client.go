// Package algoclient wraps the algod SDK client with the few operations the
// studio performs. Consensus, asset registry, and transaction validation stay
// with the network; this layer only builds, signs, submits, and waits.
package algoclient

import (
	"context"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/algod"
	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/pkg/errors"

	"github.com/asaworks/asa-studio/base/wallet"
)

// confirmationRounds is how long a submitted transaction is awaited before
// the submission is reported as unconfirmed.
const confirmationRounds = 4

type Client struct {
	algod *algod.Client
}

func New(url, token string) (*Client, error) {
	c, err := algod.MakeClient(url, token)
	if err != nil {
		return nil, errors.Wrap(err, "failed on create algod client")
	}
	return &Client{algod: c}, nil
}

// CreateAssetParams carries the on-chain asset configuration. Addresses are
// optional; an empty string leaves the role unset.
type CreateAssetParams struct {
	Total         uint64
	Decimals      uint32
	AssetName     string
	UnitName      string
	URL           string
	MetadataHash  string
	DefaultFrozen bool
	Manager       string
	Reserve       string
	Freeze        string
	Clawback      string
}

// CreateAssetResult reports the confirmed creation.
type CreateAssetResult struct {
	AssetID uint64
	TxID    string
}

// CreateAsset builds, signs, submits, and confirms an asset creation for the
// signer's address.
func (c *Client) CreateAsset(ctx context.Context, signer wallet.Signer, p CreateAssetParams) (*CreateAssetResult, error) {
	sp, err := c.algod.SuggestedParams().Do(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed on fetch suggested params")
	}

	txn, err := transaction.MakeAssetCreateTxn(
		signer.Address(), nil, sp,
		p.Total, p.Decimals, p.DefaultFrozen,
		p.Manager, p.Reserve, p.Freeze, p.Clawback,
		p.UnitName, p.AssetName, p.URL, p.MetadataHash,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed on build asset create txn")
	}

	txid, err := c.submit(ctx, signer, txn)
	if err != nil {
		return nil, err
	}

	info, err := transaction.WaitForConfirmation(c.algod, txid, confirmationRounds, ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed on wait for confirmation")
	}
	return &CreateAssetResult{AssetID: info.AssetIndex, TxID: txid}, nil
}

// TransferParams carries one transfer. AssetID zero means the native currency
// (a payment transaction); anything else is an asset transfer.
type TransferParams struct {
	Recipient string
	AssetID   uint64
	Amount    uint64
	Note      []byte
}

// Transfer submits a payment or asset transfer and waits for confirmation.
func (c *Client) Transfer(ctx context.Context, signer wallet.Signer, p TransferParams) (string, error) {
	sp, err := c.algod.SuggestedParams().Do(ctx)
	if err != nil {
		return "", errors.Wrap(err, "failed on fetch suggested params")
	}

	var txn types.Transaction
	if p.AssetID == 0 {
		txn, err = transaction.MakePaymentTxn(signer.Address(), p.Recipient, p.Amount, p.Note, "", sp)
		if err != nil {
			return "", errors.Wrap(err, "failed on build payment txn")
		}
	} else {
		txn, err = transaction.MakeAssetTransferTxn(signer.Address(), p.Recipient, p.Amount, p.Note, sp, "", p.AssetID)
		if err != nil {
			return "", errors.Wrap(err, "failed on build asset transfer txn")
		}
	}

	txid, err := c.submit(ctx, signer, txn)
	if err != nil {
		return "", err
	}
	if _, err := transaction.WaitForConfirmation(c.algod, txid, confirmationRounds, ctx); err != nil {
		return "", errors.Wrap(err, "failed on wait for confirmation")
	}
	return txid, nil
}

// submit signs txn and broadcasts it, returning the transaction id.
func (c *Client) submit(ctx context.Context, signer wallet.Signer, txn types.Transaction) (string, error) {
	txid, stx, err := signer.SignTransaction(txn)
	if err != nil {
		return "", errors.Wrap(err, "failed on sign transaction")
	}
	if _, err := c.algod.SendRawTransaction(stx).Do(ctx); err != nil {
		return "", errors.Wrap(err, "failed on broadcast transaction")
	}
	return txid, nil
}
