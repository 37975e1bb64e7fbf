package dao

import (
	"encoding/json"

	"github.com/pkg/errors"
)

const createdAssetsKey = "asa-studio:created-assets"

// CreatedAssetRecord is one asset created from this profile. Every field is
// optional on read: the persisted format carries no schema version, so
// records written by older builds may lack newer fields and must still load.
type CreatedAssetRecord struct {
	AssetID   uint64 `json:"asset_id,omitempty"`
	Name      string `json:"name,omitempty"`
	UnitName  string `json:"unit_name,omitempty"`
	Total     string `json:"total,omitempty"`    // as typed, decimal string
	Decimals  string `json:"decimals,omitempty"` // as typed
	URL       string `json:"url,omitempty"`      // metadata locator, if any
	Manager   string `json:"manager,omitempty"`
	Reserve   string `json:"reserve,omitempty"`
	Freeze    string `json:"freeze,omitempty"`
	Clawback  string `json:"clawback,omitempty"`
	CreatedAt string `json:"created_at,omitempty"` // ISO 8601
}

// AppendCreatedAsset prepends record so the list stays most-recent-first.
// Duplicate asset ids are allowed: re-minting under the same parameters is a
// new row.
func (d *Dao) AppendCreatedAsset(record CreatedAssetRecord) error {
	records, err := d.ListCreatedAssets()
	if err != nil {
		return err
	}
	records = append([]CreatedAssetRecord{record}, records...)
	raw, err := json.Marshal(records)
	if err != nil {
		return errors.Wrap(err, "failed on encode created assets")
	}
	return d.Store.Set(createdAssetsKey, string(raw))
}

// ListCreatedAssets returns the stored list, most recent first. A record
// that fails to decode is skipped; the rest of the list still loads.
func (d *Dao) ListCreatedAssets() ([]CreatedAssetRecord, error) {
	raw, err := d.Store.Get(createdAssetsKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed on read created assets")
	}
	if raw == "" {
		return []CreatedAssetRecord{}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, errors.Wrap(err, "failed on decode created assets")
	}
	records := make([]CreatedAssetRecord, 0, len(items))
	for _, item := range items {
		var r CreatedAssetRecord
		if err := json.Unmarshal(item, &r); err != nil {
			continue
		}
		records = append(records, r)
	}
	return records, nil
}

// ClearCreatedAssets drops the whole list.
func (d *Dao) ClearCreatedAssets() error {
	return d.Store.Del(createdAssetsKey)
}
