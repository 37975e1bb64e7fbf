package dao

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/asaworks/asa-studio/base/stores/localkv"
)

func newTestDao(t *testing.T) *Dao {
	t.Helper()
	store, err := localkv.Open(filepath.Join(t.TempDir(), "studio.json"))
	require.NoError(t, err)
	return New(context.Background(), store)
}

func TestAppendIsPrependOrdered(t *testing.T) {
	d := newTestDao(t)

	require.NoError(t, d.AppendCreatedAsset(CreatedAssetRecord{AssetID: 1, Name: "A"}))
	require.NoError(t, d.AppendCreatedAsset(CreatedAssetRecord{AssetID: 2, Name: "B"}))

	records, err := d.ListCreatedAssets()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "B", records[0].Name)
	require.Equal(t, "A", records[1].Name)
}

func TestDuplicateAssetIDsAllowed(t *testing.T) {
	d := newTestDao(t)
	require.NoError(t, d.AppendCreatedAsset(CreatedAssetRecord{AssetID: 7}))
	require.NoError(t, d.AppendCreatedAsset(CreatedAssetRecord{AssetID: 7}))
	records, err := d.ListCreatedAssets()
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestClear(t *testing.T) {
	d := newTestDao(t)
	require.NoError(t, d.AppendCreatedAsset(CreatedAssetRecord{AssetID: 1}))
	require.NoError(t, d.ClearCreatedAssets())
	records, err := d.ListCreatedAssets()
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestLegacyRecordsDecodeWithDefaults(t *testing.T) {
	d := newTestDao(t)

	// A record written by an older build: missing fields, plus one the
	// current build does not know about.
	legacy := `[{"asset_id": 42, "legacy_field": true}, {"name": "NoID"}]`
	require.NoError(t, d.Store.Set("asa-studio:created-assets", legacy))

	records, err := d.ListCreatedAssets()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, uint64(42), records[0].AssetID)
	require.Empty(t, records[0].Name)
	require.Equal(t, "NoID", records[1].Name)
	require.Zero(t, records[1].AssetID)
}

func TestUndecodableRecordSkipped(t *testing.T) {
	d := newTestDao(t)
	mixed := `[{"asset_id": 1}, "not an object", {"asset_id": 2}]`
	require.NoError(t, d.Store.Set("asa-studio:created-assets", mixed))

	records, err := d.ListCreatedAssets()
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestHistorySurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "studio.json")

	store, err := localkv.Open(path)
	require.NoError(t, err)
	d := New(context.Background(), store)
	require.NoError(t, d.AppendCreatedAsset(CreatedAssetRecord{AssetID: 9, Total: "1000"}))

	store2, err := localkv.Open(path)
	require.NoError(t, err)
	d2 := New(context.Background(), store2)
	records, err := d2.ListCreatedAssets()
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "1000", records[0].Total)
}

func TestThemeRoundTrip(t *testing.T) {
	d := newTestDao(t)

	theme, err := d.GetTheme()
	require.NoError(t, err)
	require.Equal(t, "light", theme)

	require.NoError(t, d.SetTheme("dark"))
	theme, err = d.GetTheme()
	require.NoError(t, err)
	require.Equal(t, "dark", theme)
}

func TestStoredShapeIsOneJSONArray(t *testing.T) {
	d := newTestDao(t)
	require.NoError(t, d.AppendCreatedAsset(CreatedAssetRecord{AssetID: 1}))

	raw, err := d.Store.Get("asa-studio:created-assets")
	require.NoError(t, err)
	var arr []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &arr))
	require.Len(t, arr, 1)
}
