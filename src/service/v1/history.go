package service

import (
	"context"

	"github.com/asaworks/asa-studio/src/common/utils"
	"github.com/asaworks/asa-studio/src/service/svc"
	types "github.com/asaworks/asa-studio/src/types/v1"
)

// maxHistoryPage caps one history response.
const maxHistoryPage = 100

// ListHistory returns created assets, most recent first. limit <= 0 means
// the default page size.
func ListHistory(_ context.Context, svcCtx *svc.ServerCtx, limit int) (*types.HistoryResp, error) {
	records, err := svcCtx.Dao.ListCreatedAssets()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = maxHistoryPage
	}
	n := utils.Min(len(records), utils.Min(limit, maxHistoryPage))
	return &types.HistoryResp{Assets: records[:n]}, nil
}

// ClearHistory drops the whole created-asset list.
func ClearHistory(_ context.Context, svcCtx *svc.ServerCtx) error {
	return svcCtx.Dao.ClearCreatedAssets()
}

// GetTheme and SetTheme persist the display preference.
func GetTheme(_ context.Context, svcCtx *svc.ServerCtx) (*types.ThemeResp, error) {
	theme, err := svcCtx.Dao.GetTheme()
	if err != nil {
		return nil, err
	}
	return &types.ThemeResp{Theme: theme}, nil
}

func SetTheme(_ context.Context, svcCtx *svc.ServerCtx, theme string) error {
	return svcCtx.Dao.SetTheme(theme)
}
