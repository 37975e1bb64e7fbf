package v1

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/asaworks/asa-studio/base/errcode"
	"github.com/asaworks/asa-studio/base/kit/validator"
	"github.com/asaworks/asa-studio/base/xhttp"
	"github.com/asaworks/asa-studio/src/service/svc"
	service "github.com/asaworks/asa-studio/src/service/v1"
	types "github.com/asaworks/asa-studio/src/types/v1"
)

// ListHistoryHandler returns created assets, most recent first.
func ListHistoryHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.Query("limit"))
		res, err := service.ListHistory(c.Request.Context(), svcCtx, limit)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}

// ClearHistoryHandler drops the whole created-asset list.
func ClearHistoryHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := service.ClearHistory(c.Request.Context(), svcCtx); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, gin.H{"cleared": true})
	}
}

func GetThemeHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := service.GetTheme(c.Request.Context(), svcCtx)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}

func SetThemeHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := types.ThemeReq{}
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, errcode.NewErr(errcode.CodeInvalidParams, err.Error()))
			return
		}
		if err := validator.Verify(&req); err != nil {
			xhttp.Error(c, errcode.NewErr(errcode.CodeInvalidParams, err.Error()))
			return
		}
		if err := service.SetTheme(c.Request.Context(), svcCtx, req.Theme); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, types.ThemeResp{Theme: req.Theme})
	}
}
