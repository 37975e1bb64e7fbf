package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/asaworks/asa-studio/base/errcode"
	"github.com/asaworks/asa-studio/base/kit/validator"
	"github.com/asaworks/asa-studio/base/xhttp"
	"github.com/asaworks/asa-studio/src/service/svc"
	service "github.com/asaworks/asa-studio/src/service/v1"
	types "github.com/asaworks/asa-studio/src/types/v1"
)

// GetSessionHandler returns the merged wallet session.
func GetSessionHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		xhttp.OkJson(c, service.GetSession(c.Request.Context(), svcCtx))
	}
}

// ListWalletsHandler lists the registered traditional wallet adapters.
func ListWalletsHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		xhttp.OkJson(c, service.ListWallets(c.Request.Context(), svcCtx))
	}
}

// ConnectHandler starts a traditional or federated connect flow.
func ConnectHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := types.ConnectReq{}
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, errcode.NewErr(errcode.CodeInvalidParams, err.Error()))
			return
		}
		if err := validator.Verify(&req); err != nil {
			xhttp.Error(c, errcode.NewErr(errcode.CodeInvalidParams, err.Error()))
			return
		}

		res, err := service.Connect(c.Request.Context(), svcCtx, req)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}

// DisconnectHandler tears down the active session.
func DisconnectHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := service.Disconnect(c.Request.Context(), svcCtx)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}
