package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/asaworks/asa-studio/src/api/middleware"
	v1 "github.com/asaworks/asa-studio/src/api/v1"
	"github.com/asaworks/asa-studio/src/service/svc"
)

func NewRouter(svcCtx *svc.ServerCtx) *gin.Engine {
	gin.ForceConsoleColor()
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.RecoverMiddleware())
	r.Use(middleware.RLog())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           1 * time.Hour,
	}))
	loadV1(r, svcCtx)

	return r
}

func loadV1(r *gin.Engine, svcCtx *svc.ServerCtx) {
	api := r.Group("/api/v1")

	api.GET("/session", v1.GetSessionHandler(svcCtx))
	api.GET("/wallets", v1.ListWalletsHandler(svcCtx))
	api.POST("/session/connect", v1.ConnectHandler(svcCtx))
	api.POST("/session/disconnect", v1.DisconnectHandler(svcCtx))

	api.POST("/assets", v1.CreateAssetHandler(svcCtx))
	api.POST("/assets/transfer", v1.TransferAssetHandler(svcCtx))
	api.POST("/assets/mint-nft", v1.MintNftHandler(svcCtx))
	api.GET("/assets/history", v1.ListHistoryHandler(svcCtx))
	api.DELETE("/assets/history", v1.ClearHistoryHandler(svcCtx))

	api.GET("/preferences/theme", v1.GetThemeHandler(svcCtx))
	api.PUT("/preferences/theme", v1.SetThemeHandler(svcCtx))
}
