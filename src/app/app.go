package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/asaworks/asa-studio/base/logger/xzap"
	"github.com/asaworks/asa-studio/src/config"
	"github.com/asaworks/asa-studio/src/service/svc"
)

// Platform holds the assembled application.
type Platform struct {
	config    *config.Config
	router    *gin.Engine
	serverCtx *svc.ServerCtx
}

func NewPlatform(config *config.Config, router *gin.Engine, serverCtx *svc.ServerCtx) (*Platform, error) {
	return &Platform{
		config:    config,
		router:    router,
		serverCtx: serverCtx,
	}, nil
}

// Start runs the HTTP server. Blocking.
func (p *Platform) Start() {
	xzap.WithContext(context.Background()).Info("asa-studio run",
		zap.String("port", p.config.Api.Port),
		zap.String("network", p.config.Algod.Network))
	if err := p.router.Run(p.config.Api.Port); err != nil {
		panic(err)
	}
}
