package cmd

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/asaworks/asa-studio/base/logger/xzap"
	"github.com/asaworks/asa-studio/relay/service"
	"github.com/asaworks/asa-studio/relay/service/config"
)

// DaemonCmd runs the mint relay: one upload-and-pin endpoint plus a health
// check, exposed to the studio frontend.
var DaemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "serve the NFT mint relay.",
	Long:  "serve the NFT mint relay.",
	Run: func(cmd *cobra.Command, args []string) {
		wg := &sync.WaitGroup{}
		wg.Add(1)

		ctx := context.Background()
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		onExit := make(chan error, 1)

		go func() {
			defer wg.Done()

			cfg, err := config.UnmarshalConfig(cfgFile)
			if err != nil {
				xzap.WithContext(ctx).Error("Failed to unmarshal config", zap.Error(err))
				onExit <- err
				return
			}

			_, err = xzap.SetUp(cfg.Log)
			if err != nil {
				xzap.WithContext(ctx).Error("Failed to set up logger", zap.Error(err))
				onExit <- err
				return
			}

			xzap.WithContext(ctx).Info("mint relay start", zap.String("port", cfg.Api.Port))

			s, err := service.New(ctx, cfg)
			if err != nil {
				xzap.WithContext(ctx).Error("Failed to create relay server", zap.Error(err))
				onExit <- err
				return
			}

			if cfg.Monitor.PprofEnable {
				go http.ListenAndServe(fmt.Sprintf("0.0.0.0:%d", cfg.Monitor.PprofPort), nil)
			}

			if err := s.Start(); err != nil {
				xzap.WithContext(ctx).Error("Failed to start relay server", zap.Error(err))
				onExit <- err
				return
			}
		}()

		onSignal := make(chan os.Signal, 1)
		signal.Notify(onSignal, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-onSignal:
			switch sig {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM:
				cancel()
				xzap.WithContext(ctx).Info("Exit by signal", zap.String("signal", sig.String()))
			}
		case err := <-onExit:
			cancel()
			xzap.WithContext(ctx).Error("Exit by error", zap.Error(err))
		}

		wg.Wait()
	},
}

func init() {
	rootCmd.AddCommand(DaemonCmd)
}
