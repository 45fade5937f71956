package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.morpionai.com/account/core"
	"go.morpionai.com/account/service"
	"go.uber.org/zap"
)

const exitCodeForceQuit = 1

const shutdownTimeout = 15 * time.Second

func trapSignals(httpService *service.HTTPServiceDefault, logger *core.Logger) {
	go func() {
		sigchan := make(chan os.Signal, 1)
		signal.Notify(sigchan, syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP, syscall.SIGQUIT)

		for sig := range sigchan {
			switch sig {
			case syscall.SIGQUIT:
				logger.Info("quitting process immediately", zap.String("signal", "SIGQUIT"))
				os.Exit(exitCodeForceQuit)

			case syscall.SIGTERM, syscall.SIGINT:
				logger.Info("shutting down", zap.String("signal", sig.String()))
				ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				if err := httpService.Shutdown(ctx); err != nil {
					logger.Error("graceful shutdown failed", zap.Error(err))
				}
				cancel()

			case syscall.SIGHUP:
				// ignore; this signal is sometimes sent outside of the user's control
				logger.Info("not implemented", zap.String("signal", "SIGHUP"))
			}
		}
	}()
}
