package service

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.morpionai.com/account/config"
	"go.morpionai.com/account/core"
	"go.morpionai.com/account/middleware"
	"go.uber.org/zap"
)

type HTTPServiceDefault struct {
	config config.Manager
	logger *core.Logger
	router *mux.Router
	srv    *http.Server
}

var _ handlers.RecoveryHandlerLogger = (*recoverLogger)(nil)

type recoverLogger struct {
	logger *core.Logger
}

func (r *recoverLogger) Println(v ...interface{}) {
	r.logger.Error("Recovered from panic", zap.Any("panic", v))
}

func NewHTTPService(cm config.Manager, logger *core.Logger) *HTTPServiceDefault {
	h := &HTTPServiceDefault{
		config: cm,
		logger: logger.Named("http"),
		router: mux.NewRouter(),
	}

	h.router.Use(handlers.RecoveryHandler(handlers.RecoveryLogger(&recoverLogger{h.logger})))
	h.router.Use(middleware.CorsMiddleware(nil))

	h.srv = &http.Server{
		Addr:    ":" + strconv.FormatUint(uint64(cm.Config().Core.Port), 10),
		Handler: h.router,
	}

	return h
}

func (h *HTTPServiceDefault) Router() *mux.Router {
	return h.router
}

func (h *HTTPServiceDefault) Serve() error {
	wg := sync.WaitGroup{}
	wg.Add(1)

	ln, err := net.Listen("tcp", h.srv.Addr)
	if err != nil {
		return err
	}

	h.logger.Info("listening", zap.String("addr", h.srv.Addr))

	go func() {
		defer wg.Done()
		err := h.srv.Serve(ln)
		if err != nil && err != http.ErrServerClosed {
			h.logger.Fatal("Failed to serve", zap.Error(err))
		}
	}()

	wg.Wait()
	return nil
}

func (h *HTTPServiceDefault) Shutdown(ctx context.Context) error {
	return h.srv.Shutdown(ctx)
}
