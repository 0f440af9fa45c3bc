package http_server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"presencehub/internal/http/presencehandler"
	"presencehub/internal/services/presence"
	"presencehub/internal/ws"
)

type httpServer struct {
	listenPort  uint16
	corsOrigins []string
	srv         http.Server
	ln          net.Listener
	presenceSvc presence.IPresenceService
	wsSrv       *ws.WsServer
	ctx         context.Context
}

func NewHttpServer(ctx context.Context, listenPort uint16, corsOrigins []string, wsSrv *ws.WsServer, presenceSvc presence.IPresenceService) *httpServer {
	return &httpServer{
		listenPort:  listenPort,
		corsOrigins: corsOrigins,
		wsSrv:       wsSrv,
		presenceSvc: presenceSvc,
		ctx:         ctx,
	}
}

func (h *httpServer) Start() error {
	var err error
	listenAddr := fmt.Sprintf(":%d", h.listenPort)
	h.ln, err = net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}

	routerEngine := gin.New()

	routerEngine.Use(ginzap.RecoveryWithZap(zap.L(), true))

	// Open posture by default; credentials only make sense with explicit
	// origins (browsers reject the wildcard+credentials combination).
	corsCfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}
	if len(h.corsOrigins) == 1 && h.corsOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = h.corsOrigins
		corsCfg.AllowCredentials = true
	}
	routerEngine.Use(cors.New(corsCfg))

	// Static files for the web UI
	routerEngine.StaticFile("", "public/index.html")

	// websocket endpoint
	routerEngine.GET("/ws", h.wsSrv.Handle)

	// REST API
	ph := presencehandler.New(h.presenceSvc)
	ph.Register(routerEngine)

	h.srv = http.Server{
		Handler: routerEngine,
	}

	return h.srv.Serve(h.ln)
}

// Dispose gracefully shuts the HTTP server down.
// It waits up to 10 s for in-flight requests to finish.
func (h *httpServer) Dispose() error {
	// Create a context that times-out after 10 s.
	ctx, cancel := context.WithTimeout(h.ctx, 10*time.Second)
	defer cancel()

	// Ask the server to shut down.
	if err := h.srv.Shutdown(ctx); err != nil {
		zap.L().Error("http_dispose", zap.Error(err))
		return err // e.g. active conns didn't finish in time
	}

	// If the context's deadline expired, log it for observability.
	if ctx.Err() == context.DeadlineExceeded {
		zap.L().Error("http_dispose", zap.Error(errors.New("shutdown timed out")))
		log.Println("shutdown timeout (10 s)")
	}

	return nil
}
