package servehttp

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bneibrit/bizerror"
	"bneibrit/common"
	"bneibrit/infra/tracing"

	"github.com/gin-gonic/gin"
)

// NewEngine builds the gin engine with tracing and error handling installed.
func NewEngine() *gin.Engine {
	engine := gin.Default()
	engine.Use(tracing.TracingIngress(), bizerror.ErrorHandling())
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, common.ServiceName)
	})
	return engine
}

// StartHTTPServer serves engine on port until SIGINT or SIGTERM, then shuts down gracefully.
func StartHTTPServer(engine *gin.Engine, port string) {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: engine,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.Log.Fatalf("listen: %v", err)
		}
	}()
	common.Log.WithField("port", port).Info("http server started")

	quit := make(chan os.Signal, 1)
	// kill -9 can't be caught
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	common.Log.Info("[QUIT] shutdown signal has been received, the service will exit in 3 seconds.")

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.Log.Errorf("[QUIT] http server shutdown failed: %v", err)
		return
	}
	common.Log.Info("[QUIT] http server is shutdown gracefully, new request will be rejected.")
}
