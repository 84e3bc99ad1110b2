package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gestor/gestor/agents/configs"
	"gestor/gestor/config"
	"gestor/gestor/controllers"
	"gestor/gestor/routes"
	"gestor/gestor/services/llm"
	"gestor/gestor/utils/logging"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	logging.InitLogger(cfg.LogDir)
	defer logging.Sync()

	agent, err := configs.LoadAgentDefinition(cfg.AgentConfigFile)
	if err != nil {
		logging.ErrorLogger.Error("agent config error", zap.Error(err))
		os.Exit(1)
	}
	runner, err := llm.NewRunner(cfg)
	if err != nil {
		logging.ErrorLogger.Error("agent runner error", zap.Error(err))
		os.Exit(1)
	}

	chatCtrl := controllers.NewChatController(runner, agent)
	healthCtrl := controllers.NewHealthController()

	// leave room for the runner's own timeout to surface as a 500 first
	handler := routes.NewRouter(chatCtrl, healthCtrl, cfg.AgentTimeout+10*time.Second)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logging.AppLogger.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("agent", agent.Name),
			zap.String("model", agent.Model),
			zap.Strings("tools", agent.ToolTypes()),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
			os.Exit(1)
		}
	}()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
		return
	}
	logging.AppLogger.Info("server shutdown complete")
}
