// @title Audit Stream API
// @version 1.0
// @description Live tailing, querying and aggregation of API audit records.
// @BasePath /

// @Tag.name Meta
// @Tag.description Liveness, version and metrics probes.

// @Tag.name Logs
// @Tag.description Filtered queries over stored audit records.

// @Tag.name Report
// @Tag.description Dashboard KPIs and charts for the current day.

// @Tag.name Users
// @Tag.description Directory users of the configured organization.

// @Tag.name Stream
// @Tag.description Live push channel for new audit records.

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"auditstream/internal"
	"auditstream/internal/env"
	"auditstream/internal/swagger"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

func main() {
	deployment := flag.String("deployment", "", "deployment profile (dev|test|prod)")
	portFlag := flag.String("port", "", "port to listen on")
	envRoot := flag.String("env-root", "", "directory containing environment files")
	appVersion := flag.String("app-version", "", "application version override")

	flag.Parse()

	deploy := strings.TrimSpace(*deployment)
	if deploy == "" {
		args := flag.Args()
		if len(args) == 0 {
			fmt.Println("Usage: server --deployment <type> --port <port> [--env-root <dir>] [--app-version <version>]")
			os.Exit(1)
		}
		deploy = strings.TrimSpace(args[0])
	}

	if deploy == "" {
		log.Fatal("deployment is required")
	}

	port := strings.TrimSpace(*portFlag)
	if port == "" {
		port = "5000"
	}

	app := internal.SetupApp(deploy, *envRoot, *appVersion)
	swagger.Register(app)

	internal.Logger.Info("starting server",
		zap.String("version", env.VERSION),
		zap.String("port", port))

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			internal.Logger.Warn("shutdown did not complete cleanly", zap.Error(err))
		}
	}()

	if err := app.Listen(fmt.Sprintf(":%s", port), fiber.ListenConfig{
		EnablePrefork: env.PREFORK,
	}); err != nil {
		internal.Logger.Fatal("error listening", zap.String("port", port), zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	internal.Shutdown(ctx)
}
