package api

import (
	"context"
	"flag"
	"os"
	"testing"
	"time"

	"auditstream/internal"
	"auditstream/test/helpers"

	"github.com/gofiber/fiber/v3"
)

var app *fiber.App

func TestMain(m *testing.M) {
	envRoot := flag.String("env-root", "", "directory containing environment files")
	appVersion := flag.String("app-version", "", "application version override")

	flag.Parse()

	helpers.RequireMongo()

	app = internal.SetupApp("test", *envRoot, *appVersion)

	code := m.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	internal.Shutdown(ctx)
	cancel()

	os.Exit(code)
}
