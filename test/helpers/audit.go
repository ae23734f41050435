package helpers

import (
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v3"
)

func API_Ping(
	t *testing.T,
	app *fiber.App,
) (bodyBytes []byte, statusCode int) {
	return RequestRunner(t, app, "GET", "/ping", nil)
}

func API_ListLogs(
	t *testing.T,
	app *fiber.App,
	query url.Values,
) (bodyBytes []byte, statusCode int) {
	path := "/logs"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return RequestRunner(t, app, "GET", path, nil)
}

func API_DashboardStats(
	t *testing.T,
	app *fiber.App,
) (bodyBytes []byte, statusCode int) {
	return RequestRunner(t, app, "GET", "/report/dashboard_stats", nil)
}

func API_Users(
	t *testing.T,
	app *fiber.App,
) (bodyBytes []byte, statusCode int) {
	return RequestRunner(t, app, "GET", "/users", nil)
}

func API_Metrics(
	t *testing.T,
	app *fiber.App,
) (bodyBytes []byte, statusCode int) {
	return RequestRunner(t, app, "GET", "/metrics", nil)
}
