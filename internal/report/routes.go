package report

import (
	"context"
	"time"

	"auditstream/internal/errmsg"
	"auditstream/internal/utils"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

const requestTimeout = 30 * time.Second

func Routes(app fiber.Router, svc *Service, log *zap.Logger) {
	report := app.Group("/report")
	report.Get("/dashboard_stats", DashboardStatsHandler(svc, log))
}

// DashboardStatsHandler computes the dashboard report.
// @Summary Dashboard report
// @Description KPIs and top-N facets cover today (UTC); the activity histogram covers the trailing 24 hours.
// @Tags Report
// @Produce json
// @Success 200 {object} models.DashboardReport
// @Failure 500 {object} errmsg._ReportFailed
// @Router /report/dashboard_stats [get]
func DashboardStatsHandler(svc *Service, log *zap.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		report, err := svc.DashboardReport(ctx)
		if err != nil {
			log.Error("error computing dashboard report", zap.Error(err))
			return utils.StatusError(c, errmsg.ReportFailed)
		}

		return c.JSON(report)
	}
}
