package logs

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
	app.Get("/logs", ListLogsHandler(svc, log))
}

// ListLogsHandler returns audit records matching the query filters.
// @Summary List audit records
// @Tags Logs
// @Produce json
// @Param user_id query string false "User identifier (string or ObjectID form)"
// @Param start_date query string false "Inclusive ISO-8601 start date or datetime (UTC)"
// @Param end_date query string false "Inclusive ISO-8601 end date, widened to end of day (UTC)"
// @Param limit query int false "Maximum records" default(50)
// @Param order query string false "Timestamp order" Enums(asc, desc) default(desc)
// @Success 200 {array} models.ProjectedRecord
// @Failure 500 {object} errmsg._LogsFetchFailed
// @Router /logs [get]
func ListLogsHandler(svc *Service, log *zap.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		params := Params{
			UserID:    c.Query("user_id"),
			StartDate: c.Query("start_date"),
			EndDate:   c.Query("end_date"),
			Limit:     c.Query("limit"),
			Order:     c.Query("order"),
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		records, err := svc.ListRecords(ctx, params.Filter())
		if err != nil {
			log.Error("error in /logs endpoint", zap.Error(err))
			return utils.StatusError(c, errmsg.LogsFetchFailed)
		}

		return c.JSON(records)
	}
}
