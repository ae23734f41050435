package users

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
	app.Get("/users", ListUsersHandler(svc, log))
}

// ListUsersHandler lists the configured organization's users.
// @Summary List directory users
// @Tags Users
// @Produce json
// @Success 200 {array} models.DirectoryUser
// @Failure 500 {object} errmsg._UsersFetchFailed
// @Failure 503 {object} errmsg._UsersOrgNotConfigured
// @Router /users [get]
func ListUsersHandler(svc *Service, log *zap.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		if svc.OrgID() == "" {
			return utils.StatusError(c, errmsg.UsersOrgNotConfigured)
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		users, err := svc.List(ctx)
		if err != nil {
			log.Error("error listing directory users", zap.Error(err))
			return utils.StatusError(c, errmsg.UsersFetchFailed)
		}

		return c.JSON(users)
	}
}
