package ws

import (
	"errors"
	"strings"
	"time"

	"auditstream/internal/env"
	"auditstream/internal/errmsg"
	"auditstream/internal/utils"

	sj "github.com/brianvoe/sjwt"
	"github.com/gofiber/fiber/v3"
)

const viewerLocal = "viewer"

var errInvalidToken = errors.New("invalid viewer token")

// Viewer is the identity carried by a viewer token.
type Viewer struct {
	UserID string `json:"userId"`
}

func (v *Viewer) GenToken(secret []byte, ttl time.Duration) string {
	claims, _ := sj.ToClaims(v)
	claims.SetExpiresAt(time.Now().Add(ttl))

	return claims.Generate(secret)
}

func (v *Viewer) ParseToken(token string, secret []byte) error {
	if !sj.Verify(token, secret) {
		return errInvalidToken
	}

	claims, err := sj.Parse(token)
	if err != nil {
		return errInvalidToken
	}
	if err := claims.Validate(); err != nil {
		return err
	}

	return claims.ToStruct(v)
}

// ViewerMiddleware reads an optional viewer token from the Authorization
// header or, since browsers cannot set headers on websocket upgrades, from
// the authorization query parameter. Anonymous viewers pass through; a token
// that is present but invalid is rejected.
func ViewerMiddleware(c fiber.Ctx) error {
	token := viewerToken(c)
	if token == "" {
		return c.Next()
	}

	var viewer Viewer
	if err := viewer.ParseToken(token, env.JWT_SECRET); err != nil || viewer.UserID == "" {
		return utils.StatusError(c, errmsg.ViewerInvalidToken)
	}

	utils.SetLocals(c, viewerLocal, viewer)

	return c.Next()
}

func viewerToken(c fiber.Ctx) string {
	authHeader := strings.TrimSpace(c.Get("Authorization"))
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		tokens := strings.Fields(authHeader)
		if len(tokens) == 2 {
			return strings.TrimSpace(tokens[1])
		}
		return ""
	}

	return strings.TrimSpace(c.Query("authorization"))
}

// GetViewer loads the viewer set by ViewerMiddleware, if any.
func GetViewer(c fiber.Ctx, v *Viewer) error {
	return utils.GetLocals(c, viewerLocal, v)
}
