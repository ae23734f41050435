package utils

import (
	"encoding/json"

	"github.com/gofiber/fiber/v3"
)

// GetLocals decodes a value stored with SetLocals into result. A missing
// local leaves result untouched.
func GetLocals(c fiber.Ctx, name string, result any) error {
	raw, ok := c.Locals(name).(string)
	if !ok || raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), result)
}

// SetLocals stores data as JSON so it survives the websocket upgrade, which
// runs after the fiber context is released.
func SetLocals(c fiber.Ctx, name string, data any) {
	bytes, _ := json.Marshal(data)
	c.Locals(name, string(bytes))
}
