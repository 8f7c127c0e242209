package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderRequestID is the header carrying the request id.
const HeaderRequestID = "X-Request-ID"

// RequestID tags every request with an id, generating one when the client
// did not send one. The id is stored in locals under "requestid" so the
// access-log format can reference it, and echoed in the response header.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if id == "" {
			id = uuid.New().String()
		}
		c.Locals("requestid", id)
		c.Set(HeaderRequestID, id)
		return c.Next()
	}
}
