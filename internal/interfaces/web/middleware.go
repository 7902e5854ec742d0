package web

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/estoque-web/pkg/logger"
)

// AccessLog registra método, rota, status e duração de cada requisição,
// correlacionados pelo request id gerado pelo middleware requestid.
func AccessLog(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		requestID, _ := c.Locals("requestid").(string)
		log.Info().
			Str("request_id", requestID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("duration", time.Since(start)).
			Msg("requisição")
		return err
	}
}
