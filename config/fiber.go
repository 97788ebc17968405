package config

import (
	"errors"
	"net"
	"os"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func GetFiberListenAddress() string {
	return net.JoinHostPort(GetFiberHttpHost(), GetFiberHttpPort())
}

func GetFiberConfig() fiber.Config {
	return fiber.Config{
		JSONEncoder:   sonic.Marshal,
		JSONDecoder:   sonic.Unmarshal,
		ServerHeader:  GetAppName(),
		AppName:       GetAppName(),
		ReadTimeout:   time.Second * 60,
		CaseSensitive: true,
		ErrorHandler:  jsonErrorHandler,
	}
}

// jsonErrorHandler answers unhandled errors (unknown routes, recovered panics) in the same
// {message, error} shape the handlers use.
func jsonErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	PrintLogInfo(c.IP(), code, c.Method()+" "+c.Path())
	return c.Status(code).JSON(fiber.Map{
		"message": "Request failed",
		"error":   err.Error(),
	})
}

func GetAppName() string {
	return getEnv("APP_NAME", "STUDENT-PORTAL")
}

func GetFiberHttpHost() string {
	return getEnv("HTTP_HOST", "0.0.0.0")
}

func GetFiberHttpPort() string {
	return getEnv("HTTP_PORT", "5000")
}

func GetCorsAllowOrigins() string {
	return getEnv("CORS_ALLOW_ORIGINS", "*")
}

// GetRequestTimeout bounds a single store operation.
func GetRequestTimeout() time.Duration {
	return getEnvDuration("REQUEST_TIMEOUT", 10*time.Second)
}

// GetMetricsAddress returns the prometheus listener address, empty when disabled.
func GetMetricsAddress() string {
	return getEnv("METRICS_ADDR", "")
}
