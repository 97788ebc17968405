package delivery

import (
	"errors"
	"studentportal/config"
	"studentportal/domain"
	"studentportal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type registrationHandler struct {
	uc      domain.RegistrationUseCase
	metrics *middleware.Metrics
}

// NewRegistrationDelivery mounts POST and GET /api/register. metrics may be nil.
func NewRegistrationDelivery(app *fiber.App, uc domain.RegistrationUseCase, metrics *middleware.Metrics) {
	handler := &registrationHandler{
		uc:      uc,
		metrics: metrics,
	}

	route := app.Group("/api/register")
	route.Post("/", handler.Register)
	route.Get("/", handler.GetAllRegistrations)
}

func (rh *registrationHandler) Register(c *fiber.Ctx) error {
	doc := domain.Document{}

	// Bodies that are not JSON are read as an empty object.
	if c.Is("json") && len(c.Body()) > 0 {
		if err := c.BodyParser(&doc); err != nil {
			config.PrintLogInfo(c.IP(), fiber.StatusBadRequest, "Register")
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid request body",
				"error":   err.Error(),
			})
		}
	}

	reg, err := rh.uc.Register(c.Context(), doc)
	if err != nil {
		config.PrintLogInfo(c.IP(), fiber.StatusInternalServerError, "Register")
		rh.logFailure("Failed to register student", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Registration failed",
			"error":   err.Error(),
		})
	}

	rh.metrics.RegistrationCreated()
	config.GetLogrusInstance().Debugf("Registration %s stored", reg.ID)
	config.PrintLogInfo(c.IP(), fiber.StatusOK, "Register")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Student registered successfully!",
	})
}

func (rh *registrationHandler) GetAllRegistrations(c *fiber.Ctx) error {
	registrations, err := rh.uc.GetAllRegistrations(c.Context())
	if err != nil {
		config.PrintLogInfo(c.IP(), fiber.StatusInternalServerError, "GetAllRegistrations")
		rh.logFailure("Failed to get all registrations", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch students",
			"error":   err.Error(),
		})
	}

	config.PrintLogInfo(c.IP(), fiber.StatusOK, "GetAllRegistrations")
	return c.Status(fiber.StatusOK).JSON(registrations)
}

// logFailure logs err, tagging store failures with the operation and SQLSTATE and counting them.
func (rh *registrationHandler) logFailure(msg string, err error) {
	entry := config.GetLogrusInstance().WithError(err)

	var se *domain.StorageError
	if errors.As(err, &se) {
		entry = entry.WithFields(logrus.Fields{
			"op":       se.Op,
			"sqlstate": se.Code,
		})
		rh.metrics.StorageFailed(se.Op, se.Code)
	}
	entry.Error(msg)
}
