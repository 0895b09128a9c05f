// Package utils holds small helpers shared by handlers and middleware.
package utils

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"aurum/internal/errors"
)

// Respond sends a JSON response with the specified status code.
func Respond(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

// Success sends a successful JSON response.
func Success(c *fiber.Ctx, data interface{}) error {
	return Respond(c, fiber.StatusOK, data)
}

// Created sends a 201 JSON response.
func Created(c *fiber.Ctx, data interface{}) error {
	return Respond(c, fiber.StatusCreated, data)
}

// WriteError maps an error to its HTTP response. Domain errors carry their
// own status and message; everything else is an internal failure whose
// details stay out of the response body.
func WriteError(c *fiber.Ctx, err error) error {
	var domain *errors.DomainError
	if stderrors.As(err, &domain) {
		return Respond(c, domain.Status, fiber.Map{"detail": domain.Message})
	}

	logrus.WithError(err).Errorf("%s %s failed", c.Method(), c.Path())
	return Respond(c, fiber.StatusInternalServerError, fiber.Map{"detail": "Internal server error"})
}

// BadRequest sends a JSON error response with status 400.
func BadRequest(c *fiber.Ctx, detail string) error {
	return Respond(c, fiber.StatusBadRequest, fiber.Map{"detail": detail})
}

// UnprocessableEntity sends a JSON error response with status 422.
func UnprocessableEntity(c *fiber.Ctx, detail string) error {
	return Respond(c, fiber.StatusUnprocessableEntity, fiber.Map{"detail": detail})
}
