// Package middleware provides the request processing layers of the HTTP
// stack: the per-request database session, bearer authentication and the
// admin role gate.
package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"aurum/internal/dbsession"
	"aurum/internal/utils"
)

// SessionMiddleware binds one database transaction to each request. The
// transaction commits when the handler finished cleanly and rolls back on
// handler errors, error statuses and panics, so the connection always
// returns to the pool in a determinate state.
type SessionMiddleware struct {
	db *gorm.DB
}

func NewSessionMiddleware(db *gorm.DB) *SessionMiddleware {
	return &SessionMiddleware{db: db}
}

func (m *SessionMiddleware) Handler(c *fiber.Ctx) error {
	tx := m.db.WithContext(c.UserContext()).Begin()
	if tx.Error != nil {
		logrus.WithError(tx.Error).Error("failed to begin request transaction")
		return utils.Respond(c, fiber.StatusServiceUnavailable, fiber.Map{"detail": "Service unavailable"})
	}

	c.SetUserContext(dbsession.WithTx(c.UserContext(), tx))

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := c.Next(); err != nil {
		tx.Rollback()
		return err
	}

	if c.Response().StatusCode() >= fiber.StatusBadRequest {
		tx.Rollback()
		return nil
	}

	if err := tx.Commit().Error; err != nil {
		logrus.WithError(err).Error("failed to commit request transaction")
		tx.Rollback()
		return utils.Respond(c, fiber.StatusInternalServerError, fiber.Map{"detail": "Internal server error"})
	}
	return nil
}
