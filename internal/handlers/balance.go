package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"aurum/internal/models"
	"aurum/internal/services/balance"
	"aurum/internal/utils"
)

type BalanceHandler struct {
	balanceService balance.Service
}

func NewBalanceHandler(balanceService balance.Service) *BalanceHandler {
	return &BalanceHandler{balanceService: balanceService}
}

// GetBalance returns the caller's current balance.
func (h *BalanceHandler) GetBalance(c *fiber.Ctx) error {
	user, err := utils.GetAuthUser(c)
	if err != nil {
		return utils.WriteError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"user_id": user.ID,
		"balance": h.balanceService.Get(c.UserContext(), user),
	})
}

// Deposit adds a positive amount to the caller's balance.
func (h *BalanceHandler) Deposit(c *fiber.Ctx) error {
	return h.mutate(c, h.balanceService.Deposit)
}

// Withdraw subtracts a positive amount from the caller's balance, failing
// when the funds are insufficient.
func (h *BalanceHandler) Withdraw(c *fiber.Ctx) error {
	return h.mutate(c, h.balanceService.Withdraw)
}

func (h *BalanceHandler) mutate(
	c *fiber.Ctx,
	op func(ctx context.Context, user *models.User, amount int64) (int64, error),
) error {
	var input struct {
		Amount int64 `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	user, err := utils.GetAuthUser(c)
	if err != nil {
		return utils.WriteError(c, err)
	}

	newBalance, err := op(c.UserContext(), user, input.Amount)
	if err != nil {
		return utils.WriteError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"user_id": user.ID,
		"balance": newBalance,
	})
}
