package handler

import (
	"contaflow/internal/delivery/http/dto"
	"contaflow/internal/delivery/http/middleware"
	"contaflow/internal/pkg/response"
	"contaflow/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type DashboardHandler struct {
	uc usecase.DashboardUsecase
}

func NewDashboardHandler(uc usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

func (h *DashboardHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/summary", h.Summary)
}

func (h *DashboardHandler) Summary(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	today := localToday(c)
	sum, err := h.uc.Summary(c.Context(), userID, today)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewDashboardSummaryResponse(sum, today))
}
