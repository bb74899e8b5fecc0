package handler

import (
	"cofounder-match/internal/delivery/http/dto"
	"cofounder-match/internal/delivery/http/middleware"
	"cofounder-match/internal/pkg/response"
	"cofounder-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MatchHandler struct {
	uc usecase.MatchUsecase
}

func NewMatchHandler(uc usecase.MatchUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/matches", h.List)
}

func (h *MatchHandler) List(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.ListMatches(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}

	out := make([]dto.MatchResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.MatchResponse{
			MatchID:   it.MatchID,
			Status:    string(it.Status),
			CreatedAt: it.CreatedAt,
			Route:     it.Route,
			Other:     dto.NewProfileResponse(it.Other),
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
