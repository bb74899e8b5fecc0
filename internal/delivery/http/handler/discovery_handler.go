package handler

import (
	"strings"

	"cofounder-match/internal/delivery/http/dto"
	"cofounder-match/internal/delivery/http/middleware"
	"cofounder-match/internal/pkg/response"
	"cofounder-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type DiscoveryHandler struct {
	discovery usecase.DiscoveryUsecase
	decisions usecase.DecisionUsecase
}

func NewDiscoveryHandler(discovery usecase.DiscoveryUsecase, decisions usecase.DecisionUsecase) *DiscoveryHandler {
	return &DiscoveryHandler{discovery: discovery, decisions: decisions}
}

func (h *DiscoveryHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/discovery")
	grp.Get("/", h.Queue)
	grp.Get("/current", h.Current)
	grp.Post("/reset", h.Reset)
	grp.Post("/decisions", h.Decide)
}

func (h *DiscoveryHandler) Queue(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	entries, err := h.discovery.Queue(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewDiscoveryQueueResponse(entries))
}

func (h *DiscoveryHandler) Current(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	cur, err := h.discovery.Current(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}

	out := dto.CurrentCandidateResponse{State: string(cur.State), Remaining: cur.Remaining}
	if cur.Entry != nil {
		e := dto.NewDiscoveryEntryResponse(*cur.Entry)
		out.Candidate = &e
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *DiscoveryHandler) Reset(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	entries, err := h.discovery.Reset(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Discovery queue reset", dto.NewDiscoveryQueueResponse(entries))
}

func (h *DiscoveryHandler) Decide(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req dto.DecisionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	candidateID, err := uuid.Parse(strings.TrimSpace(req.CandidateID))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid candidate_id", nil, err)
	}

	res, err := h.decisions.Decide(c.Context(), userID, candidateID, strings.ToLower(strings.TrimSpace(req.Decision)))
	if err != nil {
		return mapUsecaseError(err)
	}

	out := dto.DecisionResponse{
		Decision:             string(res.Decision),
		IsMatch:              res.IsMatch,
		MatchID:              res.MatchID,
		Duplicate:            res.Duplicate,
		CandidateUnavailable: res.CandidateUnavailable,
	}
	if s := res.Conversation; s != nil {
		out.Conversation = &dto.ConversationResponse{
			MatchID:      s.MatchID,
			SenderID:     s.SenderID,
			Participants: s.Participants,
			Content:      s.Content,
			Route:        s.Route,
			CreatedAt:    s.CreatedAt,
		}
	}

	status := fiber.StatusOK
	if res.Conversation != nil {
		status = fiber.StatusCreated
	}
	return response.Success(c, status, response.MessageOK, out)
}
