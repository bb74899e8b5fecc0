package handler

import (
	"strings"

	"cofounder-match/internal/delivery/http/dto"
	"cofounder-match/internal/delivery/http/middleware"
	"cofounder-match/internal/domain/skill"
	"cofounder-match/internal/pkg/response"
	"cofounder-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type SkillHandler struct {
	uc usecase.SkillUsecase
}

func NewSkillHandler(uc usecase.SkillUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/skills")
	grp.Get("/", h.List)
	grp.Get("/:id", h.Get)
}

// List returns the catalog, optionally narrowed with ?category=.
func (h *SkillHandler) List(c fiber.Ctx) error {
	var (
		items []skill.Skill
		err   error
	)
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		items, err = h.uc.ListSkillsByCategory(c.Context(), category)
	} else {
		items, err = h.uc.ListSkills(c.Context())
	}
	if err != nil {
		return mapUsecaseError(err)
	}

	res := make([]dto.SkillResponse, 0, len(items))
	for _, it := range items {
		res = append(res, toSkillResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *SkillHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid skill id", nil, err)
	}

	it, err := h.uc.GetSkill(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toSkillResponse(it))
}

func toSkillResponse(s skill.Skill) dto.SkillResponse {
	return dto.SkillResponse{ID: s.ID, Slug: s.Slug, Name: s.Name, Category: string(s.Category)}
}
