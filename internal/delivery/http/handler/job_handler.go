package handler

import (
	"errors"
	"strings"

	"skillsync/internal/delivery/http/dto"
	"skillsync/internal/delivery/http/middleware"
	"skillsync/internal/pkg/response"
	"skillsync/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type JobHandler struct {
	uc usecase.JobUsecase
}

type jobSkillRequest struct {
	SkillID       uuid.UUID `json:"skill_id"`
	RequiredLevel *int      `json:"required_level"`
	Preferred     bool      `json:"preferred"`
}

type createJobRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Location    string            `json:"location"`
	Salary      string            `json:"salary"`
	IsRemote    bool              `json:"is_remote"`
	Skills      []jobSkillRequest `json:"skills"`
}

func NewJobHandler(uc usecase.JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

func (h *JobHandler) RegisterRoutes(r fiber.Router, requireAuth, employerOnly fiber.Handler) {
	if r == nil {
		return
	}

	companies := r.Group("/companies")
	companies.Get("/:id", h.GetCompany)
	companies.Get("/:id/jobs", h.ListCompanyJobs)
	companies.Post("/:id/jobs", requireAuth, employerOnly, h.CreateJob)

	jobs := r.Group("/jobs")
	jobs.Get("/", h.ListJobs)
	jobs.Get("/:id", h.GetJob)
}

func (h *JobHandler) GetCompany(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	company, err := h.uc.GetCompany(c.Context(), id)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCompanyResponse(company))
}

func (h *JobHandler) ListCompanyJobs(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	limit, offset, err := pageParams(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListCompanyJobs(c.Context(), id, limit, offset)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponses(items))
}

func (h *JobHandler) CreateJob(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	companyID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req createJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	skills := make([]usecase.JobSkillInput, 0, len(req.Skills))
	for _, s := range req.Skills {
		skills = append(skills, usecase.JobSkillInput{SkillID: s.SkillID, RequiredLevel: s.RequiredLevel, Preferred: s.Preferred})
	}

	created, err := h.uc.CreateJob(c.Context(), userID, companyID, usecase.CreateJobInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Salary:      req.Salary,
		IsRemote:    req.IsRemote,
		Skills:      skills,
	})
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewJobResponse(created))
}

// ListJobs doubles as keyword search when ?q= is present.
func (h *JobHandler) ListJobs(c fiber.Ctx) error {
	limit, offset, err := pageParams(c)
	if err != nil {
		return err
	}

	var items []usecase.JobDetail
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		items, err = h.uc.SearchJobs(c.Context(), q, limit)
	} else {
		items, err = h.uc.ListJobs(c.Context(), limit, offset)
	}
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponses(items))
}

func (h *JobHandler) GetJob(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	item, err := h.uc.GetJob(c.Context(), id)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(item))
}

func pageParams(c fiber.Ctx) (int, int, error) {
	limit, err := parseQueryIntStrict(c, "limit", defaultListLimit)
	if err != nil {
		return 0, 0, err
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return 0, 0, err
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset, nil
}

func mapJobUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidRequiredLevel):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid required level", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrCompanyNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Company not found", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
