package handler

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"skillsync/internal/delivery/http/dto"
	"skillsync/internal/delivery/http/middleware"
	"skillsync/internal/pkg/response"
	"skillsync/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type JobMatchHandler struct {
	uc usecase.JobMatchUsecase
}

func NewJobMatchHandler(uc usecase.JobMatchUsecase) *JobMatchHandler {
	return &JobMatchHandler{uc: uc}
}

// RegisterRoutes mounts under /users/me. The export route must come before
// /:job_id.
func (h *JobMatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/job-matches")
	grp.Get("/", h.List)
	grp.Get("/export", h.Export)
	grp.Get("/:job_id", h.Get)
}

func (h *JobMatchHandler) List(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return err
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return err
	}
	minScore, err := parseQueryIntStrict(c, "min_score", 0)
	if err != nil {
		return err
	}

	params := usecase.JobMatchParams{Limit: limit, Offset: offset, MinScore: minScore}.Normalized()
	page, err := h.uc.ListJobMatches(c.Context(), userID, params)
	if err != nil {
		return mapJobMatchUsecaseError(err)
	}

	items := page.Items
	if items == nil {
		items = []usecase.JobMatch{}
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.JobMatchListResponse{
		Items:  items,
		Total:  page.Total,
		Limit:  params.Limit,
		Offset: params.Offset,
	})
}

func (h *JobMatchHandler) Get(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "job_id")
	if err != nil {
		return err
	}

	m, err := h.uc.GetJobMatch(c.Context(), userID, jobID)
	if err != nil {
		return mapJobMatchUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, m)
}

func (h *JobMatchHandler) Export(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := h.uc.ExportJobMatches(c.Context(), userID, &buf); err != nil {
		return mapJobMatchUsecaseError(err)
	}

	filename := fmt.Sprintf("job-matches-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}

func mapJobMatchUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
