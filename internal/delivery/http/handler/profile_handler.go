package handler

import (
	"errors"

	"skillsync/internal/delivery/http/dto"
	"skillsync/internal/delivery/http/middleware"
	"skillsync/internal/pkg/response"
	"skillsync/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ProfileHandler struct {
	uc usecase.ProfileUsecase
}

// profileRequest is the union of the student, employer and employee bodies.
type profileRequest struct {
	FullName       string   `json:"full_name"`
	Education      *string  `json:"education"`
	GraduationYear *int     `json:"graduation_year"`
	University     *string  `json:"university"`
	Interests      []string `json:"interests"`
	ResumeURL      *string  `json:"resume_url"`
	Bio            *string  `json:"bio"`

	CompanyName string  `json:"company_name"`
	Industry    *string `json:"industry"`
	Size        *string `json:"size"`
	Website     *string `json:"website"`
	Location    *string `json:"location"`
	Description *string `json:"description"`

	CompanyID         *uuid.UUID `json:"company_id"`
	Position          *string    `json:"position"`
	Department        *string    `json:"department"`
	YearsOfExperience *int       `json:"years_of_experience"`
}

func (r profileRequest) toInput() usecase.ProfileInput {
	return usecase.ProfileInput{
		FullName:          r.FullName,
		Education:         r.Education,
		GraduationYear:    r.GraduationYear,
		University:        r.University,
		Interests:         r.Interests,
		ResumeURL:         r.ResumeURL,
		Bio:               r.Bio,
		CompanyName:       r.CompanyName,
		Industry:          r.Industry,
		Size:              r.Size,
		Website:           r.Website,
		Location:          r.Location,
		Description:       r.Description,
		CompanyID:         r.CompanyID,
		Position:          r.Position,
		Department:        r.Department,
		YearsOfExperience: r.YearsOfExperience,
	}
}

func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router, requireAuth fiber.Handler) {
	if r == nil {
		return
	}

	grp := r.Group("/profiles/me", requireAuth)
	grp.Post("/", h.Create)
	grp.Get("/", h.Get)
	grp.Put("/", h.Update)
}

func (h *ProfileHandler) Create(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req profileRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	p, err := h.uc.CreateMyProfile(c.Context(), userID, req.toInput())
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewProfileResponse(p))
}

func (h *ProfileHandler) Get(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	p, err := h.uc.GetMyProfile(c.Context(), userID)
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(p))
}

func (h *ProfileHandler) Update(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req profileRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	p, err := h.uc.UpdateMyProfile(c.Context(), userID, req.toInput())
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(p))
}

func mapProfileUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrProfileAlreadyExists):
		return middleware.NewAppError(fiber.StatusConflict, "Profile already exists", nil, err)
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
	case errors.Is(err, usecase.ErrCompanyNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Company not found", nil, err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
