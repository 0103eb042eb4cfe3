package v1

import (
	"skillsync/internal/delivery/http/handler"
	"skillsync/internal/delivery/http/middleware"
	"skillsync/internal/domain/user"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	AuthMiddleware *middleware.AuthMiddleware

	Auth        *handler.AuthHandler
	User        *handler.UserHandler
	UserSkill   *handler.UserSkillHandler
	Skill       *handler.SkillHandler
	Profile     *handler.ProfileHandler
	Job         *handler.JobHandler
	JobMatch    *handler.JobMatchHandler
	Course      *handler.CourseHandler
	CVAnalysis  *handler.CVAnalysisHandler
	Application *handler.ApplicationHandler
}

func Register(r fiber.Router, h Handlers) {
	if r == nil || h.AuthMiddleware == nil {
		return
	}

	requireAuth := h.AuthMiddleware.Middleware()
	employerOnly := middleware.RequireUserType(user.TypeEmployer)

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"), requireAuth)
	}

	RegisterUsers(r, h, requireAuth)
	RegisterJobs(r, h, requireAuth, employerOnly)

	if h.Skill != nil {
		h.Skill.RegisterRoutes(r, requireAuth)
	}
	if h.Profile != nil {
		h.Profile.RegisterRoutes(r, requireAuth)
	}
	if h.CVAnalysis != nil {
		h.CVAnalysis.RegisterRoutes(r, nil, requireAuth)
	}
}
