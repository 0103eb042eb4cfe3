package app

import (
	"fmt"
	"strings"

	"skillsync/internal/config"
	"skillsync/internal/delivery/http/handler"
	"skillsync/internal/delivery/http/middleware"
	"skillsync/internal/delivery/http/routes"
	v1 "skillsync/internal/delivery/http/routes/v1"
	"skillsync/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

const defaultBodyLimit = 8 << 20

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	bodyLimit := defaultBodyLimit
	if c.Config.Upload.MaxBytes+(1<<20) > bodyLimit {
		bodyLimit = c.Config.Upload.MaxBytes + (1 << 20)
	}

	f := fiber.New(fiber.Config{
		AppName:   c.Config.App.AppName,
		BodyLimit: bodyLimit,
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the container and the HTTP app. The returned cleanup
// closes every connection the container opened.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}
	go c.Hub.Run()

	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	errMw := middleware.NewErrorMiddleware(c.Logger)
	app.Use(errMw.Middleware())

	app.Use(cors.New(cors.Config{
		AllowOrigins: splitOrigins(c.Config.App.CORSAllowOrigins),
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
	}))

	accessLog := middleware.NewAccessLogMiddleware(c.Logger)
	app.Use(accessLog.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	api := v1.Handlers{
		AuthMiddleware: middleware.NewAuthMiddleware(c.JWT, c.Auth),
		Auth:           handler.NewAuthHandler(c.Auth),
		User:           handler.NewUserHandler(c.Users),
		UserSkill:      handler.NewUserSkillHandler(c.UserSkills),
		Skill:          handler.NewSkillHandler(c.Skills),
		Profile:        handler.NewProfileHandler(c.Profiles),
		Job:            handler.NewJobHandler(c.Jobs),
		JobMatch:       handler.NewJobMatchHandler(c.JobMatches),
		Course:         handler.NewCourseHandler(c.Courses),
		CVAnalysis:     handler.NewCVAnalysisHandler(c.CVAnalysis),
		Application:    handler.NewApplicationHandler(c.Application),
	}

	routes.NewRegistry(
		handler.NewHealthHandler(c.DB, c.Cache),
		ws.NewHandler(c.Hub, c.JWT, c.Logger),
		api,
	).Register(app)
}

func splitOrigins(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
