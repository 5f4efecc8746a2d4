package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"seopages-backend-go/internal/config"
	"seopages-backend-go/internal/metrics"
	"seopages-backend-go/internal/services"
	"seopages-backend-go/internal/store"
)

type Server struct {
	Store    store.ContentStore
	Config   config.Config
	Resolver *services.Resolver
	Recorder *services.ViewRecorder
	ViewHub  *services.ViewHub
	Log      *zap.Logger
}

func NewServer(
	contentStore store.ContentStore,
	cfg config.Config,
	resolver *services.Resolver,
	recorder *services.ViewRecorder,
	hub *services.ViewHub,
	log *zap.Logger,
) *Server {
	return &Server{
		Store:    contentStore,
		Config:   cfg,
		Resolver: resolver,
		Recorder: recorder,
		ViewHub:  hub,
		Log:      log,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger(s.Log))
	r.Use(Recoverer(s.Log))
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-User-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Get("/healthz", s.Health)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(api chi.Router) {
		// Public proxy surface: resolution happens by project key only,
		// never by anything else taken from the request.
		api.Get("/proxy/{projectKey}", s.Proxy)
		api.Get("/proxy/{projectKey}/*", s.Proxy)

		api.Get("/verify", s.Verify)

		api.Group(func(priv chi.Router) {
			priv.Use(WithAdminToken(s.Config.AdminToken))

			priv.Route("/projects", func(projects chi.Router) {
				projects.Get("/", s.ListProjects)
				projects.Post("/", s.CreateProject)
				projects.Route("/{projectId}", func(project chi.Router) {
					project.Get("/", s.GetProject)
					project.Put("/", s.UpdateProject)
					project.Put("/status", s.UpdateProjectStatus)
					project.Delete("/", s.DeleteProject)
					project.Get("/pages", s.ListPages)
					project.Post("/pages", s.CreatePage)
					project.Get("/views", s.ListProjectViews)
				})
			})

			priv.Route("/pages/{pageId}", func(page chi.Router) {
				page.Get("/", s.GetPage)
				page.Put("/", s.UpdatePage)
				page.Delete("/", s.DeletePage)
				page.Get("/views/count", s.PageViewCount)
			})

			priv.Get("/admin/status", s.AdminStatus)
		})
	})

	r.Get("/ws/views", s.ViewsSocket)
	return r
}

func (s *Server) Health(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) AdminStatus(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, services.CaptureStatus())
}

func formatTime(value time.Time) string {
	return value.UTC().Format(time.RFC3339)
}
