/*
Package handler provides the HTTP handlers and routing setup for the CampusCraft server.

This file defines the main Router, applying middleware like logging, CORS,
and IP-based rate limiting before delegating requests to specific handlers
(API and WebSocket).
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/Bini-2002/campuscraft/internal/pkg/auth/jwt"
	"github.com/Bini-2002/campuscraft/internal/pkg/limiter"
	"github.com/Bini-2002/campuscraft/internal/pkg/logx"
	"github.com/Bini-2002/campuscraft/internal/pkg/resp"
)

const (
	// AuthRate throttles credential endpoints per IP.
	AuthRate  = 0.5
	AuthBurst = 5

	// WSRate throttles WebSocket handshakes per IP.
	WSRate  = 0.2
	WSBurst = 5
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
// It initializes IP-based rate limiters, configures CORS, and applies global
// and per-route middleware.
func Router(deps *AppDeps) http.Handler {
	authLimiter := limiter.NewIPRateLimiter(rate.Limit(AuthRate), AuthBurst)
	wsLimiter := limiter.NewIPRateLimiter(rate.Limit(WSRate), WSBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	var wsUpgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.Environment == "development" {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "CampusCraft Server",
		}
		resp.RespondSuccess(w, r, data)
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(jwt.IdentityExtractorMiddleware(deps.Config.JWTSecret))

		api.Route("/auth", func(auth chi.Router) {
			auth.Use(authLimiter.Middleware)

			auth.Post("/register", HandleRegister(deps))
			auth.Post("/login", HandleLogin(deps))
			auth.Post("/verify-code", HandleVerifyCode(deps))
			auth.Post("/verify-token", HandleVerifyToken(deps))
			auth.Post("/resend-code", HandleResendCode(deps))
		})

		api.Route("/user", func(user chi.Router) {
			user.Use(jwt.RequireAuth)

			user.Get("/profile", HandleGetProfile(deps))
			user.Post("/profile", HandleUpdateProfile(deps))
			user.Post("/avatar/presign", HandlePresignAvatar(deps))
		})

		api.Route("/jobs", func(jobs chi.Router) {
			jobs.Use(jwt.RequireAuth)

			jobs.Get("/", HandleListJobs(deps))
			jobs.Get("/{id}", HandleGetJob(deps))

			jobs.Group(func(company chi.Router) {
				company.Use(jwt.RequireUserType(UserTypeCompany))

				company.Get("/mine", HandleListMyJobs(deps))
				company.Post("/", HandleCreateJob(deps))
				company.Patch("/{id}", HandleUpdateJob(deps))
				company.Delete("/{id}", HandleDeleteJob(deps))
			})
		})

		api.Route("/applications", func(apps chi.Router) {
			apps.Use(jwt.RequireAuth)

			apps.Get("/{id}/resume", HandleDownloadResume(deps))

			apps.Group(func(student chi.Router) {
				student.Use(jwt.RequireUserType(UserTypeStudent))

				student.Post("/", HandleSubmitApplication(deps))
				student.Get("/mine", HandleListMyApplications(deps))
				student.Post("/resume/presign", HandlePresignResume(deps))
			})

			apps.Group(func(company chi.Router) {
				company.Use(jwt.RequireUserType(UserTypeCompany))

				company.Get("/job/{id}", HandleListJobApplications(deps))
				company.Patch("/{id}/status", HandleUpdateApplicationStatus(deps))
			})
		})

		api.Route("/messages", func(messages chi.Router) {
			messages.Use(jwt.RequireAuth)

			messages.Get("/conversations", HandleListConversations(deps))
			messages.Post("/conversations", HandleOpenConversation(deps))
			messages.Get("/conversations/{id}", HandleGetConversation(deps))
			messages.Post("/conversations/{id}", HandleSendMessage(deps))
		})

		api.With(jwt.RequireAuth).Post("/assistant/chat", HandleAssistantChat(deps))
	})

	r.Get("/ws/conversations/{id}", HandleWebSocket(wsUpgrader, wsLimiter, deps))

	return r
}
