package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/pribylovaa/go-matrimony/internal/http/handlers"
	"github.com/pribylovaa/go-matrimony/internal/http/middleware"
	"github.com/pribylovaa/go-matrimony/internal/metrics"
	"github.com/pribylovaa/go-matrimony/internal/service"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger         *slog.Logger
	Timeout        time.Duration
	BasePath       string           // например, "/api"; если пустой — роуты регистрируются на корне.
	Metrics        *metrics.Metrics // nil -> без учёта запросов.
	AllowedOrigins []string         // пусто -> CORS не подключается.
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
	)
	if len(opts.AllowedOrigins) > 0 {
		root.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
			ExposedHeaders: []string{"X-Request-Id"},
			MaxAge:         300,
		}))
	}
	root.Use(middleware.Metrics(opts.Metrics))
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	// Зависимости хендлеров.
	h := handlers.New(svc)

	// Регистрация маршрутов.
	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// profiles
	r.Get("/profiles", h.ListProfiles)
	r.Post("/profiles", h.CreateProfile)
	r.Get("/profiles/{id}", h.GetProfile)
	r.Patch("/profiles/{id}", h.UpdateProfile)
	r.Post("/profiles/{id}/status", h.ChangeProfileStatus)
	r.Post("/profiles/{id}/verifications", h.SubmitVerification)
	r.Get("/profiles/{id}/notifications", h.ListNotifications)
	r.Post("/profiles/{id}/notifications/read-all", h.MarkAllNotificationsRead)

	// verifications
	r.Get("/verifications", h.VerificationQueue)
	r.Post("/verifications/{id}/resolve", h.ResolveVerification)

	// matches
	r.Get("/matches", h.ListMatches)
	r.Post("/matches", h.SuggestMatch)
	r.Get("/matches/{id}", h.GetMatch)
	r.Patch("/matches/{id}/notes", h.UpdateMatchNotes)
	r.Post("/matches/{id}/decision", h.DecideMatch)
	r.Get("/matches/{id}/introduction-draft", h.ComposeIntroduction)
	r.Post("/matches/{id}/introductions", h.SendIntroduction)

	// introductions
	r.Get("/introductions", h.ListIntroductions)
	r.Get("/introductions/{id}", h.GetIntroduction)
	r.Post("/introductions/{id}/responses", h.RespondIntroduction)
	r.Post("/introductions/{id}/complete", h.CompleteIntroduction)
	r.Post("/introductions/{id}/dispatch", h.DispatchIntroduction)

	// conversations
	r.Get("/conversations", h.ListConversations)
	r.Post("/conversations", h.StartConversation)
	r.Get("/conversations/{id}", h.GetConversation)
	r.Post("/conversations/{id}/messages", h.SendMessage)

	// payments
	r.Get("/payments", h.ListPayments)
	r.Post("/payments", h.RecordPayment)
	r.Post("/payments/{id}/status", h.TransitionPayment)

	// notifications
	r.Post("/notifications/{id}/read", h.MarkNotificationRead)

	// dashboard
	r.Get("/dashboard", h.Dashboard)
}
