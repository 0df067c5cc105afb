package api

import (
	"log"
	"net/http"
	"time"

	"convospace-backend/internal/config"
	"convospace-backend/internal/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterDependencies holds all the dependencies required by the router setup,
// primarily handlers and configuration.
type RouterDependencies struct {
	AuthHandler         *handlers.AuthHandler
	ConversationHandler *handlers.ConversationHandlers
	EmailHandler        *handlers.EmailHandler
	Config              *config.Config
}

// NewRouter creates and configures the main Chi router for the application.
func NewRouter(deps RouterDependencies) *chi.Mux {
	r := chi.NewRouter()

	// --- Base Middleware Stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// --- CORS Configuration ---
	// Adjust AllowedOrigins for your frontend deployment(s)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// --- Public Routes (No JWT Required) ---
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api/auth", func(r chi.Router) {
		if deps.AuthHandler == nil {
			panic("AuthHandler dependency is nil in router setup")
		}
		r.Post("/signup", deps.AuthHandler.HandleSignup)
		r.Post("/login", deps.AuthHandler.HandleLogin)
	})

	// --- Email Relay ---
	if deps.EmailHandler != nil {
		r.Post("/send-email", deps.EmailHandler.HandleSendEmail)
	} else {
		log.Println("WARN: EmailHandler dependency is nil, skipping /send-email route.")
	}

	// --- Authenticated Routes (JWT Required) ---
	r.Route("/api", func(r chi.Router) {
		// Apply JWT Authentication Middleware
		r.Use(JwtAuthMiddleware(deps.Config.JWTSecret))

		if deps.AuthHandler != nil {
			r.Delete("/users/me", deps.AuthHandler.HandleDeleteAccount)
		}

		if deps.ConversationHandler != nil {
			r.Route("/conversations", func(r chi.Router) {
				r.Post("/create", deps.ConversationHandler.HandleCreateConversation)
				r.Get("/list", deps.ConversationHandler.HandleListConversations)
				r.Get("/{conversationID}/messages", deps.ConversationHandler.HandleListMessages)
				r.Delete("/{conversationID}", deps.ConversationHandler.HandleDeleteConversation)
				r.Patch("/{conversationID}/rename", deps.ConversationHandler.HandleRenameConversation)
			})

			r.Route("/messages", func(r chi.Router) {
				r.Post("/create", deps.ConversationHandler.HandleCreateUserMessage)
				r.Post("/save-assistant", deps.ConversationHandler.HandleSaveAssistantMessage)
			})
		} else {
			log.Println("WARN: ConversationHandler dependency is nil, skipping /api conversation routes.")
		}
	})

	return r
}
