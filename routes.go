package main

import (
	"net/http"
	"time"

	"taskerpro/config"
	"taskerpro/handlers"
	"taskerpro/utilities"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

func newRouter() *mux.Router {
	r := mux.NewRouter()

	// Aplicar o middleware de logging global em todas as rotas
	r.Use(handlers.LoggingMiddleware)

	r.HandleFunc("/health", handlers.HealthHandler).Methods("GET")

	// --- Autenticação e usuário ---
	r.HandleFunc("/auth/finalize-login", handlers.FinalizeFirebaseLoginHandler).Methods("POST")
	r.HandleFunc("/user/info", handlers.AuthMiddleware(handlers.UserHandler)).Methods("GET")

	// --- Tarefas (protegidas) ---
	r.HandleFunc("/task/create", handlers.AuthMiddleware(handlers.CreateTaskHandler)).Methods("POST")
	r.HandleFunc("/task/list", handlers.AuthMiddleware(handlers.ListTasksHandler)).Methods("GET")
	r.HandleFunc("/task/list/all", handlers.AuthMiddleware(handlers.ListAllTasksHandler)).Methods("GET")
	r.HandleFunc("/task/complete/{task_id:[0-9]+}", handlers.AuthMiddleware(handlers.CompleteTaskHandler)).Methods("PUT")
	r.HandleFunc("/task/uncheck/{task_id:[0-9]+}", handlers.AuthMiddleware(handlers.UncheckTaskHandler)).Methods("PUT")

	return r
}

// withCORS envolve o router com a configuração de CORS.
func withCORS(r http.Handler, allowedOrigins []string) http.Handler {
	headers := gorillahandlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type", "Authorization"})
	methods := gorillahandlers.AllowedMethods([]string{"GET", "POST", "PUT", "OPTIONS"})
	origins := gorillahandlers.AllowedOrigins(allowedOrigins)
	return gorillahandlers.CORS(headers, methods, origins)(r)
}

// newServer monta o http.Server com os handlers e o CORS.
func newServer(cfg *config.Config) *http.Server {
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		utilities.LogInfo("CORS_ALLOWED_ORIGINS não definida, permitindo todas as origens ('*'). Defina para maior segurança em produção.")
	}
	utilities.LogInfo("Configurando CORS com origens permitidas: %v", cfg.AllowedOrigins)

	return &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           withCORS(newRouter(), cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}
}
