package router

import (
	"encoding/json"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"godonaciones/config"
	"godonaciones/internal/api/contact"
	"godonaciones/internal/api/donation"
	"godonaciones/internal/api/event"
	"godonaciones/internal/api/user"
	"godonaciones/internal/pkg/cache"
	"godonaciones/internal/pkg/middleware"
)

// NewRouter configura e retorna o roteador HTTP principal.
// Recebe os Handlers já inicializados por injeção de dependências e monta a
// cadeia de middlewares ambiente: headers de segurança → CORS → rate limit.
// As rotas de recursos passam pelo gate de autenticação; registro e login não.
func NewRouter(
	userHandler *user.Handler,
	contactHandler *contact.Handler,
	donationHandler *donation.Handler,
	eventHandler *event.Handler,
	tokenSvc middleware.TokenService,
	cacheClient cache.Client,
	cfg *config.Config,
) http.Handler {

	// Usamos o ServeMux padrão do net/http para roteamento
	mux := http.NewServeMux()

	// --- 1. Rotas públicas ---
	mux.HandleFunc("/", RootHandler)
	mux.HandleFunc("/ping", PingHandler)
	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// --- 2. Autenticação (estabelece identidade; não passa pelo gate) ---
	mux.HandleFunc("/api/auth/register", userHandler.RegisterUserHandler)
	mux.HandleFunc("/api/auth/login", userHandler.LoginUserHandler)

	// --- 3. Rotas protegidas (exigem bearer token válido) ---
	auth := middleware.NewAuthMiddleware(tokenSvc)

	mux.HandleFunc("/api/contacts", auth(contactHandler.CollectionHandler))
	mux.HandleFunc("/api/contacts/", auth(contactHandler.ItemHandler))

	mux.HandleFunc("/api/donations", auth(donationHandler.CollectionHandler))
	mux.HandleFunc("/api/donations/", auth(donationHandler.ItemHandler))

	mux.HandleFunc("/api/events", auth(eventHandler.CollectionHandler))
	mux.HandleFunc("/api/events/", auth(eventHandler.ItemHandler))

	// --- 4. Middlewares globais ---
	var handler http.Handler = mux
	handler = middleware.RateLimiter(cacheClient, cfg.RateLimitMaxRequests, cfg.RateLimitPeriod)(handler)
	handler = middleware.CORS(handler)
	handler = middleware.SecurityHeaders(handler)

	return handler
}

// RootHandler responde o banner do serviço na raiz.
// O ServeMux manda qualquer caminho não registrado para "/", então caminhos
// desconhecidos viram 404 aqui.
func RootHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "No encontrado"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"ok":      true,
		"service": "Sistema de Donaciones API",
	})
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
