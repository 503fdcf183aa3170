package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"godonaciones/internal/domain"
	apperror "godonaciones/internal/errors"
	"godonaciones/internal/pkg/logger"
)

// Handler agrupa os métodos de Handler de autenticação.
type Handler struct {
	Service domain.UserService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc domain.UserService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// handleServiceResponse padroniza o tratamento de erros e respostas HTTP.
// Falhas de validação viram 400 com a lista de campos; o resto segue o
// mapeamento da taxonomia de erros. Erros 500 são logados com a causa raiz,
// nunca expostos ao cliente.
func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	w.Header().Set("Content-Type", "application/json")

	if err == nil {
		w.WriteHeader(successStatus)
		if data != nil {
			json.NewEncoder(w).Encode(data)
		}
		return
	}

	var vErr *apperror.ValidationError
	if errors.As(err, &vErr) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(domain.ValidationResponse{Errors: vErr.Fields})
		return
	}

	status, category, message := apperror.MapToHTTPStatus(err)
	if status >= 500 {
		var iErr *apperror.InternalError
		if errors.As(err, &iErr) {
			h.Logger.Error("Erro interno no serviço de usuário: "+iErr.Detail(), iErr.Unwrap())
		} else {
			h.Logger.Error("Erro interno no serviço de usuário.", err)
		}
	} else {
		h.Logger.Debug("Requisição rejeitada.", map[string]interface{}{
			"path":     r.URL.Path,
			"status":   status,
			"category": category,
		})
	}

	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{Error: message})
}

// RegisterUserHandler lida com a requisição POST /api/auth/register.
// @Summary Registra um novo usuário
// @Description Valida o payload, rejeita email duplicado, hasheia a senha e persiste o usuário.
// @Tags auth
// @Accept json
// @Produce json
// @Param registration body domain.UserRegistration true "Dados de registro (name, email, password, role opcional)"
// @Success 201 {object} map[string]domain.PublicUser "Usuário criado"
// @Failure 400 {object} domain.ValidationResponse "Campos inválidos ou email duplicado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /api/auth/register [post]
func (h *Handler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	var reg domain.UserRegistration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewPayloadError(), http.StatusCreated)
		return
	}

	newUser, err := h.Service.Register(ctx, reg)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusCreated)
		return
	}

	// A projeção PublicUser não carrega o hash; nada sensível sai daqui.
	h.handleServiceResponse(w, r, map[string]domain.PublicUser{"user": newUser}, nil, http.StatusCreated)
}

// LoginUserHandler lida com a requisição POST /api/auth/login.
// @Summary Autentica um usuário e retorna um JWT
// @Description Verifica as credenciais e emite um token com as claims {id, email, role}.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body domain.Credentials true "Credenciais do usuário (email e senha)"
// @Success 200 {object} domain.LoginResult "Token emitido e projeção do usuário"
// @Failure 400 {object} domain.ValidationResponse "Payload inválido"
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /api/auth/login [post]
func (h *Handler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	var credentials domain.Credentials
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewPayloadError(), http.StatusOK)
		return
	}

	result, err := h.Service.Login(ctx, credentials)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, result, nil, http.StatusOK)
}
