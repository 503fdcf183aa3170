package contact

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"godonaciones/internal/domain"
	apperror "godonaciones/internal/errors"
	"godonaciones/internal/pkg/logger"
	"godonaciones/internal/pkg/middleware"
)

// Handler agrupa os métodos de Handler de contatos.
type Handler struct {
	Service domain.ContactService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc domain.ContactService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// handleServiceResponse padroniza o tratamento de erros e respostas HTTP.
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
			h.Logger.Error("Erro interno no serviço de contatos: "+iErr.Detail(), iErr.Unwrap())
		} else {
			h.Logger.Error("Erro interno no serviço de contatos.", err)
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

// extractID extrai o id do último segmento da URL (/api/contacts/{id}).
func extractID(path string) (string, bool) {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) != 3 || segments[2] == "" {
		return "", false
	}
	return segments[2], true
}

// CollectionHandler lida com GET (listagem) e POST (criação) em /api/contacts.
// @Summary Lista ou cria contatos
// @Description GET lista os contatos (busca parcial via ?q=, limite e ordem fixos). POST cria um contato.
// @Tags contacts
// @Accept json
// @Produce json
// @Param q query string false "Busca parcial por nome ou email"
// @Success 200 {object} map[string][]domain.Contact "Lista de contatos"
// @Success 201 {object} map[string]domain.Contact "Contato criado"
// @Failure 400 {object} domain.ValidationResponse "Campos inválidos"
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Router /api/contacts [get]
func (h *Handler) CollectionHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		filter := domain.ContactFilter{Query: r.URL.Query().Get("q")}
		contacts, err := h.Service.List(ctx, filter)
		if err != nil {
			h.handleServiceResponse(w, r, nil, err, http.StatusOK)
			return
		}
		h.handleServiceResponse(w, r, map[string][]domain.Contact{"contacts": contacts}, nil, http.StatusOK)

	case http.MethodPost:
		if claims, ok := middleware.GetUserClaimsFromContext(ctx); ok {
			h.Logger.Debug("Criação de contato.", map[string]interface{}{"user_id": claims.UserID})
		}

		var input domain.ContactInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.handleServiceResponse(w, r, nil, apperror.NewPayloadError(), http.StatusCreated)
			return
		}

		contact, err := h.Service.Create(ctx, input)
		if err != nil {
			h.handleServiceResponse(w, r, nil, err, http.StatusCreated)
			return
		}
		h.handleServiceResponse(w, r, map[string]domain.Contact{"contact": contact}, nil, http.StatusCreated)

	default:
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
	}
}

// ItemHandler lida com GET, PUT e DELETE em /api/contacts/{id}.
// @Summary Busca, atualiza ou remove um contato
// @Tags contacts
// @Accept json
// @Produce json
// @Param id path string true "ID do contato"
// @Success 200 {object} map[string]domain.Contact "Contato"
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Failure 404 {object} domain.ErrorResponse "Contato não encontrado"
// @Router /api/contacts/{id} [get]
func (h *Handler) ItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := extractID(r.URL.Path)
	if !ok {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError(
			domain.FieldErrorItem{Field: "id", Message: "ID do contato é obrigatório"},
		), http.StatusOK)
		return
	}

	switch r.Method {
	case http.MethodGet:
		contact, err := h.Service.GetByID(ctx, id)
		if err != nil {
			h.handleServiceResponse(w, r, nil, err, http.StatusOK)
			return
		}
		h.handleServiceResponse(w, r, map[string]domain.Contact{"contact": contact}, nil, http.StatusOK)

	case http.MethodPut:
		var input domain.ContactInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.handleServiceResponse(w, r, nil, apperror.NewPayloadError(), http.StatusOK)
			return
		}

		contact, err := h.Service.Update(ctx, id, input)
		if err != nil {
			h.handleServiceResponse(w, r, nil, err, http.StatusOK)
			return
		}
		h.handleServiceResponse(w, r, map[string]domain.Contact{"contact": contact}, nil, http.StatusOK)

	case http.MethodDelete:
		if err := h.Service.Delete(ctx, id); err != nil {
			h.handleServiceResponse(w, r, nil, err, http.StatusOK)
			return
		}
		h.handleServiceResponse(w, r, map[string]bool{"ok": true}, nil, http.StatusOK)

	default:
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
	}
}
