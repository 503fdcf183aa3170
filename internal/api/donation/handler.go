package donation

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

// Handler agrupa os métodos de Handler de doações.
type Handler struct {
	Service domain.DonationService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc domain.DonationService, log logger.Logger) *Handler {
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
			h.Logger.Error("Erro interno no serviço de doações: "+iErr.Detail(), iErr.Unwrap())
		} else {
			h.Logger.Error("Erro interno no serviço de doações.", err)
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

// extractID extrai o id do último segmento da URL (/api/donations/{id}).
func extractID(path string) (string, bool) {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) != 3 || segments[2] == "" {
		return "", false
	}
	return segments[2], true
}

// CollectionHandler lida com GET (listagem) e POST (criação) em /api/donations.
// @Summary Lista ou registra doações
// @Description GET lista as doações mais recentes com o nome do doador. POST registra uma doação.
// @Tags donations
// @Accept json
// @Produce json
// @Success 200 {object} map[string][]domain.Donation "Lista de doações"
// @Success 201 {object} map[string]domain.Donation "Doação registrada"
// @Failure 400 {object} domain.ValidationResponse "Campos inválidos"
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Router /api/donations [get]
func (h *Handler) CollectionHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		donations, err := h.Service.List(ctx)
		if err != nil {
			h.handleServiceResponse(w, r, nil, err, http.StatusOK)
			return
		}
		h.handleServiceResponse(w, r, map[string][]domain.Donation{"donations": donations}, nil, http.StatusOK)

	case http.MethodPost:
		if claims, ok := middleware.GetUserClaimsFromContext(ctx); ok {
			h.Logger.Debug("Registro de doação.", map[string]interface{}{"user_id": claims.UserID})
		}

		var input domain.DonationInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.handleServiceResponse(w, r, nil, apperror.NewPayloadError(), http.StatusCreated)
			return
		}

		donation, err := h.Service.Create(ctx, input)
		if err != nil {
			h.handleServiceResponse(w, r, nil, err, http.StatusCreated)
			return
		}
		h.handleServiceResponse(w, r, map[string]domain.Donation{"donation": donation}, nil, http.StatusCreated)

	default:
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
	}
}

// ItemHandler lida com GET, PUT e DELETE em /api/donations/{id}.
// @Summary Busca, atualiza ou remove uma doação
// @Tags donations
// @Accept json
// @Produce json
// @Param id path string true "ID da doação"
// @Success 200 {object} map[string]domain.Donation "Doação"
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Failure 404 {object} domain.ErrorResponse "Doação não encontrada"
// @Router /api/donations/{id} [get]
func (h *Handler) ItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := extractID(r.URL.Path)
	if !ok {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError(
			domain.FieldErrorItem{Field: "id", Message: "ID da doação é obrigatório"},
		), http.StatusOK)
		return
	}

	switch r.Method {
	case http.MethodGet:
		donation, err := h.Service.GetByID(ctx, id)
		if err != nil {
			h.handleServiceResponse(w, r, nil, err, http.StatusOK)
			return
		}
		h.handleServiceResponse(w, r, map[string]domain.Donation{"donation": donation}, nil, http.StatusOK)

	case http.MethodPut:
		var input domain.DonationInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.handleServiceResponse(w, r, nil, apperror.NewPayloadError(), http.StatusOK)
			return
		}

		donation, err := h.Service.Update(ctx, id, input)
		if err != nil {
			h.handleServiceResponse(w, r, nil, err, http.StatusOK)
			return
		}
		h.handleServiceResponse(w, r, map[string]domain.Donation{"donation": donation}, nil, http.StatusOK)

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
