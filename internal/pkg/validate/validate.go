package validate

import (
	"errors"
	"fmt"
	"sort"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"godonaciones/internal/domain"
	apperror "godonaciones/internal/errors"
)

// Translate converte o resultado de uma validação ozzo no erro tipado da
// aplicação. Todos os campos inválidos entram na lista, em ordem estável:
// a validação nunca interrompe no primeiro campo com problema.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		names := make([]string, 0, len(verrs))
		for name := range verrs {
			names = append(names, name)
		}
		sort.Strings(names)

		fields := make([]domain.FieldErrorItem, 0, len(names))
		for _, name := range names {
			fields = append(fields, domain.FieldErrorItem{
				Field:   name,
				Message: verrs[name].Error(),
			})
		}
		return apperror.NewValidationError(fields...)
	}

	// Erro fora do formato esperado da biblioteca de validação.
	return apperror.NewInternalError("falha inesperada na validação", err)
}

// Layouts de data aceitos: data simples ou timestamp RFC3339 completo.
var isoLayouts = []string{"2006-01-02", time.RFC3339}

// ISODate é uma regra ozzo (validation.By) que aceita datas ISO-8601.
func ISODate(value interface{}) error {
	s, ok := value.(string)
	if !ok || s == "" {
		// Required cuida da ausência; aqui só validamos o formato.
		return nil
	}
	if _, err := ParseISODate(s); err != nil {
		return fmt.Errorf("must be a valid ISO-8601 date")
	}
	return nil
}

// ParseISODate converte uma string ISO-8601 em time.Time.
func ParseISODate(s string) (time.Time, error) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("data inválida: %q", s)
}
