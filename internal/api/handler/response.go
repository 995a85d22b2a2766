package handler

import (
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/portfolio-refresh-api/internal/scheduler"
	"github.com/vfg2006/portfolio-refresh-api/internal/usecases/refreshing"
	"github.com/vfg2006/portfolio-refresh-api/internal/usecases/snapshotting"
	"github.com/vfg2006/portfolio-refresh-api/pkg/apiErrors"
)

const maxBodyBytes = 8 << 20

var (
	json     = jsoniter.ConfigCompatibleWithStandardLibrary
	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// decodeBody lê o JSON da requisição e aplica as regras de validação da struct.
// Retorna false quando a resposta de erro já foi escrita.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Não foi possível ler o corpo da requisição", nil)
		return false
	}

	if err := json.Unmarshal(body, dst); err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return false
		}

		details := make([]fieldError, 0, len(validationErrors))
		for _, fe := range validationErrors {
			// Namespace vem como "Struct.campo"; o nome da struct não interessa ao cliente
			field := fe.Namespace()
			if i := strings.Index(field, "."); i >= 0 {
				field = field[i+1:]
			}
			details = append(details, fieldError{
				Field: field,
				Rule:  fe.Tag(),
				Param: fe.Param(),
			})
		}
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Requisição com campos inválidos", details)
		return false
	}

	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Error("Erro ao enviar resposta")
	}
}

// writeServiceError traduz os erros dos serviços para a resposta padronizada.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, snapshotting.ErrSnapshotNotFound):
		apiErrors.WriteError(w, apiErrors.ErrSnapshotNotFound, err.Error(), nil)
	case errors.Is(err, snapshotting.ErrInvalidStatus):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
	case errors.Is(err, snapshotting.ErrInvalidTransition):
		apiErrors.WriteError(w, apiErrors.ErrInvalidTransition, err.Error(), nil)
	case errors.Is(err, snapshotting.ErrSnapshotClosed):
		apiErrors.WriteError(w, apiErrors.ErrSnapshotClosed, err.Error(), nil)
	case errors.Is(err, snapshotting.ErrInvalidScope):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
	case errors.Is(err, refreshing.ErrRefreshInProgress), errors.Is(err, scheduler.ErrJobRunning):
		apiErrors.WriteError(w, apiErrors.ErrRefreshInProgress, err.Error(), nil)
	case errors.Is(err, refreshing.ErrUnknownRefreshType), errors.Is(err, scheduler.ErrUnknownJob):
		apiErrors.WriteError(w, apiErrors.ErrUnknownRefreshType, err.Error(), nil)
	default:
		logrus.WithError(err).Error("Erro não mapeado no serviço")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno do servidor", nil)
	}
}
