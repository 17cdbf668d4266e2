// Package response padroniza as respostas JSON da API (sucesso e erro).
package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"ratemymovie/internal/domain"
	apperror "ratemymovie/internal/errors"
	"ratemymovie/internal/pkg/logger"
)

// JSON escreve data com o status informado. data nil gera corpo vazio.
func JSON(w http.ResponseWriter, log logger.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil && log != nil {
		log.Error("Falha ao codificar JSON de resposta", err)
	}
}

// Error traduz o erro para o status HTTP e escreve o corpo padronizado.
func Error(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	status, category, message := apperror.MapToHTTPStatus(err)

	if log != nil {
		if status >= 500 {
			log.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
		} else {
			log.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{"path": r.URL.Path})
		}
	}

	JSON(w, nil, status, domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	})
}
