package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

const maxBodyBytes = 1 << 20

const msgInternalError = "internal server error"

// Envelope единый формат всех ответов API
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody описание ошибки в ответе
type ErrorBody struct {
	Message    string                 `json:"message"`
	StatusCode int                    `json:"statusCode"`
	Details    map[string]interface{} `json:"details,omitempty"`
}

// RespondJSON отправляет успешный ответ с данными
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	write(w, status, Envelope{Success: true, Data: data})
}

// RespondError отправляет ошибку с сообщением
func RespondError(w http.ResponseWriter, status int, message string) {
	write(w, status, Envelope{Error: &ErrorBody{Message: message, StatusCode: status}})
}

// RespondDomainError переводит доменную ошибку в HTTP ответ.
// Для 5xx текст причины не раскрывается.
func RespondDomainError(w http.ResponseWriter, err error) {
	status := domain.StatusCode(err)

	domainErr, ok := domain.AsError(err)
	if !ok || status >= http.StatusInternalServerError {
		RespondInternalError(w)
		return
	}

	write(w, status, Envelope{Error: &ErrorBody{
		Message:    domainErr.Message,
		StatusCode: status,
		Details:    domainErr.Details,
	}})
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RespondFailure логирует ошибку use case (5xx как Error, остальные как Warn)
// и отправляет ответ через RespondDomainError
func RespondFailure(w http.ResponseWriter, logger Logger, err error, format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	if domain.StatusCode(err) >= http.StatusInternalServerError {
		logger.Error("%s: error=%v", msg, err)
	} else {
		logger.Warn("%s: kind=%s, error=%v", msg, domain.KindOf(err), err)
	}
	RespondDomainError(w, err)
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// DecodeJSON читает тело запроса; неизвестные поля игнорируются
func DecodeJSON(r *http.Request, dest interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	body := io.LimitReader(r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty request body")
		}
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

func write(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
