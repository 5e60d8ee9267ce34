package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Dosada05/playground-standings/services" // Импортируем для маппинга ошибок сервисов
	"github.com/go-chi/chi/v5"
)

type jsonResponse map[string]interface{}

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case err.Error() == "http: request body too large":
			return fmt.Errorf("body must not be larger than %d bytes", maxBytes)
		case errors.As(err, &invalidUnmarshalError):
			panic(err) // Паника, т.к. это ошибка программиста (передан не указатель)
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	if err != nil {
		return err
	}

	return nil
}

func errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	env := jsonResponse{"error": message}
	err := writeJSON(w, status, env, nil)
	if err != nil {
		slog.Default().ErrorContext(r.Context(), "failed to write error response", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	slog.Default().ErrorContext(r.Context(), "internal server error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err))
	message := "the server encountered a problem and could not process your request"
	errorResponse(w, r, http.StatusInternalServerError, message)
}

func badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(w, r, http.StatusUnprocessableEntity, err.Error())
}

func notFoundResponse(w http.ResponseWriter, r *http.Request, message string) {
	if message == "" {
		message = "the requested resource could not be found"
	}
	errorResponse(w, r, http.StatusNotFound, message)
}

func conflictResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusConflict, message)
}

func unauthorizedResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusUnauthorized, message)
}

func serviceUnavailableResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusServiceUnavailable, message)
}

// mapServiceErrorToHTTP преобразует ошибки сервисного слоя в HTTP-ответы
func mapServiceErrorToHTTP(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	// Не найдено
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrPlaygroundNotFound),
		errors.Is(err, services.ErrGroupNotFound),
		errors.Is(err, services.ErrTeamNotFound),
		errors.Is(err, services.ErrMatchNotFound),
		errors.Is(err, services.ErrPlayerNotFound):
		notFoundResponse(w, r, err.Error())

	// Конфликты
	case errors.Is(err, services.ErrSlotTaken),
		errors.Is(err, services.ErrTeamDoubleBooked),
		errors.Is(err, services.ErrPlaygroundNameConflict),
		errors.Is(err, services.ErrGroupNameConflict),
		errors.Is(err, services.ErrTeamNameConflict),
		errors.Is(err, services.ErrGroupStageExists),
		errors.Is(err, services.ErrPlayerNameConflict),
		errors.Is(err, services.ErrPlayerExpelled),
		errors.Is(err, services.ErrNoWarnings):
		conflictResponse(w, r, err.Error())

	// Невалидные данные / бизнес-правила
	case errors.Is(err, services.ErrValidationFailed),
		errors.Is(err, services.ErrUnknownDay),
		errors.Is(err, services.ErrUnknownTimeSlot),
		errors.Is(err, services.ErrUnknownField),
		errors.Is(err, services.ErrSameTeam),
		errors.Is(err, services.ErrTeamOutsidePlay),
		errors.Is(err, services.ErrIncompleteScore),
		errors.Is(err, services.ErrNegativeScore),
		errors.Is(err, services.ErrNegativePoints),
		errors.Is(err, services.ErrPlayerNotInMatch):
		failedValidationResponse(w, r, err)

	// Ошибки авторизации
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrAuthenticationFailed):
		unauthorizedResponse(w, r, err.Error())

	case errors.Is(err, services.ErrPublishingDisabled):
		serviceUnavailableResponse(w, r, err.Error())

	// Непредвиденные ошибки / ошибки по умолчанию
	default:
		serverErrorResponse(w, r, err)
	}
}

// Общая вспомогательная функция для извлечения ID из URL
func getIDFromURL(r *http.Request, paramName string) (int, error) {
	idStr := chi.URLParam(r, paramName)
	if idStr == "" {
		return 0, fmt.Errorf("missing %s in URL path", paramName)
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s format: %q", paramName, idStr)
	}

	if id <= 0 {
		return 0, fmt.Errorf("invalid %s value: %d", paramName, id)
	}

	return id, nil
}

// getOptionalIntQuery возвращает nil, если параметр не передан.
func getOptionalIntQuery(r *http.Request, name string) (*int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s query parameter: %q", name, raw)
	}
	return &v, nil
}
