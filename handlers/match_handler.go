package handlers

import (
	"net/http"

	"github.com/Dosada05/playground-standings/services"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(ms services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: ms}
}

// ListMatches godoc
// @Summary Матчи площадки
// @Tags matches
// @Produce json
// @Param playgroundID path int true "Playground ID"
// @Param day query int false "Игровой день"
// @Success 200 {object} map[string]interface{} "matches"
// @Router /playgrounds/{playgroundID}/matches [get]
func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	playgroundID, err := getIDFromURL(r, "playgroundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	day, err := getOptionalIntQuery(r, "day")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	matches, err := h.matchService.ListMatches(r.Context(), playgroundID, day)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateMatch godoc
// @Summary Добавить матч в расписание
// @Tags matches
// @Accept json
// @Produce json
// @Param playgroundID path int true "Playground ID"
// @Param input body services.CreateMatchInput true "Матч"
// @Success 201 {object} map[string]interface{} "match"
// @Failure 409 {object} map[string]string "Поле или команда уже заняты в этом слоте"
// @Failure 422 {object} map[string]string "Ошибка валидации"
// @Security BearerAuth
// @Router /admin/playgrounds/{playgroundID}/matches [post]
func (h *MatchHandler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	playgroundID, err := getIDFromURL(r, "playgroundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input services.CreateMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	match, err := h.matchService.CreateMatch(r.Context(), playgroundID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecordResult godoc
// @Summary Внести счёт матча
// @Tags matches
// @Accept json
// @Produce json
// @Param matchID path int true "Match ID"
// @Param input body services.RecordResultInput true "Счёт; оба поля null сбрасывают результат"
// @Success 200 {object} map[string]interface{} "match"
// @Failure 404 {object} map[string]string "Матч не найден"
// @Failure 422 {object} map[string]string "Ошибка валидации"
// @Security BearerAuth
// @Router /admin/matches/{matchID}/result [put]
func (h *MatchHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input services.RecordResultInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	match, err := h.matchService.RecordResult(r.Context(), matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteMatch godoc
// @Summary Удалить матч
// @Tags matches
// @Param matchID path int true "Match ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Матч не найден"
// @Security BearerAuth
// @Router /admin/matches/{matchID} [delete]
func (h *MatchHandler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.matchService.DeleteMatch(r.Context(), matchID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
