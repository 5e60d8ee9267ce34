package handlers

import (
	"context"
	"net/http"

	"github.com/Dosada05/playground-standings/models"
	"github.com/Dosada05/playground-standings/services"
)

type PlayerHandler struct {
	playerService services.PlayerService
}

func NewPlayerHandler(ps services.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: ps}
}

// ListPlayers godoc
// @Summary Игроки площадки
// @Tags players
// @Produce json
// @Param playgroundID path int true "Playground ID"
// @Success 200 {object} map[string]interface{} "players"
// @Router /playgrounds/{playgroundID}/players [get]
func (h *PlayerHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	playgroundID, err := getIDFromURL(r, "playgroundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	players, err := h.playerService.ListPlayers(r.Context(), playgroundID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreatePlayer godoc
// @Summary Добавить игрока в заявку команды
// @Tags players
// @Accept json
// @Produce json
// @Param playgroundID path int true "Playground ID"
// @Param input body services.CreatePlayerInput true "Игрок"
// @Success 201 {object} map[string]interface{} "player"
// @Failure 409 {object} map[string]string "Игрок с таким именем уже есть в команде"
// @Failure 422 {object} map[string]string "Ошибка валидации"
// @Security BearerAuth
// @Router /admin/playgrounds/{playgroundID}/players [post]
func (h *PlayerHandler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	playgroundID, err := getIDFromURL(r, "playgroundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input services.CreatePlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	player, err := h.playerService.CreatePlayer(r.Context(), playgroundID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecordPlayerPoints godoc
// @Summary Внести очки игроков за матч
// @Tags players
// @Accept json
// @Produce json
// @Param matchID path int true "Match ID"
// @Param input body services.RecordPlayerPointsInput true "Очки игроков"
// @Success 200 {object} map[string]interface{} "points"
// @Failure 404 {object} map[string]string "Матч или игрок не найден"
// @Failure 422 {object} map[string]string "Игрок не играет в этом матче"
// @Security BearerAuth
// @Router /admin/matches/{matchID}/player-points [put]
func (h *PlayerHandler) RecordPlayerPoints(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input services.RecordPlayerPointsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	points, err := h.playerService.RecordPlayerPoints(r.Context(), matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"points": points}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AddWarning godoc
// @Summary Выдать предупреждение (второе удаляет игрока)
// @Tags players
// @Produce json
// @Param playerID path int true "Player ID"
// @Success 200 {object} map[string]interface{} "player"
// @Failure 409 {object} map[string]string "Игрок уже удалён"
// @Security BearerAuth
// @Router /admin/players/{playerID}/warnings [post]
func (h *PlayerHandler) AddWarning(w http.ResponseWriter, r *http.Request) {
	h.discipline(w, r, h.playerService.AddWarning)
}

// RemoveWarning godoc
// @Summary Снять предупреждение
// @Tags players
// @Produce json
// @Param playerID path int true "Player ID"
// @Success 200 {object} map[string]interface{} "player"
// @Failure 409 {object} map[string]string "Предупреждений нет"
// @Security BearerAuth
// @Router /admin/players/{playerID}/warnings [delete]
func (h *PlayerHandler) RemoveWarning(w http.ResponseWriter, r *http.Request) {
	h.discipline(w, r, h.playerService.RemoveWarning)
}

// Expel godoc
// @Summary Удалить игрока с турнира
// @Tags players
// @Produce json
// @Param playerID path int true "Player ID"
// @Success 200 {object} map[string]interface{} "player"
// @Failure 409 {object} map[string]string "Игрок уже удалён"
// @Security BearerAuth
// @Router /admin/players/{playerID}/expulsion [post]
func (h *PlayerHandler) Expel(w http.ResponseWriter, r *http.Request) {
	h.discipline(w, r, h.playerService.Expel)
}

func (h *PlayerHandler) discipline(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, playerID int) (*models.Player, error)) {
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	player, err := apply(r.Context(), playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
