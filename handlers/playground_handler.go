package handlers

import (
	"net/http"

	"github.com/Dosada05/playground-standings/services"
)

type PlaygroundHandler struct {
	rosterService services.RosterService
}

func NewPlaygroundHandler(rs services.RosterService) *PlaygroundHandler {
	return &PlaygroundHandler{rosterService: rs}
}

// ListPlaygrounds godoc
// @Summary Список площадок
// @Tags playgrounds
// @Produce json
// @Success 200 {object} map[string]interface{} "playgrounds"
// @Router /playgrounds [get]
func (h *PlaygroundHandler) ListPlaygrounds(w http.ResponseWriter, r *http.Request) {
	playgrounds, err := h.rosterService.ListPlaygrounds(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"playgrounds": playgrounds}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetPlayground godoc
// @Summary Площадка с группами и командами
// @Tags playgrounds
// @Produce json
// @Param playgroundID path int true "Playground ID"
// @Success 200 {object} map[string]interface{} "playground, groups"
// @Failure 404 {object} map[string]string "Площадка не найдена"
// @Router /playgrounds/{playgroundID} [get]
func (h *PlaygroundHandler) GetPlayground(w http.ResponseWriter, r *http.Request) {
	playgroundID, err := getIDFromURL(r, "playgroundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	playground, err := h.rosterService.GetPlayground(r.Context(), playgroundID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	groups, err := h.rosterService.ListGroups(r.Context(), playgroundID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"playground": playground, "groups": groups}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreatePlayground godoc
// @Summary Создать площадку
// @Tags playgrounds
// @Accept json
// @Produce json
// @Param input body services.CreatePlaygroundInput true "Название"
// @Success 201 {object} map[string]interface{} "playground"
// @Failure 409 {object} map[string]string "Название занято"
// @Security BearerAuth
// @Router /admin/playgrounds [post]
func (h *PlaygroundHandler) CreatePlayground(w http.ResponseWriter, r *http.Request) {
	var input services.CreatePlaygroundInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	playground, err := h.rosterService.CreatePlayground(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"playground": playground}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateGroup godoc
// @Summary Создать группу
// @Tags playgrounds
// @Accept json
// @Produce json
// @Param playgroundID path int true "Playground ID"
// @Param input body services.CreateGroupInput true "Группа"
// @Success 201 {object} map[string]interface{} "group"
// @Security BearerAuth
// @Router /admin/playgrounds/{playgroundID}/groups [post]
func (h *PlaygroundHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	playgroundID, err := getIDFromURL(r, "playgroundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input services.CreateGroupInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	group, err := h.rosterService.CreateGroup(r.Context(), playgroundID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"group": group}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateTeam godoc
// @Summary Создать команду
// @Tags playgrounds
// @Accept json
// @Produce json
// @Param playgroundID path int true "Playground ID"
// @Param input body services.CreateTeamInput true "Команда"
// @Success 201 {object} map[string]interface{} "team"
// @Security BearerAuth
// @Router /admin/playgrounds/{playgroundID}/teams [post]
func (h *PlaygroundHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	playgroundID, err := getIDFromURL(r, "playgroundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input services.CreateTeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	team, err := h.rosterService.CreateTeam(r.Context(), playgroundID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
