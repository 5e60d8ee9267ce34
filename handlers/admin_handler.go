package handlers

import (
	"net/http"

	"github.com/Dosada05/playground-standings/services"
)

// AdminHandler - операции над площадкой целиком: расписание и публикация.
type AdminHandler struct {
	scheduleService services.ScheduleService
	publishService  services.PublishService
}

func NewAdminHandler(schedule services.ScheduleService, publish services.PublishService) *AdminHandler {
	return &AdminHandler{scheduleService: schedule, publishService: publish}
}

// GenerateSchedule godoc
// @Summary Сгенерировать круговой групповой этап
// @Tags admin
// @Produce json
// @Param playgroundID path int true "Playground ID"
// @Success 201 {object} map[string]interface{} "matches"
// @Failure 409 {object} map[string]string "Групповой этап уже есть"
// @Failure 422 {object} map[string]string "Не хватает слотов или команд"
// @Security BearerAuth
// @Router /admin/playgrounds/{playgroundID}/schedule [post]
func (h *AdminHandler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	playgroundID, err := getIDFromURL(r, "playgroundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	matches, err := h.scheduleService.GenerateGroupStage(r.Context(), playgroundID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Publish godoc
// @Summary Выложить JSON-снимки таблиц в хранилище
// @Tags admin
// @Produce json
// @Param playgroundID path int true "Playground ID"
// @Success 200 {object} services.PublishResult
// @Failure 503 {object} map[string]string "Публикация не настроена"
// @Security BearerAuth
// @Router /admin/playgrounds/{playgroundID}/publish [post]
func (h *AdminHandler) Publish(w http.ResponseWriter, r *http.Request) {
	playgroundID, err := getIDFromURL(r, "playgroundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	res, err := h.publishService.Publish(r.Context(), playgroundID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, res, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Unpublish godoc
// @Summary Снять опубликованные JSON-снимки площадки
// @Tags admin
// @Produce json
// @Param playgroundID path int true "Playground ID"
// @Success 200 {object} map[string]interface{} "removed"
// @Failure 503 {object} map[string]string "Публикация не настроена"
// @Security BearerAuth
// @Router /admin/playgrounds/{playgroundID}/publish [delete]
func (h *AdminHandler) Unpublish(w http.ResponseWriter, r *http.Request) {
	playgroundID, err := getIDFromURL(r, "playgroundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	removed, err := h.publishService.Unpublish(r.Context(), playgroundID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"removed": removed}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
