package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Dosada05/playground-standings/services"
	"github.com/Dosada05/playground-standings/standings"
)

type StandingsHandler struct {
	standingsService services.StandingsService
}

func NewStandingsHandler(ss services.StandingsService) *StandingsHandler {
	return &StandingsHandler{standingsService: ss}
}

// parsePhaseFilter читает ?phase=. Без параметра только групповой этап, "all" даёт все фазы.
func parsePhaseFilter(r *http.Request) (standings.PhaseFilter, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("phase"))
	switch raw {
	case "":
		return standings.OnlyPhase(standings.PhaseGroupStage), nil
	case "all":
		return standings.AllPhases, nil
	}
	phase, err := standings.ParsePhase(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid phase query parameter: %w", err)
	}
	return standings.OnlyPhase(phase), nil
}

// GetStandings godoc
// @Summary Таблицы групп
// @Tags standings
// @Produce json
// @Param playgroundID path int true "Playground ID"
// @Param phase query string false "group_stage (по умолчанию), play_in, finals или all"
// @Success 200 {object} standings.StandingsResult
// @Failure 400 {object} map[string]string "Неверная фаза"
// @Failure 404 {object} map[string]string "Площадка не найдена"
// @Router /playgrounds/{playgroundID}/standings [get]
func (h *StandingsHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	playgroundID, err := getIDFromURL(r, "playgroundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	filter, err := parsePhaseFilter(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	res, err := h.standingsService.GroupStandings(r.Context(), playgroundID, filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, res, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetTeamStats godoc
// @Summary Статистика команды по всем фазам
// @Tags standings
// @Produce json
// @Param playgroundID path int true "Playground ID"
// @Param teamID path int true "Team ID"
// @Success 200 {object} standings.TeamRecord
// @Failure 404 {object} map[string]string "Площадка или команда не найдена"
// @Router /playgrounds/{playgroundID}/teams/{teamID}/stats [get]
func (h *StandingsHandler) GetTeamStats(w http.ResponseWriter, r *http.Request) {
	playgroundID, err := getIDFromURL(r, "playgroundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	rec, err := h.standingsService.TeamStats(r.Context(), playgroundID, teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, rec, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetQualification godoc
// @Summary Прямые квалификанты и пул плей-ина
// @Tags standings
// @Produce json
// @Param playgroundID path int true "Playground ID"
// @Success 200 {object} standings.QualificationReport
// @Router /playgrounds/{playgroundID}/qualification [get]
func (h *StandingsHandler) GetQualification(w http.ResponseWriter, r *http.Request) {
	playgroundID, err := getIDFromURL(r, "playgroundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	rep, err := h.standingsService.Qualification(r.Context(), playgroundID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, rep, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetPlayIn godoc
// @Summary Матчи и победители плей-ина
// @Tags standings
// @Produce json
// @Param playgroundID path int true "Playground ID"
// @Success 200 {object} standings.PlayInReport
// @Router /playgrounds/{playgroundID}/play-in [get]
func (h *StandingsHandler) GetPlayIn(w http.ResponseWriter, r *http.Request) {
	playgroundID, err := getIDFromURL(r, "playgroundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	rep, err := h.standingsService.PlayIn(r.Context(), playgroundID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, rep, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetBracket godoc
// @Summary Сетка финального дня по раундам
// @Tags standings
// @Produce json
// @Param playgroundID path int true "Playground ID"
// @Success 200 {object} standings.BracketReport
// @Router /playgrounds/{playgroundID}/bracket [get]
func (h *StandingsHandler) GetBracket(w http.ResponseWriter, r *http.Request) {
	playgroundID, err := getIDFromURL(r, "playgroundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	rep, err := h.standingsService.Bracket(r.Context(), playgroundID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, rep, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetCalendar godoc
// @Summary Матчи по игровым дням
// @Tags standings
// @Produce json
// @Param playgroundID path int true "Playground ID"
// @Success 200 {object} map[string]interface{} "days"
// @Router /playgrounds/{playgroundID}/calendar [get]
func (h *StandingsHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	playgroundID, err := getIDFromURL(r, "playgroundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	days, err := h.standingsService.Calendar(r.Context(), playgroundID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"days": days}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetTopScorers godoc
// @Summary Лучшие игроки по сумме очков
// @Tags standings
// @Produce json
// @Param playgroundID path int true "Playground ID"
// @Param limit query int false "Сколько игроков вернуть (по умолчанию 10, 0 - всех)"
// @Success 200 {object} standings.TopScorersReport
// @Failure 400 {object} map[string]string "Неверный limit"
// @Failure 404 {object} map[string]string "Площадка не найдена"
// @Router /playgrounds/{playgroundID}/top-scorers [get]
func (h *StandingsHandler) GetTopScorers(w http.ResponseWriter, r *http.Request) {
	playgroundID, err := getIDFromURL(r, "playgroundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	limit := standings.DefaultTopScorersLimit
	raw, err := getOptionalIntQuery(r, "limit")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if raw != nil {
		if *raw < 0 {
			badRequestResponse(w, r, fmt.Errorf("invalid limit query parameter: %d", *raw))
			return
		}
		limit = *raw
	}
	res, err := h.standingsService.TopScorers(r.Context(), playgroundID, limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, res, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetTimeSlots godoc
// @Summary Сетка временных слотов дня
// @Tags standings
// @Produce json
// @Success 200 {object} map[string]interface{} "time_slots"
// @Router /time-slots [get]
func (h *StandingsHandler) GetTimeSlots(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"time_slots": h.standingsService.TimeSlots()}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
