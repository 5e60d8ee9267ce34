package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed   = errors.New("validation failed") // Общая ошибка валидации
	ErrUnknownTimeSlot    = errors.New("time slot is not part of the daily grid")
	ErrUnknownField       = errors.New("unknown field")
	ErrUnknownDay         = errors.New("day is not part of the tournament calendar")
	ErrSameTeam           = errors.New("a team cannot play against itself")
	ErrTeamOutsidePlay    = errors.New("team does not belong to this playground")
	ErrIncompleteScore    = errors.New("both scores are required to record a result")
	ErrNegativeScore      = errors.New("scores cannot be negative")
	ErrGroupStageExists   = errors.New("group stage already has scheduled matches")
	ErrPublishingDisabled = errors.New("publishing is not configured")
	ErrNegativePoints     = errors.New("player points cannot be negative")
	ErrPlayerNotInMatch   = errors.New("player's team does not play in this match")
	ErrNoWarnings         = errors.New("player has no warnings to remove")

	// Ошибки конфликтов
	ErrSlotTaken              = errors.New("field is already booked for this day and time slot")
	ErrTeamDoubleBooked       = errors.New("team already plays in this time slot")
	ErrPlaygroundNameConflict = errors.New("playground name already exists")
	ErrTeamNameConflict       = errors.New("team name is already in use")
	ErrGroupNameConflict      = errors.New("group name is already in use")
	ErrPlayerNameConflict     = errors.New("player name is already in use in this team")
	ErrPlayerExpelled         = errors.New("player is already expelled")

	// Ошибки аутентификации и авторизации
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrAuthenticationFailed = errors.New("authentication failed") // Общая ошибка аутентификации

	// Ошибки, специфичные для сущностей (могут дублировать ErrNotFound, но дают больше контекста)
	ErrPlaygroundNotFound = errors.New("playground not found")
	ErrGroupNotFound      = errors.New("group not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrPlayerNotFound     = errors.New("player not found")
)
