package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/playground-standings/models"
	"github.com/Dosada05/playground-standings/repositories"
)

type CreatePlaygroundInput struct {
	Name string `json:"name"`
}

type CreateGroupInput struct {
	Name  string            `json:"name"`
	Color models.GroupColor `json:"color"`
}

type CreateTeamInput struct {
	GroupID int    `json:"group_id"`
	Name    string `json:"name"`
}

// RosterService ведёт площадки, группы и команды.
type RosterService interface {
	CreatePlayground(ctx context.Context, input CreatePlaygroundInput) (*models.Playground, error)
	GetPlayground(ctx context.Context, playgroundID int) (*models.Playground, error)
	ListPlaygrounds(ctx context.Context) ([]models.Playground, error)
	CreateGroup(ctx context.Context, playgroundID int, input CreateGroupInput) (*models.Group, error)
	CreateTeam(ctx context.Context, playgroundID int, input CreateTeamInput) (*models.Team, error)
	// ListGroups возвращает группы площадки вместе с командами.
	ListGroups(ctx context.Context, playgroundID int) ([]models.Group, error)
}

type rosterService struct {
	playgroundRepo repositories.PlaygroundRepository
	groupRepo      repositories.GroupRepository
	teamRepo       repositories.TeamRepository
	logger         *slog.Logger
}

func NewRosterService(
	playgroundRepo repositories.PlaygroundRepository,
	groupRepo repositories.GroupRepository,
	teamRepo repositories.TeamRepository,
	logger *slog.Logger,
) RosterService {
	if logger == nil {
		logger = slog.Default()
	}
	return &rosterService{
		playgroundRepo: playgroundRepo,
		groupRepo:      groupRepo,
		teamRepo:       teamRepo,
		logger:         logger,
	}
}

func (s *rosterService) CreatePlayground(ctx context.Context, input CreatePlaygroundInput) (*models.Playground, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: playground name is required", ErrValidationFailed)
	}
	p := &models.Playground{Name: name}
	if err := s.playgroundRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create playground: %w", handleRepositoryError(err))
	}
	s.logger.InfoContext(ctx, "playground created", slog.Int("playground_id", p.ID), slog.String("name", p.Name))
	return p, nil
}

func (s *rosterService) GetPlayground(ctx context.Context, playgroundID int) (*models.Playground, error) {
	p, err := s.playgroundRepo.GetByID(ctx, playgroundID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return p, nil
}

func (s *rosterService) ListPlaygrounds(ctx context.Context) ([]models.Playground, error) {
	list, err := s.playgroundRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list playgrounds: %w", err)
	}
	if list == nil {
		return []models.Playground{}, nil
	}
	return list, nil
}

func (s *rosterService) CreateGroup(ctx context.Context, playgroundID int, input CreateGroupInput) (*models.Group, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: group name is required", ErrValidationFailed)
	}
	if !input.Color.Valid() {
		return nil, fmt.Errorf("%w: unknown group color %q", ErrValidationFailed, input.Color)
	}
	g := &models.Group{PlaygroundID: playgroundID, Name: name, Color: input.Color}
	if err := s.groupRepo.Create(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", handleRepositoryError(err))
	}
	s.logger.InfoContext(ctx, "group created", slog.Int("playground_id", playgroundID), slog.Int("group_id", g.ID))
	return g, nil
}

func (s *rosterService) CreateTeam(ctx context.Context, playgroundID int, input CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: team name is required", ErrValidationFailed)
	}
	group, err := s.groupRepo.GetByID(ctx, input.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load group %d: %w", input.GroupID, handleRepositoryError(err))
	}
	if group.PlaygroundID != playgroundID {
		return nil, fmt.Errorf("%w: group %d belongs to another playground", ErrValidationFailed, group.ID)
	}
	t := &models.Team{PlaygroundID: playgroundID, GroupID: group.ID, Name: name}
	if err := s.teamRepo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", handleRepositoryError(err))
	}
	s.logger.InfoContext(ctx, "team created", slog.Int("playground_id", playgroundID), slog.Int("team_id", t.ID), slog.Int("group_id", group.ID))
	return t, nil
}

func (s *rosterService) ListGroups(ctx context.Context, playgroundID int) ([]models.Group, error) {
	if _, err := s.playgroundRepo.GetByID(ctx, playgroundID); err != nil {
		return nil, handleRepositoryError(err)
	}
	groups, err := s.groupRepo.ListByPlayground(ctx, playgroundID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	teams, err := s.teamRepo.ListByPlayground(ctx, playgroundID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return groupsWithTeams(groups, teams), nil
}

// groupsWithTeams раскладывает команды по их группам, сохраняя порядок ростера.
func groupsWithTeams(groups []models.Group, teams []models.Team) []models.Group {
	out := make([]models.Group, len(groups))
	index := make(map[int]int, len(groups))
	for i, g := range groups {
		g.Teams = []models.Team{}
		out[i] = g
		index[g.ID] = i
	}
	for _, t := range teams {
		if i, ok := index[t.GroupID]; ok {
			out[i].Teams = append(out[i].Teams, t)
		}
	}
	return out
}
