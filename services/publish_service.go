package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/playground-standings/metrics"
	"github.com/Dosada05/playground-standings/storage"
	"golang.org/x/sync/errgroup"
)

// PublishedDocument - один загруженный JSON-документ.
type PublishedDocument struct {
	Name string `json:"name"`
	Key  string `json:"key"`
	URL  string `json:"url"`
	ETag string `json:"etag,omitempty"`
}

type PublishResult struct {
	PlaygroundID int                 `json:"playground_id"`
	PublishedAt  time.Time           `json:"published_at"`
	Documents    []PublishedDocument `json:"documents"`
}

// PublishService выкладывает статические JSON-снимки таблиц в объектное хранилище.
type PublishService interface {
	Publish(ctx context.Context, playgroundID int) (*PublishResult, error)
	Unpublish(ctx context.Context, playgroundID int) ([]string, error)
}

type publishService struct {
	standings StandingsService
	uploader  storage.FileUploader
	metrics   *metrics.Recorder
	logger    *slog.Logger
	now       func() time.Time
}

// NewPublishService допускает nil uploader: тогда Publish возвращает ErrPublishingDisabled.
func NewPublishService(standingsService StandingsService, uploader storage.FileUploader, recorder *metrics.Recorder, logger *slog.Logger) PublishService {
	if logger == nil {
		logger = slog.Default()
	}
	return &publishService{
		standings: standingsService,
		uploader:  uploader,
		metrics:   recorder,
		logger:    logger,
		now:       time.Now,
	}
}

// documentNames - публикуемые документы в порядке ответа.
var documentNames = []string{"standings", "qualification", "play_in", "bracket", "top_scorers"}

func documentKey(playgroundID int, name string) string {
	return fmt.Sprintf("playgrounds/%d/%s.json", playgroundID, name)
}

func (s *publishService) Publish(ctx context.Context, playgroundID int) (result *PublishResult, err error) {
	if s.uploader == nil {
		return nil, ErrPublishingDisabled
	}
	defer func() { s.metrics.Published(err) }()

	// Все документы считаются по одному снимку.
	set, err := s.standings.Documents(ctx, playgroundID)
	if err != nil {
		return nil, err
	}
	bodies := map[string]interface{}{
		"standings":     set.Standings,
		"qualification": set.Qualification,
		"play_in":       set.PlayIn,
		"bracket":       set.Bracket,
		"top_scorers":   set.TopScorers,
	}

	published := make([]PublishedDocument, len(documentNames))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range documentNames {
		i, name := i, name
		g.Go(func() error {
			payload, err := json.Marshal(bodies[name])
			if err != nil {
				return fmt.Errorf("failed to encode %s: %w", name, err)
			}
			key := documentKey(playgroundID, name)
			res, err := s.uploader.Upload(gctx, key, "application/json", bytes.NewReader(payload))
			if err != nil {
				return fmt.Errorf("failed to upload %s: %w", key, err)
			}
			published[i] = PublishedDocument{
				Name: name,
				Key:  res.Key,
				URL:  s.uploader.GetPublicURL(res.Key),
				ETag: res.ETag,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "publishing failed", slog.Int("playground_id", playgroundID), slog.Any("error", err))
		return nil, err
	}

	s.logger.InfoContext(ctx, "standings published", slog.Int("playground_id", playgroundID), slog.Int("documents", len(published)))
	return &PublishResult{PlaygroundID: playgroundID, PublishedAt: s.now().UTC(), Documents: published}, nil
}

// Unpublish удаляет опубликованные документы площадки и возвращает снятые ключи.
// Отсутствующий документ не ошибка. R2 не сообщает об отсутствии, поэтому
// для него в ответе все ключи.
func (s *publishService) Unpublish(ctx context.Context, playgroundID int) ([]string, error) {
	if s.uploader == nil {
		return nil, ErrPublishingDisabled
	}
	removed := make([]string, 0, len(documentNames))
	for _, name := range documentNames {
		key := documentKey(playgroundID, name)
		err := s.uploader.Delete(ctx, key)
		switch {
		case errors.Is(err, storage.ErrObjectNotFound):
			continue
		case err != nil:
			s.logger.ErrorContext(ctx, "unpublishing failed", slog.Int("playground_id", playgroundID), slog.String("key", key), slog.Any("error", err))
			return removed, fmt.Errorf("failed to delete %s: %w", key, err)
		}
		removed = append(removed, key)
	}
	s.logger.InfoContext(ctx, "standings unpublished", slog.Int("playground_id", playgroundID), slog.Int("documents", len(removed)))
	return removed, nil
}
