// Command standingsctl is the operator CLI for playground standings.
//
// Usage:
//
//	standingsctl migrate
//	standingsctl schedule --playground 1
//	standingsctl standings --playground 1 --phase all
//	standingsctl qualification --playground 1
//	standingsctl bracket --playground 1
//	standingsctl top-scorers --playground 1 --limit 10
//	standingsctl publish --playground 1
//	standingsctl unpublish --playground 1
//	standingsctl hash-password --password secret
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dosada05/playground-standings/brackets"
	"github.com/Dosada05/playground-standings/config"
	"github.com/Dosada05/playground-standings/db"
	"github.com/Dosada05/playground-standings/metrics"
	"github.com/Dosada05/playground-standings/repositories"
	"github.com/Dosada05/playground-standings/services"
	"github.com/Dosada05/playground-standings/standings"
	"github.com/Dosada05/playground-standings/storage"
)

const connectTimeout = 5 * time.Second

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	root := &cobra.Command{
		Use:           "standingsctl",
		Short:         "Playground standings operator CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(migrateCmd())
	root.AddCommand(scheduleCmd())
	root.AddCommand(standingsCmd())
	root.AddCommand(qualificationCmd())
	root.AddCommand(bracketCmd())
	root.AddCommand(topScorersCmd())
	root.AddCommand(publishCmd())
	root.AddCommand(unpublishCmd())
	root.AddCommand(hashPasswordCmd())

	if err := root.Execute(); err != nil {
		logger.Error("command failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// app - сервисы, собранные поверх Postgres без HTTP-слоя и без WebSocket.
type app struct {
	conn      *sql.DB
	standings services.StandingsService
	schedule  services.ScheduleService
	publish   services.PublishService
}

func run(fn func(ctx context.Context, a *app) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	conn, err := db.Connect(cfg.DatabaseURL, connectTimeout)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer conn.Close()

	engine, err := standings.NewEngine(cfg.Engine)
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}

	snapshots := repositories.NewPostgresSnapshotRepository(conn)
	matchRepo := repositories.NewPostgresMatchRepository(conn)
	recorder := metrics.NewRecorder()

	var uploader storage.FileUploader
	if cfg.PublishingEnabled() {
		uploader, err = storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			return fmt.Errorf("init R2 uploader: %w", err)
		}
	}

	standingsService := services.NewStandingsService(snapshots, engine, recorder, logger)
	generator := brackets.NewRoundRobinGenerator(engine.Calendar(), engine.TimeSlots(), nil, brackets.DefaultFields)
	a := &app{
		conn:      conn,
		standings: standingsService,
		schedule: services.NewScheduleService(snapshots, matchRepo, repositories.NewPostgresTransactor(conn),
			generator, engine.Calendar(), nil, logger),
		publish: services.NewPublishService(standingsService, uploader, recorder, logger),
	}
	return fn(ctx, a)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func playgroundFlag(cmd *cobra.Command, target *int) {
	cmd.Flags().IntVar(target, "playground", 0, "Playground ID")
	_ = cmd.MarkFlagRequired("playground")
}

// --------------------------------------------------------------------------
// migrate
// --------------------------------------------------------------------------

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, a *app) error {
				if err := db.Migrate(ctx, a.conn); err != nil {
					return err
				}
				logger.Info("schema applied")
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// schedule
// --------------------------------------------------------------------------

func scheduleCmd() *cobra.Command {
	var playgroundID int
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate the round-robin group stage",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, a *app) error {
				matches, err := a.schedule.GenerateGroupStage(ctx, playgroundID)
				if err != nil {
					return err
				}
				logger.Info("group stage scheduled", slog.Int("playground_id", playgroundID), slog.Int("matches", len(matches)))
				return printJSON(cmd.OutOrStdout(), matches)
			})
		},
	}
	playgroundFlag(cmd, &playgroundID)
	return cmd
}

// --------------------------------------------------------------------------
// read-only reports
// --------------------------------------------------------------------------

func standingsCmd() *cobra.Command {
	var playgroundID int
	var phase string
	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Print group tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := phaseFilter(phase)
			if err != nil {
				return err
			}
			return run(func(ctx context.Context, a *app) error {
				res, err := a.standings.GroupStandings(ctx, playgroundID, filter)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			})
		},
	}
	playgroundFlag(cmd, &playgroundID)
	cmd.Flags().StringVar(&phase, "phase", string(standings.PhaseGroupStage), `Phase to count, or "all"`)
	return cmd
}

func phaseFilter(raw string) (standings.PhaseFilter, error) {
	if raw == "all" {
		return standings.AllPhases, nil
	}
	p, err := standings.ParsePhase(raw)
	if err != nil {
		return nil, err
	}
	return standings.OnlyPhase(p), nil
}

func qualificationCmd() *cobra.Command {
	var playgroundID int
	cmd := &cobra.Command{
		Use:   "qualification",
		Short: "Print direct qualifiers and the play-in pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, a *app) error {
				rep, err := a.standings.Qualification(ctx, playgroundID)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), rep)
			})
		},
	}
	playgroundFlag(cmd, &playgroundID)
	return cmd
}

func bracketCmd() *cobra.Command {
	var playgroundID int
	cmd := &cobra.Command{
		Use:   "bracket",
		Short: "Print the playoff bracket",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, a *app) error {
				rep, err := a.standings.Bracket(ctx, playgroundID)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), rep)
			})
		},
	}
	playgroundFlag(cmd, &playgroundID)
	return cmd
}

func topScorersCmd() *cobra.Command {
	var playgroundID, limit int
	cmd := &cobra.Command{
		Use:   "top-scorers",
		Short: "Print players ranked by total points",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative, got %d", limit)
			}
			return run(func(ctx context.Context, a *app) error {
				rep, err := a.standings.TopScorers(ctx, playgroundID, limit)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), rep)
			})
		},
	}
	playgroundFlag(cmd, &playgroundID)
	cmd.Flags().IntVar(&limit, "limit", standings.DefaultTopScorersLimit, "Players to print, 0 for all")
	return cmd
}

// --------------------------------------------------------------------------
// publish
// --------------------------------------------------------------------------

func publishCmd() *cobra.Command {
	var playgroundID int
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload standings documents to R2",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, a *app) error {
				res, err := a.publish.Publish(ctx, playgroundID)
				if errors.Is(err, services.ErrPublishingDisabled) {
					return fmt.Errorf("%w: set the R2_* variables", err)
				}
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			})
		},
	}
	playgroundFlag(cmd, &playgroundID)
	return cmd
}

func unpublishCmd() *cobra.Command {
	var playgroundID int
	cmd := &cobra.Command{
		Use:   "unpublish",
		Short: "Remove a playground's standings documents from R2",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, a *app) error {
				removed, err := a.publish.Unpublish(ctx, playgroundID)
				if errors.Is(err, services.ErrPublishingDisabled) {
					return fmt.Errorf("%w: set the R2_* variables", err)
				}
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), removed)
			})
		},
	}
	playgroundFlag(cmd, &playgroundID)
	return cmd
}

// --------------------------------------------------------------------------
// hash-password
// --------------------------------------------------------------------------

// hashPasswordCmd печатает bcrypt-хеш для ADMIN_PASSWORD_HASH. База не нужна.
func hashPasswordCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				return errors.New("--password is required")
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(hash))
			return err
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "Admin password")
	return cmd
}
