package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/yusufkecer/fit-assistant/internal/config"
	"github.com/yusufkecer/fit-assistant/internal/db"
	"github.com/yusufkecer/fit-assistant/internal/domain"
	applog "github.com/yusufkecer/fit-assistant/internal/logger"
	"github.com/yusufkecer/fit-assistant/internal/repository"
	"github.com/yusufkecer/fit-assistant/internal/service"
	"github.com/yusufkecer/fit-assistant/internal/wardrobe"
	"go.uber.org/zap"
)

// logger overrides the configured logger when set; tests use zap.NewNop.
var logger *zap.Logger

// app is everything a command needs, built once per invocation.
type app struct {
	envFile   string
	ephemeral bool
	jsonOut   bool

	cfg     *config.Config
	log     *zap.Logger
	db      *sql.DB
	images  *service.ImageService
	manager *wardrobe.Manager
}

// execute runs the command line in args. The database and logger are released
// however the command ends, since cobra skips post-run hooks on error.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root, a := newRootCmd()
	defer a.close()

	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}

	root := &cobra.Command{
		Use:           "fitassistant",
		Short:         "Track your garments, body measurements and fit feedback",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "optional env file to load")
	root.PersistentFlags().BoolVar(&a.ephemeral, "ephemeral", false, "keep state in memory only")
	root.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "print JSON instead of text")

	root.AddCommand(
		newGarmentCmd(a),
		newProfileCmd(a),
		newUnitsCmd(a),
		newAssistantCmd(a),
	)
	return root, a
}

func (a *app) open(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.log = logger
	if a.log == nil {
		if a.log, err = applog.New(cfg.IsProduction()); err != nil {
			return err
		}
	}

	var kv repository.KV
	if a.ephemeral {
		kv = repository.NewMemoryStore()
	} else {
		database, err := db.Connect(ctx, cfg, a.log)
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		if err := db.RunMigrations(ctx, database, a.log); err != nil {
			database.Close()
			return fmt.Errorf("migrations failed: %w", err)
		}
		a.db = database
		kv = repository.NewSQLStore(database, cfg.DBDriver)
	}

	repo := repository.NewStateRepository(kv, a.log)
	a.images = service.NewImageService(cfg.MediaDir, a.log)

	a.manager, err = wardrobe.Load(ctx, repo, a.defaultProfile(),
		wardrobe.WithPersister(repo),
		wardrobe.WithImageStore(a.images),
		wardrobe.WithLogger(a.log),
	)
	if err != nil {
		a.close()
		return fmt.Errorf("failed to load wardrobe: %w", err)
	}
	return nil
}

func (a *app) defaultProfile() domain.UserProfile {
	p := domain.DefaultProfile()
	if a.cfg.ProfileName != "" {
		p.Name = a.cfg.ProfileName
	}
	if a.cfg.ProfileEmail != "" {
		p.Email = a.cfg.ProfileEmail
	}
	return p
}

func (a *app) close() error {
	var err error
	if a.db != nil {
		err = a.db.Close()
		a.db = nil
	}
	if a.log != nil {
		_ = a.log.Sync()
		a.log = nil
	}
	return err
}
