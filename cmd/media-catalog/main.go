package main

import (
	"context"
	"fmt"
	"log"
	"media-catalog/internal"
	"media-catalog/internal/auth"
	"media-catalog/internal/http"
	"media-catalog/internal/jsonfile"
	"media-catalog/internal/postgres"
	"media-catalog/internal/service"
	"media-catalog/internal/sqlite"
	"os"
	"syscall"
	"time"

	"cloud.google.com/go/compute/metadata"
	"github.com/kelseyhightower/envconfig"
	"github.com/twitsprout/tools"
	"github.com/twitsprout/tools/clock"
	httputils "github.com/twitsprout/tools/http"
	"github.com/twitsprout/tools/lifecycle"
	"github.com/twitsprout/tools/zap"
)

var version string

type variables struct {
	Addr         string        `required:"true" envconfig:"addr"`
	AppName      string        `required:"true" envconfig:"app_name"`
	LogLevel     string        `required:"false" envconfig:"log_level"`
	StoreDriver  string        `required:"false" envconfig:"store_driver" default:"file"`
	DataDir      string        `required:"false" envconfig:"data_dir" default:"data"`
	SQLitePath   string        `required:"false" envconfig:"sqlite_path" default:"data/catalog.db"`
	SeedDir      string        `required:"false" envconfig:"seed_dir"`
	PostgresHost string        `required:"false" envconfig:"postgres_host"`
	PostgresPort int           `required:"false" envconfig:"postgres_port"`
	PostgresDB   string        `required:"false" envconfig:"postgres_db"`
	PostgresUser string        `required:"false" envconfig:"postgres_user"`
	PostgresPass string        `required:"false" envconfig:"postgres_pass"`
	TokenSecret  string        `required:"true" envconfig:"token_secret"`
	TokenTTL     time.Duration `required:"false" envconfig:"token_ttl" default:"12h"`
}

var v variables

func init() {
	if metadata.OnGCE() {
		port := os.Getenv("PORT")
		err := os.Setenv("ADDR", ":"+port)
		if err != nil {
			log.Fatal(err)
		}
	}

	envconfig.MustProcess("media-catalog", &v)
	if v.LogLevel == "" {
		v.LogLevel = "info"
	}
}

func main() {
	logger := zap.New(v.AppName, version, os.Stdout)
	if err := logger.SetLevel(v.LogLevel); err != nil {
		logger.Error("failed to set log level", "error", err.Error())
	}

	ctx := context.Background()

	store, err := newStore(ctx, v, logger)
	if err != nil {
		logger.Error("failed to open store",
			"driver", v.StoreDriver,
			"details", err.Error(),
		)
		os.Exit(1)
	}
	defer store.Close()

	lc, ctx := lifecycle.New(ctx, logger)
	lc.Start("media-catalog root context", func() error {
		<-ctx.Done()
		return ctx.Err()
	})

	h := http.Handler{
		Logger:  logger,
		Version: version,
		AppName: v.AppName,
		Catalog: service.New(store, logger),
		Tokens: &auth.Tokens{
			Secret: []byte(v.TokenSecret),
			TTL:    v.TokenTTL,
			Issuer: v.AppName,
			Clock:  &clock.Default{},
		},
	}
	server := httputils.NewServer(v.Addr, h.Handler())
	lc.StartServer(server)
	lc.StartSignals(syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	_ = lc.Wait(15 * time.Second)
}

func newStore(ctx context.Context, v variables, logger tools.Logger) (internal.Store, error) {
	switch v.StoreDriver {
	case "file":
		s, err := jsonfile.New(v.DataDir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "sqlite":
		s, err := sqlite.Open(v.SQLitePath)
		if err != nil {
			return nil, err
		}
		if v.SeedDir != "" {
			if err := seedSQLite(ctx, s, v.SeedDir, logger); err != nil {
				s.Close()
				return nil, err
			}
		}
		return s, nil
	case "postgres":
		pg, err := newPostgres(v, nil)
		if err != nil {
			return nil, err
		}
		return pg, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", v.StoreDriver)
	}
}

func newPostgres(v variables, sc tools.StatsClient) (*postgres.Postgres, error) {
	pgConfig := postgres.Config{
		Host:       v.PostgresHost,
		Name:       v.PostgresDB,
		Password:   v.PostgresPass,
		Username:   v.PostgresUser,
		DisableSSL: true,
	}
	// Only use a Postgres port if one was provided
	if v.PostgresPort > 0 {
		pgConfig.Port = v.PostgresPort
	}
	return postgres.New(pgConfig, sc)
}

// seedSQLite replaces the SQLite contents with the JSON collections in dir.
func seedSQLite(ctx context.Context, dst *sqlite.Store, dir string, logger tools.Logger) error {
	src, err := jsonfile.New(dir)
	if err != nil {
		return err
	}
	photos, err := src.ListPhotos(ctx)
	if err != nil {
		return err
	}
	albums, err := src.ListAlbums(ctx)
	if err != nil {
		return err
	}
	users, err := src.ListUsers(ctx)
	if err != nil {
		return err
	}
	courses, err := src.ListCourses(ctx)
	if err != nil {
		return err
	}
	if err := dst.Seed(ctx, photos, albums, users, courses); err != nil {
		return err
	}
	logger.Info("seeded sqlite store",
		"seed_dir", dir,
		"photos", len(photos),
		"albums", len(albums),
		"users", len(users),
		"courses", len(courses),
	)
	return nil
}
