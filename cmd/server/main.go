// Command server runs the storefront API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/kamaltrader/luxecraft/internal/app"
	"github.com/kamaltrader/luxecraft/internal/config"
	"github.com/kamaltrader/luxecraft/internal/logging"
	"github.com/kamaltrader/luxecraft/internal/security"
	log "github.com/sirupsen/logrus"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the exit code instead of exiting so the log file closer and
// the signal context are released on every path.
func run(args []string, stdout, stderr io.Writer) int {
	var (
		configPath   string
		migrateOnly  bool
		hashPassword string
	)
	flags := flag.NewFlagSet("server", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&configPath, "config", "", "path to the YAML config file (default $CONFIG_PATH or config.yaml)")
	flags.BoolVar(&migrateOnly, "migrate", false, "run migrations and seeding, then exit")
	flags.StringVar(&hashPassword, "hash-password", "", "print a bcrypt hash for ADMIN_PASSWORD_HASH and exit")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if hashPassword != "" {
		hash, err := security.HashAdminPassword(hashPassword)
		if err != nil {
			fmt.Fprintf(stderr, "hash password: %v\n", err)
			return 1
		}
		fmt.Fprintln(stdout, hash)
		return 0
	}

	config.LoadDotEnv()
	cfg, err := config.Load(config.ResolveConfigPath(configPath))
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return 1
	}
	logCloser, err := logging.Setup(cfg.Log)
	if err != nil {
		fmt.Fprintf(stderr, "setup logging: %v\n", err)
		return 1
	}
	defer logCloser.Close()

	if log.GetLevel() < log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if migrateOnly {
		if errMigrate := app.Migrate(ctx, cfg); errMigrate != nil {
			log.WithError(errMigrate).Error("migrate failed")
			return 1
		}
		log.Info("migration complete")
		return 0
	}

	if errRun := app.RunServer(ctx, cfg); errRun != nil && !errors.Is(errRun, context.Canceled) {
		log.WithError(errRun).Error("server stopped")
		return 1
	}
	return 0
}
