package main

import (
	"github.com/KarpovAlexandrGo/todo-service/internal/app"
	"github.com/KarpovAlexandrGo/todo-service/internal/config"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configDir string

	loadConfig := func() (*config.Config, error) {
		if configDir == "" {
			return config.Load()
		}
		return config.Load(configDir)
	}

	root := &cobra.Command{
		Use:   "todo-service",
		Short: "HTTP API for todo lists and tasks",
		Long: `todo-service serves a JSON API for todo lists and tasks.

Configuration is read from configs/config.yaml and environment variables
(HTTP_PORT, STORAGE_DRIVER, POSTGRES_DSN, SQLITE_PATH, CACHE_ENABLED, ...).
Environment variables take precedence over the file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configDir, "config-dir", "", "directory with config.yaml (default ./configs)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return app.Migrate(cmd.Context(), cfg)
		},
	}

	// без подкоманды запускаем сервер
	root.RunE = serveCmd.RunE
	root.AddCommand(serveCmd, migrateCmd)
	return root
}

func serve(cfg *config.Config) error {
	a, err := app.NewApp(cfg)
	if err != nil {
		return err
	}

	// Регистрация Swagger
	a.Server.Handler = setupSwagger(a.Server.Handler)

	return a.Run()
}
