package commands

import (
	"context"
	"fmt"
	"os"

	"tutorai-be/internal/pkg/logger"
	"tutorai-be/pkg/storage"
	"tutorai-be/pkg/tutor/dispatch"
	"tutorai-be/pkg/tutor/workspace"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	baseURL    string
	sqlitePath string
	owner      string
	logPath    string
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:          "tutorchat",
		Short:        "Terminal client for the TutorAI backend",
		Long:         `tutorchat keeps chat sessions, course progress and the uploaded PDF in a local SQLite file and talks to a TutorAI server for answers.`,
		SilenceUsage: true,
		RunE:         runChat,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "server", envOr("TUTOR_BASE_URL", "http://localhost:5000"), "TutorAI server base URL")
	rootCmd.PersistentFlags().StringVar(&sqlitePath, "db", envOr("SQLITE_PATH", "tutorchat.db"), "SQLite file holding local state")
	rootCmd.PersistentFlags().StringVar(&owner, "user", envOr("TUTOR_USER", "local"), "Workspace owner")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", envOr("LOG_FILE_PATH", "logs/tutorchat.log"), "Log file")

	rootCmd.AddCommand(NewChatCommand())
	rootCmd.AddCommand(NewSessionsCommand())
	rootCmd.AddCommand(NewNewCommand())
	rootCmd.AddCommand(NewSwitchCommand())
	rootCmd.AddCommand(NewDeleteCommand())
	rootCmd.AddCommand(NewUploadCommand())
	rootCmd.AddCommand(NewCoursesCommand())
	rootCmd.AddCommand(NewLogoutCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// openWorkspace loads the local workspace. The returned func closes the
// SQLite file and flushes the log.
func openWorkspace(ctx context.Context) (*workspace.Workspace, func(), error) {
	backend, err := storage.NewSQLiteBackend(sqlitePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open local store: %w", err)
	}

	log := logger.NewFileLogger(logPath)
	client := dispatch.NewHTTPClient(baseURL)
	ws := workspace.Open(ctx, owner, backend, client, client, log)

	closeFn := func() {
		printWarnings(ws.DrainWarnings())
		_ = backend.Close()
		_ = log.Sync()
	}
	return ws, closeFn, nil
}
