// Command localtoolkit is an MCP stdio server exposing macOS automation
// tools: AppleScript execution, Mail, Messages, Contacts, Notes, Reminders,
// Calendar, process management and sandboxed filesystem access.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/localtoolkit/localtoolkit/internal/applescript"
	"github.com/localtoolkit/localtoolkit/internal/calendar"
	"github.com/localtoolkit/localtoolkit/internal/config"
	"github.com/localtoolkit/localtoolkit/internal/contacts"
	"github.com/localtoolkit/localtoolkit/internal/filesystem"
	"github.com/localtoolkit/localtoolkit/internal/logging"
	"github.com/localtoolkit/localtoolkit/internal/mail"
	"github.com/localtoolkit/localtoolkit/internal/messages"
	"github.com/localtoolkit/localtoolkit/internal/notes"
	"github.com/localtoolkit/localtoolkit/internal/process"
	"github.com/localtoolkit/localtoolkit/internal/reminders"
)

const version = "1.0.0"

func main() {
	var (
		configPath string
		verbose    bool
	)

	root := &cobra.Command{
		Use:     "localtoolkit",
		Short:   "MCP server for macOS automation tools",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(configPath, verbose)
		},
	}
	root.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	root.Flags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve(configPath string, verbose bool) error {
	// .env is optional; missing files are not an error.
	if err := godotenv.Load(); err == nil {
		logging.Info("main", "loaded .env file")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if verbose || cfg.Debug {
		logging.SetDebug(true)
	}

	logging.Info("main", "starting localtoolkit MCP server v%s", version)

	s := server.NewMCPServer("localtoolkit", version,
		server.WithToolCapabilities(true),
	)

	runner := applescript.NewRunner()
	runner.Timeout = cfg.DefaultTimeout()
	policy := filesystem.NewPolicy(cfg.Filesystem)

	applescript.RegisterTools(s, runner)
	mail.RegisterTools(s, runner)
	messages.RegisterTools(s, runner)
	contacts.RegisterTools(s, runner)
	notes.RegisterTools(s, runner)
	reminders.RegisterTools(s, runner)
	calendar.RegisterTools(s, runner)
	process.RegisterTools(s)
	filesystem.RegisterTools(s, policy)

	logging.Info("main", "serving on stdio")
	if err := server.ServeStdio(s); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
