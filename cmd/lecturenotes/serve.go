package main

import (
	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/lecture-notes/internal/server"
	"github.com/nguyentantai21042004/lecture-notes/internal/session"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web app",
	Long: `Start the lecture notes web app.

The server provides:
  - /                  - Upload page, or the results of the last run
  - /download/notes.*  - notes.txt, notes.md and notes.docx exports
  - /api/session       - JSON view of the current session
  - /health            - Basic server health check
  - /metrics           - Prometheus metrics (telemetry.enabled)

Examples:
  lecturenotes serve                    # Start on the configured port
  lecturenotes serve --port 3000        # Start on custom port
  lecturenotes serve --host 0.0.0.0     # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("host") {
			cfg.Server.Host = serveHost
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}

		a, err := newApp(ctx, cfg, log)
		var setupErr error
		if err != nil {
			if !isConfigMissing(err) {
				return err
			}
			// Serve anyway so the page can explain what is missing.
			log.Error(ctx, "Uploads disabled: %v", err)
			setupErr = err
		}
		defer a.close(ctx)

		sessions, err := session.NewStore(ctx, cfg.Session)
		if err != nil {
			return err
		}
		defer sessions.Close()

		srv, err := server.New(server.Config{
			Host:        cfg.Server.Host,
			Port:        cfg.Server.Port,
			MaxUploadMB: cfg.Server.MaxUploadMB,
			TempDir:     cfg.Paths.Temp,
			Pipeline:    a.pipeline,
			Sessions:    sessions,
			Events:      a.events,
			Metrics:     a.telemetry.Handler(),
			SetupError:  setupErr,
			Logger:      log,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Host to bind to")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")

	rootCmd.AddCommand(serveCmd)
}
