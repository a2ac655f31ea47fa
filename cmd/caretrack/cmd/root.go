// ABOUTME: Root command for the caretrack CLI
// ABOUTME: Handles global flags and shared client construction

package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/caretrack/caretrack-go/api"
	"github.com/caretrack/caretrack-go/cache"
	"github.com/caretrack/caretrack-go/client"
	"github.com/caretrack/caretrack-go/config"
	"github.com/caretrack/caretrack-go/logger"
	"github.com/caretrack/caretrack-go/session"
)

var (
	apiURL     string
	jsonOutput bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "caretrack",
	Short: "CLI for the CareTrack care coordination API",
	Long: `caretrack is a command-line interface for the CareTrack API.

It lets coordinators script common operations: managing carers, tasks,
shifts and invitations, without the web dashboard.

Environment Variables:
  CARETRACK_API_URL     Backend API URL (default: http://localhost:8080)
  CARETRACK_TOKEN_FILE  Persisted auth token location
  CACHE_TTL             Response cache TTL in seconds (default: 300)
  CACHE_CAPACITY        Response cache entry cap (default: 100)`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogging()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides CARETRACK_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// initLogging configures slog from the environment. A config error falls
// back to defaults here; newSDK surfaces it to the user.
func initLogging() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("info", "text")
		return
	}
	level := cfg.LogLevel
	if cfg.Debug {
		level = "debug"
	}
	logger.Init(level, cfg.LogFormat)
}

// GetAPIURL returns the API URL, flag over config (in priority order)
func GetAPIURL(cfg *config.Config) string {
	if apiURL != "" {
		return apiURL
	}
	return cfg.APIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// tokenStore resolves the persisted token location.
func tokenStore(cfg *config.Config) (*session.FileStore, error) {
	if cfg.TokenFile != "" {
		return session.NewFileStore(cfg.TokenFile), nil
	}
	path, err := session.DefaultTokenPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve token path: %w", err)
	}
	return session.NewFileStore(path), nil
}

// sdk holds the wired client stack for one command invocation.
type sdk struct {
	client  *client.Client
	session *session.Manager
	api     *api.API
	cache   *cache.Cache
	store   *session.FileStore
}

// newSDK builds the client, session manager, and service set from the
// loaded configuration.
func newSDK() (*sdk, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	store, err := tokenStore(cfg)
	if err != nil {
		return nil, err
	}

	rc := cache.New(cfg.CacheTTL(), cfg.CacheCapacity)
	opts := []client.Option{
		client.WithTokenStore(store),
		client.WithCache(rc),
	}
	if cfg.Singleflight {
		opts = append(opts, client.WithSingleflight())
	}

	c := client.New(GetAPIURL(cfg), opts...)
	return &sdk{
		client:  c,
		session: session.NewManager(c, store),
		api:     api.New(c),
		cache:   rc,
		store:   store,
	}, nil
}

func (s *sdk) close() {
	s.cache.Close()
}

// commandContext returns a context cancelled by SIGINT/SIGTERM with a
// generous deadline so scripted runs cannot hang.
func commandContext() (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	return ctx, func() {
		cancel()
		stop()
	}
}
