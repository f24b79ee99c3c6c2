// Command sedia-fetch fetches all pages of a SEDIA search query and writes
// the aggregated payloads as a JSON array to stdout.
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/tendertrack/sedia-client/pkg/client"
	"github.com/tendertrack/sedia-client/pkg/config"
	"github.com/tendertrack/sedia-client/pkg/logging"
	"github.com/tendertrack/sedia-client/pkg/paginate"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Error().Err(err).Msg("sedia-fetch failed")
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "sedia-fetch",
		Usage: "Fetch paginated results from the EU funding & tenders search API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "text",
				Aliases: []string{"t"},
				Usage:   "Search query text; positional arg is a fallback",
			},
			&cli.DurationFlag{
				Name:  "delay",
				Usage: "Wait between page requests",
			},
			&cli.IntFlag{
				Name:  "page-size",
				Usage: "Results per page",
			},
			&cli.BoolFlag{
				Name:  "notices",
				Usage: "Output extracted English-language notices instead of raw pages",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Minimum log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Human-readable console logging",
			},
			&cli.StringFlag{
				Name:    "metrics-addr",
				Usage:   "Address to serve Prometheus metrics on while fetching (e.g. :9090)",
				EnvVars: []string{"METRICS_ADDR"},
			},
		},
		Action: runAction,
	}
}

func runAction(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Flags override the environment.
	if c.IsSet("page-size") {
		cfg.PageSize = c.Int("page-size")
	}
	if c.IsSet("delay") {
		cfg.Delay = c.Duration("delay")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.LogLevel),
		Pretty: c.Bool("pretty"),
		Output: os.Stderr,
	})

	if addr := c.String("metrics-addr"); addr != "" {
		go serveMetrics(addr)
	}

	searchText := strings.TrimSpace(c.String("text"))
	if searchText == "" && c.NArg() > 0 {
		searchText = strings.TrimSpace(c.Args().First())
	}

	sediaClient, err := client.New(cfg)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	driver := paginate.NewDriver(sediaClient, paginate.Config{
		PageSize: cfg.PageSize,
		Delay:    cfg.Delay,
	})

	pages := driver.FetchAllPages(c.Context, searchText)

	var output any = pages
	if c.Bool("notices") {
		output = client.ExtractNotices(pages)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info().Str("addr", addr).Msg("Serving metrics")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Warn().Err(err).Msg("Metrics server stopped")
	}
}
