package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/mpdigest/pkg/batch"
	"github.com/umputun/mpdigest/pkg/config"
	"github.com/umputun/mpdigest/pkg/content"
	"github.com/umputun/mpdigest/pkg/feed"
	"github.com/umputun/mpdigest/pkg/llm"
	"github.com/umputun/mpdigest/pkg/repository"
	"github.com/umputun/mpdigest/pkg/service"
	"github.com/umputun/mpdigest/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"configuration file"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	SetupLog(opts.Debug)
	lgr.Printf("[INFO] starting mpdigest version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()
	if err != nil {
		lgr.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	lgr.Print("[INFO] shutdown complete")
}

// run loads configuration, wires all components together and runs the http server until ctx is canceled
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}

	// api key must never show up in logs
	SetupLog(opts.Debug, cfg.LLM.APIKey)

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close database: %v", err)
		}
	}()
	store := service.NewStore(repos)

	ext := cfg.GetExtractionConfig()
	extractor := content.NewPageExtractor(content.ExtractorConfig{
		MaxContentLength:    ext.MaxContentLength,
		MinContentLength:    ext.MinContentLength,
		ReadabilityFallback: ext.ReadabilityFallback,
	})
	pageFetcher := content.NewHTTPFetcher(extractor, content.FetcherConfig{
		Timeout:     ext.Timeout,
		UserAgent:   ext.UserAgent,
		MaxBodySize: ext.MaxBodySize,
	})
	batchCfg := cfg.GetBatchConfig()
	batchFetcher := content.NewBatchFetcher(pageFetcher, content.BatchConfig{
		Host:        ext.Host,
		PathPrefix:  ext.PathPrefix,
		WindowSize:  batchCfg.WindowSize,
		WindowDelay: batchCfg.WindowDelay,
	})

	summarizer, err := llm.NewSummarizer(cfg.GetLLMConfig())
	if err != nil {
		return fmt.Errorf("failed to create summarizer: %w", err)
	}

	feedParser := feed.NewParser(batchCfg.FeedTimeout, "")

	processor := batch.NewProcessor(batchFetcher, summarizer, store, feedParser, batch.Config{
		MaxURLs:        batchCfg.MaxURLs,
		DefaultAccount: batchCfg.DefaultAccount,
		ArticleDelay:   batchCfg.ArticleDelay,
	})

	lgr.Printf("[INFO] batch limits: max %d urls, window %d, window delay %v, article delay %v",
		batchCfg.MaxURLs, batchCfg.WindowSize, batchCfg.WindowDelay, batchCfg.ArticleDelay)

	srv := server.New(cfg, store, processor, revision, opts.Debug)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// SetupLog configures lgr and the std logger, secrets are masked in the output
func SetupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))

	var secrets []string
	for _, s := range secs {
		if s != "" {
			secrets = append(secrets, s)
		}
	}
	if len(secrets) > 0 {
		logOpts = append(logOpts, lgr.Secret(secrets...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
