package prime

import (
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mdrtools/cacheprimer/config"
	"github.com/mdrtools/cacheprimer/engine"
	"github.com/mdrtools/cacheprimer/fetch"
	"github.com/mdrtools/cacheprimer/filter"
	"github.com/mdrtools/cacheprimer/limiter"
	cLog "github.com/mdrtools/cacheprimer/log"
	"github.com/mdrtools/cacheprimer/normalize"
	"github.com/mdrtools/cacheprimer/proxy"
	"github.com/mdrtools/cacheprimer/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"
)

var (
	apiKey    string
	baseURL   string
	resource  string
	logFile   string
	logDir    string
	mediaType string
	verbose   bool
	filters   string
	workers   int
	dsn       string
	linkKey   string
)

var PrimeCmd = &cobra.Command{
	Use:   "prime",
	Short: "crawl every reachable linked resource and cache it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd)
	},
}

func init() {
	PrimeCmd.Flags().StringVarP(&apiKey, "api_key", "a", "", "API key sent with each request")
	PrimeCmd.Flags().StringVarP(&baseURL, "base_url", "b", "", "API base URL")
	PrimeCmd.Flags().StringVarP(&resource, "resource", "r", "", "starting API resource")
	PrimeCmd.Flags().StringVarP(&logFile, "log_file", "l", "", "log file name")
	PrimeCmd.Flags().StringVarP(&logDir, "log_dir", "d", "", "directory for logs, filter file, and visited file")
	PrimeCmd.Flags().StringVarP(&mediaType, "media_type", "m", "", "Accept media type")
	PrimeCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log rejected links")
	PrimeCmd.Flags().StringVarP(&filters, "filter", "f", "", "filter file name, resolved under log_dir")
	PrimeCmd.Flags().IntVar(&workers, "workers", 0, "concurrent fetch workers")
	PrimeCmd.Flags().StringVar(&dsn, "dsn", "", "MySQL DSN for a shared visited set")
	PrimeCmd.Flags().StringVar(&linkKey, "link-key", "", "key holding links in API responses")
	cobra.CheckErr(PrimeCmd.MarkFlagRequired("api_key"))
}

func Run(cmd *cobra.Command) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	logger, closer, err := buildLogger(settings)
	if err != nil {
		return err
	}
	defer closer.Close()
	defer logger.Sync()

	// fail fast: an unknown media type aborts before any traversal
	normalizer, err := normalize.New(settings.MediaType)
	if err != nil {
		logger.Error("media type rejected", zap.Error(err))
		return err
	}
	filterEngine, err := filter.Load(filepath.Join(settings.LogDir, settings.FilterFile))
	if err != nil {
		logger.Error("filter load failed", zap.Error(err))
		return err
	}
	visited, err := buildStore(settings, logger)
	if err != nil {
		logger.Error("visited store init failed", zap.Error(err))
		return err
	}
	fetcher, err := buildFetcher(settings)
	if err != nil {
		logger.Error("fetcher init failed", zap.Error(err))
		return err
	}

	crawler, err := engine.NewCrawler(
		engine.WithLogger(logger),
		engine.WithFetcher(fetcher),
		engine.WithFilters(filterEngine),
		engine.WithNormalizer(normalizer),
		engine.WithStore(visited),
		engine.WithResource(settings.Resource),
		engine.WithLinkKey(settings.LinkKey),
		engine.WithWorkCount(settings.WorkCount),
		engine.WithVerbose(verbose),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return crawler.Run(ctx)
}

func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	dir := logDir
	if dir == "" {
		dir = config.Default().LogDir
	}
	settings, err := config.Load(dir)
	if err != nil {
		return settings, err
	}
	settings.LogDir = dir

	flagOverrides := map[string]*string{
		"base_url":   &settings.BaseURL,
		"resource":   &settings.Resource,
		"log_file":   &settings.LogFile,
		"media_type": &settings.MediaType,
		"filter":     &settings.FilterFile,
		"dsn":        &settings.DSN,
		"link-key":   &settings.LinkKey,
	}
	values := map[string]string{
		"base_url":   baseURL,
		"resource":   resource,
		"log_file":   logFile,
		"media_type": mediaType,
		"filter":     filters,
		"dsn":        dsn,
		"link-key":   linkKey,
	}
	for name, target := range flagOverrides {
		if cmd.Flags().Changed(name) {
			*target = values[name]
		}
	}
	if cmd.Flags().Changed("workers") {
		settings.WorkCount = workers
	}
	return settings, nil
}

func buildLogger(settings config.Settings) (*zap.Logger, io.Closer, error) {
	level, err := zapcore.ParseLevel(settings.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	plugin, closer := cLog.NewTeePlugin(filepath.Join(settings.LogDir, settings.LogFile), level)
	logger := cLog.NewLogger(plugin)
	zap.ReplaceGlobals(logger)
	return logger, closer, nil
}

func buildStore(settings config.Settings, logger *zap.Logger) (store.VisitedStore, error) {
	if settings.DSN != "" {
		return store.NewSQLStore(
			store.WithDSN(settings.DSN),
			store.WithLogger(logger),
		)
	}
	return store.NewFileStore(filepath.Join(settings.LogDir, settings.VisitedFile)), nil
}

func buildFetcher(settings config.Settings) (fetch.Fetcher, error) {
	opts := []fetch.Option{
		fetch.WithBaseURL(settings.BaseURL),
		fetch.WithAPIKey(apiKey),
		fetch.WithMediaType(settings.MediaType),
		fetch.WithTimeout(time.Duration(settings.TimeoutSeconds) * time.Second),
	}
	if len(settings.Limits) > 0 {
		limits := make([]limiter.RateLimiter, 0, len(settings.Limits))
		for _, l := range settings.Limits {
			limits = append(limits, rate.NewLimiter(
				limiter.Per(l.EventCount, time.Duration(l.EventDur)*time.Second), l.Bucket))
		}
		opts = append(opts, fetch.WithLimit(limiter.Multi(limits...)))
	}
	if len(settings.Proxies) > 0 {
		p, err := proxy.RoundRobin(settings.Proxies...)
		if err != nil {
			return nil, err
		}
		opts = append(opts, fetch.WithProxy(p))
	}
	return fetch.NewLibraryFetch(opts...), nil
}
