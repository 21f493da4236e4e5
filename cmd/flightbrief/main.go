package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/jonboulle/clockwork"

	"github.com/flightbrief/flightbrief/internal/config"
	"github.com/flightbrief/flightbrief/internal/fetch"
	"github.com/flightbrief/flightbrief/internal/render"
	"github.com/flightbrief/flightbrief/internal/store"
	"github.com/flightbrief/flightbrief/wx"
)

type app struct {
	cfg      *config.Config
	client   *fetch.Client
	cache    *store.Store
	renderer *render.Renderer
	clock    clockwork.Clock
	logger   *slog.Logger

	refresh bool
	offline bool
	noRaw   bool
}

func main() {
	metarOnly := flag.Bool("metar", false, "Show only METAR")
	tafOnly := flag.Bool("taf", false, "Show only TAF")
	noRaw := flag.Bool("no-raw", false, "Hide raw data")
	noColor := flag.Bool("no-color", false, "Disable color output")
	refresh := flag.Bool("refresh", false, "Skip the cache and fetch fresh data")
	offline := flag.Bool("offline", false, "Use cached data only, however stale")
	flag.Parse()

	if *noColor {
		color.NoColor = true // disables colorized output globally
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)
	clock := clockwork.NewRealClock()

	a := &app{
		cfg:      cfg,
		client:   fetch.NewClient(cfg.BaseURL, cfg.FetchTimeout, cfg.FetchRetries, logger),
		renderer: render.New(os.Stdout, clock),
		clock:    clock,
		logger:   logger,
		refresh:  *refresh,
		offline:  *offline,
		noRaw:    *noRaw,
	}

	if cache, err := openCache(cfg); err != nil {
		logger.Warn("cache unavailable", "error", err)
	} else {
		a.cache = cache
		defer cache.Close()
	}

	// Piped input decodes directly, no fetching.
	if rawInput, ok := readFromStdin(); ok {
		a.decodeRaw(rawInput)
		return
	}

	station, err := stationCode(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !*tafOnly {
		a.processMETAR(station)
	}
	if !*metarOnly {
		if !*tafOnly {
			fmt.Println("\n----------------------------------")
			fmt.Println()
		}
		a.processTAF(station)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func openCache(cfg *config.Config) (*store.Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, err
	}
	return store.Open(filepath.Join(cfg.DataDir, "flightbrief.db"), cfg.CacheTTL)
}

// readFromStdin reads a raw report when one is piped in.
func readFromStdin() (string, bool) {
	info, err := os.Stdin.Stat()
	if err != nil || info.Mode()&os.ModeCharDevice != 0 {
		return "", false
	}

	scanner := bufio.NewScanner(os.Stdin)
	var lines []string
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return "", false
	}
	return strings.Join(lines, "\n"), true
}

// stationCode takes the ICAO code from the arguments or prompts for one.
func stationCode(args []string) (string, error) {
	if len(args) > 0 {
		return validStation(args[0])
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Enter ICAO airport code (e.g., KJFK, EGLL): ")
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("error reading input: %w", err)
	}
	return validStation(input)
}

func validStation(s string) (string, error) {
	station := strings.ToUpper(strings.TrimSpace(s))
	if len(station) != 4 {
		return "", fmt.Errorf("invalid station code: must be 4 characters")
	}
	return station, nil
}

// decodeRaw handles piped input: a TAF when it announces itself, otherwise a
// METAR.
func (a *app) decodeRaw(raw string) {
	now := a.clock.Now().UTC()

	if strings.HasPrefix(strings.TrimSpace(raw), "TAF") {
		rec, err := wx.DecodeTAF(raw, now, "")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		a.showRaw("Raw TAF", raw)
		fmt.Println("\nDecoded TAF:")
		a.renderer.TAF(rec)
		return
	}

	rec, err := wx.DecodeMETAR(raw, now, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	a.showRaw("Raw METAR", raw)
	fmt.Println("\nDecoded METAR:")
	a.renderer.METAR(rec)
}

// processMETAR fetches (or recalls), decodes and displays the METAR.
func (a *app) processMETAR(station string) {
	rec, err := a.getMETAR(station)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	a.showRaw("Raw METAR", rec.Raw)
	fmt.Println("\nDecoded METAR:")
	a.renderer.METAR(rec)
}

func (a *app) getMETAR(station string) (*wx.METAR, error) {
	if a.offline {
		if a.cache == nil {
			return nil, fmt.Errorf("offline mode requires a cache")
		}
		rec, _, err := a.cache.METAR(station)
		return rec, err
	}

	if !a.refresh && a.cache != nil {
		if rec, err := a.cache.FreshMETAR(station); err == nil {
			a.logger.Info("using cached METAR", "station", station)
			return rec, nil
		}
	}

	raw, err := a.client.METAR(context.Background(), station)
	if err != nil {
		// Fall back to a stale cache entry when the network is down.
		if a.cache != nil {
			if rec, _, cacheErr := a.cache.METAR(station); cacheErr == nil {
				a.logger.Warn("fetch failed, using stale cached METAR", "station", station, "error", err)
				return rec, nil
			}
		}
		return nil, err
	}

	rec, err := wx.DecodeMETAR(raw, a.clock.Now().UTC(), "")
	if err != nil {
		return nil, err
	}
	if a.cache != nil {
		if err := a.cache.SaveMETAR(rec); err != nil {
			a.logger.Warn("failed to cache METAR", "station", station, "error", err)
		}
	}
	return rec, nil
}

// processTAF fetches (or recalls), decodes and displays the TAF.
func (a *app) processTAF(station string) {
	rec, err := a.getTAF(station)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	a.showRaw("Raw TAF", rec.Raw)
	fmt.Println("\nDecoded TAF:")
	a.renderer.TAF(rec)
}

func (a *app) getTAF(station string) (*wx.TAF, error) {
	if a.offline {
		if a.cache == nil {
			return nil, fmt.Errorf("offline mode requires a cache")
		}
		rec, _, err := a.cache.TAF(station)
		return rec, err
	}

	if !a.refresh && a.cache != nil {
		if rec, err := a.cache.FreshTAF(station); err == nil {
			a.logger.Info("using cached TAF", "station", station)
			return rec, nil
		}
	}

	raw, err := a.client.TAF(context.Background(), station)
	if err != nil {
		if a.cache != nil {
			if rec, _, cacheErr := a.cache.TAF(station); cacheErr == nil {
				a.logger.Warn("fetch failed, using stale cached TAF", "station", station, "error", err)
				return rec, nil
			}
		}
		return nil, err
	}

	rec, err := wx.DecodeTAF(raw, a.clock.Now().UTC(), "")
	if err != nil {
		return nil, err
	}
	if a.cache != nil {
		if err := a.cache.SaveTAF(rec); err != nil {
			a.logger.Warn("failed to cache TAF", "station", station, "error", err)
		}
	}
	return rec, nil
}

func (a *app) showRaw(label, raw string) {
	if a.noRaw {
		return
	}
	fmt.Printf("\n%s:\n%s\n", label, raw)
}
