// Command econsim runs the tick-driven Leontief economic simulation
// core: load a scenario, advance it, periodically snapshot to SQLite.
// Structure mirrors the teacher's cmd/worldsim/main.go — tint-colored
// slog setup, open-or-create the database, load the scenario file,
// wire an interrupt handler, run, save on exit.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/lmittmann/tint"

	"github.com/nivenhall/econsim/internal/metrics"
	"github.com/nivenhall/econsim/internal/persistence"
	"github.com/nivenhall/econsim/internal/scenario"
	"github.com/nivenhall/econsim/internal/scheduler"
	"github.com/nivenhall/econsim/internal/worldstate"
)

func main() {
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	})))

	scenarioPath := flag.String("scenario", "scenarios/default.json", "path to scenario JSON")
	dbPath := flag.String("db", "data/econsim.db", "path to SQLite state database")
	ticks := flag.Int("ticks", 520, "number of weekly ticks to advance (0 = run until interrupted)")
	saveEvery := flag.Int("save-every", 52, "snapshot to the database every N ticks")
	metricsAddr := flag.String("metrics-addr", "", "if set, serve Prometheus metrics on this address (e.g. :9090)")
	flag.Parse()

	os.MkdirAll("data", 0755)

	db, err := persistence.Open(*dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", *dbPath)

	state, err := loadScenario(*scenarioPath)
	if err != nil {
		slog.Error("failed to load scenario", "path", *scenarioPath, "error", err)
		os.Exit(1)
	}
	slog.Info("scenario loaded",
		"countries", len(state.Countries),
		"regions", len(state.Regions),
		"factions", len(state.Factions),
	)

	if *metricsAddr != "" {
		metrics.Init()
		go serveMetrics(*metricsAddr)
		slog.Info("metrics server started", "addr", *metricsAddr)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	interrupted := make(chan struct{})
	go func() {
		sig := <-stop
		slog.Info("received signal, stopping after current tick", "signal", sig)
		close(interrupted)
	}()

	fmt.Printf("Advancing %s-tick run across %s countries (Ctrl+C to stop early)\n",
		humanize.Comma(int64(*ticks)), humanize.Comma(int64(len(state.Countries))))

	advanced := 0
	for *ticks == 0 || advanced < *ticks {
		select {
		case <-interrupted:
			goto done
		default:
		}

		if err := scheduler.Advance(state, 1); err != nil {
			slog.Error("tick failed", "tick", state.Tick, "error", err)
			break
		}
		advanced++

		if *metricsAddr != "" {
			metrics.RecordTick(state)
		}

		if *saveEvery > 0 && advanced%*saveEvery == 0 {
			if err := db.SaveState(state); err != nil {
				slog.Error("periodic save failed", "tick", state.Tick, "error", err)
			} else {
				slog.Info("snapshot saved", "tick", state.Tick)
			}
		}
	}
done:

	slog.Info("final save")
	if err := db.SaveState(state); err != nil {
		slog.Error("final save failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Stopped at tick %s. %s diagnostics recorded.\n",
		humanize.Comma(int64(state.Tick)), humanize.Comma(int64(state.Diagnostics.Len())))
}

func loadScenario(path string) (*worldstate.State, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return scenario.Load(f)
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("metrics server stopped", "error", err)
	}
}
