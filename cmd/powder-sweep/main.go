package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"powder/internal/logging"
	"powder/internal/observability"
	"powder/internal/sims/powder"
)

func main() {
	steps := flag.Int("steps", 300, "ticks to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	width := flag.Int("w", 120, "grid width")
	height := flag.Int("h", 90, "grid height")
	seeds := flag.Int("seeds", 4, "seeds per scene")
	scenes := flag.String("scenes", strings.Join(powder.SceneNames(), ","), "comma separated scenes to sweep")
	check := flag.Bool("check", false, "validate the grid after every tick")
	metricsAddr := flag.String("metrics-addr", "", "serve Prometheus metrics on this address while sweeping")
	flag.Parse()

	log := logging.NewFromEnv()

	var collector *observability.TickCollector
	var observer powder.Observer
	if *metricsAddr != "" {
		var err error
		collector, err = observability.NewTickCollector(prometheus.NewRegistry())
		if err != nil {
			log.Error("metrics setup failed", logging.Err(err))
			os.Exit(1)
		}
		observer = collector
		srv := &http.Server{Addr: *metricsAddr, Handler: collector.Handler(), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server stopped", logging.Err(err))
			}
		}()
		defer srv.Close()
		log.Info("serving metrics", logging.String("addr", *metricsAddr))
	}

	base := powder.DefaultConfig()
	base.Width = *width
	base.Height = *height
	base.CheckInvariants = *check

	var sets []scenario
	for _, name := range strings.Split(*scenes, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		for s := 1; s <= *seeds; s++ {
			sets = append(sets, scenario{scene: name, seed: int64(s)})
		}
	}

	fmt.Printf("Sweeping %d scenarios (%d workers, %d steps, %dx%d)\n", len(sets), *workers, *steps, *width, *height)

	all := sweep(base, sets, *steps, *workers, observer)

	sort.Slice(all, func(i, j int) bool {
		if all[i].scenario.scene != all[j].scenario.scene {
			return all[i].scenario.scene < all[j].scenario.scene
		}
		return all[i].scenario.seed < all[j].scenario.seed
	})
	for _, res := range all {
		perTick := time.Duration(0)
		if *steps > 0 {
			perTick = res.elapsed / time.Duration(*steps)
		}
		fmt.Printf("%-22s live %5d -> %5d (peak %5d) moves=%d reactions=%d decays=%d tick=%s digest=%016x\n",
			res.scenario, res.initial, res.final, res.peak, res.moves, res.totalReactions(), res.decays,
			perTick.Round(time.Microsecond), res.digest)
	}
}

// sweep fans the scenarios out over a fixed pool of workers.
func sweep(base powder.Config, sets []scenario, steps, workers int, obs powder.Observer) []scenarioResult {
	if workers <= 0 {
		workers = 1
	}
	jobs := make(chan scenario)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sc := range jobs {
				results <- runScenario(base, sc, steps, obs)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, sc := range sets {
			jobs <- sc
		}
		close(jobs)
	}()

	var all []scenarioResult
	for res := range results {
		all = append(all, res)
	}
	return all
}
