// Headless benchmark harness: runs the same flock under different
// optimization combinations and reports tick timings side by side.
//
// Usage: go run ./cmd/bench --ticks 2000 --size 4000 --output results.csv
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/game"
)

// scenario is one benchmark configuration, applied on top of a base config
// with every optimization switched off.
type scenario struct {
	name  string
	apply func(*config.Config)
}

var scenarios = []scenario{
	{"baseline", func(c *config.Config) {}},
	{"spatial", func(c *config.Config) {
		c.Optimizations.Spatial.Enabled = true
	}},
	{"spatial+morton", func(c *config.Config) {
		c.Optimizations.Spatial.Enabled = true
		c.Optimizations.CacheOrder.Enabled = true
	}},
	{"wheel", func(c *config.Config) {
		c.Optimizations.Scheduler.Enabled = true
	}},
	{"hierarchy", func(c *config.Config) {
		c.Optimizations.Hierarchy.Enabled = true
	}},
	{"spatial+perception", func(c *config.Config) {
		c.Optimizations.Spatial.Enabled = true
		c.Optimizations.Perception.Enabled = true
	}},
	{"full", func(c *config.Config) {
		c.Optimizations.Spatial.Enabled = true
		c.Optimizations.CacheOrder.Enabled = true
		c.Optimizations.Hierarchy.Enabled = true
		c.Optimizations.Perception.Enabled = true
		c.Optimizations.Influence.Enabled = true
		c.Optimizations.Field.Enabled = true
		c.Optimizations.Batching.Enabled = true
	}},
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	ticks := flag.Int("ticks", 2000, "Ticks to simulate per scenario")
	size := flag.Int("size", 0, "Flock size override (0 = config value)")
	seed := flag.Int64("seed", 42, "RNG seed shared by all scenarios")
	output := flag.String("output", "", "CSV output path (empty = stdout table only)")
	flag.Parse()

	var rows [][]string
	rows = append(rows, []string{"scenario", "avg_tick_us", "min_tick_us", "max_tick_us", "ticks_per_sec"})

	fmt.Printf("%-22s %12s %12s\n", "scenario", "avg tick", "ticks/sec")

	for _, sc := range scenarios {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		disableAll(cfg)
		sc.apply(cfg)
		if *size > 0 {
			cfg.Flock.Size = *size
		}
		// One long perf window so Stats covers the whole run.
		cfg.Telemetry.PerfWindow = *ticks
		cfg.Telemetry.ReportEvery = 0
		cfg.ComputeDerived()

		g := game.NewGameWithOptions(cfg, game.Options{
			Seed:           *seed,
			Headless:       true,
			StepsPerUpdate: 1,
		})

		for i := 0; i < *ticks; i++ {
			g.UpdateHeadless()
		}

		stats := g.PerfStats()
		g.Unload()

		fmt.Printf("%-22s %12s %12.0f\n", sc.name,
			stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond)

		rows = append(rows, []string{
			sc.name,
			strconv.FormatInt(stats.AvgTickDuration.Microseconds(), 10),
			strconv.FormatInt(stats.MinTickDuration.Microseconds(), 10),
			strconv.FormatInt(stats.MaxTickDuration.Microseconds(), 10),
			strconv.FormatFloat(stats.TicksPerSecond, 'f', 1, 64),
		})
	}

	if *output == "" {
		return
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("failed to create output: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		log.Fatalf("failed to write csv: %v", err)
	}
	fmt.Printf("wrote %s\n", *output)
}

// disableAll switches every optimization dimension off.
func disableAll(c *config.Config) {
	opt := &c.Optimizations
	opt.Spatial.Enabled = false
	opt.CacheOrder.Enabled = false
	opt.Scheduler.Enabled = false
	opt.Hierarchy.Enabled = false
	opt.Perception.Enabled = false
	opt.Influence.Enabled = false
	opt.Field.Enabled = false
	opt.Batching.Enabled = false
}
