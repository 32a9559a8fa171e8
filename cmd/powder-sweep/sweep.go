package main

import (
	"fmt"
	"hash/fnv"
	"time"

	"powder/internal/engine"
	"powder/internal/registry"
	"powder/internal/sims/powder"
)

type scenario struct {
	scene string
	seed  int64
}

func (s scenario) String() string { return fmt.Sprintf("%s/seed=%d", s.scene, s.seed) }

type scenarioResult struct {
	scenario  scenario
	initial   int
	final     int
	peak      int
	moves     int
	reactions map[registry.RelationshipKind]int
	decays    int
	elapsed   time.Duration
	digest    uint64
}

func (r scenarioResult) totalReactions() int {
	n := 0
	for _, v := range r.reactions {
		n += v
	}
	return n
}

// runScenario plays one scene for steps ticks. obs, when non-nil, sees every
// tick alongside the local tally.
func runScenario(base powder.Config, sc scenario, steps int, obs powder.Observer) scenarioResult {
	cfg := base
	cfg.Scene = sc.scene
	cfg.Seed = sc.seed

	res := scenarioResult{
		scenario:  sc,
		reactions: make(map[registry.RelationshipKind]int),
	}
	tally := observerFunc(func(s engine.Stats) {
		res.moves += s.Moved
		res.decays += s.Decayed
		for k, v := range s.Reactions {
			res.reactions[k] += v
		}
		if s.Live > res.peak {
			res.peak = s.Live
		}
		if obs != nil {
			obs.ObserveTick(s)
		}
	})

	world := powder.NewWithConfig(cfg, powder.WithObserver(tally))
	world.Reset(sc.seed)
	res.initial = world.Live()
	res.peak = res.initial

	start := time.Now()
	for i := 0; i < steps; i++ {
		world.Step()
	}
	res.elapsed = time.Since(start)
	res.final = world.Live()
	res.digest = digest(world)
	return res
}

type observerFunc func(engine.Stats)

func (f observerFunc) ObserveTick(s engine.Stats) { f(s) }

// digest hashes the committed frame so runs can be compared for replay.
func digest(w *powder.World) uint64 {
	h := fnv.New64a()
	snap := w.Snapshot()
	var buf [4]byte
	for _, c := range snap.Cells {
		if !c.Filled {
			buf = [4]byte{}
		} else {
			buf = [4]byte{1, byte(c.Color >> 16), byte(c.Color >> 8), byte(c.Color)}
		}
		h.Write(buf[:])
	}
	return h.Sum64()
}
