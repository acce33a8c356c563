package main

//go:generate go run ../ecs-gen -components 16 -systems 8 -out generated.go

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"reflect"
	"runtime"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/profile"
	"github.com/plus3/lazyengine/ecs"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The initial number of entities to create per instance.")
	instanceCount := flag.Int("instances", 1, "The number of ECS instances to run side by side.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	profileMode := flag.String("profile", "", "Write a profile to the current directory: cpu, mem or allocs.")
	seed := flag.Int64("seed", 1, "Seed for the random component layout.")
	verbose := flag.Bool("v", false, "Log ECS debug events.")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if p := startProfile(*profileMode); p != nil {
		defer p.Stop()
	}

	logger.Info("starting ECS stress test", "instances", *instanceCount, "entities", *entityCount)

	registry := ecs.NewRegistry(ecs.WithLogger(logger))
	defer registry.Close()

	rng := rand.New(rand.NewSource(*seed))
	for i := 0; i < *instanceCount; i++ {
		inst, _ := registry.Instance(registry.CreateInstance())
		RegisterAllGeneratedSystems(inst.Systems)
		populate(inst.Entities, rng, *entityCount)
	}
	logger.Info("population complete", "entities", registry.CollectStats().TotalEntityCount)

	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Instances:      *instanceCount,
		Components:     componentCount,
		Systems:        systemCount,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info("running simulation", "duration", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			registry.Update(deltaTime.Seconds())
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			report.TotalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)
	report.Registry = registry.CollectStats()
	for _, inst := range registry.Instances() {
		report.SystemStats = append(report.SystemStats, inst.Systems.Stats())
	}

	logger.Info("simulation finished", "updates", report.TotalUpdates)

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Error("failed to generate report", "err", err)
		os.Exit(1)
	}
	fmt.Println("--- End of Report ---")
}

func startProfile(mode string) interface{ Stop() } {
	opts := []func(*profile.Profile){profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet}
	switch mode {
	case "":
		return nil
	case "cpu":
		return profile.Start(append(opts, profile.CPUProfile)...)
	case "mem":
		return profile.Start(append(opts, profile.MemProfile)...)
	case "allocs":
		return profile.Start(append(opts, profile.MemProfileAllocs)...)
	default:
		fmt.Fprintf(os.Stderr, "unknown profile mode %q\n", mode)
		os.Exit(2)
		return nil
	}
}

// populate creates n entities with 1 to 5 random components each and random
// component values.
func populate(em *ecs.EntityManager, rng *rand.Rand, n int) {
	for i := 0; i < n; i++ {
		e := SpawnRandomEntity(em, rng, rng.Intn(5)+1)
		randomize(e, rng)
	}
}

// randomize sets the Value field of every generated component on e.
func randomize(e *ecs.Entity, rng *rand.Rand) {
	for _, t := range e.ComponentTypes() {
		component, ok := e.Component(t.Key())
		if !ok {
			continue
		}
		field := reflect.ValueOf(component).Elem().FieldByName("Value")
		if !field.IsValid() || !field.CanSet() {
			continue
		}
		v := mgl32.Vec3{rng.Float32()*2 - 1, rng.Float32()*2 - 1, rng.Float32()*2 - 1}
		field.Set(reflect.ValueOf(v))
	}
}
