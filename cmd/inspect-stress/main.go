// Command inspect-stress drives headless inspector passes over a growing and
// shrinking world and prints a timing report.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/plus3/dodeca/ecs"
	"github.com/plus3/dodeca/inspector"
	"github.com/plus3/dodeca/inspector/inspectortest"
	"github.com/plus3/dodeca/internal/config"
	"github.com/plus3/dodeca/internal/logging"
	"github.com/plus3/dodeca/scene"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "inspect-stress: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 500, "The initial number of inspectable entities to create.")
	seed := flag.Uint64("seed", 1, "Seed for the scripted user actions.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	logLevel := flag.String("log-level", "info", "Log level.")
	flag.Parse()

	log, err := logging.New(config.LoggingConfig{Level: *logLevel, Format: "console"})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	h, err := newHarness(*entityCount, *seed, log)
	if err != nil {
		return err
	}

	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Seed:           *seed,
		Capabilities:   h.capabilities.Len(),
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info("running inspector passes", zap.Duration("duration", *duration), zap.Int("entities", *entityCount))
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
			h.scheduler.Once(deltaTime.Seconds())
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))

			h.script()
			passStart := time.Now()
			result := h.controller.Pass(h.surface)
			report.PassTime.Samples = append(report.PassTime.Samples, time.Since(passStart))
			report.add(result)
		}
	}

	report.TotalTime = time.Since(startTime)
	report.FinalEntities = h.inspectable()
	report.UpdateTime.Finalize()
	report.PassTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info("inspector passes finished", zap.Int64("passes", report.TotalPasses))

	fmt.Println("\n\n--- Inspector Stress Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	fmt.Println("--- End of Report ---")
	return nil
}

type markerRow struct {
	*inspector.Marker
}

// harness owns a scene world plus an inspector driven by a scripted surface.
type harness struct {
	storage      *ecs.Storage
	scheduler    *ecs.Scheduler
	capabilities *inspector.Registry
	controller   *inspector.Controller
	surface      *inspectortest.Surface
	markers      *ecs.Query[markerRow]
	rng          *rand.Rand

	minEntities, maxEntities int
}

func newHarness(entities int, seed uint64, log *zap.Logger) (*harness, error) {
	registry := ecs.NewComponentRegistry()
	scene.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	scene.Setup(storage, scene.DefaultSetupOptions())

	rng := rand.New(rand.NewPCG(seed, seed))
	mesh := scene.RhombicDodecahedron()
	for i := range entities {
		t := scene.NewTransform(rng.Float32()*20-10, rng.Float32()*5, rng.Float32()*20-10)
		storage.Spawn(
			inspector.NewMarker(fmt.Sprintf("Body %d", i)),
			t,
			scene.GlobalTransform{},
			scene.Visible,
			scene.ComputedVisibility{Visible: true},
			scene.MeshHandle{Mesh: mesh},
			scene.MaterialHandle{Material: &scene.Material{Color: [3]float32{rng.Float32(), rng.Float32(), rng.Float32()}}},
		)
	}

	scheduler := ecs.NewScheduler(storage)
	scene.RegisterSystems(scheduler)

	capabilities := inspector.NewRegistry()
	if err := scene.RegisterCapabilities(capabilities, scene.InspectOptions{RotationCommit: inspector.CommitOnRelease}); err != nil {
		return nil, fmt.Errorf("register capabilities: %w", err)
	}

	return &harness{
		storage:      storage,
		scheduler:    scheduler,
		capabilities: capabilities,
		controller:   inspector.NewController(storage, capabilities, inspector.Options{Logger: log}),
		surface:      inspectortest.New(),
		markers:      ecs.NewQuery[markerRow](storage),
		rng:          rng,
		minEntities:  max(entities/2, 1),
		maxEntities:  entities * 2,
	}, nil
}

func (h *harness) inspectable() int {
	h.markers.Execute()
	return h.markers.Len()
}

// script queues one frame of user actions against a random entity.
func (h *harness) script() {
	h.surface.Reset()
	count := h.inspectable()
	if count == 0 {
		return
	}

	var target *inspector.Marker
	pick := h.rng.IntN(count)
	for row := range h.markers.Values() {
		if pick == 0 {
			target = row.Marker
			break
		}
		pick--
	}
	id := target.ID.String()

	h.surface.Drag(id+"/Transform/Yaw", h.rng.Float32()*360-180, h.rng.IntN(4) != 0)
	switch roll := h.rng.IntN(100); {
	case roll < 5 && count < h.maxEntities:
		h.surface.Click(id + "/Duplicate")
	case roll < 8 && count > h.minEntities:
		h.surface.Click(id + "/Delete entity")
	case roll < 10:
		h.surface.Click(id + "/Material/Remove")
	case roll < 20:
		h.surface.Select(id+"/Visibility/Mode", h.rng.IntN(3))
	}
}
