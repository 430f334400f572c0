package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/plus3/dodeca/ecs"
	"github.com/plus3/dodeca/ecs/debugui"
	debugui_ebiten "github.com/plus3/dodeca/ecs/debugui/ebiten"
	"github.com/plus3/dodeca/inspector"
	"github.com/plus3/dodeca/internal/config"
	"github.com/plus3/dodeca/scene"
)

// keyBindings maps fly-control actions to keyboard keys.
var keyBindings = map[scene.Key][]ebiten.Key{
	scene.KeyForward:   {ebiten.KeyW},
	scene.KeyBack:      {ebiten.KeyS},
	scene.KeyLeft:      {ebiten.KeyA},
	scene.KeyRight:     {ebiten.KeyD},
	scene.KeyUp:        {ebiten.KeySpace},
	scene.KeyDown:      {ebiten.KeyControlLeft, ebiten.KeyControlRight},
	scene.KeyPitchUp:   {ebiten.KeyArrowUp},
	scene.KeyPitchDown: {ebiten.KeyArrowDown},
	scene.KeyYawLeft:   {ebiten.KeyArrowLeft},
	scene.KeyYawRight:  {ebiten.KeyArrowRight},
	scene.KeyRollLeft:  {ebiten.KeyQ},
	scene.KeyRollRight: {ebiten.KeyE},
}

// Game implements ebiten.Game over the ECS world.
type Game struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	renderer  *wireframe

	backend    *ecs.Singleton[debugui_ebiten.ImguiBackend]
	input      *ecs.Singleton[scene.InputState]
	imguiInput *ecs.Singleton[debugui.ImguiInputState]
}

func newGame(cfg *config.Config, log *zap.Logger) *Game {
	registry := ecs.NewComponentRegistry()
	scene.RegisterComponents(registry)
	debugui.RegisterDebugUIComponents(registry)
	ecs.RegisterComponent[debugui_ebiten.ImguiBackend](registry)

	storage := ecs.NewStorage(registry)
	backend := ecs.NewSingleton[debugui_ebiten.ImguiBackend](storage,
		debugui_ebiten.NewImguiBackend(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height))
	entities := scene.Setup(storage, cfg.Camera.SetupOptions())
	log.Debug("scene ready",
		zap.Stringer("camera", entities.Camera),
		zap.Stringer("dodecahedron", entities.Dodecahedron),
	)

	scheduler := ecs.NewScheduler(storage)
	scene.RegisterSystems(scheduler)
	scheduler.Register(&debugui.ImguiSystem{})

	var window *debugui.InspectorWindow
	if cfg.Inspector.Enabled {
		capabilities := inspector.NewRegistry()
		if err := scene.RegisterCapabilities(capabilities, scene.InspectOptions{
			RotationCommit: cfg.Inspector.Commit(),
		}); err != nil {
			log.Panic("register capabilities", zap.Error(err))
		}
		window = debugui.NewInspectorWindow(inspector.NewController(storage, capabilities, inspector.Options{
			CopySuffix: cfg.Inspector.CopySuffix,
			Logger:     log.Named("inspector"),
		}))
	}
	debugui.SpawnDebugUI(storage, scheduler, window)

	return &Game{
		storage:    storage,
		scheduler:  scheduler,
		renderer:   newWireframe(storage),
		backend:    backend,
		input:      ecs.NewSingleton[scene.InputState](storage),
		imguiInput: ecs.NewSingleton[debugui.ImguiInputState](storage),
	}
}

// pollInput copies held keys into the InputState singleton. Keys typed into
// an ImGui widget do not fly the camera.
func (g *Game) pollInput() {
	input := g.input.Get()
	input.Clear()
	if g.imguiInput.Get().WantCaptureKeyboard {
		return
	}

	for action, keys := range keyBindings {
		for _, key := range keys {
			if ebiten.IsKeyPressed(key) {
				input.Set(action, true)
				break
			}
		}
	}
}

func (g *Game) Update() error {
	backend := g.backend.Get()
	backend.BeginFrame()

	g.pollInput()
	g.scheduler.Once(1.0 / float64(ebiten.TPS()))

	backend.EndFrame()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)
	g.backend.Get().Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Get().Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
