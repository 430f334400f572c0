package debugui

import "github.com/plus3/dodeca/ecs"

// SpawnDebugUI spawns the inspector and performance windows as ImguiItems.
// The performance window reads the scheduler's statistics when it is non-nil.
func SpawnDebugUI(storage *ecs.Storage, scheduler *ecs.Scheduler, inspector *InspectorWindow) {
	if inspector != nil {
		storage.Spawn(ImguiItem{Render: inspector.Render})
	}

	stats := NewPerformanceStatsComponent(120)
	timer := NewFrameTimer()
	storage.Spawn(ImguiItem{
		Render: func() {
			stats.Render(storage, scheduler, timer.GetDeltaTime())
		},
	})
}

// RegisterDebugUIComponents registers the components this package spawns or
// stores as singletons.
func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[ImguiInputState](registry)
	ecs.RegisterComponent[PerformanceStatsComponent](registry)
	ecs.RegisterComponent[FrameTimer](registry)
}
