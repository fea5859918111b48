package scene

import (
	"fmt"

	"github.com/plus3/cubefall/ecs"
	"github.com/plus3/cubefall/physics"
)

// DespawnSystem deletes every entity with a Transform that has fallen below
// Despawn.Threshold.
type DespawnSystem struct {
	Config ecs.Singleton[Config]
	Stats  ecs.Singleton[CubeStats]

	Fallen ecs.Query[struct {
		ecs.EntityId
		*physics.Transform
		Cube *Cube `ecs:"optional"`
	}]
}

func (s *DespawnSystem) Execute(frame *ecs.UpdateFrame) {
	threshold := s.Config.Get().Despawn.Threshold
	stats := s.Stats.Get()

	for item := range s.Fallen.Iter() {
		if item.Transform.Y >= threshold {
			continue
		}
		frame.Commands.Delete(item.EntityId)
		if item.Cube != nil {
			stats.Despawned++
		}
	}
}

// CubeCountSystem counts every entity with a Transform above
// Despawn.Threshold and writes the total into every count label. CubeStats
// keeps the cube-only figures.
type CubeCountSystem struct {
	Config ecs.Singleton[Config]
	Stats  ecs.Singleton[CubeStats]

	Entities ecs.Query[struct {
		*physics.Transform
		Cube *Cube `ecs:"optional"`
	}]
	Labels ecs.Query[struct {
		*TextNode
		*CountLabel
	}]
}

func (s *CubeCountSystem) Execute(frame *ecs.UpdateFrame) {
	threshold := s.Config.Get().Despawn.Threshold

	count, cubes := 0, 0
	for item := range s.Entities.Iter() {
		if item.Transform.Y <= threshold {
			continue
		}
		count++
		if item.Cube != nil {
			cubes++
		}
	}

	stats := s.Stats.Get()
	stats.Live = cubes
	stats.Peak = max(stats.Peak, cubes)

	text := FormatCount(count)
	for label := range s.Labels.Iter() {
		label.TextNode.Text = text
	}
}

// FormatCount renders the label text for a count of n.
func FormatCount(n int) string {
	return fmt.Sprintf("Cube Count: %d", n)
}
