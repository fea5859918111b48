package scene

import (
	"log"

	"github.com/plus3/cubefall/ecs"
)

// ConfigReloadSystem applies edits to the config file while the scene runs.
// A file that fails to load or validate is logged and the running config is
// kept.
type ConfigReloadSystem struct {
	Config ecs.Singleton[Config]

	Path   string
	Events <-chan string
	Errors <-chan error
	Load   func(path string) (Config, error)
}

func (s *ConfigReloadSystem) Execute(frame *ecs.UpdateFrame) {
	changed := false
	for drained := false; !drained; {
		select {
		case _, ok := <-s.Events:
			if !ok {
				s.Events = nil
				continue
			}
			changed = true
		case err, ok := <-s.Errors:
			if !ok {
				s.Errors = nil
				continue
			}
			log.Printf("scene: watch %s: %v", s.Path, err)
		default:
			drained = true
		}
	}
	if !changed {
		return
	}

	load := s.Load
	if load == nil {
		load = LoadConfig
	}
	next, err := load(s.Path)
	if err != nil {
		log.Printf("scene: reload skipped: %v", err)
		return
	}
	s.Config.Get().ApplyTunables(next)
	log.Printf("scene: reloaded %s", s.Path)
}
