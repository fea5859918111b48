package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/cubefall/ecs"
)

// FrameHistory is a ring of frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	next    int
	filled  int
	last    time.Time
}

func NewFrameHistory(size int) *FrameHistory {
	return &FrameHistory{samples: make([]float32, max(size, 1))}
}

// Tick records the wall time since the previous Tick.
func (h *FrameHistory) Tick(now time.Time) {
	if !h.last.IsZero() {
		h.Push(float32(now.Sub(h.last).Seconds() * 1000))
	}
	h.last = now
}

func (h *FrameHistory) Push(ms float32) {
	h.samples[h.next] = ms
	h.next = (h.next + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// Average returns the mean of the recorded samples, or 0 if there are none.
func (h *FrameHistory) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for _, s := range h.Ordered() {
		sum += s
	}
	return sum / float32(h.filled)
}

// Ordered returns the recorded samples oldest first.
func (h *FrameHistory) Ordered() []float32 {
	out := make([]float32, 0, h.filled)
	start := (h.next - h.filled + len(h.samples)) % len(h.samples)
	for i := 0; i < h.filled; i++ {
		out = append(out, h.samples[(start+i)%len(h.samples)])
	}
	return out
}

// PerformanceWindow shows frame times, storage contents and per-system
// timings.
type PerformanceWindow struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	history   *FrameHistory
}

func NewPerformanceWindow(storage *ecs.Storage, scheduler *ecs.Scheduler, historyFrames int) *PerformanceWindow {
	return &PerformanceWindow{
		storage:   storage,
		scheduler: scheduler,
		history:   NewFrameHistory(historyFrames),
	}
}

func (p *PerformanceWindow) Render() {
	p.history.Tick(time.Now())

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(360, 420), imgui.CondOnce)
	if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := p.storage.CollectStats()
	imgui.Text(fmt.Sprintf("Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

	avg := p.history.Average()
	fps := float32(0)
	if avg > 0 {
		fps = 1000 / avg
	}
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, fps))

	if samples := p.history.Ordered(); len(samples) > 0 {
		imgui.PlotLinesFloatPtr("##frametime", &samples[0], int32(len(samples)))
	}

	imgui.Separator()
	if p.scheduler != nil {
		p.renderSystems(p.scheduler.GetStats())
	}

	if imgui.TreeNodeStr("Archetypes") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("ArchetypeStats", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("ID")
			imgui.TableSetupColumn("Components")
			imgui.TableSetupColumn("Entities")
			imgui.TableHeadersRow()

			for _, arch := range stats.ArchetypeBreakdown {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("0x%X", arch.ID))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", len(arch.ComponentTypes)))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", arch.EntityCount))
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singletons") {
		for _, name := range stats.SingletonTypes {
			imgui.BulletText(name)
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (p *PerformanceWindow) renderSystems(stats *ecs.SchedulerStats) {
	imgui.Text(fmt.Sprintf("Frames: %d  Systems: %d", stats.Frames, stats.SystemCount))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSizingFixedFit
	if !imgui.BeginTableV("Systems", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}
	imgui.TableSetupColumn("Name")
	imgui.TableSetupColumn("Last (ms)")
	imgui.TableSetupColumn("Avg (ms)")
	imgui.TableSetupColumn("Max (ms)")
	imgui.TableHeadersRow()

	for _, sys := range stats.Systems {
		imgui.TableNextRow()
		imgui.TableNextColumn()
		if sys.Startup {
			imgui.Text(sys.Name + " (startup)")
		} else {
			imgui.Text(sys.Name)
		}
		imgui.TableNextColumn()
		imgui.Text(millis(sys.LastDuration))
		imgui.TableNextColumn()
		imgui.Text(millis(sys.AvgDuration))
		imgui.TableNextColumn()
		imgui.Text(millis(sys.MaxDuration))
	}
	imgui.EndTable()
}

func millis(d time.Duration) string {
	return fmt.Sprintf("%.3f", float64(d.Microseconds())/1000.0)
}
