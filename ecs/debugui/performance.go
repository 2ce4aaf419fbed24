package debugui

import (
	"fmt"
	"strings"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/flapper/ecs"
)

// FrameHistory is a ring of frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	next    int
	filled  int
	last    time.Time
}

// NewFrameHistory keeps the last size frame times.
func NewFrameHistory(size int) *FrameHistory {
	return &FrameHistory{samples: make([]float32, max(size, 1))}
}

// Push records one frame time in milliseconds.
func (h *FrameHistory) Push(ms float32) {
	h.samples[h.next] = ms
	h.next = (h.next + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// Mark pushes the wall time since the previous Mark. The first call only
// starts the clock.
func (h *FrameHistory) Mark(now time.Time) {
	if !h.last.IsZero() {
		h.Push(float32(now.Sub(h.last).Seconds() * 1000))
	}
	h.last = now
}

// Average is over the recorded samples only.
func (h *FrameHistory) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for _, s := range h.samples[:h.filled] {
		sum += s
	}
	return sum / float32(h.filled)
}

// FPS is derived from the average frame time.
func (h *FrameHistory) FPS() float32 {
	avg := h.Average()
	if avg <= 0 {
		return 0
	}
	return 1000 / avg
}

type PerformanceWindow struct {
	History *FrameHistory
}

// NewPerformanceWindow plots the last historyFrames frames.
func NewPerformanceWindow(historyFrames int) *PerformanceWindow {
	return &PerformanceWindow{History: NewFrameHistory(historyFrames)}
}

// Render draws frame timing and the archetype table of storage.
func (w *PerformanceWindow) Render(storage *ecs.Storage) {
	w.History.Mark(time.Now())

	if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := storage.CollectStats()
	imgui.Text(fmt.Sprintf("Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))
	imgui.Text(fmt.Sprintf("Frame: %.2f ms (%.0f FPS)", w.History.Average(), w.History.FPS()))

	imgui.Separator()
	imgui.PlotLinesFloatPtr("##frametime", &w.History.samples[0], int32(len(w.History.samples)))

	if imgui.TreeNodeStr("Archetypes") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("archetypes", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("ID")
			imgui.TableSetupColumn("Components")
			imgui.TableSetupColumn("Entities")
			imgui.TableHeadersRow()

			for _, arch := range stats.ArchetypeBreakdown {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("0x%X", arch.ID))
				imgui.TableNextColumn()
				imgui.Text(strings.Join(arch.ComponentTypes, ", "))
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
