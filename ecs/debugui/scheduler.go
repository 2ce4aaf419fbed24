package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/flapper/ecs"
)

// SystemRow is one formatted line of the scheduler table.
type SystemRow struct {
	Name     string
	Runs     string
	Skips    string
	Average  string
	Worst    string
	LastRun  string
	Fraction float32
}

// SystemRows formats stats for display. Fraction is the system's share of
// the total time spent in all systems.
func SystemRows(stats *ecs.SchedulerStats) []SystemRow {
	var total time.Duration
	for _, s := range stats.Systems {
		total += s.TotalDuration
	}

	rows := make([]SystemRow, len(stats.Systems))
	for i, s := range stats.Systems {
		row := SystemRow{
			Name:    s.Name,
			Runs:    fmt.Sprintf("%d", s.ExecutionCount),
			Skips:   fmt.Sprintf("%d", s.SkipCount),
			Average: formatDuration(s.AvgDuration),
			Worst:   formatDuration(s.MaxDuration),
			LastRun: formatDuration(s.LastDuration),
		}
		if total > 0 {
			row.Fraction = float32(s.TotalDuration) / float32(total)
		}
		rows[i] = row
	}
	return rows
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1fµs", float64(d)/float64(time.Microsecond))
}

type SchedulerWindow struct {
	Title     string
	Scheduler *ecs.Scheduler
}

// Render draws one table row per system.
func (w *SchedulerWindow) Render() {
	if !imgui.BeginV(w.Title, nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := w.Scheduler.GetStats()
	imgui.Text(fmt.Sprintf("Frames: %d  Runs: %d", stats.Frames, stats.TotalExecutions))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("systems", 6, tableFlags, imgui.NewVec2(0, 0), 0) {
		for _, header := range []string{"System", "Runs", "Skips", "Avg", "Max", "Share"} {
			imgui.TableSetupColumn(header)
		}
		imgui.TableHeadersRow()

		for _, row := range SystemRows(stats) {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(row.Name)
			imgui.TableNextColumn()
			imgui.Text(row.Runs)
			imgui.TableNextColumn()
			imgui.Text(row.Skips)
			imgui.TableNextColumn()
			imgui.Text(row.Average)
			imgui.TableNextColumn()
			imgui.Text(row.Worst)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.0f%%", row.Fraction*100))
		}
		imgui.EndTable()
	}

	imgui.End()
}
