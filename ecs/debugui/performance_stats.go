package debugui

import (
	"fmt"
	"slices"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/lazyengine/ecs"
)

func NewPerformanceStatsComponent(historyFrames int) PerformanceStatsComponent {
	return PerformanceStatsComponent{
		frameHistory: make([]float32, historyFrames),
	}
}

// record stores a frame time in seconds and returns the mean over the history
// window in milliseconds. Unfilled slots count as zero.
func (ps *PerformanceStatsComponent) record(seconds float32) float32 {
	ps.frameHistory[ps.frameIndex] = seconds * 1000
	ps.frameIndex = (ps.frameIndex + 1) % len(ps.frameHistory)

	var sum float32
	for _, ms := range ps.frameHistory {
		sum += ms
	}
	return sum / float32(len(ps.frameHistory))
}

// sinceLastFrame returns the wall-clock seconds since the previous call, or
// zero on the first call.
func (ps *PerformanceStatsComponent) sinceLastFrame() float32 {
	now := time.Now()
	defer func() { ps.lastFrame = now }()
	if ps.lastFrame.IsZero() {
		return 0
	}
	return float32(now.Sub(ps.lastFrame).Seconds())
}

func (ps *PerformanceStatsComponent) Render(registry *ecs.Registry, sel *Selection) {
	defer imgui.End()
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		return
	}

	avgMs := ps.record(ps.sinceLastFrame())
	stats := registry.CollectStats()

	imgui.Text(fmt.Sprintf("%d instances, %d entities, %d systems",
		stats.InstanceCount, stats.TotalEntityCount, stats.TotalSystemCount))
	if avgMs > 0 {
		imgui.Text(fmt.Sprintf("frame %.2f ms, %.0f fps", avgMs, 1000/avgMs))
	}
	imgui.PlotLinesFloatPtr("ms##frames", &ps.frameHistory[0], int32(len(ps.frameHistory)))
	imgui.Separator()

	inst := sel.resolve(registry)
	if inst == nil {
		return
	}

	if imgui.TreeNodeStr(fmt.Sprintf("Systems of instance %d", inst.Id)) {
		renderSystemTable(inst.Systems.Stats())
		imgui.TreePop()
	}

	i := slices.IndexFunc(stats.Instances, func(s ecs.InstanceStats) bool { return s.Id == inst.Id })
	if i >= 0 && imgui.TreeNodeStr("Component usage") {
		for _, c := range stats.Instances[i].Components {
			imgui.BulletText(fmt.Sprintf("%s: %d", c.Type, c.EntityCount))
		}
		imgui.TreePop()
	}
}

func renderSystemTable(stats *ecs.SystemManagerStats) {
	if !imgui.BeginTableV("systems", 4, imgui.TableFlagsBorders|imgui.TableFlagsRowBg, imgui.NewVec2(0, 0), 0) {
		return
	}
	for _, title := range []string{"System", "Runs", "Avg", "Max"} {
		imgui.TableSetupColumn(title)
	}
	imgui.TableHeadersRow()

	for _, s := range stats.Systems {
		imgui.TableNextRow()
		imgui.TableNextColumn()
		imgui.Text(s.Name)
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprint(s.ExecutionCount))
		imgui.TableNextColumn()
		imgui.Text(s.AvgDuration.String())
		imgui.TableNextColumn()
		imgui.Text(s.MaxDuration.String())
	}
	imgui.EndTable()
}
