package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/google/uuid"
	"github.com/plus3/lazyengine/ecs"
)

type InstanceInfo struct {
	ID             ecs.InstanceId
	Tag            uuid.UUID
	EntityCount    int
	SystemCount    int
	ComponentTypes int
}

func NewInstanceViewerComponent() InstanceViewerComponent {
	return InstanceViewerComponent{
		sortColumn:    0,
		sortAscending: true,
	}
}

// Render lists the registry's instances. Clicking a row selects the instance
// for the other windows.
func (iv *InstanceViewerComponent) Render(registry *ecs.Registry, sel *Selection) {
	if !imgui.BeginV("Instance Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := registry.CollectStats()
	iv.instances = collectInstanceInfos(stats, iv.instances[:0])
	sortInstanceInfos(iv.instances, iv.sortColumn, iv.sortAscending)

	maxEntityCount := 0
	for _, inst := range iv.instances {
		maxEntityCount = max(maxEntityCount, inst.EntityCount)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("InstanceTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Instance ID")
		imgui.TableSetupColumn("Tag")
		imgui.TableSetupColumn("Systems")
		imgui.TableSetupColumn("Entities")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			iv.sortColumn = int(spec.ColumnIndex())
			iv.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortInstanceInfos(iv.instances, iv.sortColumn, iv.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		for _, inst := range iv.instances {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := sel.Instance == inst.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", inst.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) && !isSelected {
				sel.Instance = inst.ID
				sel.Entity = 0
			}

			imgui.TableNextColumn()
			imgui.Text(inst.Tag.String())

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", inst.SystemCount))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", inst.EntityCount))

			if maxEntityCount > 0 {
				barWidth := float32(inst.EntityCount) / float32(maxEntityCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	imgui.Text(fmt.Sprintf("Instances: %d, entities: %d, systems: %d",
		stats.InstanceCount, stats.TotalEntityCount, stats.TotalSystemCount))

	imgui.End()
}

func collectInstanceInfos(stats *ecs.RegistryStats, buf []InstanceInfo) []InstanceInfo {
	for _, inst := range stats.Instances {
		buf = append(buf, InstanceInfo{
			ID:             inst.Id,
			Tag:            inst.Tag,
			EntityCount:    inst.EntityCount,
			SystemCount:    inst.SystemCount,
			ComponentTypes: len(inst.Components),
		})
	}
	return buf
}

func sortInstanceInfos(instances []InstanceInfo, column int, ascending bool) {
	sort.SliceStable(instances, func(i, j int) bool {
		a, b := instances[i], instances[j]
		if !ascending {
			a, b = b, a
		}

		switch column {
		case 1:
			return a.Tag.String() < b.Tag.String()
		case 2:
			return a.SystemCount < b.SystemCount
		case 3:
			return a.EntityCount < b.EntityCount
		default:
			return a.ID < b.ID
		}
	})
}
