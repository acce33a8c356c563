package debugui

import (
	"fmt"
	"slices"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/lazyengine/ecs"
)

func NewQueryDebuggerComponent() QueryDebuggerComponent {
	return QueryDebuggerComponent{
		selectedComponentTypes: make(map[ecs.TypeKey]bool),
	}
}

// Render lets the user tick component types and shows the entities of the
// selected instance a query for them would return.
func (qd *QueryDebuggerComponent) Render(registry *ecs.Registry, sel *Selection) {
	defer imgui.End()
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		return
	}

	inst := sel.resolve(registry)
	if inst == nil {
		imgui.Text("Registry has no instances")
		return
	}

	imgui.Text("Query for:")
	imgui.SameLine()
	if imgui.Button("none") {
		clear(qd.selectedComponentTypes)
	}
	for _, ct := range presentComponentTypes(inst.Entities) {
		selected := qd.selectedComponentTypes[ct.Key()]
		if !imgui.Checkbox(ct.String(), &selected) {
			continue
		}
		if selected {
			qd.selectedComponentTypes[ct.Key()] = true
		} else {
			delete(qd.selectedComponentTypes, ct.Key())
		}
	}
	imgui.Separator()

	keys := qd.selectedKeys()
	if len(keys) == 0 {
		imgui.Text("Tick at least one component type")
		return
	}

	matching := inst.Entities.QueryKeys(keys...)
	imgui.Text(fmt.Sprintf("%d of %d entities match", len(matching), inst.Entities.Len()))
	if !imgui.TreeNodeStr("Matches") {
		return
	}
	defer imgui.TreePop()

	if imgui.BeginTableV("matches", 3, imgui.TableFlagsBorders|imgui.TableFlagsRowBg, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Id")
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		for _, e := range matching {
			imgui.TableNextRow()
			imgui.TableSetColumnIndex(0)
			if imgui.SelectableBoolV(fmt.Sprint(e.Id()), sel.Entity == e.Id(), imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				sel.Entity = e.Id()
			}
			imgui.TableSetColumnIndex(1)
			imgui.Text(e.Name())
			imgui.TableSetColumnIndex(2)
			imgui.Text(fmt.Sprint(e.ComponentTypes()))
		}
		imgui.EndTable()
	}
}

func (qd *QueryDebuggerComponent) selectedKeys() []ecs.TypeKey {
	keys := make([]ecs.TypeKey, 0, len(qd.selectedComponentTypes))
	for key := range qd.selectedComponentTypes {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// presentComponentTypes returns the component types carried by at least one
// entity of em, sorted by name.
func presentComponentTypes(em *ecs.EntityManager) []ecs.ComponentType {
	seen := make(map[ecs.TypeKey]bool)
	var types []ecs.ComponentType

	for _, e := range em.QueryAll() {
		for _, t := range e.ComponentTypes() {
			if !seen[t.Key()] {
				seen[t.Key()] = true
				types = append(types, t)
			}
		}
	}

	sort.Slice(types, func(i, j int) bool {
		return types[i].String() < types[j].String()
	})
	return types
}
