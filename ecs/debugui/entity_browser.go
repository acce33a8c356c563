package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/lazyengine/ecs"
)

// EntityInfo is one row of the entity browser table.
type EntityInfo struct {
	ID             ecs.EntityId
	Uuid           ecs.Uuid
	Name           string
	ComponentTypes []string
	ComponentCount int
}

type entityColumn int

const (
	columnId entityColumn = iota
	columnName
	columnComponents
	columnCount
)

var entityColumns = [...]string{"Id", "Name", "Components", "#"}

func NewEntityBrowserComponent(pageSize int) EntityBrowserComponent {
	return EntityBrowserComponent{
		sortColumn:    columnId,
		sortAscending: true,
		pageSize:      pageSize,
	}
}

func (eb *EntityBrowserComponent) Render(registry *ecs.Registry, sel *Selection) {
	defer imgui.End()
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		return
	}

	inst := sel.resolve(registry)
	if inst == nil {
		imgui.Text("Registry has no instances")
		return
	}

	imgui.Text(fmt.Sprintf("Instance %d  %s", inst.Id, inst.Tag))
	imgui.InputTextWithHint("##filter", "filter by id, name or component", &eb.filterText, imgui.InputTextFlagsNone, nil)
	if eb.filterText != "" {
		imgui.SameLine()
		if imgui.Button("x") {
			eb.filterText = ""
		}
	}

	eb.entities = collectEntityInfos(inst.Entities, eb.entities[:0])
	rows := filterEntityInfos(eb.entities, eb.filterText)

	const flags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("entities", int32(len(entityColumns)), flags, imgui.NewVec2(0, 0), 0) {
		for _, title := range entityColumns {
			imgui.TableSetupColumn(title)
		}
		imgui.TableHeadersRow()

		if specs := imgui.TableGetSortSpecs(); specs.SpecsDirty() && specs.SpecsCount() > 0 {
			eb.sortColumn = entityColumn(specs.Specs().ColumnIndex())
			eb.sortAscending = specs.Specs().SortDirection() == imgui.SortDirectionAscending
			specs.SetSpecsDirty(false)
		}
		sortEntityInfos(rows, eb.sortColumn, eb.sortAscending)

		for _, row := range eb.page(rows) {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			id := strconv.FormatUint(uint64(row.ID), 10)
			if imgui.SelectableBoolV(id, sel.Entity == row.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				sel.Entity = row.ID
			}
			imgui.TableNextColumn()
			imgui.Text(row.Name)
			imgui.TableNextColumn()
			imgui.Text(strings.Join(row.ComponentTypes, ", "))
			imgui.TableNextColumn()
			imgui.Text(strconv.Itoa(row.ComponentCount))
		}
		imgui.EndTable()
	}

	eb.renderPager(len(rows))
}

// page clamps the current page to rows and returns its slice.
func (eb *EntityBrowserComponent) page(rows []EntityInfo) []EntityInfo {
	pages := max(1, (len(rows)+eb.pageSize-1)/eb.pageSize)
	eb.currentPage = min(eb.currentPage, pages-1)
	start := eb.currentPage * eb.pageSize
	return rows[start:min(start+eb.pageSize, len(rows))]
}

func (eb *EntityBrowserComponent) renderPager(total int) {
	pages := max(1, (total+eb.pageSize-1)/eb.pageSize)
	if pages == 1 {
		imgui.Text(fmt.Sprintf("%d entities", total))
		return
	}

	if imgui.Button("<") && eb.currentPage > 0 {
		eb.currentPage--
	}
	imgui.SameLine()
	imgui.Text(fmt.Sprintf("%d / %d", eb.currentPage+1, pages))
	imgui.SameLine()
	if imgui.Button(">") && eb.currentPage < pages-1 {
		eb.currentPage++
	}
	imgui.SameLine()
	imgui.Text(fmt.Sprintf("%d entities", total))
}

// collectEntityInfos appends a row for every entity of em to buf.
func collectEntityInfos(em *ecs.EntityManager, buf []EntityInfo) []EntityInfo {
	for _, e := range em.QueryAll() {
		types := e.ComponentTypes()
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = t.String()
		}

		buf = append(buf, EntityInfo{
			ID:             e.Id(),
			Uuid:           e.Uuid(),
			Name:           e.Name(),
			ComponentTypes: names,
			ComponentCount: len(names),
		})
	}
	return buf
}

func sortEntityInfos(rows []EntityInfo, column entityColumn, ascending bool) {
	compare := func(a, b EntityInfo) int {
		switch column {
		case columnName:
			return cmp.Compare(a.Name, b.Name)
		case columnComponents:
			return slices.Compare(a.ComponentTypes, b.ComponentTypes)
		case columnCount:
			return cmp.Compare(a.ComponentCount, b.ComponentCount)
		}
		return cmp.Compare(a.ID, b.ID)
	}
	if !ascending {
		slices.SortStableFunc(rows, func(a, b EntityInfo) int { return compare(b, a) })
		return
	}
	slices.SortStableFunc(rows, compare)
}

// filterEntityInfos keeps the rows whose id, name or component types contain
// text, ignoring case.
func filterEntityInfos(rows []EntityInfo, text string) []EntityInfo {
	if text == "" {
		return rows
	}

	needle := strings.ToLower(text)
	matches := func(s string) bool {
		return strings.Contains(strings.ToLower(s), needle)
	}

	var filtered []EntityInfo
	for _, row := range rows {
		if matches(strconv.FormatUint(uint64(row.ID), 10)) || matches(row.Name) ||
			slices.ContainsFunc(row.ComponentTypes, matches) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}
