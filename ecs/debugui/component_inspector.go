package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/lazyengine/ecs"
)

func NewComponentInspectorComponent() ComponentInspectorComponent {
	return ComponentInspectorComponent{}
}

func (ci *ComponentInspectorComponent) Render(registry *ecs.Registry, sel *Selection) {
	defer imgui.End()
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		return
	}

	inst := sel.resolve(registry)
	if inst == nil || sel.Entity == 0 {
		imgui.Text("Select an entity in the browser")
		return
	}
	entity, ok := inst.Entities.Entity(sel.Entity)
	if !ok {
		imgui.Text(fmt.Sprintf("Entity %d was deleted", sel.Entity))
		sel.Entity = 0
		return
	}

	imgui.Text(fmt.Sprintf("#%d  uuid %d  instance %d", entity.Id(), entity.Uuid(), sel.Instance))
	name := entity.Name()
	if imgui.InputTextWithHint(inputLabel("Name", 200), "unnamed", &name, imgui.InputTextFlagsNone, nil) {
		entity.SetName(name)
	}

	if imgui.Button("Duplicate") {
		sel.Entity = entity.Duplicate().Id()
	}
	imgui.SameLine()
	if imgui.Button("Delete") {
		inst.Entities.DeleteEntity(entity.Id())
		sel.Entity = 0
		return
	}
	imgui.Separator()

	for _, ct := range entity.ComponentTypes() {
		val, ok := componentValue(entity, ct.Key())
		if ok && imgui.TreeNodeStr(ct.String()) {
			ci.renderValue(ct.String(), val)
			imgui.TreePop()
		}
	}
}

// componentValue returns an addressable value aliasing the entity's component,
// so edits through it write to the entity.
func componentValue(e *ecs.Entity, key ecs.TypeKey) (reflect.Value, bool) {
	component, ok := e.Component(key)
	if !ok {
		return reflect.Value{}, false
	}
	return reflect.ValueOf(component).Elem(), true
}

func (ci *ComponentInspectorComponent) renderValue(name string, val reflect.Value) {
	if val.Kind() != reflect.Struct {
		ci.renderField(name, val, false)
		return
	}

	for _, field := range globalReflectionCache.GetFields(val.Type()) {
		fieldVal := val.Field(field.Index)
		if field.IsPointer && !fieldVal.IsNil() {
			fieldVal = fieldVal.Elem()
		}
		ci.renderField(field.Name, fieldVal, field.IsPointer)
	}
}

// inputLabel draws name to the left of the next widget and returns the
// hidden imgui id for it.
func inputLabel(name string, width float32) string {
	imgui.Text(name + ":")
	imgui.SameLine()
	imgui.SetNextItemWidth(width)
	return "##" + name
}

func (ci *ComponentInspectorComponent) renderField(name string, val reflect.Value, isPointer bool) {
	switch {
	case !val.IsValid():
		imgui.Text(name + ": <invalid>")
		return
	case isPointer && val.Kind() == reflect.Ptr && val.IsNil():
		imgui.Text(name + ": nil")
		return
	}

	switch {
	case val.CanInt():
		v := int32(val.Int())
		if imgui.InputInt(inputLabel(name, 150), &v) {
			setInt(val, int64(v))
		}
	case val.CanUint():
		v := int32(val.Uint())
		if imgui.InputInt(inputLabel(name, 150), &v) && v >= 0 {
			setUint(val, uint64(v))
		}
	case val.CanFloat():
		v := float32(val.Float())
		if imgui.InputFloat(inputLabel(name, 150), &v) {
			setFloat(val, float64(v))
		}
	case val.Kind() == reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && val.CanSet() {
			val.SetBool(v)
		}
	case val.Kind() == reflect.String:
		v := val.String()
		if imgui.InputTextWithHint(inputLabel(name, 200), "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}
	case val.Kind() == reflect.Array:
		// mgl32 vectors and matrices
		if imgui.TreeNodeStr(name) {
			for i := range val.Len() {
				ci.renderField(fmt.Sprintf("%s[%d]", name, i), val.Index(i), false)
			}
			imgui.TreePop()
		}
	case val.Kind() == reflect.Struct:
		if imgui.TreeNodeStr(name) {
			ci.renderValue(name, val)
			imgui.TreePop()
		}
	case val.Kind() == reflect.Slice, val.Kind() == reflect.Map:
		imgui.Text(fmt.Sprintf("%s: %s of %d", name, val.Kind(), val.Len()))
	case val.CanInterface():
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	default:
		imgui.Text(fmt.Sprintf("%s: <%s>", name, val.Type()))
	}
}

func setInt(val reflect.Value, v int64) bool {
	if !val.CanSet() || val.OverflowInt(v) {
		return false
	}
	val.SetInt(v)
	return true
}

func setUint(val reflect.Value, v uint64) bool {
	if !val.CanSet() || val.OverflowUint(v) {
		return false
	}
	val.SetUint(v)
	return true
}

func setFloat(val reflect.Value, v float64) bool {
	if !val.CanSet() {
		return false
	}
	val.SetFloat(v)
	return true
}
