package debugui

import (
	"reflect"
	"sync"
)

// FieldInfo describes one exported field the component inspector draws.
type FieldInfo struct {
	Name      string
	Index     int
	Kind      reflect.Kind
	IsPointer bool
}

// ReflectionCache maps a struct type to its exported fields.
type ReflectionCache struct {
	fields sync.Map // reflect.Type -> []FieldInfo
}

func (rc *ReflectionCache) GetFields(t reflect.Type) []FieldInfo {
	if cached, ok := rc.fields.Load(t); ok {
		return cached.([]FieldInfo)
	}
	fields, _ := rc.fields.LoadOrStore(t, exportedFields(t))
	return fields.([]FieldInfo)
}

func exportedFields(t reflect.Type) []FieldInfo {
	if t.Kind() != reflect.Struct {
		return nil
	}

	fields := make([]FieldInfo, 0, t.NumField())
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		kind := sf.Type.Kind()
		info := FieldInfo{Name: sf.Name, Index: i, Kind: kind}
		if kind == reflect.Ptr {
			info.IsPointer = true
			info.Kind = sf.Type.Elem().Kind()
		}
		fields = append(fields, info)
	}
	return fields
}

var globalReflectionCache = &ReflectionCache{}
