package debugui

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/cubefall/ecs"
)

// EntityInfo is one row of the entity table.
type EntityInfo struct {
	ID             ecs.EntityId
	ArchetypeID    uint32
	ComponentTypes []string
}

// CollectEntities lists every live entity ordered by id.
func CollectEntities(storage *ecs.Storage) []EntityInfo {
	var rows []EntityInfo
	for _, archetype := range storage.Archetypes() {
		names := make([]string, len(archetype.Types()))
		for i, t := range archetype.Types() {
			names[i] = t.String()
		}
		for id := range archetype.Iter() {
			rows = append(rows, EntityInfo{
				ID:             id,
				ArchetypeID:    archetype.ID(),
				ComponentTypes: names,
			})
		}
	}
	slices.SortFunc(rows, func(a, b EntityInfo) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return rows
}

// FilterEntities keeps rows whose id, archetype or component names contain
// filter, case-insensitively.
func FilterEntities(rows []EntityInfo, filter string) []EntityInfo {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		return rows
	}

	var out []EntityInfo
	for _, row := range rows {
		if strings.Contains(fmt.Sprintf("%d", row.ID), filter) ||
			strings.Contains(fmt.Sprintf("0x%x", row.ArchetypeID), filter) ||
			strings.Contains(strings.ToLower(strings.Join(row.ComponentTypes, " ")), filter) {
			out = append(out, row)
		}
	}
	return out
}

// Inspector lists entities and edits the exported fields of the selected
// entity's components in place.
type Inspector struct {
	storage  *ecs.Storage
	perPage  int
	page     int
	filter   string
	selected ecs.EntityId
	hasPick  bool
}

func NewInspector(storage *ecs.Storage, perPage int) *Inspector {
	return &Inspector{storage: storage, perPage: max(perPage, 1)}
}

func (in *Inspector) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(380, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 520), imgui.CondOnce)
	if !imgui.BeginV("Entities", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##filter", "Filter...", &in.filter, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear") {
		in.filter = ""
		in.page = 0
	}

	rows := FilterEntities(CollectEntities(in.storage), in.filter)
	pages := max((len(rows)+in.perPage-1)/in.perPage, 1)
	in.page = min(in.page, pages-1)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 220), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Archetype")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		start := in.page * in.perPage
		end := min(start+in.perPage, len(rows))
		for _, row := range rows[start:end] {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			picked := in.hasPick && in.selected == row.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", row.ID), picked, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				in.selected = row.ID
				in.hasPick = true
			}
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%X", row.ArchetypeID))
			imgui.TableNextColumn()
			imgui.Text(strings.Join(row.ComponentTypes, ", "))
		}
		imgui.EndTable()
	}

	imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", in.page+1, pages, len(rows)))
	imgui.SameLine()
	if imgui.Button("Prev") && in.page > 0 {
		in.page--
	}
	imgui.SameLine()
	if imgui.Button("Next") && in.page < pages-1 {
		in.page++
	}

	imgui.Separator()
	in.renderSelected()
	imgui.End()
}

func (in *Inspector) renderSelected() {
	if !in.hasPick || !in.storage.Alive(in.selected) {
		in.hasPick = false
		imgui.Text("No entity selected")
		return
	}

	var archetype *ecs.Archetype
	for _, a := range in.storage.Archetypes() {
		if a.ID() == in.selected.ArchetypeId() {
			archetype = a
			break
		}
	}
	if archetype == nil {
		return
	}

	imgui.Text(fmt.Sprintf("Entity %d", in.selected))
	for _, t := range archetype.Types() {
		component := in.storage.GetComponent(in.selected, t)
		if component == nil {
			continue
		}
		if imgui.TreeNodeStr(t.String()) {
			editValue(t.Name(), reflect.ValueOf(component).Elem())
			imgui.TreePop()
		}
	}
}

// editValue draws a widget for v and writes edits straight back. v must be
// addressable for edits to stick.
func editValue(name string, v reflect.Value) {
	label := "##" + name
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := int32(v.Int())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(label, &n) && v.CanSet() {
			v.SetInt(int64(n))
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n := int32(v.Uint())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(label, &n) && n >= 0 && v.CanSet() {
			v.SetUint(uint64(n))
		}
	case reflect.Float32, reflect.Float64:
		f := float32(v.Float())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(label, &f) && v.CanSet() {
			v.SetFloat(float64(f))
		}
	case reflect.Bool:
		b := v.Bool()
		if imgui.Checkbox(name, &b) && v.CanSet() {
			v.SetBool(b)
		}
	case reflect.String:
		s := v.String()
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(label, "", &s, imgui.InputTextFlagsNone, nil) && v.CanSet() {
			v.SetString(s)
		}
	case reflect.Struct:
		if v.NumField() == 0 {
			imgui.Text(name)
			return
		}
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			editValue(t.Field(i).Name, v.Field(i))
		}
	case reflect.Pointer:
		if v.IsNil() {
			imgui.Text(name + ": nil")
			return
		}
		imgui.Text(fmt.Sprintf("%s: %T", name, v.Interface()))
	case reflect.Slice, reflect.Map:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, v.Len()))
	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, v.Kind()))
	}
}
