package system

import (
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/prefabs"
)

// ScriptLoader returns the source of a script by path.
type ScriptLoader func(path string) ([]byte, error)

// ScriptSystem runs the tengo script of every entity with a Script
// component once per unpaused frame. Scripts drive world objects and reach
// the player only through the character model.
type ScriptSystem struct {
	model  *CharacterModel
	items  ItemLookup
	load   ScriptLoader
	cache  map[ecs.Entity]*scriptRuntime
	failed map[ecs.Entity]string
}

type scriptRuntime struct {
	path      string
	compiled  *tengo.Compiled
	stateData *tengo.Map
}

const scriptDispatch = `
if __phase == "update" && is_callable(update) {
	update(__engine, __state)
}
`

func NewScriptSystem(model *CharacterModel, items ItemLookup, load ScriptLoader) *ScriptSystem {
	if load == nil {
		load = prefabs.LoadScript
	}
	return &ScriptSystem{
		model:  model,
		items:  items,
		load:   load,
		cache:  make(map[ecs.Entity]*scriptRuntime),
		failed: make(map[ecs.Entity]string),
	}
}

// Invalidate drops compiled scripts for path (or all scripts when path is
// empty) so they are recompiled on next use. Script state is reset.
func (s *ScriptSystem) Invalidate(path string) {
	if s == nil {
		return
	}
	for e, rt := range s.cache {
		if path == "" || sameScript(rt.path, path) {
			delete(s.cache, e)
		}
	}
	for e, p := range s.failed {
		if path == "" || sameScript(p, path) {
			delete(s.failed, e)
		}
	}
}

func sameScript(a, b string) bool {
	trim := func(p string) string {
		p = strings.TrimPrefix(p, "prefabs/")
		return strings.TrimPrefix(p, "scripts/")
	}
	return trim(a) == trim(b)
}

func (s *ScriptSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	if c := Clock(w); c != nil && c.TimeScale <= 0 {
		return
	}

	for e := range s.cache {
		if !ecs.Has(w, e, component.ScriptComponent.Kind()) {
			delete(s.cache, e)
		}
	}
	for e := range s.failed {
		if !ecs.Has(w, e, component.ScriptComponent.Kind()) {
			delete(s.failed, e)
		}
	}

	player, hasPlayer := ecs.First(w, component.PlayerTagComponent.Kind())

	ecs.ForEach(w, component.ScriptComponent.Kind(), func(e ecs.Entity, script *component.Script) {
		if script == nil || strings.TrimSpace(script.Path) == "" {
			return
		}
		if s.failed[e] == script.Path {
			return
		}
		rt, err := s.runtimeFor(e, script.Path)
		if err != nil {
			log.Printf("script: entity=%v load %s: %v", e, script.Path, err)
			s.failed[e] = script.Path
			return
		}

		ctx := &scriptContext{w: w, self: e, player: player, hasPlayer: hasPlayer, params: script.Params}
		if err := rt.run("update", s.buildEngine(ctx)); err != nil {
			log.Printf("script: entity=%v update %s: %v", e, script.Path, err)
			s.failed[e] = script.Path
		}
	})
}

func (s *ScriptSystem) runtimeFor(e ecs.Entity, path string) (*scriptRuntime, error) {
	if rt, ok := s.cache[e]; ok && rt.path == path {
		return rt, nil
	}

	src, err := s.load(path)
	if err != nil {
		return nil, err
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + scriptDispatch))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}

	rt := &scriptRuntime{
		path:      path,
		compiled:  compiled,
		stateData: &tengo.Map{Value: map[string]tengo.Object{}},
	}
	s.cache[e] = rt
	return rt, nil
}

// run executes one phase. The tengo VM panics on some runtime faults (for
// example integer division by zero); those come back as errors.
func (rt *scriptRuntime) run(phase string, engine *tengo.ImmutableMap) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("script panic: %v", r)
		}
	}()
	if rt == nil || rt.compiled == nil {
		return fmt.Errorf("nil script runtime")
	}
	if err := rt.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.stateData); err != nil {
		return err
	}
	return rt.compiled.Run()
}

type scriptContext struct {
	w         *ecs.World
	self      ecs.Entity
	player    ecs.Entity
	hasPlayer bool
	params    map[string]any
}

func (ctx *scriptContext) position(e ecs.Entity) (float64, float64) {
	t, ok := ecs.Get(ctx.w, e, component.TransformComponent.Kind())
	if !ok {
		return 0, 0
	}
	return t.X, t.Y
}

func (s *ScriptSystem) buildEngine(ctx *scriptContext) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	fn := func(name string, f func(args ...tengo.Object) (tengo.Object, error)) {
		values[name] = &tengo.UserFunction{Name: name, Value: f}
	}
	playerCall := func(name string, f func(args ...tengo.Object)) {
		fn(name, func(args ...tengo.Object) (tengo.Object, error) {
			if !ctx.hasPlayer || s.model == nil {
				return tengo.FalseValue, nil
			}
			f(args...)
			return tengo.TrueValue, nil
		})
	}

	fn("param", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.UndefinedValue, nil
		}
		var def tengo.Object = tengo.UndefinedValue
		if len(args) > 1 {
			def = args[1]
		}
		raw, ok := ctx.params[objectAsString(args[0])]
		if !ok {
			return def, nil
		}
		obj, err := tengo.FromInterface(normalizeParam(raw))
		if err != nil {
			return def, nil
		}
		if _, wantFloat := def.(*tengo.Float); wantFloat {
			if n, ok := obj.(*tengo.Int); ok {
				return &tengo.Float{Value: float64(n.Value)}, nil
			}
		}
		return obj, nil
	})

	fn("get_position", func(args ...tengo.Object) (tengo.Object, error) {
		return vec(ctx.position(ctx.self)), nil
	})

	fn("get_player_position", func(args ...tengo.Object) (tengo.Object, error) {
		if !ctx.hasPlayer {
			return vec(0, 0), nil
		}
		return vec(ctx.position(ctx.player)), nil
	})

	fn("player_distance", func(args ...tengo.Object) (tengo.Object, error) {
		if !ctx.hasPlayer {
			return &tengo.Float{Value: math.Inf(1)}, nil
		}
		sx, sy := ctx.position(ctx.self)
		px, py := ctx.position(ctx.player)
		return &tengo.Float{Value: math.Hypot(px-sx, py-sy)}, nil
	})

	fn("is_player_pushed", func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(ctx.hasPlayer && s.model != nil && s.model.IsBeingPushed(ctx.w, ctx.player)), nil
	})

	fn("is_player_attacking", func(args ...tengo.Object) (tengo.Object, error) {
		if !ctx.hasPlayer {
			return tengo.FalseValue, nil
		}
		mv, ok := movementOf(ctx.w, ctx.player)
		return boolObject(ok && mv.Attacking), nil
	})

	fn("item_slot", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 || s.items == nil {
			return &tengo.String{Value: component.EquipNone.String()}, nil
		}
		def, ok := s.items.FindItem(component.ItemType(objectAsString(args[0])))
		if !ok {
			return &tengo.String{Value: component.EquipNone.String()}, nil
		}
		return &tengo.String{Value: def.Equip.String()}, nil
	})

	playerCall("push_player", func(args ...tengo.Object) {
		if len(args) < 3 {
			return
		}
		s.model.PushCharacter(ctx.w, ctx.player, objectAsFloat(args[0]), objectAsFloat(args[1]), objectAsFloat(args[2]))
	})

	playerCall("freeze_player", func(args ...tengo.Object) {
		frozen := len(args) < 1 || !args[0].IsFalsy()
		s.model.SetFrozen(ctx.w, ctx.player, frozen, false)
	})

	playerCall("show_pickup", func(args ...tengo.Object) {
		if len(args) < 1 {
			return
		}
		s.model.ShowItemPickup(ctx.w, ctx.player, component.ItemType(objectAsString(args[0])))
	})

	playerCall("equip_weapon", func(args ...tengo.Object) {
		if len(args) < 1 {
			return
		}
		s.model.EquipWeapon(ctx.w, ctx.player, component.ItemType(objectAsString(args[0])))
	})

	playerCall("equip_shield", func(args ...tengo.Object) {
		if len(args) < 1 {
			return
		}
		s.model.EquipShield(ctx.w, ctx.player, component.ItemType(objectAsString(args[0])))
	})

	fn("set_color", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		sprite, ok := ecs.Get(ctx.w, ctx.self, component.SpriteComponent.Kind())
		if !ok {
			return tengo.FalseValue, nil
		}
		c, err := prefabs.ParseColor(objectAsString(args[0]))
		if err != nil {
			return tengo.FalseValue, nil
		}
		sprite.Color = c
		return tengo.TrueValue, nil
	})

	return &tengo.ImmutableMap{Value: values}
}

// normalizeParam widens YAML/JSON numbers so tengo.FromInterface accepts
// them.
func normalizeParam(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case float32:
		return float64(n)
	case uint64:
		return int64(n)
	}
	return v
}

func vec(x, y float64) *tengo.Array {
	return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: x}, &tengo.Float{Value: y}}}
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectAsFloat(obj tengo.Object) float64 {
	switch v := obj.(type) {
	case *tengo.Float:
		return v.Value
	case *tengo.Int:
		return float64(v.Value)
	}
	return 0
}
