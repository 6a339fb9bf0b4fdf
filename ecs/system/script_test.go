package system

import (
	"errors"
	"image/color"
	"testing"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

func inlineLoader(sources map[string]string, calls map[string]int) ScriptLoader {
	return func(path string) ([]byte, error) {
		if calls != nil {
			calls[path]++
		}
		src, ok := sources[path]
		if !ok {
			return nil, errors.New("not found")
		}
		return []byte(src), nil
	}
}

func newScripted(w *ecs.World, x, y float64, path string, params map[string]any) ecs.Entity {
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1})
	_ = ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{Width: 10, Height: 10})
	_ = ecs.Add(w, e, component.ScriptComponent.Kind(), &component.Script{Path: path, Params: params})
	return e
}

func newTestPlayer(w *ecs.World) ecs.Entity {
	e := newCharacter(w, true)
	_ = ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	return e
}

func TestScriptPushesPlayer(t *testing.T) {
	w := newTestWorld()
	m, _ := newTestModel()
	player := newTestPlayer(w)
	src := `
update := func(engine, state) {
	if engine.is_player_pushed() {
		return
	}
	engine.push_player(engine.param("force", 0.0), 0, engine.param("seconds", 0.1))
}
`
	newScripted(w, 0, 0, "push.tengo", map[string]any{"force": 40, "seconds": 0.5})
	sys := NewScriptSystem(m, testItems(), inlineLoader(map[string]string{"push.tengo": src}, nil))

	sys.Update(w)

	mv := movement(w, player)
	if mv.PushX != 40 || mv.PushY != 0 || mv.PushTime != 0.5 {
		t.Fatalf("expected push (40,0) for 0.5s, got %+v", mv)
	}

	mv.PushX = 0
	sys.Update(w)
	if mv.PushX != 0 {
		t.Fatalf("expected script to skip a pushed player")
	}
}

func TestChestScriptGrantsItemOnce(t *testing.T) {
	tests := []struct {
		item       string
		wantWeapon component.ItemType
		wantShield component.ItemType
	}{
		{item: "sword", wantWeapon: "sword"},
		{item: "shield", wantShield: "shield"},
		{item: "gem"},
	}

	for _, tc := range tests {
		t.Run(tc.item, func(t *testing.T) {
			w := newTestWorld()
			m, spawner := newTestModel()
			player := newTestPlayer(w)
			chest := newScripted(w, 110, 100, "chest.tengo", map[string]any{"radius": 36, "item": tc.item})
			sys := NewScriptSystem(m, testItems(), nil)

			sys.Update(w)

			if got := m.ItemBeingPickedUp(w, player); got != component.ItemType(tc.item) {
				t.Fatalf("expected %s shown, got %q", tc.item, got)
			}
			if !m.IsFrozen(w, player) {
				t.Fatalf("expected player frozen")
			}
			if m.EquippedWeapon(w, player) != tc.wantWeapon || m.EquippedShield(w, player) != tc.wantShield {
				t.Fatalf("unexpected equipment: weapon %q shield %q", m.EquippedWeapon(w, player), m.EquippedShield(w, player))
			}
			sprite, _ := ecs.Get(w, chest, component.SpriteComponent.Kind())
			if sprite.Color != (color.NRGBA{R: 0x5c, G: 0x4a, B: 0x1e, A: 0xff}) {
				t.Fatalf("expected opened chest color, got %v", sprite.Color)
			}

			spawned := len(spawner.spawned)
			nextFrame(w)
			m.SetDirection(w, player, 1, 0)
			sys.Update(w)
			if m.ItemBeingPickedUp(w, player) != component.ItemNone || len(spawner.spawned) != spawned {
				t.Fatalf("expected chest to grant only once")
			}
		})
	}
}

func TestChestScriptOutOfRange(t *testing.T) {
	w := newTestWorld()
	m, _ := newTestModel()
	player := newTestPlayer(w)
	newScripted(w, 500, 500, "chest.tengo", map[string]any{"radius": 36, "item": "sword"})

	NewScriptSystem(m, testItems(), nil).Update(w)

	if m.ItemBeingPickedUp(w, player) != component.ItemNone || m.EquippedWeapon(w, player) != component.ItemNone {
		t.Fatalf("expected nothing granted out of range")
	}
}

func TestBumperScriptPushesAway(t *testing.T) {
	w := newTestWorld()
	m, _ := newTestModel()
	player := newTestPlayer(w)
	newScripted(w, 100, 130, "bumper.tengo", map[string]any{"radius": 40, "force": 300, "seconds": 0.3})

	NewScriptSystem(m, testItems(), nil).Update(w)

	mv := movement(w, player)
	if mv.PushTime != 0.3 || mv.PushX != 0 || mv.PushY != -300 {
		t.Fatalf("expected push straight up at 300 for 0.3s, got %+v", mv)
	}
}

func TestScriptSkippedWhilePaused(t *testing.T) {
	w := newTestWorld()
	m, _ := newTestModel()
	player := newTestPlayer(w)
	newScripted(w, 100, 130, "bumper.tengo", nil)
	RequestTimeScale(w, 0, 0)

	NewScriptSystem(m, testItems(), nil).Update(w)

	if m.IsBeingPushed(w, player) {
		t.Fatalf("expected scripts not to run while paused")
	}
}

func TestScriptErrorsAreNotRetried(t *testing.T) {
	w := newTestWorld()
	m, _ := newTestModel()
	newTestPlayer(w)
	calls := map[string]int{}
	sources := map[string]string{
		"broken.tengo": `update := func(engine, state) {`,
		"panic.tengo":  `update := func(engine, state) { z := 0; x := 1 / z }`,
	}
	newScripted(w, 0, 0, "broken.tengo", nil)
	newScripted(w, 0, 0, "panic.tengo", nil)
	newScripted(w, 0, 0, "missing.tengo", nil)
	sys := NewScriptSystem(m, testItems(), inlineLoader(sources, calls))

	for i := 0; i < 3; i++ {
		sys.Update(w)
	}
	for _, path := range []string{"broken.tengo", "panic.tengo", "missing.tengo"} {
		if calls[path] != 1 {
			t.Fatalf("expected %s loaded once, got %d", path, calls[path])
		}
	}

	sources["broken.tengo"] = `update := func(engine, state) {}`
	sys.Invalidate("scripts/broken.tengo")
	sys.Update(w)
	if calls["broken.tengo"] != 2 {
		t.Fatalf("expected invalidated script reloaded, got %d loads", calls["broken.tengo"])
	}
	if calls["panic.tengo"] != 1 {
		t.Fatalf("expected other failed scripts left alone")
	}
}

func TestScriptRuntimePanicSkipsOnlyThatScript(t *testing.T) {
	w := newTestWorld()
	m, _ := newTestModel()
	player := newTestPlayer(w)
	sources := map[string]string{
		"divide.tengo": `update := func(engine, state) { d := engine.param("d", 0); x := 10 / d }`,
		"push.tengo":   `update := func(engine, state) { engine.push_player(5, 0, 1) }`,
	}
	calls := map[string]int{}
	divide := newScripted(w, 0, 0, "divide.tengo", nil)
	newScripted(w, 0, 0, "push.tengo", nil)
	sys := NewScriptSystem(m, testItems(), inlineLoader(sources, calls))

	for i := 0; i < 2; i++ {
		sys.Update(w)
	}

	if !m.IsBeingPushed(w, player) {
		t.Fatalf("expected healthy script to keep running")
	}
	if sys.failed[divide] != "divide.tengo" {
		t.Fatalf("expected panicking script marked failed, got %v", sys.failed)
	}
	if calls["divide.tengo"] != 1 {
		t.Fatalf("expected failed script not reloaded, got %d loads", calls["divide.tengo"])
	}
}

func TestFailedScriptsForgottenWithTheirEntity(t *testing.T) {
	tests := []struct {
		name   string
		remove func(w *ecs.World, e ecs.Entity)
	}{
		{name: "destroyed", remove: func(w *ecs.World, e ecs.Entity) { ecs.DestroyEntity(w, e) }},
		{name: "script removed", remove: func(w *ecs.World, e ecs.Entity) {
			ecs.Remove(w, e, component.ScriptComponent.Kind())
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld()
			m, _ := newTestModel()
			newTestPlayer(w)
			e := newScripted(w, 0, 0, "missing.tengo", nil)
			sys := NewScriptSystem(m, testItems(), inlineLoader(nil, nil))

			sys.Update(w)
			if len(sys.failed) != 1 {
				t.Fatalf("expected one failed script, got %v", sys.failed)
			}

			tc.remove(w, e)
			sys.Update(w)
			if len(sys.failed) != 0 || len(sys.cache) != 0 {
				t.Fatalf("expected bookkeeping cleared, failed %v cache %d", sys.failed, len(sys.cache))
			}
		})
	}
}

func TestScriptStatePersistsUntilInvalidated(t *testing.T) {
	w := newTestWorld()
	m, _ := newTestModel()
	player := newTestPlayer(w)
	src := `
update := func(engine, state) {
	if is_undefined(state.n) {
		state.n = 0
	}
	state.n = state.n + 1
	if state.n == 3 {
		engine.freeze_player(true)
	}
}
`
	newScripted(w, 0, 0, "count.tengo", nil)
	sys := NewScriptSystem(m, testItems(), inlineLoader(map[string]string{"count.tengo": src}, nil))

	sys.Update(w)
	sys.Update(w)
	if m.IsFrozen(w, player) {
		t.Fatalf("expected no freeze before third run")
	}
	sys.Update(w)
	if !m.IsFrozen(w, player) {
		t.Fatalf("expected freeze on third run")
	}

	m.SetFrozen(w, player, false, false)
	sys.Invalidate("")
	sys.Update(w)
	sys.Update(w)
	if m.IsFrozen(w, player) {
		t.Fatalf("expected state reset by invalidation")
	}
}
