package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/config"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/ecs/entity"
	"github.com/milk9111/topdown/ecs/system"
	"github.com/milk9111/topdown/items"
	"github.com/milk9111/topdown/levels"
	"github.com/milk9111/topdown/prefabs"
)

type Game struct {
	cfg   config.Config
	world *ecs.World

	// frame runs once per Update, fixed once per fixed step, late after
	// both.
	frame *ecs.Scheduler
	fixed *ecs.Scheduler
	late  *ecs.Scheduler

	physics *system.PhysicsSystem
	render  *system.RenderSystem
	scripts *system.ScriptSystem
	model   *system.CharacterModel
	items   *items.Database
	watcher *prefabs.Watcher
	pickup  *PickupUI

	player ecs.Entity
}

func NewGame(cfg config.Config) (*Game, error) {
	db, err := items.Load(items.DefaultFile)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	if err := entity.ValidateItemPrefabs(db); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	lvl, err := levels.Load(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("game: level %q: %w", cfg.Level, err)
	}

	w := ecs.NewWorld()
	system.EnsureClock(w, cfg.TPS, cfg.FixedHz)

	model := system.NewCharacterModel(db, entity.NewPrefabSpawner())
	physics := system.NewPhysicsSystem()
	physics.SetBounds(float64(lvl.Width), float64(lvl.Height))
	scripts := system.NewScriptSystem(model, db, nil)

	g := &Game{
		cfg:     cfg,
		world:   w,
		physics: physics,
		render:  system.NewRenderSystem(),
		scripts: scripts,
		model:   model,
		items:   db,
		pickup:  NewPickupUI(),
	}

	g.frame = ecs.NewScheduler(
		system.NewTimeScaleSystem(g.onTimeScale),
		system.NewSimClockSystem(cfg.TPS, cfg.FixedHz),
		system.NewInputSystem(),
		system.NewPlayerControllerSystem(model),
		scripts,
		system.NewAttackSystem(model),
		system.NewMovementSystem(),
	)
	g.fixed = ecs.NewScheduler(
		system.NewMovementFixedSystem(),
		physics,
	)
	g.late = ecs.NewScheduler(
		system.NewAttachmentSystem(),
		system.NewPickupHoverSystem(),
		system.NewPickupBannerSystem(g.pickup, db),
	)

	if _, err := entity.LoadLevelToWorld(w, lvl); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return nil, fmt.Errorf("game: level %q has no player", cfg.Level)
	}
	g.player = player
	g.equipStarting()

	if cfg.WatchPrefabs() {
		watcher, err := prefabs.NewWatcher(prefabs.WatchDirs()...)
		if err != nil {
			log.Printf("hot reload disabled: %v", err)
		} else {
			g.watcher = watcher
		}
	}

	return g, nil
}

// equipStarting spawns visuals for items the player prefab starts with.
func (g *Game) equipStarting() {
	weapon := g.model.EquippedWeapon(g.world, g.player)
	shield := g.model.EquippedShield(g.world, g.player)
	if weapon != component.ItemNone {
		g.model.EquipWeapon(g.world, g.player, weapon)
	}
	if shield != component.ItemNone {
		g.model.EquipShield(g.world, g.player, shield)
	}
}

func (g *Game) onTimeScale(scale float64) {
	if g.cfg.Debug {
		log.Printf("time scale: %.2f", scale)
	}
}

func (g *Game) Update() error {
	g.frame.Update(g.world)
	for steps := system.FixedSteps(g.world); steps > 0; steps-- {
		g.fixed.Update(g.world)
	}
	g.late.Update(g.world)

	g.pickup.Update()

	g.world.Events().Clear()
	g.pollHotReload()
	return nil
}

func (g *Game) pollHotReload() {
	if g.watcher == nil {
		return
	}
	for _, name := range g.watcher.Poll() {
		switch {
		case name == g.items.File():
			if err := g.items.Reload(); err != nil {
				log.Printf("hot reload: items: %v", err)
				continue
			}
			if err := entity.ValidateItemPrefabs(g.items); err != nil {
				log.Printf("hot reload: items: %v", err)
			}
			log.Printf("hot reload: reloaded %s", name)
		case prefabs.IsScriptFile(name):
			g.scripts.Invalidate(name)
			log.Printf("hot reload: recompiling %s", name)
		default:
			log.Printf("hot reload: %s changed, applies to new spawns", name)
		}
	}
	select {
	case err, ok := <-g.watcher.Errors:
		if ok && err != nil {
			log.Printf("hot reload: %v", err)
		}
	default:
	}
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	g.render.Draw(g.world, screen)
	g.pickup.Draw(screen)

	if g.cfg.Debug {
		g.drawDebug(screen)
	}
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	system.DrawPhysicsDebug(g.physics.Space(), screen)
	system.DrawPlayerStateDebug(g.world, g.model, screen)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
