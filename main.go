package main

import (
	"flag"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/config"
	"golang.org/x/image/colornames"
)

var backgroundColor color.Color = colornames.Darkslategray

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	debug := flag.Bool("debug", cfg.Debug, "enable debug overlay and prefab hot reload")
	hotReload := flag.Bool("hot-reload", cfg.HotReload, "reload prefabs, items and scripts when they change on disk")
	levelName := flag.String("level", cfg.Level, "level name in levels/ (basename, .json optional)")
	tps := flag.Int("tps", cfg.TPS, "simulation ticks per second")
	fixedHz := flag.Int("fixed-hz", cfg.FixedHz, "physics steps per second")
	flag.Parse()

	cfg.Debug = *debug
	cfg.HotReload = *hotReload
	cfg.Level = *levelName
	cfg.TPS = *tps
	cfg.FixedHz = *fixedHz
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("topdown")
	ebiten.SetTPS(cfg.TPS)

	game, err := NewGame(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
