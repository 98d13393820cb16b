package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/enginedemos/common"
)

func main() {
	sceneName := flag.String("scene", "", "scene to start in (bloom, physics, player); empty opens the launcher")
	debug := flag.Bool("debug", false, "draw collider outlines")
	watch := flag.Bool("watch", false, "reload the running scene when prefabs on disk change")
	flag.Parse()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("engine demos")

	game, err := NewGame(*sceneName, *debug, *watch)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
