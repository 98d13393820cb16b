package main

import (
	"fmt"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/enginedemos/common"
	"github.com/milk9111/enginedemos/ecs/scene"
	"github.com/milk9111/enginedemos/prefabs"
)

type Game struct {
	opts     scene.Options
	current  *scene.Scene
	launcher *ebitenui.UI
	watcher  *prefabs.Watcher

	// next is the scene picked in the launcher, loaded on the following tick
	next string
}

func NewGame(sceneName string, debug, watch bool) (*Game, error) {
	g := &Game{
		opts: scene.Options{Debug: debug, Export: exportToClipboard},
	}
	g.launcher = NewLauncherUI(g)

	if watch {
		if !prefabs.HasDiskRoot() {
			log.Printf("watch: no %s directory in the working directory", prefabs.DiskRoot)
		} else {
			w, err := prefabs.NewWatcher(prefabs.DiskRoot)
			if err != nil {
				return nil, fmt.Errorf("game: watch prefabs: %w", err)
			}
			g.watcher = w
		}
	}

	if sceneName != "" {
		if err := g.load(sceneName); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (g *Game) load(name string) error {
	s, err := scene.Load(name, g.opts)
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}
	g.current = s
	ebiten.SetWindowTitle(s.Title)
	return nil
}

// Select queues a scene switch from the launcher.
func (g *Game) Select(name string) {
	g.next = name
}

func (g *Game) Update() error {
	g.pollWatcher()

	if g.next != "" {
		name := g.next
		g.next = ""
		if err := g.load(name); err != nil {
			log.Printf("launcher: %v", err)
		}
	}

	if g.current == nil {
		g.launcher.Update()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.current = nil
		ebiten.SetWindowTitle("engine demos")
		return nil
	}

	g.current.Update()
	return nil
}

// pollWatcher rebuilds the running scene when one of its files changes.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if g.current == nil || !g.current.Spec.References(path) {
				continue
			}
			log.Printf("watch: %s changed, reloading %s", path, g.current.Name)
			if err := g.load(g.current.Name); err != nil {
				log.Printf("watch: %v", err)
			}
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("watch: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.current == nil {
		g.launcher.Draw(screen)
		return
	}
	g.current.Scheduler.Draw(g.current.World, screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("watch: close: %v", err)
		}
	}
}
