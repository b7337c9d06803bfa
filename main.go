package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/locomotion/common"
)

func main() {
	levelPath := flag.String("level", "level.yaml", "level prefab to load")
	script := flag.String("script", "", "drive the character from a tengo script instead of the keyboard")
	watch := flag.Bool("watch", false, "hot reload prefabs and scripts from the prefabs directory")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("locomotion")
	ebiten.SetTPS(common.TPS)

	game, err := NewGame(*levelPath, *script, *watch)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
