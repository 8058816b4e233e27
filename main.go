// Fence - a 1x16 chess variant built with Ebitengine
package main

import (
	"log"

	"github.com/calixto/fence/internal/ui"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	game, err := ui.NewGame()
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetWindowSize(ui.ScreenWidth, ui.ScreenHeight)
	ebiten.SetWindowTitle("Fence")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
