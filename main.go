package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/profile"
)

func main() {
	configPath := flag.String("config", "", "tuning file overlaid on the built-in defaults")
	watch := flag.Bool("watch", false, "hot-reload tuning and AI scripts on change")
	debug := flag.Bool("debug", false, "show the stats overlay")
	prof := flag.Bool("profile", false, "write a CPU profile on exit")
	bots := flag.Int("bots", 11, "number of AI opponents")
	saveSlot := flag.String("slot", "auto", "save slot name")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *prof {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("zonefall")

	game, err := NewGame(GameOptions{
		ConfigPath: *configPath,
		Watch:      *watch,
		Debug:      *debug,
		Bots:       *bots,
		SaveSlot:   *saveSlot,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
