package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/jumpctl/common"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var CLI struct {
	Debug   bool   `help:"Draw physics shapes and log jump events." short:"d"`
	Level   string `help:"Level in levels/ (basename, .tmx optional)." default:"practice"`
	Spec    string `help:"Controller spec in prefabs/." default:"controller.yaml"`
	Script  string `help:"Drive the player from prefabs/scripts/<name>.tengo instead of the keyboard."`
	NoWatch bool   `help:"Do not reload specs and scripts when they change on disk."`
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	kong.Parse(&CLI,
		kong.Name("jumpctl"),
		kong.Description("platformer jump-timing playground"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	game, err := NewGame(Options{
		Level:  CLI.Level,
		Spec:   CLI.Spec,
		Script: CLI.Script,
		Debug:  CLI.Debug,
		Watch:  !CLI.NoWatch,
	}, log.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("jumpctl")
	// Update runs once per rendered frame; fixed steps are paced by the loop.
	ebiten.SetTPS(ebiten.SyncWithFPS)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal().Err(err).Msg("game exited")
	}
}
