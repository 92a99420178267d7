package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	rl "github.com/gen2brain/raylib-go/raylib"

	"shapefield/internal/commands"
	"shapefield/internal/config"
	"shapefield/internal/debug"
	"shapefield/internal/env"
	"shapefield/internal/fonts"
	"shapefield/internal/graphics"
	"shapefield/internal/logger"
	"shapefield/internal/render"
	"shapefield/internal/scene"
	"shapefield/internal/terminal"
)

var _ scene.Backend = (*render.Engine)(nil)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if err := env.Load(".env"); err != nil {
		return err
	}
	configPath := flag.String("config", env.Get(env.ConfigVar, config.DefaultPath), "YAML config file")
	logPath := flag.String("log", env.Get(env.LogVar, logger.DefaultPath), "log file, empty for memory only")
	flag.Parse()

	log := logger.New(*logPath)
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Logf("config: %v; using defaults", err)
	}

	eng := render.Open(render.Options{
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		TargetFPS: cfg.Window.TargetFPS,
		Title:     "shapefield",
	}, log)
	defer eng.Close()

	scn, err := scene.New(cfg, eng, log)
	if err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	defer scn.Close()

	reg := commands.NewRegistry()
	scn.RegisterCommands(reg, *configPath)
	term := terminal.New(log, reg)
	dbg := debug.New(scn)

	if cfg.Font != "" {
		path, err := fonts.Find(cfg.Font, fonts.BaseDirs())
		if err == nil {
			var font rl.Font
			if font, err = eng.LoadFont(path); err == nil {
				term.SetFont(font)
				dbg.SetFont(font)
				log.Logf("font: %s", path)
			}
		}
		if err != nil {
			log.Logf("font %q: %v; using default", cfg.Font, err)
		}
	}

	eng.OnResize = scn.Resize
	eng.OnPointerMove = scn.PointerMove
	eng.OnClick = scn.Click
	eng.Input = term.Update
	eng.AddOverlay(dbg.Draw)
	eng.AddOverlay(term.Draw)

	handles, meshes := eng.Stats()
	log.Logf("render: %d handles sharing %d meshes", handles, meshes)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := graphics.Run(ctx, eng, scn.Loop, scn.Tick); err != nil && ctx.Err() == nil {
		return err
	}
	log.Log("shapefield: closed")
	return nil
}
