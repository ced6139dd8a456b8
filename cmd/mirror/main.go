package main

import (
	"flag"
	"fmt"
	"os"

	"mirror-scene/internal/app"
	"mirror-scene/internal/config"
	"mirror-scene/internal/graphics"
	"mirror-scene/internal/logger"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "preferences file")
	logPath := flag.String("log", logger.DefaultPath, "log file (empty for none)")
	flag.Parse()

	log := logger.New(*logPath)
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Log(err.Error())
	}
	prefs, err := config.Load(*configPath)
	if err != nil {
		log.Logf("%v; using defaults", err)
	}
	if err := config.ApplyEnv(&prefs, os.LookupEnv); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	w := prefs.Window
	if err := graphics.Run(graphics.Window{Width: w.Width, Height: w.Height, Title: w.Title, FPS: w.FPS}, app.New(&prefs, log, *configPath)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
