package main

import (
	"flag"
	"fmt"
	"os"

	"fyne.io/fyne/v2/app"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lizibai0319-sys/GUI-BaseMA120001/internal/config"
	"github.com/lizibai0319-sys/GUI-BaseMA120001/internal/logging"
	"github.com/lizibai0319-sys/GUI-BaseMA120001/internal/ui"
)

var (
	Version   = "3.0.0"
	BuildTime = "unknown"
)

func main() {
	configFile := flag.String("config", "configs/spectroview.yaml", "path to the configuration file")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("spectroview v%s (build: %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		cfg = config.GetDefaultConfig()
		fmt.Fprintln(os.Stderr, "using default configuration")
	}

	log, logFile := logging.Setup(cfg.Log)
	defer func() {
		if err := logFile.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "close log file: %v\n", err)
		}
	}()
	log.Infof("spectroview v%s starting", Version)
	log.Infof("config file: %s", *configFile)

	a := app.NewWithID("io.github.spectroview")
	th, err := ui.NewTheme(cfg.View.FontPath)
	if err != nil {
		log.WithError(err).Warn("font not loaded, localized labels may not render")
	}
	a.Settings().SetTheme(th)

	w := ui.NewWindow(a, ui.Options{
		Config:   cfg,
		Logger:   log,
		Registry: prometheus.NewRegistry(),
	})
	w.ShowAndRun()
	log.Info("spectroview stopped")
}
