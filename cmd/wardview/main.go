// WardView: Hospital Occupancy Dashboard
//
// A cross-platform desktop application showing the beds, patients and
// staff of a hospital in an interactive isometric 3D view.
//
// Build:
//   go build -o wardview ./cmd/wardview
//
// Environment:
//   WARDVIEW_LOG_LEVEL  overrides the configured log level
//   WARDVIEW_SEED       fixes the generator seed

package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"github.com/piwi3910/WardView/internal/applog"
	"github.com/piwi3910/WardView/internal/model"
	"github.com/piwi3910/WardView/internal/project"
	"github.com/piwi3910/WardView/internal/ui"
)

func main() {
	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "wardview: %v, using defaults\n", err)
		config = model.DefaultAppConfig()
	}
	if err := project.ApplyEnv(&config); err != nil {
		fmt.Fprintf(os.Stderr, "wardview: %v\n", err)
		os.Exit(1)
	}

	log, err := applog.New(config.LogLevel, config.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "wardview: init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Info("starting", zap.Int64("seed", seed), zap.String("config", project.DefaultConfigPath()))

	application := app.NewWithID("com.piwi3910.wardview")
	window := application.NewWindow("WardView: Hospital Occupancy Dashboard")

	appUI := ui.NewApp(application, window, config, log, rand.New(rand.NewSource(seed)))
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.SetOnClosed(appUI.Dispose)
	window.Resize(fyne.NewSize(1400, 850))
	window.CenterOnScreen()
	window.ShowAndRun()
}
