package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/piwi3910/WardView/internal/model"
	"github.com/piwi3910/WardView/internal/project"
)

// showSettingsDialog displays the application settings editor. Generator
// settings take effect on the next refresh.
func (a *App) showSettingsDialog() {
	cfg := a.config

	intEntry := func(val *int) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(strconv.Itoa(*val))
		e.Validator = func(text string) error {
			v, err := strconv.Atoi(text)
			if err != nil || v <= 0 {
				return fmt.Errorf("enter a positive number")
			}
			return nil
		}
		e.OnChanged = func(text string) {
			if v, err := strconv.Atoi(text); err == nil && v > 0 {
				*val = v
			}
		}
		return e
	}

	seedEntry := widget.NewEntry()
	seedEntry.SetText(strconv.FormatInt(cfg.Seed, 10))
	seedEntry.Validator = func(text string) error {
		_, err := strconv.ParseInt(text, 10, 64)
		return err
	}
	seedEntry.OnChanged = func(text string) {
		if v, err := strconv.ParseInt(text, 10, 64); err == nil {
			cfg.Seed = v
		}
	}

	themeSelect := widget.NewSelect([]string{ThemeSystem, ThemeLight, ThemeDark}, func(selected string) {
		cfg.Theme = selected
	})
	themeSelect.SetSelected(cfg.Theme)

	levelSelect := widget.NewSelect([]string{"debug", "info", "warn", "error"}, func(selected string) {
		cfg.LogLevel = selected
	})
	levelSelect.SetSelected(cfg.LogLevel)

	formatSelect := widget.NewSelect([]string{"console", "json"}, func(selected string) {
		cfg.LogFormat = selected
	})
	formatSelect.SetSelected(cfg.LogFormat)

	formItems := []*widget.FormItem{
		widget.NewFormItem("Theme", themeSelect),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Beds per Floor", intEntry(&cfg.BedsPerFloor)),
		widget.NewFormItem("Beds per Room", intEntry(&cfg.BedsPerRoom)),
		widget.NewFormItem("Seed (0 = random)", seedEntry),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Log Level (restart)", levelSelect),
		widget.NewFormItem("Log Format (restart)", formatSelect),
	}

	d := dialog.NewForm("Settings", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			a.applyConfig(cfg)
			if err := a.saveConfig(); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
				return
			}
			a.log.Info("settings saved",
				zap.String("theme", cfg.Theme),
				zap.Int("beds_per_floor", cfg.BedsPerFloor),
				zap.Int("beds_per_room", cfg.BedsPerRoom))
			a.statusLabel.SetText("Settings saved. Refresh data to apply generator changes.")
		},
		a.window,
	)
	d.Resize(fyne.NewSize(420, 380))
	d.Show()
}

// showImportExportDialog displays the settings backup dialog.
func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButton("Export Settings...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			path := writer.URI().Path()
			writer.Close()
			if err := project.ExportAllData(path, a.config); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.log.Info("settings exported", zap.String("path", path))
			dialog.ShowInformation("Export Complete",
				fmt.Sprintf("Settings exported to:\n%s", path), a.window)
		}, a.window)
		d.SetFileName("wardview-settings.json")
		d.Show()
	})

	importBtn := widget.NewButton("Import Settings...", func() {
		dialog.ShowConfirm("Import Settings",
			"Importing will replace your current settings.\n\nAre you sure you want to continue?",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					path := reader.URI().Path()
					reader.Close()
					backup, err := project.ImportAllData(path)
					if err != nil {
						dialog.ShowError(err, a.window)
						return
					}
					a.applyConfig(backup.Config)
					if err := a.saveConfig(); err != nil {
						dialog.ShowError(fmt.Errorf("failed to save imported settings: %w", err), a.window)
						return
					}
					a.log.Info("settings imported", zap.String("path", path), zap.String("created_at", backup.CreatedAt))
					dialog.ShowInformation("Import Complete",
						fmt.Sprintf("Settings imported from backup created at %s.", backup.CreatedAt), a.window)
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export the application settings to a backup file,\nor import them from a previously exported backup."),
		widget.NewSeparator(),
		exportBtn,
		importBtn,
	)

	d := dialog.NewCustom("Import / Export Settings", "Close", content, a.window)
	d.Resize(fyne.NewSize(420, 220))
	d.Show()
}

// applyConfig replaces the config and updates what can change live: the
// theme and the generator options used by the next refresh.
func (a *App) applyConfig(cfg model.AppConfig) {
	a.config = cfg
	a.dash.Options = cfg.GenOptions()
	if a.theme.Mode() != cfg.Theme {
		a.theme.SetMode(cfg.Theme)
		a.fyneApp.Settings().SetTheme(a.theme)
		a.refresh()
	}
}

// saveConfig persists the current app config to disk.
func (a *App) saveConfig() error {
	return project.SaveAppConfig(project.DefaultConfigPath(), a.config)
}
