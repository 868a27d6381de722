// Package ui composes the WardView dashboard window.
package ui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"
	"go.uber.org/zap"

	"github.com/piwi3910/WardView/internal/export"
	"github.com/piwi3910/WardView/internal/importer"
	"github.com/piwi3910/WardView/internal/model"
	"github.com/piwi3910/WardView/internal/scene"
	"github.com/piwi3910/WardView/internal/ui/widgets"
)

const allFloors = "All Floors"

// App holds all application state and UI references.
type App struct {
	fyneApp fyne.App
	window  fyne.Window
	config  model.AppConfig
	log     *zap.Logger
	rng     *rand.Rand
	dash    *Dashboard
	theme   *WardViewTheme

	// UI references for dynamic updates
	hospitalCanvas *widgets.HospitalCanvas
	floorSelect    *widget.Select
	occupancyLabel *widget.Label
	bars           *widgets.OccupancyBars
	patientLabel   *widget.Label
	planContainer  *fyne.Container
	detailPanel    *fyne.Container
	statusLabel    *widget.Label
	undoBtn        *ttwidget.Button
	redoBtn        *ttwidget.Button
	undoItem       *fyne.MenuItem
	redoItem       *fyne.MenuItem
	mainMenu       *fyne.MainMenu
}

// NewApp creates the dashboard with a hospital generated from rng.
func NewApp(fyneApp fyne.App, window fyne.Window, config model.AppConfig, log *zap.Logger, rng *rand.Rand) *App {
	if log == nil {
		log = zap.NewNop()
	}
	opts := config.GenOptions()
	h := model.GenerateWithOptions(rng, opts)
	log.Info("hospital generated",
		zap.Int("floors", len(h.Floors)),
		zap.Int("beds", len(h.Beds)),
		zap.Int("patients", len(h.Patients)))

	a := &App{
		fyneApp: fyneApp,
		window:  window,
		config:  config,
		log:     log,
		rng:     rng,
		dash:    NewDashboard(h, opts, log),
		theme:   NewWardViewTheme(config.Theme),
	}
	fyneApp.Settings().SetTheme(a.theme)
	return a
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Export Census PDF...", func() {
			a.exportFile("Census report", "census.pdf", func(path string) error {
				return export.ExportCensusPDF(path, a.dash.Hospital, time.Now())
			})
		}),
		fyne.NewMenuItem("Export Census Spreadsheet...", func() {
			a.exportFile("Census spreadsheet", "census.xlsx", func(path string) error {
				return export.ExportCensusXLSX(path, a.dash.Hospital)
			})
		}),
		fyne.NewMenuItem("Print Wristbands...", func() {
			a.exportFile("Wristbands", "wristbands.pdf", func(path string) error {
				return export.ExportWristbands(path, a.dash.Hospital)
			})
		}),
		fyne.NewMenuItem("Export Floor Plan DXF...", func() {
			floorID := a.dash.FloorID
			name := "hospital.dxf"
			if floorID != "" {
				name = floorID + ".dxf"
			}
			a.exportFile("Floor plan", name, func(path string) error {
				return export.ExportFloorPlanDXF(path, a.dash.Hospital, floorID)
			})
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Bed Statuses from CSV...", func() { a.importStatuses(importer.ImportCSV) }),
		fyne.NewMenuItem("Import Bed Statuses from Excel...", func() { a.importStatuses(importer.ImportExcel) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings...", a.showSettingsDialog),
		fyne.NewMenuItem("Import / Export Settings...", a.showImportExportDialog),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	a.undoItem = fyne.NewMenuItem("Undo", a.undo)
	a.undoItem.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}
	a.redoItem = fyne.NewMenuItem("Redo", a.redo)
	a.redoItem.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift}
	editMenu := fyne.NewMenu("Edit",
		a.undoItem,
		a.redoItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear Selection", func() {
			a.dash.ClearSelection()
			a.refresh()
		}),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Refresh Data", a.refreshData),
		fyne.NewMenuItem("Reset Camera", func() {
			a.hospitalCanvas.ResetCamera()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Light Theme", func() { a.setThemeMode(ThemeLight) }),
		fyne.NewMenuItem("Dark Theme", func() { a.setThemeMode(ThemeDark) }),
		fyne.NewMenuItem("System Theme", func() { a.setThemeMode(ThemeSystem) }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.mainMenu = fyne.NewMainMenu(fileMenu, editMenu, viewMenu, helpMenu)
	a.window.SetMainMenu(a.mainMenu)

	a.window.Canvas().AddShortcut(a.undoItem.Shortcut, func(fyne.Shortcut) { a.undo() })
	a.window.Canvas().AddShortcut(a.redoItem.Shortcut, func(fyne.Shortcut) { a.redo() })
	a.updateUndoState()
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About WardView",
		"WardView: Hospital Occupancy Dashboard\n\n"+
			"An isometric 3D view of beds, patients and staff\n"+
			"across the wards of a hospital.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	a.hospitalCanvas = widgets.NewHospitalCanvas(a.log.Named("canvas"))
	a.hospitalCanvas.OnBedSelect = a.selectBed
	a.hospitalCanvas.OnPatientSelect = a.selectPatient

	a.planContainer = container.NewStack()
	center := container.NewAppTabs(
		container.NewTabItem("3D View", a.hospitalCanvas),
		container.NewTabItem("Floor Plan", a.planContainer),
	)

	a.statusLabel = widget.NewLabel("Ready")
	a.detailPanel = container.NewVBox()

	left := a.buildControlPanel()
	right := container.NewVScroll(a.detailPanel)
	right.SetMinSize(fyne.NewSize(260, 0))

	inner := container.NewHSplit(center, right)
	inner.SetOffset(0.75)
	split := container.NewHSplit(left, inner)
	split.SetOffset(0.2)

	a.refresh()
	content := container.NewBorder(nil, container.NewHBox(a.statusLabel), nil, nil, split)
	return fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas())
}

// Dispose releases the 3D scene.
func (a *App) Dispose() {
	if a.hospitalCanvas != nil {
		a.hospitalCanvas.Dispose()
	}
}

// ─── Control Panel ─────────────────────────────────────────

func (a *App) buildControlPanel() fyne.CanvasObject {
	a.floorSelect = widget.NewSelect(a.floorOptions(), nil)
	a.floorSelect.SetSelected(allFloors)
	a.floorSelect.OnChanged = a.selectFloorByName

	toolbar, buttons := newToolbar(
		toolAction{theme.ViewRefreshIcon(), "Refresh hospital data", a.refreshData},
		toolAction{theme.ZoomFitIcon(), "Reset camera", func() { a.hospitalCanvas.ResetCamera() }},
		toolAction{theme.ContentUndoIcon(), "Undo status change", a.undo},
		toolAction{theme.ContentRedoIcon(), "Redo status change", a.redo},
		toolAction{theme.ColorPaletteIcon(), "Toggle dark mode", a.toggleDarkMode},
	)
	a.undoBtn, a.redoBtn = buttons[2], buttons[3]

	a.occupancyLabel = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	a.patientLabel = widget.NewLabel("")
	a.bars = widgets.NewOccupancyBars(nil, 220)

	return container.NewVScroll(container.NewVBox(
		widget.NewLabelWithStyle("Hospital Overview", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		toolbar,
		widget.NewSeparator(),
		widget.NewLabel("Floor"),
		a.floorSelect,
		widget.NewSeparator(),
		a.occupancyLabel,
		a.patientLabel,
		widget.NewCard("Occupancy by Floor", "", a.bars),
		widget.NewCard("Legend", "", buildLegend()),
	))
}

func (a *App) floorOptions() []string {
	opts := []string{allFloors}
	for _, f := range a.dash.Hospital.Floors {
		opts = append(opts, f.Name)
	}
	return opts
}

func (a *App) selectFloorByName(name string) {
	id := ""
	for _, f := range a.dash.Hospital.Floors {
		if f.Name == name {
			id = f.ID
		}
	}
	if id == a.dash.FloorID {
		return
	}
	a.dash.SelectFloor(id)
	a.log.Debug("floor selected", zap.String("floor", id))
	a.refresh()
}

// buildLegend lists the bed and patient status colors.
func buildLegend() fyne.CanvasObject {
	entry := func(c fyne.CanvasObject, label string) fyne.CanvasObject {
		return container.NewHBox(c, widget.NewLabel(label))
	}
	swatch := func(s model.BedStatus) fyne.CanvasObject {
		r := canvas.NewRectangle(scene.BedStatusColors[s])
		r.SetMinSize(fyne.NewSize(14, 14))
		return r
	}
	dot := func(s model.PatientStatus) fyne.CanvasObject {
		c := canvas.NewCircle(scene.PatientStatusColors[s])
		return container.NewGridWrap(fyne.NewSize(14, 14), c)
	}

	items := []fyne.CanvasObject{widget.NewLabelWithStyle("Beds", fyne.TextAlignLeading, fyne.TextStyle{Italic: true})}
	for _, s := range model.BedStatuses {
		items = append(items, entry(swatch(s), s.Label()))
	}
	items = append(items, widget.NewLabelWithStyle("Patients", fyne.TextAlignLeading, fyne.TextStyle{Italic: true}))
	for _, s := range model.PatientStatuses {
		items = append(items, entry(dot(s), s.Label()))
	}
	return container.NewVBox(items...)
}

// ─── Detail Panel ──────────────────────────────────────────

func (a *App) refreshDetails() {
	a.detailPanel.RemoveAll()

	bed, hasBed := a.dash.SelectedBed()
	patient, hasPatient := a.dash.SelectedPatient()
	if !hasBed && !hasPatient {
		a.detailPanel.Add(widget.NewLabel("Click a bed or patient to see details."))
		a.detailPanel.Refresh()
		return
	}

	if hasBed {
		a.detailPanel.Add(a.buildBedCard(bed))
	}
	if hasPatient {
		a.detailPanel.Add(a.buildPatientCard(patient))
		a.detailPanel.Add(a.buildStaffCard(patient))
	}
	a.detailPanel.Refresh()
}

func (a *App) buildBedCard(b model.Bed) fyne.CanvasObject {
	labels := make([]string, len(model.BedStatuses))
	for i, s := range model.BedStatuses {
		labels[i] = s.Label()
	}
	status := widget.NewSelect(labels, nil)
	status.SetSelected(b.Status.Label())
	status.OnChanged = func(label string) {
		for _, s := range model.BedStatuses {
			if s.Label() == label {
				a.notify(a.dash.SetBedStatus(b.ID, s))
			}
		}
	}

	form := widget.NewForm(
		widget.NewFormItem("Bed", widget.NewLabel(b.ID)),
		widget.NewFormItem("Room", widget.NewLabel(b.Room)),
		widget.NewFormItem("Floor", widget.NewLabel(string(b.Floor))),
		widget.NewFormItem("Status", status),
	)
	return widget.NewCard("Bed "+b.Room, "", form)
}

func (a *App) buildPatientCard(p model.Patient) fyne.CanvasObject {
	labels := make([]string, len(model.PatientStatuses))
	for i, s := range model.PatientStatuses {
		labels[i] = s.Label()
	}
	status := widget.NewSelect(labels, nil)
	status.SetSelected(p.Status.Label())
	status.OnChanged = func(label string) {
		for _, s := range model.PatientStatuses {
			if s.Label() == label {
				a.notify(a.dash.SetPatientStatus(p.ID, s))
			}
		}
	}

	notes := widget.NewLabel(p.Notes)
	notes.Wrapping = fyne.TextWrapWord
	if p.Notes == "" {
		notes.SetText("No notes.")
	}

	form := widget.NewForm(
		widget.NewFormItem("Patient", widget.NewLabel(p.ID)),
		widget.NewFormItem("Admission", widget.NewLabel(string(p.Admission))),
		widget.NewFormItem("Condition", status),
	)
	return widget.NewCard(p.Name, "", container.NewVBox(form, widget.NewSeparator(), notes))
}

func (a *App) buildStaffCard(p model.Patient) fyne.CanvasObject {
	if len(p.Staff) == 0 {
		return widget.NewCard("Care Team", "", widget.NewLabel("No staff assigned."))
	}
	lines := make([]fyne.CanvasObject, 0, len(p.Staff))
	for _, id := range p.Staff {
		s, ok := a.dash.Hospital.FindStaff(id)
		if !ok {
			continue
		}
		lines = append(lines, container.NewHBox(
			widget.NewLabelWithStyle(s.Name, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			widget.NewLabel(strings.ToUpper(string(s.Type[:1]))+string(s.Type[1:])),
		))
	}
	return widget.NewCard("Care Team", "", container.NewVBox(lines...))
}

// ─── Actions ───────────────────────────────────────────────

func (a *App) selectBed(id string) {
	if a.dash.SelectBed(id) {
		a.log.Debug("bed selected", zap.String("bed", id))
		a.refresh()
	}
}

func (a *App) selectPatient(id string) {
	if a.dash.SelectPatient(id) {
		a.log.Debug("patient selected", zap.String("patient", id))
		a.refresh()
	}
}

func (a *App) refreshData() {
	a.notify(a.dash.Refresh(a.rng))
}

func (a *App) undo() {
	if msg, ok := a.dash.Undo(); ok {
		a.notify(msg)
	}
}

func (a *App) redo() {
	if msg, ok := a.dash.Redo(); ok {
		a.notify(msg)
	}
}

// notify shows msg in the status bar and redraws everything. Empty
// messages mean nothing changed.
func (a *App) notify(msg string) {
	if msg == "" {
		return
	}
	a.statusLabel.SetText(msg)
	a.refresh()
}

func (a *App) toggleDarkMode() {
	if a.sceneTheme() == scene.ThemeDark {
		a.setThemeMode(ThemeLight)
	} else {
		a.setThemeMode(ThemeDark)
	}
}

func (a *App) setThemeMode(mode string) {
	a.theme.SetMode(mode)
	a.fyneApp.Settings().SetTheme(a.theme)
	a.config.Theme = a.theme.Mode()
	if err := a.saveConfig(); err != nil {
		a.log.Warn("failed to save theme", zap.Error(err))
	}
	a.refresh()
}

func (a *App) sceneTheme() scene.Theme {
	if a.theme.Variant(a.fyneApp.Settings().ThemeVariant()) == theme.VariantDark {
		return scene.ThemeDark
	}
	return scene.ThemeLight
}

// refresh pushes the dashboard state into every view.
func (a *App) refresh() {
	h := a.dash.Hospital
	view := a.dash.View()

	var focus *scene.FloorFocus
	if f, ok := a.dash.Floor(); ok {
		focus = &scene.FloorFocus{ID: f.ID, Level: f.Level}
	}
	patientID := ""
	if p, ok := a.dash.SelectedPatient(); ok {
		patientID = p.ID
	}
	a.hospitalCanvas.SetScene(view, focus, len(h.Floors), patientID, a.sceneTheme())

	bedID := ""
	if b, ok := a.dash.SelectedBed(); ok {
		bedID = b.ID
	}
	a.planContainer.RemoveAll()
	a.planContainer.Add(widgets.RenderFloorPlans(view, bedID, a.selectBed))
	a.planContainer.Refresh()

	counts := model.CountPatients(view.Patients)
	a.occupancyLabel.SetText(fmt.Sprintf("Occupancy: %.1f%% of %d beds", model.OccupancyRate(view.Beds), len(view.Beds)))
	a.patientLabel.SetText(fmt.Sprintf("Patients: %d (%d critical)", len(view.Patients), counts[model.PatientCritical]))
	a.bars.SetSummaries(model.FloorSummaries(h))

	a.refreshDetails()
	a.updateUndoState()
}

func (a *App) updateUndoState() {
	if a.undoBtn != nil {
		setEnabled(a.undoBtn, a.dash.CanUndo())
		setEnabled(a.redoBtn, a.dash.CanRedo())
	}
	if a.undoItem != nil {
		a.undoItem.Disabled = !a.dash.CanUndo()
		a.redoItem.Disabled = !a.dash.CanRedo()
		a.mainMenu.Refresh()
	}
}

func setEnabled(b *ttwidget.Button, enabled bool) {
	if enabled {
		b.Enable()
	} else {
		b.Disable()
	}
}

// exportFile asks for a destination and runs write on it. Successful
// exports are added to the recent exports list.
func (a *App) exportFile(what, defaultName string, write func(path string) error) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := write(path); err != nil {
			a.log.Error("export failed", zap.String("export", what), zap.String("path", path), zap.Error(err))
			dialog.ShowError(fmt.Errorf("%s export failed: %w", what, err), a.window)
			return
		}
		a.log.Info("export written", zap.String("export", what), zap.String("path", path))
		a.config.AddRecentExport(path)
		if err := a.saveConfig(); err != nil {
			a.log.Warn("failed to record recent export", zap.Error(err))
		}
		a.statusLabel.SetText(fmt.Sprintf("%s saved to %s", what, path))
	}, a.window)
	d.SetFileName(defaultName)
	d.Show()
}

// ─── Import Functions ───────────────────────────────────────

func (a *App) importStatuses(read func(path string) importer.ImportResult) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		a.handleImportResult(path, read(path))
	}, a.window)
}

func (a *App) handleImportResult(path string, result importer.ImportResult) {
	if len(result.Errors) > 0 {
		a.log.Warn("import errors", zap.String("path", path), zap.Strings("errors", result.Errors))
		dialog.ShowError(fmt.Errorf("errors encountered during import:\n\n%s", strings.Join(result.Errors, "\n")), a.window)
	}
	if len(result.Warnings) > 0 {
		a.log.Info("import warnings", zap.String("path", path), zap.Strings("warnings", result.Warnings))
	}
	if len(result.Updates) == 0 {
		return
	}

	msg, skipped := a.dash.ApplyBedStatuses(result.Updates)
	if msg == "" {
		msg = "Import complete: no bed status changed"
	}
	if len(skipped) > 0 {
		msg += fmt.Sprintf(" (%d unknown beds skipped)", len(skipped))
	}
	a.statusLabel.SetText(msg)
	a.refresh()
}
