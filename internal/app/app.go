// Package app contains the root application model: the overrides editor.
package app

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/phoenixcorp/lightdesk/internal/color"
	"github.com/phoenixcorp/lightdesk/internal/config"
	"github.com/phoenixcorp/lightdesk/internal/controller"
	"github.com/phoenixcorp/lightdesk/internal/keys"
	"github.com/phoenixcorp/lightdesk/internal/log"
	"github.com/phoenixcorp/lightdesk/internal/overrides"
	"github.com/phoenixcorp/lightdesk/internal/pubsub"
	"github.com/phoenixcorp/lightdesk/internal/resource"
	"github.com/phoenixcorp/lightdesk/internal/ui/colorpicker"
	"github.com/phoenixcorp/lightdesk/internal/ui/logoverlay"
	"github.com/phoenixcorp/lightdesk/internal/ui/toaster"
)

// sliderStep is how far one key press moves a preview slider, in percent.
const sliderStep = 5

// Preview sliders.
const (
	sliderHP = iota
	sliderResource
)

// fieldRow is one editable color in the list: a top-level field or a
// per-resource color.
type fieldRow struct {
	field    overrides.ColorField
	resource resource.Type
}

func (r fieldRow) label() string {
	if r.resource != "" {
		return r.resource.Label()
	}
	return r.field.Label()
}

func (r fieldRow) value(s overrides.State) color.Canonical {
	if r.resource != "" {
		return s.ResourceColors[r.resource]
	}
	return s.Color(r.field)
}

func fieldRows() []fieldRow {
	var rows []fieldRow
	for _, f := range overrides.ColorFields() {
		rows = append(rows, fieldRow{field: f})
	}
	for _, t := range resource.All() {
		rows = append(rows, fieldRow{resource: t})
	}
	return rows
}

// Options configures the editor.
type Options struct {
	// ConfigPath is where preview slider positions are saved. Empty disables saving.
	ConfigPath string
	Preview    config.PreviewConfig
	// DebugMode enables the log overlay.
	DebugMode bool
}

// Model is the root application state.
type Model struct {
	ctrl     *controller.Controller
	ctx      context.Context
	cancel   context.CancelFunc
	listener *pubsub.ContinuousListener[controller.Snapshot]
	snapshot controller.Snapshot

	keys     keys.KeyMap
	help     help.Model
	showHelp bool

	rows   []fieldRow
	cursor int

	picker     colorpicker.Model
	pickerOpen bool
	pickerRow  fieldRow

	previewWidth    int
	hpPercent       float64
	resourcePercent float64
	slider          int
	keyboardView    bool
	configPath      string

	toaster     toaster.Model
	debugMode   bool
	logOverlay  logoverlay.Model
	logListener *log.LogListener

	width  int
	height int
}

// Hints shown when a key is pressed while its action is unavailable.
const (
	hintLoading    = "Still loading overrides"
	hintRunning    = "OCR is already running"
	hintNotRunning = "OCR is not running"
)

// Messages produced by the commands below.
type (
	loadedMsg struct{ err error }

	actionDoneMsg struct {
		op  string
		err error
	}

	previewSavedMsg struct{ err error }
)

// New creates the editor over ctrl. The controller is loaded by Init.
func New(ctrl *controller.Controller, opts Options) Model {
	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		ctrl:            ctrl,
		ctx:             ctx,
		cancel:          cancel,
		listener:        ctrl.Listener(ctx),
		snapshot:        ctrl.Snapshot(),
		keys:            keys.DefaultKeyMap(),
		help:            help.New(),
		rows:            fieldRows(),
		picker:          colorpicker.New(),
		previewWidth:    opts.Preview.Width,
		hpPercent:       opts.Preview.HPPercent,
		resourcePercent: opts.Preview.ResourcePercent,
		configPath:      opts.ConfigPath,
		toaster:         toaster.New(),
		debugMode:       opts.DebugMode,
		logOverlay:      logoverlay.New(),
	}
	if m.previewWidth <= 0 {
		m.previewWidth = overrides.PreviewColumns
	}
	if opts.DebugMode {
		m.logListener = log.NewListener(ctx)
	}
	return m
}

// Init starts the initial load and the event listeners.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadCmd(), m.listener.Listen()}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.picker = m.picker.SetSize(msg.Width, msg.Height)
		m.logOverlay.SetSize(msg.Width, msg.Height)
		return m, nil

	case pubsub.Event[controller.Snapshot]:
		m.snapshot = msg.Payload
		return m, m.listener.Listen()

	case log.LogEvent:
		m.logOverlay.Append(msg.Payload)
		return m, m.logListener.Listen()

	case loadedMsg:
		if msg.err != nil {
			return m.showToast(controller.StatusLoadFailed, toaster.StyleError)
		}
		return m, nil

	case actionDoneMsg:
		log.Debug(log.CatUI, "Runtime action finished", "op", msg.op, "ok", msg.err == nil)
		if msg.err != nil {
			return m.showToast(m.ctrl.Snapshot().Status, toaster.StyleError)
		}
		return m.showToast(m.ctrl.Snapshot().Status, toaster.StyleSuccess)

	case previewSavedMsg:
		if msg.err != nil {
			log.ErrorErr(log.CatConfig, "Failed to save preview sliders", msg.err)
			return m.showToast("Could not save preview settings", toaster.StyleError)
		}
		return m, nil

	case toaster.DismissMsg:
		m.toaster = m.toaster.Dismiss(msg)
		return m, nil

	case logoverlay.CloseMsg:
		return m, nil

	case colorpicker.SelectMsg:
		m.pickerOpen = false
		if m.ctrl.Snapshot().Loading {
			return m.showToast(hintLoading, toaster.StyleInfo)
		}
		m.applyColor(m.pickerRow, msg.Color)
		m.snapshot = m.ctrl.Snapshot()
		return m, nil

	case colorpicker.CancelMsg:
		m.pickerOpen = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.pickerOpen {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.debugMode && key.Matches(msg, m.keys.Logs) {
		m.logOverlay.Toggle()
		return m, nil
	}
	if m.logOverlay.Visible() {
		var cmd tea.Cmd
		m.logOverlay, cmd = m.logOverlay.Update(msg)
		return m, cmd
	}
	if m.pickerOpen {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp

	case key.Matches(msg, m.keys.Escape):
		m.showHelp = false

	case key.Matches(msg, m.keys.Up):
		m.cursor = max(m.cursor-1, 0)

	case key.Matches(msg, m.keys.Down):
		m.cursor = min(m.cursor+1, len(m.rows)-1)

	case key.Matches(msg, m.keys.Edit):
		if m.ctrl.Snapshot().Loading {
			return m.showToast(hintLoading, toaster.StyleInfo)
		}
		m.pickerRow = m.rows[m.cursor]
		m.picker = m.picker.
			SetTitle(m.pickerRow.label()).
			SetSelected(m.pickerRow.value(m.snapshot.State))
		m.pickerOpen = true

	case key.Matches(msg, m.keys.Preset):
		if m.ctrl.Snapshot().Loading {
			return m.showToast(hintLoading, toaster.StyleInfo)
		}
		if _, err := m.ctrl.ApplyPreset(overrides.PresetWoW); err != nil {
			return m.showToast(err.Error(), toaster.StyleError)
		}
		m.snapshot = m.ctrl.Snapshot()

	case key.Matches(msg, m.keys.Reset):
		if m.ctrl.Snapshot().Loading {
			return m.showToast(hintLoading, toaster.StyleInfo)
		}
		m.ctrl.ResetToDefaults()
		m.snapshot = m.ctrl.Snapshot()

	case key.Matches(msg, m.keys.Reload):
		return m, m.reloadCmd()

	case key.Matches(msg, m.keys.SliderFocus):
		m.slider = (m.slider + 1) % 2

	case key.Matches(msg, m.keys.SliderDown):
		return m.moveSlider(-sliderStep)

	case key.Matches(msg, m.keys.SliderUp):
		return m.moveSlider(sliderStep)

	case key.Matches(msg, m.keys.Keyboard):
		m.keyboardView = !m.keyboardView

	case key.Matches(msg, m.keys.Start):
		switch snap := m.ctrl.Snapshot(); {
		case snap.Loading:
			return m.showToast(hintLoading, toaster.StyleInfo)
		case snap.Running:
			return m.showToast(hintRunning, toaster.StyleInfo)
		}
		return m, m.actionCmd("start", m.ctrl.Start)

	case key.Matches(msg, m.keys.Stop):
		switch snap := m.ctrl.Snapshot(); {
		case snap.Loading:
			return m.showToast(hintLoading, toaster.StyleInfo)
		case !snap.Running:
			return m.showToast(hintNotRunning, toaster.StyleInfo)
		}
		return m, m.actionCmd("stop", m.ctrl.Stop)

	case key.Matches(msg, m.keys.DefineArea):
		if m.ctrl.Snapshot().Loading {
			return m.showToast(hintLoading, toaster.StyleInfo)
		}
		return m, m.actionCmd("define_area", m.ctrl.DefineArea)
	}
	return m, nil
}

func (m Model) applyColor(row fieldRow, c color.Canonical) {
	var changed bool
	if row.resource != "" {
		_, changed = m.ctrl.SetResourceColor(row.resource, string(c))
	} else {
		_, changed = m.ctrl.SetColor(row.field, string(c))
	}
	log.Debug(log.CatUI, "Color picked", "field", row.label(), "color", c, "changed", changed)
}

func (m Model) moveSlider(delta float64) (tea.Model, tea.Cmd) {
	p := &m.hpPercent
	if m.slider == sliderResource {
		p = &m.resourcePercent
	}
	*p = min(max(*p+delta, 0), 100)

	if m.configPath == "" {
		return m, nil
	}
	return m, savePreviewCmd(m.configPath, m.hpPercent, m.resourcePercent)
}

func (m Model) showToast(message string, style toaster.Style) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.ShowTimed(message, style, toaster.DefaultDuration)
	return m, cmd
}

func (m Model) loadCmd() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return loadedMsg{err: ctrl.Load(ctx)}
	}
}

// reloadCmd refetches past any cached copy of the overrides.
func (m Model) reloadCmd() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return loadedMsg{err: ctrl.Reload(ctx)}
	}
}

func (m Model) actionCmd(op string, fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return actionDoneMsg{op: op, err: fn(ctx)}
	}
}

func savePreviewCmd(path string, hp, res float64) tea.Cmd {
	return func() tea.Msg {
		return previewSavedMsg{err: config.SavePreview(path, hp, res)}
	}
}

// Close stops the listeners and waits for pending saves.
func (m *Model) Close() {
	m.cancel()
	m.ctrl.Close()
}

// Sliders returns the current preview percentages.
func (m Model) Sliders() (hp, res float64) {
	return m.hpPercent, m.resourcePercent
}

var _ tea.Model = Model{}
