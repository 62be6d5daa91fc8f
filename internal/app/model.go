package app

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/jwulff/medscribe/internal/db"
	"github.com/jwulff/medscribe/internal/editor"
	"github.com/jwulff/medscribe/internal/export"
	"github.com/jwulff/medscribe/internal/speech"
	"github.com/jwulff/medscribe/internal/templates"
	"github.com/jwulff/medscribe/internal/transcript"
	"github.com/rs/zerolog"

	tea "github.com/charmbracelet/bubbletea"
)

// Mode selects which view receives keys.
type Mode int

const (
	ModeEdit Mode = iota
	ModePicker
	ModeBind
	ModeCreate
)

var errNoPrinter = errors.New("no print command configured")

// Options configures the export surfaces around the workspace.
type Options struct {
	Archive       *db.Store // nil disables archiving on save
	ExportDir     string
	DatedFilename bool
	Printer       export.Printer // nil disables printing
	Clipboard     func(string) error
	Now           func() time.Time
	Log           zerolog.Logger
}

// Model is the root bubbletea model for the dictation editor.
type Model struct {
	ws   *editor.Workspace
	opts Options
	log  zerolog.Logger

	// One editor per section, indexed by transcript.Section.
	editors []textarea.Model

	mode Mode

	// Template picker
	pickerItems []templates.Template
	pickerIndex int

	// Variable binding
	bindNames  []string
	bindInputs []textinput.Model
	bindFocus  int

	// New template form
	nameInput        textinput.Model
	contentInput     textarea.Model
	createFocus      int
	confirmOverwrite bool

	// UI state
	width  int
	height int

	// Errors
	errorMessage   string
	errorTransient bool
	errorSeq       int

	statusText string
}

// snapshot is an immutable copy of the sections handed to background commands.
type snapshot map[transcript.Section]string

func (s snapshot) Get(sec transcript.Section) string { return s[sec] }

// New creates the editor model over ws.
func New(ws *editor.Workspace, opts Options) Model {
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}

	m := Model{
		ws:         ws,
		opts:       opts,
		log:        opts.Log,
		statusText: "Ready",
	}
	for _, sec := range transcript.All() {
		m.editors = append(m.editors, newSectionEditor(sec))
	}
	m.syncEditors()
	m.editors[ws.Active()].Focus()

	m.nameInput = textinput.New()
	m.nameInput.Prompt = "Name: "
	m.nameInput.Placeholder = "e.g. Laparoscopic Appendectomy"
	m.contentInput = textarea.New()
	m.contentInput.Placeholder = "Template text with {{variables}}"
	m.contentInput.ShowLineNumbers = false
	m.contentInput.CharLimit = 0
	m.contentInput.MaxHeight = 0

	m.errorMessage = m.persistentError()
	return m
}

var camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)

func newSectionEditor(sec transcript.Section) textarea.Model {
	ta := textarea.New()
	words := strings.ToLower(camelBoundary.ReplaceAllString(sec.Key(), "$1 $2"))
	ta.Placeholder = fmt.Sprintf("Enter %s notes here...", words)
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Blur()
	return ta
}

// Init starts the cursor blink and the speech event pump.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, listenSpeechCmd(m.ws.SpeechEvents()))
}

// listenSpeechCmd waits for the next recognizer event.
func listenSpeechCmd(events <-chan speech.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return SpeechClosedMsg{}
		}
		return SpeechEventMsg{Event: ev}
	}
}

// clearTransientErrorCmd fires after a delay to clear transient errors.
func clearTransientErrorCmd(seq int) tea.Cmd {
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return ClearTransientErrorMsg{Seq: seq}
	})
}

// saveCmd writes the text report and, when an archive is open, stores a copy.
func saveCmd(doc snapshot, dir, name string, archive *db.Store) tea.Cmd {
	return func() tea.Msg {
		path, err := export.Save(dir, name, doc)
		if err != nil {
			return SavedMsg{Err: err}
		}
		msg := SavedMsg{Path: path}
		if archive != nil {
			rep, err := archive.SaveReport(export.Title, doc)
			if err != nil {
				msg.Err = fmt.Errorf("archive report: %w", err)
				return msg
			}
			msg.ReportID = rep.ID
		}
		return msg
	}
}

// printCmd renders the printable document and hands it to p.
func printCmd(p export.Printer, doc snapshot) tea.Cmd {
	return func() tea.Msg {
		html, err := export.HTML(doc)
		if err != nil {
			return PrintedMsg{Err: err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return PrintedMsg{Err: p.Print(ctx, html)}
	}
}

// copyCmd puts the text report on the clipboard.
func copyCmd(write func(string) error, doc snapshot) tea.Cmd {
	return func() tea.Msg {
		if err := write(export.Text(doc)); err != nil {
			return CopiedMsg{Err: fmt.Errorf("copy report: %w", err)}
		}
		return CopiedMsg{}
	}
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case SpeechEventMsg:
		err := m.ws.HandleSpeech(msg.Event)
		m.syncEditors()
		cmds := []tea.Cmd{listenSpeechCmd(m.ws.SpeechEvents())}
		if err != nil {
			m.statusText = "Idle"
			cmds = append(cmds, m.setError(err))
		}
		return m, tea.Batch(cmds...)

	case SpeechClosedMsg:
		if m.ws.Recording() {
			_ = m.ws.StopRecording()
		}
		m.statusText = "Speech recognizer closed"
		return m, nil

	case SavedMsg:
		if msg.Err != nil {
			return m, m.setError(msg.Err)
		}
		m.statusText = "Saved to " + msg.Path
		if msg.ReportID != "" {
			m.statusText += " (archived)"
		}
		m.log.Info().Str("path", msg.Path).Str("report", msg.ReportID).Msg("report saved")
		return m, nil

	case PrintedMsg:
		if msg.Err != nil {
			return m, m.setError(msg.Err)
		}
		m.statusText = "Sent to printer"
		return m, nil

	case CopiedMsg:
		if msg.Err != nil {
			return m, m.setError(msg.Err)
		}
		m.statusText = "Report copied to clipboard"
		return m, nil

	case ClearTransientErrorMsg:
		if m.errorTransient && msg.Seq == m.errorSeq {
			m.errorTransient = false
			m.errorMessage = m.persistentError()
		}
		return m, nil
	}

	return m.updateFocused(msg)
}

// updateFocused forwards a message to whichever input has focus.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.mode {
	case ModeEdit:
		sec := m.ws.Active()
		before := m.editors[sec].Value()
		m.editors[sec], cmd = m.editors[sec].Update(msg)
		if after := m.editors[sec].Value(); after != before {
			m.ws.Edit(sec, after)
		}
	case ModeBind:
		if m.bindFocus < len(m.bindInputs) {
			m.bindInputs[m.bindFocus], cmd = m.bindInputs[m.bindFocus].Update(msg)
		}
	case ModeCreate:
		if m.createFocus == 0 {
			before := m.nameInput.Value()
			m.nameInput, cmd = m.nameInput.Update(msg)
			if m.nameInput.Value() != before {
				m.confirmOverwrite = false
			}
		} else {
			m.contentInput, cmd = m.contentInput.Update(msg)
		}
	}
	return m, cmd
}

// handleKey routes key presses by mode. ctrl+c always quits.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == KeyCtrlC {
		if err := m.ws.Close(); err != nil {
			m.log.Warn().Err(err).Msg("close workspace")
		}
		return m, tea.Quit
	}

	switch m.mode {
	case ModePicker:
		return m.handlePickerKey(msg)
	case ModeBind:
		return m.handleBindKey(msg)
	case ModeCreate:
		return m.handleCreateKey(msg)
	}
	return m.handleEditKey(msg)
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyTab:
		m.ws.NextSection()
		return m, m.focusActive()

	case KeyShiftTab:
		m.ws.PrevSection()
		return m, m.focusActive()

	case KeyRecord:
		if !m.ws.SpeechAvailable() {
			m.errorMessage = m.persistentError()
			return m, nil
		}
		if err := m.ws.ToggleRecording(); err != nil {
			m.statusText = "Idle"
			return m, m.setError(err)
		}
		if m.ws.Recording() {
			m.statusText = "Recording"
		} else {
			m.statusText = "Idle"
		}
		return m, nil

	case KeySave:
		name := export.Filename(m.opts.DatedFilename, m.opts.Now())
		return m, saveCmd(m.snapshot(), m.opts.ExportDir, name, m.opts.Archive)

	case KeyPrint:
		if m.opts.Printer == nil {
			return m, m.setError(errNoPrinter)
		}
		return m, printCmd(m.opts.Printer, m.snapshot())

	case KeyCopy:
		return m, copyCmd(m.opts.Clipboard, m.snapshot())

	case KeyTemplates:
		m.openPicker()
		return m, nil

	case KeyNewTemplate:
		return m, m.openCreate()
	}

	return m.updateFocused(msg)
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEsc:
		return m, m.closeDialogs()

	case KeyUp, KeyK:
		if m.pickerIndex > 0 {
			m.pickerIndex--
		}
		return m, nil

	case KeyDown, KeyJ:
		if m.pickerIndex < len(m.pickerItems)-1 {
			m.pickerIndex++
		}
		return m, nil

	case KeyEnter:
		if m.pickerIndex >= len(m.pickerItems) {
			return m, nil
		}
		return m.selectTemplate(m.pickerItems[m.pickerIndex])
	}
	return m, nil
}

func (m Model) handleBindKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEsc:
		m.ws.Templates().Clear()
		return m, m.closeDialogs()

	case KeyTab, KeyDown:
		return m, m.focusBinding(m.bindFocus + 1)

	case KeyShiftTab, KeyUp:
		return m, m.focusBinding(m.bindFocus - 1)

	case KeyEnter:
		if m.bindFocus < len(m.bindInputs)-1 {
			return m, m.focusBinding(m.bindFocus + 1)
		}
		return m.applyTemplate()

	case KeyApply:
		return m.applyTemplate()
	}
	return m.updateFocused(msg)
}

func (m Model) handleCreateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEsc:
		return m, m.closeDialogs()

	case KeyTab, KeyShiftTab:
		if m.createFocus == 0 {
			m.createFocus = 1
			m.nameInput.Blur()
			return m, m.contentInput.Focus()
		}
		m.createFocus = 0
		m.contentInput.Blur()
		return m, m.nameInput.Focus()

	case KeySave:
		return m.submitTemplate()
	}
	return m.updateFocused(msg)
}

func (m *Model) openPicker() {
	m.pickerItems = m.ws.Templates().Library().List()
	m.pickerIndex = 0
	m.editors[m.ws.Active()].Blur()
	m.mode = ModePicker
}

func (m Model) selectTemplate(t templates.Template) (tea.Model, tea.Cmd) {
	if err := m.ws.SelectTemplate(t.Key); err != nil {
		return m, m.setError(err)
	}
	if len(t.Variables) == 0 {
		return m.applyTemplate()
	}

	m.bindNames = t.Variables
	m.bindInputs = make([]textinput.Model, len(t.Variables))
	for i, name := range t.Variables {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = name
		m.bindInputs[i] = in
	}
	m.mode = ModeBind
	m.bindFocus = -1
	return m, m.focusBinding(0)
}

// focusBinding moves focus to input i, wrapping around.
func (m *Model) focusBinding(i int) tea.Cmd {
	n := len(m.bindInputs)
	if n == 0 {
		return nil
	}
	i = (i%n + n) % n
	if m.bindFocus >= 0 && m.bindFocus < n {
		m.bindInputs[m.bindFocus].Blur()
	}
	m.bindFocus = i
	return m.bindInputs[i].Focus()
}

func (m Model) applyTemplate() (tea.Model, tea.Cmd) {
	for i, name := range m.bindNames {
		if err := m.ws.BindVariable(name, m.bindInputs[i].Value()); err != nil {
			return m, m.setError(err)
		}
	}
	if _, err := m.ws.ApplyTemplate(); err != nil {
		return m, m.setError(err)
	}
	if t, ok := m.ws.Templates().Selected(); ok {
		m.statusText = fmt.Sprintf("Applied %s to %s", t.Name, transcript.Operation.Title())
	}
	m.ws.SetActive(transcript.Operation)
	m.syncEditors()
	return m, m.closeDialogs()
}

func (m *Model) openCreate() tea.Cmd {
	m.nameInput.Reset()
	m.contentInput.Reset()
	m.contentInput.Blur()
	m.createFocus = 0
	m.confirmOverwrite = false
	m.editors[m.ws.Active()].Blur()
	m.mode = ModeCreate
	return m.nameInput.Focus()
}

// submitTemplate creates the template, or overwrites it when the previous
// attempt hit a key collision and the name has not changed since.
func (m Model) submitTemplate() (tea.Model, tea.Cmd) {
	name := m.nameInput.Value()
	content := m.contentInput.Value()

	var (
		t   templates.Template
		err error
	)
	if m.confirmOverwrite {
		t, err = m.ws.ReplaceTemplate(name, content)
	} else {
		t, err = m.ws.CreateTemplate(name, content)
	}

	switch {
	case errors.Is(err, templates.ErrExists):
		m.confirmOverwrite = true
		return m, m.setError(fmt.Errorf("%w; press ctrl+s again to overwrite", err))
	case err != nil:
		return m, m.setError(err)
	}

	m.statusText = fmt.Sprintf("Saved template %s (%d variables)", t.Name, len(t.Variables))
	m.log.Info().Str("template", t.Key).Bool("overwrite", m.confirmOverwrite).Msg("template saved")
	return m, m.closeDialogs()
}

// closeDialogs returns to the section editor.
func (m *Model) closeDialogs() tea.Cmd {
	m.mode = ModeEdit
	m.nameInput.Blur()
	m.contentInput.Blur()
	for i := range m.bindInputs {
		m.bindInputs[i].Blur()
	}
	m.bindInputs = nil
	m.bindNames = nil
	m.confirmOverwrite = false
	return m.focusActive()
}

// focusActive focuses the active section's editor and blurs the others.
func (m *Model) focusActive() tea.Cmd {
	active := m.ws.Active()
	for i := range m.editors {
		if transcript.Section(i) != active {
			m.editors[i].Blur()
		}
	}
	return m.editors[active].Focus()
}

// syncEditors reloads editors whose section changed outside the textarea.
// The textarea sanitizes what it is given (tabs become spaces), so the
// sanitized value is written back to keep section and editor identical.
func (m *Model) syncEditors() {
	for _, sec := range transcript.All() {
		if text := m.ws.Text(sec); m.editors[sec].Value() != text {
			m.editors[sec].SetValue(text)
			if v := m.editors[sec].Value(); v != text {
				m.ws.Edit(sec, v)
			}
		}
	}
}

func (m *Model) resize() {
	h := m.editorHeight()
	for i := range m.editors {
		m.editors[i].SetWidth(m.width)
		m.editors[i].SetHeight(h)
	}
	m.nameInput.Width = max(m.width-len(m.nameInput.Prompt)-1, 10)
	m.contentInput.SetWidth(m.width)
	m.contentInput.SetHeight(max(h-2, 3))
}

// editorHeight leaves room for header, tabs, dividers, interim line, error
// bar and footer.
func (m Model) editorHeight() int {
	return max(m.height-8, 3)
}

func (m Model) snapshot() snapshot {
	return snapshot(m.ws.Store().Snapshot())
}

// setError shows err and schedules its removal.
func (m *Model) setError(err error) tea.Cmd {
	m.log.Warn().Err(err).Msg("editor error")
	m.errorMessage = err.Error()
	m.errorTransient = true
	m.errorSeq++
	return clearTransientErrorCmd(m.errorSeq)
}

// persistentError is the message that stays up for the whole session.
func (m Model) persistentError() string {
	if m.ws.SpeechAvailable() {
		return ""
	}
	return fmt.Sprintf("%v: %s", speech.ErrCapabilityUnavailable, m.ws.SpeechUnavailableReason())
}
