package tui

import (
	"context"
	"errors"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"github.com/sant0-9/promptme/internal/config"
	"github.com/sant0-9/promptme/internal/craft"
	"github.com/sant0-9/promptme/internal/library"
	"github.com/sant0-9/promptme/internal/llm"
	"github.com/sant0-9/promptme/internal/models"
	"github.com/sant0-9/promptme/internal/optimizer"
	"github.com/sant0-9/promptme/internal/pipeline"
)

type view int

const (
	viewWelcome view = iota
	viewSetup
	viewTemplates
	viewQuestions
	viewQuery
	viewModels
	viewProcessing
	viewResult
	viewLibrary
	viewNewTemplate
	viewSettings
	viewHelp
	viewError
)

var (
	errNoProvider = errors.New("no completion service available, check settings")
	errNoLibrary  = errors.New("template library is not available")
	errNoPrompt   = errors.New("no prompt was generated, answer at least one follow-up question")
)

var clipboardWriteAll = clipboard.WriteAll

// Options configure a new App.
type Options struct {
	Config *config.Config
	// NeedsSetup starts the provider wizard before anything else.
	NeedsSetup bool
	Library    *library.Index
	Logger     *zap.Logger
}

type App struct {
	width    int
	height   int
	view     view
	state    *state
	logger   *zap.Logger
	program  *tea.Program
	cancel   context.CancelFunc
	quitting bool
}

func NewApp(opts Options) *App {
	s := newState()
	s.config = opts.Config
	if s.config == nil {
		s.config = config.DefaultConfig()
		s.needsSetup = true
	}
	s.needsSetup = s.needsSetup || opts.NeedsSetup
	s.library = opts.Library
	s.targetModel = s.config.TargetModel

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &App{
		view:   viewWelcome,
		state:  s,
		logger: logger,
	}
	s.pipeline = a.newPipeline(nil)
	return a
}

// SetProgram lets pipeline progress reach the running program.
func (a *App) SetProgram(p *tea.Program) {
	a.program = p
}

func (a *App) newPipeline(provider llm.Provider) *pipeline.Pipeline {
	opts := []pipeline.Option{
		pipeline.WithLibrary(a.state.library),
		pipeline.WithLogger(a.logger),
	}
	if provider != nil {
		opts = append(opts, pipeline.WithOptimizer(optimizer.New(provider, a.state.config.Model)))
	}

	p := pipeline.New(opts...)
	p.SetProgressCallback(func(pr pipeline.Progress) {
		if a.program != nil {
			a.program.Send(progressMsg(pr))
		}
	})
	return p
}

func (a *App) Init() tea.Cmd {
	if a.state.needsSetup {
		a.view = viewSetup
		return tea.Batch(tea.WindowSize(), textinput.Blink)
	}

	// Test provider connection
	return tea.Batch(
		tea.WindowSize(),
		a.testProvider(),
	)
}

func (a *App) testProvider() tea.Cmd {
	cfg := *a.state.config
	return func() tea.Msg {
		provider, err := llm.NewProvider(&cfg)
		if err != nil {
			return providerErrorMsg{err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := provider.Ping(ctx); err != nil {
			return providerErrorMsg{err}
		}

		return providerReadyMsg{provider}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		before := a.screen()
		if cmd := a.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		// A key that switched screens must not also be typed into the new one.
		if a.quitting || a.screen() != before {
			return a, tea.Batch(cmds...)
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()

	case setupCompleteMsg:
		a.state.needsSetup = false
		a.view = viewWelcome
		return a, a.testProvider()

	case setupErrorMsg:
		a.state.err = msg.error
		a.view = viewError
		return a, nil

	case settingsSavedMsg:
		a.state.notice = "Settings saved"
		return a, a.testProvider()

	case providerReadyMsg:
		a.state.providerReady = true
		a.state.providerError = nil
		a.state.provider = msg.provider
		a.state.pipeline = a.newPipeline(msg.provider)
		a.logger.Info("provider ready", zap.String("provider", msg.provider.Name()))
		return a, nil

	case providerErrorMsg:
		a.state.providerReady = false
		a.state.providerError = msg.error
		a.state.provider = nil
		a.state.pipeline = a.newPipeline(nil)
		a.logger.Warn("provider unavailable, prompts will be built locally", zap.Error(msg.error))
		return a, nil

	case progressMsg:
		p := pipeline.Progress(msg)
		a.state.progress = &p
		return a, nil

	case resultMsg:
		return a, a.handleResult(msg.result)

	case errorMsg:
		if a.view != viewProcessing {
			return a, nil
		}
		a.state.err = msg.error
		a.view = viewError
		return a, nil

	case templateCreatedMsg:
		a.state.generating = false
		a.state.libraryError = nil
		a.state.notice = "Created template " + msg.template.Name
		a.state.libraryCursor = indexOf(a.state.library.List(), msg.template.Name)
		a.view = viewLibrary
		return a, nil

	case templateErrorMsg:
		a.state.generating = false
		a.state.libraryError = msg.error
		return a, nil

	case copiedMsg:
		a.state.notice = "Copied to clipboard"
		return a, nil

	case copyErrorMsg:
		a.state.notice = "Copy failed: " + msg.Error()
		return a, nil

	case spinner.TickMsg:
		if a.view == viewProcessing || a.state.generating {
			var cmd tea.Cmd
			a.state.spinner, cmd = a.state.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)
	}

	// Update text inputs based on view
	switch {
	case a.view == viewSetup && a.state.setupStep == stepAPIKey,
		a.view == viewSettings && a.state.settingsMode == paneAPIKey:
		var cmd tea.Cmd
		a.state.apiKeyInput, cmd = a.state.apiKeyInput.Update(msg)
		cmds = append(cmds, cmd)
	case a.view == viewQuestions || a.view == viewQuery,
		a.view == viewNewTemplate && !a.state.generating:
		var cmd tea.Cmd
		a.state.input, cmd = a.state.input.Update(msg)
		cmds = append(cmds, cmd)
	case a.view == viewResult:
		var cmd tea.Cmd
		a.state.viewport, cmd = a.state.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

type screen struct {
	view         view
	setupStep    int
	settingsMode string
}

func (a *App) screen() screen {
	return screen{a.view, a.state.setupStep, a.state.settingsMode}
}

// resize fits the result viewport and markdown renderer to the window.
func (a *App) resize() {
	w := a.boxWidth(80)
	a.state.viewport.Width = w
	a.state.viewport.Height = max(5, a.height-12)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(w-4),
	)
	if err != nil {
		a.logger.Debug("markdown renderer unavailable", zap.Error(err))
		renderer = nil
	}
	a.state.renderer = renderer
	a.refreshResult()
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		if a.cancel != nil {
			a.cancel()
		}
		a.quitting = true
		return tea.Quit
	}

	switch a.view {
	case viewWelcome:
		return a.handleWelcomeKey(msg)
	case viewSetup:
		return a.handleSetupKey(msg)
	case viewTemplates:
		return a.handleTemplatesKey(msg)
	case viewQuestions:
		return a.handleQuestionsKey(msg)
	case viewQuery:
		return a.handleQueryKey(msg)
	case viewModels:
		return a.handleModelsKey(msg)
	case viewProcessing:
		if msg.String() == "esc" {
			if a.cancel != nil {
				a.cancel()
			}
			a.home()
		}
	case viewResult:
		return a.handleResultKey(msg)
	case viewLibrary:
		return a.handleLibraryKey(msg)
	case viewNewTemplate:
		return a.handleNewTemplateKey(msg)
	case viewSettings:
		return a.handleSettingsKey(msg)
	case viewHelp, viewError:
		if msg.String() == "esc" || msg.String() == "enter" {
			a.home()
		}
	}
	return nil
}

// home returns to the menu and forgets the current prompt.
func (a *App) home() {
	a.state.resetFlow()
	a.state.input.Blur()
	a.view = viewWelcome
}

func (a *App) handleWelcomeKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q":
		a.quitting = true
		return tea.Quit
	case "?":
		a.view = viewHelp
	case "up", "k":
		if a.state.menuSelected > 0 {
			a.state.menuSelected--
		}
	case "down", "j":
		if a.state.menuSelected < len(menu)-1 {
			a.state.menuSelected++
		}
	case "enter":
		return a.selectMenu(a.state.menuSelected)
	}
	return nil
}

func (a *App) selectMenu(item int) tea.Cmd {
	a.state.resetFlow()

	switch item {
	case menuCraft:
		a.state.mode = modeCraft
		a.state.choices = a.templateChoices()
		a.view = viewTemplates
	case menuQuick:
		a.state.mode = modeQuick
		return a.askQuery("What do you need a prompt for?")
	case menuEnhance:
		a.state.mode = modeEnhance
		return a.askQuery("Paste the prompt you want to improve...")
	case menuLibrary:
		a.state.libraryError = nil
		a.view = viewLibrary
	case menuSettings:
		a.state.settingsMode = ""
		a.view = viewSettings
	}
	return nil
}

func (a *App) askQuery(placeholder string) tea.Cmd {
	a.state.input.Placeholder = placeholder
	a.state.input.Reset()
	a.state.input.Focus()
	a.view = viewQuery
	return textinput.Blink
}

// templateChoices lists the built-in templates followed by the library.
func (a *App) templateChoices() []choice {
	var out []choice
	for _, t := range craft.Templates() {
		desc := "Describe what you need"
		if t.IsTextTransform() {
			desc = "Rewrite text you provide"
		} else if t != craft.Other {
			desc = pluralQuestions(len(t.Inputs()))
		}
		out = append(out, choice{name: t.Name(), desc: desc, builtin: true})
	}
	for _, meta := range a.state.library.All() {
		out = append(out, choice{name: meta.Name, desc: meta.Description})
	}
	return out
}

func (a *App) handleTemplatesKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		a.home()
	case "up", "k":
		if a.state.choiceCursor > 0 {
			a.state.choiceCursor--
		}
	case "down", "j":
		if a.state.choiceCursor < len(a.state.choices)-1 {
			a.state.choiceCursor++
		}
	case "enter":
		if len(a.state.choices) == 0 {
			return nil
		}
		return a.startTemplate(a.state.choices[a.state.choiceCursor].name)
	}
	return nil
}

// startTemplate begins asking the questions of a built-in or library
// template.
func (a *App) startTemplate(name string) tea.Cmd {
	a.state.mode = modeCraft
	a.state.template = name
	a.state.answers = craft.Answers{}
	a.state.questionIndex = 0

	if t, ok := craft.Lookup(name); ok {
		a.state.questions = t.Inputs()
	} else {
		a.state.questions = a.state.pipeline.FollowUpQuestions(name)
	}

	if len(a.state.questions) == 0 {
		a.chooseModel()
		return nil
	}
	return a.askQuestion()
}

func (a *App) askQuestion() tea.Cmd {
	q := a.state.questions[a.state.questionIndex]
	a.state.input.Placeholder = "Type your answer, or leave blank to skip"
	a.state.input.SetValue(a.state.answers[q])
	a.state.input.CursorEnd()
	a.state.input.Focus()
	a.view = viewQuestions
	return textinput.Blink
}

func (a *App) handleQuestionsKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.String() == "esc":
		a.home()
	case key.Matches(msg, keys.Back):
		if a.state.questionIndex > 0 {
			a.saveAnswer()
			a.state.questionIndex--
			return a.askQuestion()
		}
	case key.Matches(msg, keys.Enter):
		a.saveAnswer()
		a.state.questionIndex++
		if a.state.questionIndex < len(a.state.questions) {
			return a.askQuestion()
		}
		a.state.input.Blur()
		a.state.input.Reset()
		if a.state.mode == modeQuick {
			// Follow-up answers reuse the model picked for the query.
			return a.startProcessing()
		}
		a.chooseModel()
	}
	return nil
}

func (a *App) saveAnswer() {
	q := a.state.questions[a.state.questionIndex]
	a.state.answers[q] = a.state.input.Value()
}

func (a *App) handleQueryKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		a.home()
	case "enter":
		text := a.state.input.Value()
		if isBlank(text) {
			return nil
		}
		a.state.query = text
		a.state.input.Blur()
		a.state.input.Reset()
		a.chooseModel()
	}
	return nil
}

func (a *App) chooseModel() {
	a.state.modelCursor = 0
	for i, m := range models.All() {
		if m.ID == a.state.targetModel {
			a.state.modelCursor = i
		}
	}
	a.view = viewModels
}

func (a *App) handleModelsKey(msg tea.KeyMsg) tea.Cmd {
	all := models.All()

	switch msg.String() {
	case "esc":
		a.home()
	case "up", "k":
		if a.state.modelCursor > 0 {
			a.state.modelCursor--
		}
	case "down", "j":
		if a.state.modelCursor < len(all)-1 {
			a.state.modelCursor++
		}
	case "enter":
		a.state.targetModel = all[a.state.modelCursor].ID
		return a.startProcessing()
	}
	return nil
}

func (a *App) startProcessing() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.state.progress = nil
	a.state.processingStart = time.Now()
	a.view = viewProcessing
	return tea.Batch(a.state.spinner.Tick, a.generate(ctx))
}

// generate runs the pipeline for the current mode off the UI goroutine.
func (a *App) generate(ctx context.Context) tea.Cmd {
	p := a.state.pipeline
	m := a.state.mode
	model := a.state.targetModel
	template := a.state.template
	query := a.state.query
	optimize := a.state.config.Optimize
	answers := craft.Answers{}
	for q, v := range a.state.answers {
		answers[q] = v
	}

	return func() tea.Msg {
		var (
			res *pipeline.Result
			err error
		)
		switch m {
		case modeQuick:
			res, err = p.Quick(ctx, pipeline.QuickRequest{Model: model, Query: query, Answers: answers})
		case modeEnhance:
			res, err = p.Enhance(ctx, pipeline.EnhanceRequest{Prompt: query, Model: model})
		default:
			res, err = p.Craft(ctx, pipeline.CraftRequest{
				Model:    model,
				Template: template,
				Answers:  answers,
				Optimize: optimize,
			})
		}
		if err != nil {
			return errorMsg{err}
		}
		return resultMsg{res}
	}
}

func (a *App) handleResult(res *pipeline.Result) tea.Cmd {
	if a.view != viewProcessing {
		// Cancelled while running.
		return nil
	}

	if res.NeedsFollowUp() && a.state.mode == modeQuick {
		if len(a.state.questions) == 0 {
			a.state.questions = res.FollowUpQuestions
			a.state.questionIndex = 0
			return a.askQuestion()
		}
		if res.Prompt == "" {
			a.state.err = errNoPrompt
			a.view = viewError
			return nil
		}
	}

	if res.Warning != "" {
		a.logger.Warn("prompt built with fallback", zap.String("warning", res.Warning))
	}
	a.state.result = res
	a.state.showRaw = false
	a.state.notice = ""
	a.view = viewResult
	a.refreshResult()
	return nil
}

func (a *App) refreshResult() {
	if a.state.result == nil {
		return
	}
	content := a.state.result.Prompt
	if !a.state.showRaw && a.state.renderer != nil {
		if out, err := a.state.renderer.Render(content); err == nil {
			content = out
		}
	}
	a.state.viewport.SetContent(content)
	a.state.viewport.GotoTop()
}

func (a *App) handleResultKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit), key.Matches(msg, keys.New):
		a.home()
	case key.Matches(msg, keys.Copy):
		return copyPrompt(a.state.result.Prompt)
	case key.Matches(msg, keys.Raw):
		a.state.showRaw = !a.state.showRaw
		a.refreshResult()
	}
	return nil
}

func copyPrompt(prompt string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboardWriteAll(prompt); err != nil {
			return copyErrorMsg{err}
		}
		return copiedMsg{}
	}
}

func (a *App) handleLibraryKey(msg tea.KeyMsg) tea.Cmd {
	entries := a.state.library.List()

	switch msg.String() {
	case "esc":
		a.home()
	case "up", "k":
		if a.state.libraryCursor > 0 {
			a.state.libraryCursor--
		}
	case "down", "j":
		if a.state.libraryCursor < len(entries)-1 {
			a.state.libraryCursor++
		}
	case "enter":
		if len(entries) == 0 {
			return nil
		}
		a.state.notice = ""
		return a.startTemplate(entries[a.state.libraryCursor])
	case "n":
		switch {
		case a.state.library == nil:
			a.state.libraryError = errNoLibrary
		case a.state.provider == nil:
			a.state.libraryError = errNoProvider
		default:
			a.state.libraryError = nil
			a.state.notice = ""
			a.state.input.Placeholder = "e.g. release notes for a software version"
			a.state.input.Reset()
			a.state.input.Focus()
			a.view = viewNewTemplate
			return textinput.Blink
		}
	}
	return nil
}

func (a *App) handleNewTemplateKey(msg tea.KeyMsg) tea.Cmd {
	if a.state.generating {
		return nil
	}

	switch msg.String() {
	case "esc":
		a.state.input.Blur()
		a.view = viewLibrary
	case "enter":
		desc := a.state.input.Value()
		if isBlank(desc) {
			return nil
		}
		a.state.generating = true
		a.state.libraryError = nil
		return tea.Batch(a.state.spinner.Tick, a.createTemplate(desc))
	}
	return nil
}

func (a *App) createTemplate(desc string) tea.Cmd {
	gen := library.NewGenerator(a.state.provider, a.state.config.Model, a.state.library)
	return func() tea.Msg {
		t, err := gen.Generate(context.Background(), desc)
		if err != nil {
			return templateErrorMsg{err}
		}
		return templateCreatedMsg{t}
	}
}

type setupCompleteMsg struct{}
type setupErrorMsg struct{ error }
type settingsSavedMsg struct{}
type providerReadyMsg struct{ provider llm.Provider }
type providerErrorMsg struct{ error }
type progressMsg pipeline.Progress
type resultMsg struct{ result *pipeline.Result }
type errorMsg struct{ error }
type templateCreatedMsg struct{ template *library.Template }
type templateErrorMsg struct{ error }
type copiedMsg struct{}
type copyErrorMsg struct{ error }

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.view {
	case viewSetup:
		return a.renderSetup()
	case viewTemplates:
		return a.renderTemplates()
	case viewQuestions:
		return a.renderQuestions()
	case viewQuery:
		return a.renderQuery()
	case viewModels:
		return a.renderModels()
	case viewProcessing:
		return a.renderProcessing()
	case viewResult:
		return a.renderResult()
	case viewLibrary:
		return a.renderLibrary()
	case viewNewTemplate:
		return a.renderNewTemplate()
	case viewSettings:
		return a.renderSettings()
	case viewHelp:
		return a.renderHelp()
	case viewError:
		return a.renderError()
	default:
		return a.renderWelcome()
	}
}
