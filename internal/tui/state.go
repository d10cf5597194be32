package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"

	"github.com/sant0-9/promptme/internal/config"
	"github.com/sant0-9/promptme/internal/craft"
	"github.com/sant0-9/promptme/internal/library"
	"github.com/sant0-9/promptme/internal/llm"
	"github.com/sant0-9/promptme/internal/pipeline"
)

// mode is the kind of prompt being built.
type mode int

const (
	modeCraft mode = iota
	modeQuick
	modeEnhance
)

func (m mode) String() string {
	switch m {
	case modeQuick:
		return "Quick prompt"
	case modeEnhance:
		return "Enhance a prompt"
	default:
		return "Craft from a template"
	}
}

type menuItem struct {
	label string
	desc  string
}

var menu = []menuItem{
	{"Craft from a template", "Answer a few questions and get a CRAFT prompt"},
	{"Quick prompt", "Describe what you need in one line"},
	{"Enhance a prompt", "Improve a prompt you already wrote"},
	{"Template library", "Browse and create your own templates"},
	{"Settings", "Provider, model and API key"},
}

const (
	menuCraft = iota
	menuQuick
	menuEnhance
	menuLibrary
	menuSettings
)

// choice is an entry in the template picker.
type choice struct {
	name    string
	desc    string
	builtin bool
}

type state struct {
	// Config
	config     *config.Config
	needsSetup bool

	// Setup wizard state
	setupStep        int
	selectedProvider int
	apiKeyInput      textinput.Model

	// Menu
	menuSelected int
	mode         mode

	// Template flow
	choices       []choice
	choiceCursor  int
	template      string
	query         string
	questions     []string
	questionIndex int
	answers       craft.Answers

	// Target model
	modelCursor int
	targetModel string

	// Processing
	spinner         spinner.Model
	progress        *pipeline.Progress
	processingStart time.Time

	// Result
	result   *pipeline.Result
	showRaw  bool
	viewport viewport.Model
	renderer *glamour.TermRenderer
	notice   string

	// Library
	library       *library.Index
	libraryCursor int
	generating    bool
	libraryError  error

	// Settings
	settingsMode     string
	settingsSelected int

	// Input
	input textinput.Model

	// Provider
	provider      llm.Provider
	providerReady bool
	providerError error
	pipeline      *pipeline.Pipeline

	err error
}

func newState() *state {
	input := textinput.New()
	input.CharLimit = 2000
	input.Width = 60

	apiKey := textinput.New()
	apiKey.Placeholder = "Paste your API key here..."
	apiKey.EchoMode = textinput.EchoPassword
	apiKey.CharLimit = 200
	apiKey.Width = 50

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleSelected

	return &state{
		input:       input,
		apiKeyInput: apiKey,
		spinner:     sp,
		viewport:    viewport.New(80, 20),
		answers:     craft.Answers{},
	}
}

// resetFlow clears everything collected for the previous prompt.
func (s *state) resetFlow() {
	s.template = ""
	s.query = ""
	s.questions = nil
	s.questionIndex = 0
	s.answers = craft.Answers{}
	s.choiceCursor = 0
	s.progress = nil
	s.result = nil
	s.showRaw = false
	s.notice = ""
	s.err = nil
	s.input.Reset()
}

func pluralQuestions(n int) string {
	if n == 1 {
		return "1 question"
	}
	return strconv.Itoa(n) + " questions"
}

// indexOf returns the position of s in list, or 0 when absent.
func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return 0
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
