package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/promptme/internal/config"
	"github.com/sant0-9/promptme/internal/craft"
	"github.com/sant0-9/promptme/internal/library"
	"github.com/sant0-9/promptme/internal/llm/llmtest"
	"github.com/sant0-9/promptme/internal/models"
	"github.com/sant0-9/promptme/internal/pipeline"
)

func newTestApp(t *testing.T, idx *library.Index) *App {
	t.Helper()
	return NewApp(Options{Config: config.DefaultConfig(), Library: idx})
}

func press(a *App, k string) tea.Cmd {
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "shift+tab":
		msg = tea.KeyMsg{Type: tea.KeyShiftTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	_, cmd := a.Update(msg)
	return cmd
}

// finish runs the pending generation synchronously.
func finish(a *App) {
	a.Update(a.generate(context.Background())())
}

func choiceIndex(t *testing.T, a *App, name string) int {
	t.Helper()
	for i, c := range a.state.choices {
		if c.name == name {
			return i
		}
	}
	t.Fatalf("template %q not offered", name)
	return -1
}

func TestNewAppNeedsSetup(t *testing.T) {
	a := NewApp(Options{})
	a.Init()
	assert.Equal(t, viewSetup, a.view)

	a = newTestApp(t, nil)
	a.Init()
	assert.Equal(t, viewWelcome, a.view)
}

func TestCraftFlow(t *testing.T) {
	a := newTestApp(t, nil)

	press(a, "enter")
	require.Equal(t, viewTemplates, a.view)

	for range choiceIndex(t, a, craft.Email.Name()) {
		press(a, "down")
	}
	press(a, "enter")
	require.Equal(t, viewQuestions, a.view)
	assert.Equal(t, craft.Email.Name(), a.state.template)
	require.Equal(t, craft.Email.Inputs(), a.state.questions)

	for range a.state.questions {
		press(a, "the team")
		press(a, "enter")
	}
	require.Equal(t, viewModels, a.view)
	assert.Equal(t, "gpt-4o", models.All()[a.state.modelCursor].ID)
	for _, q := range a.state.questions {
		assert.Equal(t, "the team", a.state.answers[q])
	}

	require.NotNil(t, press(a, "enter"))
	require.Equal(t, viewProcessing, a.view)

	finish(a)
	require.Equal(t, viewResult, a.view)
	res := a.state.result
	require.NotNil(t, res)
	assert.Contains(t, res.Prompt, craft.Title)
	assert.Equal(t, pipeline.WarnNoService, res.Warning)
}

func TestQuestionsGoBack(t *testing.T) {
	a := newTestApp(t, nil)
	press(a, "enter")
	for range choiceIndex(t, a, craft.Memo.Name()) {
		press(a, "down")
	}
	press(a, "enter")

	press(a, "the board")
	press(a, "enter")
	require.Equal(t, 1, a.state.questionIndex)

	press(a, "shift+tab")
	assert.Equal(t, 0, a.state.questionIndex)
	assert.Equal(t, "the board", a.state.input.Value())

	press(a, "esc")
	assert.Equal(t, viewWelcome, a.view)
	assert.Empty(t, a.state.answers)
}

func TestQuickFollowUpFlow(t *testing.T) {
	a := newTestApp(t, nil)

	press(a, "down")
	press(a, "enter")
	require.Equal(t, viewQuery, a.view)
	assert.Equal(t, modeQuick, a.state.mode)

	press(a, "fix this")
	press(a, "enter")
	require.Equal(t, viewModels, a.view)
	assert.Equal(t, "fix this", a.state.query)
	press(a, "enter")

	finish(a)
	require.Equal(t, viewQuestions, a.view)
	require.Len(t, a.state.questions, 3)

	press(a, "the crash in main.go")
	press(a, "enter")
	press(a, "enter")
	cmd := press(a, "enter")
	require.NotNil(t, cmd)
	require.Equal(t, viewProcessing, a.view)

	finish(a)
	require.Equal(t, viewResult, a.view)
	assert.False(t, a.state.result.NeedsFollowUp())
	assert.NotEmpty(t, a.state.result.Framework)
	assert.Contains(t, a.state.result.Prompt, "crash in main.go")
}

func TestEnhanceFlow(t *testing.T) {
	a := newTestApp(t, nil)
	fake := &llmtest.Provider{Reply: "A sharper prompt."}
	a.Update(providerReadyMsg{fake})
	require.True(t, a.state.providerReady)

	press(a, "down")
	press(a, "down")
	press(a, "enter")
	require.Equal(t, modeEnhance, a.state.mode)

	press(a, "help me write")
	press(a, "enter")
	press(a, "enter")
	finish(a)

	require.Equal(t, viewResult, a.view)
	assert.Equal(t, "A sharper prompt.", a.state.result.Prompt)
	assert.Contains(t, llmtest.User(fake.Last()), "help me write")
}

func TestProviderErrorFallsBackToLocal(t *testing.T) {
	a := newTestApp(t, nil)
	a.Update(providerReadyMsg{&llmtest.Provider{Reply: "x"}})
	a.Update(providerErrorMsg{errors.New("connection refused")})

	assert.False(t, a.state.providerReady)
	assert.Nil(t, a.state.provider)
	assert.Contains(t, a.providerStatus(), "connection refused")
}

func TestResultKeys(t *testing.T) {
	var copied string
	orig := clipboardWriteAll
	clipboardWriteAll = func(s string) error {
		copied = s
		return nil
	}
	t.Cleanup(func() { clipboardWriteAll = orig })

	a := newTestApp(t, nil)
	a.state.mode = modeEnhance
	a.view = viewProcessing
	a.Update(resultMsg{&pipeline.Result{Prompt: "final prompt"}})
	require.Equal(t, viewResult, a.view)

	require.NotNil(t, press(a, "c"))
	a.Update(copyPrompt(a.state.result.Prompt)())
	assert.Equal(t, "final prompt", copied)
	assert.Equal(t, "Copied to clipboard", a.state.notice)

	press(a, "r")
	assert.True(t, a.state.showRaw)

	press(a, "n")
	assert.Equal(t, viewWelcome, a.view)
	assert.Nil(t, a.state.result)
}

func TestCopyFailure(t *testing.T) {
	orig := clipboardWriteAll
	clipboardWriteAll = func(string) error { return errors.New("no clipboard") }
	t.Cleanup(func() { clipboardWriteAll = orig })

	a := newTestApp(t, nil)
	a.Update(copyPrompt("x")())
	assert.Equal(t, "Copy failed: no clipboard", a.state.notice)
}

func TestCancelProcessingDropsLateResult(t *testing.T) {
	a := newTestApp(t, nil)
	press(a, "enter")
	press(a, "enter")
	for range a.state.questions {
		press(a, "enter")
	}
	press(a, "enter")
	require.Equal(t, viewProcessing, a.view)

	late := a.generate(context.Background())()
	press(a, "esc")
	require.Equal(t, viewWelcome, a.view)

	a.Update(late)
	assert.Equal(t, viewWelcome, a.view)
	assert.Nil(t, a.state.result)
}

const releaseNotes = `---
name: release-notes
description: Release notes for a software version.
questions:
  - Product name
  - Version
---

## Context:
Release notes for {{answer "Product name"}} {{answer "Version"}}.

## Task:
Write the release notes.
`

func TestLibrary(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "release-notes"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "release-notes", library.FileName), []byte(releaseNotes), 0644))
	idx, err := library.NewIndex(dir)
	require.NoError(t, err)

	a := newTestApp(t, idx)

	press(a, "enter")
	choiceIndex(t, a, "release-notes")
	press(a, "esc")

	for range menuLibrary {
		press(a, "down")
	}
	press(a, "enter")
	require.Equal(t, viewLibrary, a.view)

	press(a, "n")
	assert.Equal(t, viewLibrary, a.view)
	assert.ErrorIs(t, a.state.libraryError, errNoProvider)

	press(a, "enter")
	require.Equal(t, viewQuestions, a.view)
	assert.Equal(t, []string{"Product name", "Version"}, a.state.questions)

	press(a, "Acme")
	press(a, "enter")
	press(a, "2.0")
	press(a, "enter")
	press(a, "enter")
	finish(a)
	require.Equal(t, viewResult, a.view)
	assert.Contains(t, a.state.result.Prompt, "Release notes for Acme 2.0.")
}

func TestLibraryCreateTemplate(t *testing.T) {
	idx, err := library.NewIndex(t.TempDir())
	require.NoError(t, err)

	a := newTestApp(t, idx)
	fake := &llmtest.Provider{Reply: releaseNotes}
	a.Update(providerReadyMsg{fake})
	a.view = viewLibrary

	press(a, "n")
	require.Equal(t, viewNewTemplate, a.view)
	assert.Empty(t, a.state.input.Value())

	press(a, "release notes")
	require.NotNil(t, press(a, "enter"))
	assert.True(t, a.state.generating)

	a.Update(a.createTemplate("release notes")())
	assert.False(t, a.state.generating)
	assert.Equal(t, viewLibrary, a.view)
	assert.Equal(t, "Created template release-notes", a.state.notice)
	assert.NotNil(t, idx.Get("release-notes"))
}

func TestSetupSavesConfig(t *testing.T) {
	t.Setenv(config.EnvConfigDir, t.TempDir())

	a := NewApp(Options{Config: config.DefaultConfig(), NeedsSetup: true})
	a.Init()
	require.Equal(t, viewSetup, a.view)

	press(a, "down")
	press(a, "enter")
	require.Equal(t, 1, a.state.setupStep)
	assert.Empty(t, a.state.apiKeyInput.Value())

	press(a, "sk-test")
	require.NotNil(t, press(a, "enter"))
	require.IsType(t, setupCompleteMsg{}, a.finishSetup()())

	saved, err := config.Load()
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "openai", saved.Provider)
	assert.Equal(t, "sk-test", saved.APIKey)
}

func TestSettingsToggleOptimize(t *testing.T) {
	t.Setenv(config.EnvConfigDir, t.TempDir())

	a := newTestApp(t, nil)
	for range menuSettings {
		press(a, "down")
	}
	press(a, "enter")
	require.Equal(t, viewSettings, a.view)

	require.NotNil(t, press(a, "o"))
	assert.False(t, a.state.config.Optimize)
	require.IsType(t, settingsSavedMsg{}, a.saveSettings()())

	press(a, "k")
	assert.Equal(t, "apikey", a.state.settingsMode)
	assert.Empty(t, a.state.apiKeyInput.Value())
	press(a, "esc")
	assert.Empty(t, a.state.settingsMode)
}

func TestSettingsPickTargetModel(t *testing.T) {
	t.Setenv(config.EnvConfigDir, t.TempDir())

	a := newTestApp(t, nil)
	a.width, a.height = 100, 40
	a.view = viewSettings
	assert.Contains(t, a.View(), "Target model:")

	press(a, "t")
	require.Equal(t, paneTarget, a.state.settingsMode)
	all := models.All()
	require.Equal(t, indexOf(modelIDs(all), a.state.config.TargetModel), a.state.settingsSelected)
	assert.Contains(t, a.View(), "(current)")

	for a.state.settingsSelected > 0 {
		press(a, "up")
	}
	require.NotNil(t, press(a, "enter"))
	assert.Empty(t, a.state.settingsMode)
	assert.Equal(t, all[0].ID, a.state.config.TargetModel)
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "Not set", maskKey(""))
	assert.Equal(t, "****", maskKey("short"))
	assert.Equal(t, "sk-a****wxyz", maskKey("sk-abcdefwxyz"))
}

func modelIDs(all []models.Info) []string {
	ids := make([]string, len(all))
	for i, m := range all {
		ids[i] = m.ID
	}
	return ids
}

func TestViewsRender(t *testing.T) {
	a := newTestApp(t, nil)
	a.width, a.height = 100, 40

	assert.Contains(t, a.View(), "Craft from a template")

	press(a, "enter")
	assert.Contains(t, a.View(), "Choose a template")

	press(a, "enter")
	assert.Contains(t, a.View(), "Question 1 of")

	a.view = viewHelp
	assert.Contains(t, a.View(), "Keyboard Shortcuts")

	a.view = viewError
	a.state.err = errors.New("invalid API key")
	assert.Contains(t, a.View(), "Check your API key")
}

func TestListWindow(t *testing.T) {
	start, end := listWindow(0, 3, 10)
	assert.Equal(t, 0, start)
	assert.Equal(t, 3, end)

	start, end = listWindow(9, 16, 5)
	assert.Equal(t, 7, start)
	assert.Equal(t, 12, end)

	start, end = listWindow(15, 16, 5)
	assert.Equal(t, 11, start)
	assert.Equal(t, 16, end)
}

func TestTokenSummary(t *testing.T) {
	assert.Equal(t, 1, estimateTokens("abcd"))
	assert.Equal(t, 200000, contextLimit("claude-3-opus"))
	assert.Equal(t, 128000, contextLimit("gpt-4o"))
	assert.Equal(t, 8000, contextLimit("gpt-4"))
	assert.Equal(t, "~1 tokens (0.0% of gpt-4o context)", tokenSummary("abcd", "gpt-4o"))
}

func TestSuggestionsFor(t *testing.T) {
	assert.Contains(t, suggestionsFor("anthropic error (status 429): slow down"), "Wait a moment and try again")
	assert.Contains(t, suggestionsFor("Invalid API key"), "Or set it in .env next to the config")
	assert.Nil(t, suggestionsFor("something else"))
}
