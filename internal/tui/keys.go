package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Back   key.Binding
	Cancel key.Binding
	Quit   key.Binding
	Help   key.Binding

	// Result screen
	Copy key.Binding
	Raw  key.Binding
	New  key.Binding

	// Settings overview
	Provider key.Binding
	Model    key.Binding
	Target   key.Binding
	APIKey   key.Binding
	Optimize key.Binding
}

func binding(help, desc string, ks ...string) key.Binding {
	return key.NewBinding(key.WithKeys(ks...), key.WithHelp(help, desc))
}

var keys = keyMap{
	Up:     binding("up/k", "up", "up", "k"),
	Down:   binding("down/j", "down", "down", "j"),
	Enter:  binding("enter", "submit", "enter"),
	Back:   binding("shift+tab", "previous question", "shift+tab"),
	Cancel: binding("esc", "back", "esc"),
	Quit:   binding("esc", "quit", "esc", "ctrl+c"),
	Help:   binding("?", "help", "?"),

	Copy: binding("c", "copy", "c"),
	Raw:  binding("r", "raw/rendered", "r"),
	New:  binding("n", "new", "n"),

	Provider: binding("p", "Change provider", "p"),
	Model:    binding("m", "Change model", "m"),
	Target:   binding("t", "Change target model", "t"),
	APIKey:   binding("k", "Update API key", "k"),
	Optimize: binding("o", "Toggle optimization", "o"),
}

// shortcuts are the bindings listed on the help screen.
func (k keyMap) shortcuts() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.Back, k.Copy, k.Raw, k.New, k.Quit}
}
