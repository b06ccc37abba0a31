package appstate

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
)

// Command is a user intent decoded from keyboard or pointer input.
type Command int

const (
	CmdNone Command = iota
	CmdCommit
	CmdClear
	CmdZoomIn
	CmdZoomOut
	CmdNext
	CmdPrev
	CmdNudgeLeft
	CmdNudgeRight
	CmdNudgeUp
	CmdNudgeDown
	CmdRotate
	CmdFlipHorizontal
	CmdFlipVertical
	CmdCopy
	CmdQuit
)

var commandNames = map[Command]string{
	CmdNone:           "none",
	CmdCommit:         "commit-corner",
	CmdClear:          "clear-corners",
	CmdZoomIn:         "zoom-in",
	CmdZoomOut:        "zoom-out",
	CmdNext:           "next-image",
	CmdPrev:           "prev-image",
	CmdNudgeLeft:      "nudge-left",
	CmdNudgeRight:     "nudge-right",
	CmdNudgeUp:        "nudge-up",
	CmdNudgeDown:      "nudge-down",
	CmdRotate:         "rotate-90",
	CmdFlipHorizontal: "flip-horizontal",
	CmdFlipVertical:   "flip-vertical",
	CmdCopy:           "copy-postcard",
	CmdQuit:           "quit",
}

func (c Command) String() string {
	if n, ok := commandNames[c]; ok {
		return n
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// KeyShortcut describes a key that triggers a command. Either Rune or Code
// is set.
type KeyShortcut struct {
	Rune rune
	Code key.Code
}

// Binding ties a command to its shortcuts and help text.
type Binding struct {
	Command Command
	Keys    []KeyShortcut
	Help    string
}

// Bindings lists the keyboard commands in the order they are documented.
var Bindings = []Binding{
	{CmdPrev, []KeyShortcut{{Rune: 'p'}, {Code: key.CodeDeleteBackspace}}, "p, Backspace: previous image"},
	{CmdNext, []KeyShortcut{{Rune: 'n'}, {Code: key.CodeSpacebar}}, "n, Space: next image"},
	{CmdNudgeLeft, []KeyShortcut{{Code: key.CodeLeftArrow}}, "Arrows: move the cursor by half a pixel"},
	{CmdNudgeRight, []KeyShortcut{{Code: key.CodeRightArrow}}, ""},
	{CmdNudgeUp, []KeyShortcut{{Code: key.CodeUpArrow}}, ""},
	{CmdNudgeDown, []KeyShortcut{{Code: key.CodeDownArrow}}, ""},
	{CmdZoomIn, []KeyShortcut{{Rune: '+'}, {Code: key.CodeKeypadPlusSign}}, "+: zoom in"},
	{CmdZoomOut, []KeyShortcut{{Rune: '-'}, {Code: key.CodeKeypadHyphenMinus}}, "-: zoom out"},
	{CmdCommit, []KeyShortcut{{Code: key.CodeReturnEnter}, {Code: key.CodeKeypadEnter}}, "Enter, left click: place a corner"},
	{CmdClear, nil, "right click: clear corners"},
	{CmdRotate, []KeyShortcut{{Rune: 'r'}}, "r: rotate the last postcard by 90 degrees"},
	{CmdFlipHorizontal, []KeyShortcut{{Rune: 'f'}, {Rune: 'v'}}, "f, v: flip the last postcard horizontally"},
	{CmdFlipVertical, []KeyShortcut{{Rune: 'h'}}, "h: flip the last postcard vertically"},
	{CmdCopy, []KeyShortcut{{Rune: 'c'}}, "c: copy the last postcard to the clipboard"},
	{CmdQuit, []KeyShortcut{{Rune: 'q'}, {Code: key.CodeEscape}}, "q, Escape: quit"},
}

var keyboardAction = map[KeyShortcut]Command{}

func init() {
	for _, b := range Bindings {
		for _, k := range b.Keys {
			keyboardAction[k] = b.Command
		}
	}
}

// KeyHelp renders the documented bindings, one per line.
func KeyHelp() string {
	var sb strings.Builder
	for _, b := range Bindings {
		if b.Help != "" {
			fmt.Fprintf(&sb, "  %s\n", b.Help)
		}
	}
	return sb.String()
}

// commandForKey maps a key event to a command. Releases and chords with
// control, alt or meta are ignored.
func commandForKey(e key.Event) Command {
	if e.Direction == key.DirRelease {
		return CmdNone
	}
	if e.Modifiers&(key.ModControl|key.ModAlt|key.ModMeta) != 0 {
		return CmdNone
	}
	if cmd, ok := keyboardAction[KeyShortcut{Code: e.Code}]; ok {
		return cmd
	}
	if e.Rune > 0 {
		if cmd, ok := keyboardAction[KeyShortcut{Rune: unicode.ToLower(e.Rune)}]; ok {
			return cmd
		}
	}
	return CmdNone
}

// commandForMouse reports whether e should move the cursor, and which
// command it triggers. A left press commits where the cursor already is.
func commandForMouse(e mouse.Event) (move bool, cmd Command) {
	if e.Direction != mouse.DirPress {
		return true, CmdNone
	}
	switch e.Button {
	case mouse.ButtonLeft:
		return false, CmdCommit
	case mouse.ButtonRight:
		return true, CmdClear
	}
	return true, CmdNone
}
