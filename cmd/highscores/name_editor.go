package main

import (
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/rowbreak/leaderboard"
)

// nameEditor is a one-line text field fed from ebiten's character input.
type nameEditor struct {
	active bool
	text   []rune
	chars  []rune
}

func (e *nameEditor) start(current string) {
	e.active = true
	e.text = []rune(current)
}

// update consumes this frame's input. done is true once editing ended;
// name is empty when it was cancelled.
func (e *nameEditor) update() (name string, done bool) {
	e.chars = ebiten.AppendInputChars(e.chars[:0])
	for _, r := range e.chars {
		e.insert(r)
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		e.backspace()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		e.active = false
		return "", true
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		e.active = false
		return strings.TrimSpace(string(e.text)), true
	}
	return "", false
}

func (e *nameEditor) insert(r rune) {
	if len(e.text) >= leaderboard.MaxNameLength || !utf8.ValidRune(r) || r < ' ' {
		return
	}
	e.text = append(e.text, r)
}

func (e *nameEditor) backspace() {
	if len(e.text) > 0 {
		e.text = e.text[:len(e.text)-1]
	}
}

func (e *nameEditor) display() string {
	return string(e.text) + "_"
}
