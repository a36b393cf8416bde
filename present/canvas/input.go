package canvas

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input collects the horizontal position of every press that started this
// frame: the left mouse button and each new touch.
type Input struct {
	touches []ebiten.TouchID
}

// Presses returns the x coordinate of each new press, in screen pixels.
func (in *Input) Presses() []float64 {
	var xs []float64
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, _ := ebiten.CursorPosition()
		xs = append(xs, float64(x))
	}

	in.touches = inpututil.AppendJustPressedTouchIDs(in.touches[:0])
	for _, id := range in.touches {
		x, _ := ebiten.TouchPosition(id)
		xs = append(xs, float64(x))
	}
	return xs
}
