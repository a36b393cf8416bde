package game

// Phase is the state of a game session.
type Phase int

const (
	// Playing accepts placements and advances the board every step.
	Playing Phase = iota
	// Ending is entered when a column overflows. The splash is shown and
	// input is ignored until the end delay passes.
	Ending
	// GameOver shows the restart prompt; the next input starts a new game.
	GameOver
)

func (p Phase) String() string {
	switch p {
	case Playing:
		return "playing"
	case Ending:
		return "ending"
	case GameOver:
		return "game over"
	default:
		return "unknown"
	}
}
