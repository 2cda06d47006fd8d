package sim

// GameState enumerates the phases of one guessing round.
type GameState uint8

const (
	StateIdle GameState = iota
	StatePlaying
	StateShowResult
	StateWinAnim
	StateWinStats
)

func (s GameState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StateShowResult:
		return "show_result"
	case StateWinAnim:
		return "win_anim"
	case StateWinStats:
		return "win_stats"
	}
	return "unknown"
}

// Result is the outcome of the most recent guess. It is only meaningful
// outside StateIdle.
type Result uint8

const (
	ResultEntering Result = iota
	ResultLow
	ResultHigh
	ResultWin
)

func (r Result) String() string {
	switch r {
	case ResultEntering:
		return "entering"
	case ResultLow:
		return "low"
	case ResultHigh:
		return "high"
	case ResultWin:
		return "win"
	}
	return "unknown"
}

// Game is the state machine at the center of the controller. Target and
// Guess stay within [1,10]; Attempts is a 4-bit counter that wraps past 15
// and is only zeroed by returning to StateIdle; Delay counts ticks spent in
// the current timed state and resets on every transition.
type Game struct {
	State    GameState
	Target   uint8
	Guess    uint8
	Attempts uint8
	Result   Result
	Delay    uint32
}

// newGame is the reset state.
func newGame() Game {
	return Game{State: StateIdle, Target: 1, Guess: 1, Result: ResultEntering}
}

// edges is the set of one-tick button pulses consumed in a step.
type edges struct {
	start     bool
	increment bool
	submit    bool
}

// step advances the game by one tick. rnd is the generator value sampled on
// this tick; it is only looked at on the Idle->Playing transition. All
// comparisons read g, the frozen prior-tick snapshot.
func (g Game) step(e edges, rnd uint8, t Timing) Game {
	n := g
	switch g.State {
	case StateIdle:
		// Idle pins the session to its starting values until start fires.
		n.Result = ResultEntering
		n.Guess = 1
		n.Attempts = 0
		n.Delay = 0
		if e.start {
			n.State = StatePlaying
			n.Target = rnd%10 + 1
		}

	case StatePlaying:
		n.Result = ResultEntering
		if e.increment {
			n.Guess = g.Guess + 1
			if n.Guess > 10 {
				n.Guess = 1
			}
		}
		if e.submit {
			n.Attempts = (g.Attempts + 1) & 0x0F
			switch {
			case g.Guess < g.Target:
				n.Result = ResultLow
			case g.Guess > g.Target:
				n.Result = ResultHigh
			default:
				n.Result = ResultWin
			}
			n.State = StateShowResult
			n.Delay = 0
		}

	case StateShowResult:
		n.Delay = g.Delay + 1
		if n.Delay >= t.ShowResultTicks {
			n.Delay = 0
			if g.Result == ResultWin {
				n.State = StateWinAnim
			} else {
				n.Guess = 1
				n.State = StatePlaying
			}
		}

	case StateWinAnim:
		n.Delay = g.Delay + 1
		if n.Delay >= t.WinAnimTicks {
			n.Delay = 0
			n.State = StateWinStats
		}

	case StateWinStats:
		n.Delay = g.Delay + 1
		if n.Delay >= t.WinStatsTicks {
			n.Delay = 0
			n.State = StateIdle
		}

	default:
		// Unreachable state value: fail safe back to the reset state.
		n = newGame()
	}
	return n
}
