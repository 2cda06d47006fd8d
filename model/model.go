// Package model holds the JSON wire types shared by the game server and its
// clients.
package model

// Button identifies one of the three momentary buttons.
type Button string

const (
	ButtonStart     Button = "start"
	ButtonIncrement Button = "increment"
	ButtonSubmit    Button = "submit"
)

// Valid reports whether b names a real button.
func (b Button) Valid() bool {
	switch b {
	case ButtonStart, ButtonIncrement, ButtonSubmit:
		return true
	}
	return false
}

// Button actions. A tap holds the raw line high long enough to clear the
// debounce window and then releases it; press and release give clients
// direct control of the level.
const (
	ActionTap     = "tap"
	ActionPress   = "press"
	ActionRelease = "release"
)

// ButtonEvent is sent by clients, over REST or the websocket, to drive a
// button line.
type ButtonEvent struct {
	Button Button `json:"button"`
	Action string `json:"action"`
}

// Frame is one latched display frame streamed to websocket clients. Glyphs
// are the active-low segment patterns per digit position, index 0 being the
// rightmost position.
type Frame struct {
	Glyphs   [4]uint8 `json:"glyphs"`
	State    string   `json:"state"`
	Guess    uint8    `json:"guess"`
	Attempts uint8    `json:"attempts"`
	Result   string   `json:"result"`
}

// SessionState is the REST snapshot of a session. Target is only revealed
// once the round is won, so clients cannot peek mid-game.
type SessionState struct {
	ID           string `json:"id"`
	State        string `json:"state"`
	Guess        uint8  `json:"guess"`
	Attempts     uint8  `json:"attempts"`
	Result       string `json:"result"`
	Target       uint8  `json:"target,omitempty"`
	CreatedAt    string `json:"createdAt"`
	LastActivity string `json:"lastActivity"`
}

// NewSessionResponse is returned by POST /api/session/new.
type NewSessionResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Session SessionState `json:"session"`
}

// ButtonResponse is returned by POST /api/session/{id}/button and .../reset.
type ButtonResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Session *SessionState `json:"session,omitempty"`
}
