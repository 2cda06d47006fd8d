// Command client plays against a running numguess server: it opens a session
// over the REST API, then drives it through the websocket stream, rendering
// each latched display frame as seven-segment art.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"

	"github.com/segview/numguess/model"
	"github.com/segview/numguess/render"
)

var serverFlag = flag.String("server", "localhost:8080", "host:port of the game server")

func createSession(host string) (model.SessionState, error) {
	var state model.SessionState
	resp, err := http.Post("http://"+host+"/api/session/new", "application/json", nil)
	if err != nil {
		return state, fmt.Errorf("create session: %w", err)
	}
	defer resp.Body.Close()

	var created model.NewSessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return state, fmt.Errorf("decode session: %w", err)
	}
	if !created.Success {
		return state, fmt.Errorf("create session: %s", created.Message)
	}
	return created.Session, nil
}

func dialSession(host, id string) (*websocket.Conn, error) {
	u := url.URL{Scheme: "ws", Host: host, Path: "/api/session/" + id + "/ws"}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", u.String(), err)
	}
	return conn, nil
}

type frameMsg model.Frame

type streamErrMsg struct{ err error }

// readFrames pumps websocket frames into the bubbletea program.
func readFrames(conn *websocket.Conn, p *tea.Program) {
	for {
		var f model.Frame
		if err := conn.ReadJSON(&f); err != nil {
			p.Send(streamErrMsg{err: err})
			return
		}
		p.Send(frameMsg(f))
	}
}

type clientUI struct {
	conn     *websocket.Conn
	frame    model.Frame
	err      error
	quitting bool
}

func (m clientUI) Init() tea.Cmd { return nil }

func (m clientUI) tap(b model.Button) {
	// Write errors surface through the read loop when the socket dies.
	_ = m.conn.WriteJSON(model.ButtonEvent{Button: b, Action: model.ActionTap})
}

func (m clientUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "s":
			m.tap(model.ButtonStart)
		case "i", "up", "+":
			m.tap(model.ButtonIncrement)
		case "enter":
			m.tap(model.ButtonSubmit)
		}
		return m, nil
	case frameMsg:
		m.frame = model.Frame(msg)
		return m, nil
	case streamErrMsg:
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m clientUI) View() string {
	if m.quitting || m.err != nil {
		return ""
	}
	status := fmt.Sprintf("state: %s   guess: %d   attempts: %d   result: %s",
		m.frame.State, m.frame.Guess, m.frame.Attempts, m.frame.Result)
	help := "[s]tart  [i]ncrement  [enter] submit  [q]uit"
	return render.Board(m.frame.Glyphs) + "\n" +
		render.Status(status) + "\n" + render.Status(help) + "\n"
}

func main() {
	flag.Parse()

	session, err := createSession(*serverFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\nis the server running on %s?\n", err, *serverFlag)
		os.Exit(1)
	}

	conn, err := dialSession(*serverFlag, session.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	ui := clientUI{conn: conn, frame: model.Frame{
		Glyphs: [4]uint8{0xFF, 0xFF, 0xFF, 0xFF},
		State:  session.State,
		Guess:  session.Guess,
		Result: session.Result,
	}}
	p := tea.NewProgram(ui)
	go readFrames(conn, p)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
