package web

import (
	"github.com/tomz197/skyshooter/internal/draw"
	"github.com/tomz197/skyshooter/internal/loop"
	"github.com/tomz197/skyshooter/internal/object"
)

// Message types, both directions.
const (
	MsgTypeFrame    = "frame"
	MsgTypeShutdown = "shutdown"
	MsgTypeKeys     = "keys"
	MsgTypeCharge   = "charge"
	MsgTypeRestart  = "restart"
)

// FrameMsg carries one rendered frame and the HUD summary to the browser.
type FrameMsg struct {
	Type     string         `msgpack:"type"`
	Commands []draw.Command `msgpack:"commands"`
	Stats    loop.Stats     `msgpack:"stats"`
}

// ShutdownMsg tells the browser the server is going away.
type ShutdownMsg struct {
	Type    string `msgpack:"type"`
	Seconds int    `msgpack:"seconds"`
}

// KeysMsg is the held-key state reported by the browser.
type KeysMsg struct {
	Left  bool `msgpack:"left"`
	Right bool `msgpack:"right"`
	Up    bool `msgpack:"up"`
	Down  bool `msgpack:"down"`
	Fire  bool `msgpack:"fire"`
}

// ClientMsg is any message sent by the browser. Keys is only set for
// MsgTypeKeys.
type ClientMsg struct {
	Type string  `msgpack:"type"`
	Keys KeysMsg `msgpack:"keys"`
}

// Input converts held keys to game input.
func (k KeysMsg) Input() object.Input {
	return object.Input{Left: k.Left, Right: k.Right, Up: k.Up, Down: k.Down, Fire: k.Fire}
}
