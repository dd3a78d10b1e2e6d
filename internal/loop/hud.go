package loop

// Stats is the HUD-facing summary of a game.
type Stats struct {
	Score     int  `msgpack:"score"`
	HighScore int  `msgpack:"highScore"`
	Health    int  `msgpack:"health"`
	Charges   int  `msgpack:"charges"`
	Mode      Mode `msgpack:"mode"`
	ModeLeft  int  `msgpack:"modeLeft"` // Whole seconds of firing mode left
	Escorts   int  `msgpack:"escorts"`
	GameOver  bool `msgpack:"gameOver"`
}

// HUD receives state changes the host displays outside the arena. Calls are
// made from inside a tick and must not call back into the Session.
type HUD interface {
	// Stats is called after score, health, charges or mode change.
	Stats(s Stats)
	// GameOver is called once when the game ends.
	GameOver(finalScore int)
}

// nopHUD discards updates.
type nopHUD struct{}

func (nopHUD) Stats(Stats)  {}
func (nopHUD) GameOver(int) {}
