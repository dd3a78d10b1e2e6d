package main

import (
	"bufio"
	"fmt"
	"os"
	"os/user"

	"golang.org/x/term"

	"github.com/tomz197/skyshooter/internal/config"
	"github.com/tomz197/skyshooter/internal/loop/client"
	tuning "github.com/tomz197/skyshooter/internal/loop/config"
	"github.com/tomz197/skyshooter/internal/loop/server"
	"github.com/tomz197/skyshooter/internal/score"
)

func main() {
	// Log to a file: stderr shares the terminal with the game.
	logFile, err := os.OpenFile(config.GetEnv(config.EnvLogFile, os.DevNull), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := config.NewLogger(logFile, "game")

	t, err := tuning.Load(config.GetEnv(config.EnvTuning, ""))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	username := "player"
	if u, err := user.Current(); err == nil {
		username = u.Username
	}
	var store score.Store = &score.MemoryStore{}
	if dir := config.GetEnv(config.EnvScoreDir, ""); dir != "" {
		store = score.Dir{Base: dir}.For(username)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	c := client.NewClient(server.NewHub(1), bufio.NewReader(os.Stdin), os.Stdout, client.ClientOptions{
		Username: username,
		Tuning:   t,
		Store:    store,
		Logger:   logger,
	})
	if err := c.Run(); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
