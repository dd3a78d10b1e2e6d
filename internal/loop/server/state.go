package server

import "slices"

// TopScoreEntry represents a single entry on the leaderboard.
type TopScoreEntry struct {
	Username string
	Score    int
	clientID int // Used for deterministic tie-break when scores are equal
}

// Leaderboard keeps the best finished games of the process, highest first.
// Only a player's best game is listed.
type Leaderboard struct {
	size    int
	entries []TopScoreEntry
}

// NewLeaderboard creates a leaderboard holding at most size entries.
func NewLeaderboard(size int) *Leaderboard {
	return &Leaderboard{size: max(size, 1)}
}

// Add records score for username and returns its 1-based rank, or 0 when it
// did not make the board or does not beat the player's listed best.
func (l *Leaderboard) Add(username string, clientID, score int) int {
	if i := slices.IndexFunc(l.entries, func(e TopScoreEntry) bool { return e.Username == username }); i >= 0 {
		if l.entries[i].Score >= score {
			return 0
		}
		l.entries = slices.Delete(l.entries, i, i+1)
	}

	entry := TopScoreEntry{Username: username, Score: score, clientID: clientID}
	pos, _ := slices.BinarySearchFunc(l.entries, entry, compareEntries)
	if pos >= l.size {
		return 0
	}
	l.entries = slices.Insert(l.entries, pos, entry)
	if len(l.entries) > l.size {
		l.entries = l.entries[:l.size]
	}
	return pos + 1
}

// Entries returns a copy of the board.
func (l *Leaderboard) Entries() []TopScoreEntry {
	return slices.Clone(l.entries)
}

// compareEntries orders by score descending, then earlier client first.
func compareEntries(a, b TopScoreEntry) int {
	if a.Score != b.Score {
		return b.Score - a.Score
	}
	return a.clientID - b.clientID
}
