package canvas

import (
	"fmt"
	"time"
)

// User-facing notification texts.
const (
	msgPlaced          = "New tile placed!"
	msgReplaced        = "Tile replaced!"
	msgNothingToRemove = "No tile to remove at this position!"
	msgRemoved         = "Tile removed! +1 tile returned"
	msgMaxHeight       = "Maximum height level reached (%d)"
	msgMinHeight       = "Minimum height level reached (%d)"
	msgHeightUp        = "Height increased to level %d"
	msgHeightDown      = "Height decreased to level %d"
	msgHotbarFull      = "Hotbar is full! Remove a tile first."
	msgResumed         = "Timer resumed from where you left off!"
	msgPaused          = "Timer paused. Resume when ready."
)

func msgNoTiles(session time.Duration) string {
	return fmt.Sprintf("Complete a %d-minute work session to earn tiles!", int(session.Minutes()))
}

func msgCleared(n, height int) string {
	return fmt.Sprintf("Cleared %d tiles at height %d. +%d tiles returned", n, height, n)
}

func msgNothingToClear(height int) string {
	return fmt.Sprintf("No tiles to clear at height %d", height)
}

func msgStarted(session time.Duration) string {
	return fmt.Sprintf("Work session started! Focus for %d minutes.", int(session.Minutes()))
}

func msgCompleted(reward int, away bool) string {
	if away {
		return fmt.Sprintf("Session completed while you were away! You earned %d tiles!", reward)
	}
	return fmt.Sprintf("Session complete! You earned %d tiles!", reward)
}

func msgWelcome(starter int) string {
	return fmt.Sprintf("Welcome! You start with %d tiles. Complete work sessions to earn more!", starter)
}
