// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// GameSave is one per-minigame save slot, keyed by (user id, game id). It is
// the ephemeral per-game economy the minigame screen owns between sessions.
type GameSave struct {
	UserID    uuid.UUID          `json:"user_id"`
	GameID    string             `json:"game_id"`
	Day       int                `json:"day"`
	Funds     float64            `json:"funds"`
	Inventory map[string]int     `json:"inventory"` // Resource id -> units on hand.
	Upgrades  []string           `json:"upgrades"`
	Sliders   map[string]float64 `json:"sliders"` // Strategy/slider values by variable name.
	UpdatedAt time.Time          `json:"updated_at"`
}

// SliderFallback is the safe default substituted for corrupted slider values
// restored from a save slot.
const SliderFallback = 50.0

// Sanitize repairs a restored save in place: negative counters are clamped
// and non-finite slider values fall back to SliderFallback. Reports whether
// any repair was needed.
func (s *GameSave) Sanitize() bool {
	repaired := false

	if s.Day < 1 {
		s.Day = 1
		repaired = true
	}
	if s.Funds < 0 {
		s.Funds = 0
		repaired = true
	}
	for id, count := range s.Inventory {
		if count < 0 {
			s.Inventory[id] = 0
			repaired = true
		}
	}
	for name, v := range s.Sliders {
		if v != v || v > 1e9 || v < -1e9 { // NaN or absurd magnitude.
			s.Sliders[name] = SliderFallback
			repaired = true
		}
	}

	return repaired
}
