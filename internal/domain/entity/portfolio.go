// Package entity contains the core business objects of the project.
package entity

import (
	"math"
	"time"
)

// PortfolioItem is one idle-income business the user owns: a hired manager
// accrues coins proportionally to elapsed real time since the last
// collection.
type PortfolioItem struct {
	BusinessID    string    `json:"business_id"`
	ManagerLevel  int       `json:"manager_level"` // Positive; raises the hourly rate linearly.
	LastCollected time.Time `json:"last_collected"`
}

// Collect computes the coins accrued since LastCollected at the given hourly
// rate, capped at the accrual window, and advances LastCollected to now.
// The timestamp never moves backward; a corrupted timestamp (zero or in the
// future) is repaired to now with a zero payout instead of propagating a
// nonsense base.
func (p *PortfolioItem) Collect(now time.Time, hourlyRate float64, accrualCap time.Duration) int {
	if p.LastCollected.IsZero() || p.LastCollected.After(now) {
		p.LastCollected = now

		return 0
	}

	elapsed := now.Sub(p.LastCollected)
	if elapsed > accrualCap {
		elapsed = accrualCap
	}

	earned := int(math.Floor(hourlyRate / 60 * elapsed.Minutes()))
	if earned < 0 {
		earned = 0
	}

	p.LastCollected = now

	return earned
}
