package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPortfolioCollect_ProRataEarnings(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	item := &PortfolioItem{BusinessID: "biz-lemonade", ManagerLevel: 1, LastCollected: now.Add(-90 * time.Minute)}

	earned := item.Collect(now, 10, 24*time.Hour)

	assert.Equal(t, 15, earned) // floor(10/60 * 90)
	assert.Equal(t, now, item.LastCollected)
}

func TestPortfolioCollect_CappedAtAccrualWindow(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	item := &PortfolioItem{BusinessID: "biz-arcade", ManagerLevel: 1, LastCollected: now.Add(-72 * time.Hour)}

	earned := item.Collect(now, 10, 24*time.Hour)

	assert.Equal(t, 240, earned) // floor(10/60 * 1440)
}

func TestPortfolioCollect_CorruptTimestampRepaired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	item := &PortfolioItem{BusinessID: "biz-arcade", ManagerLevel: 2}
	assert.Equal(t, 0, item.Collect(now, 10, 24*time.Hour), "zero timestamp pays nothing")
	assert.Equal(t, now, item.LastCollected)

	item = &PortfolioItem{BusinessID: "biz-arcade", ManagerLevel: 2, LastCollected: now.Add(time.Hour)}
	assert.Equal(t, 0, item.Collect(now, 10, 24*time.Hour), "future timestamp pays nothing")
	assert.Equal(t, now, item.LastCollected)
}

func TestPortfolioCollect_TimestampNeverMovesBackward(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	item := &PortfolioItem{BusinessID: "biz-lemonade", ManagerLevel: 1, LastCollected: now.Add(-time.Hour)}

	item.Collect(now, 10, 24*time.Hour)
	first := item.LastCollected

	item.Collect(now, 10, 24*time.Hour)
	assert.False(t, item.LastCollected.Before(first))
	assert.Equal(t, 0, item.Collect(now, 10, 24*time.Hour), "immediate re-collection pays nothing")
}
