package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/forkpoint/restaurant-pos/kds"
	"github.com/forkpoint/restaurant-pos/models"
	"github.com/forkpoint/restaurant-pos/utils"
)

// StockMonitor periodically scans the inventory ledger and broadcasts a
// stock_alert event when an item crosses the low-stock threshold. Alerts
// repeat only after an item recovers above the threshold.
type StockMonitor struct {
	DB       *gorm.DB
	StopChan chan struct{}
	Interval time.Duration

	alerted map[uint]bool
}

func NewStockMonitor(db *gorm.DB) *StockMonitor {
	return &StockMonitor{
		DB:       db,
		StopChan: make(chan struct{}),
		Interval: 30 * time.Second,
		alerted:  make(map[uint]bool),
	}
}

func (sm *StockMonitor) Start() {
	go func() {
		ticker := time.NewTicker(sm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sm.checkStock()
			case <-sm.StopChan:
				return
			}
		}
	}()
}

func (sm *StockMonitor) Stop() {
	close(sm.StopChan)
}

func (sm *StockMonitor) checkStock() {
	var items []models.InventoryItem
	if err := sm.DB.Find(&items).Error; err != nil {
		utils.ErrorLogger.Printf("Stock monitor: error fetching inventory: %v", err)
		return
	}

	for _, item := range items {
		if !item.LowStock() {
			delete(sm.alerted, item.ID)
			continue
		}
		if sm.alerted[item.ID] {
			continue
		}
		sm.alerted[item.ID] = true

		utils.InfoLogger.Printf("Low stock: %s (%d/%d)", item.Name, item.Stock, item.MaxStock)
		kds.BroadcastStockAlert(item)
		kds.BroadcastStaffNotification(
			fmt.Sprintf("Low stock: %s down to %d of %d", item.Name, item.Stock, item.MaxStock))
	}
}
