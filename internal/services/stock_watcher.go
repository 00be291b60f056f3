package services

import (
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"workshop_manager/internal/models"
)

// stockScanSchedule runs the scan at 07:00 every day.
const stockScanSchedule = "0 7 * * *"

// StockWatcher logs parts that have dropped to critical stock once a day so
// the morning shift sees what needs reordering.
type StockWatcher struct {
	db   *gorm.DB
	cron *cron.Cron
}

func NewStockWatcher(db *gorm.DB) *StockWatcher {
	return &StockWatcher{db: db}
}

// Start schedules the daily scan and runs one immediately.
func (w *StockWatcher) Start() {
	w.cron = cron.New()
	if _, err := w.cron.AddFunc(stockScanSchedule, w.Scan); err != nil {
		logrus.WithError(err).Error("could not schedule stock scan")
		return
	}
	w.cron.Start()
	logrus.Info("stock watcher started")

	w.Scan()
}

func (w *StockWatcher) Stop() {
	if w.cron != nil {
		w.cron.Stop()
	}
}

// Scan logs every part at or below the critical threshold.
func (w *StockWatcher) Scan() {
	var parts []models.Part
	if err := w.db.
		Where("quantity <= ?", CriticalStockMax).
		Order("quantity ASC").
		Find(&parts).Error; err != nil {
		logrus.WithError(err).Error("stock scan failed")
		return
	}

	for _, p := range parts {
		logrus.WithFields(logrus.Fields{
			"part":        p.ID,
			"name":        p.Name,
			"part_number": p.PartNumber,
			"on_hand":     p.Quantity,
		}).Warn("critical stock")
	}
}
