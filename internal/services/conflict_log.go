package services

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/eligro/erp-integrations/internal/config"
	"github.com/eligro/erp-integrations/internal/logger"
)

// CSVConflictLog appends duplicate-email conflicts to a CSV file. The
// header row is written exactly once, when the file does not yet exist.
// Concurrent runs are not supported; a single run writes sequentially.
type CSVConflictLog struct {
	path   string
	logger *logger.Logger
	mu     sync.Mutex
}

// NewCSVConflictLog creates the conflict side channel at the configured path.
func NewCSVConflictLog(cfg *config.Config, log *logger.Logger) *CSVConflictLog {
	return &CSVConflictLog{
		path:   cfg.Sync.ConflictLogPath,
		logger: log,
	}
}

// Record appends one unresolved duplicate-email conflict.
func (c *CSVConflictLog) Record(customerID int, priorityCustomerID, email string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, statErr := os.Stat(c.path)
	writeHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(c.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open conflict log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write([]string{"CustomerID", "PriorityCustomerID", "EmailAddress"}); err != nil {
			return fmt.Errorf("failed to write conflict log header: %w", err)
		}
	}
	if err := w.Write([]string{strconv.Itoa(customerID), priorityCustomerID, email}); err != nil {
		return fmt.Errorf("failed to write conflict record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush conflict log: %w", err)
	}

	c.logger.WithField("email", email).
		WithField("atera_customer_id", customerID).
		WithField("priority_customer_id", priorityCustomerID).
		Info("Recorded duplicate email conflict")
	return nil
}
