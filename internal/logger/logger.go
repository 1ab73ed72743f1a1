package logger

import (
	"github.com/eligro/erp-integrations/internal/config"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus.Logger with additional functionality
type Logger struct {
	*logrus.Logger
}

// NewLogger creates a new structured logger instance
func NewLogger(cfg *config.Config) *Logger {
	log := logrus.New()

	// Set log level
	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	// Set log format
	if cfg.Logging.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return &Logger{Logger: log}
}

// WithCustomer adds Priority customer context to log entries
func (l *Logger) WithCustomer(custName string) *logrus.Entry {
	return l.WithField("custname", custName)
}

// WithAteraCustomer adds Atera customer context to log entries
func (l *Logger) WithAteraCustomer(customerID int) *logrus.Entry {
	return l.WithField("atera_customer_id", customerID)
}

// WithContract adds contract context to log entries
func (l *Logger) WithContract(docNo string) *logrus.Entry {
	return l.WithField("docno", docNo)
}

// WithTicket adds ticket context to log entries
func (l *Logger) WithTicket(ticketID int) *logrus.Entry {
	return l.WithField("ticket_id", ticketID)
}
