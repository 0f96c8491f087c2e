package aggregator

import (
	"fmt"

	"github.com/alexanderramin/rfpwatch/internal/domain"
)

const (
	DefaultDueWindowDays = 7
	DefaultVendorTopN    = 6
	DefaultDueSoonLimit  = 4
)

// Config controls the stage set and list sizes used by the Aggregator.
type Config struct {
	Stages        domain.StageSet
	DueWindowDays int
	VendorTopN    int
	DueSoonLimit  int
}

// DefaultConfig returns the seven-stage workflow with a 7-day due window,
// the 6 most recent records for vendor participation and 4 due-soon entries.
func DefaultConfig() Config {
	return Config{
		Stages:        domain.DefaultStageSet(),
		DueWindowDays: DefaultDueWindowDays,
		VendorTopN:    DefaultVendorTopN,
		DueSoonLimit:  DefaultDueSoonLimit,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.Stages.Len() == 0 {
		return fmt.Errorf("stage set is empty")
	}
	if c.DueWindowDays <= 0 {
		return fmt.Errorf("due window must be positive, got %d", c.DueWindowDays)
	}
	if c.VendorTopN <= 0 {
		return fmt.Errorf("vendor participation size must be positive, got %d", c.VendorTopN)
	}
	if c.DueSoonLimit <= 0 {
		return fmt.Errorf("due soon limit must be positive, got %d", c.DueSoonLimit)
	}
	return nil
}
