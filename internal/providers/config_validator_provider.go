package providers

import (
	"fmt"
	"techpulse/internal/structures"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid config: %s", v.Errors.One())
	}
	if cv.conf.Cache.Enabled && cv.conf.Cache.Size <= 0 {
		return fmt.Errorf("invalid config: cache.size must be positive when cache is enabled")
	}
	if cv.conf.Aggregator.Timeout < 0 || cv.conf.Aggregator.SearchDebounce < 0 {
		return fmt.Errorf("invalid config: aggregator durations must not be negative")
	}
	if cv.conf.AI.Timeout < 0 {
		return fmt.Errorf("invalid config: ai.timeout must not be negative")
	}
	return nil
}
