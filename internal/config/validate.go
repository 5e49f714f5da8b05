package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/shanem9/crypto-settle/internal/model"
)

// Validate checks that all required fields are set and values are valid.
func (c *SettleConfig) Validate() error {
	if c.Run.StartDate == "" {
		return errors.New("run.start_date is required")
	}
	start, err := model.ParseDate(c.Run.StartDate)
	if err != nil {
		return fmt.Errorf("run.start_date: %w", err)
	}
	eval, err := model.ParseDate(c.Run.EvaluationDate)
	if err != nil {
		return fmt.Errorf("run.evaluation_date: %w", err)
	}
	if eval.Before(start) {
		return fmt.Errorf("run.evaluation_date (%s) precedes run.start_date (%s)",
			c.Run.EvaluationDate, c.Run.StartDate)
	}
	if c.Run.Currency == "" {
		return errors.New("run.currency is required")
	}

	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	if c.API.MaxAttempts < 1 {
		return errors.New("api.max_attempts must be >= 1")
	}
	if c.API.RateLimitCooldown <= 0 {
		return errors.New("api.rate_limit_cooldown must be > 0")
	}
	if c.API.PaceInterval < 0 {
		return errors.New("api.pace_interval must be >= 0")
	}

	if c.Inputs.Catalog == "" {
		return errors.New("inputs.catalog is required")
	}
	if c.Inputs.Participants == "" {
		return errors.New("inputs.participants is required")
	}

	return nil
}

// Dates returns the parsed competition window. Validate must have passed.
func (c *SettleConfig) Dates() (start, eval time.Time) {
	start, _ = model.ParseDate(c.Run.StartDate)
	eval, _ = model.ParseDate(c.Run.EvaluationDate)
	return start, eval
}
