package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "distributed.slots")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() ValidationErrors {
	var errs ValidationErrors

	positive := func(field string, v int) {
		if v < 1 {
			errs = append(errs, ValidationError{Field: field, Value: v, Message: "must be at least 1"})
		}
	}
	nonNegative := func(field string, v int) {
		if v < 0 {
			errs = append(errs, ValidationError{Field: field, Value: v, Message: "must not be negative"})
		}
	}

	positive("distributed.slots", c.Distributed.Slots)
	nonNegative("distributed.items", c.Distributed.Items)
	positive("distributed.runs_per_item", c.Distributed.RunsPerItem)

	nonNegative("workloads.count", c.Workloads.Count)
	positive("workloads.budget", c.Workloads.Budget)
	positive("workloads.every_nth", c.Workloads.EveryNth)

	positive("driver.interval_ms", c.Driver.IntervalMs)
	nonNegative("driver.cycles", c.Driver.Cycles)
	positive("driver.backoff_initial_ms", c.Driver.BackoffInitialMs)
	if c.Driver.BackoffMaxMs < c.Driver.BackoffInitialMs {
		errs = append(errs, ValidationError{
			Field:   "driver.backoff_max_ms",
			Value:   c.Driver.BackoffMaxMs,
			Message: fmt.Sprintf("must be at least backoff_initial_ms (%d)", c.Driver.BackoffInitialMs),
		})
	}
	nonNegative("driver.cpu", c.Driver.CPU)

	return errs
}
