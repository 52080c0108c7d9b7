// Package history implements the step history controller: an ordered,
// append-only log of step records plus a cursor. Moving the cursor replays
// stored records and never recomputes them.
package history

import (
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
)

// NoSimulation is the index of a controller that has not been started.
const NoSimulation = -1

// Controller is not safe for concurrent use.
type Controller struct {
	records []domain.StepRecord
	index   int
}

// New returns an empty controller (index is NoSimulation).
func New() *Controller {
	return &Controller{index: NoSimulation}
}

// Begin clears the log and stores the initial record at index 0.
func (c *Controller) Begin(initial domain.StepRecord) {
	c.records = append(c.records[:0], initial.Clone())
	c.index = 0
}

// Append stores a record after the last one and moves the cursor to it.
// It fails with domain.ErrNotAtTail when the cursor was rewound; replay
// forward before appending.
func (c *Controller) Append(rec domain.StepRecord) error {
	if c.index == NoSimulation {
		return fmt.Errorf("append before begin: %w", domain.ErrNotAtTail)
	}
	if !c.AtTail() {
		return domain.ErrNotAtTail
	}
	c.records = append(c.records, rec.Clone())
	c.index++
	return nil
}

// Advance moves the cursor to the next stored record.
// It reports false (at boundary) when already at the last record.
func (c *Controller) Advance() (domain.StepRecord, bool) {
	if c.index == NoSimulation || c.index+1 >= len(c.records) {
		return domain.StepRecord{}, false
	}
	c.index++
	return c.records[c.index].Clone(), true
}

// Retreat moves the cursor to the previous record in O(1).
// It reports false (at boundary) at index 0 or before start.
func (c *Controller) Retreat() (domain.StepRecord, bool) {
	if c.index <= 0 {
		return domain.StepRecord{}, false
	}
	c.index--
	return c.records[c.index].Clone(), true
}

// Reset clears the log; the index returns to NoSimulation.
func (c *Controller) Reset() {
	c.records = nil
	c.index = NoSimulation
}

// Started reports whether Begin was called since the last Reset.
func (c *Controller) Started() bool { return c.index != NoSimulation }

// Index returns the cursor.
func (c *Controller) Index() int { return c.index }

// Len returns the number of stored records.
func (c *Controller) Len() int { return len(c.records) }

// AtTail reports whether the cursor is on the last record.
func (c *Controller) AtTail() bool {
	return c.index != NoSimulation && c.index == len(c.records)-1
}

// Current returns the record under the cursor.
func (c *Controller) Current() (domain.StepRecord, bool) {
	if c.index == NoSimulation {
		return domain.StepRecord{}, false
	}
	return c.records[c.index].Clone(), true
}

// Records returns a deep copy of the whole log.
func (c *Controller) Records() []domain.StepRecord {
	out := make([]domain.StepRecord, len(c.records))
	for i, r := range c.records {
		out[i] = r.Clone()
	}
	return out
}

// Restore rebuilds the controller from a persisted log.
func (c *Controller) Restore(records []domain.StepRecord, index int) error {
	if len(records) == 0 {
		if index != NoSimulation {
			return fmt.Errorf("index %d out of range for empty history", index)
		}
		c.Reset()
		return nil
	}
	if index < 0 || index >= len(records) {
		return fmt.Errorf("index %d out of range [0, %d)", index, len(records))
	}
	c.records = make([]domain.StepRecord, len(records))
	for i, r := range records {
		c.records[i] = r.Clone()
	}
	c.index = index
	return nil
}
