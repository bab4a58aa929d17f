package statemachine

import (
	"context"
	"errors"
	"fmt"

	"github.com/kbelaid/chequier/internal/models"
	"github.com/looplab/fsm"
)

// ChequeFSM wraps a register entry with its state machine
type ChequeFSM struct {
	record *models.ChequeRecord
	fsm    *fsm.FSM
}

// NewChequeFSM creates a new cheque state machine
func NewChequeFSM(record *models.ChequeRecord) *ChequeFSM {
	cfsm := &ChequeFSM{
		record: record,
	}

	cfsm.fsm = fsm.NewFSM(
		record.Status,
		fsm.Events{
			// issued/printed → printed (reprints allowed)
			{Name: "print", Src: []string{models.ChequeStatusIssued, models.ChequeStatusPrinted}, Dst: models.ChequeStatusPrinted},

			// issued/printed → voided
			{Name: "void", Src: []string{models.ChequeStatusIssued, models.ChequeStatusPrinted}, Dst: models.ChequeStatusVoided},
		},
		fsm.Callbacks{},
	)

	return cfsm
}

// Print transitions the cheque to printed state
func (c *ChequeFSM) Print(ctx context.Context) error {
	if !c.record.MayPrint() {
		return fmt.Errorf("cheque cannot be printed in current state: %s", c.record.Status)
	}

	if err := c.fsm.Event(ctx, "print"); err != nil {
		// A reprint keeps the machine in printed, which the fsm reports as
		// NoTransitionError; MayPrint is the real gate.
		var noTransition fsm.NoTransitionError
		if !errors.As(err, &noTransition) {
			return fmt.Errorf("failed to print cheque: %w", err)
		}
	}

	c.record.Status = c.fsm.Current()
	return nil
}

// Void transitions the cheque to voided state
func (c *ChequeFSM) Void(ctx context.Context) error {
	if !c.record.MayVoid() {
		return fmt.Errorf("cheque cannot be voided in current state: %s", c.record.Status)
	}

	if err := c.fsm.Event(ctx, "void"); err != nil {
		return fmt.Errorf("failed to void cheque: %w", err)
	}

	c.record.Status = c.fsm.Current()
	return nil
}

// Current returns the current state
func (c *ChequeFSM) Current() string {
	return c.fsm.Current()
}

// Can checks if a transition is possible
func (c *ChequeFSM) Can(event string) bool {
	return c.fsm.Can(event)
}
