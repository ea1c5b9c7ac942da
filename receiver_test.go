package courier

import (
	"testing"

	"github.com/courierbus/courier/exec"
)

func TestReceiver_Alive(t *testing.T) {
	r := NewReceiver(exec.Inline())
	if !r.Alive() {
		t.Error("expected new receiver to be alive")
	}

	r.Close()
	if r.Alive() {
		t.Error("expected closed receiver to be dead")
	}

	// Close is idempotent.
	r.Close()
	if r.Alive() {
		t.Error("expected receiver to stay dead after second Close")
	}
}

func TestReceiver_NilSafety(t *testing.T) {
	var r *Receiver
	if r.Alive() {
		t.Error("expected nil receiver to be dead")
	}
	r.Close() // must not panic
}

func TestReceiver_Context(t *testing.T) {
	ctx := exec.Inline()
	r := NewReceiver(ctx)
	if r.Context() != ctx {
		t.Error("expected Context() to return the owning context")
	}

	if NewReceiver(nil).Context() != nil {
		t.Error("expected nil context to be preserved")
	}
}
