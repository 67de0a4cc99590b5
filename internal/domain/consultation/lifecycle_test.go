package consultation

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

var fixedNow = time.Date(2024, 3, 10, 14, 0, 0, 0, time.UTC)

func TestInitialStatusIsScheduled(t *testing.T) {
	if InitialStatus() != StatusScheduled {
		t.Fatalf("expected S, got %s", InitialStatus())
	}
	if StatusScheduled.Terminal() {
		t.Fatalf("S must not be terminal")
	}
	if !StatusFinished.Terminal() || !StatusCanceled.Terminal() {
		t.Fatalf("F and C must be terminal")
	}
}

func TestStrictLifecycle(t *testing.T) {
	l := Lifecycle{Strict: true}

	tests := []struct {
		name    string
		from    Status
		action  func(*models.Consultation) error
		want    Status
		wantErr bool
	}{
		{"cancel scheduled", StatusScheduled, func(c *models.Consultation) error { return l.Cancel(c, fixedNow) }, StatusCanceled, false},
		{"finish scheduled", StatusScheduled, func(c *models.Consultation) error { return l.Finish(c, fixedNow) }, StatusFinished, false},
		{"cancel finished", StatusFinished, func(c *models.Consultation) error { return l.Cancel(c, fixedNow) }, StatusFinished, true},
		{"cancel canceled", StatusCanceled, func(c *models.Consultation) error { return l.Cancel(c, fixedNow) }, StatusCanceled, true},
		{"finish canceled", StatusCanceled, func(c *models.Consultation) error { return l.Finish(c, fixedNow) }, StatusCanceled, true},
		{"finish finished", StatusFinished, func(c *models.Consultation) error { return l.Finish(c, fixedNow) }, StatusFinished, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := &models.Consultation{Status: string(tc.from)}
			err := tc.action(c)

			if tc.wantErr {
				if !httperr.IsBusiness(err, "invalid_state") {
					t.Fatalf("expected invalid_state, got %v", err)
				}
				if c.CanceledAt != nil || c.FinishedAt != nil {
					t.Fatalf("rejected transition must not stamp timestamps")
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if Status(c.Status) != tc.want {
				t.Fatalf("expected status %s, got %s", tc.want, c.Status)
			}
		})
	}
}

func TestPermissiveLifecycleNeverReturnsToScheduled(t *testing.T) {
	l := Lifecycle{Strict: false}

	for _, from := range []Status{StatusScheduled, StatusFinished, StatusCanceled} {
		c := &models.Consultation{Status: string(from)}
		if err := l.Cancel(c, fixedNow); err != nil {
			t.Fatalf("cancel from %s: %v", from, err)
		}
		if c.Status != string(StatusCanceled) || c.CanceledAt == nil {
			t.Fatalf("cancel from %s: got %s", from, c.Status)
		}

		c = &models.Consultation{Status: string(from)}
		if err := l.Finish(c, fixedNow); err != nil {
			t.Fatalf("finish from %s: %v", from, err)
		}
		if c.Status != string(StatusFinished) || c.FinishedAt == nil {
			t.Fatalf("finish from %s: got %s", from, c.Status)
		}
	}
}

func TestTransitionStampsTime(t *testing.T) {
	c := &models.Consultation{Status: string(StatusScheduled)}
	if err := (Lifecycle{Strict: true}).Cancel(c, fixedNow); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if c.CanceledAt == nil || !c.CanceledAt.Equal(fixedNow) {
		t.Fatalf("expected canceled_at %v, got %v", fixedNow, c.CanceledAt)
	}
}
