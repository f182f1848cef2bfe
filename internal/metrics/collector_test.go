package metrics

import (
	"errors"
	"math"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewCollector_DefaultNamespace(t *testing.T) {
	c := NewCollector("")
	if c.Registry() == nil {
		t.Fatal("registry should not be nil")
	}

	c.RecordTask("arnoldweb", time.Millisecond, nil)
	families, err := c.Registry().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "arnoldweb_farm_tasks_total" {
			found = true
		}
	}
	if !found {
		t.Error("expected arnoldweb_farm_tasks_total")
	}
}

func TestCollector_RecordTask(t *testing.T) {
	c := NewCollector("test")

	c.RecordTask("arnoldweb", 2*time.Millisecond, nil)
	c.RecordTask("arnoldweb", 3*time.Millisecond, nil)
	c.RecordTask("arnoldweb", time.Millisecond, errors.New("boom"))

	if got := testutil.ToFloat64(c.tasksTotal.WithLabelValues("arnoldweb", "success")); got != 2 {
		t.Errorf("success count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.tasksTotal.WithLabelValues("arnoldweb", "error")); got != 1 {
		t.Errorf("error count = %v, want 1", got)
	}
}

func TestCollector_RecordMEGNO(t *testing.T) {
	c := NewCollector("test")

	c.RecordMEGNO(2.01, 1e-8)
	c.RecordMEGNO(math.NaN(), 5e-8)
	c.RecordMEGNO(7.5, 2e-8)

	if got := testutil.ToFloat64(c.energyError); got != 5e-8 {
		t.Errorf("energy error gauge = %v, want 5e-8", got)
	}
	if n := testutil.CollectAndCount(c.megno); n != 1 {
		t.Errorf("expected one histogram series, got %d", n)
	}

	c.Reset()
	if got := testutil.ToFloat64(c.energyError); got != 0 {
		t.Errorf("gauge not reset: %v", got)
	}
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector("test")
	c.RecordPending("hello", 12)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `test_farm_tasks_pending{module="hello"} 12`) {
		t.Errorf("pending gauge missing from output:\n%s", rec.Body.String())
	}
}
