package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveFields(t *testing.T) {
	before := testutil.ToFloat64(FieldSourceTotal.WithLabelValues("position", "selectors"))
	ObserveFields(map[string]string{"position": "selectors", "company": "title-meta"})
	after := testutil.ToFloat64(FieldSourceTotal.WithLabelValues("position", "selectors"))
	assert.Equal(t, before+1, after)
}

func TestObserveApply(t *testing.T) {
	before := testutil.ToFloat64(AppliesTotal.WithLabelValues("created"))
	ObserveApply("created", time.Now())
	assert.Equal(t, before+1, testutil.ToFloat64(AppliesTotal.WithLabelValues("created")))
}
