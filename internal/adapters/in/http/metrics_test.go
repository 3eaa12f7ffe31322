package http

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/timeline"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, entries []*timeline.Entry) error {
	return m.Called(ctx, entries).Error(0)
}

func (s *ServerSuite) TestMetricsExposeRequestsAndTransitions() {
	product, _ := s.catalog(10)
	s.createOrder(product, false)

	rec := s.do(http.MethodGet, "/metrics", nil, nil)
	s.expect(rec, http.StatusOK)
	body := rec.Body.String()
	s.Contains(body, `fulfillment_http_requests_total{method="POST",path="/api/v1/orders",status="201"} 1`)
	s.Contains(body, `fulfillment_workflow_transitions_total{action="order_created"} 1`)
	s.Contains(body, "fulfillment_http_request_duration_seconds_bucket")
}

func TestObservePublisher_ForwardsAndCountsFailures(t *testing.T) {
	m := NewMetrics("test")
	entry, err := timeline.NewEntry(kernel.NewUUID(), nil, timeline.ActionOrderCreated, "system", "", time.Now())
	require.NoError(t, err)
	entries := []*timeline.Entry{&entry}

	next := &MockPublisher{}
	broker := errors.New("broker down")
	next.On("Publish", mock.Anything, entries).Return(broker).Once()

	err = m.ObservePublisher(next).Publish(t.Context(), entries)
	require.ErrorIs(t, err, broker)
	next.AssertExpectations(t)

	assert.InDelta(t, 1, counterValue(t, m, "test_timeline_publish_failures_total", nil), 0)
	assert.InDelta(t, 1, counterValue(t, m, "test_workflow_transitions_total", map[string]string{"action": "order_created"}), 0)
}

func counterValue(t *testing.T, m *Metrics, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := m.registry.Gather()
	require.NoError(t, err)

	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, metric := range f.GetMetric() {
			matched := true
			for _, lp := range metric.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					matched = false
				}
			}
			if matched {
				return metric.GetCounter().GetValue()
			}
		}
	}
	t.Fatalf("metric %s not found", name)
	return 0
}
