package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/timeline"
)

type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockWriter) Close() error {
	return m.Called().Error(0)
}

func entry(t *testing.T, orderID kernel.UUID, itemID *kernel.UUID, action timeline.Action) *timeline.Entry {
	t.Helper()
	e, err := timeline.NewEntry(orderID, itemID, action, "supervisor", "round 1", time.Now().UTC())
	require.NoError(t, err)
	return &e
}

func TestTimelinePublisher_Publish(t *testing.T) {
	orderID, itemID := kernel.NewUUID(), kernel.NewUUID()
	entries := []*timeline.Entry{
		entry(t, orderID, nil, timeline.ActionOrderCreated),
		entry(t, orderID, &itemID, timeline.ActionPacketCreated),
	}

	writer := &MockWriter{}
	var written []kafka.Message
	writer.On("WriteMessages", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { written = args.Get(1).([]kafka.Message) }).
		Return(nil).Once()

	p := newTimelinePublisher(writer, "fulfillment.timeline")
	require.NoError(t, p.Publish(t.Context(), entries))
	writer.AssertExpectations(t)

	require.Len(t, written, 2)
	for _, msg := range written {
		assert.Equal(t, orderID.String(), string(msg.Key))
	}

	var second TimelineEntryMessage
	require.NoError(t, json.Unmarshal(written[1].Value, &second))
	assert.Equal(t, string(timeline.ActionPacketCreated), second.Action)
	require.NotNil(t, second.OrderItemID)
	assert.Equal(t, itemID.String(), *second.OrderItemID)
	assert.Equal(t, kafka.Header{Key: "event-type", Value: []byte("packet_created")}, written[1].Headers[0])
}

func TestTimelinePublisher_PublishNothing(t *testing.T) {
	writer := &MockWriter{}
	p := newTimelinePublisher(writer, "fulfillment.timeline")

	require.NoError(t, p.Publish(t.Context(), nil))
	writer.AssertNotCalled(t, "WriteMessages", mock.Anything, mock.Anything)
}

func TestTimelinePublisher_WriteError(t *testing.T) {
	writer := &MockWriter{}
	broker := errors.New("leader not available")
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(broker)

	p := newTimelinePublisher(writer, "fulfillment.timeline")
	err := p.Publish(t.Context(), []*timeline.Entry{entry(t, kernel.NewUUID(), nil, timeline.ActionOrderCreated)})
	require.ErrorIs(t, err, broker)
	assert.Contains(t, err.Error(), "fulfillment.timeline")
}
