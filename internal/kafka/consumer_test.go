package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	queue     []kafka.Message
	committed []int64
	closed    bool
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.queue) == 0 {
		return kafka.Message{}, context.Canceled
	}
	msg := r.queue[0]
	r.queue = r.queue[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error {
	r.closed = true
	return nil
}

func TestConsume_CommitsAfterHandler(t *testing.T) {
	reader := &fakeReader{queue: []kafka.Message{{Topic: "notifications", Offset: 1}, {Topic: "notifications", Offset: 2}}}
	c := &Consumer{reader: reader}

	var handled []int64
	err := c.Consume(context.Background(), func(ctx context.Context, msg kafka.Message) error {
		handled = append(handled, msg.Offset)
		return nil
	})

	require.Error(t, err)
	assert.Equal(t, []int64{1, 2}, handled)
	assert.Equal(t, []int64{1, 2}, reader.committed)
}

func TestConsume_HandlerErrorLeavesMessageUncommitted(t *testing.T) {
	reader := &fakeReader{queue: []kafka.Message{{Topic: "notifications", Offset: 7}}}
	c := &Consumer{reader: reader}
	boom := errors.New("smtp down")

	err := c.Consume(context.Background(), func(ctx context.Context, msg kafka.Message) error {
		return boom
	})

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "notifications/0@7")
	assert.Empty(t, reader.committed)
}

func TestConsume_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := &Consumer{reader: &fakeReader{}}

	err := c.Consume(ctx, func(ctx context.Context, msg kafka.Message) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConsumer_Close(t *testing.T) {
	reader := &fakeReader{}
	require.NoError(t, (&Consumer{reader: reader}).Close())
	assert.True(t, reader.closed)

	var nilConsumer *Consumer
	assert.NoError(t, nilConsumer.Close())
}
