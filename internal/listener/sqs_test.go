package listener

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSQS serves queued batches, then blocks until the context ends.
type fakeSQS struct {
	mu       sync.Mutex
	batches  [][]types.Message
	errs     []error
	deleted  []string
	received int
}

func (f *fakeSQS) ReceiveMessage(ctx context.Context, in *sqs.ReceiveMessageInput, _ ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	f.mu.Lock()
	f.received++
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		f.mu.Unlock()
		return nil, err
	}
	if len(f.batches) > 0 {
		batch := f.batches[0]
		f.batches = f.batches[1:]
		f.mu.Unlock()
		return &sqs.ReceiveMessageOutput{Messages: batch}, nil
	}
	f.mu.Unlock()

	<-ctx.Done()
	return nil, ctx.Err()
}

func (f *fakeSQS) DeleteMessage(_ context.Context, in *sqs.DeleteMessageInput, _ ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, aws.ToString(in.ReceiptHandle))
	return &sqs.DeleteMessageOutput{}, nil
}

func (f *fakeSQS) deletedHandles() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

func message(id, body string) types.Message {
	return types.Message{
		MessageId:     aws.String(id),
		Body:          aws.String(body),
		ReceiptHandle: aws.String("rh-" + id),
	}
}

func TestNewSQSListener_RequiresQueue(t *testing.T) {
	t.Parallel()

	_, err := newSQSListener(&fakeSQS{}, "  ", nil)

	assert.Error(t, err)
}

func TestSQSListener_Run(t *testing.T) {
	t.Parallel()

	t.Run("deletes handled messages and keeps failed ones", func(t *testing.T) {
		t.Parallel()

		client := &fakeSQS{batches: [][]types.Message{{message("1", "ok"), message("2", "fail"), message("3", "ok")}}}
		l, err := newSQSListener(client, "https://sqs.sa-east-1.amazonaws.com/1/headlines", nil)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		var (
			mu     sync.Mutex
			bodies []string
		)
		handle := func(_ context.Context, body []byte) error {
			mu.Lock()
			bodies = append(bodies, string(body))
			done := len(bodies) == 3
			mu.Unlock()
			if done {
				defer cancel()
			}
			if string(body) == "fail" {
				return errors.New("parse failed")
			}
			return nil
		}

		require.NoError(t, l.Run(ctx, handle))

		assert.Equal(t, []string{"ok", "fail", "ok"}, bodies)
		assert.Equal(t, []string{"rh-1", "rh-3"}, client.deletedHandles())
	})

	t.Run("keeps polling after a receive error", func(t *testing.T) {
		t.Parallel()

		client := &fakeSQS{
			errs:    []error{errors.New("throttled")},
			batches: [][]types.Message{{message("1", "ok")}},
		}
		l, err := newSQSListener(client, "queue", nil)
		require.NoError(t, err)
		l.pause = time.Millisecond

		ctx, cancel := context.WithCancel(context.Background())
		handle := func(context.Context, []byte) error {
			cancel()
			return nil
		}

		require.NoError(t, l.Run(ctx, handle))

		assert.Equal(t, 2, client.received)
		assert.Equal(t, []string{"rh-1"}, client.deletedHandles())
	})

	t.Run("returns when the context is already cancelled", func(t *testing.T) {
		t.Parallel()

		client := &fakeSQS{}
		l, err := newSQSListener(client, "queue", nil)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		require.NoError(t, l.Run(ctx, func(context.Context, []byte) error { return nil }))
		assert.Zero(t, client.received)
	})
}
