package listener

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/samvad-hq/headline-harvester/internal/logger"
)

const (
	defaultWaitSeconds = 20
	defaultBatchSize   = 10
	receiveErrorPause  = 5 * time.Second
)

// Handler processes one message body. A nil error deletes the message.
type Handler func(ctx context.Context, body []byte) error

// sqsClient defines the minimal subset of the SQS client used by the listener.
type sqsClient interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// SQSListener long-polls a queue of S3 object notifications.
type SQSListener struct {
	queueURL string
	client   sqsClient
	log      logger.Logger
	pause    time.Duration
}

// NewSQSListener builds a listener for queueURL.
func NewSQSListener(cfg aws.Config, queueURL string, log logger.Logger) (*SQSListener, error) {
	return newSQSListener(sqs.NewFromConfig(cfg), queueURL, log)
}

func newSQSListener(client sqsClient, queueURL string, log logger.Logger) (*SQSListener, error) {
	queueURL = strings.TrimSpace(queueURL)
	if queueURL == "" {
		return nil, errors.New("sqs queue url is empty")
	}
	return &SQSListener{
		queueURL: queueURL,
		client:   client,
		log:      logger.Ensure(log),
		pause:    receiveErrorPause,
	}, nil
}

// Run receives messages until ctx is cancelled. Messages whose handler fails stay
// on the queue and come back after the visibility timeout.
func (l *SQSListener) Run(ctx context.Context, handle Handler) error {
	l.log.InfoObj("listening for object notifications", "listener_start", map[string]any{
		"queue_url": l.queueURL,
	})

	for {
		if ctx.Err() != nil {
			l.log.InfoObj("listener stopped", "listener_stop", map[string]any{
				"queue_url": l.queueURL,
			})
			return nil
		}

		out, err := l.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(l.queueURL),
			MaxNumberOfMessages: defaultBatchSize,
			WaitTimeSeconds:     defaultWaitSeconds,
		})
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			l.log.ErrorObj("receive from sqs failed", "listener_receive_error", map[string]any{
				"queue_url": l.queueURL,
				"error":     err.Error(),
			})
			sleep(ctx, l.pause)
			continue
		}

		for _, msg := range out.Messages {
			if err := l.process(ctx, handle, aws.ToString(msg.MessageId), aws.ToString(msg.Body), msg.ReceiptHandle); err != nil {
				l.log.WarnObj("message left for redelivery", "listener_message_error", map[string]any{
					"message_id": aws.ToString(msg.MessageId),
					"error":      err.Error(),
				})
			}
		}
	}
}

func (l *SQSListener) process(ctx context.Context, handle Handler, id, body string, receipt *string) error {
	if err := handle(ctx, []byte(body)); err != nil {
		return err
	}

	_, err := l.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(l.queueURL),
		ReceiptHandle: receipt,
	})
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	l.log.DebugObj("message processed", "listener_message_done", map[string]any{
		"message_id": id,
	})
	return nil
}

// sleep waits for d or until ctx is cancelled.
func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
