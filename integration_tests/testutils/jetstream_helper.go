package testutils

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

// ResetJetStreamState purges the given streams, skipping ones that do not exist yet.
func (env *TestEnvironment) ResetJetStreamState(ctx context.Context, streamNames ...string) error {
	if env.JetStream == nil {
		return errors.New("JetStream not initialized")
	}
	for _, name := range streamNames {
		stream, err := env.JetStream.Stream(ctx, name)
		if err != nil {
			if errors.Is(err, jetstream.ErrStreamNotFound) {
				continue
			}
			log.Printf("Warning: failed to access stream %s: %v", name, err)
			continue
		}
		if err := stream.Purge(ctx); err != nil {
			log.Printf("Warning: failed to purge stream %s: %v", name, err)
		}
	}
	return nil
}

// WaitForMessage reads the first message published on subject after the
// call, using a throwaway ordered consumer.
func (env *TestEnvironment) WaitForMessage(ctx context.Context, stream, subject string, timeout time.Duration) (jetstream.Msg, error) {
	consumer, err := env.JetStream.OrderedConsumer(ctx, stream, jetstream.OrderedConsumerConfig{
		FilterSubjects: []string{subject},
		DeliverPolicy:  jetstream.DeliverNewPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer for %s: %w", subject, err)
	}
	return env.nextMessage(consumer, subject, timeout)
}

// Subscribe returns an ordered consumer for subject positioned at new messages.
func (env *TestEnvironment) Subscribe(ctx context.Context, stream, subject string) (jetstream.Consumer, error) {
	return env.JetStream.OrderedConsumer(ctx, stream, jetstream.OrderedConsumerConfig{
		FilterSubjects: []string{subject},
		DeliverPolicy:  jetstream.DeliverNewPolicy,
	})
}

// Next waits for the consumer's next message.
func (env *TestEnvironment) Next(consumer jetstream.Consumer, subject string, timeout time.Duration) (jetstream.Msg, error) {
	return env.nextMessage(consumer, subject, timeout)
}

func (env *TestEnvironment) nextMessage(consumer jetstream.Consumer, subject string, timeout time.Duration) (jetstream.Msg, error) {
	batch, err := consumer.Fetch(1, jetstream.FetchMaxWait(timeout))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from %s: %w", subject, err)
	}
	for msg := range batch.Messages() {
		return msg, nil
	}
	if err := batch.Error(); err != nil {
		return nil, fmt.Errorf("fetch from %s failed: %w", subject, err)
	}
	return nil, fmt.Errorf("no message on %s within %v", subject, timeout)
}
