package sidegamehandler_integration_tests

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability"
	"github.com/Black-And-White-Club/frolf-bot-shared/utils"
	"github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame"
	sidegameevents "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/events"
	"github.com/Black-And-White-Club/golf-sidegames/integration_tests/testutils"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go/jetstream"
	"go.opentelemetry.io/otel/trace/noop"
)

// SideGameHandlerTestDeps holds a running module wired to the test containers.
type SideGameHandlerTestDeps struct {
	*testutils.TestEnvironment
	Module *sidegame.Module
	Server *httptest.Server
}

// SetupTestSideGameHandler builds the module with a live router, queue and
// HTTP server. Everything is torn down with the test.
func SetupTestSideGameHandler(t *testing.T, env *testutils.TestEnvironment) SideGameHandlerTestDeps {
	t.Helper()

	if _, err := env.JetStream.Stream(env.Ctx, sidegameevents.StreamName); errors.Is(err, jetstream.ErrStreamNotFound) {
		if err := env.EventBus.CreateStream(env.Ctx, sidegameevents.StreamName); err != nil {
			t.Fatalf("Failed to create NATS stream %q: %v", sidegameevents.StreamName, err)
		}
	} else if err != nil {
		t.Fatalf("Failed to check NATS stream %q: %v", sidegameevents.StreamName, err)
	}
	if err := env.Reset(sidegameevents.StreamName); err != nil {
		t.Fatalf("Failed to reset environment: %v", err)
	}

	watermillRouter, err := message.NewRouter(message.RouterConfig{CloseTimeout: 5 * time.Second}, watermill.NewStdLogger(false, false))
	if err != nil {
		t.Fatalf("Failed to create Watermill router: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	obs := observability.Observability{
		Provider: &observability.Provider{Logger: logger},
		Registry: &observability.Registry{Tracer: noop.NewTracerProvider().Tracer("test")},
	}

	httpRouter := chi.NewRouter()
	routerRunCtx, routerRunCancel := context.WithCancel(env.Ctx)

	module, err := sidegame.NewSideGameModule(env.Ctx, routerRunCtx, sidegame.Deps{
		Config:     env.Config,
		Obs:        obs,
		DB:         env.DB,
		EventBus:   env.EventBus,
		Router:     watermillRouter,
		Helpers:    utils.NewHelper(logger),
		HTTPRouter: httpRouter,
	})
	if err != nil {
		routerRunCancel()
		t.Fatalf("Failed to create side game module: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if runErr := watermillRouter.Run(routerRunCtx); runErr != nil && !errors.Is(runErr, context.Canceled) {
			t.Errorf("Watermill router stopped with error: %v", runErr)
		}
	}()
	go module.Run(routerRunCtx, &wg)

	select {
	case <-watermillRouter.Running():
	case <-time.After(5 * time.Second):
		t.Fatalf("Watermill router did not start")
	}

	server := httptest.NewServer(httpRouter)

	t.Cleanup(func() {
		server.Close()
		if err := module.Close(); err != nil {
			log.Printf("Error closing side game module: %v", err)
		}
		routerRunCancel()

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			log.Println("WARNING: side game router shutdown timed out")
		}
	})

	return SideGameHandlerTestDeps{TestEnvironment: env, Module: module, Server: server}
}

// publish sends payload on topic with a fresh correlation id.
func (d SideGameHandlerTestDeps) publish(t *testing.T, topic string, payload any) string {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Failed to marshal payload: %v", err)
	}
	correlationID := uuid.New().String()
	msg := message.NewMessage(uuid.New().String(), data)
	msg.Metadata.Set(middleware.CorrelationIDMetadataKey, correlationID)
	msg.Metadata.Set("topic", topic)
	if err := d.EventBus.Publish(topic, msg); err != nil {
		t.Fatalf("Failed to publish to %s: %v", topic, err)
	}
	return correlationID
}

// subscribe must be called before the triggering publish.
func (d SideGameHandlerTestDeps) subscribe(t *testing.T, topic string) jetstream.Consumer {
	t.Helper()
	consumer, err := d.Subscribe(d.Ctx, sidegameevents.StreamName, topic)
	if err != nil {
		t.Fatalf("Failed to subscribe to %s: %v", topic, err)
	}
	return consumer
}

func receive[T any](t *testing.T, d SideGameHandlerTestDeps, consumer jetstream.Consumer, topic string) (T, jetstream.Msg) {
	t.Helper()
	var out T
	msg, err := d.Next(consumer, topic, 10*time.Second)
	if err != nil {
		t.Fatalf("Expected message on %s: %v", topic, err)
	}
	if err := json.Unmarshal(msg.Data(), &out); err != nil {
		t.Fatalf("Failed to unmarshal %s payload: %v", topic, err)
	}
	return out, msg
}
