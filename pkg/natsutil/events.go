/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package natsutil publishes service health transition events to NATS JetStream
// as CloudEvents.
package natsutil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/carverauto/cloudpulse/pkg/logger"
	"github.com/carverauto/cloudpulse/pkg/models"
)

const (
	eventSource            = "cloudpulse/core"
	serviceHealthEventType = "com.carverauto.cloudpulse.service.health"
)

// jetStreamPublisher is the slice of the JetStream API the publisher needs.
type jetStreamPublisher interface {
	Publish(ctx context.Context, subject string, payload []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// EventPublisher publishes service health transition CloudEvents to JetStream.
type EventPublisher struct {
	js      jetStreamPublisher
	subject string
	logger  logger.Logger
}

// NewEventPublisher creates an EventPublisher that emits on the configured subject.
func NewEventPublisher(js jetstream.JetStream, cfg *models.EventsConfig, log logger.Logger) *EventPublisher {
	return &EventPublisher{
		js:      js,
		subject: cfg.Subject,
		logger:  log,
	}
}

// PublishTransition publishes a CloudEvent describing a service state change.
func (p *EventPublisher) PublishTransition(ctx context.Context, data *models.ServiceHealthEventData) error {
	event := models.CloudEvent{
		SpecVersion:     "1.0",
		ID:              uuid.New().String(),
		Source:          eventSource,
		Type:            serviceHealthEventType,
		DataContentType: "application/json",
		Subject:         p.subject,
		Time:            &data.Timestamp,
		Data:            data,
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal service health event: %w", err)
	}

	ack, err := p.js.Publish(ctx, event.Subject, eventBytes)
	if err != nil {
		return fmt.Errorf("failed to publish service health event: %w", err)
	}

	p.logger.Debug().
		Str("service_id", data.ServiceID).
		Str("previous_state", string(data.PreviousState)).
		Str("current_state", string(data.CurrentState)).
		Uint64("sequence", ack.Sequence).
		Msg("Published service health event")

	return nil
}

// ConnectWithEventPublisher connects to NATS, ensures the event stream exists,
// and returns an EventPublisher bound to it. The caller owns the returned
// connection and must close it on shutdown.
func ConnectWithEventPublisher(
	ctx context.Context,
	natsCfg *models.NATSConfig,
	eventsCfg *models.EventsConfig,
	log logger.Logger,
) (*EventPublisher, *nats.Conn, error) {
	opts := []nats.Option{
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	}

	nc, err := nats.Connect(natsCfg.URL, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	var js jetstream.JetStream

	if natsCfg.Domain != "" {
		js, err = jetstream.NewWithDomain(nc, natsCfg.Domain)
	} else {
		js, err = jetstream.New(nc)
	}

	if err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	if err := ensureStream(ctx, js, eventsCfg); err != nil {
		nc.Close()
		return nil, nil, err
	}

	return NewEventPublisher(js, eventsCfg, log), nc, nil
}

func ensureStream(ctx context.Context, js jetstream.JetStream, cfg *models.EventsConfig) error {
	_, err := js.Stream(ctx, cfg.StreamName)
	if errors.Is(err, jetstream.ErrStreamNotFound) {
		sc := jetstream.StreamConfig{
			Name:     cfg.StreamName,
			Subjects: []string{cfg.Subject},
		}

		if _, err := js.CreateOrUpdateStream(ctx, sc); err != nil {
			return fmt.Errorf("failed to create stream %s: %w", cfg.StreamName, err)
		}

		return nil
	} else if err != nil {
		return fmt.Errorf("failed to get stream %s: %w", cfg.StreamName, err)
	}

	return nil
}
