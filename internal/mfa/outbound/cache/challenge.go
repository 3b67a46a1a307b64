package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/miempresa/otpgate/internal/mfa/entity"
	"github.com/miempresa/otpgate/internal/pkg/goerror"
	"github.com/miempresa/otpgate/internal/pkg/instrument"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const keyPrefix = "mfa:challenge:"

// ChallengeStore keeps pending login challenges in Redis with a TTL.
//
// Keys are the HMAC of the client-held challenge token; expiry replaces any
// explicit cleanup, matching the single-use short-lived nature of the flow.
type ChallengeStore struct {
	client *redis.Client
	ins    instrument.Instrumentation
}

func NewChallengeStore(client *redis.Client, ins instrument.Instrumentation) *ChallengeStore {
	return &ChallengeStore{
		client: client,
		ins:    ins,
	}
}

func (s *ChallengeStore) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("mfa.outbound.cache").Start(ctx, name)
}

func (s *ChallengeStore) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Put stores a challenge under the hashed token for the given TTL.
func (s *ChallengeStore) Put(ctx context.Context, hashedToken string, ch entity.Challenge, ttl time.Duration) (err error) {
	ctx, span := s.startSpan(ctx, "Put")
	defer func() { s.endSpan(span, err) }()

	payload, err := json.Marshal(ch)
	if err != nil {
		return err
	}

	err = s.client.Set(ctx, keyPrefix+hashedToken, payload, ttl).Err()
	return err
}

// Take atomically fetches and deletes a challenge, making every token
// single-use. Missing or expired tokens map to goerror.ErrNotFound.
func (s *ChallengeStore) Take(ctx context.Context, hashedToken string) (_ *entity.Challenge, err error) {
	ctx, span := s.startSpan(ctx, "Take")
	defer func() { s.endSpan(span, err) }()

	payload, err := s.client.GetDel(ctx, keyPrefix+hashedToken).Bytes()
	if errors.Is(err, redis.Nil) {
		err = goerror.ErrNotFound
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	var ch entity.Challenge
	if err = json.Unmarshal(payload, &ch); err != nil {
		return nil, err
	}

	return &ch, nil
}
