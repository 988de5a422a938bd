package services

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/posthog/posthog-go"
	"github.com/rs/zerolog/log"
)

// Analytics event names
const (
	EventLoggedIn     = "logged_in"
	EventRegistered   = "registered"
	EventLoggedOut    = "logged_out"
	EventUsersListed  = "admin_users_listed"
	EventUsersFailed  = "admin_users_failed"
	EventPageViewed   = "page_viewed"
	anonymousIDPrefix = "anon_"
)

// HashEmail returns a hex-encoded SHA-256 hash of the email for use as PostHog distinct ID
func HashEmail(email string) string {
	h := sha256.Sum256([]byte(email))
	return fmt.Sprintf("%x", h)
}

// DistinctID picks the analytics identity for a session; anonymous callers use fallback
func DistinctID(session *AuthSession, fallback string) string {
	if u := session.User(); u != nil && u.Email != "" {
		return "email_" + HashEmail(u.Email)
	}
	return anonymousIDPrefix + fallback
}

// AnalyticsService handles product analytics tracking
type AnalyticsService struct {
	client      posthog.Client
	enabled     bool
	environment string
}

type posthogLogger struct{}

func (l posthogLogger) Success(m posthog.APIMessage) {
	log.Debug().Str("type", fmt.Sprintf("%T", m)).Msg("PostHog event delivered")
}

func (l posthogLogger) Failure(m posthog.APIMessage, err error) {
	log.Error().Err(err).Str("type", fmt.Sprintf("%T", m)).Msg("PostHog delivery failed")
}

// AnalyticsConfig holds analytics configuration
type AnalyticsConfig struct {
	PostHogAPIKey string
	PostHogHost   string
	Enabled       bool
	Environment   string
}

// NewAnalyticsService creates a new analytics service.
// A disabled or keyless config yields a no-op service.
func NewAnalyticsService(cfg AnalyticsConfig) (*AnalyticsService, error) {
	if !cfg.Enabled || cfg.PostHogAPIKey == "" {
		return &AnalyticsService{enabled: false}, nil
	}

	client, err := posthog.NewWithConfig(
		cfg.PostHogAPIKey,
		posthog.Config{
			Endpoint:  cfg.PostHogHost,
			Interval:  30 * time.Second,
			BatchSize: 100,
			Callback:  posthogLogger{},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create PostHog client: %w", err)
	}

	env := cfg.Environment
	if env == "" {
		env = "production"
	}

	return &AnalyticsService{
		client:      client,
		enabled:     true,
		environment: env,
	}, nil
}

// Enabled reports whether events are shipped anywhere
func (s *AnalyticsService) Enabled() bool {
	return s != nil && s.enabled
}

// Close flushes pending events and closes client
func (s *AnalyticsService) Close() error {
	if !s.Enabled() {
		return nil
	}
	return s.client.Close()
}

// TrackEvent captures a generic event
func (s *AnalyticsService) TrackEvent(ctx context.Context, distinctID, event string, properties map[string]interface{}) {
	if !s.Enabled() {
		return
	}

	if properties == nil {
		properties = make(map[string]interface{})
	}
	properties["timestamp"] = time.Now().Unix()
	properties["environment"] = s.environment

	if err := s.client.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	}); err != nil {
		log.Error().Err(err).Str("event", event).Msg("PostHog enqueue failed")
	}
}

// TrackPageView records a rendered page
func (s *AnalyticsService) TrackPageView(ctx context.Context, distinctID, page string) {
	s.TrackEvent(ctx, distinctID, EventPageViewed, map[string]interface{}{"page": page})
}

// TrackUsersListed records the outcome of an admin user listing
func (s *AnalyticsService) TrackUsersListed(ctx context.Context, distinctID string, count int, failed bool) {
	if failed {
		s.TrackEvent(ctx, distinctID, EventUsersFailed, nil)
		return
	}
	s.TrackEvent(ctx, distinctID, EventUsersListed, map[string]interface{}{"user_count": count})
}
