package service

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"dare-escrow/config"
	"dare-escrow/internal/core/domain"
	"dare-escrow/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Notification event types.
const (
	EventChallengeReceived = "CHALLENGE_RECEIVED"
	EventProofSubmitted    = "PROOF_SUBMITTED"
	EventChallengeSettled  = "CHALLENGE_SETTLED"
)

var notifyRetryIntervals = []time.Duration{
	5 * time.Second,
	30 * time.Second,
	2 * time.Minute,
}

// NotificationPayload is the JSON structure sent to the notification sink.
type NotificationPayload struct {
	EventType string                  `json:"event_type"`
	Data      NotificationPayloadData `json:"data"`
	Signature string                  `json:"signature"`
}

// NotificationPayloadData holds the challenge details in the notification.
type NotificationPayloadData struct {
	ChallengeID   string  `json:"challenge_id"`
	Kind          string  `json:"kind"`
	Title         string  `json:"title"`
	Status        string  `json:"status"`
	Reward        int64   `json:"reward"`
	CreatorID     string  `json:"creator_id"`
	TargetID      *string `json:"target_id,omitempty"`
	ParticipantID *string `json:"participant_id,omitempty"`
	Outcome       *string `json:"outcome,omitempty"`
	Timestamp     int64   `json:"timestamp"`
}

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// WebhookNotifier implements ports.NotificationSink by POSTing signed events
// to a configured sink URL. Delivery is fire-and-forget with a few retries;
// it never reports failure back to the engine.
type WebhookNotifier struct {
	cfg        config.NotifierConfig
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewWebhookNotifier creates a new WebhookNotifier.
func NewWebhookNotifier(cfg config.NotifierConfig, httpClient HTTPClient, log zerolog.Logger) *WebhookNotifier {
	return &WebhookNotifier{cfg: cfg, httpClient: httpClient, log: log}
}

func (n *WebhookNotifier) ChallengeReceived(ctx context.Context, challenge *domain.Challenge) {
	n.send(EventChallengeReceived, challenge, nil, "")
}

func (n *WebhookNotifier) ProofSubmitted(ctx context.Context, challenge *domain.Challenge, p *domain.Participation) {
	n.send(EventProofSubmitted, challenge, &p.AccountID, "")
}

func (n *WebhookNotifier) ChallengeSettled(ctx context.Context, challenge *domain.Challenge, outcome string) {
	n.send(EventChallengeSettled, challenge, nil, outcome)
}

func (n *WebhookNotifier) send(eventType string, challenge *domain.Challenge, participantID *uuid.UUID, outcome string) {
	if n.cfg.SinkURL == "" {
		n.log.Debug().Str("event", eventType).Msg("notifier: no sink URL configured, skipping")
		return
	}

	data := NotificationPayloadData{
		ChallengeID: challenge.ID.String(),
		Kind:        string(challenge.Kind),
		Title:       challenge.Title,
		Status:      string(challenge.Status),
		Reward:      challenge.Reward,
		CreatorID:   challenge.CreatorID.String(),
		Timestamp:   time.Now().Unix(),
	}
	if challenge.TargetID != nil {
		id := challenge.TargetID.String()
		data.TargetID = &id
	}
	if participantID != nil {
		id := participantID.String()
		data.ParticipantID = &id
	}
	if outcome != "" {
		data.Outcome = &outcome
	}

	dataBytes, err := json.Marshal(data)
	if err != nil {
		n.log.Error().Err(err).Str("event", eventType).Msg("notifier: failed to marshal payload data")
		return
	}

	payload := NotificationPayload{
		EventType: eventType,
		Data:      data,
		Signature: n.sign(dataBytes),
	}

	go n.deliverWithRetries(payload, challenge.ID.String())
}

func (n *WebhookNotifier) sign(data []byte) string {
	mac := hmac.New(sha256.New, []byte(n.cfg.Secret))
	mac.Write(data)
	return hex.EncodeToString(mac.Sum(nil))
}

func (n *WebhookNotifier) deliverWithRetries(payload NotificationPayload, challengeID string) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		n.log.Error().Err(err).Str("challenge_id", challengeID).Msg("notifier: failed to marshal payload")
		return
	}

	for attempt := 0; attempt <= len(notifyRetryIntervals); attempt++ {
		if attempt > 0 {
			time.Sleep(notifyRetryIntervals[attempt-1])
		}

		ctx, cancel := context.WithTimeout(context.Background(), n.cfg.Timeout)
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.SinkURL, bytes.NewReader(payloadBytes))
		if err != nil {
			cancel()
			n.log.Error().Err(err).Str("challenge_id", challengeID).Msg("notifier: failed to create request")
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := n.httpClient.Do(req)
		cancel()
		if err != nil {
			n.log.Warn().Err(err).Str("challenge_id", challengeID).Int("attempt", attempt+1).Msg("notifier: delivery failed")
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			n.log.Debug().Str("challenge_id", challengeID).Int("attempt", attempt+1).Msg("notifier: delivered")
			return
		}
		n.log.Warn().Str("challenge_id", challengeID).Int("attempt", attempt+1).Int("status", resp.StatusCode).Msg("notifier: non-2xx response, retrying")
	}

	n.log.Error().Str("challenge_id", challengeID).Msg("notifier: all retry attempts exhausted")
}

// NopNotifier discards all events. Used when no sink is configured and in
// tests that do not assert on notifications.
type NopNotifier struct{}

func (NopNotifier) ChallengeReceived(context.Context, *domain.Challenge)                       {}
func (NopNotifier) ProofSubmitted(context.Context, *domain.Challenge, *domain.Participation)   {}
func (NopNotifier) ChallengeSettled(context.Context, *domain.Challenge, string)                {}

var _ ports.NotificationSink = (*WebhookNotifier)(nil)
var _ ports.NotificationSink = NopNotifier{}
