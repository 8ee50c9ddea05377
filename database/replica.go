package database

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// ReplicaSync pushes the server_configs table to a remote replica endpoint.
// Pushes triggered by writes are fire-and-forget; only the startup sync is
// retried, since an unavailable remote at boot is expected and recoverable.
type ReplicaSync struct {
	store  *Store
	url    string
	token  string
	client *http.Client
}

// NewReplicaSync builds a syncer. An empty url disables syncing (local mode).
func NewReplicaSync(store *Store, url, token string) *ReplicaSync {
	return &ReplicaSync{
		store:  store,
		url:    url,
		token:  token,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether a replica endpoint is configured.
func (r *ReplicaSync) Enabled() bool {
	return r.url != ""
}

type replicaPayload struct {
	GuildID           uint64 `json:"guild_id"`
	SanitizerMode     int    `json:"sanitizer_mode"`
	DeletePermission  int    `json:"delete_permission"`
	HideOriginalEmbed bool   `json:"hide_original_embed"`
}

// Sync uploads the full config table to the replica.
func (r *ReplicaSync) Sync(ctx context.Context) error {
	if !r.Enabled() {
		log.Println("Skipping sync - running in local mode")
		return nil
	}

	configs, err := r.store.AllServerConfigs()
	if err != nil {
		return fmt.Errorf("failed to load configs for sync: %w", err)
	}

	payload := make([]replicaPayload, 0, len(configs))
	for _, c := range configs {
		payload = append(payload, replicaPayload{
			GuildID:           c.GuildID,
			SanitizerMode:     int(c.SanitizerMode),
			DeletePermission:  int(c.DeletePermission),
			HideOriginalEmbed: c.HideOriginalEmbed,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode sync payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build sync request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach replica: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("replica rejected sync: %s", resp.Status)
	}
	return nil
}

// SyncAsync performs a sync in the background without blocking the caller.
func (r *ReplicaSync) SyncAsync() {
	if !r.Enabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := r.Sync(ctx); err != nil {
			log.Printf("Failed to sync database after write: %v", err)
		}
	}()
}

// SyncWithRetry runs the startup sync with bounded exponential backoff.
func (r *ReplicaSync) SyncWithRetry(ctx context.Context, attempts int) {
	if !r.Enabled() {
		log.Println("Skipping sync - running in local mode")
		return
	}
	delay := 250 * time.Millisecond
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := r.Sync(ctx); err == nil {
			log.Printf("Initial database sync completed successfully (attempt %d)", attempt)
			return
		} else if attempt == attempts {
			log.Printf("Failed initial database sync after %d attempts: %v", attempts, err)
			return
		} else {
			log.Printf("Initial database sync failed (attempt %d), retrying after %v: %v", attempt, delay, err)
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return
		}
		delay *= 2
	}
}
