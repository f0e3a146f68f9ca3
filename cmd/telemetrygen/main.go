// Command telemetrygen submits randomly generated game sessions to a
// running service, for load testing and local development.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Default configuration constants.
const (
	defaultNumSessions = 200
	defaultNumUsers    = 10
	defaultWorkers     = 8
	defaultTimeout     = 10 * time.Second
	defaultRunTimeout  = 5 * time.Minute
)

var gameNames = []string{"follow-the-dot", "bubble-pop", "memory-match"}

type sessionPayload struct {
	SessionID          string         `json:"session_id"`
	UserID             string         `json:"user_id"`
	GameName           string         `json:"game_name"`
	GameMode           string         `json:"game_mode"`
	LevelReached       int            `json:"level_reached"`
	Score              int            `json:"score"`
	TotalAttempts      int            `json:"total_attempts"`
	SuccessfulAttempts int            `json:"successful_attempts"`
	LeftHandUsage      int            `json:"left_hand_usage"`
	RightHandUsage     int            `json:"right_hand_usage"`
	DurationSeconds    int            `json:"duration_seconds"`
	PlayedAt           string         `json:"played_at"`
	RawData            map[string]any `json:"raw_data"`
}

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:9090", "Base URL of the service")
		numSessions = flag.Int("sessions", defaultNumSessions, "Number of sessions to generate and submit")
		numUsers    = flag.Int("users", defaultNumUsers, "Number of distinct users to spread sessions across")
		workers     = flag.Int("workers", defaultWorkers, "Number of concurrent submitters")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		seed        = flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	)
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	users := make([]string, *numUsers)
	for i := range users {
		users[i] = uuid.NewString()
	}

	payloads := make([]sessionPayload, *numSessions)
	for i := range payloads {
		payloads[i] = randomSession(rng, users[rng.Intn(len(users))])
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	client := &http.Client{Timeout: *timeout}
	jobs := make(chan sessionPayload)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var succeeded, failed int

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				if err := submit(ctx, client, *baseURL, p); err != nil {
					mu.Lock()
					failed++
					mu.Unlock()
					fmt.Fprintf(os.Stderr, "submit failed: %v\n", err)
					continue
				}
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}

	for _, p := range payloads {
		select {
		case jobs <- p:
		case <-ctx.Done():
		}
	}
	close(jobs)
	wg.Wait()

	fmt.Printf("submitted %d sessions (%d ok, %d failed) across %d users\n",
		*numSessions, succeeded, failed, *numUsers)
}

// randomSession builds one plausible session for a user.
func randomSession(rng *rand.Rand, userID string) sessionPayload {
	game := gameNames[rng.Intn(len(gameNames))]
	total := 5 + rng.Intn(30)
	successful := rng.Intn(total + 1)
	left := rng.Intn(50)
	right := rng.Intn(80)
	duration := 30 + rng.Intn(500)
	level := 1 + rng.Intn(8)

	raw := map[string]any{
		"averageReactionTime": 300 + rng.Float64()*900,
	}
	if game == "follow-the-dot" {
		points := make([]map[string]any, 0, 10)
		ts := float64(0)
		for i := 0; i < 10; i++ {
			ts += 50 + rng.Float64()*100
			points = append(points, map[string]any{
				"x":         rng.Float64() * 800,
				"y":         rng.Float64() * 600,
				"timestamp": ts,
			})
		}
		raw = map[string]any{"handTrackingData": points}
	}

	return sessionPayload{
		SessionID:          uuid.NewString(),
		UserID:             userID,
		GameName:           game,
		GameMode:           "standard",
		LevelReached:       level,
		Score:              successful * (10 + rng.Intn(40)),
		TotalAttempts:      total,
		SuccessfulAttempts: successful,
		LeftHandUsage:      left,
		RightHandUsage:     right,
		DurationSeconds:    duration,
		PlayedAt:           time.Now().Add(-time.Duration(rng.Intn(720)) * time.Hour).Format(time.RFC3339),
		RawData:            raw,
	}
}

// submit posts one session to the service.
func submit(ctx context.Context, client *http.Client, baseURL string, p sessionPayload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/v1/sessions", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("post session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
