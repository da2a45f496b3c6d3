// Package catalog talks to the external exercise-catalog API. The
// catalog is a read-only collaborator: body parts and their exercises
// are fetched on demand and never cached or written back.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"trackfit/workout-app/internal/domain"
)

// Client fetches body parts and exercises from the catalog API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a catalog client. The api key is sent on every
// request; an empty key is allowed for keyless deployments.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ListBodyParts returns the catalog's body part names in catalog order.
func (c *Client) ListBodyParts(ctx context.Context) ([]string, error) {
	var parts []string
	if err := c.getJSON(ctx, "/exercises/bodyPartList", &parts); err != nil {
		return nil, err
	}
	return parts, nil
}

// ListExercisesByBodyPart returns every exercise the catalog lists for
// the body part. Missing optional fields decode to their zero values.
func (c *Client) ListExercisesByBodyPart(ctx context.Context, bodyPart string) ([]domain.CatalogExercise, error) {
	if bodyPart == "" {
		return nil, fmt.Errorf("body part cannot be empty")
	}

	var exercises []domain.CatalogExercise
	path := "/exercises/bodyPart/" + url.PathEscape(bodyPart)
	if err := c.getJSON(ctx, path, &exercises); err != nil {
		return nil, err
	}

	// Older catalog entries can miss the name; keep the listing usable.
	for i := range exercises {
		if exercises[i].Name == "" {
			exercises[i].Name = "Unknown Exercise"
		}
	}
	return exercises, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building catalog request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding catalog response: %w", err)
	}
	return nil
}
