// Package recognition wraps the external hand-landmark classifier. The model
// is a black box to this backend: a frame goes in, a label and a confidence
// come out.
package recognition

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

type Client struct {
	baseUrl *url.URL
	http    *http.Client
}

func NewClient(baseUrl string) (*Client, error) {
	u, err := url.Parse(baseUrl)
	if err != nil {
		return nil, fmt.Errorf("invalid recognition url: %w", err)
	}
	return &Client{
		baseUrl: u,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// PredictRequest carries one webcam frame as a base64 data url, exactly as
// the browser captures it.
type PredictRequest struct {
	Image string `json:"image"`
}

type PredictResponse struct {
	Prediction string  `json:"prediction"`
	Confidence float64 `json:"confidence"`
}

func (client *Client) Predict(ctx context.Context, frame PredictRequest) (PredictResponse, error) {
	u := client.baseUrl.JoinPath("predict")

	body := new(bytes.Buffer)
	if err := json.NewEncoder(body).Encode(frame); err != nil {
		return PredictResponse{}, fmt.Errorf("failed to encode body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), body)
	if err != nil {
		return PredictResponse{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.http.Do(req)
	if err != nil {
		return PredictResponse{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return PredictResponse{}, fmt.Errorf("recognition service returned %d", resp.StatusCode)
	}

	var prediction PredictResponse
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		return PredictResponse{}, fmt.Errorf("failed to decode body: %w", err)
	}
	return prediction, nil
}
