// SPDX-License-Identifier: Apache-2.0

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bastion-tools/guactoken/internal/descriptor"
	"github.com/go-resty/resty/v2"
)

type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type tokendAdapter struct {
	client *resty.Client
}

func NewTokendAdapter(cfg HTTPClientConfig) TokendAdapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &tokendAdapter{client: cli}
}

func (t *tokendAdapter) Verify(ctx context.Context, tok string) (descriptor.Descriptor, error) {
	resp, err := t.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"token": tok}).
		Post("/api/token/decode")
	if err != nil {
		return nil, fmt.Errorf("verify request: %w", err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		// fall through to decode the body
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: %s", ErrTokenRejected, strings.TrimSpace(resp.String()))
	default:
		return nil, fmt.Errorf("%w: status %d", ErrUnexpectedStatus, resp.StatusCode())
	}

	var d descriptor.Descriptor
	if err := json.Unmarshal(resp.Body(), &d); err != nil {
		return nil, fmt.Errorf("verify decode response: %w", err)
	}

	return d, nil
}
