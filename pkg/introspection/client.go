package introspection

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/jensneuse/abstractlogger"
	"github.com/tidwall/gjson"
)

const (
	httpHeaderContentType          = "Content-Type"
	httpHeaderAccept               = "Accept"
	httpContentTypeApplicationJson = "application/json"
)

// Client fetches the raw introspection JSON of a GraphQL endpoint.
type Client struct {
	httpClient *http.Client
	log        log.Logger
}

func NewClient(logger log.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Second * 30,
		},
		log: logger,
	}
}

type graphqlRequest struct {
	Query string `json:"query"`
}

// Fetch POSTs the introspection query to endpoint and returns the raw
// response body. Connection failures, non-200 statuses and responses
// without a __schema object all fail the fetch.
func (c *Client) Fetch(ctx context.Context, endpoint string) ([]byte, error) {
	body, err := json.Marshal(graphqlRequest{Query: Query})
	if err != nil {
		return nil, fmt.Errorf("introspection fetch: marshal request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("introspection fetch: %w", err)
	}
	request.Header.Set(httpHeaderContentType, httpContentTypeApplicationJson)
	request.Header.Set(httpHeaderAccept, httpContentTypeApplicationJson)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("introspection fetch: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("introspection fetch: endpoint %s returned status %d", endpoint, response.StatusCode)
	}

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("introspection fetch: read response: %w", err)
	}

	if !gjson.GetBytes(data, "data.__schema").Exists() && !gjson.GetBytes(data, "__schema").Exists() {
		return nil, fmt.Errorf("introspection fetch: response is missing a __schema object")
	}

	c.log.Debug("introspection.Client.Fetch",
		log.String("endpoint", endpoint),
		log.Int("bytes", len(data)),
	)

	return data, nil
}
