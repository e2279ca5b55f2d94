package recordstore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	dErrors "onsightnow/pkg/domain-errors"
)

// HTTPDoer is the minimal interface needed from an HTTP client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DataverseConfig configures a DataverseStore.
type DataverseConfig struct {
	// BaseURL is the organisation URL, e.g. https://contoso.crm.dynamics.com.
	BaseURL    string
	APIVersion string
	// EntitySets overrides the entity set name for a logical name. Without an
	// override the set name is the logical name plus "s".
	EntitySets map[string]string
	Timeout    time.Duration
	// HTTPClient is typically an oauth2 client carrying the Dataverse bearer token.
	HTTPClient HTTPDoer
	Logger     *slog.Logger
}

// DataverseStore retrieves records through the Dataverse Web API.
type DataverseStore struct {
	baseURL    string
	apiVersion string
	entitySets map[string]string
	client     HTTPDoer
	logger     *slog.Logger
}

// NewDataverseStore creates a Web API backed record store.
func NewDataverseStore(cfg DataverseConfig) *DataverseStore {
	if cfg.APIVersion == "" {
		cfg.APIVersion = "v9.2"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &DataverseStore{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiVersion: cfg.APIVersion,
		entitySets: cfg.EntitySets,
		client:     client,
		logger:     logger,
	}
}

// EntitySet returns the Web API entity set name for a logical name.
func (s *DataverseStore) EntitySet(entityType string) string {
	if set, ok := s.entitySets[entityType]; ok {
		return set
	}
	return entityType + "s"
}

// Retrieve performs GET {base}/api/data/{version}/{set}({id}){options}.
func (s *DataverseStore) Retrieve(ctx context.Context, entityType, id string, q Query) (Record, error) {
	url := fmt.Sprintf("%s/api/data/%s/%s(%s)%s",
		s.baseURL, s.apiVersion, s.EntitySet(entityType), normalizeID(id), q.Options())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create record request")
	}
	req.Header.Set("OData-MaxVersion", "4.0")
	req.Header.Set("OData-Version", "4.0")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "record request timeout")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to execute record request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read record response")
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, notFound(entityType, id)
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return nil, accessDenied(entityType, id)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		s.logger.WarnContext(ctx, "unexpected record store status",
			"entity_type", entityType,
			"status", resp.StatusCode,
		)
		return nil, dErrors.New(dErrors.CodeInternal, fmt.Sprintf("unexpected record store status: %d", resp.StatusCode))
	}

	var rec Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to parse record response")
	}
	return rec, nil
}

// Ping calls the WhoAmI function to confirm the organisation is reachable
// and the credentials are accepted.
func (s *DataverseStore) Ping(ctx context.Context) error {
	url := fmt.Sprintf("%s/api/data/%s/WhoAmI", s.baseURL, s.apiVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create ping request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "record store unreachable")
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return dErrors.New(dErrors.CodeInternal, fmt.Sprintf("record store ping status: %d", resp.StatusCode))
	}
	return nil
}
