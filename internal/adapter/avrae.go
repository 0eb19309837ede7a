package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	m "avrsync.dev/pkg/avrsync/internal/model"
)

// DefaultBaseURL is the production Avrae API endpoint.
const DefaultBaseURL = "https://api.avrae.io"

// DefaultTimeout bounds every single API call.
const DefaultTimeout = 3 * time.Second

const (
	versionPageSize  = 10
	versionPageLimit = 5 // better to skip the oldest versions than flood avrae with requests
)

// RequestError wraps an Avrae API response that was delivered but did not
// succeed. Body carries the raw response for diagnosis; it is never
// interpreted further.
type RequestError struct {
	Resource string
	ID       string
	Body     string
}

func (e *RequestError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("avrae %s request did not succeed: %s", e.Resource, e.Body)
	}

	return fmt.Sprintf("avrae %s %s request did not succeed: %s", e.Resource, e.ID, e.Body)
}

// AvraeClient manages interactions with the Avrae API on behalf of a single
// account. Implementations may cache collection and gvar responses for the
// life of the process; callers must treat fetched data as possibly stale
// relative to local files.
type AvraeClient interface {
	// GetCollections fetches the full entity tree of every registered
	// collection, in registration order.
	GetCollections(ctx context.Context) ([]m.Collection, error)

	// GetCollection returns a single registered collection, or nil when the
	// id is not registered.
	GetCollection(ctx context.Context, collectionID string) (*m.Collection, error)

	// GetGvars fetches every gvar the account can edit.
	GetGvars(ctx context.Context) ([]m.Gvar, error)

	// RecentMatchingVersion returns the most recent code version of the item
	// whose content equals code, or nil when no recent version matches.
	RecentMatchingVersion(ctx context.Context, item m.WorkshopItem, code string) (*m.CodeVersion, error)

	// CreateCodeVersion uploads code as a new (inactive) version of the item.
	CreateCodeVersion(ctx context.Context, item m.WorkshopItem, code string) (*m.CodeVersion, error)

	// SetActiveCodeVersion activates a previously uploaded code version.
	SetActiveCodeVersion(ctx context.Context, item m.WorkshopItem, version int) error

	// UpdateDocs replaces the docs of the item. Docs are not tied to a code
	// version.
	UpdateDocs(ctx context.Context, item m.WorkshopItem, docs string) error

	// UpdateGvar replaces the value of the gvar with the given key.
	UpdateGvar(ctx context.Context, key, value string) error
}

// HTTPAvraeClient is the concrete AvraeClient talking to the Avrae REST API.
type HTTPAvraeClient struct {
	baseURL       string
	token         string
	collectionIDs []string
	client        *http.Client

	mu          sync.Mutex
	collections map[string]m.Collection
	gvars       []m.Gvar
	gvarsLoaded bool
}

// NewHTTPAvraeClient constructs a client for the given API key and set of
// registered collection ids. An empty baseURL selects the production API.
func NewHTTPAvraeClient(baseURL, token string, collectionIDs []string) *HTTPAvraeClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &HTTPAvraeClient{
		baseURL:       baseURL,
		token:         token,
		collectionIDs: collectionIDs,
		client:        &http.Client{Timeout: DefaultTimeout},
	}
}

// GetCollections fetches all registered collections and caches them per id.
// Only ids not in the cache are fetched, concurrently; the returned order is
// the registration order regardless of what was cached.
func (c *HTTPAvraeClient) GetCollections(ctx context.Context) ([]m.Collection, error) {
	c.mu.Lock()
	if c.collections == nil {
		c.collections = make(map[string]m.Collection, len(c.collectionIDs))
	}

	var missing []string

	for _, collectionID := range c.collectionIDs {
		if _, ok := c.collections[collectionID]; !ok {
			missing = append(missing, collectionID)
		}
	}
	c.mu.Unlock()

	fetched := make([]*m.Collection, len(missing))

	group, groupCtx := errgroup.WithContext(ctx)

	for i, collectionID := range missing {
		i, collectionID := i, collectionID
		group.Go(func() error {
			collection, err := c.fetchCollection(groupCtx, collectionID)
			if err != nil {
				return err
			}

			fetched[i] = collection

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, collection := range fetched {
		c.collections[collection.ID] = *collection
	}

	collections := make([]m.Collection, 0, len(c.collectionIDs))
	for _, collectionID := range c.collectionIDs {
		collections = append(collections, c.collections[collectionID])
	}

	return collections, nil
}

// GetCollection returns one registered collection by id, nil if unknown.
func (c *HTTPAvraeClient) GetCollection(ctx context.Context, collectionID string) (*m.Collection, error) {
	collections, err := c.GetCollections(ctx)
	if err != nil {
		return nil, err
	}

	for i := range collections {
		if collections[i].ID == collectionID {
			return &collections[i], nil
		}
	}

	return nil, nil
}

// GetGvars fetches and caches every gvar editable by the account.
func (c *HTTPAvraeClient) GetGvars(ctx context.Context) ([]m.Gvar, error) {
	c.mu.Lock()
	if c.gvarsLoaded {
		cached := c.gvars
		c.mu.Unlock()

		return cached, nil
	}
	c.mu.Unlock()

	payload, err := c.do(ctx, http.MethodGet, "/customizations/gvars", nil)
	if err != nil {
		return nil, err
	}

	var data map[string]any
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("decode gvars response: %w", err)
	}

	gvars, err := m.GvarsFromData(data)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.gvars = gvars
	c.gvarsLoaded = true
	c.mu.Unlock()

	return gvars, nil
}

// RecentMatchingVersion pages through the item's code versions, newest
// first, until it finds one whose content equals code. The scan is bounded
// to avoid flooding avrae when the code only exists locally.
func (c *HTTPAvraeClient) RecentMatchingVersion(ctx context.Context, item m.WorkshopItem, code string) (*m.CodeVersion, error) {

	skip := 0

	for page := 0; page < versionPageLimit; page++ {
		path := fmt.Sprintf(
			"/workshop/%s/%s/code?skip=%d&limit=%d",
			item.ResourceType(), url.PathEscape(item.ItemID()), skip, versionPageSize,
		)

		payload, err := c.do(ctx, http.MethodGet, path, nil)
		if err != nil {
			return nil, err
		}

		data, err := c.envelopeData(item.ResourceType(), item.ItemID(), payload)
		if err != nil {
			return nil, err
		}

		versions, ok := data.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: code versions data is not a list", m.ErrMalformedResponse)
		}

		for _, rawVersion := range versions {
			versionData, ok := rawVersion.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: code version entry is not an object", m.ErrMalformedResponse)
			}

			if content, _ := versionData["content"].(string); content == code {
				version, err := m.CodeVersionFromData(versionData)
				if err != nil {
					return nil, err
				}

				return &version, nil
			}
		}

		skip += len(versions)

		if len(versions) < versionPageSize {
			break
		}
	}

	return nil, nil
}

// CreateCodeVersion uploads a new code version for the item.
func (c *HTTPAvraeClient) CreateCodeVersion(ctx context.Context, item m.WorkshopItem, code string) (*m.CodeVersion, error) {
	path := fmt.Sprintf("/workshop/%s/%s/code", item.ResourceType(), url.PathEscape(item.ItemID()))

	payload, err := c.do(ctx, http.MethodPost, path, map[string]any{"content": code})
	if err != nil {
		return nil, err
	}

	data, err := c.envelopeData(item.ResourceType(), item.ItemID(), payload)
	if err != nil {
		return nil, err
	}

	versionData, ok := data.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: new code version data is not an object", m.ErrMalformedResponse)
	}

	version, err := m.CodeVersionFromData(versionData)
	if err != nil {
		return nil, err
	}

	c.clearCollectionFromCache(item.OwningCollectionID())

	return &version, nil
}

// SetActiveCodeVersion marks an uploaded code version as the active one.
func (c *HTTPAvraeClient) SetActiveCodeVersion(ctx context.Context, item m.WorkshopItem, version int) error {
	path := fmt.Sprintf("/workshop/%s/%s/active-code", item.ResourceType(), url.PathEscape(item.ItemID()))

	payload, err := c.do(ctx, http.MethodPut, path, map[string]any{"version": version})
	if err != nil {
		return err
	}

	if _, err := c.envelopeData(item.ResourceType(), item.ItemID(), payload); err != nil {
		return err
	}

	c.clearCollectionFromCache(item.OwningCollectionID())

	return nil
}

// UpdateDocs replaces the item's docs.
func (c *HTTPAvraeClient) UpdateDocs(ctx context.Context, item m.WorkshopItem, docs string) error {
	path := fmt.Sprintf("/workshop/%s/%s", item.ResourceType(), url.PathEscape(item.ItemID()))

	payload, err := c.do(ctx, http.MethodPatch, path, map[string]any{
		"docs": docs,
		"name": item.ItemName(),
	})
	if err != nil {
		return err
	}

	if _, err := c.envelopeData(item.ResourceType(), item.ItemID(), payload); err != nil {
		return err
	}

	c.clearCollectionFromCache(item.OwningCollectionID())

	return nil
}

// UpdateGvar replaces a gvar's value. The endpoint answers with a literal
// confirmation string rather than the usual success envelope.
func (c *HTTPAvraeClient) UpdateGvar(ctx context.Context, key, value string) error {
	path := fmt.Sprintf("/customizations/gvars/%s", url.PathEscape(key))

	payload, err := c.do(ctx, http.MethodPost, path, map[string]any{"value": value})
	if err != nil {
		return err
	}

	if string(payload) != "Gvar updated." {
		return &RequestError{Resource: "gvar", ID: key, Body: string(payload)}
	}

	c.mu.Lock()
	c.gvars = nil
	c.gvarsLoaded = false
	c.mu.Unlock()

	return nil
}

func (c *HTTPAvraeClient) fetchCollection(ctx context.Context, collectionID string) (*m.Collection, error) {
	path := fmt.Sprintf("/workshop/collection/%s/full", url.PathEscape(collectionID))

	payload, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	data, err := c.envelopeData("collection", collectionID, payload)
	if err != nil {
		return nil, err
	}

	collectionData, ok := data.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: collection data is not an object", m.ErrMalformedResponse)
	}

	collection, err := m.CollectionFromData(collectionData)
	if err != nil {
		return nil, err
	}

	return &collection, nil
}

// clearCollectionFromCache drops one collection from the cache after a write
// so the next read refetches it.
func (c *HTTPAvraeClient) clearCollectionFromCache(collectionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.collections, collectionID)
}

// do performs one API call and returns the raw response body. Non-2xx
// statuses are errors carrying the body verbatim.
func (c *HTTPAvraeClient) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader

	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}

		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}

	request.Header.Set("Authorization", c.token)

	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := c.client.Do(request)
	if err != nil {
		return nil, err
	}

	defer func() { _ = response.Body.Close() }()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, fmt.Errorf("avrae returned %s for %s %s: %s", response.Status, method, path, payload)
	}

	return payload, nil
}

// envelopeData validates the standard {"success": ..., "data": ...} response
// envelope and returns the data member. A delivered-but-unsuccessful
// response becomes a RequestError carrying the whole body.
func (c *HTTPAvraeClient) envelopeData(resource, id string, payload []byte) (any, error) {
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", resource, err)
	}

	if !envelope.Success {
		return nil, &RequestError{Resource: resource, ID: id, Body: string(payload)}
	}

	var data any
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		return nil, fmt.Errorf("decode %s response data: %w", resource, err)
	}

	return data, nil
}
