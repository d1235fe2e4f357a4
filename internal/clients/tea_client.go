// internal/clients/tea_client.go
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"teahigh/internal/tea"
)

// TeaClient talks to a running teahigh server.
type TeaClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewTeaClient(baseURL string) *TeaClient {
	return &TeaClient{baseURL: strings.TrimRight(baseURL, "/"), httpClient: http.DefaultClient}
}

// StatusError is returned for any unexpected response status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d: %s", e.StatusCode, e.Body)
}

// ListTeas fetches the collection filtered and sorted by q.
func (c *TeaClient) ListTeas(ctx context.Context, q tea.Query) ([]tea.Tea, error) {
	var teas []tea.Tea
	if err := c.do(ctx, http.MethodGet, "/teas?"+encodeQuery(q).Encode(), nil, http.StatusOK, &teas); err != nil {
		return nil, err
	}
	return teas, nil
}

func (c *TeaClient) GetTea(ctx context.Context, id uuid.UUID) (*tea.Tea, error) {
	var t tea.Tea
	if err := c.do(ctx, http.MethodGet, "/teas/"+id.String(), nil, http.StatusOK, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTea posts form. A 422 response is returned as a *tea.ValidationError.
func (c *TeaClient) CreateTea(ctx context.Context, form tea.FormData) (*tea.Tea, error) {
	var t tea.Tea
	if err := c.do(ctx, http.MethodPost, "/teas", form, http.StatusCreated, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *TeaClient) ToggleStock(ctx context.Context, id uuid.UUID) (*tea.Tea, error) {
	var t tea.Tea
	if err := c.do(ctx, http.MethodPost, "/teas/"+id.String()+"/stock", nil, http.StatusOK, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *TeaClient) Stats(ctx context.Context) (*tea.Stats, error) {
	var s tea.Stats
	if err := c.do(ctx, http.MethodGet, "/stats", nil, http.StatusOK, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *TeaClient) do(ctx context.Context, method, path string, in any, want int, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnprocessableEntity {
		var v tea.ValidationError
		if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
			return fmt.Errorf("failed to decode validation errors: %w", err)
		}
		return &v
	}
	if resp.StatusCode != want {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func encodeQuery(q tea.Query) url.Values {
	v := url.Values{}
	f := q.Filters
	if f.Search != "" {
		v.Set("q", f.Search)
	}
	for _, t := range f.Types {
		v.Add("type", string(t))
	}
	for _, s := range f.Suppliers {
		v.Add("supplier", s)
	}
	if f.InStock != nil {
		v.Set("in_stock", strconv.FormatBool(*f.InStock))
	}
	if f.Rating != nil {
		v.Set("rating_min", strconv.Itoa(f.Rating.Min))
		v.Set("rating_max", strconv.Itoa(f.Rating.Max))
	}
	if f.HarvestYear != nil {
		v.Set("year_min", strconv.Itoa(f.HarvestYear.Min))
		v.Set("year_max", strconv.Itoa(f.HarvestYear.Max))
	}
	if q.Sort != nil {
		v.Set("sort", string(q.Sort.Field))
		v.Set("dir", string(q.Sort.Direction))
	}
	return v
}
