// Package storage talks to the Supabase Storage REST API where menu images
// live.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"aukra/apperr"
)

// ImageFolder is the folder inside the bucket that holds dish images.
const ImageFolder = "menu-images"

const listPageSize = 1000

type Bucket struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Public    bool      `json:"public"`
	CreatedAt time.Time `json:"created_at"`
}

// Object is one entry of a bucket listing. Name is relative to the listed
// prefix.
type Object struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Client struct {
	baseURL string
	key     string
	hc      *http.Client
}

// New returns a client for the project at baseURL authenticated with a
// service key.
func New(baseURL, key string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     key,
		hc:      &http.Client{Timeout: 10 * time.Second},
	}
}

// Upload stores body at path inside bucket and returns its public URL.
func (c *Client) Upload(ctx context.Context, bucket, path, contentType string, body io.Reader) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/object/"+bucket+"/"+escapePath(path), body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "false")
	if err := c.do(req, nil); err != nil {
		return "", fmt.Errorf("upload %s: %w", path, err)
	}
	return c.PublicURL(bucket, path), nil
}

// Remove deletes the objects at paths. Missing objects are not an error.
func (c *Client) Remove(ctx context.Context, bucket string, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	payload, err := json.Marshal(map[string][]string{"prefixes": paths})
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodDelete, "/object/"+bucket, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("remove %d objects: %w", len(paths), err)
	}
	return nil
}

func (c *Client) ListBuckets(ctx context.Context) ([]Bucket, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/bucket", nil)
	if err != nil {
		return nil, err
	}
	buckets := []Bucket{}
	if err := c.do(req, &buckets); err != nil {
		return nil, fmt.Errorf("list buckets: %w", err)
	}
	return buckets, nil
}

// List returns every object directly under prefix, following pagination.
func (c *Client) List(ctx context.Context, bucket, prefix string) ([]Object, error) {
	var all []Object
	for offset := 0; ; offset += listPageSize {
		payload, err := json.Marshal(map[string]any{
			"prefix": prefix,
			"limit":  listPageSize,
			"offset": offset,
			"sortBy": map[string]string{"column": "name", "order": "asc"},
		})
		if err != nil {
			return nil, err
		}
		req, err := c.newRequest(ctx, http.MethodPost, "/object/list/"+bucket, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		var page []Object
		if err := c.do(req, &page); err != nil {
			return nil, fmt.Errorf("list %s/%s: %w", bucket, prefix, err)
		}
		all = append(all, page...)
		if len(page) < listPageSize {
			return all, nil
		}
	}
}

// PublicURL is the address a public bucket serves path from.
func (c *Client) PublicURL(bucket, path string) string {
	return c.publicPrefix(bucket) + escapePath(path)
}

// ObjectPath maps a public URL back to the object path inside bucket. It
// reports false for URLs that do not point into bucket.
func (c *Client) ObjectPath(bucket, publicURL string) (string, bool) {
	rest, ok := strings.CutPrefix(publicURL, c.publicPrefix(bucket))
	if !ok || rest == "" {
		return "", false
	}
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}
	p, err := url.PathUnescape(rest)
	if err != nil {
		return "", false
	}
	return p, true
}

func (c *Client) publicPrefix(bucket string) string {
	return c.baseURL + "/storage/v1/object/public/" + bucket + "/"
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/storage/v1"+endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("apikey", c.key)
	return req, nil
}

// do sends req and decodes a JSON response into out when out is non-nil.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.hc.Do(req)
	if err != nil {
		return apperr.Transient("storage unavailable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var body struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body)
		msg := body.Message
		if msg == "" {
			msg = body.Error
		}
		if msg == "" {
			msg = resp.Status
		}
		switch {
		case resp.StatusCode == http.StatusNotFound:
			return &apperr.Error{Kind: apperr.KindNotFound, Message: msg}
		case resp.StatusCode == http.StatusConflict:
			return &apperr.Error{Kind: apperr.KindConflict, Message: msg}
		case resp.StatusCode >= 500:
			return apperr.Transient("storage unavailable", fmt.Errorf("storage: %s", msg))
		}
		return fmt.Errorf("storage: %s", msg)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode storage response: %w", err)
	}
	return nil
}

func escapePath(p string) string {
	parts := strings.Split(p, "/")
	for i, s := range parts {
		parts[i] = url.PathEscape(s)
	}
	return strings.Join(parts, "/")
}
