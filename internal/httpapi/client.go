// Package httpapi is the single choke point for outbound calls to the blog
// API. Every request goes through Do: it attaches the bearer token, tracks
// the shared loading flag, normalizes the outcome into an Envelope and owns
// the user-visible failure notification. It never returns an error to the
// caller; failures are data.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Rafid13iit/BS23-Assignment-01-Blog-Project/internal/notify"
	"github.com/Rafid13iit/BS23-Assignment-01-Blog-Project/internal/tokenstore"
)

// genericError is the transport-failure fallback shown when the server did
// not supply a structured message.
const genericError = "Something went wrong"

// Envelope is the normalized result of one call. Exactly one of Data/Error
// is meaningful: Data is nil whenever Success is false.
type Envelope struct {
	Success bool
	Data    json.RawMessage
	Error   string
}

// Decode unmarshals the success payload into v.
func (e Envelope) Decode(v any) error {
	return json.Unmarshal(e.Data, v)
}

// Refresher performs the one permitted token refresh on 401. Implemented by
// the session manager; refresh failure invalidates the session as a side
// effect there.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Options control a single call.
type Options struct {
	// Auth attaches the bearer token when one is stored.
	Auth bool
	// Silent suppresses the failure notification. Used by the session
	// manager for verify/refresh traffic so a failed background check
	// never surfaces a banner.
	Silent bool
}

// Client executes requests against one base URL. Concurrent calls share one
// loading flag; callers needing independent indicators use independent
// clients.
type Client struct {
	base    string
	hc      *http.Client
	store   *tokenstore.Store
	notify  notify.Notifier
	log     *zap.Logger
	loading atomic.Int32 // in-flight depth; the nested refresh call must not drop the flag

	mu        sync.Mutex
	refresher Refresher
}

func New(baseURL string, timeout time.Duration, store *tokenstore.Store, n notify.Notifier, log *zap.Logger) *Client {
	return &Client{
		base:   strings.TrimRight(baseURL, "/"),
		hc:     &http.Client{Timeout: timeout},
		store:  store,
		notify: n,
		log:    log,
	}
}

// SetRefresher registers the 401 refresh hook. Until one is set, 401s are
// plain failures.
func (c *Client) SetRefresher(r Refresher) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refresher = r
}

// Loading reports whether a call is currently in flight.
func (c *Client) Loading() bool { return c.loading.Load() > 0 }

func (c *Client) Get(ctx context.Context, path string, auth bool) Envelope {
	return c.Do(ctx, http.MethodGet, path, nil, Options{Auth: auth})
}

func (c *Client) Post(ctx context.Context, path string, body any, auth bool) Envelope {
	return c.Do(ctx, http.MethodPost, path, body, Options{Auth: auth})
}

func (c *Client) Put(ctx context.Context, path string, body any, auth bool) Envelope {
	return c.Do(ctx, http.MethodPut, path, body, Options{Auth: auth})
}

func (c *Client) Delete(ctx context.Context, path string, body any, auth bool) Envelope {
	return c.Do(ctx, http.MethodDelete, path, body, Options{Auth: auth})
}

// Do dispatches one request and settles it into an Envelope. The loading
// flag is reset on every exit path, and at most one failure notification is
// emitted per call, after any refresh-and-retry.
func (c *Client) Do(ctx context.Context, method, path string, body any, opt Options) Envelope {
	c.loading.Add(1)
	defer c.loading.Add(-1)

	env := c.dispatch(ctx, method, path, body, opt, false)
	if !env.Success && !opt.Silent {
		c.notify.Error(env.Error)
	}
	return env
}

func (c *Client) dispatch(ctx context.Context, method, path string, body any, opt Options, retried bool) Envelope {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			c.log.Error("marshal request body", zap.String("path", path), zap.Error(err))
			return Envelope{Error: genericError}
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, bytes.NewReader(payload))
	if err != nil {
		c.log.Error("build request", zap.String("path", path), zap.Error(err))
		return Envelope{Error: genericError}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if opt.Auth {
		if tok, ok := c.store.Get(tokenstore.KeyAccessToken); ok {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Debug("http",
			zap.String("method", method),
			zap.String("path", path),
			zap.Duration("dur", time.Since(start)),
			zap.Error(err),
		)
		return Envelope{Error: genericError}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	c.log.Debug("http",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("dur", time.Since(start)),
	)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return Envelope{Success: true, Data: raw}
	}

	if resp.StatusCode == http.StatusUnauthorized && opt.Auth && !retried {
		c.mu.Lock()
		r := c.refresher
		c.mu.Unlock()
		if r != nil {
			if err := r.Refresh(ctx); err == nil {
				return c.dispatch(ctx, method, path, body, opt, true)
			}
		}
	}

	return Envelope{Error: errorMessage(raw)}
}

// errorMessage extracts the structured server message, falling back to the
// generic transport wording.
func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return genericError
}
