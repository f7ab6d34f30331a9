// Package server is the HTTP client for the remote game server.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/jackyboi/asyncchess/internal/wire"
)

const userAgent = "JackyBoi/AsyncChess"

// ErrInvalidMove marks a move the server rejected as illegal (HTTP 412).
var ErrInvalidMove = errors.New("server rejected move")

// StatusError is a non-2xx response other than the codes with dedicated
// meanings.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server error: status=%d body=%s", e.Status, truncate(e.Body, 256))
}

type Client struct {
	baseURL string
	http    *fasthttp.Client

	defaultTimeout time.Duration
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.defaultTimeout = d }
}

func WithMaxConnsPerHost(n int) Option {
	return func(c *Client) { c.http.MaxConnsPerHost = n }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		http:           &fasthttp.Client{ReadTimeout: 10 * time.Second, WriteTimeout: 10 * time.Second, MaxConnsPerHost: 8},
		defaultTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchBoard retrieves the full board for a game. changed is false when
// the server answers 208 Already Reported, meaning the board has not
// moved on since the last fetch.
func (c *Client) FetchBoard(ctx context.Context, id uint32) (list wire.PieceList, changed bool, err error) {
	status, body, err := c.do(ctx, fasthttp.MethodGet, fmt.Sprintf("/games/%d", id), nil, "")
	if err != nil {
		return nil, false, fmt.Errorf("fetch board: %w", err)
	}
	switch {
	case status == fasthttp.StatusAlreadyReported:
		return nil, false, nil
	case status >= 200 && status < 300:
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, false, fmt.Errorf("decode piece list: %w", err)
		}
		return list, true, nil
	default:
		return nil, false, &StatusError{Status: status, Body: string(body)}
	}
}

// SubmitMove posts a move. captured reports whether the move took a
// piece, read from the server's response text. A 412 response comes back
// as ErrInvalidMove; anything else non-2xx is a StatusError.
func (c *Client) SubmitMove(ctx context.Context, m wire.Move) (captured bool, err error) {
	payload, err := json.Marshal(m)
	if err != nil {
		return false, fmt.Errorf("marshal move: %w", err)
	}
	status, body, err := c.do(ctx, fasthttp.MethodPost, "/movepiece", payload, "application/json")
	if err != nil {
		return false, fmt.Errorf("submit move: %w", err)
	}
	switch {
	case status >= 200 && status < 300:
		// the server answers with prose; "took no piece" style responses
		// contain "not"
		return !bytes.Contains(body, []byte("not")), nil
	case status == fasthttp.StatusPreconditionFailed:
		return false, ErrInvalidMove
	default:
		return false, &StatusError{Status: status, Body: string(body)}
	}
}

// NewGame asks the server to reset the board for a game.
func (c *Client) NewGame(ctx context.Context, id uint32) error {
	return c.fireAndForget(ctx, "/newgame", id)
}

// Invalidate asks the server to release session resources for a game.
func (c *Client) Invalidate(ctx context.Context, id uint32) error {
	return c.fireAndForget(ctx, "/invalidate", id)
}

func (c *Client) fireAndForget(ctx context.Context, path string, id uint32) error {
	status, body, err := c.do(ctx, fasthttp.MethodPost, path, []byte(strconv.FormatUint(uint64(id), 10)), "text/plain")
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if status < 200 || status >= 300 {
		return &StatusError{Status: status, Body: string(body)}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte, contentType string) (int, []byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.Header.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)
	req.Header.SetUserAgent(userAgent)
	if contentType != "" {
		req.Header.SetContentType(contentType)
	}
	if payload != nil {
		req.SetBody(payload)
	}

	if err := c.http.DoDeadline(req, resp, c.computeDeadline(ctx)); err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}

	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	return resp.StatusCode(), body, nil
}

func (c *Client) computeDeadline(ctx context.Context) time.Time {
	clientDL := time.Now().Add(c.defaultTimeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(clientDL) {
		return dl
	}
	return clientDL
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
