package devicesync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	v1 "github.com/aevon-lab/tillsync/internal/api/v1"
	"github.com/nats-io/nats.go"
)

// Request payloads understood by the device firmware. "send_emails" is the historical
// name of the buffer-clear command.
const (
	payloadGetPurchases = "get_purchases"
	payloadClearBuffer  = "send_emails"

	// DefaultRequestTimeout bounds every request/reply round trip.
	DefaultRequestTimeout = 3 * time.Second
)

var (
	// ErrTimeout means the device did not reply in time. Nothing was changed on either side.
	ErrTimeout = errors.New("device request timed out")

	// ErrUnavailable means no device is listening or the bus cannot be reached.
	ErrUnavailable = errors.New("device channel unavailable")

	// ErrBadReply means the device replied with something that is not the expected JSON.
	ErrBadReply = errors.New("device sent malformed reply")
)

// Channel is the request/reply surface the aggregation cycle needs from a device.
type Channel interface {
	// FetchPurchases pulls every buffered purchase row from the device.
	FetchPurchases(ctx context.Context, deviceID string) ([]v1.RawPurchaseRow, error)

	// ClearBuffer tells the device its buffered rows are durably stored.
	ClearBuffer(ctx context.Context, deviceID string) error
}

// Options configures a Client.
type Options struct {
	URL            string
	Name           string
	RequestTimeout time.Duration
}

// Client is a NATS-backed Channel. The connection is dialed on first use and
// re-dialed whenever the cached one has been closed, so a Client can be constructed
// before the bus is reachable.
type Client struct {
	opts Options

	mu   sync.Mutex
	conn *nats.Conn
}

var _ Channel = (*Client)(nil)

// NewClient returns a Client. No connection is made until the first request.
func NewClient(opts Options) *Client {
	if opts.URL == "" {
		opts.URL = nats.DefaultURL
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}
	return &Client{opts: opts}
}

func purchaseSubject(deviceID string) string { return deviceID + ".purchase" }
func removeSubject(deviceID string) string   { return deviceID + ".remove" }

func (c *Client) FetchPurchases(ctx context.Context, deviceID string) ([]v1.RawPurchaseRow, error) {
	data, err := c.request(ctx, purchaseSubject(deviceID), payloadGetPurchases)
	if err != nil {
		return nil, err
	}

	var reply v1.PurchaseReply
	if err := json.Unmarshal(data, &reply); err != nil {
		return nil, fmt.Errorf("%w: decode purchases from %s: %v", ErrBadReply, deviceID, err)
	}
	if reply.Data == nil {
		reply.Data = []v1.RawPurchaseRow{}
	}

	slog.Debug("[DeviceSync] Fetched purchases", "device_id", deviceID, "rows", len(reply.Data))
	return reply.Data, nil
}

func (c *Client) ClearBuffer(ctx context.Context, deviceID string) error {
	data, err := c.request(ctx, removeSubject(deviceID), payloadClearBuffer)
	if err != nil {
		return err
	}
	if !json.Valid(data) {
		return fmt.Errorf("%w: acknowledgement from %s is not JSON", ErrBadReply, deviceID)
	}

	slog.Debug("[DeviceSync] Buffer cleared", "device_id", deviceID)
	return nil
}

func (c *Client) request(ctx context.Context, subject, payload string) ([]byte, error) {
	conn, err := c.connection()
	if err != nil {
		return nil, err
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.opts.RequestTimeout)
	defer cancel()

	slog.Debug("[DeviceSync] Sending request", "subject", subject)
	msg, err := conn.RequestWithContext(reqCtx, subject, []byte(payload))
	if err != nil {
		return nil, classify(ctx, subject, err)
	}
	return msg.Data, nil
}

// classify maps NATS and context errors onto the package sentinels. A cancellation
// of the caller's own context is returned as-is.
func classify(parent context.Context, subject string, err error) error {
	switch {
	case errors.Is(err, nats.ErrNoResponders):
		return fmt.Errorf("%w: no responders on %s", ErrUnavailable, subject)
	case errors.Is(err, nats.ErrConnectionClosed), errors.Is(err, nats.ErrConnectionDraining):
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, subject, err)
	case parent.Err() != nil:
		return fmt.Errorf("request %s: %w", subject, parent.Err())
	case errors.Is(err, nats.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %s", ErrTimeout, subject)
	default:
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, subject, err)
	}
}

// connection returns the cached connection, dialing a new one if there is none or the
// previous one was closed.
func (c *Client) connection() (*nats.Conn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil && !c.conn.IsClosed() {
		return c.conn, nil
	}

	if c.conn != nil {
		slog.Info("[DeviceSync] Cached connection closed, reconnecting", "url", c.opts.URL)
	}

	conn, err := nats.Connect(c.opts.URL,
		nats.Name(c.opts.Name),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				slog.Warn("[DeviceSync] Disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.Info("[DeviceSync] Reconnected", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			slog.Warn("[DeviceSync] Connection closed")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: connect %s: %v", ErrUnavailable, c.opts.URL, err)
	}

	slog.Info("[DeviceSync] Connected", "url", c.opts.URL)
	c.conn = conn
	return conn, nil
}

// Close drains and closes the connection if one was dialed.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil || c.conn.IsClosed() {
		return nil
	}
	if err := c.conn.Drain(); err != nil {
		c.conn.Close()
		return fmt.Errorf("failed to drain nats connection: %w", err)
	}
	return nil
}
