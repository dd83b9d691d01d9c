package bluetooth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"

	"github.com/tessro/unyo/internal/core"
	uerrors "github.com/tessro/unyo/internal/errors"
)

const getManagedObjects = "org.freedesktop.DBus.ObjectManager.GetManagedObjects"

// Conn is the subset of a bus connection the client needs.
type Conn interface {
	GetManagedObjects(ctx context.Context, service string) (ObjectTree, error)
	Close() error
}

// Dialer opens a bus connection. The returned connection must outlive ctx;
// ctx only bounds the dial itself.
type Dialer func(ctx context.Context) (Conn, error)

// SystemBus dials a private system bus connection. The auth and Hello
// handshake take no context, so the caller bounds the wait.
func SystemBus(ctx context.Context) (Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, err
	}
	return &busConn{conn: conn}, nil
}

type busConn struct {
	conn *dbus.Conn
}

func (b *busConn) GetManagedObjects(ctx context.Context, service string) (ObjectTree, error) {
	var tree ObjectTree
	obj := b.conn.Object(service, dbus.ObjectPath("/"))
	if err := obj.CallWithContext(ctx, getManagedObjects, 0).Store(&tree); err != nil {
		return nil, err
	}
	return tree, nil
}

func (b *busConn) Close() error {
	return b.conn.Close()
}

// Client queries the BlueZ object manager for media player state.
type Client struct {
	service string
	dial    Dialer
	logger  *slog.Logger

	mu   sync.Mutex
	conn Conn
}

// NewClient creates a client for the given bus service (normally "org.bluez").
func NewClient(service string, dial Dialer, logger *slog.Logger) *Client {
	if dial == nil {
		dial = SystemBus
	}
	return &Client{
		service: service,
		dial:    dial,
		logger:  logger,
	}
}

// QueryManagedObjects fetches every object the service manages. The
// connection is opened on first use and dropped after a failed call so the
// next cycle reconnects.
func (c *Client) QueryManagedObjects(ctx context.Context) (ObjectTree, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		conn, err := c.connect(ctx)
		if err != nil {
			return nil, err
		}
		c.conn = conn
	}

	tree, err := c.conn.GetManagedObjects(ctx, c.service)
	if err != nil {
		_ = c.conn.Close()
		c.conn = nil
		if ctx.Err() != nil {
			return nil, fmt.Errorf("get managed objects: %w: %v", uerrors.ErrTimeout, ctx.Err())
		}
		return nil, fmt.Errorf("get managed objects: %w: %v", uerrors.ErrIPC, err)
	}
	return tree, nil
}

type dialResult struct {
	conn Conn
	err  error
}

// connect dials in the background and gives up when ctx is done. A
// connection that completes after the deadline is closed.
func (c *Client) connect(ctx context.Context) (Conn, error) {
	done := make(chan dialResult, 1)
	go func() {
		conn, err := c.dial(ctx)
		done <- dialResult{conn: conn, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("connect system bus: %w: %v", uerrors.ErrTimeout, ctx.Err())
			}
			return nil, fmt.Errorf("connect system bus: %w: %v", uerrors.ErrIPC, r.err)
		}
		return r.conn, nil
	case <-ctx.Done():
		go func() {
			if r := <-done; r.conn != nil {
				_ = r.conn.Close()
			}
		}()
		return nil, fmt.Errorf("connect system bus: %w: %v", uerrors.ErrTimeout, ctx.Err())
	}
}

// Poll performs one query and decode cycle. found is false when the bus
// answered but no media player is connected.
func (c *Client) Poll(ctx context.Context) (snap core.PlaybackSnapshot, found bool, err error) {
	tree, err := c.QueryManagedObjects(ctx)
	if err != nil {
		return core.PlaybackSnapshot{}, false, err
	}

	snap, found, decodeErr := Decode(tree)
	if decodeErr != nil && c.logger != nil {
		c.logger.Warn("bluetooth: skipped player object", "error", decodeErr)
	}
	return snap, found, nil
}

// Close releases the bus connection, if open.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}
