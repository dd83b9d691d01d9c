package bluetooth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tessro/unyo/internal/core"
	uerrors "github.com/tessro/unyo/internal/errors"
	"github.com/tessro/unyo/internal/logging"
)

type fakeConn struct {
	tree   ObjectTree
	err    error
	closed bool
	calls  int
}

func (f *fakeConn) GetManagedObjects(ctx context.Context, service string) (ObjectTree, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.tree, nil
}

func (f *fakeConn) Close() error {
	f.closed = true
	return nil
}

func TestClientPoll(t *testing.T) {
	conn := &fakeConn{tree: playerTree(Properties{
		"Track":  track("Song", "Band", 200000),
		"Status": v("playing"),
	}, nil)}
	dials := 0
	c := NewClient("org.bluez", func(context.Context) (Conn, error) {
		dials++
		return conn, nil
	}, logging.Discard())

	for i := 0; i < 3; i++ {
		snap, found, err := c.Poll(context.Background())
		if err != nil {
			t.Fatalf("Poll() error = %v", err)
		}
		if !found || snap.Title != "Song" || snap.State != core.Playing {
			t.Fatalf("Poll() = %+v, %v", snap, found)
		}
	}
	if dials != 1 {
		t.Errorf("dialed %d times, want 1 (connection reused)", dials)
	}
}

func TestClientPollNoPlayer(t *testing.T) {
	conn := &fakeConn{tree: ObjectTree{}}
	c := NewClient("org.bluez", func(context.Context) (Conn, error) { return conn, nil }, logging.Discard())

	_, found, err := c.Poll(context.Background())
	if err != nil {
		t.Fatalf("Poll() error = %v", err)
	}
	if found {
		t.Error("Poll() found = true on empty tree")
	}
}

func TestClientDialFailure(t *testing.T) {
	c := NewClient("org.bluez", func(context.Context) (Conn, error) {
		return nil, errors.New("no such file or directory")
	}, logging.Discard())

	_, _, err := c.Poll(context.Background())
	if !errors.Is(err, uerrors.ErrIPC) {
		t.Errorf("Poll() error = %v, want ErrIPC", err)
	}
}

func TestClientReconnectsAfterCallFailure(t *testing.T) {
	bad := &fakeConn{err: errors.New("connection reset")}
	good := &fakeConn{tree: ObjectTree{}}
	conns := []*fakeConn{bad, good}
	dials := 0

	c := NewClient("org.bluez", func(context.Context) (Conn, error) {
		conn := conns[dials]
		dials++
		return conn, nil
	}, logging.Discard())

	if _, _, err := c.Poll(context.Background()); !errors.Is(err, uerrors.ErrIPC) {
		t.Fatalf("first Poll() error = %v, want ErrIPC", err)
	}
	if !bad.closed {
		t.Error("failed connection was not closed")
	}

	if _, _, err := c.Poll(context.Background()); err != nil {
		t.Fatalf("second Poll() error = %v", err)
	}
	if dials != 2 {
		t.Errorf("dialed %d times, want 2", dials)
	}
}

func TestClientTimeout(t *testing.T) {
	conn := &fakeConn{err: context.DeadlineExceeded}
	c := NewClient("org.bluez", func(context.Context) (Conn, error) { return conn, nil }, logging.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := c.Poll(ctx)
	if !errors.Is(err, uerrors.ErrTimeout) {
		t.Errorf("Poll() error = %v, want ErrTimeout", err)
	}
}

func TestClientDialHonorsDeadline(t *testing.T) {
	c := NewClient("org.bluez", func(ctx context.Context) (Conn, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}, logging.Discard())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := c.QueryManagedObjects(ctx)
	if !errors.Is(err, uerrors.ErrTimeout) {
		t.Errorf("QueryManagedObjects() error = %v, want ErrTimeout", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("QueryManagedObjects() returned after %v, want near the 50ms deadline", elapsed)
	}
}

func TestClientDialStuckHandshake(t *testing.T) {
	release := make(chan struct{})
	late := &fakeConn{tree: ObjectTree{}}
	closed := make(chan struct{})
	c := NewClient("org.bluez", func(context.Context) (Conn, error) {
		<-release
		return &closeNotifier{fakeConn: late, closed: closed}, nil
	}, logging.Discard())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := c.QueryManagedObjects(ctx)
		done <- err
	}()

	select {
	case err := <-done:
		if !errors.Is(err, uerrors.ErrTimeout) {
			t.Errorf("QueryManagedObjects() error = %v, want ErrTimeout", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("QueryManagedObjects() blocked past its deadline")
	}

	closeDone := make(chan struct{})
	go func() {
		_ = c.Close()
		close(closeDone)
	}()
	select {
	case <-closeDone:
	case <-time.After(time.Second):
		t.Fatal("Close() blocked behind a stuck dial")
	}

	close(release)
	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Error("connection that finished after the deadline was not closed")
	}
}

type closeNotifier struct {
	*fakeConn
	closed chan struct{}
}

func (c *closeNotifier) Close() error {
	close(c.closed)
	return nil
}
