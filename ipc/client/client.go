// Package client implements the single-threaded, blocking IPC client
// described by the overlay protocol: connect-or-spawn startup, a
// ClientHello/StartSession handshake, and a dispatch loop that keeps a
// local object-table mirror of the daemon's prototypes, environments,
// and mascots.
package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/wired-desktop/shimejictl/ipc/objects"
	"github.com/wired-desktop/shimejictl/ipc/proto"
)

const maxFrameSize = 1 << 16

// Handler is invoked with a decoded message and the frame's header;
// registered per wire type via On.
type Handler func(h proto.Header, msg any)

// Client owns one SOCK_SEQPACKET connection to the overlay daemon plus
// its local mirror of the daemon's object table.
type Client struct {
	conn        *net.UnixConn
	objects     *objects.Table
	initialized bool
	handlers    map[byte]Handler

	activeSelections []uint32
	pendingPrototypes map[uint32]*objects.Prototype
}

// Options configures Dial.
type Options struct {
	SocketPath string
	// Start spawns the overlay daemon over a socketpair if connecting to
	// SocketPath fails. Erroring instead if the daemon is already
	// running and Start is requested is the caller's responsibility
	// (Dial cannot itself tell "already running" from "not running yet").
	Start       bool
	DaemonPath  string
	DaemonArgs  []string
}

// Dial connects to the daemon at opts.SocketPath, spawning it over a
// freshly created socketpair when the connection fails and opts.Start
// is set.
func Dial(opts Options) (*Client, error) {
	conn, err := dial(opts.SocketPath)
	if err == nil {
		return newClient(conn), nil
	}
	if !opts.Start {
		return nil, fmt.Errorf("client: connect %s: %w", opts.SocketPath, err)
	}
	conn, err = spawn(opts)
	if err != nil {
		return nil, err
	}
	return newClient(conn), nil
}

func newClient(conn *net.UnixConn) *Client {
	return &Client{
		conn:              conn,
		objects:           objects.New(),
		handlers:          make(map[byte]Handler),
		pendingPrototypes: make(map[uint32]*objects.Prototype),
	}
}

func dial(path string) (*net.UnixConn, error) {
	addr := &net.UnixAddr{Name: path, Net: "unixpacket"}
	conn, err := net.DialUnix("unixpacket", nil, addr)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// spawn creates a socketpair, hands one end to a freshly exec'd daemon
// process via ExtraFiles, and keeps the other end as the client
// connection. It waits up to one second for the child to exit
// immediately (signaling startup failure) before proceeding.
func spawn(opts Options) (*net.UnixConn, error) {
	fds, err := syscall.Socketpair(syscall.AF_UNIX, syscall.SOCK_SEQPACKET, 0)
	if err != nil {
		return nil, fmt.Errorf("client: socketpair: %w", err)
	}
	clientFile := os.NewFile(uintptr(fds[0]), "shimejictl-client")
	daemonFile := os.NewFile(uintptr(fds[1]), "shimejictl-daemon")
	defer daemonFile.Close()

	cmd := exec.Command(opts.DaemonPath, opts.DaemonArgs...)
	cmd.ExtraFiles = []*os.File{daemonFile}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		clientFile.Close()
		return nil, fmt.Errorf("client: spawn %s: %w", opts.DaemonPath, err)
	}

	exited := make(chan error, 1)
	go func() { exited <- cmd.Wait() }()

	select {
	case err := <-exited:
		clientFile.Close()
		return nil, fmt.Errorf("client: overlay exited immediately: %w", err)
	case <-time.After(1 * time.Second):
	}

	conn, err := net.FileConn(clientFile)
	clientFile.Close()
	if err != nil {
		return nil, fmt.Errorf("client: adopting spawned socket: %w", err)
	}
	uc, ok := conn.(*net.UnixConn)
	if !ok {
		conn.Close()
		return nil, errors.New("client: spawned socket is not a unix connection")
	}
	return uc, nil
}

// On registers handler for wire type typ, replacing any previous
// registration.
func (c *Client) On(typ byte, handler Handler) { c.handlers[typ] = handler }

// Objects returns the client's local object-table mirror.
func (c *Client) Objects() *objects.Table { return c.objects }

// Handshake sends ClientHello and dispatches incoming packets until
// StartSession arrives.
func (c *Client) Handshake(version uint64) error {
	if err := c.Send(proto.ClientHello{Version: version}, 0); err != nil {
		return fmt.Errorf("client: sending ClientHello: %w", err)
	}
	return c.DispatchEvents(context.Background(), func(h proto.Header, msg any) bool {
		_, ok := msg.(proto.StartSession)
		return ok
	})
}

// Send encodes msg targeting objectID and writes it as one SEQPACKET
// datagram, with any file descriptors attached via oob ancillary data.
func (c *Client) Send(msg proto.Message, objectID uint32, fds ...int) error {
	frame, err := msg.Encode(objectID)
	if err != nil {
		return err
	}
	var oob []byte
	if len(fds) > 0 {
		oob = syscall.UnixRights(fds...)
	}
	_, _, err = c.conn.WriteMsgUnix(frame, oob, nil)
	return err
}

// recvFrame reads exactly one frame plus any ancillary file descriptors
// from the socket.
func (c *Client) recvFrame() ([]byte, []int, error) {
	buf := make([]byte, maxFrameSize)
	oob := make([]byte, syscall.CmsgSpace(16*4))
	n, oobn, _, _, err := c.conn.ReadMsgUnix(buf, oob)
	if err != nil {
		return nil, nil, err
	}
	var fds []int
	if oobn > 0 {
		cmsgs, err := syscall.ParseSocketControlMessage(oob[:oobn])
		if err == nil {
			for _, cmsg := range cmsgs {
				if got, err := syscall.ParseUnixRights(&cmsg); err == nil {
					fds = append(fds, got...)
				}
			}
		}
	}
	return buf[:n], fds, nil
}

// until reports whether the dispatch loop should stop after processing
// a message. A nil until loops forever (the daemon's "foreground" mode).
type until = func(h proto.Header, msg any) bool

// DispatchEvents receives and routes frames until stop returns true for
// some message, or ctx is found done before a receive. ctx is checked
// only between frames; a receive that is already blocked is not
// interrupted by it. It calls the per-type handler
// registered via On for every decoded message, including the one that
// satisfies stop.
func (c *Client) DispatchEvents(ctx context.Context, stop until) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		frame, fds, err := c.recvFrame()
		if err != nil {
			return fmt.Errorf("client: receiving frame: %w", err)
		}

		h, msg, err := proto.Decode(frame)
		if errors.Is(err, proto.ErrUnknownType) {
			continue
		}
		if err != nil {
			return fmt.Errorf("client: decoding frame: %w", err)
		}

		c.applyToObjectTable(h, msg, fds)

		if handler, ok := c.handlers[h.Type]; ok {
			handler(h, msg)
		}

		if stop != nil && stop(h, msg) {
			return nil
		}
	}
}

// GetConfigKey sends a config-get request and waits for the matching
// ConfigKey reply, giving up once 5 seconds have passed. The limit is
// checked between received frames, so a receive that is already blocked
// still waits for its frame.
func (c *Client) GetConfigKey(key string) (string, error) {
	if err := c.Send(proto.GetConfigKey{Key: key}, 0); err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var value string
	var found bool
	err := c.DispatchEvents(ctx, func(h proto.Header, msg any) bool {
		if ck, ok := msg.(proto.ConfigKey); ok && ck.Key == key {
			value, found = ck.Value, true
			return true
		}
		return false
	})
	if err != nil {
		return "", err
	}
	if !found {
		return "", fmt.Errorf("client: config key %q: no reply", key)
	}
	return value, nil
}

// SetConfigKey sends a config-set request and waits for acknowledgement
// via the matching ConfigKey echo, giving up once 5 seconds have passed;
// as in GetConfigKey, the limit is checked between received frames.
func (c *Client) SetConfigKey(key, value string) error {
	if err := c.Send(proto.SetConfigKey{Key: key, Value: value}, 0); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return c.DispatchEvents(ctx, func(h proto.Header, msg any) bool {
		ck, ok := msg.(proto.ConfigKey)
		return ok && ck.Key == key
	})
}

// Close cancels any active selection then closes the connection, per
// the SIGINT teardown sequence: a live selection is cancelled before
// the socket goes away.
func (c *Client) Close() error {
	for _, id := range c.activeSelections {
		c.Send(proto.SelectionCancel{}, id)
		c.objects.Remove(id)
	}
	c.activeSelections = nil
	return c.conn.Close()
}

// BeginSelection allocates a Selection object across envIDs and sends
// the outbound Select request.
func (c *Client) BeginSelection(envIDs []uint32) (uint32, error) {
	id := c.objects.AllocID(objects.KindSelection)
	c.objects.Put(&objects.Selection{ID: id, Environments: envIDs})
	c.activeSelections = append(c.activeSelections, id)
	if err := c.Send(proto.Select{NewID: id, EnvironmentIDs: envIDs}, 0); err != nil {
		return 0, err
	}
	return id, nil
}

func (c *Client) endSelection(id uint32) {
	c.objects.Remove(id)
	for i, sel := range c.activeSelections {
		if sel == id {
			c.activeSelections = append(c.activeSelections[:i], c.activeSelections[i+1:]...)
			return
		}
	}
}
