// Package transport carries encoded DNS messages over UDP. It owns the
// socket lifecycle, timeouts, and server selection; the wire codec it
// holds is the only component that touches message bytes.
package transport

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/haukened/dnsq/internal/dns/domain"
	"github.com/haukened/dnsq/internal/dns/gateways/wire"
)

// Error message constants for consistent error handling.
const (
	errNoServersProvided = "no resolver servers provided"
	errCodecRequired     = "DNS codec is required"
	errServerFailed      = "server %s: %w"
	errAllServersFailed  = "all %d servers failed"
	errExchangeTimeout   = "exchange timeout after %v"
	errFailedToConnect   = "failed to connect: %w"
	errEncodeFailed      = "encode failed: %w"
	errWriteFailed       = "write failed: %w"
	errReadFailed        = "read failed: %w"
)

// maxDatagramSize is the classic DNS-over-UDP payload limit.
const maxDatagramSize = 512

// DialFunc establishes a network connection. Injected so tests can swap
// the real dialer for an in-memory pipe.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// Client sends encoded DNS queries to one or more resolver endpoints
// over UDP and returns the decoded responses. Retry policy is limited to
// trying the configured servers; nothing below the codec is retried.
type Client struct {
	servers  []string
	timeout  time.Duration
	codec    wire.Codec
	parallel bool
	dial     DialFunc
}

// Options configures a Client.
type Options struct {
	// required parameters
	Servers  []string
	Timeout  time.Duration
	Parallel bool
	// injectable for testing
	Codec wire.Codec
	Dial  DialFunc
}

// NewClient creates a resolver client. The server list and codec are
// required; the timeout defaults to 5 seconds and the dialer to net.Dialer.
func NewClient(opts Options) (*Client, error) {
	if len(opts.Servers) == 0 {
		return nil, fmt.Errorf(errNoServersProvided)
	}
	if opts.Codec == nil {
		return nil, fmt.Errorf(errCodecRequired)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.Dial == nil {
		opts.Dial = (&net.Dialer{}).DialContext
	}
	return &Client{
		servers:  opts.Servers,
		timeout:  opts.Timeout,
		codec:    opts.Codec,
		parallel: opts.Parallel,
		dial:     opts.Dial,
	}, nil
}

// ensureDeadline adds the client's default timeout when the context
// carries no deadline of its own.
func (c *Client) ensureDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); !ok {
		return context.WithTimeout(ctx, c.timeout)
	}
	return ctx, nil
}

// Exchange sends the query message and returns the decoded response.
// Servers are tried serially in order, or raced when the client was
// built with Parallel set.
func (c *Client) Exchange(ctx context.Context, query *domain.Message) (*domain.Message, error) {
	ctx, cancel := c.ensureDeadline(ctx)
	if cancel != nil {
		defer cancel()
	}
	if c.parallel {
		return c.exchangeParallel(ctx, query)
	}
	return c.exchangeSerial(ctx, query)
}

// exchangeSerial tries each server in order until one responds.
func (c *Client) exchangeSerial(ctx context.Context, query *domain.Message) (*domain.Message, error) {
	var lastErr error
	for _, server := range c.servers {
		resp, err := c.exchangeServer(ctx, server, query)
		if err == nil {
			return resp, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf(errAllServersFailed+": %w", len(c.servers), lastErr)
}

// exchangeParallel races all servers and returns the first success.
func (c *Client) exchangeParallel(ctx context.Context, query *domain.Message) (*domain.Message, error) {
	responseChan := make(chan *domain.Message, 1)
	errorChan := make(chan error, len(c.servers))

	for _, server := range c.servers {
		go func(srv string) {
			resp, err := c.exchangeServer(ctx, srv, query)
			if err != nil {
				errorChan <- fmt.Errorf(errServerFailed, srv, err)
				return
			}
			select {
			case responseChan <- resp:
			default:
				// another server already won
			}
		}(server)
	}

	var errs []error
	for i := 0; i < len(c.servers); i++ {
		select {
		case resp := <-responseChan:
			return resp, nil
		case err := <-errorChan:
			errs = append(errs, err)
		case <-ctx.Done():
			return nil, fmt.Errorf(errExchangeTimeout, c.timeout)
		}
	}
	return nil, fmt.Errorf(errAllServersFailed+": %v", len(c.servers), errs)
}

// exchangeServer performs one encode-send-receive-decode round trip
// against a single server with context cancellation support.
func (c *Client) exchangeServer(ctx context.Context, server string, query *domain.Message) (*domain.Message, error) {
	conn, err := c.dial(ctx, "udp", server)
	if err != nil {
		return nil, fmt.Errorf(errFailedToConnect, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	queryBytes, err := c.codec.EncodeMessage(query)
	if err != nil {
		return nil, fmt.Errorf(errEncodeFailed, err)
	}

	type result struct {
		response *domain.Message
		err      error
	}
	resultChan := make(chan result, 1)

	go func() {
		if _, err := conn.Write(queryBytes); err != nil {
			resultChan <- result{err: fmt.Errorf(errWriteFailed, err)}
			return
		}

		buffer := make([]byte, maxDatagramSize)
		n, err := conn.Read(buffer)
		if err != nil {
			resultChan <- result{err: fmt.Errorf(errReadFailed, err)}
			return
		}

		response, err := c.codec.DecodeMessage(buffer[:n])
		if err != nil {
			resultChan <- result{err: err}
			return
		}
		if response.Header.ID != query.Header.ID {
			resultChan <- result{err: fmt.Errorf("transaction ID mismatch: sent %d, got %d", query.Header.ID, response.Header.ID)}
			return
		}
		resultChan <- result{response: response}
	}()

	select {
	case res := <-resultChan:
		return res.response, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
