package diagnostics

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// Checker probes one endpoint and returns a short description of what it saw.
type Checker interface {
	Check(ctx context.Context, target string) (string, error)
}

type CheckerFunc func(ctx context.Context, target string) (string, error)

func (f CheckerFunc) Check(ctx context.Context, target string) (string, error) {
	return f(ctx, target)
}

// TCPChecker succeeds when a TCP connection to host:port can be opened.
type TCPChecker struct{}

func (TCPChecker) Check(ctx context.Context, target string) (string, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", target)
	if err != nil {
		return "", err
	}
	conn.Close()
	return fmt.Sprintf("connected to %s", target), nil
}

// HTTPChecker succeeds when the URL answers with a non-5xx status.
type HTTPChecker struct {
	Client *http.Client
}

func (c HTTPChecker) Check(ctx context.Context, target string) (string, error) {
	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode >= http.StatusInternalServerError {
		return "", fmt.Errorf("%s returned %s", target, resp.Status)
	}
	return fmt.Sprintf("%s returned %s", target, resp.Status), nil
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// ZooKeeperChecker sends the "ruok" four letter word. Servers that do not
// whitelist ruok still count as reachable.
type ZooKeeperChecker struct{}

func (ZooKeeperChecker) Check(ctx context.Context, target string) (string, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", target)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	} else {
		_ = conn.SetDeadline(time.Now().Add(5 * time.Second))
	}
	if _, err := conn.Write([]byte("ruok")); err != nil {
		return "", err
	}
	reply, _ := bufio.NewReader(conn).ReadString('\n')
	if strings.HasPrefix(reply, "imok") {
		return fmt.Sprintf("%s is ok", target), nil
	}
	return fmt.Sprintf("connected to %s", target), nil
}
