/*
 * client.go, part of cmview.
 *
 * Copyright 2026 The cmview authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package pymol

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/rpc"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/kolo/xmlrpc"
)

// ErrClosed is returned when a command is sent through a closed client.
var ErrClosed = errors.New("client closed")

// Client sends PyMol commands, one command line per call.
type Client interface {
	Do(ctx context.Context, cmd string) error
	Close() error
}

// Dial returns a Client for rawurl:
//
//	http://host:port  PyMol's XML-RPC server (pymol -R)
//	tcp://host:port   newline-terminated commands on a raw socket
//	file:///path      commands appended to a script file
//	-                 commands written to the standard output
func Dial(ctx context.Context, rawurl string) (Client, error) {
	if rawurl == "-" {
		return &scriptClient{w: os.Stdout, name: "-"}, nil
	}
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, newError(ErrScheme, rawurl, "", err, "Dial")
	}
	switch u.Scheme {
	case "http", "https":
		c, err := NewRPCClient(rawurl, nil)
		if err != nil {
			return nil, errDecorate(err, "Dial")
		}
		return c, nil
	case "tcp":
		var d net.Dialer
		conn, err := d.DialContext(ctx, "tcp", u.Host)
		if err != nil {
			return nil, newError(ErrScheme, rawurl, "can't connect", err, "Dial")
		}
		return &lineClient{conn: conn, name: rawurl}, nil
	case "file":
		path := u.Path
		if path == "" {
			path = u.Opaque
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, newError(ErrScheme, rawurl, "can't open script", err, "Dial")
		}
		return &scriptClient{w: f, c: f, name: rawurl}, nil
	}
	return nil, newError(ErrScheme, rawurl, fmt.Sprintf("scheme %q", u.Scheme), nil, "Dial")
}

// RPCClient calls the do method of PyMol's XML-RPC server once per command.
type RPCClient struct {
	url    string
	rpc    *xmlrpc.Client
	closed bool
	mu     sync.Mutex
}

// NewRPCClient returns a client for the XML-RPC server at serverURL. A nil
// transport means http.DefaultTransport.
func NewRPCClient(serverURL string, transport http.RoundTripper) (*RPCClient, error) {
	c, err := xmlrpc.NewClient(serverURL, transport)
	if err != nil {
		return nil, newError(ErrScheme, serverURL, "", err, "NewRPCClient")
	}
	return &RPCClient{url: serverURL, rpc: c}, nil
}

// Do sends cmd to the server. Faults reported by the server, and transport
// failures, are returned as errors that match ErrFault.
func (R *RPCClient) Do(ctx context.Context, cmd string) error {
	R.mu.Lock()
	closed := R.closed
	R.mu.Unlock()
	if closed {
		return newError(ErrClosed, R.url, "", nil, "Do")
	}
	if err := ctx.Err(); err != nil {
		return newError(ErrFault, R.url, "", err, "Do")
	}
	call := R.rpc.Go("do", cmd, nil, make(chan *rpc.Call, 1))
	select {
	case <-ctx.Done():
		return newError(ErrFault, R.url, "", ctx.Err(), "Do")
	case <-call.Done:
	}
	if call.Error != nil {
		return newError(ErrFault, R.url, "", call.Error, "Do")
	}
	return nil
}

// Close marks the client as closed. Idle connections are released.
func (R *RPCClient) Close() error {
	R.mu.Lock()
	defer R.mu.Unlock()
	if R.closed {
		return nil
	}
	R.closed = true
	return R.rpc.Close()
}

type lineClient struct {
	mu   sync.Mutex
	conn net.Conn
	name string
}

func (L *lineClient) Do(ctx context.Context, cmd string) error {
	L.mu.Lock()
	defer L.mu.Unlock()
	if L.conn == nil {
		return newError(ErrClosed, L.name, "", nil, "Do")
	}
	if dl, ok := ctx.Deadline(); ok {
		L.conn.SetWriteDeadline(dl)
	} else {
		L.conn.SetWriteDeadline(time.Time{})
	}
	if err := ctx.Err(); err != nil {
		return newError(ErrFault, L.name, "", err, "Do")
	}
	if _, err := io.WriteString(L.conn, strings.TrimRight(cmd, "\n")+"\n"); err != nil {
		return newError(ErrFault, L.name, "sending command", err, "Do")
	}
	return nil
}

func (L *lineClient) Close() error {
	L.mu.Lock()
	defer L.mu.Unlock()
	if L.conn == nil {
		return nil
	}
	err := L.conn.Close()
	L.conn = nil
	return err
}

// scriptClient writes the commands instead of sending them.
type scriptClient struct {
	mu   sync.Mutex
	w    io.Writer
	c    io.Closer //nil for stdout
	name string
	done bool
}

func (S *scriptClient) Do(ctx context.Context, cmd string) error {
	S.mu.Lock()
	defer S.mu.Unlock()
	if S.done {
		return newError(ErrClosed, S.name, "", nil, "Do")
	}
	if err := ctx.Err(); err != nil {
		return newError(ErrFault, S.name, "", err, "Do")
	}
	if _, err := io.WriteString(S.w, strings.TrimRight(cmd, "\n")+"\n"); err != nil {
		return newError(ErrFault, S.name, "writing command", err, "Do")
	}
	return nil
}

func (S *scriptClient) Close() error {
	S.mu.Lock()
	defer S.mu.Unlock()
	if S.done {
		return nil
	}
	S.done = true
	if S.c != nil {
		return S.c.Close()
	}
	return nil
}
