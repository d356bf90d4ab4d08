/*
 * writer.go, part of cmview.
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
	"bytes"
	"context"
	"strings"
)

// ServerWriter is an io.Writer that sends every complete line written to it
// as one command through a Client. Incomplete lines are kept until the
// newline arrives or Flush is called. The first error is sticky.
type ServerWriter struct {
	ctx    context.Context
	client Client
	buf    bytes.Buffer
	err    error
}

// NewServerWriter returns a writer sending through c. ctx is used for every
// command sent.
func NewServerWriter(ctx context.Context, c Client) *ServerWriter {
	return &ServerWriter{ctx: ctx, client: c}
}

func (W *ServerWriter) Write(p []byte) (int, error) {
	if W.err != nil {
		return 0, W.err
	}
	W.buf.Write(p)
	for {
		i := bytes.IndexByte(W.buf.Bytes(), '\n')
		if i < 0 {
			break
		}
		line := string(W.buf.Next(i + 1))
		if err := W.send(line); err != nil {
			return len(p), err
		}
	}
	return len(p), nil
}

func (W *ServerWriter) send(line string) error {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return nil
	}
	if err := W.client.Do(W.ctx, line); err != nil {
		W.err = errDecorate(err, "ServerWriter.Write")
		return W.err
	}
	return nil
}

// Flush sends whatever is left in the buffer as a last command.
func (W *ServerWriter) Flush() error {
	if W.err != nil {
		return W.err
	}
	if W.buf.Len() == 0 {
		return nil
	}
	line := W.buf.String()
	W.buf.Reset()
	return W.send(line)
}

// Err returns the first error found, if any.
func (W *ServerWriter) Err() error {
	return W.err
}
