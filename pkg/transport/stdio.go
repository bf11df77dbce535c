package transport

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"

	"github.com/BrunoKrugel/brevo-mcp/pkg/types"
)

const maxStdioMessageSize = 16 << 20

// StdioTransport implements MCP over newline-delimited JSON on a reader/writer pair
type StdioTransport struct {
	in  io.Reader
	out io.Writer
	dispatcher
	writeMu sync.Mutex
}

// NewStdioTransport creates a new stdio transport
func NewStdioTransport(in io.Reader, out io.Writer) *StdioTransport {
	return &StdioTransport{
		dispatcher: dispatcher{handlers: make(map[string]MessageHandler)},
		in:         in,
		out:        out,
	}
}

// Serve reads messages until the input is closed or ctx is done.
// Messages are handled one at a time in arrival order.
func (s *StdioTransport) Serve(ctx context.Context) error {
	lines := make(chan []byte)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanErr <- s.scan(ctx, lines)
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var line []byte
		var ok bool
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok = <-lines:
		}

		if !ok {
			if err := <-scanErr; err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			return ctx.Err()
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if err := s.handleLine(ctx, line); err != nil {
			return err
		}
	}
}

// scan feeds non-blank input lines to lines. A read blocked on idle input is abandoned when ctx is done.
func (s *StdioTransport) scan(ctx context.Context, lines chan<- []byte) error {
	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxStdioMessageSize)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		select {
		case lines <- bytes.Clone(line):
		case <-ctx.Done():
			return nil
		}
	}

	return scanner.Err()
}

func (s *StdioTransport) handleLine(ctx context.Context, line []byte) error {
	var msg types.MCPMessage
	if err := sonic.Unmarshal(line, &msg); err != nil {
		log.WithError(err).Warn("[STDIO] invalid message")
		return s.write(&types.MCPMessage{
			Jsonrpc: "2.0",
			ID:      types.RawMessage("null"),
			Error:   types.NewError(types.CodeParseError, "Parse error: %v", err),
		})
	}

	response := s.processMessage(ctx, &msg)
	if response == nil {
		return nil
	}

	return s.write(response)
}

// NotifyToolsChanged writes a tools/list_changed notification
func (s *StdioTransport) NotifyToolsChanged() {
	err := s.write(&types.MCPMessage{
		Jsonrpc: "2.0",
		Method:  "notifications/tools/list_changed",
	})
	if err != nil {
		log.WithError(err).Warn("[STDIO] failed to send tools changed notification")
	}
}

func (s *StdioTransport) write(msg *types.MCPMessage) error {
	data, err := sonic.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if _, err := s.out.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}
