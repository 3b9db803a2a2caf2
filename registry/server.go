package registry

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

func parseErrorResponse(err error) MCPResponse {
	return MCPResponse{
		JSONRPC: "2.0",
		Error:   &MCPError{Code: ErrCodeParseError, Message: err.Error()},
	}
}

// ServeStdio serves the registry over a newline-delimited JSON-RPC stream,
// one request per line, one response per line. Hosts pass os.Stdin and
// os.Stdout; tests pass buffers. Blocks until in is exhausted or ctx is
// cancelled.
func ServeStdio(ctx context.Context, r *Registry, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	encoder := json.NewEncoder(out)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		var req MCPRequest
		if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
			if err := encoder.Encode(parseErrorResponse(err)); err != nil {
				return fmt.Errorf("failed to write parse error response: %w", err)
			}
			continue
		}

		if err := encoder.Encode(r.HandleRequest(ctx, req)); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read request stream: %w", err)
	}

	return nil
}

// ServeHTTP returns an http.Handler answering JSON-RPC requests POSTed as
// request bodies.
func ServeHTTP(r *Registry) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		var mcpReq MCPRequest
		if err := json.NewDecoder(req.Body).Decode(&mcpReq); err != nil {
			_ = json.NewEncoder(w).Encode(parseErrorResponse(err))
			return
		}

		_ = json.NewEncoder(w).Encode(r.HandleRequest(req.Context(), mcpReq))
	})
}

// ServeSSE returns an http.Handler answering each POSTed JSON-RPC request
// with a Server-Sent Events stream carrying one message event.
func ServeSSE(r *Registry) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "SSE not supported", http.StatusInternalServerError)
			return
		}

		var mcpReq MCPRequest
		if err := json.NewDecoder(req.Body).Decode(&mcpReq); err != nil {
			writeSSEEvent(w, flusher, "error", parseErrorResponse(err))
			return
		}

		writeSSEEvent(w, flusher, "message", r.HandleRequest(req.Context(), mcpReq))
	})
}

func writeSSEEvent(w http.ResponseWriter, f http.Flusher, event string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return
	}
	f.Flush()
}
