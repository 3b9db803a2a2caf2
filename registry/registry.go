package registry

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler executes a registered tool with already-parsed arguments.
type Handler func(ctx context.Context, args map[string]any) (any, error)

// ServerInfo describes this MCP server for the initialize response.
type ServerInfo struct {
	Name    string
	Version string
}

type entry struct {
	definition mcp.Tool
	handler    Handler
}

// Registry is a table of agent tools exposed over MCP.
type Registry struct {
	mu    sync.RWMutex
	info  ServerInfo
	tools map[string]entry
	order []string
}

// New creates an empty Registry.
func New(info ServerInfo) *Registry {
	return &Registry{
		info:  info,
		tools: make(map[string]entry),
	}
}

// Register adds a tool with its MCP definition and handler.
func (r *Registry) Register(def mcp.Tool, handler Handler) error {
	if strings.TrimSpace(def.Name) == "" {
		return fmt.Errorf("%w: tool name is required", ErrInvalidRequest)
	}
	if handler == nil {
		return fmt.Errorf("%w: tool handler is required", ErrInvalidRequest)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[def.Name]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, def.Name)
	}
	r.tools[def.Name] = entry{definition: def, handler: handler}
	r.order = append(r.order, def.Name)
	return nil
}

// Tools returns all registered tool definitions in registration order.
func (r *Registry) Tools() []mcp.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]mcp.Tool, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].definition)
	}
	return defs
}

// Execute runs a tool by name with the given arguments.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (any, error) {
	r.mu.RLock()
	e, ok := r.tools[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}

	result, err := e.handler(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutionFailed, err)
	}
	return result, nil
}
