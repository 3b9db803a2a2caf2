// Package registry hosts agent tools behind an MCP JSON-RPC surface.
//
// Tools are registered once at startup with their MCP definition and a
// handler, then served over stdio, plain HTTP, or SSE. The registry owns no
// tool state beyond the name-to-handler table; tool collaborators are wired
// by the caller before registration.
//
//	reg := registry.New(registry.ServerInfo{Name: "detectorsearch", Version: "1.0.0"})
//	_ = reg.Register(tool.Definition(), tool.Handle)
//	_ = registry.ServeStdio(ctx, reg, os.Stdin, os.Stdout)
package registry
