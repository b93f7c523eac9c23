// Package mcp exposes the solver as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/helixml/rangemap/application/service"
	"github.com/helixml/rangemap/domain/almanac"
	"github.com/helixml/rangemap/infrastructure/almanacfile"
)

// Solver is what the tools need from service.Solver.
type Solver interface {
	Solve(ctx context.Context, a almanac.Almanac, mode almanac.Mode) (service.Result, error)
	Trace(a almanac.Almanac, seed uint64) []service.Step
}

// Server wraps the MCP server with the rangemap tools.
type Server struct {
	mcpServer *server.MCPServer
	solver    Solver
	version   string
	logger    *slog.Logger
}

// NewServer creates an MCP server backed by solver.
func NewServer(solver Solver, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		solver:  solver,
		version: version,
		logger:  logger,
	}

	mcpServer := server.NewMCPServer(
		"rangemap",
		version,
		server.WithToolCapabilities(true),
	)
	s.registerTools(mcpServer)

	s.mcpServer = mcpServer
	return s
}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	lowest := mcp.NewTool("lowest_location",
		mcp.WithDescription("Find the lowest final value reachable from an almanac's seeds. "+
			"In point mode every seed is one value; in range mode the seeds are (start, count) pairs."),
		mcp.WithString("almanac",
			mcp.Required(),
			mcp.Description("The almanac document: a seeds line followed by <from>-to-<to> map blocks of 'dest source count' lines"),
		),
		mcp.WithString("mode",
			mcp.Description("How to read the seeds (default: point)"),
			mcp.Enum(string(almanac.ModePoint), string(almanac.ModeRange)),
		),
		mcp.WithString("format",
			mcp.Description("Document format (default: text)"),
			mcp.Enum(string(almanacfile.FormatText), string(almanacfile.FormatYAML)),
		),
	)
	mcpServer.AddTool(lowest, s.handleLowestLocation)

	mapValue := mcp.NewTool("map_value",
		mcp.WithDescription("Map one value through every stage of an almanac and report the value after each stage"),
		mcp.WithString("almanac",
			mcp.Required(),
			mcp.Description("The almanac document"),
		),
		mcp.WithNumber("value",
			mcp.Required(),
			mcp.Description("The starting value. Values above 2^53 may be passed as a decimal string."),
		),
		mcp.WithString("format",
			mcp.Description("Document format (default: text)"),
			mcp.Enum(string(almanacfile.FormatText), string(almanacfile.FormatYAML)),
		),
	)
	mcpServer.AddTool(mapValue, s.handleMapValue)

	version := mcp.NewTool("get_version",
		mcp.WithDescription("Get the rangemap server version"),
	)
	mcpServer.AddTool(version, s.handleGetVersion)
}

func (s *Server) handleLowestLocation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a, errResult := s.almanacArg(request)
	if errResult != nil {
		return errResult, nil
	}

	mode, err := almanac.ParseMode(request.GetString("mode", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.solver.Solve(ctx, a, mode)
	if err != nil {
		s.logger.WarnContext(ctx, "lowest_location failed", slog.Any("error", err))
		return mcp.NewToolResultError(fmt.Sprintf("solve failed: %v", err)), nil
	}

	return jsonResult(struct {
		Mode   string `json:"mode"`
		Lowest uint64 `json:"lowest"`
		Cached bool   `json:"cached"`
	}{
		Mode:   mode.String(),
		Lowest: result.Lowest(),
		Cached: result.Cached(),
	})
}

func (s *Server) handleMapValue(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a, errResult := s.almanacArg(request)
	if errResult != nil {
		return errResult, nil
	}

	value, err := uintArg(request.GetArguments()["value"])
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("value: %v", err)), nil
	}

	type step struct {
		Stage  string `json:"stage"`
		Input  uint64 `json:"input"`
		Output uint64 `json:"output"`
	}

	steps := s.solver.Trace(a, value)
	out := struct {
		Value  uint64 `json:"value"`
		Result uint64 `json:"result"`
		Steps  []step `json:"steps"`
	}{Value: value, Result: value, Steps: make([]step, len(steps))}
	for i, st := range steps {
		out.Steps[i] = step{Stage: st.Stage, Input: st.Input, Output: st.Output}
		out.Result = st.Output
	}
	return jsonResult(out)
}

func (s *Server) handleGetVersion(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.version), nil
}

// almanacArg parses the almanac and format arguments. A non-nil result is
// the error to hand back to the client.
func (s *Server) almanacArg(request mcp.CallToolRequest) (almanac.Almanac, *mcp.CallToolResult) {
	text, err := request.RequireString("almanac")
	if err != nil || strings.TrimSpace(text) == "" {
		return almanac.Almanac{}, mcp.NewToolResultError("almanac is required")
	}
	format, err := almanacfile.ParseFormat(request.GetString("format", ""))
	if err != nil {
		return almanac.Almanac{}, mcp.NewToolResultError(err.Error())
	}
	a, err := almanacfile.Parse([]byte(text), format)
	if err != nil {
		return almanac.Almanac{}, mcp.NewToolResultError(fmt.Sprintf("parse almanac: %v", err))
	}
	return a, nil
}

// uintArg accepts a JSON number or a decimal string.
func uintArg(v any) (uint64, error) {
	switch x := v.(type) {
	case nil:
		return 0, errors.New("is required")
	case float64:
		if x < 0 || x != math.Trunc(x) || x >= math.MaxUint64 {
			return 0, fmt.Errorf("%v is not a non-negative integer", x)
		}
		return uint64(x), nil
	case json.Number:
		return strconv.ParseUint(x.String(), 10, 64)
	case string:
		return strconv.ParseUint(strings.TrimSpace(x), 10, 64)
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio runs the MCP server on stdin and stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
