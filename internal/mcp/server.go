// Package mcp implements the Model Context Protocol server for daybook.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ajitpratap0/daybook/internal/journal"
	"github.com/ajitpratap0/daybook/internal/models"
	"github.com/ajitpratap0/daybook/internal/validate"
	"github.com/ajitpratap0/daybook/pkg/calendar"
)

// defaultListLimit caps list_entries results when no limit is given.
const defaultListLimit = 50

// Server wraps an MCPServer around one journal.
type Server struct {
	mcp    *mcpserver.MCPServer
	j      *journal.Store
	logger *slog.Logger
}

// NewServer creates a new MCP server. If j is nil every tool call returns an
// error result instead of panicking.
func NewServer(j *journal.Store, version string, logger *slog.Logger) *Server {
	s := &Server{j: j, logger: logger}

	mcpSrv := mcpserver.NewMCPServer(
		"daybook",
		version,
		mcpserver.WithToolCapabilities(true),
	)

	mcpSrv.AddTool(buildAddEntryTool(), s.handleAddEntry)
	mcpSrv.AddTool(buildUpdateEntryTool(), s.handleUpdateEntry)
	mcpSrv.AddTool(buildDeleteEntryTool(), s.handleDeleteEntry)
	mcpSrv.AddTool(buildToggleFavoriteTool(), s.handleToggleFavorite)
	mcpSrv.AddTool(buildGetEntryTool(), s.handleGetEntry)
	mcpSrv.AddTool(buildListEntriesTool(), s.handleListEntries)
	mcpSrv.AddTool(buildEntriesForDateTool(), s.handleEntriesForDate)
	mcpSrv.AddTool(buildStatsTool(), s.handleStats)
	mcpSrv.AddTool(buildListTagsTool(), s.handleListTags)
	mcpSrv.AddTool(buildAddTagTool(), s.handleAddTag)

	s.mcp = mcpSrv
	return s
}

// MCPServer returns the underlying mcp-go MCPServer for use with ServeStdio.
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcp
}

// HandleAddEntry is the exported handler for the "add_entry" tool.
// It is exposed for direct testing without the mcp-go transport layer.
func (s *Server) HandleAddEntry(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleAddEntry(ctx, req)
}

// HandleUpdateEntry is the exported handler for the "update_entry" tool.
func (s *Server) HandleUpdateEntry(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleUpdateEntry(ctx, req)
}

// HandleDeleteEntry is the exported handler for the "delete_entry" tool.
func (s *Server) HandleDeleteEntry(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleDeleteEntry(ctx, req)
}

// HandleToggleFavorite is the exported handler for the "toggle_favorite" tool.
func (s *Server) HandleToggleFavorite(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleToggleFavorite(ctx, req)
}

// HandleGetEntry is the exported handler for the "get_entry" tool.
func (s *Server) HandleGetEntry(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleGetEntry(ctx, req)
}

// HandleListEntries is the exported handler for the "list_entries" tool.
func (s *Server) HandleListEntries(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleListEntries(ctx, req)
}

// HandleEntriesForDate is the exported handler for the "entries_for_date" tool.
func (s *Server) HandleEntriesForDate(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleEntriesForDate(ctx, req)
}

// HandleStats is the exported handler for the "stats" tool.
func (s *Server) HandleStats(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleStats(ctx, req)
}

// HandleListTags is the exported handler for the "list_tags" tool.
func (s *Server) HandleListTags(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleListTags(ctx, req)
}

// HandleAddTag is the exported handler for the "add_tag" tool.
func (s *Server) HandleAddTag(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleAddTag(ctx, req)
}

// --- helpers ---

// toolResultJSON marshals v to JSON and returns it as a tool text result.
func toolResultJSON(v any) (*mcpgo.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("mcp: marshaling result: %w", err)
	}
	return mcpgo.NewToolResultText(string(b)), nil
}

// tagsArg accepts either a JSON array of strings or a comma-separated string.
func tagsArg(req mcpgo.CallToolRequest) ([]string, bool) {
	raw, ok := req.GetArguments()["tags"]
	if !ok || raw == nil {
		return nil, false
	}
	var out []string
	switch v := raw.(type) {
	case string:
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				out = append(out, t)
			}
		}
	case []any:
		for _, item := range v {
			if t, isStr := item.(string); isStr && strings.TrimSpace(t) != "" {
				out = append(out, strings.TrimSpace(t))
			}
		}
	case []string:
		out = append(out, v...)
	}
	return out, true
}

// fieldsArg reads the "fields" object as field name -> text.
func fieldsArg(req mcpgo.CallToolRequest) (map[string]string, bool, error) {
	raw, ok := req.GetArguments()["fields"]
	if !ok || raw == nil {
		return nil, false, nil
	}
	obj, isObj := raw.(map[string]any)
	if !isObj {
		return nil, true, fmt.Errorf("fields must be an object of field name to text")
	}
	out := make(map[string]string, len(obj))
	for k, v := range obj {
		text, isStr := v.(string)
		if !isStr {
			return nil, true, fmt.Errorf("field %q must be a string", k)
		}
		out[k] = text
	}
	return out, true, nil
}

func (s *Server) parseDay(value string) (time.Time, error) {
	return calendar.ParseDay(value, s.j.Location())
}

func (s *Server) today() time.Time {
	return s.j.Now().In(s.j.Location())
}

// --- tool definitions ---

func buildAddEntryTool() mcpgo.Tool {
	return mcpgo.NewTool("add_entry",
		mcpgo.WithDescription("Add a journal entry. In one-per-day journals an existing entry for the same day is replaced."),
		mcpgo.WithObject("fields",
			mcpgo.Required(),
			mcpgo.Description("Text fields keyed by field name, e.g. {\"title\": \"Flying dream\"}"),
		),
		mcpgo.WithString("date",
			mcpgo.Description("Entry date as YYYY-MM-DD (default: today)"),
		),
		mcpgo.WithString("tags",
			mcpgo.Description("Comma-separated tags"),
		),
		mcpgo.WithBoolean("favorite",
			mcpgo.Description("Mark the entry as a favorite"),
		),
	)
}

func buildUpdateEntryTool() mcpgo.Tool {
	return mcpgo.NewTool("update_entry",
		mcpgo.WithDescription("Update an existing entry. Only the given arguments change; given fields are merged, empty text removes a field."),
		mcpgo.WithString("id",
			mcpgo.Required(),
			mcpgo.Description("The ID of the entry to update"),
		),
		mcpgo.WithObject("fields",
			mcpgo.Description("Text fields to set, keyed by field name"),
		),
		mcpgo.WithString("date",
			mcpgo.Description("New entry date as YYYY-MM-DD"),
		),
		mcpgo.WithString("tags",
			mcpgo.Description("Comma-separated tags replacing the current ones"),
		),
	)
}

func buildDeleteEntryTool() mcpgo.Tool {
	return mcpgo.NewTool("delete_entry",
		mcpgo.WithDescription("Delete an entry by ID."),
		mcpgo.WithString("id",
			mcpgo.Required(),
			mcpgo.Description("The ID of the entry to delete"),
		),
	)
}

func buildToggleFavoriteTool() mcpgo.Tool {
	return mcpgo.NewTool("toggle_favorite",
		mcpgo.WithDescription("Flip the favorite flag of an entry."),
		mcpgo.WithString("id",
			mcpgo.Required(),
			mcpgo.Description("The ID of the entry"),
		),
	)
}

func buildGetEntryTool() mcpgo.Tool {
	return mcpgo.NewTool("get_entry",
		mcpgo.WithDescription("Fetch a single entry by ID."),
		mcpgo.WithString("id",
			mcpgo.Required(),
			mcpgo.Description("The ID of the entry"),
		),
	)
}

func buildListEntriesTool() mcpgo.Tool {
	return mcpgo.NewTool("list_entries",
		mcpgo.WithDescription("List entries matching a text search and tag filter."),
		mcpgo.WithString("search",
			mcpgo.Description("Case-insensitive text to look for in the entry's main fields"),
		),
		mcpgo.WithString("tags",
			mcpgo.Description("Comma-separated tags; entries with any of them match"),
		),
		mcpgo.WithString("order",
			mcpgo.Description("Sort order: newest, oldest, or favorited (default: newest)"),
		),
		mcpgo.WithString("month",
			mcpgo.Description("Restrict to a calendar month, YYYY-MM"),
		),
		mcpgo.WithBoolean("favorites_only",
			mcpgo.Description("Only return favorites"),
		),
		mcpgo.WithNumber("limit",
			mcpgo.Description("Maximum number of results (default: 50)"),
		),
	)
}

func buildEntriesForDateTool() mcpgo.Tool {
	return mcpgo.NewTool("entries_for_date",
		mcpgo.WithDescription("List the entries recorded on one calendar day."),
		mcpgo.WithString("date",
			mcpgo.Required(),
			mcpgo.Description("The day as YYYY-MM-DD"),
		),
	)
}

func buildStatsTool() mcpgo.Tool {
	return mcpgo.NewTool("stats",
		mcpgo.WithDescription("Journal statistics: totals, tag counts, monthly counts and streaks."),
	)
}

func buildListTagsTool() mcpgo.Tool {
	return mcpgo.NewTool("list_tags",
		mcpgo.WithDescription("List the known tags: built-in tags first, then custom tags."),
	)
}

func buildAddTagTool() mcpgo.Tool {
	return mcpgo.NewTool("add_tag",
		mcpgo.WithDescription("Register a custom tag so it is offered for labelling and filtering."),
		mcpgo.WithString("name",
			mcpgo.Required(),
			mcpgo.Description("The tag name"),
		),
	)
}

// --- tool handlers ---

// handleAddEntry validates and stores a new entry.
func (s *Server) handleAddEntry(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.j == nil {
		return mcpgo.NewToolResultError("journal is unavailable"), nil
	}

	fields, _, err := fieldsArg(req)
	if err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}
	tagList, _ := tagsArg(req)

	date := s.today()
	if d := req.GetString("date", ""); d != "" {
		date, err = s.parseDay(d)
		if err != nil {
			return mcpgo.NewToolResultError(err.Error()), nil
		}
	}

	e := models.Entry{Date: date, Fields: fields, Tags: tagList}
	if err = validate.Entry(s.j.Variant(), e, s.today()); err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}
	if req.GetBool("favorite", false) {
		e.IsFavorite = true
	}

	stored := s.j.Add(ctx, e)
	s.logger.Info("mcp: add_entry stored entry", "id", stored.ID)
	return toolResultJSON(stored)
}

// handleUpdateEntry merges the given arguments into an existing entry.
func (s *Server) handleUpdateEntry(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.j == nil {
		return mcpgo.NewToolResultError("journal is unavailable"), nil
	}

	id := req.GetString("id", "")
	if strings.TrimSpace(id) == "" {
		return mcpgo.NewToolResultError("id is required and must not be empty"), nil
	}
	e, ok := s.j.Get(id)
	if !ok {
		return mcpgo.NewToolResultErrorf("entry %q not found", id), nil
	}

	fields, given, err := fieldsArg(req)
	if err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}
	if given {
		if e.Fields == nil {
			e.Fields = make(map[string]string)
		}
		for k, v := range fields {
			if v == "" {
				delete(e.Fields, k)
				continue
			}
			e.Fields[k] = v
		}
	}
	if tagList, given := tagsArg(req); given {
		e.Tags = tagList
	}
	if d := req.GetString("date", ""); d != "" {
		if e.Date, err = s.parseDay(d); err != nil {
			return mcpgo.NewToolResultError(err.Error()), nil
		}
	}

	if err = validate.Entry(s.j.Variant(), e, s.today()); err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}
	if !s.j.Update(ctx, e) {
		return mcpgo.NewToolResultErrorf("entry %q was not updated", id), nil
	}

	updated, _ := s.j.Get(id)
	return toolResultJSON(updated)
}

// handleDeleteEntry deletes an entry by ID.
func (s *Server) handleDeleteEntry(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.j == nil {
		return mcpgo.NewToolResultError("journal is unavailable"), nil
	}

	id := req.GetString("id", "")
	if strings.TrimSpace(id) == "" {
		return mcpgo.NewToolResultError("id is required and must not be empty"), nil
	}

	deleted := s.j.Delete(ctx, id)
	if deleted {
		s.logger.Info("mcp: delete_entry removed entry", "id", id)
	}
	return toolResultJSON(map[string]any{"deleted": deleted})
}

// handleToggleFavorite flips an entry's favorite flag.
func (s *Server) handleToggleFavorite(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.j == nil {
		return mcpgo.NewToolResultError("journal is unavailable"), nil
	}

	id := req.GetString("id", "")
	if strings.TrimSpace(id) == "" {
		return mcpgo.NewToolResultError("id is required and must not be empty"), nil
	}

	e, ok := s.j.ToggleFavorite(ctx, id)
	if !ok {
		return mcpgo.NewToolResultErrorf("entry %q not found", id), nil
	}
	return toolResultJSON(e)
}

// handleGetEntry returns one entry.
func (s *Server) handleGetEntry(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.j == nil {
		return mcpgo.NewToolResultError("journal is unavailable"), nil
	}

	id := req.GetString("id", "")
	if strings.TrimSpace(id) == "" {
		return mcpgo.NewToolResultError("id is required and must not be empty"), nil
	}

	e, ok := s.j.Get(id)
	if !ok {
		return mcpgo.NewToolResultErrorf("entry %q not found", id), nil
	}
	return toolResultJSON(e)
}

// handleListEntries runs a filtered query.
func (s *Server) handleListEntries(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.j == nil {
		return mcpgo.NewToolResultError("journal is unavailable"), nil
	}

	order := models.SortNewestFirst
	if o := req.GetString("order", ""); o != "" {
		candidate := models.SortOrder(strings.ToLower(o))
		if !candidate.IsValid() {
			return mcpgo.NewToolResultErrorf("invalid order %q: must be one of newest, oldest, favorited", o), nil
		}
		order = candidate
	}

	limit := req.GetInt("limit", defaultListLimit)
	if limit <= 0 {
		limit = defaultListLimit
	}

	tagList, _ := tagsArg(req)
	q := journal.Query{
		Search:        req.GetString("search", ""),
		Tags:          tagList,
		Order:         order,
		FavoritesOnly: req.GetBool("favorites_only", false),
	}

	entries := s.j.Filtered(q)
	if m := req.GetString("month", ""); m != "" {
		month, err := calendar.ParseMonth(m, s.j.Location())
		if err != nil {
			return mcpgo.NewToolResultError(err.Error()), nil
		}
		kept := entries[:0]
		for i := range entries {
			if calendar.SameMonth(entries[i].Date, month, s.j.Location()) {
				kept = append(kept, entries[i])
			}
		}
		entries = kept
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	if entries == nil {
		entries = []models.Entry{}
	}

	return toolResultJSON(map[string]any{
		"entries": entries,
		"count":   len(entries),
	})
}

// handleEntriesForDate lists one day's entries.
func (s *Server) handleEntriesForDate(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.j == nil {
		return mcpgo.NewToolResultError("journal is unavailable"), nil
	}

	d := req.GetString("date", "")
	if strings.TrimSpace(d) == "" {
		return mcpgo.NewToolResultError("date is required and must not be empty"), nil
	}
	day, err := s.parseDay(d)
	if err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}

	entries := s.j.EntriesForDate(day)
	if entries == nil {
		entries = []models.Entry{}
	}
	return toolResultJSON(map[string]any{
		"date":    d,
		"entries": entries,
	})
}

// handleStats returns journal statistics.
func (s *Server) handleStats(_ context.Context, _ mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.j == nil {
		return mcpgo.NewToolResultError("journal is unavailable"), nil
	}
	return toolResultJSON(s.j.Summary())
}

// handleListTags returns the tag registry.
func (s *Server) handleListTags(_ context.Context, _ mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.j == nil {
		return mcpgo.NewToolResultError("journal is unavailable"), nil
	}
	return toolResultJSON(map[string]any{
		"tags":   s.j.AllTags(),
		"counts": s.j.AggregateTagCounts(),
	})
}

// handleAddTag registers a custom tag.
func (s *Server) handleAddTag(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.j == nil {
		return mcpgo.NewToolResultError("journal is unavailable"), nil
	}

	name := req.GetString("name", "")
	if err := validate.TagName(name); err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}
	if s.j.Variant().TagMode != models.TagModeFree {
		return mcpgo.NewToolResultErrorf("journal %s only uses its built-in tags", s.j.Variant().Name), nil
	}

	added := s.j.AddCustomTag(ctx, name)
	return toolResultJSON(map[string]any{
		"added": added,
		"tags":  s.j.AllTags(),
	})
}
