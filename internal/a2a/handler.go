package a2a

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BerylCAtieno/outreach-copy-agent/internal/agent"
	"github.com/BerylCAtieno/outreach-copy-agent/internal/copyengine"
	"github.com/BerylCAtieno/outreach-copy-agent/internal/logger"
	"github.com/BerylCAtieno/outreach-copy-agent/internal/models"
)

// Generator produces copy for a profile; *copyengine.Engine implements it.
type Generator interface {
	Generate(ctx context.Context, p models.ClientProfile, count int) (*models.GenerateResponse, error)
}

type Handler struct {
	engine       Generator
	defaultCount int
	log          *logger.Logger
}

func NewHandler(engine Generator, defaultCount int, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	if defaultCount <= 0 {
		defaultCount = 4
	}
	return &Handler{engine: engine, defaultCount: defaultCount, log: log}
}

const missingProfileMsg = "Please provide a client profile: clientName, industry, website and strategy (audience is optional)."

// HandleCopywriter processes A2A messages
func (h *Handler) HandleCopywriter(c *gin.Context) {
	bodyBytes, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.log.Error("failed to read request body", "error", err)
		h.sendErrorResponse(c, nil, "Failed to read request body", CodeParseError)
		return
	}
	h.log.Debug("a2a request received", "bytes", len(bodyBytes))

	var rpcReq JSONRPCRequest
	if err := json.Unmarshal(bodyBytes, &rpcReq); err != nil {
		h.log.Warn("failed to parse JSON-RPC request", "error", err)
		h.sendErrorResponse(c, nil, "Parse error", CodeParseError)
		return
	}
	if rpcReq.Method == "" {
		// Some clients post the message params without the JSON-RPC wrapper.
		h.handleDirectMessage(c, bodyBytes)
		return
	}

	if rpcReq.JSONRPC != "2.0" {
		h.log.Warn("invalid JSON-RPC version", "version", rpcReq.JSONRPC)
		h.sendErrorResponse(c, rpcReq.ID, "Invalid JSON-RPC version", CodeInvalidRequest)
		return
	}

	switch rpcReq.Method {
	case "agent/task", "message/send":
		h.handleTask(c, rpcReq)
	default:
		h.log.Warn("unknown A2A method", "method", rpcReq.Method)
		h.sendErrorResponse(c, rpcReq.ID, fmt.Sprintf("Method not found: %s", rpcReq.Method), CodeMethodNotFound)
	}
}

// handleDirectMessage tries to handle message without JSON-RPC wrapper
func (h *Handler) handleDirectMessage(c *gin.Context, bodyBytes []byte) {
	var msgParams MessageParams
	if err := json.Unmarshal(bodyBytes, &msgParams); err != nil {
		h.log.Warn("failed to parse direct message", "error", err)
		h.sendErrorResponse(c, nil, "Invalid request format", CodeInvalidRequest)
		return
	}

	const taskID = "direct-message"
	h.sendSuccessResponse(c, json.RawMessage(strconv.Quote(taskID)), h.generate(c.Request.Context(), taskID, msgParams.Message))
}

func (h *Handler) handleTask(c *gin.Context, rpcReq JSONRPCRequest) {
	paramsJSON, err := json.Marshal(rpcReq.Params)
	if err != nil {
		h.sendErrorResponse(c, rpcReq.ID, "Failed to parse parameters", CodeInvalidParams)
		return
	}

	var msgParams MessageParams
	if err := json.Unmarshal(paramsJSON, &msgParams); err != nil {
		h.log.Warn("invalid A2A params", "error", err)
		h.sendErrorResponse(c, rpcReq.ID, "Invalid parameters", CodeInvalidParams)
		return
	}

	h.sendSuccessResponse(c, rpcReq.ID, h.generate(c.Request.Context(), taskIDFor(rpcReq.ID), msgParams.Message))
}

// generate runs the engine for the profile carried by msg and wraps the
// outcome as a task result.
func (h *Handler) generate(ctx context.Context, taskID string, msg A2AMessage) TaskResult {
	req, ok := extractRequest(msg)
	if !ok {
		return h.createTaskResult(taskID, StateInputRequired, missingProfileMsg, nil)
	}

	count := h.defaultCount
	if req.Count != nil {
		count = *req.Count
	}

	resp, err := h.engine.Generate(ctx, req.ClientProfile, count)
	if err != nil {
		if errors.Is(err, copyengine.ErrInvalidProfile) {
			return h.createTaskResult(taskID, StateInputRequired, err.Error(), nil)
		}
		h.log.Error("a2a generation failed", "task_id", taskID, "error", err)
		return h.createTaskResult(taskID, StateFailed, fmt.Sprintf("Failed to generate copy: %v", err), nil)
	}

	h.log.Info("a2a generation completed", "task_id", taskID, "variations", len(resp.Variations), "source", resp.Source)
	return h.createTaskResult(taskID, StateCompleted, formatVariations(req.ClientProfile, resp), resp)
}

// ServeAgentCard serves the agent card using Gin
func (h *Handler) ServeAgentCard(c *gin.Context) {
	if err := agent.LoadAgentCard(); err != nil {
		h.log.Error("agent card not available", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Agent card not available"})
		return
	}
	c.Data(http.StatusOK, "application/json", agent.AgentCardData)
}

// extractRequest collects a profile from the message parts. Text parts may
// hold a JSON object or "key: value" lines; data parts may hold the
// profile object or a conversation history whose latest text is used.
func extractRequest(msg A2AMessage) (models.GenerateRequest, bool) {
	var req models.GenerateRequest
	for _, part := range msg.Parts {
		switch part.Kind {
		case "text":
			if text, ok := part.Text.(string); ok {
				mergeRequest(&req, parseText(text))
			}
		case "data":
			if part.Data == nil {
				continue
			}
			raw, err := json.Marshal(part.Data)
			if err != nil {
				continue
			}
			var fromData models.GenerateRequest
			if err := json.Unmarshal(raw, &fromData); err == nil {
				mergeRequest(&req, fromData)
				continue
			}
			if text := latestHistoryText(raw); text != "" {
				mergeRequest(&req, parseText(text))
			}
		}
	}

	p := req.ClientProfile
	empty := p.ClientName == "" && p.Industry == "" && p.Website == "" && p.Strategy == "" && p.Audience == ""
	return req, !empty
}

func parseText(text string) models.GenerateRequest {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "<p>", "")
	text = strings.ReplaceAll(text, "</p>", "\n")
	text = strings.TrimSpace(text)

	var req models.GenerateRequest
	if strings.HasPrefix(text, "{") && json.Unmarshal([]byte(text), &req) == nil {
		return req
	}
	return parseKeyValues(text)
}

// parseKeyValues reads "key: value" pairs, one per line. A semicolon also
// separates pairs, but only when the text after it starts with a known key,
// so values such as strategy notes may contain semicolons. Unknown keys are
// ignored.
func parseKeyValues(text string) models.GenerateRequest {
	var req models.GenerateRequest
	for _, line := range strings.Split(text, "\n") {
		for _, pair := range splitPairs(line) {
			field, value, ok := keyValue(pair)
			if !ok {
				continue
			}
			switch field {
			case "clientName":
				req.ClientName = value
			case "industry":
				req.Industry = value
			case "audience":
				req.Audience = value
			case "website":
				req.Website = value
			case "strategy":
				req.Strategy = value
			case "count":
				if n, err := strconv.Atoi(value); err == nil {
					req.Count = &n
				}
			}
		}
	}
	return req
}

var fieldAliases = map[string]string{
	"client":         "clientName",
	"clientname":     "clientName",
	"company":        "clientName",
	"name":           "clientName",
	"industry":       "industry",
	"audience":       "audience",
	"targetaudience": "audience",
	"website":        "website",
	"url":            "website",
	"site":           "website",
	"strategy":       "strategy",
	"notes":          "strategy",
	"strategynotes":  "strategy",
	"count":          "count",
	"variations":     "count",
}

var keyNormalizer = strings.NewReplacer("_", "", " ", "", "-", "")

// keyValue splits "key: value" and maps key to a profile field.
func keyValue(pair string) (field, value string, ok bool) {
	key, value, found := strings.Cut(pair, ":")
	if !found {
		return "", "", false
	}
	field, ok = fieldAliases[keyNormalizer.Replace(strings.ToLower(strings.TrimSpace(key)))]
	return field, strings.TrimSpace(value), ok
}

// splitPairs breaks line on semicolons that are followed by a known key and
// rejoins every other segment onto the pair before it.
func splitPairs(line string) []string {
	segments := strings.Split(line, ";")
	pairs := []string{segments[0]}
	for _, seg := range segments[1:] {
		if _, _, ok := keyValue(seg); ok {
			pairs = append(pairs, seg)
			continue
		}
		pairs[len(pairs)-1] += ";" + seg
	}
	return pairs
}

// latestHistoryText returns the most recent text item in a conversation
// history array.
func latestHistoryText(raw []byte) string {
	var history []map[string]interface{}
	if err := json.Unmarshal(raw, &history); err != nil {
		return ""
	}
	for i := len(history) - 1; i >= 0; i-- {
		if kind, _ := history[i]["kind"].(string); kind != "text" {
			continue
		}
		if text, _ := history[i]["text"].(string); strings.TrimSpace(text) != "" {
			return text
		}
	}
	return ""
}

func mergeRequest(dst *models.GenerateRequest, src models.GenerateRequest) {
	set := func(d *string, s string) {
		if s = strings.TrimSpace(s); s != "" {
			*d = s
		}
	}
	set(&dst.ClientName, src.ClientName)
	set(&dst.Industry, src.Industry)
	set(&dst.Audience, src.Audience)
	set(&dst.Website, src.Website)
	set(&dst.Strategy, src.Strategy)
	if src.Count != nil {
		dst.Count = src.Count
	}
}

func (h *Handler) createTaskResult(taskID, state, text string, resp *models.GenerateResponse) TaskResult {
	id := taskID
	result := TaskResult{
		ID:   taskID,
		Kind: "task",
		Status: TaskStatus{
			State:     state,
			Timestamp: Timestamp(),
			Message: &A2AMessage{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.New().String(),
				TaskID:    &id,
				Parts:     []MessagePart{TextPart(text)},
			},
		},
	}
	if resp != nil {
		result.Artifacts = []Artifact{
			{
				ArtifactID: uuid.New().String(),
				Name:       "Email Copy Variations",
				Parts:      []MessagePart{TextPart(text), DataPart(resp)},
			},
		}
	}
	return result
}

func formatVariations(p models.ClientProfile, resp *models.GenerateResponse) string {
	if len(resp.Variations) == 0 {
		return "No variations generated."
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("# Email copy for: %s\n\n", p.ClientName))
	if len(resp.Variations) < resp.Requested {
		builder.WriteString(fmt.Sprintf("_Requested %d, generated %d._\n\n", resp.Requested, len(resp.Variations)))
	}

	for i, v := range resp.Variations {
		if i > 0 {
			builder.WriteString("\n---\n\n")
		}
		builder.WriteString(fmt.Sprintf("## %d. %s\n\n", v.ID, v.HookType))
		builder.WriteString(fmt.Sprintf("**Subject:** %s\n\n", v.Subject))
		builder.WriteString(v.Body)
		builder.WriteString("\n\n")
		builder.WriteString(v.PS)
		builder.WriteString("\n")
	}

	return builder.String()
}

// taskIDFor renders a JSON-RPC id as a task id: strings are unquoted,
// numbers keep their literal form, and a missing id gets a fresh uuid.
func taskIDFor(id json.RawMessage) string {
	var s string
	if err := json.Unmarshal(id, &s); err == nil && s != "" {
		return s
	}
	if raw := strings.TrimSpace(string(id)); raw != "" && raw != "null" && raw != `""` {
		return raw
	}
	return uuid.New().String()
}

func (h *Handler) sendSuccessResponse(c *gin.Context, id json.RawMessage, result interface{}) {
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	})
}

func (h *Handler) sendErrorResponse(c *gin.Context, id json.RawMessage, message string, code int) {
	response := JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: map[string]interface{}{
			"code":    code,
			"message": message,
		},
	}

	h.log.Debug("sending JSON-RPC error", "code", code, "message", message)
	c.JSON(http.StatusOK, response) // JSON-RPC errors are sent with 200 OK
}
