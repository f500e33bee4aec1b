package a2a

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/outreach-copy-agent/internal/copyengine"
	"github.com/BerylCAtieno/outreach-copy-agent/internal/models"
)

type fakeGenerator struct {
	err     error
	calls   int
	profile models.ClientProfile
	count   int
}

func (f *fakeGenerator) Generate(ctx context.Context, p models.ClientProfile, count int) (*models.GenerateResponse, error) {
	f.calls++
	f.profile, f.count = p, count
	if err := copyengine.Validate(p, count); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Variation, count)
	for i := range out {
		out[i] = models.Variation{ID: i + 1, HookType: "Clarity Gap", Subject: "quick q", Body: "Hi.\n\nWorth a look?", PS: "P.S. no pressure"}
	}
	return &models.GenerateResponse{Variations: out, Requested: count, Source: models.SourceTemplate}, nil
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  *TaskResult     `json:"result"`
	Error   *map[string]any `json:"error"`
}

func post(t *testing.T, h *Handler, body string) rpcResponse {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/a2a/copywriter", h.HandleCopywriter)

	req := httptest.NewRequest(http.MethodPost, "/a2a/copywriter", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp rpcResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func rpcBody(t *testing.T, method string, parts ...MessagePart) string {
	t.Helper()
	raw, err := json.Marshal(JSONRPCRequest{
		JSONRPC: "2.0",
		ID:      json.RawMessage(`"req-1"`),
		Method:  method,
		Params: MessageParams{Message: A2AMessage{
			Kind:  "message",
			Role:  RoleUser,
			Parts: parts,
		}},
	})
	require.NoError(t, err)
	return string(raw)
}

func TestHandleCopywriterKeyValueText(t *testing.T) {
	gen := &fakeGenerator{}
	text := "<p>clientName: Acme</p><p>industry: SaaS</p><p>website: https://acme.io</p><p>strategy: Pricing is confusing</p><p>count: 2</p>"

	resp := post(t, NewHandler(gen, 4, nil), rpcBody(t, "message/send", TextPart(text)))

	require.NotNil(t, resp.Result)
	assert.JSONEq(t, `"req-1"`, string(resp.ID))
	assert.Equal(t, StateCompleted, resp.Result.Status.State)
	assert.Equal(t, "Acme", gen.profile.ClientName)
	assert.Equal(t, "Pricing is confusing", gen.profile.Strategy)
	assert.Equal(t, 2, gen.count)

	msg := resp.Result.Status.Message
	require.NotNil(t, msg)
	require.NotNil(t, msg.TaskID)
	assert.Equal(t, "req-1", *msg.TaskID)
	assert.NotEmpty(t, msg.MessageID)
	assert.Contains(t, msg.Parts[0].Text, "# Email copy for: Acme")
	assert.Contains(t, msg.Parts[0].Text, "**Subject:** quick q")

	require.Len(t, resp.Result.Artifacts, 1)
	parts := resp.Result.Artifacts[0].Parts
	require.Len(t, parts, 2)
	assert.Equal(t, "data", parts[1].Kind)
}

func TestHandleCopywriterJSONAndDataParts(t *testing.T) {
	gen := &fakeGenerator{}
	text := `{"clientName":"Acme","industry":"SaaS"}`
	data := map[string]any{"website": "https://acme.io", "strategy": "Slow onboarding"}

	resp := post(t, NewHandler(gen, 3, nil), rpcBody(t, "agent/task", TextPart(text), DataPart(data)))

	require.NotNil(t, resp.Result)
	assert.Equal(t, StateCompleted, resp.Result.Status.State)
	assert.Equal(t, models.ClientProfile{
		ClientName: "Acme", Industry: "SaaS", Website: "https://acme.io", Strategy: "Slow onboarding",
	}, gen.profile)
	assert.Equal(t, 3, gen.count)
}

func TestHandleCopywriterConversationHistory(t *testing.T) {
	gen := &fakeGenerator{}
	history := []map[string]any{
		{"kind": "text", "text": "hello"},
		{"kind": "text", "text": "client: Acme; industry: SaaS; website: https://acme.io; strategy: churn"},
	}

	resp := post(t, NewHandler(gen, 1, nil), rpcBody(t, "message/send", DataPart(history)))

	require.NotNil(t, resp.Result)
	assert.Equal(t, StateCompleted, resp.Result.Status.State)
	assert.Equal(t, "churn", gen.profile.Strategy)
}

func TestHandleCopywriterInputRequired(t *testing.T) {
	gen := &fakeGenerator{}

	resp := post(t, NewHandler(gen, 4, nil), rpcBody(t, "message/send", TextPart("write me some emails")))
	require.NotNil(t, resp.Result)
	assert.Equal(t, StateInputRequired, resp.Result.Status.State)
	assert.Equal(t, 0, gen.calls)
	assert.Empty(t, resp.Result.Artifacts)

	resp = post(t, NewHandler(gen, 4, nil), rpcBody(t, "message/send", TextPart("clientName: Acme")))
	require.NotNil(t, resp.Result)
	assert.Equal(t, StateInputRequired, resp.Result.Status.State)
	assert.Contains(t, resp.Result.Status.Message.Parts[0].Text, "Missing required fields: industry, website, strategy")
}

func TestHandleCopywriterFailed(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("boom")}
	text := "clientName: Acme\nindustry: SaaS\nwebsite: https://acme.io\nstrategy: x"

	resp := post(t, NewHandler(gen, 1, nil), rpcBody(t, "message/send", TextPart(text)))
	require.NotNil(t, resp.Result)
	assert.Equal(t, StateFailed, resp.Result.Status.State)
	assert.Contains(t, resp.Result.Status.Message.Parts[0].Text, "boom")
}

func TestHandleCopywriterDirectMessage(t *testing.T) {
	gen := &fakeGenerator{}
	body := `{"message":{"kind":"message","role":"user","parts":[{"kind":"text","text":"clientName: Acme\nindustry: SaaS\nwebsite: https://acme.io\nstrategy: x"}]}}`

	resp := post(t, NewHandler(gen, 1, nil), body)
	require.NotNil(t, resp.Result)
	assert.JSONEq(t, `"direct-message"`, string(resp.ID))
	assert.Equal(t, StateCompleted, resp.Result.Status.State)
}

func TestHandleCopywriterNumericID(t *testing.T) {
	gen := &fakeGenerator{}
	body := `{"jsonrpc":"2.0","id":1,"method":"message/send","params":{"message":{"kind":"message","role":"user","parts":[` +
		`{"kind":"text","text":"{\"clientName\":\"Acme\",\"industry\":\"SaaS\",\"website\":\"https://acme.io\",\"strategy\":\"Pricing is confusing\"}"}]}}}`

	resp := post(t, NewHandler(gen, 2, nil), body)

	assert.Equal(t, "1", string(resp.ID))
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, "Acme", gen.profile.ClientName)
	require.NotNil(t, resp.Result)
	assert.Equal(t, StateCompleted, resp.Result.Status.State)
	assert.Equal(t, "1", resp.Result.ID)
}

func TestHandleCopywriterErrorEchoesID(t *testing.T) {
	resp := post(t, NewHandler(&fakeGenerator{}, 1, nil), `{"jsonrpc":"2.0","id":42,"method":"tasks/cancel"}`)

	assert.Equal(t, "42", string(resp.ID))
	require.NotNil(t, resp.Error)
}

func TestHandleCopywriterProtocolErrors(t *testing.T) {
	h := NewHandler(&fakeGenerator{}, 1, nil)

	tests := []struct {
		name string
		body string
		code float64
	}{
		{name: "bad version", body: `{"jsonrpc":"1.0","id":"1","method":"message/send"}`, code: CodeInvalidRequest},
		{name: "unknown method", body: `{"jsonrpc":"2.0","id":"1","method":"tasks/cancel"}`, code: CodeMethodNotFound},
		{name: "invalid params", body: `{"jsonrpc":"2.0","id":"1","method":"message/send","params":{"message":"nope"}}`, code: CodeInvalidParams},
		{name: "garbage", body: `not json`, code: CodeParseError},
		{name: "direct message with bad shape", body: `{"message":"nope"}`, code: CodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, h, tt.body)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, (*resp.Error)["code"])
			assert.Nil(t, resp.Result)
		})
	}
}

func TestServeAgentCard(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/.well-known/agent.json", NewHandler(&fakeGenerator{}, 1, nil).ServeAgentCard)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/.well-known/agent.json", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var card map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &card))
	assert.Equal(t, "Outreach Copywriter", card["name"])
}

func TestParseKeyValues(t *testing.T) {
	req := parseKeyValues("Client Name: Acme\nTarget Audience: CFOs\nURL: https://acme.io\nnotes: a: b\ncount: two\nfoo: bar")
	assert.Equal(t, "Acme", req.ClientName)
	assert.Equal(t, "CFOs", req.Audience)
	assert.Equal(t, "https://acme.io", req.Website)
	assert.Equal(t, "a: b", req.Strategy)
	assert.Nil(t, req.Count)
}

func TestParseKeyValuesSemicolons(t *testing.T) {
	req := parseKeyValues("client: Acme; industry: SaaS; strategy: Pricing is confusing; onboarding is slow; website: https://acme.io")

	assert.Equal(t, "Acme", req.ClientName)
	assert.Equal(t, "SaaS", req.Industry)
	assert.Equal(t, "Pricing is confusing; onboarding is slow", req.Strategy)
	assert.Equal(t, "https://acme.io", req.Website)

	req = parseKeyValues("strategy: Slow demos; weak follow-up; note: none")
	assert.Equal(t, "Slow demos; weak follow-up; note: none", req.Strategy)
}
