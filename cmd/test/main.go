package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
)

type TestClient struct {
	baseURL string
	client  *http.Client
}

func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type profileFlags struct {
	client   string
	industry string
	audience string
	website  string
	strategy string
	count    int
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the agent")
	testType := flag.String("test", "all", "Test type: all, health, agent-card, generate, a2a, custom")
	var pf profileFlags
	flag.StringVar(&pf.client, "client", "", "Client name (for custom test)")
	flag.StringVar(&pf.industry, "industry", "", "Industry (for custom test)")
	flag.StringVar(&pf.audience, "audience", "", "Target audience (for custom test)")
	flag.StringVar(&pf.website, "website", "", "Client website (for custom test)")
	flag.StringVar(&pf.strategy, "strategy", "", "Strategy notes (for custom test)")
	flag.IntVar(&pf.count, "count", 3, "Number of variations")
	flag.Parse()

	client := NewTestClient(*baseURL)

	printHeader("Outreach Copywriter Agent - Test Suite")
	fmt.Printf("%sBase URL: %s%s\n\n", colorCyan, *baseURL, colorReset)

	var ok bool
	switch *testType {
	case "all":
		client.runAllTests()
		return
	case "health":
		ok = client.testHealthCheck()
	case "agent-card":
		ok = client.testAgentCard()
	case "generate":
		ok = client.testGenerate()
	case "a2a":
		ok = client.testA2A()
	case "custom":
		if pf.client == "" || pf.industry == "" || pf.website == "" || pf.strategy == "" {
			printError("custom test needs -client, -industry, -website and -strategy")
			os.Exit(1)
		}
		ok = client.generate(pf.payload())
	default:
		printError(fmt.Sprintf("Unknown test type: %s", *testType))
		fmt.Println("\nAvailable tests: all, health, agent-card, generate, a2a, custom")
		os.Exit(1)
	}
	if !ok {
		os.Exit(1)
	}
}

func (pf profileFlags) payload() map[string]interface{} {
	return map[string]interface{}{
		"clientName": pf.client,
		"industry":   pf.industry,
		"audience":   pf.audience,
		"website":    pf.website,
		"strategy":   pf.strategy,
		"count":      pf.count,
	}
}

var sampleProfile = profileFlags{
	client:   "Acme Analytics",
	industry: "B2B SaaS",
	audience: "heads of growth at seed-stage startups",
	website:  "https://example.com",
	strategy: "Pricing is confusing. Onboarding takes too long.",
	count:    3,
}

func (tc *TestClient) runAllTests() {
	tests := []struct {
		name string
		fn   func() bool
	}{
		{"Health Check", tc.testHealthCheck},
		{"API Health", tc.testAPIHealth},
		{"Agent Card", tc.testAgentCard},
		{"Generate", tc.testGenerate},
		{"Generate Validation", tc.testGenerateValidation},
		{"A2A Copywriter", tc.testA2A},
	}

	passed := 0
	failed := 0

	for _, test := range tests {
		if test.fn() {
			passed++
		} else {
			failed++
		}
		fmt.Println()
	}

	printHeader("Test Summary")
	fmt.Printf("%sPassed: %d%s\n", colorGreen, passed, colorReset)
	fmt.Printf("%sFailed: %d%s\n", colorRed, failed, colorReset)
	fmt.Printf("Total: %d\n", passed+failed)

	if failed > 0 {
		os.Exit(1)
	}
}

func (tc *TestClient) get(path string) (int, []byte, error) {
	url := tc.baseURL + path
	fmt.Printf("GET %s\n", url)

	resp, err := tc.client.Get(url)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	return resp.StatusCode, body, err
}

func (tc *TestClient) postJSON(path string, payload interface{}) (int, []byte, error) {
	url := tc.baseURL + path
	fmt.Printf("POST %s\n", url)

	jsonData, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return 0, nil, err
	}
	fmt.Printf("%sRequest:%s\n%s\n\n", colorYellow, colorReset, string(jsonData))

	resp, err := tc.client.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	return resp.StatusCode, body, err
}

func (tc *TestClient) testHealthCheck() bool {
	printTestHeader("Testing Health Check Endpoint")

	status, body, err := tc.get("/health")
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		return false
	}
	if string(body) != "OK" {
		printError(fmt.Sprintf("Expected body 'OK', got '%s'", string(body)))
		return false
	}

	printSuccess("Health check passed")
	return true
}

func (tc *TestClient) testAPIHealth() bool {
	printTestHeader("Testing API Health Endpoint")

	status, body, err := tc.get("/api/health")
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	var payload map[string]string
	if status != http.StatusOK || json.Unmarshal(body, &payload) != nil || payload["status"] != "ok" {
		printError(fmt.Sprintf("Unexpected response %d: %s", status, string(body)))
		return false
	}

	printSuccess("API health passed")
	return true
}

func (tc *TestClient) testAgentCard() bool {
	printTestHeader("Testing Agent Card Endpoint")

	status, body, err := tc.get("/.well-known/agent.json")
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	var agentCard map[string]interface{}
	if err := json.Unmarshal(body, &agentCard); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	requiredFields := []string{"name", "description", "version", "capabilities", "endpoints"}
	for _, field := range requiredFields {
		if _, ok := agentCard[field]; !ok {
			printError(fmt.Sprintf("Missing required field: %s", field))
			return false
		}
	}

	printSuccess("Agent card is valid")
	printJSON(body)
	return true
}

func (tc *TestClient) testGenerate() bool {
	return tc.generate(sampleProfile.payload())
}

func (tc *TestClient) generate(payload map[string]interface{}) bool {
	printTestHeader("Testing Copy Generation")

	status, body, err := tc.postJSON("/api/generate", payload)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	var response struct {
		Variations []struct {
			ID       int    `json:"id"`
			HookType string `json:"hookType"`
			Subject  string `json:"subject"`
			Body     string `json:"body"`
			PS       string `json:"ps"`
		} `json:"variations"`
		Source string `json:"source"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	if want, ok := payload["count"].(int); ok && len(response.Variations) != want {
		printError(fmt.Sprintf("Expected %d variations, got %d", want, len(response.Variations)))
		return false
	}

	printSuccess(fmt.Sprintf("Generated %d variations (source: %s)", len(response.Variations), response.Source))
	for _, v := range response.Variations {
		fmt.Println(strings.Repeat("=", 80))
		fmt.Printf("%s#%d %s%s\n", colorPurple, v.ID, v.HookType, colorReset)
		fmt.Printf("Subject: %s\n\n%s\n\n%s\n", v.Subject, v.Body, v.PS)
	}
	fmt.Println(strings.Repeat("=", 80))
	return true
}

func (tc *TestClient) testGenerateValidation() bool {
	printTestHeader("Testing Copy Generation Validation")

	status, body, err := tc.postJSON("/api/generate", map[string]interface{}{"clientName": "Acme"})
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusBadRequest || !strings.Contains(string(body), "Missing required fields") {
		printError(fmt.Sprintf("Expected 400 with missing fields, got %d: %s", status, string(body)))
		return false
	}

	printSuccess("Validation error returned")
	return true
}

func (tc *TestClient) testA2A() bool {
	printTestHeader("Testing A2A Copywriter")

	text := fmt.Sprintf("clientName: %s\nindustry: %s\naudience: %s\nwebsite: %s\nstrategy: %s\ncount: %d",
		sampleProfile.client, sampleProfile.industry, sampleProfile.audience,
		sampleProfile.website, sampleProfile.strategy, sampleProfile.count)

	request := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      fmt.Sprintf("test-%d", time.Now().Unix()),
		"method":  "message/send",
		"params": map[string]interface{}{
			"message": map[string]interface{}{
				"kind": "message",
				"role": "user",
				"parts": []map[string]interface{}{
					{"kind": "text", "text": text},
				},
			},
			"configuration": map[string]interface{}{
				"blocking":            true,
				"acceptedOutputModes": []string{"text", "data"},
			},
		},
	}

	status, body, err := tc.postJSON("/a2a/copywriter", request)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	var response map[string]interface{}
	if err := json.Unmarshal(body, &response); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	if errObj, ok := response["error"]; ok {
		printError("Request returned an error")
		errJSON, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Println(string(errJSON))
		return false
	}

	result, ok := response["result"].(map[string]interface{})
	if !ok {
		printError("Invalid result format")
		return false
	}

	taskStatus, ok := result["status"].(map[string]interface{})
	if !ok {
		printError("Invalid status format")
		return false
	}

	state, _ := taskStatus["state"].(string)
	if state != "completed" {
		printError(fmt.Sprintf("Expected state 'completed', got '%s'", state))
		return false
	}

	printSuccess("A2A generation completed successfully")

	if msg, ok := taskStatus["message"].(map[string]interface{}); ok {
		if parts, ok := msg["parts"].([]interface{}); ok {
			fmt.Printf("\n%sGenerated Copy:%s\n", colorGreen, colorReset)
			fmt.Println(strings.Repeat("=", 80))
			for _, part := range parts {
				if p, ok := part.(map[string]interface{}); ok {
					if text, ok := p["text"].(string); ok {
						fmt.Println(text)
					}
				}
			}
			fmt.Println(strings.Repeat("=", 80))
		}
	}

	return true
}

func printHeader(text string) {
	fmt.Printf("\n%s%s%s\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
	fmt.Printf("%s= %s =%s\n", colorBlue, text, colorReset)
	fmt.Printf("%s%s%s\n\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
}

func printTestHeader(text string) {
	fmt.Printf("%s[TEST] %s%s\n", colorCyan, text, colorReset)
	fmt.Println(strings.Repeat("-", 80))
}

func printSuccess(text string) {
	fmt.Printf("%s✓ %s%s\n", colorGreen, text, colorReset)
}

func printError(text string) {
	fmt.Printf("%s✗ %s%s\n", colorRed, text, colorReset)
}

func printJSON(data []byte) {
	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, data, "", "  "); err == nil {
		fmt.Printf("\n%sResponse:%s\n%s\n", colorYellow, colorReset, prettyJSON.String())
	}
}
