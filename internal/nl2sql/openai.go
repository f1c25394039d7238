package nl2sql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type OpenAIConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

type OpenAITranslator struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	client      *http.Client
}

func NewOpenAITranslator(cfg OpenAIConfig) (*OpenAITranslator, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gpt-4o-mini"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &OpenAITranslator{
		baseURL:     strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:      strings.TrimSpace(cfg.APIKey),
		model:       model,
		temperature: cfg.Temperature,
		client:      &http.Client{Timeout: timeout},
	}, nil
}

func (t *OpenAITranslator) Translate(ctx context.Context, req Request) (Result, error) {
	body, err := json.Marshal(buildOpenAIPayload(t.model, t.temperature, req))
	if err != nil {
		return Result{}, fmt.Errorf("marshal chat payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+t.apiKey)

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return Result{}, fmt.Errorf("request chat completion: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	rawRespBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read chat response body: %w", err)
	}
	if resp.StatusCode >= 400 {
		return Result{}, fmt.Errorf("chat completion failed status=%d body=%s", resp.StatusCode, string(rawRespBody))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(rawRespBody, &parsed); err != nil {
		return Result{}, fmt.Errorf("decode chat completion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return Result{}, fmt.Errorf("empty chat completion choices")
	}

	// An empty completion is not a transport failure. The caller's
	// validation gate rejects it like any other non-SELECT response.
	sql := stripMarkdownSQL(parsed.Choices[0].Message.Content)
	return Result{
		SQL:      sql,
		Provider: "openai-compatible",
		Model:    t.model,
	}, nil
}

func buildOpenAIPayload(model string, temperature float64, req Request) map[string]any {
	systemPrompt := "You are an expert PostgreSQL database assistant. " +
		"Your task is to convert natural language questions into executable SQL queries. " +
		"Only generate the SQL query, without any additional text, explanations, or backticks. " +
		"Ensure the SQL query is syntactically correct and uses the provided schema. " +
		"If the question cannot be answered by the database schema, respond with 'N/A'."
	userPrompt := fmt.Sprintf(
		"Here is the database schema:\n%s\n"+
			"IMPORTANT: Always use the 'status' column from the 'assets' table for maintenance queries. "+
			"For employee names, ensure case-insensitivity if possible or use LIKE. "+
			"For 'last service date', join 'asset_vendor_link' with 'assets' on 'asset_id' and 'id'.\n"+
			"Example Queries:\n"+
			"-- Get assets under maintenance\n"+
			"SELECT asset_tag, name, location FROM assets WHERE status = 'Under Maintenance';\n"+
			"-- Get last service date for an asset (e.g., GNT-243)\n"+
			"SELECT avl.service_type, avl.last_service_date FROM asset_vendor_link avl JOIN assets a ON avl.asset_id = a.id WHERE a.asset_tag = 'GNT-243';\n"+
			"-- Get designation of an employee (e.g., John Doe)\n"+
			"SELECT designation FROM employees WHERE name = 'John Doe';\n\n"+
			"Question: %s\nSQL Query:",
		req.Schema,
		strings.TrimSpace(req.Question),
	)

	return map[string]any{
		"model": model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": userPrompt},
		},
		"temperature": temperature,
	}
}

func stripMarkdownSQL(value string) string {
	trimmed := strings.TrimSpace(value)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```sql")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(trimmed, "```")
		return strings.TrimSpace(trimmed)
	}
	return trimmed
}
