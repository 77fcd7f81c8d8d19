package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cognicore/matsched/pkg/matsched/material"
	"github.com/cognicore/matsched/pkg/matsched/project"
)

// Client calls an OpenAI-compatible chat completion endpoint.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string

	HTTPClient *http.Client
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

const extractSystemPrompt = `You are a quantity surveyor. From the project data, list every elementary construction material.
Reply with JSON only: {"materials":[{"category":"","element":"","description":"","unit":"","quantity":0,"rate":0,"amount":0,"location":"","confidence":0,"materialType":""}]}.
Use "materialType" values from this list when one fits: `

// materialsReply is the JSON shape requested from the model.
type materialsReply struct {
	Materials []struct {
		Category    string         `json:"category"`
		Element     string         `json:"element"`
		Description string         `json:"description"`
		Unit        string         `json:"unit"`
		Quantity    project.Number `json:"quantity"`
		Rate        project.Number `json:"rate"`
		Amount      project.Number `json:"amount"`
		Location    string         `json:"location"`
		Confidence  project.Number `json:"confidence"`
		Kind        string         `json:"materialType"`
	} `json:"materials"`
}

// ExtractMaterials asks the model for the material list of rec. Values are
// returned as the model gave them; callers normalize them.
func (c *Client) ExtractMaterials(ctx context.Context, rec project.Record) ([]material.Candidate, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("llm: encode record: %w", err)
	}
	system := extractSystemPrompt + kindList() + "."
	content, err := c.Chat(ctx, system, "Project data:\n"+string(data))
	if err != nil {
		return nil, err
	}
	return parseMaterials(content)
}

func parseMaterials(content string) ([]material.Candidate, error) {
	body := extractJSON(content)
	if body == "" {
		return nil, fmt.Errorf("llm: no JSON object in response")
	}
	var reply materialsReply
	if err := json.Unmarshal([]byte(body), &reply); err != nil {
		return nil, fmt.Errorf("llm: decode materials: %w", err)
	}
	out := make([]material.Candidate, 0, len(reply.Materials))
	for _, m := range reply.Materials {
		c := material.Candidate{
			Category:    m.Category,
			Element:     m.Element,
			Description: m.Description,
			Unit:        m.Unit,
			Quantity:    m.Quantity.Or(0),
			Rate:        m.Rate.Or(0),
			Amount:      m.Amount.Or(m.Rate.Or(0) * m.Quantity.Or(0)),
			Location:    m.Location,
		}
		if kind, err := material.ParseKind(m.Kind); err == nil {
			c.Kind = kind
		}
		if m.Confidence.Valid {
			v := m.Confidence.Value
			c.Confidence = &v
		}
		out = append(out, c)
	}
	return out, nil
}

// extractJSON returns the outermost {...} span, which drops markdown fences
// and any prose around the object.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

func kindList() string {
	kinds := material.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

func (c *Client) Chat(ctx context.Context, system, user string) (string, error) {
	if c.BaseURL == "" || c.Model == "" {
		return "", fmt.Errorf("llm: base URL and model required")
	}
	messages := []chatMessage{{Role: "system", Content: system}, {Role: "user", Content: user}}
	payload, err := c.send(ctx, messages)
	if err != nil {
		return "", err
	}
	if len(payload.Choices) == 0 {
		return "", fmt.Errorf("llm: empty response")
	}
	return payload.Choices[0].Message.Content, nil
}

func (c *Client) send(ctx context.Context, messages []chatMessage) (*chatResponse, error) {
	reqBody, err := json.Marshal(chatRequest{Model: c.Model, Messages: messages})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	var payload chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("llm: status %d: %w", resp.StatusCode, err)
	}
	if payload.Error != nil {
		return nil, fmt.Errorf("llm error: %s", payload.Error.Message)
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("llm: unexpected status %d", resp.StatusCode)
	}
	return &payload, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 30 * time.Second}
}
