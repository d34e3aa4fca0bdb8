package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"tourism-sewa-server/models"
)

const (
	groqBaseURL  = "https://api.groq.com/openai/v1/chat/completions"
	groqModel    = "llama-3.1-8b-instant"
	groqTimeout  = 15 * time.Second
	searchSystem = "You are a helpful assistant that suggests tourism experiences based on user queries. " +
		"You are given a JSON array of available experiences. Return a JSON array containing only the ids " +
		"of the 3-5 most relevant experiences for the query, most relevant first. Return the JSON array and nothing else."
)

// SearchService asks an OpenAI-compatible chat API (Groq) to rank experiences
// when keyword search comes up empty. It is strictly best-effort: any failure
// yields no suggestions rather than an error response.
type SearchService struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func NewSearchService() *SearchService {
	baseURL := os.Getenv("GROQ_BASE_URL")
	if baseURL == "" {
		baseURL = groqBaseURL
	}
	model := os.Getenv("GROQ_MODEL")
	if model == "" {
		model = groqModel
	}
	return &SearchService{
		baseURL: baseURL,
		apiKey:  os.Getenv("GROQ_API_KEY"),
		model:   model,
		client:  &http.Client{Timeout: groqTimeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type candidateSummary struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Type        string  `json:"type"`
	Price       float64 `json:"pricePerPerson"`
}

// SuggestExperiences returns the candidates the model considers relevant to
// the query, preserving the model's ordering.
func (s *SearchService) SuggestExperiences(ctx context.Context, query string, candidates []models.Experience) ([]models.Experience, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY not set")
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	summaries := make([]candidateSummary, 0, len(candidates))
	for _, e := range candidates {
		summaries = append(summaries, candidateSummary{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
			Location:    e.Location,
			Type:        e.Type,
			Price:       e.PricePerPerson,
		})
	}
	catalog, err := json.Marshal(summaries)
	if err != nil {
		return nil, err
	}

	reqBody, err := json.Marshal(chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: searchSystem + "\nAvailable experiences:\n" + string(catalog)},
			{Role: "user", Content: query},
		},
		Temperature: 0.7,
		MaxTokens:   2000,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chat API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("chat API returned no choices")
	}

	ids, err := parseIDList(parsed.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Experience, len(candidates))
	for _, e := range candidates {
		byID[e.ID] = e
	}
	var matched []models.Experience
	for _, id := range ids {
		if e, ok := byID[id]; ok {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// parseIDList tolerates models that wrap the array in prose or code fences.
func parseIDList(content string) ([]uint, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON array in model output")
	}
	var ids []uint
	if err := json.Unmarshal([]byte(content[start:end+1]), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}
