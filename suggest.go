package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

/* ─── Request / Response types ───────────────────────────────────────── */

// suggestRequest is the request body for POST /api/meals/suggest.
type suggestRequest struct {
	Description string `json:"description"`
}

// mealSuggestion is the structured nutrition data returned by the AI, shaped
// so the client can turn it straight into a createMealRequest. Confidence is
// 1-5 indicating how accurate the estimate is.
type mealSuggestion struct {
	Name         string   `json:"name"`
	Calories     float64  `json:"calories"`
	ProteinG     float64  `json:"protein_g"`
	CarbsG       float64  `json:"carbs_g"`
	FatG         float64  `json:"fat_g"`
	FiberG       *float64 `json:"fiber_g"`
	SugarG       *float64 `json:"sugar_g"`
	ServingSizeG *float64 `json:"serving_size_g"`
	Confidence   int      `json:"confidence"`
}

/* ─── OpenAI prompt constants ────────────────────────────────────────── */

const mealSystemPrompt = `You are a nutrition assistant. Parse the food description and return a JSON object with:
- "name" (string, cleaned up title case)
- "calories" (number, for one serving)
- "protein_g" (number, for one serving)
- "carbs_g" (number, for one serving)
- "fat_g" (number, for one serving)
- "fiber_g" (number, for one serving, omit if unknown)
- "sugar_g" (number, for one serving, omit if unknown)
- "serving_size_g" (number, grams in one serving, omit if unknown)
- "confidence" (integer 1-5: 5=exact known nutritional data, 4=very close estimate, 3=reasonable estimate, 2=rough guess, 1=very uncertain)

Always provide your best estimate, even for unfamiliar or vague items. Use your knowledge of similar foods to approximate. Only return {"error": "unrecognized"} if the input is not food at all (e.g. random characters, non-food objects).
Return only valid JSON, no explanation.`

/* ─── OpenAI HTTP client ─────────────────────────────────────────────── */

// openAIMessage is a single message in the OpenAI chat completions request.
type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// openAIRequest is the request body for the OpenAI chat completions API.
type openAIRequest struct {
	Model          string                 `json:"model"`
	Messages       []openAIMessage        `json:"messages"`
	Temperature    float64                `json:"temperature"`
	ResponseFormat map[string]interface{} `json:"response_format"`
}

// callOpenAI sends a chat completions request and returns the raw content string
// from the first choice. Uses raw net/http to avoid pulling in the OpenAI SDK.
func callOpenAI(ctx context.Context, messages []openAIMessage, baseURL string) (string, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY not set")
	}

	reqBody := openAIRequest{
		Model:       "gpt-4o-mini",
		Messages:    messages,
		Temperature: 0,
		ResponseFormat: map[string]interface{}{
			"type": "json_object",
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", baseURL+"/v1/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai returned status %d: %s", resp.StatusCode, string(respBytes))
	}

	// Parse the response to extract choices[0].message.content
	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBytes, &result); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return result.Choices[0].Message.Content, nil
}

/* ─── Handler ────────────────────────────────────────────────────────── */

// suggestMeal handles POST /api/meals/suggest.
// Accepts a food description, calls OpenAI to parse it into candidate macro
// values, and returns the suggestion in the meal-catalog shape. The engine
// never sees this call — the client reviews the suggestion and saves it as a
// regular meal.
func (h *Handler) suggestMeal(c *gin.Context) {
	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Description) == "" {
		apiError(c, http.StatusBadRequest, "description is required")
		return
	}

	messages := []openAIMessage{
		{Role: "system", Content: mealSystemPrompt},
		{Role: "user", Content: req.Description},
	}

	content, err := callOpenAI(c.Request.Context(), messages, h.openAIBaseURL)
	if err != nil {
		log.Printf("[suggest] OpenAI error: %v", err)
		apiError(c, http.StatusInternalServerError, "openai request failed")
		return
	}

	// Check if the AI returned an "unrecognized" error
	var errorResp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(content), &errorResp); err != nil {
		log.Printf("[suggest] Failed to parse OpenAI response: %v", err)
		apiError(c, http.StatusInternalServerError, "openai request failed")
		return
	}
	if errorResp.Error == "unrecognized" {
		c.JSON(http.StatusOK, gin.H{"error": "unrecognized"})
		return
	}

	// Parse the suggestion
	var suggestion mealSuggestion
	if err := json.Unmarshal([]byte(content), &suggestion); err != nil {
		log.Printf("[suggest] Failed to parse suggestion JSON: %v", err)
		apiError(c, http.StatusInternalServerError, "openai request failed")
		return
	}

	// Validate that we got a usable response (at minimum, name and calories)
	if suggestion.Name == "" || suggestion.Calories == 0 {
		c.JSON(http.StatusOK, gin.H{"error": "unrecognized"})
		return
	}

	c.JSON(http.StatusOK, suggestion)
}
