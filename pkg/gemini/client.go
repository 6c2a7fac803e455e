// Package gemini wraps the Google generative AI SDK behind the two calls the
// platform needs: product detail suggestions and sales analysis.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/qikpos/pos-platform/internal/config"
	"github.com/qikpos/pos-platform/internal/models"
	"google.golang.org/api/option"
)

type Client interface {
	SuggestProductDetails(ctx context.Context, productName string) (*models.ProductSuggestion, error)
	AnalyzeSales(ctx context.Context, transactionSummary, userQuery string) (string, error)
	Close() error
}

type client struct {
	genaiClient *genai.Client
	modelName   string
}

func NewClient(ctx context.Context, cfg *config.Gemini) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is not configured")
	}

	genaiClient, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &client{genaiClient: genaiClient, modelName: cfg.Model}, nil
}

// SuggestProductDetails asks the model for a category, price, SKU, and
// description for a product being added to the catalog. The response schema
// forces valid JSON back.
func (c *client) SuggestProductDetails(ctx context.Context, productName string) (*models.ProductSuggestion, error) {
	model := c.genaiClient.GenerativeModel(c.modelName)

	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"category":    {Type: genai.TypeString, Description: "Retail category for the product"},
			"price":       {Type: genai.TypeNumber, Description: "Typical retail price, number only"},
			"sku":         {Type: genai.TypeString, Description: "Generated SKU"},
			"description": {Type: genai.TypeString, Description: "Short marketing description"},
		},
		Required: []string{"category", "price", "sku", "description"},
	}

	prompt := fmt.Sprintf(`I am adding a new product to my POS system. The product name is: %q.
Please suggest a category, a typical retail price (number only), a generated SKU, and a short marketing description.`, productName)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	text, err := firstText(resp)
	if err != nil {
		return nil, err
	}

	suggestion := &models.ProductSuggestion{}
	if err := json.Unmarshal([]byte(text), suggestion); err != nil {
		return nil, fmt.Errorf("failed to parse suggestion response: %w", err)
	}

	return suggestion, nil
}

// AnalyzeSales answers a free-form question about recent transactions. The
// caller supplies the condensed transaction summary to keep the prompt small.
func (c *client) AnalyzeSales(ctx context.Context, transactionSummary, userQuery string) (string, error) {
	model := c.genaiClient.GenerativeModel(c.modelName)

	prompt := fmt.Sprintf(`You are a helpful Data Analyst for a retail store.
Here is a summary of recent transactions in JSON format:
%s

User Query: %q

Please answer the user's question based strictly on the provided data.
If you need to calculate totals, please do so carefully.
Keep the answer concise and professional.`, transactionSummary, userQuery)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	return firstText(resp)
}

func (c *client) Close() error {
	return c.genaiClient.Close()
}

func firstText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			return string(text), nil
		}
	}

	return "", fmt.Errorf("gemini returned no text part")
}
