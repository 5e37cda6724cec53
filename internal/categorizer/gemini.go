package categorizer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kiyotrack/struk-csv/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// categoryPrompt asks the model for a single category name, constrained to
// the labels the review UI knows about.
const categoryPrompt = `You are categorizing a personal-finance transaction from an Indonesian bank statement or receipt.

Transaction type: %s
Description: %q

Pick the single best matching category from this list and answer with the category name only, nothing else:
%s`

// GeminiStrategy categorizes descriptions the keyword table cannot place by
// asking the Gemini API. It is an optional refinement: callers must treat
// every failure as "no suggestion".
type GeminiStrategy struct {
	client     *genai.Client
	model      *genai.GenerativeModel
	timeout    time.Duration
	categories []string
}

// NewGeminiStrategy creates a Gemini-backed strategy.
func NewGeminiStrategy(ctx context.Context, apiKey, modelName string, timeout time.Duration) (*GeminiStrategy, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &GeminiStrategy{
		client:  client,
		model:   client.GenerativeModel(modelName),
		timeout: timeout,
		categories: []string{
			models.CategoryGroceries, models.CategoryOnlineShop, models.CategoryFood,
			models.CategoryTransport, models.CategoryUtilities, models.CategoryWithdrawal,
			models.CategoryInstallment, models.CategoryHealth, models.CategorySalary,
			models.CategoryTransferIn, models.CategoryInterest, models.CategoryOther,
		},
	}, nil
}

// Name identifies the strategy in logs.
func (s *GeminiStrategy) Name() string {
	return "Gemini"
}

// Categorize asks the model for a category. Any response outside the known
// label set is treated as no suggestion.
func (s *GeminiStrategy) Categorize(ctx context.Context, description string, txType models.TransactionType) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := fmt.Sprintf(categoryPrompt, txType, description, strings.Join(s.categories, "\n"))
	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", false, fmt.Errorf("generating content: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", false, fmt.Errorf("no response from gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	answer := strings.TrimSpace(sb.String())
	for _, category := range s.categories {
		if strings.EqualFold(answer, category) {
			return category, true, nil
		}
	}
	return "", false, nil
}

// Close releases the underlying API client.
func (s *GeminiStrategy) Close() error {
	return s.client.Close()
}
