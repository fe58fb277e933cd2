package concierge

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
	"upaheart-backend/internal/models"
)

// FallbackReply is shown when the model call fails. The widget stays
// interactive; the shopper can simply ask again.
const FallbackReply = "I'm sorry, I'm unable to connect right now. Please feel free to browse our collection at your leisure."

// Service answers single-turn shopper questions with a Gemini completion
// seeded with the catalog. No conversation state is kept server-side.
type Service struct {
	client *genai.Client
	model  string
	system string
}

func NewService(ctx context.Context, apiKey, model string, products []models.Product) (*Service, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Service{
		client: client,
		model:  model,
		system: systemPrompt(products),
	}, nil
}

func systemPrompt(products []models.Product) string {
	lines := make([]string, 0, len(products))
	for _, p := range products {
		lines = append(lines, fmt.Sprintf("%s ($%.0f): %s", p.Name, p.Price, p.Description))
	}

	return fmt.Sprintf(`You are the UpaHeart Concierge, a sophisticated, warm, and helpful personal shopper for a premium 3D printed gifting brand.
Your goal is to help customers find the perfect gift from our collection.
Our products:
%s

Keep your tone elegant, concise, and focused on the emotional value of the gifts.
If a customer describes an occasion (anniversary, birthday, memorial), recommend 1-2 specific products and explain why they fit.
Always mention that our "Lithophane" products are fully customizable with their own photos.`, strings.Join(lines, "\n"))
}

// Reply runs one completion for the shopper's message.
func (s *Service) Reply(ctx context.Context, message string) (string, error) {
	model := s.client.GenerativeModel(s.model)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(s.system)}}

	resp, err := model.GenerateContent(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	var reply strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				reply.WriteString(string(text))
			}
		}
		break
	}
	if reply.Len() == 0 {
		return "", fmt.Errorf("empty completion response")
	}

	return reply.String(), nil
}

func (s *Service) Close() error {
	return s.client.Close()
}
