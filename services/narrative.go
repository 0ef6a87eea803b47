package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/prodvi/backend/models"

	"google.golang.org/genai"
)

// ModelName is the generative model used for narrative summaries.
const ModelName = "gemini-2.5-flash"

// NarrativeGenerator turns an anonymized feedback document into a prose
// performance summary. It is an untrusted, possibly slow remote dependency;
// implementations return errors instead of panicking so the aggregator can
// persist the document regardless.
type NarrativeGenerator interface {
	Generate(ctx context.Context, doc *models.FeedbackDocument) (string, error)
}

// GeminiNarrativeService generates summaries with the Gemini API.
type GeminiNarrativeService struct {
	genaiClient *genai.Client
}

func NewGeminiNarrativeService(apiKey string) *GeminiNarrativeService {
	genaiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		slog.Error("Failed to create genai client", "error", err)
		return nil
	}

	return &GeminiNarrativeService{genaiClient: genaiClient}
}

// Generate sends the feedback document to Gemini and returns the narrative.
func (g *GeminiNarrativeService) Generate(ctx context.Context, doc *models.FeedbackDocument) (string, error) {
	if g.genaiClient == nil {
		return "", fmt.Errorf("genai client not initialized")
	}

	prompt := buildNarrativePrompt(doc)

	result, err := g.genaiClient.Models.GenerateContent(
		ctx,
		ModelName,
		genai.Text(prompt),
		nil,
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate narrative: %w", err)
	}

	narrative := result.Text()
	slog.Info("Narrative generated", "employee", doc.Name, "narrative_length", len(narrative))
	return narrative, nil
}

// FormatFeedbackDocument renders the document as the plain-text block the
// prompt embeds: the employee name followed by each question and its pooled,
// unattributed peer responses.
func FormatFeedbackDocument(doc *models.FeedbackDocument) string {
	var formatted strings.Builder
	formatted.WriteString(fmt.Sprintf("EMPLOYEE: %s\n\n", doc.Name))

	for i, question := range doc.Questions {
		formatted.WriteString(fmt.Sprintf("QUESTION %d: %s\n", i+1, question.Question))
		formatted.WriteString("PEER RESPONSES:\n")
		for _, answer := range question.Answers {
			formatted.WriteString(fmt.Sprintf("- %s\n", answer))
		}
		formatted.WriteString("\n")
	}

	return formatted.String()
}

func buildNarrativePrompt(doc *models.FeedbackDocument) string {
	return fmt.Sprintf(`You are an expert HR analyst. Analyze this employee peer review data and provide a comprehensive performance summary.

PEER REVIEW DATA:
%s
(Do NOT include a date field in your output.)
Please structure bullet points as proper Markdown lists (e.g., - for bullets, 1. 2. for numbered lists) when you generate feedback. Do NOT use extra blank lines.
Please provide a detailed analysis including:

*PERFORMANCE SUMMARY:*
- Overall performance rating (Excellent/Good/Satisfactory/Needs Improvement)
- Key performance indicators from peer feedback

*KEY STRENGTHS:*
- Top 3-5 strengths identified by colleagues
- Specific examples from peer feedback

*AREAS FOR IMPROVEMENT:*
- 2-3 main areas that need development
- Constructive suggestions for growth

*SPECIFIC RECOMMENDATIONS:*
- Actionable steps for professional development
- Skills to focus on improving
- Training or mentoring suggestions

*PEER FEEDBACK HIGHLIGHTS:*
- Most positive comments from colleagues
- Common themes in feedback

Format the response professionally as if it's going into an official performance review document.

Speak like a human and address the employee you are evaluating by name. You may quote comments, but never reveal which colleague made a comment; keep everyone's identity confidential and never attribute a specific comment to a named source.`,
		FormatFeedbackDocument(doc))
}
