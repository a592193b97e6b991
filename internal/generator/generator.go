package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/lecture-notes/internal/notes"
)

// ErrEmptyResponse is returned when the model answers with no text.
var ErrEmptyResponse = errors.New("empty response from model")

const keywordPrompt = `You are indexing a university lecture transcript.
Return the %d most important technical terms or concepts from the transcript,
ordered from most to least relevant. Use short noun phrases (1-4 words),
no duplicates, no explanations.

Transcript:
---
%s
---`

const notesPrompt = `You are an expert teaching assistant. Turn the lecture transcript below into
well-organised study notes in English.

%s

Cover every topic in the order it was taught. Keep definitions precise and
examples concrete. Do not invent material that is not in the transcript.

Transcript:
---
%s
---`

// ExtractKeywords asks the model for a JSON array of terms. The list is
// returned in model order; truncation to maxKeywords is left to the caller.
func (g *implGenerator) ExtractKeywords(ctx context.Context, transcript string, maxKeywords int) (notes.KeywordList, error) {
	prompt := fmt.Sprintf(keywordPrompt, maxKeywords, transcript)

	text, err := g.generate(ctx, prompt, &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(g.temperature),
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("extract keywords: %w", err)
	}

	keywords, err := parseKeywords(text)
	if err != nil {
		return nil, fmt.Errorf("extract keywords: %w", err)
	}

	g.logger.Debug(ctx, "Model returned %d keywords", len(keywords))
	return keywords, nil
}

// GenerateNotes asks the model for a notes document in the heading grammar
// understood by notes.Parse.
func (g *implGenerator) GenerateNotes(ctx context.Context, transcript string) (notes.Document, error) {
	prompt := fmt.Sprintf(notesPrompt, notes.GrammarInstructions(), transcript)

	text, err := g.generate(ctx, prompt, &genai.GenerateContentConfig{
		Temperature: genai.Ptr(g.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("generate notes: %w", err)
	}

	return notes.Document(strings.TrimSpace(text)), nil
}

// generate makes one GenerateContent call and concatenates the text parts of
// the first candidate.
func (g *implGenerator) generate(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}

// parseKeywords accepts a JSON string array. Models occasionally wrap JSON in
// a code fence or answer with one term per line, so both are tolerated.
func parseKeywords(text string) (notes.KeywordList, error) {
	text = stripFence(strings.TrimSpace(text))

	var raw []string
	if strings.HasPrefix(text, "[") {
		if err := json.Unmarshal([]byte(text), &raw); err != nil {
			return nil, fmt.Errorf("decode keyword list: %w", err)
		}
	} else {
		for _, line := range strings.Split(text, "\n") {
			raw = append(raw, strings.TrimLeft(strings.TrimSpace(line), "-*0123456789. "))
		}
	}

	keywords := make(notes.KeywordList, 0, len(raw))
	for _, k := range raw {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords, nil
}

func stripFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[i+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "```"))
}
