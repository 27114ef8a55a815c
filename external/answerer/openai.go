// Package answerer implements the chat answering contract against the
// OpenAI Responses API, grounding every reply in the lecture's
// transcript so the model can cite [MM:SS] positions.
package answerer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/responses"

	"github.com/Priyanshu9798/lecture-zen-38/internal/answerer"
	"github.com/Priyanshu9798/lecture-zen-38/internal/repository"
	"github.com/Priyanshu9798/lecture-zen-38/internal/transcript"
)

const (
	maxOutputTokens    = 600
	maxTranscriptChars = 24_000
)

const systemInstructions = `You are a study assistant answering questions about a single lecture.
Answer using only the lecture material below. When you reference a
specific part of the lecture, cite its position inline as [MM:SS] using
the transcript timestamps, so the learner can jump there. Keep answers
short and concrete.`

type OpenAIAnswerer struct {
	client *openai.Client
	model  string
	repo   repository.LectureRepository
}

func NewOpenAIAnswerer(client *openai.Client, model string, repo repository.LectureRepository) answerer.Answerer {
	return &OpenAIAnswerer{client: client, model: model, repo: repo}
}

func (a *OpenAIAnswerer) Answer(ctx context.Context, lectureID, question string) (string, error) {
	detail, err := a.repo.GetLectureDetail(ctx, lectureID)
	if err != nil {
		slog.Error("failed to load lecture for answering", "lecture_id", lectureID, "error", err)
		return "", fmt.Errorf("%w: loading lecture: %v", answerer.ErrServiceUnavailable, err)
	}

	params := responses.ResponseNewParams{
		Model:           a.model,
		MaxOutputTokens: openai.Int(maxOutputTokens),
		Instructions:    openai.String(buildInstructions(detail)),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(question, responses.EasyInputMessageRoleUser),
			},
		},
	}

	resp, err := a.client.Responses.New(ctx, params)
	if err != nil {
		slog.Error("answering request failed", "lecture_id", lectureID, "model", a.model, "error", err)
		return "", fmt.Errorf("%w: %v", answerer.ErrServiceUnavailable, err)
	}
	text := strings.TrimSpace(resp.OutputText())
	if text == "" {
		return "", fmt.Errorf("%w: empty response", answerer.ErrServiceUnavailable)
	}
	return text, nil
}

// buildInstructions renders the lecture context the model answers from:
// title, summary points, and the timestamped transcript, truncated to a
// budget so long lectures stay within the prompt window.
func buildInstructions(detail *repository.LectureDetail) string {
	var b strings.Builder
	b.WriteString(systemInstructions)
	b.WriteString("\n\nLecture: ")
	b.WriteString(detail.Lecture.Title)
	b.WriteString("\n")

	if len(detail.Summary) > 0 {
		b.WriteString("\nSummary:\n")
		for _, sec := range detail.Summary {
			b.WriteString(sec.Heading)
			b.WriteString("\n")
			for _, p := range sec.Points {
				b.WriteString("- ")
				b.WriteString(p)
				b.WriteString("\n")
			}
		}
	}

	if len(detail.Transcript) > 0 {
		b.WriteString("\nTranscript:\n")
		for _, seg := range detail.Transcript {
			line := fmt.Sprintf("[%s] %s\n", transcript.FormatSeconds(seg.TimestampSeconds), seg.Text)
			if b.Len()+len(line) > maxTranscriptChars {
				break
			}
			b.WriteString(line)
		}
	}
	return b.String()
}
