package manager

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"nio/internal/models"
)

const SystemPrompt = `You are Nio, a helpful AI assistant. You engage in natural conversation, answer questions, explain concepts, and help with general tasks. You provide clear, concise, and accurate responses.`

// onlineSuffix selects the provider's web search variant of a model.
const onlineSuffix = ":online"

type Request struct {
	Model    string
	Web      bool
	APIKey   string
	Messages []models.Message
}

// Completer streams a completion, calling onDelta with the accumulated
// content after every chunk.
type Completer interface {
	Stream(ctx context.Context, req Request, onDelta func(content string)) (string, error)
}

type OpenAICompleter struct {
	client openai.Client
}

func NewOpenAICompleter(baseURL string) *OpenAICompleter {
	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithHeader("HTTP-Referer", "https://github.com/nio-chat/nio"),
		option.WithHeader("X-Title", "Nio CLI"),
	)
	return &OpenAICompleter{client: client}
}

func (c *OpenAICompleter) Stream(ctx context.Context, req Request, onDelta func(string)) (string, error) {
	modelID := req.Model
	if req.Web && !strings.HasSuffix(modelID, onlineSuffix) {
		modelID += onlineSuffix
	}

	stream := c.client.Chat.Completions.NewStreaming(ctx, openai.ChatCompletionNewParams{
		Model:    modelID,
		Messages: BuildHistory(req.Messages),
	}, option.WithAPIKey(req.APIKey))
	defer stream.Close()

	var content strings.Builder
	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		content.WriteString(delta)
		onDelta(content.String())
	}
	if err := stream.Err(); err != nil {
		return content.String(), fmt.Errorf("stream completion: %w", err)
	}
	if content.Len() == 0 {
		return "", fmt.Errorf("empty response from model")
	}
	return content.String(), nil
}

// BuildHistory converts stored messages to request messages, dropping
// empty assistant placeholders.
func BuildHistory(msgs []models.Message) []openai.ChatCompletionMessageParamUnion {
	history := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(SystemPrompt),
	}
	for _, msg := range msgs {
		switch msg.Role {
		case models.RoleUser:
			history = append(history, openai.UserMessage(msg.Content))
		case models.RoleAssistant:
			if strings.TrimSpace(msg.Content) == "" {
				continue
			}
			history = append(history, openai.AssistantMessage(msg.Content))
		}
	}
	return history
}
