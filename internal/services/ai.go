package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/mizuka-dev/projecthub-api/internal/models"
)

type AIService struct {
	client *openai.Client
}

// MemberSummary is the per-member context handed to the generator.
type MemberSummary struct {
	Name        string
	Description string
	Skills      []string
}

// GenerationInput collects everything the prompt needs about a project.
type GenerationInput struct {
	ProjectDescription string
	Members            []MemberSummary
	CatalogSkills      []string
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// GenerateSubtasks asks the model to break a project down into subtasks
// with required skills and suggested assignees. Skill names and member
// identifiers in the result are free text; callers must resolve them
// before treating them as foreign keys.
func (s *AIService) GenerateSubtasks(ctx context.Context, input GenerationInput) ([]models.ProposedSubtask, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	var members strings.Builder
	for _, m := range input.Members {
		fmt.Fprintf(&members, "- %s\n  Description: %s\n  Skills: %s\n",
			m.Name, m.Description, strings.Join(m.Skills, ", "))
	}

	description := input.ProjectDescription
	if description == "" {
		description = "No description provided"
	}

	prompt := fmt.Sprintf(`You are a project management assistant. Your task is to analyze the project and team information, then break it down into subtasks with appropriate assignments.

Project Description: %s

Team Members:
%s
Available Skills: %s

Please analyze this information and provide a JSON response with the following structure:
{
    "subtasks": [
        {
            "title": "subtask title",
            "description": "subtask description",
            "required_skills": ["skill1", "skill2"],
            "assigned_members": ["member1", "member2"],
            "reasoning": "brief explanation"
        }
    ]
}

Important:
1. Your response must be valid JSON
2. Do not include any text outside the JSON structure
3. Ensure all strings are properly quoted
4. Do not include markdown formatting
5. Assign members by their exact name from the team list`,
		description, members.String(), strings.Join(input.CatalogSkills, ", "))

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4oMini,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.2,
			TopP:        0.8,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := stripCodeFences(resp.Choices[0].Message.Content)

	var parsed struct {
		Subtasks []models.ProposedSubtask `json:"subtasks"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return parsed.Subtasks, nil
}

// stripCodeFences removes a surrounding markdown code block if the model
// ignored the no-markdown instruction.
func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
