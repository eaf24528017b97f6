package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"studyflow-backend/internal/models"
	"studyflow-backend/internal/planner"
)

// SuggestionsService asks Gemini for activity ideas that fit a day's free
// windows. The feature is optional: without an API key the service stays
// disabled and the endpoint reports it as such.
type SuggestionsService struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewSuggestionsService(apiKey string) (*SuggestionsService, error) {
	if apiKey == "" {
		return &SuggestionsService{}, nil
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-3-flash-preview")
	model.SetTemperature(0.4)
	model.SetTopP(0.95)

	return &SuggestionsService{client: client, model: model}, nil
}

func (s *SuggestionsService) Enabled() bool {
	return s.client != nil
}

func (s *SuggestionsService) Close() {
	if s.client != nil {
		s.client.Close()
	}
}

type suggestedActivity struct {
	Type              string `json:"type"`
	CourseName        string `json:"course_name"`
	Topic             string `json:"topic"`
	Priority          string `json:"priority"`
	EstimatedDuration int    `json:"estimated_duration"`
	TimeSlot          string `json:"time_slot"`
}

// SuggestActivities returns draft activities for the given date. Results
// are sanitized and clamped like any user input before being returned.
func (s *SuggestionsService) SuggestActivities(ctx context.Context, courses []models.Course, slots *DaySlotsView) ([]models.Activity, error) {
	if !s.Enabled() {
		return nil, &SuggestionsDisabledError{}
	}

	prompt := buildSuggestionsPrompt(courses, slots)

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}

	rawText := strings.TrimSpace(extractText(resp))
	rawText = strings.TrimPrefix(rawText, "```json")
	rawText = strings.TrimPrefix(rawText, "```")
	rawText = strings.TrimSuffix(rawText, "```")
	rawText = strings.TrimSpace(rawText)

	var suggestions []suggestedActivity
	if err := json.Unmarshal([]byte(rawText), &suggestions); err != nil {
		// Model sometimes wraps the array in prose; retry on the bracketed span.
		start := strings.Index(rawText, "[")
		end := strings.LastIndex(rawText, "]")
		if start >= 0 && end > start {
			err = json.Unmarshal([]byte(rawText[start:end+1]), &suggestions)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse suggestions: %w", err)
		}
	}

	activities := make([]models.Activity, 0, len(suggestions))
	for i, sg := range suggestions {
		a := planner.SanitizeActivity(models.Activity{
			ID:                fmt.Sprintf("suggestion-%d", i+1),
			Type:              sg.Type,
			CourseName:        sg.CourseName,
			Topic:             sg.Topic,
			Priority:          sg.Priority,
			EstimatedDuration: sg.EstimatedDuration,
			TimeSlot:          sg.TimeSlot,
			Status:            models.StatusPlanned,
		})
		if r := planner.ValidateActivity(a); !r.IsValid {
			continue
		}
		activities = append(activities, a)
	}
	return activities, nil
}

func buildSuggestionsPrompt(courses []models.Course, slots *DaySlotsView) string {
	var b strings.Builder
	b.WriteString("You are a study planner for a university student in Vietnam.\n")
	fmt.Fprintf(&b, "Date: %s. Free morning window: %s-%s (%d minutes). Free afternoon window: %s-%s (%d minutes).\n",
		slots.Date,
		slots.Morning.StartTime, slots.Morning.EndTime, slots.Morning.DurationMinutes,
		slots.Afternoon.StartTime, slots.Afternoon.EndTime, slots.Afternoon.DurationMinutes)

	if len(slots.Classes) > 0 {
		b.WriteString("Classes today:\n")
		for _, c := range slots.Classes {
			fmt.Fprintf(&b, "- %s (%s-%s)\n", c.CourseName, c.StartTime, c.EndTime)
		}
	}
	if len(courses) > 0 {
		b.WriteString("Enrolled courses:\n")
		for _, c := range courses {
			fmt.Fprintf(&b, "- %s\n", c.Name)
		}
	}

	b.WriteString(`
Suggest 3 to 6 activities for the free windows. Respond with ONLY a JSON array, no prose:
[{"type": "study|exercise|meal|review|reading|personal|rest",
  "course_name": "course name or empty",
  "topic": "short topic",
  "priority": "high|medium|low",
  "estimated_duration": 60,
  "time_slot": "morning|afternoon|auto"}]
Durations are minutes between 15 and 480. Study and review activities must name a course. Include at least one meal and one rest activity.`)
	return b.String()
}

// SuggestionsDisabledError marks the Gemini integration as not configured.
type SuggestionsDisabledError struct{}

func (e *SuggestionsDisabledError) Error() string {
	return "Activity suggestions are not configured on this server"
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
