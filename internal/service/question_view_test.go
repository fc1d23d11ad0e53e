package service

import (
	"encoding/json"
	"lingo_learn_backend/internal/model"
	"testing"
)

func choiceQuestion() *model.Question {
	payload := `{
		"questionText": "Pick the fruits",
		"isMultipleSelection": true,
		"choices": [
			{"id": 9, "text": "Apple", "order": 1, "isCorrect": true},
			{"id": 2, "text": "Carrot", "order": 2},
			{"id": 5, "text": "Banana", "order": 3, "isCorrect": true}
		]
	}`
	return &model.Question{Type: model.MultipleChoice, Payload: json.RawMessage(payload)}
}

func TestBuildViewStaffAnswers(t *testing.T) {
	s := &QuestionService{}

	view, err := s.buildView(choiceQuestion(), true)
	if err != nil {
		t.Fatalf("buildView: %v", err)
	}

	// 正确答案按选项声明顺序输出，重复构建结果一致
	want := []int{9, 5}
	if len(view.CorrectAnswers) != len(want) {
		t.Fatalf("unexpected correct answers: %v", view.CorrectAnswers)
	}
	for i, id := range want {
		if view.CorrectAnswers[i] != id {
			t.Fatalf("correctAnswers = %v, want %v", view.CorrectAnswers, want)
		}
	}

	for i := 0; i < 5; i++ {
		again, err := s.buildView(choiceQuestion(), true)
		if err != nil {
			t.Fatalf("buildView: %v", err)
		}
		for j := range want {
			if again.CorrectAnswers[j] != want[j] {
				t.Fatalf("correct answer order changed between builds: %v", again.CorrectAnswers)
			}
		}
	}
}

func TestBuildViewStudentHidesAnswers(t *testing.T) {
	s := &QuestionService{}

	view, err := s.buildView(choiceQuestion(), false)
	if err != nil {
		t.Fatalf("buildView: %v", err)
	}

	if view.CorrectAnswers != nil {
		t.Fatalf("student view must not expose correct answers: %v", view.CorrectAnswers)
	}
	for _, c := range view.Choices {
		if c.IsCorrect != nil {
			t.Fatalf("student view must not expose per-choice correctness: %+v", c)
		}
	}
}
