package service_test

import (
	"lingo_learn_backend/internal/model"
	"lingo_learn_backend/internal/service"
	"testing"
)

func TestGradeChoices(t *testing.T) {
	q := &model.Question{Explanation: "Apples and bananas are fruits."}
	key := &model.MultipleChoiceKey{
		IsMultipleSelection: true,
		Choices: []model.Choice{
			{ID: 1, Text: "Apple", IsCorrect: true},
			{ID: 2, Text: "Banana", IsCorrect: true},
			{ID: 3, Text: "Carrot"},
		},
	}

	tests := []struct {
		name    string
		ids     []int
		correct bool
	}{
		{name: "exact set", ids: []int{1, 2}, correct: true},
		{name: "order does not matter", ids: []int{2, 1}, correct: true},
		{name: "subset is wrong", ids: []int{1}},
		{name: "superset is wrong", ids: []int{1, 2, 3}},
		{name: "empty is wrong", ids: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := service.Grade(q, key, service.ChoiceAnswer{ChoiceIDs: tt.ids})
			if fb.Correct != tt.correct {
				t.Fatalf("correct = %v, want %v", fb.Correct, tt.correct)
			}
			if fb.Explanation != q.Explanation {
				t.Fatalf("explanation missing from feedback")
			}
			if tt.correct && fb.Message != "Correct!" {
				t.Fatalf("unexpected message %q", fb.Message)
			}
			if !tt.correct && fb.Message != "Incorrect. Try again!" {
				t.Fatalf("unexpected message %q", fb.Message)
			}
		})
	}
}

func TestGradeBlanks(t *testing.T) {
	q := &model.Question{}

	t.Run("case insensitive by default", func(t *testing.T) {
		key := fillBlankKey(false)
		fb := service.Grade(q, key, service.BlankAnswer{Blanks: []string{"  PARIS "}})
		if !fb.Correct {
			t.Fatalf("expected correct, got %+v", fb)
		}
	})

	t.Run("case sensitive when configured", func(t *testing.T) {
		key := fillBlankKey(true)
		fb := service.Grade(q, key, service.BlankAnswer{Blanks: []string{"paris"}})
		if fb.Correct {
			t.Fatal("expected incorrect for wrong case")
		}
		if len(fb.IncorrectBlanks) != 1 || fb.IncorrectBlanks[0] != 0 {
			t.Fatalf("unexpected incorrect blanks: %v", fb.IncorrectBlanks)
		}
	})

	t.Run("any accepted answer matches", func(t *testing.T) {
		key := &model.FillBlankKey{Blanks: [][]string{{"color", "colour"}}}
		fb := service.Grade(q, key, service.BlankAnswer{Blanks: []string{"colour"}})
		if !fb.Correct {
			t.Fatalf("expected correct, got %+v", fb)
		}
	})

	t.Run("only failed blanks reported", func(t *testing.T) {
		key := &model.FillBlankKey{Blanks: [][]string{{"salt"}, {"pepper"}}}
		fb := service.Grade(q, key, service.BlankAnswer{Blanks: []string{"salt", "sugar"}})
		if fb.Correct {
			t.Fatal("expected incorrect")
		}
		if len(fb.IncorrectBlanks) != 1 || fb.IncorrectBlanks[0] != 1 {
			t.Fatalf("unexpected incorrect blanks: %v", fb.IncorrectBlanks)
		}
	})
}

func TestGradePlacements(t *testing.T) {
	q := &model.Question{}

	t.Run("targets judged independently", func(t *testing.T) {
		fb := service.Grade(q, dragDropKey(false), service.PlacementAnswer{Placements: map[int][]int{
			100: {12, 10},
			200: {11},
		}})
		if fb.Correct {
			t.Fatal("expected incorrect")
		}
		if len(fb.IncorrectTargets) != 1 || fb.IncorrectTargets[0] != 200 {
			t.Fatalf("unexpected incorrect targets: %v", fb.IncorrectTargets)
		}
	})

	t.Run("order inside target ignored by default", func(t *testing.T) {
		fb := service.Grade(q, dragDropKey(false), service.PlacementAnswer{Placements: map[int][]int{
			100: {12, 10},
			200: {13, 11},
		}})
		if !fb.Correct {
			t.Fatalf("expected correct, got %+v", fb)
		}
	})

	t.Run("ordered targets compare positionally", func(t *testing.T) {
		fb := service.Grade(q, dragDropKey(true), service.PlacementAnswer{Placements: map[int][]int{
			100: {12, 10},
			200: {11, 13},
		}})
		if fb.Correct {
			t.Fatal("expected incorrect when sequence differs")
		}
		if len(fb.IncorrectTargets) != 1 || fb.IncorrectTargets[0] != 100 {
			t.Fatalf("unexpected incorrect targets: %v", fb.IncorrectTargets)
		}
	})

	t.Run("empty target must stay empty", func(t *testing.T) {
		key := dragDropKey(false)
		key.Mappings["200"] = nil
		fb := service.Grade(q, key, service.PlacementAnswer{Placements: map[int][]int{
			100: {10, 12},
			200: {11},
		}})
		if fb.Correct {
			t.Fatal("expected incorrect")
		}
	})
}

func TestGradeOrder(t *testing.T) {
	q := &model.Question{}
	key := reorderKey()

	t.Run("exact order", func(t *testing.T) {
		fb := service.Grade(q, key, service.OrderAnswer{Order: []int{3, 1, 4, 2}})
		if !fb.Correct || fb.Message != "Correct sequence!" {
			t.Fatalf("unexpected feedback: %+v", fb)
		}
	})

	t.Run("wrong permutation", func(t *testing.T) {
		fb := service.Grade(q, key, service.OrderAnswer{Order: []int{1, 3, 4, 2}})
		if fb.Correct || fb.Message != "Incorrect sequence. Try again!" {
			t.Fatalf("unexpected feedback: %+v", fb)
		}
	})
}

// 答案变体与题型不匹配时按答错处理而非 panic
func TestGradeMismatchedAnswerVariant(t *testing.T) {
	q := &model.Question{Explanation: "why"}

	tests := []struct {
		name    string
		key     model.AnswerKey
		ans     service.NormalizedAnswer
		message string
	}{
		{name: "order answer on choice key", key: multipleChoiceKey(false), ans: service.OrderAnswer{Order: []int{1}}, message: "Incorrect. Try again!"},
		{name: "choice answer on blank key", key: fillBlankKey(false), ans: service.ChoiceAnswer{ChoiceIDs: []int{1}}, message: "Incorrect. Try again!"},
		{name: "blank answer on drag key", key: dragDropKey(false), ans: service.BlankAnswer{Blanks: []string{"x"}}, message: "Incorrect. Try again!"},
		{name: "choice answer on reorder key", key: reorderKey(), ans: service.ChoiceAnswer{ChoiceIDs: []int{1}}, message: "Incorrect sequence. Try again!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := service.Grade(q, tt.key, tt.ans)
			if fb.Correct {
				t.Fatal("mismatched answer variant must not grade as correct")
			}
			if fb.Message != tt.message {
				t.Fatalf("message = %q, want %q", fb.Message, tt.message)
			}
			if fb.Explanation != q.Explanation {
				t.Fatal("explanation missing from feedback")
			}
		})
	}
}

// 判题为纯函数，同一输入重复判定结果一致
func TestGradeIdempotent(t *testing.T) {
	q := &model.Question{Explanation: "because"}
	key := multipleChoiceKey(false)
	ans := service.ChoiceAnswer{ChoiceIDs: []int{1}}

	first := service.Grade(q, key, ans)
	for i := 0; i < 3; i++ {
		again := service.Grade(q, key, ans)
		if again.Correct != first.Correct || again.Message != first.Message {
			t.Fatalf("feedback changed between calls: %+v vs %+v", first, again)
		}
	}
}
