package service_test

import (
	"encoding/json"
	"lingo_learn_backend/internal/model"
	"lingo_learn_backend/internal/service"
	"lingo_learn_backend/internal/util"
	"testing"
)

func multipleChoiceKey(multiple bool) *model.MultipleChoiceKey {
	return &model.MultipleChoiceKey{
		QuestionText:        "Which of these is a fruit?",
		IsMultipleSelection: multiple,
		Choices: []model.Choice{
			{ID: 1, Text: "Apple", Order: 1, IsCorrect: true},
			{ID: 2, Text: "Carrot", Order: 2},
			{ID: 3, Text: "Potato", Order: 3},
		},
	}
}

func fillBlankKey(caseSensitive bool) *model.FillBlankKey {
	return &model.FillBlankKey{
		QuestionText:  "The capital of France is {blank}.",
		CaseSensitive: caseSensitive,
		AllowTyping:   true,
		Blanks:        [][]string{{"Paris"}},
	}
}

func dragDropKey(ordered bool) *model.DragDropKey {
	return &model.DragDropKey{
		Instructions:   "Sort the words by part of speech",
		OrderedTargets: ordered,
		Items: []model.DragItem{
			{ID: 10, Text: "run", Order: 1},
			{ID: 11, Text: "dog", Order: 2},
			{ID: 12, Text: "jump", Order: 3},
			{ID: 13, Text: "cat", Order: 4},
		},
		Targets: []model.DragItem{
			{ID: 100, Text: "Verbs", Order: 1},
			{ID: 200, Text: "Nouns", Order: 2},
		},
		Mappings: map[string][]int{
			"100": {10, 12},
			"200": {11, 13},
		},
	}
}

func reorderKey() *model.ReorderKey {
	return &model.ReorderKey{
		Instructions: "Put the words in order",
		Items: []model.ReorderEntry{
			{ID: 1, Text: "I"},
			{ID: 2, Text: "coffee"},
			{ID: 3, Text: "drink"},
			{ID: 4, Text: "black"},
		},
		CorrectOrder: []int{3, 1, 4, 2},
	}
}

func TestNormalizeChoices(t *testing.T) {
	tests := []struct {
		name      string
		multiple  bool
		raw       string
		wantIDs   []int
		wantShape bool
	}{
		{name: "single id", raw: `[1]`, wantIDs: []int{1}},
		{name: "string ids accepted", raw: `["1"]`, wantIDs: []int{1}},
		{name: "multiple ids when allowed", multiple: true, raw: `[1,2]`, wantIDs: []int{1, 2}},
		{name: "multiple ids rejected for single selection", raw: `[1,2]`, wantShape: true},
		{name: "foreign choice id", raw: `[9]`, wantShape: true},
		{name: "not a list", raw: `{"a":1}`, wantShape: true},
		{name: "non numeric id", raw: `["abc"]`, wantShape: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.NormalizeAnswer(multipleChoiceKey(tt.multiple), json.RawMessage(tt.raw))
			if tt.wantShape {
				if !util.IsShapeError(err) {
					t.Fatalf("expected shape error, got %v (%v)", err, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			ans := got.(service.ChoiceAnswer)
			if len(ans.ChoiceIDs) != len(tt.wantIDs) {
				t.Fatalf("expected %v, got %v", tt.wantIDs, ans.ChoiceIDs)
			}
			for i, id := range tt.wantIDs {
				if ans.ChoiceIDs[i] != id {
					t.Fatalf("expected %v, got %v", tt.wantIDs, ans.ChoiceIDs)
				}
			}
		})
	}
}

func TestNormalizeBlanks(t *testing.T) {
	key := &model.FillBlankKey{
		QuestionText: "{blank} and {blank}",
		Blanks:       [][]string{{"salt"}, {"pepper"}},
	}

	t.Run("missing index becomes empty string", func(t *testing.T) {
		got, err := service.NormalizeAnswer(key, json.RawMessage(`{"1":"pepper"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ans := got.(service.BlankAnswer)
		if ans.Blanks[0] != "" || ans.Blanks[1] != "pepper" {
			t.Fatalf("unexpected blanks: %v", ans.Blanks)
		}
	})

	t.Run("non integer index", func(t *testing.T) {
		_, err := service.NormalizeAnswer(key, json.RawMessage(`{"first":"salt"}`))
		if !util.IsShapeError(err) {
			t.Fatalf("expected shape error, got %v", err)
		}
	})

	t.Run("index out of range", func(t *testing.T) {
		_, err := service.NormalizeAnswer(key, json.RawMessage(`{"2":"salt"}`))
		if !util.IsShapeError(err) {
			t.Fatalf("expected shape error, got %v", err)
		}
	})

	t.Run("non string value", func(t *testing.T) {
		_, err := service.NormalizeAnswer(key, json.RawMessage(`{"0":42}`))
		if !util.IsShapeError(err) {
			t.Fatalf("expected shape error, got %v", err)
		}
	})

	t.Run("not an object", func(t *testing.T) {
		_, err := service.NormalizeAnswer(key, json.RawMessage(`["salt"]`))
		if !util.IsShapeError(err) {
			t.Fatalf("expected shape error, got %v", err)
		}
	})
}

func TestNormalizePlacements(t *testing.T) {
	key := dragDropKey(false)

	t.Run("unknown target is a shape error", func(t *testing.T) {
		_, err := service.NormalizeAnswer(key, json.RawMessage(`{"999":[10]}`))
		if !util.IsShapeError(err) {
			t.Fatalf("expected shape error, got %v", err)
		}
	})

	t.Run("unknown item id is tolerated", func(t *testing.T) {
		got, err := service.NormalizeAnswer(key, json.RawMessage(`{"100":[10,999]}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ans := got.(service.PlacementAnswer)
		if len(ans.Placements[100]) != 2 {
			t.Fatalf("unexpected placements: %v", ans.Placements)
		}
	})

	t.Run("scalar value becomes single element sequence", func(t *testing.T) {
		got, err := service.NormalizeAnswer(key, json.RawMessage(`{"100":10}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ans := got.(service.PlacementAnswer)
		if len(ans.Placements[100]) != 1 || ans.Placements[100][0] != 10 {
			t.Fatalf("unexpected placements: %v", ans.Placements)
		}
	})

	t.Run("not an object", func(t *testing.T) {
		_, err := service.NormalizeAnswer(key, json.RawMessage(`[10,11]`))
		if !util.IsShapeError(err) {
			t.Fatalf("expected shape error, got %v", err)
		}
	})
}

func TestNormalizeOrder(t *testing.T) {
	key := reorderKey()

	tests := []struct {
		name      string
		raw       string
		wantShape bool
	}{
		{name: "exact permutation", raw: `[3,1,4,2]`},
		{name: "string ids accepted", raw: `["3","1","4","2"]`},
		{name: "missing item", raw: `[3,1,4]`, wantShape: true},
		{name: "duplicated item", raw: `[3,1,4,4]`, wantShape: true},
		{name: "foreign item", raw: `[3,1,4,9]`, wantShape: true},
		{name: "not a list", raw: `{"0":3}`, wantShape: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.NormalizeAnswer(key, json.RawMessage(tt.raw))
			if tt.wantShape && !util.IsShapeError(err) {
				t.Fatalf("expected shape error, got %v", err)
			}
			if !tt.wantShape && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
