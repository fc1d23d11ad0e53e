package service

import (
	"lingo_learn_backend/internal/model"
	"strconv"
	"strings"
)

// Feedback 判题反馈，解析在提交后始终返回
type Feedback struct {
	Correct          bool   `json:"correct"`
	Message          string `json:"message"`
	Explanation      string `json:"explanation,omitempty"`
	IncorrectBlanks  []int  `json:"incorrectBlanks,omitempty"`
	IncorrectTargets []int  `json:"incorrectTargets,omitempty"`
}

// Grade 对规范化后的答案判分。纯函数，对任意规范化输入总能给出结论；
// 答案变体与题型不匹配时按答错处理，不会 panic。
func Grade(q *model.Question, key model.AnswerKey, ans NormalizedAnswer) Feedback {
	fb := Feedback{Message: "Incorrect. Try again!"}

	switch k := key.(type) {
	case *model.MultipleChoiceKey:
		if a, ok := ans.(ChoiceAnswer); ok {
			fb = gradeChoices(k, a)
		}
	case *model.FillBlankKey:
		if a, ok := ans.(BlankAnswer); ok {
			fb = gradeBlanks(k, a)
		}
	case *model.DragDropKey:
		if a, ok := ans.(PlacementAnswer); ok {
			fb = gradePlacements(k, a)
		}
	case *model.ReorderKey:
		if a, ok := ans.(OrderAnswer); ok {
			fb = gradeOrder(k, a)
		} else {
			fb.Message = "Incorrect sequence. Try again!"
		}
	}

	fb.Explanation = q.Explanation
	return fb
}

// gradeChoices 提交的选项ID集合与正确集合完全一致才算对，不给部分分
func gradeChoices(key *model.MultipleChoiceKey, ans ChoiceAnswer) Feedback {
	correct := key.CorrectChoiceIDs()

	submitted := make(map[int]bool, len(ans.ChoiceIDs))
	for _, id := range ans.ChoiceIDs {
		submitted[id] = true
	}

	isCorrect := len(submitted) == len(correct)
	if isCorrect {
		for id := range correct {
			if !submitted[id] {
				isCorrect = false
				break
			}
		}
	}

	if isCorrect {
		return Feedback{Correct: true, Message: "Correct!"}
	}
	return Feedback{Message: "Incorrect. Try again!"}
}

// gradeBlanks 每个空位去除首尾空白后比对，caseSensitive 为假时忽略大小写；
// 全部空位命中任一可接受答案才算对，错误空位下标保留在反馈中
func gradeBlanks(key *model.FillBlankKey, ans BlankAnswer) Feedback {
	var incorrect []int

	for idx, accepted := range key.Blanks {
		submitted := strings.TrimSpace(ans.Blanks[idx])
		if !key.CaseSensitive {
			submitted = strings.ToLower(submitted)
		}

		matched := false
		for _, a := range accepted {
			want := strings.TrimSpace(a)
			if !key.CaseSensitive {
				want = strings.ToLower(want)
			}
			if submitted == want {
				matched = true
				break
			}
		}

		if !matched {
			incorrect = append(incorrect, idx)
		}
	}

	if len(incorrect) == 0 {
		return Feedback{Correct: true, Message: "Correct!"}
	}
	return Feedback{Message: "Incorrect. Try again!", IncorrectBlanks: incorrect}
}

// gradePlacements 每个拖拽目标独立判定：放入的条目集合与正确集合一致即该目标正确；
// orderedTargets 打开时按序列逐位比对
func gradePlacements(key *model.DragDropKey, ans PlacementAnswer) Feedback {
	var incorrect []int

	for _, target := range key.Targets {
		want := key.Mappings[strconv.Itoa(target.ID)]
		got := ans.Placements[target.ID]

		if key.OrderedTargets {
			if !equalSequence(got, want) {
				incorrect = append(incorrect, target.ID)
			}
			continue
		}

		if !equalSet(got, want) {
			incorrect = append(incorrect, target.ID)
		}
	}

	if len(incorrect) == 0 {
		return Feedback{Correct: true, Message: "Correct!"}
	}
	return Feedback{Message: "Incorrect. Try again!", IncorrectTargets: incorrect}
}

// gradeOrder 逐位比对完整排列
func gradeOrder(key *model.ReorderKey, ans OrderAnswer) Feedback {
	if equalSequence(ans.Order, key.CorrectOrder) {
		return Feedback{Correct: true, Message: "Correct sequence!"}
	}
	return Feedback{Message: "Incorrect sequence. Try again!"}
}

func equalSequence(got, want []int) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func equalSet(got, want []int) bool {
	gotSet := make(map[int]bool, len(got))
	for _, id := range got {
		gotSet[id] = true
	}
	wantSet := make(map[int]bool, len(want))
	for _, id := range want {
		wantSet[id] = true
	}
	if len(gotSet) != len(wantSet) {
		return false
	}
	for id := range wantSet {
		if !gotSet[id] {
			return false
		}
	}
	return true
}
