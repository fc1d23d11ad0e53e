package service

import (
	"bytes"
	"encoding/json"
	"lingo_learn_backend/internal/model"
	"lingo_learn_backend/internal/util"
	"strconv"
)

// NormalizedAnswer 原始提交经校验后的类型化表示，判题逻辑只接受这里的封闭集合
type NormalizedAnswer interface {
	normalizedAnswer()
}

// ChoiceAnswer 选择题答案：提交的选项ID列表
type ChoiceAnswer struct {
	ChoiceIDs []int `json:"choiceIds"`
}

func (ChoiceAnswer) normalizedAnswer() {}

// BlankAnswer 填空题答案：下标对齐的作答内容，缺失的空位为空字符串
type BlankAnswer struct {
	Blanks []string `json:"blanks"`
}

func (BlankAnswer) normalizedAnswer() {}

// PlacementAnswer 拖拽题答案：目标ID -> 放入的条目ID序列
type PlacementAnswer struct {
	Placements map[int][]int `json:"placements"`
}

func (PlacementAnswer) normalizedAnswer() {}

// OrderAnswer 排序题答案：条目ID的完整排列
type OrderAnswer struct {
	Order []int `json:"order"`
}

func (OrderAnswer) normalizedAnswer() {}

// unknownItemID 拖拽题中无法解析的条目ID按此哨兵处理，判题时必然不匹配。
// 条目ID是载荷而非结构，提交里出现已下架条目不算格式错误。
const unknownItemID = -1

// NormalizeAnswer 将松散类型的原始提交转换为对应题型的答案值。
// 结构性标识（选项集合、空位下标、拖拽目标、排序全排列）校验失败返回 ShapeError。
func NormalizeAnswer(key model.AnswerKey, raw json.RawMessage) (NormalizedAnswer, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var value interface{}
	if err := dec.Decode(&value); err != nil {
		return nil, util.InvalidAnswerShape("answer is not valid JSON: %v", err)
	}

	switch k := key.(type) {
	case *model.MultipleChoiceKey:
		return normalizeChoices(k, value)
	case *model.FillBlankKey:
		return normalizeBlanks(k, value)
	case *model.DragDropKey:
		return normalizePlacements(k, value)
	case *model.ReorderKey:
		return normalizeOrder(k, value)
	}
	return nil, util.InvalidAnswerShape("unsupported question type")
}

func normalizeChoices(key *model.MultipleChoiceKey, value interface{}) (NormalizedAnswer, error) {
	items, ok := value.([]interface{})
	if !ok {
		return nil, util.InvalidAnswerShape("answer must be a list of choice IDs")
	}

	if !key.IsMultipleSelection && len(items) > 1 {
		return nil, util.InvalidAnswerShape("only one answer allowed for this question")
	}

	known := make(map[int]bool, len(key.Choices))
	for _, c := range key.Choices {
		known[c.ID] = true
	}

	ids := make([]int, 0, len(items))
	for _, item := range items {
		id, ok := util.ToInt(item)
		if !ok {
			return nil, util.InvalidAnswerShape("invalid choice ID: %v", item)
		}
		if !known[id] {
			return nil, util.InvalidAnswerShape("choice %d does not belong to this question", id)
		}
		ids = append(ids, id)
	}

	return ChoiceAnswer{ChoiceIDs: ids}, nil
}

func normalizeBlanks(key *model.FillBlankKey, value interface{}) (NormalizedAnswer, error) {
	entries, ok := value.(map[string]interface{})
	if !ok {
		return nil, util.InvalidAnswerShape("answer must be a mapping from blank index to text")
	}

	blanks := make([]string, len(key.Blanks))
	for idxStr, v := range entries {
		idx, err := strconv.Atoi(idxStr)
		if err != nil {
			return nil, util.InvalidAnswerShape("invalid blank index format: %s", idxStr)
		}
		if idx < 0 || idx >= len(key.Blanks) {
			return nil, util.InvalidAnswerShape("invalid blank index: %d", idx)
		}
		text, ok := v.(string)
		if !ok {
			return nil, util.InvalidAnswerShape("answer for blank %d must be a string", idx)
		}
		blanks[idx] = text
	}

	return BlankAnswer{Blanks: blanks}, nil
}

func normalizePlacements(key *model.DragDropKey, value interface{}) (NormalizedAnswer, error) {
	entries, ok := value.(map[string]interface{})
	if !ok {
		return nil, util.InvalidAnswerShape("answer must be a mapping from target ID to item IDs")
	}

	known := make(map[int]bool, len(key.Targets))
	for _, t := range key.Targets {
		known[t.ID] = true
	}

	placements := make(map[int][]int, len(entries))
	for targetStr, v := range entries {
		targetID, ok := util.ToInt(targetStr)
		if !ok || !known[targetID] {
			return nil, util.InvalidAnswerShape("invalid target ID: %s", targetStr)
		}

		// 单个标量按单元素序列处理
		items, ok := v.([]interface{})
		if !ok {
			items = []interface{}{v}
		}

		ids := make([]int, 0, len(items))
		for _, item := range items {
			if id, ok := util.ToInt(item); ok {
				ids = append(ids, id)
			} else {
				ids = append(ids, unknownItemID)
			}
		}
		placements[targetID] = ids
	}

	return PlacementAnswer{Placements: placements}, nil
}

func normalizeOrder(key *model.ReorderKey, value interface{}) (NormalizedAnswer, error) {
	items, ok := value.([]interface{})
	if !ok {
		return nil, util.InvalidAnswerShape("answer must be a list of item IDs in order")
	}

	expected := make(map[int]bool, len(key.Items))
	for _, item := range key.Items {
		expected[item.ID] = true
	}

	if len(items) != len(key.Items) {
		return nil, util.InvalidAnswerShape("answer must contain every item exactly once")
	}

	seen := make(map[int]bool, len(items))
	order := make([]int, 0, len(items))
	for _, item := range items {
		id, ok := util.ToInt(item)
		if !ok {
			return nil, util.InvalidAnswerShape("invalid item ID: %v", item)
		}
		if !expected[id] {
			return nil, util.InvalidAnswerShape("item %d does not belong to this question", id)
		}
		if seen[id] {
			return nil, util.InvalidAnswerShape("item %d appears more than once", id)
		}
		seen[id] = true
		order = append(order, id)
	}

	return OrderAnswer{Order: order}, nil
}
