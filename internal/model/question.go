package model

import (
	"encoding/json"
	"fmt"
)

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	FillBlank      QuestionType = "fill_blank"
	DragDrop       QuestionType = "drag_drop"
	Reorder        QuestionType = "reorder"
)

// Question 题目基础信息，Payload 按 Type 存放对应题型的答案键
// swagger:model Question
type Question struct {
	BaseModel
	Type            QuestionType    `gorm:"size:30;not null;index" json:"type"`
	Difficulty      int             `gorm:"default:1" json:"difficulty"` // 1=easy 2=medium 3=hard
	Jems            int             `gorm:"default:10" json:"jems"`
	XPAvailable     int             `gorm:"default:50" json:"xpAvailable"`
	Explanation     string          `gorm:"type:text" json:"explanation"`
	SelectForReview bool            `gorm:"default:false" json:"selectForReview"`
	Payload         json.RawMessage `gorm:"type:json" json:"-"`
}

func (Question) TableName() string {
	return "questions"
}

// AnswerKey 四种题型答案键的封闭集合
type AnswerKey interface {
	questionKey()
}

type Choice struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	Order     int    `json:"order"`
	IsCorrect bool   `json:"isCorrect"`
}

type MultipleChoiceKey struct {
	QuestionText        string   `json:"questionText"`
	IsMultipleSelection bool     `json:"isMultipleSelection"`
	Choices             []Choice `json:"choices"`
}

func (*MultipleChoiceKey) questionKey() {}

// CorrectChoiceIDs 返回正确选项的ID集合
func (k *MultipleChoiceKey) CorrectChoiceIDs() map[int]bool {
	ids := make(map[int]bool)
	for _, c := range k.Choices {
		if c.IsCorrect {
			ids[c.ID] = true
		}
	}
	return ids
}

type FillBlankKey struct {
	QuestionText  string     `json:"questionText"` // 使用 {blank} 标记空位
	CaseSensitive bool       `json:"caseSensitive"`
	AllowTyping   bool       `json:"allowTyping"`
	Blanks        [][]string `json:"blanks"` // 下标即空位序号，每个空位可有多个可接受答案
}

func (*FillBlankKey) questionKey() {}

type DragItem struct {
	ID    int    `json:"id"`
	Text  string `json:"text"`
	Order int    `json:"order"`
}

type DragDropKey struct {
	Instructions   string           `json:"instructions"`
	OrderedTargets bool             `json:"orderedTargets"` // 目标内条目顺序是否计分，默认不计
	Items          []DragItem       `json:"draggableItems"`
	Targets        []DragItem       `json:"dropTargets"`
	Mappings       map[string][]int `json:"mappings"` // 目标ID(字符串) -> 正确条目ID列表
}

func (*DragDropKey) questionKey() {}

type ReorderEntry struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

type ReorderKey struct {
	Instructions string         `json:"instructions"`
	Items        []ReorderEntry `json:"items"`
	CorrectOrder []int          `json:"correctOrder"`
}

func (*ReorderKey) questionKey() {}

// DecodeKey 按题型解码 Payload，新增题型时此处的 switch 需要同步扩展
func (q *Question) DecodeKey() (AnswerKey, error) {
	switch q.Type {
	case MultipleChoice:
		var key MultipleChoiceKey
		if err := json.Unmarshal(q.Payload, &key); err != nil {
			return nil, err
		}
		return &key, nil
	case FillBlank:
		var key FillBlankKey
		if err := json.Unmarshal(q.Payload, &key); err != nil {
			return nil, err
		}
		return &key, nil
	case DragDrop:
		var key DragDropKey
		if err := json.Unmarshal(q.Payload, &key); err != nil {
			return nil, err
		}
		return &key, nil
	case Reorder:
		var key ReorderKey
		if err := json.Unmarshal(q.Payload, &key); err != nil {
			return nil, err
		}
		return &key, nil
	}
	return nil, fmt.Errorf("unsupported question type: %s", q.Type)
}
