package service

import (
	"context"
	"encoding/json"
	"fmt"
	"lingo_learn_backend/internal/model"
	"lingo_learn_backend/internal/repository"
	"lingo_learn_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const questionCacheTTL = 5 * time.Minute

// QuestionService 题目读取与按角色序列化，发布后的题目不可变，读多写少走缓存
type QuestionService struct {
	Repo  *repository.QuestionRepository
	Redis *redis.Client
}

func NewQuestionService(repo *repository.QuestionRepository, rdb *redis.Client) *QuestionService {
	return &QuestionService{Repo: repo, Redis: rdb}
}

// ChoiceView 选项视图，isCorrect 仅教师/管理员可见
type ChoiceView struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	Order     int    `json:"order"`
	IsCorrect *bool  `json:"isCorrect,omitempty"`
}

// QuestionView 按题型序列化的题目视图，答案键字段仅教师/管理员可见
type QuestionView struct {
	ID              uint               `json:"id"`
	Type            model.QuestionType `json:"type"`
	Difficulty      int                `json:"difficulty"`
	Jems            int                `json:"jems"`
	XPAvailable     int                `json:"xpAvailable"`
	Explanation     string             `json:"explanation"`
	SelectForReview bool               `json:"selectForReview"`

	// multiple_choice / fill_blank
	QuestionText        string       `json:"questionText,omitempty"`
	IsMultipleSelection *bool        `json:"isMultipleSelection,omitempty"`
	Choices             []ChoiceView `json:"choices,omitempty"`
	CorrectAnswers      []int        `json:"correctAnswers,omitempty"`

	// fill_blank
	CaseSensitive *bool      `json:"caseSensitive,omitempty"`
	AllowTyping   *bool      `json:"allowTyping,omitempty"`
	Answers       [][]string `json:"answers,omitempty"`

	// drag_drop / reorder
	Instructions    string               `json:"instructions,omitempty"`
	DraggableItems  []model.DragItem     `json:"draggableItems,omitempty"`
	DropTargets     []model.DragItem     `json:"dropTargets,omitempty"`
	CorrectMappings map[string][]int     `json:"correctMappings,omitempty"`
	Items           []model.ReorderEntry `json:"items,omitempty"`
	CorrectOrder    []int                `json:"correctOrder,omitempty"`
}

// Get 读取题目视图，staff 视图包含答案键。缓存未命中时回源数据库。
func (s *QuestionService) Get(ctx context.Context, id uint, staff bool) (*QuestionView, error) {
	cacheKey := fmt.Sprintf("question:view:%d:staff=%t", id, staff)

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var view QuestionView
			if err := json.Unmarshal([]byte(cached), &view); err == nil {
				return &view, nil
			}
		}
	}

	question, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	view, err := s.buildView(question, staff)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(view); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, data, questionCacheTTL).Err(); err != nil {
				logger.Log.Debug("question cache write failed", zap.Uint("id", id), zap.Error(err))
			}
		}
	}

	return view, nil
}

// ReviewViews 返回指定题目中标记进入复习环节的子集视图
func (s *QuestionService) ReviewViews(ctx context.Context, ids []uint, staff bool) ([]*QuestionView, error) {
	questions, err := s.Repo.FindForReviewByIDs(ids)
	if err != nil {
		return nil, err
	}

	views := make([]*QuestionView, 0, len(questions))
	for i := range questions {
		view, err := s.buildView(&questions[i], staff)
		if err != nil {
			logger.Log.Warn("skipping question with undecodable payload",
				zap.Uint("id", questions[i].ID), zap.Error(err))
			continue
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *QuestionService) buildView(q *model.Question, staff bool) (*QuestionView, error) {
	key, err := q.DecodeKey()
	if err != nil {
		return nil, err
	}

	view := &QuestionView{
		ID:              q.ID,
		Type:            q.Type,
		Difficulty:      q.Difficulty,
		Jems:            q.Jems,
		XPAvailable:     q.XPAvailable,
		Explanation:     q.Explanation,
		SelectForReview: q.SelectForReview,
	}

	switch k := key.(type) {
	case *model.MultipleChoiceKey:
		view.QuestionText = k.QuestionText
		view.IsMultipleSelection = &k.IsMultipleSelection
		for _, c := range k.Choices {
			cv := ChoiceView{ID: c.ID, Text: c.Text, Order: c.Order}
			if staff {
				isCorrect := c.IsCorrect
				cv.IsCorrect = &isCorrect
				if c.IsCorrect {
					// 按选项声明顺序输出，保证缓存视图序列化稳定
					view.CorrectAnswers = append(view.CorrectAnswers, c.ID)
				}
			}
			view.Choices = append(view.Choices, cv)
		}
	case *model.FillBlankKey:
		view.QuestionText = k.QuestionText
		view.CaseSensitive = &k.CaseSensitive
		view.AllowTyping = &k.AllowTyping
		if staff {
			view.Answers = k.Blanks
		}
	case *model.DragDropKey:
		view.Instructions = k.Instructions
		view.DraggableItems = k.Items
		view.DropTargets = k.Targets
		if staff {
			view.CorrectMappings = k.Mappings
		}
	case *model.ReorderKey:
		view.Instructions = k.Instructions
		view.Items = k.Items
		if staff {
			view.CorrectOrder = k.CorrectOrder
		}
	}

	return view, nil
}
