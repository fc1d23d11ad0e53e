package controller

import (
	"encoding/json"
	"errors"
	"lingo_learn_backend/internal/model"
	"lingo_learn_backend/internal/service"
	"lingo_learn_backend/internal/util"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionSvc   *service.QuestionService
	SubmissionSvc *service.SubmissionService
}

func NewQuestionController(questionSvc *service.QuestionService, submissionSvc *service.SubmissionService) *QuestionController {
	return &QuestionController{
		QuestionSvc:   questionSvc,
		SubmissionSvc: submissionSvc,
	}
}

// SubmitRequest 答题提交请求体
// swagger:model SubmitRequest
type SubmitRequest struct {
	Answer json.RawMessage `json:"answer" binding:"required"`
	Lesson uint            `json:"lesson" binding:"required"`
}

type submitResponse struct {
	ID                  string                      `json:"id"`
	Question            uint                        `json:"question"`
	Lesson              uint                        `json:"lesson"`
	UserAnswer          json.RawMessage             `json:"user_answer"`
	IsCorrect           bool                        `json:"is_correct"`
	JemsEarned          int                         `json:"jems_earned"`
	XPEarned            int                         `json:"xp_earned"`
	CreatedAt           time.Time                   `json:"created_at"`
	Feedback            service.Feedback            `json:"feedback"`
	GamificationUpdates service.GamificationUpdates `json:"gamification_updates"`
}

// @Summary 获取题目详情
// @Tags 题目
// @Produce json
// @Security BearerAuth
// @Param id path int true "题目ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/questions/{id} [get]
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	// 教师/管理员可见答案键
	staff := user.Role == model.Teacher || user.Role == model.Admin

	view, err := c.QuestionSvc.Get(ctx.Request.Context(), uint(id), staff)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, view)
}

// @Summary 查询进入复习环节的题目
// @Tags 题目
// @Produce json
// @Security BearerAuth
// @Param ids query string true "题目ID列表，逗号分隔"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/review/questions [get]
func (c *QuestionController) GetReviewQuestions(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	idsParam := ctx.Query("ids")
	if idsParam == "" {
		util.BadRequest(ctx, "ids is required")
		return
	}

	var ids []uint
	for _, part := range strings.Split(idsParam, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || id <= 0 {
			util.BadRequest(ctx, "invalid ids")
			return
		}
		ids = append(ids, uint(id))
	}

	staff := user.Role == model.Teacher || user.Role == model.Admin

	views, err := c.QuestionSvc.ReviewViews(ctx.Request.Context(), ids, staff)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, views)
}

// @Summary 提交答案并结算奖励
// @Tags 题目
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "题目ID"
// @Param body body SubmitRequest true "答案与课程"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/questions/{id}/submit [post]
func (c *QuestionController) SubmitAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var req SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.SubmissionSvc.Submit(user.UserID, uint(id), req.Lesson, req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuestionNotFound):
			util.NotFound(ctx)
		case util.IsShapeError(err):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, submitResponse{
		ID:                  result.Attempt.ID,
		Question:            result.Attempt.QuestionID,
		Lesson:              result.Attempt.LessonID,
		UserAnswer:          result.Attempt.UserAnswer,
		IsCorrect:           result.Attempt.IsCorrect,
		JemsEarned:          result.Attempt.JemsEarned,
		XPEarned:            result.Attempt.XPEarned,
		CreatedAt:           result.Attempt.CreatedAt,
		Feedback:            result.Feedback,
		GamificationUpdates: result.GamificationUpdates,
	})
}

// @Summary 当前用户对某题的历史作答
// @Tags 题目
// @Produce json
// @Security BearerAuth
// @Param id path int true "题目ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/questions/{id}/attempts [get]
func (c *QuestionController) ListAttempts(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	attempts, err := c.SubmissionSvc.ListAttempts(user.UserID, uint(id))
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, attempts)
}
