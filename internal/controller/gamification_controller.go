package controller

import (
	"errors"
	"lingo_learn_backend/internal/service"
	"lingo_learn_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type GamificationController struct {
	Service *service.GamificationService
}

func NewGamificationController(svc *service.GamificationService) *GamificationController {
	return &GamificationController{Service: svc}
}

// @Summary 当前用户的游戏化状态
// @Tags 游戏化
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/gamification/summary [get]
func (c *GamificationController) GetSummary(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	summary, err := c.Service.Summary(user.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, summary)
}

// @Summary 经验值排行榜
// @Tags 游戏化
// @Produce json
// @Security BearerAuth
// @Param limit query int false "返回条数，默认100"
// @Success 200 {object} util.Response
// @Router /api/gamification/leaderboard [get]
func (c *GamificationController) GetLeaderboard(ctx *gin.Context) {
	limit := 100
	if limitStr := ctx.Query("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil {
			limit = n
		}
	}

	entries, err := c.Service.Leaderboard(ctx.Request.Context(), limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, entries)
}

// @Summary 当前用户的排名
// @Tags 游戏化
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/gamification/my-rank [get]
func (c *GamificationController) GetMyRank(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	rank, err := c.Service.MyRank(user.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"rank": rank})
}
