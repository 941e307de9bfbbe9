package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-fusion/cmd/api/dto"
	"blog-fusion/cmd/api/services"
)

func writeEngagementError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBlogNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "blog_not_found"})
	case errors.Is(err, services.ErrStoreConflict):
		c.JSON(http.StatusConflict, dto.ErrorResponseDTO{Error: "engagement_conflict"})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "failed_to_update_engagement"})
	}
}

// ToggleLikeHandler godoc
// @Summary      블로그 좋아요 토글
// @Description  현재 로그인한 사용자의 좋아요 상태를 토글하고 최신 참여 집계를 반환합니다.
// @Tags         engagement
// @Security     BearerAuth
// @Param        id   path   string  true  "블로그 ObjectID"
// @Produce      json
// @Success      200  {object}  dto.EngagementDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Failure      409  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /blogs/{id}/like [post]
func ToggleLikeHandler(blogSvc *services.BlogService, authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := requireClaimsFromHeader(c, authSvc)
		if !ok {
			return
		}

		e, err := blogSvc.ToggleLike(c.Request.Context(), c.Param("id"), claims.UserID, claims.Name)
		if err != nil {
			writeEngagementError(c, err)
			return
		}
		c.JSON(http.StatusOK, toEngagementDTO(e, claims.UserID))
	}
}

// AddCommentHandler godoc
// @Summary      블로그 댓글 작성
// @Description  블로그에 댓글을 추가하고 최신 참여 집계를 반환합니다. 빈 댓글은 거부됩니다.
// @Tags         engagement
// @Security     BearerAuth
// @Accept       json
// @Param        id       path  string              true  "블로그 ObjectID"
// @Param        request  body  dto.CommentRequest  true  "댓글 본문"
// @Produce      json
// @Success      201  {object}  dto.EngagementDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Failure      409  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /blogs/{id}/comments [post]
func AddCommentHandler(blogSvc *services.BlogService, authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := requireClaimsFromHeader(c, authSvc)
		if !ok {
			return
		}

		var req dto.CommentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_request_body"})
			return
		}

		e, err := blogSvc.AddComment(c.Request.Context(), c.Param("id"), claims.UserID, claims.Name, req.Text)
		if err != nil {
			if errors.Is(err, services.ErrBlogNotFound) || errors.Is(err, services.ErrStoreConflict) {
				writeEngagementError(c, err)
				return
			}
			// 공백 댓글 등 유효성 실패
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_comment"})
			return
		}
		c.JSON(http.StatusCreated, toEngagementDTO(e, claims.UserID))
	}
}

// ShareBlogHandler godoc
// @Summary      블로그 공유 카운트 증가
// @Description  공유 카운터를 1 증가시킵니다. 익명 요청도 허용됩니다.
// @Tags         engagement
// @Param        id   path   string  true  "블로그 ObjectID"
// @Produce      json
// @Success      200  {object}  dto.EngagementDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Failure      409  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /blogs/{id}/share [post]
func ShareBlogHandler(blogSvc *services.BlogService, authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _, ok := optionalClaimsFromHeader(c, authSvc)
		if !ok {
			return
		}

		e, err := blogSvc.Share(c.Request.Context(), c.Param("id"), claims.UserID, claims.Name)
		if err != nil {
			writeEngagementError(c, err)
			return
		}
		c.JSON(http.StatusOK, toEngagementDTO(e, claims.UserID))
	}
}
