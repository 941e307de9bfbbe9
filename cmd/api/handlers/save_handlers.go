package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-fusion/cmd/api/dto"
	"blog-fusion/cmd/api/services"
)

// ToggleSaveHandler godoc
// @Summary      블로그 저장 토글
// @Description  현재 로그인한 사용자의 저장(북마크) 상태를 토글합니다.
// @Tags         saves
// @Security     BearerAuth
// @Param        id   path   string  true  "블로그 ObjectID"
// @Produce      json
// @Success      200  {object}  object{saved=bool}
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /blogs/{id}/save [post]
func ToggleSaveHandler(saveSvc *services.SaveService, authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := requireClaimsFromHeader(c, authSvc)
		if !ok {
			return
		}

		saved, err := saveSvc.Toggle(c.Request.Context(), claims.UserID, c.Param("id"))
		if err != nil {
			switch {
			case errors.Is(err, services.ErrBlogNotFound):
				c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "blog_not_found"})
			case errors.Is(err, services.ErrUserNotFound):
				c.JSON(http.StatusUnauthorized, dto.ErrorResponseDTO{Error: "user_not_found"})
			default:
				c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "failed_to_toggle_save"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"saved": saved})
	}
}

// UnsaveBlogHandler godoc
// @Summary      블로그 저장 해제
// @Description  현재 로그인한 사용자의 저장 목록에서 블로그를 제거합니다. 목록에 없어도 성공으로 처리합니다.
// @Tags         saves
// @Security     BearerAuth
// @Param        id   path   string  true  "블로그 ObjectID"
// @Produce      json
// @Success      204  "No Content"
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /blogs/{id}/save [delete]
func UnsaveBlogHandler(saveSvc *services.SaveService, authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := requireClaimsFromHeader(c, authSvc)
		if !ok {
			return
		}

		if err := saveSvc.Unsave(c.Request.Context(), claims.UserID, c.Param("id")); err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				c.JSON(http.StatusUnauthorized, dto.ErrorResponseDTO{Error: "user_not_found"})
				return
			}
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "failed_to_unsave_blog"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// ListSavedBlogsHandler godoc
// @Summary      저장한 블로그 목록 조회
// @Description  현재 로그인한 사용자가 저장한 블로그를 피드 카드 형식으로 조회합니다. 삭제된 블로그는 건너뜁니다.
// @Tags         saves
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  object{data=[]dto.BlogDTO}
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /blogs/saved [get]
func ListSavedBlogsHandler(saveSvc *services.SaveService, authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := requireClaimsFromHeader(c, authSvc)
		if !ok {
			return
		}

		blogs, err := saveSvc.ListSaved(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				c.JSON(http.StatusUnauthorized, dto.ErrorResponseDTO{Error: "user_not_found"})
				return
			}
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "failed_to_list_saved_blogs"})
			return
		}

		saved := true
		data := make([]dto.BlogDTO, 0, len(blogs))
		for i := range blogs {
			d := toBlogDTO(&blogs[i], &viewerState{userID: claims.UserID})
			d.IsSaved = &saved
			data = append(data, d)
		}
		c.JSON(http.StatusOK, gin.H{"data": data})
	}
}
