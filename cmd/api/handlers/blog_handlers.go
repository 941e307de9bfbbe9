package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"blog-fusion/cmd/api/dto"
	"blog-fusion/cmd/api/services"
	"blog-fusion/models"
	"blog-fusion/repositories"
)

// viewerState 는 응답에 붙는 조회자 관점 필드(is_liked/is_saved)를 채운다.
// 익명 요청이면 nil 포인터로 남겨 응답에서 생략된다.
type viewerState struct {
	userID   string
	savedIDs map[string]struct{}
}

func newViewerState(c *gin.Context, authSvc *services.AuthService) (*viewerState, bool) {
	claims, hasToken, ok := optionalClaimsFromHeader(c, authSvc)
	if !ok {
		return nil, false
	}
	if !hasToken {
		return nil, true
	}

	v := &viewerState{userID: claims.UserID, savedIDs: map[string]struct{}{}}
	profile, err := authSvc.GetUserProfile(c.Request.Context(), claims.UserID)
	if err == nil {
		for _, id := range profile.SavedBlogIDs {
			v.savedIDs[id] = struct{}{}
		}
	}
	return v, true
}

func (v *viewerState) liked(b *models.Blog) *bool {
	if v == nil {
		return nil
	}
	liked := b.Engagement.LikedBy(v.userID)
	return &liked
}

func (v *viewerState) saved(blogID string) *bool {
	if v == nil {
		return nil
	}
	_, saved := v.savedIDs[blogID]
	return &saved
}

func toBlogDTO(b *models.Blog, v *viewerState) dto.BlogDTO {
	return dto.BlogDTO{
		ID:              b.ID.Hex(),
		Title:           b.Title,
		MetaDescription: b.MetaDescription,
		Category:        b.Category,
		AuthorID:        b.AuthorID,
		AuthorName:      b.AuthorName,
		CreatedAt:       b.CreatedAt,
		LikeCount:       len(b.Engagement.Likes),
		CommentCount:    len(b.Engagement.Comments),
		ShareCount:      b.Engagement.ShareCount,
		IsLiked:         v.liked(b),
		IsSaved:         v.saved(b.ID.Hex()),
	}
}

func toLikeDTOs(likes []models.Like) []dto.LikeDTO {
	out := make([]dto.LikeDTO, 0, len(likes))
	for _, l := range likes {
		out = append(out, dto.LikeDTO{UserID: l.UserID, DisplayName: l.DisplayName, LikedAt: l.LikedAt})
	}
	return out
}

func toCommentDTOs(comments []models.Comment) []dto.CommentDTO {
	out := make([]dto.CommentDTO, 0, len(comments))
	for _, cm := range comments {
		out = append(out, dto.CommentDTO{
			ID:          cm.ID,
			UserID:      cm.UserID,
			DisplayName: cm.DisplayName,
			Text:        cm.Text,
			CreatedAt:   cm.CreatedAt,
		})
	}
	return out
}

func toEngagementDTO(e models.Engagement, viewerID string) dto.EngagementDTO {
	d := dto.EngagementDTO{
		LikeCount:    len(e.Likes),
		CommentCount: len(e.Comments),
		ShareCount:   e.ShareCount,
		Likes:        toLikeDTOs(e.Likes),
		Comments:     toCommentDTOs(e.Comments),
	}
	if viewerID != "" {
		liked := e.LikedBy(viewerID)
		d.IsLiked = &liked
	}
	return d
}

// ListBlogsHandler godoc
// @Summary      블로그 피드 조회
// @Description  발행된 블로그를 최신순으로 페이징 조회합니다. 로그인한 경우 is_liked/is_saved 가 포함됩니다.
// @Tags         blogs
// @Param        page       query  int     false  "페이지 번호 (1부터 시작)"
// @Param        page_size  query  int     false  "페이지 크기 (최대 100)"
// @Param        category   query  string  false  "카테고리 필터"
// @Param        author_id  query  string  false  "작성자 필터"
// @Produce      json
// @Success      200  {object}  dto.Pagination[dto.BlogDTO]
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /blogs [get]
func ListBlogsHandler(blogSvc *services.BlogService, authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, ok := newViewerState(c, authSvc)
		if !ok {
			return
		}

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
		filter := repositories.ListFilter{
			Category: c.Query("category"),
			AuthorID: c.Query("author_id"),
		}

		blogs, total, err := blogSvc.List(c.Request.Context(), filter, page, pageSize)
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "failed_to_list_blogs"})
			return
		}

		data := make([]dto.BlogDTO, 0, len(blogs))
		for i := range blogs {
			data = append(data, toBlogDTO(&blogs[i], viewer))
		}
		c.JSON(http.StatusOK, dto.Pagination[dto.BlogDTO]{
			Data:     data,
			Page:     page,
			PageSize: pageSize,
			Total:    total,
		})
	}
}

// GetBlogHandler godoc
// @Summary      블로그 단건 조회
// @Description  블로그 한 건을 포매팅된 본문 HTML 과 함께 조회합니다.
// @Tags         blogs
// @Param        id   path   string  true  "블로그 ObjectID"
// @Produce      json
// @Success      200  {object}  dto.BlogDetailDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /blogs/{id} [get]
func GetBlogHandler(blogSvc *services.BlogService, authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, ok := newViewerState(c, authSvc)
		if !ok {
			return
		}

		blog, formatted, err := blogSvc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, services.ErrBlogNotFound) {
				c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "blog_not_found"})
				return
			}
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "failed_to_load_blog"})
			return
		}

		keywords := blog.Keywords
		if keywords == nil {
			keywords = []string{}
		}
		c.JSON(http.StatusOK, dto.BlogDetailDTO{
			ID:               blog.ID.Hex(),
			Title:            blog.Title,
			MetaDescription:  blog.MetaDescription,
			Category:         blog.Category,
			AuthorID:         blog.AuthorID,
			AuthorName:       blog.AuthorName,
			CreatedAt:        blog.CreatedAt,
			UpdatedAt:        blog.UpdatedAt,
			FormattedContent: formatted,
			Keywords:         keywords,
			Likes:            toLikeDTOs(blog.Engagement.Likes),
			Comments:         toCommentDTOs(blog.Engagement.Comments),
			ShareCount:       blog.Engagement.ShareCount,
			IsLiked:          viewer.liked(blog),
			IsSaved:          viewer.saved(blog.ID.Hex()),
		})
	}
}

// CreateBlogHandler godoc
// @Summary      블로그 발행
// @Description  새 블로그를 발행합니다. basic 플랜은 월별 발행 한도가 적용됩니다.
// @Tags         blogs
// @Security     BearerAuth
// @Accept       json
// @Param        request  body  dto.CreateBlogRequest  true  "발행할 블로그"
// @Produce      json
// @Success      201  {object}  object{id=string}
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      403  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /blogs [post]
func CreateBlogHandler(blogSvc *services.BlogService, authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := requireClaimsFromHeader(c, authSvc)
		if !ok {
			return
		}

		var req dto.CreateBlogRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_request_body"})
			return
		}

		blog, err := blogSvc.Create(c.Request.Context(), claims.UserID, claims.Name, req)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrQuotaExceeded):
				c.JSON(http.StatusForbidden, dto.ErrorResponseDTO{Error: "monthly_publish_quota_exceeded"})
			case errors.Is(err, services.ErrUserNotFound):
				c.JSON(http.StatusUnauthorized, dto.ErrorResponseDTO{Error: "user_not_found"})
			default:
				c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "failed_to_create_blog"})
			}
			return
		}

		c.JSON(http.StatusCreated, gin.H{"id": blog.ID.Hex()})
	}
}

// UpdateBlogHandler godoc
// @Summary      블로그 수정
// @Description  작성자 본인의 블로그를 수정합니다. 요청에 없는 필드는 보존됩니다.
// @Tags         blogs
// @Security     BearerAuth
// @Accept       json
// @Param        id       path  string                 true  "블로그 ObjectID"
// @Param        request  body  dto.UpdateBlogRequest  true  "수정할 필드"
// @Produce      json
// @Success      200  {object}  object{id=string,updated_at=string}
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      403  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /blogs/{id} [put]
func UpdateBlogHandler(blogSvc *services.BlogService, authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := requireClaimsFromHeader(c, authSvc)
		if !ok {
			return
		}

		var req dto.UpdateBlogRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_request_body"})
			return
		}

		blog, err := blogSvc.Update(c.Request.Context(), c.Param("id"), claims.UserID, req)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrBlogNotFound):
				c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "blog_not_found"})
			case errors.Is(err, services.ErrNotOwner):
				c.JSON(http.StatusForbidden, dto.ErrorResponseDTO{Error: "not_blog_owner"})
			default:
				c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "failed_to_update_blog"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"id": blog.ID.Hex(), "updated_at": blog.UpdatedAt})
	}
}

// DeleteBlogHandler godoc
// @Summary      블로그 삭제
// @Description  작성자 본인의 블로그를 삭제합니다.
// @Tags         blogs
// @Security     BearerAuth
// @Param        id   path   string  true  "블로그 ObjectID"
// @Produce      json
// @Success      204  {string}  string  "콘텐츠 없음"
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      403  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /blogs/{id} [delete]
func DeleteBlogHandler(blogSvc *services.BlogService, authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := requireClaimsFromHeader(c, authSvc)
		if !ok {
			return
		}

		err := blogSvc.Delete(c.Request.Context(), c.Param("id"), claims.UserID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrBlogNotFound):
				c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "blog_not_found"})
			case errors.Is(err, services.ErrNotOwner):
				c.JSON(http.StatusForbidden, dto.ErrorResponseDTO{Error: "not_blog_owner"})
			default:
				c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "failed_to_delete_blog"})
			}
			return
		}

		c.Status(http.StatusNoContent)
	}
}
