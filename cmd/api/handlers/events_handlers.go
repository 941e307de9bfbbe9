package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-fusion/cmd/api/dto"
	"blog-fusion/cmd/api/services"
	"blog-fusion/repositories"
)

// StreamEngagementHandler godoc
// @Summary      블로그 참여 상태 실시간 스트림
// @Description  지정된 블로그의 참여(좋아요/댓글/공유) 변경을 SSE 로 스트리밍합니다. 연결 직후 현재 상태가 한 건 전송됩니다.
// @Tags         engagement
// @Param        id   path   string  true  "블로그 ObjectID"
// @Produce      text/event-stream
// @Success      200  {string}  string  "engagement 이벤트 스트림"
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /blogs/{id}/events [get]
func StreamEngagementHandler(blogSvc *services.BlogService, watcher *repositories.BlogWatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		blogID := c.Param("id")

		blog, _, err := blogSvc.Get(c.Request.Context(), blogID)
		if err != nil {
			c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "blog_not_found"})
			return
		}

		updates, cancel := watcher.Subscribe(blogID)
		defer cancel()

		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")

		// 연결 직후 현재 상태를 먼저 보낸다.
		writeEngagementEvent(c, toEngagementDTO(blog.Engagement, ""))

		for {
			select {
			case <-c.Request.Context().Done():
				return
			case u, ok := <-updates:
				if !ok {
					return
				}
				writeEngagementEvent(c, toEngagementDTO(u.Engagement, ""))
			}
		}
	}
}

func writeEngagementEvent(c *gin.Context, d dto.EngagementDTO) {
	payload, err := json.Marshal(d)
	if err != nil {
		return
	}
	c.SSEvent("engagement", string(payload))
	c.Writer.Flush()
}
