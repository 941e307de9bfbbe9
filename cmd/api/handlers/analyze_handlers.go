package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-fusion/cmd/api/dto"
	"blog-fusion/cmd/api/services"
)

// AnalyzeHandler godoc
// @Summary      본문 AI 탐지/휴머나이즈 분석
// @Description  입력 텍스트의 AI 탐지 점수를 매기고 휴머나이즈를 반복한 뒤, 참고자료 원문과의 유사도를 검사합니다. LLM 일일 한도 소진 시 휴머나이즈는 생략됩니다.
// @Tags         analyze
// @Security     BearerAuth
// @Accept       json
// @Param        request  body  dto.AnalyzeRequest  true  "분석할 본문과 참고자료 URL"
// @Produce      json
// @Success      200  {object}  dto.AnalyzeResponse
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /analyze [post]
func AnalyzeHandler(analyzerSvc *services.AnalyzerService, authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireClaimsFromHeader(c, authSvc); !ok {
			return
		}

		var req dto.AnalyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_request_body"})
			return
		}

		resp, err := analyzerSvc.Analyze(c.Request.Context(), req)
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "failed_to_analyze"})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GenerateBlogHandler godoc
// @Summary      AI 블로그 초안 생성
// @Description  주제/세부사항/키워드/참고자료를 바탕으로 블로그 초안을 생성합니다.
// @Tags         generate
// @Security     BearerAuth
// @Accept       json
// @Param        request  body  dto.GenerateBlogRequest  true  "초안 생성 입력"
// @Produce      json
// @Success      200  {object}  dto.GenerateBlogResponse
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      429  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /generate-blog [post]
func GenerateBlogHandler(generatorSvc *services.GeneratorService, authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireClaimsFromHeader(c, authSvc); !ok {
			return
		}

		var req dto.GenerateBlogRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_request_body"})
			return
		}

		resp, err := generatorSvc.Generate(c.Request.Context(), req)
		if err != nil {
			if errors.Is(err, services.ErrLLMUnavailable) {
				c.JSON(http.StatusTooManyRequests, dto.ErrorResponseDTO{Error: "llm_quota_exhausted"})
				return
			}
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "failed_to_generate_blog"})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}
