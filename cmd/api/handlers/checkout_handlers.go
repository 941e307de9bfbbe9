package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-fusion/billing"
	"blog-fusion/cmd/api/dto"
	"blog-fusion/cmd/api/services"
)

// CreateCheckoutHandler godoc
// @Summary      구독 결제 세션 생성
// @Description  유료 플랜(medium/premium) 결제를 위한 Stripe 호스티드 결제 페이지 URL 을 생성합니다.
// @Tags         billing
// @Security     BearerAuth
// @Accept       json
// @Param        request  body  dto.CheckoutRequest  true  "결제할 플랜"
// @Produce      json
// @Success      200  {object}  dto.CheckoutResponse
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /create-checkout-session [post]
func CreateCheckoutHandler(billingSvc *services.BillingService, authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := requireClaimsFromHeader(c, authSvc)
		if !ok {
			return
		}

		var req dto.CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_request_body"})
			return
		}

		sess, err := billingSvc.CreateCheckout(c.Request.Context(), claims.UserID, req.Plan)
		if err != nil {
			switch {
			case errors.Is(err, billing.ErrUnknownPlan):
				c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "unknown_plan"})
			case errors.Is(err, billing.ErrNotBillable):
				c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "plan_not_billable"})
			case errors.Is(err, services.ErrUserNotFound):
				c.JSON(http.StatusUnauthorized, dto.ErrorResponseDTO{Error: "user_not_found"})
			default:
				c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "failed_to_create_checkout"})
			}
			return
		}

		c.JSON(http.StatusOK, dto.CheckoutResponse{SessionID: sess.ID, URL: sess.URL})
	}
}

// ApplyPlanHandler godoc
// @Summary      구독 플랜 반영
// @Description  결제 완료 후 사용자의 구독 플랜을 변경합니다.
// @Tags         billing
// @Security     BearerAuth
// @Accept       json
// @Param        request  body  dto.CheckoutRequest  true  "반영할 플랜"
// @Produce      json
// @Success      200  {object}  dto.MessageResponseDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /billing/plan [put]
func ApplyPlanHandler(billingSvc *services.BillingService, authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := requireClaimsFromHeader(c, authSvc)
		if !ok {
			return
		}

		var req dto.CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_request_body"})
			return
		}

		if err := billingSvc.ApplyPlan(c.Request.Context(), claims.UserID, req.Plan); err != nil {
			switch {
			case errors.Is(err, billing.ErrUnknownPlan):
				c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "unknown_plan"})
			case errors.Is(err, services.ErrUserNotFound):
				c.JSON(http.StatusUnauthorized, dto.ErrorResponseDTO{Error: "user_not_found"})
			default:
				c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "failed_to_apply_plan"})
			}
			return
		}

		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "plan_updated"})
	}
}
