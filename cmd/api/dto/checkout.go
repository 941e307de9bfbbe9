package dto

// CheckoutRequest 는 유료 플랜 결제 세션 생성 요청 바디이다.
type CheckoutRequest struct {
	Plan string `json:"plan" binding:"required" example:"premium"`
}

// CheckoutResponse 는 생성된 Stripe 결제 세션이다. URL 은 호스티드
// 결제 페이지 주소이다.
type CheckoutResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}
