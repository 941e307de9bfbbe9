package dto

// GenerateBlogRequest 는 AI 블로그 초안 생성 요청 바디이다. 모든 필드가 필수이다.
// Audience 와 Country 는 "{audience} in {country}" 형태로 프롬프트의
// 세부사항이 되고, URLs 는 참고자료로 쓰인다.
type GenerateBlogRequest struct {
	Topic    string   `json:"topic" binding:"required"`
	Country  string   `json:"country" binding:"required"`
	Audience string   `json:"audience" binding:"required"`
	Keywords []string `json:"keywords" binding:"required"`
	URLs     []string `json:"urls" binding:"required"`
}

// GenerateBlogResponse 는 생성된 초안이다. Blog 는 마크다운 마커가 포함된
// 원문 단계의 텍스트로, 발행 시 포매터를 거쳐 HTML 로 변환된다.
type GenerateBlogResponse struct {
	Blog string `json:"blog"`
}
