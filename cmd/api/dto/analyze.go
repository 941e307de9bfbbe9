package dto

// AnalyzeRequest 는 AI 탐지/휴머나이즈 분석 요청 바디이다.
// Keywords 는 휴머나이즈 중 보존할 키워드이고, References 가 있으면
// 표절 검사용 원문 수집에 사용된다.
type AnalyzeRequest struct {
	Content    string   `json:"content" binding:"required,min=50"`
	Keywords   []string `json:"keywords"`
	References []string `json:"references"`
}

// PlagiarismHitDTO 는 유사도가 임계값을 넘은 출처 하나를 나타낸다.
type PlagiarismHitDTO struct {
	URL        string  `json:"url"`
	Title      string  `json:"title"`
	Similarity float64 `json:"similarity"`
}

// AnalyzeResponse 는 분석 결과이다.
// AIDetectionOriginal 은 입력 텍스트의 AI 탐지 점수(10..100),
// AIDetectionHumanized 는 휴머나이즈 반복 후의 점수이다.
type AnalyzeResponse struct {
	Status               string             `json:"status"`
	HumanizedContent     string             `json:"humanized_content"`
	AIDetectionOriginal  int                `json:"ai_detection_original"`
	AIDetectionHumanized int                `json:"ai_detection_humanized"`
	Rounds               int                `json:"rounds"`
	SourcesChecked       int                `json:"sources_checked"`
	PlagiarismHits       []PlagiarismHitDTO `json:"plagiarism_hits"`
	ElapsedMs            int64              `json:"elapsed_ms"`
}
