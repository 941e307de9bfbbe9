package services

import "errors"

// 서비스 계층 공통 에러. 핸들러는 errors.Is 로 분기해 상태 코드를 결정한다.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrBlogNotFound   = errors.New("blog not found")
	ErrNotOwner       = errors.New("not the blog owner")
	ErrQuotaExceeded  = errors.New("monthly publish quota exceeded")
	ErrLLMUnavailable = errors.New("llm quota exhausted")
	ErrStoreConflict  = errors.New("storage conflict, retry later")
)
