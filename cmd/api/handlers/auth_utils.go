package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"blog-fusion/cmd/api/auth"
	"blog-fusion/cmd/api/services"
)

var errInvalidToken = errors.New("invalid_token")

// requireClaimsFromHeader 는 Authorization 헤더가 필수인 엔드포인트에서
// JWT 를 파싱하여 클레임을 추출한다. 실패 시 적절한 401 에러 응답을 내려주고 false 를 반환한다.
func requireClaimsFromHeader(c *gin.Context, authSvc *services.AuthService) (auth.Claims, bool) {
	token, err := auth.ExtractBearerToken(c)
	if err != nil {
		auth.AbortWithUnauthorized(c, err)
		return auth.Claims{}, false
	}

	claims, err := authSvc.ParseAccessToken(token)
	if err != nil {
		auth.AbortWithUnauthorized(c, errInvalidToken)
		return auth.Claims{}, false
	}

	return claims, true
}

// optionalClaimsFromHeader 는 Authorization 헤더가 선택인 엔드포인트에서 사용한다.
// - 토큰이 없으면 (익명 요청) hasToken=false, ok=true 를 반환한다.
// - 토큰이 있으나 유효하지 않으면 401 에러 응답을 내려주고 hasToken=true, ok=false 를 반환한다.
// - 유효한 토큰이면 클레임과 함께 hasToken=true, ok=true 를 반환한다.
func optionalClaimsFromHeader(c *gin.Context, authSvc *services.AuthService) (claims auth.Claims, hasToken bool, ok bool) {
	token, err := auth.ExtractBearerToken(c)
	if err != nil {
		if errors.Is(err, auth.ErrMissingHeader) {
			return auth.Claims{}, false, true
		}
		auth.AbortWithUnauthorized(c, err)
		return auth.Claims{}, true, false
	}

	claims, err = authSvc.ParseAccessToken(token)
	if err != nil {
		auth.AbortWithUnauthorized(c, errInvalidToken)
		return auth.Claims{}, true, false
	}

	return claims, true, true
}
