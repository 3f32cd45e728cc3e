package jwt

import (
	"net/http"
	"strings"
)

// DefaultQueryParam is the query parameter ExtractFromRequest reads.
const DefaultQueryParam = "accessToken"

// TokenExtractorFunc defines a function that extracts a token from an HTTP request.
// It returns ErrMissingToken when the location it inspects holds no token.
type TokenExtractorFunc func(r *http.Request) (string, error)

// ExtractFromRequest looks for a token in, in order: the Authorization
// Bearer header, the Basic auth password, and the accessToken query
// parameter. Set excludeQuery on security sensitive routes; query strings
// end up in access logs and Referer headers.
func ExtractFromRequest(r *http.Request, excludeQuery bool) (string, bool) {
	extractors := []TokenExtractorFunc{BearerTokenExtractor, BasicAuthTokenExtractor}
	if !excludeQuery {
		extractors = append(extractors, QueryTokenExtractor(DefaultQueryParam))
	}

	token, err := ChainExtractors(extractors...)(r)
	if err != nil {
		return "", false
	}
	return token, true
}

// ChainExtractors returns the first token found by extractors, tried in order.
func ChainExtractors(extractors ...TokenExtractorFunc) TokenExtractorFunc {
	return func(r *http.Request) (string, error) {
		for _, extract := range extractors {
			if token, err := extract(r); err == nil && token != "" {
				return token, nil
			}
		}
		return "", ErrMissingToken
	}
}

// BearerTokenExtractor extracts JWT tokens from "Authorization: Bearer <token>" headers.
// The scheme is matched case-insensitively per RFC 6750.
func BearerTokenExtractor(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrMissingToken
	}

	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrMissingToken
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

// BasicAuthTokenExtractor treats the Basic auth password as a bearer token.
// Some HTTP clients can only send credentials this way.
func BasicAuthTokenExtractor(r *http.Request) (string, error) {
	_, password, ok := r.BasicAuth()
	if !ok || password == "" {
		return "", ErrMissingToken
	}
	return password, nil
}

// QueryTokenExtractor creates a token extractor for URL query parameters.
// Generally discouraged due to token exposure in logs and referrer headers.
func QueryTokenExtractor(paramName string) TokenExtractorFunc {
	return func(r *http.Request) (string, error) {
		if r.URL == nil {
			return "", ErrMissingToken
		}
		token := r.URL.Query().Get(paramName)
		if token == "" {
			return "", ErrMissingToken
		}
		return token, nil
	}
}

// HeaderTokenExtractor creates a token extractor for custom headers.
func HeaderTokenExtractor(headerName string) TokenExtractorFunc {
	return func(r *http.Request) (string, error) {
		token := r.Header.Get(headerName)
		if token == "" {
			return "", ErrMissingToken
		}
		return token, nil
	}
}
