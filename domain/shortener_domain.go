package domain

import "errors"

const (
	MinHashLen = 6
	MaxHashLen = 10
	URLMaxLen  = 256
)

var (
	MessageSuccessGetLink = "success get short link"
	MessageFailedGetLink  = "failed to get short link"

	ErrLinkNotFound = errors.New("short link not found")
	ErrURLTooLong   = errors.New("original url too long")
)

type ShortLinkResponse struct {
	ShortLink string `json:"short-link"`
}
