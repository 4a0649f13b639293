package domain

import "errors"

var (
	MessageSuccessGetTags   = "success get tags"
	MessageSuccessCreateTag = "tag created successfully"
	MessageFailedGetTags    = "failed to get tags"
	MessageFailedCreateTag  = "failed to create tag"

	ErrTagNotFound = errors.New("tag not found")
	ErrTagConflict = errors.New("tag name or slug already exists")
)

type (
	TagRequest struct {
		Name string `json:"name" validate:"required,max=32"`
		Slug string `json:"slug" validate:"required,max=32"`
	}

	Tag struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
)
