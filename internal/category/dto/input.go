package dto

import (
	"strings"

	"github.com/fekuna/omnipos-pos-service/internal/apperror"
)

type CreateCategoryInput struct {
	Name     string
	ImageURL string
}

type UpdateCategoryInput struct {
	ID   string
	Name string
	// ImageURL keeps the current image when empty.
	ImageURL string
}

func (in *CreateCategoryInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return apperror.Validation("category name is required")
	}
	return nil
}

func (in *UpdateCategoryInput) Validate() error {
	if in.ID == "" {
		return apperror.Validation("category id is required")
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return apperror.Validation("category name is required")
	}
	return nil
}
