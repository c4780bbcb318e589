package model

type Category struct {
	BaseModel
	Name     string `db:"name" json:"name"`
	ImageURL string `db:"image_url" json:"image_url"`
}
