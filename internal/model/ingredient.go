package model

type Unit string

const (
	UnitGram   Unit = "g"
	UnitLitre  Unit = "ltr"
	UnitPieces Unit = "pcs"
)

func (u Unit) Valid() bool {
	switch u {
	case UnitGram, UnitLitre, UnitPieces:
		return true
	}
	return false
}

type Ingredient struct {
	BaseModel
	Name string `db:"name" json:"name"`
	Unit Unit   `db:"unit" json:"unit"`
}
