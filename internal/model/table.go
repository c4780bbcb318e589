package model

type Table struct {
	BaseModel
	Number     int  `db:"number" json:"number"`
	IsReserved bool `db:"is_reserved" json:"is_reserved"`
}
