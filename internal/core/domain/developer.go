package domain

// Developer - запись справочника застройщиков.
type Developer struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
