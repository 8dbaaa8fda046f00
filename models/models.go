package models

type Client struct {
	ID   int    `json:"id"`
	Name string `json:"nome"`
}

type DocumentType struct {
	ID   int    `json:"id"`
	Name string `json:"nome"`
}

type Document struct {
	ID       int    `json:"id"`
	Name     string `json:"nome"`
	TypeID   int    `json:"tipo"`
	ClientID int    `json:"cliente"`
	Box      int    `json:"caixa"`
	Date     Date   `json:"data"`
	Note     string `json:"observacao"`
}

// SearchFilter is derived from the consult form for a single query.
// Zero values mean the field was left empty.
type SearchFilter struct {
	ClientID int
	Box      int
	TypeID   int
	Name     string
}
