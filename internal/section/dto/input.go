package dto

type CreateSectionInput struct {
	Name        string
	Description string
}
