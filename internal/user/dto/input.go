package dto

type CreateUserInput struct {
	Login    string
	Password string
	Role     string
	FullName string
}
