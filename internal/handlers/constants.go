package handlers

const (
	PlayerCookieName = "foodie_player"
	ParentCookieName = "foodie_parent"

	ErrInvalidFormData     = "Invalid form data"
	ErrUnauthorized        = "Unauthorized"
	ErrInternalServerError = "Internal server error"
	ErrTooManyRequests     = "Too many requests, slow down!"
)
