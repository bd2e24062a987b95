package model

// Member is a person on the team. Members have independent lifetime;
// items reference them weakly through created_by and the assignment relation.
type Member struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
