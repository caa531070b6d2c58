package model

type User struct {
	ID    int64  `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`
}

type UserCreate struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UserUpdate struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func (u UserUpdate) Apply(user User) User {
	if u.Name != nil && *u.Name != "" {
		user.Name = *u.Name
	}
	if u.Email != nil && *u.Email != "" {
		user.Email = *u.Email
	}
	return user
}
