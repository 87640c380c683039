package entity

import "warehouse/packages/core/schema"

type User struct {
	ID             int64   `json:"id"`
	Username       string  `json:"username"`
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	Age            *int64  `json:"age"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
	HashedPassword string  `json:"-"`
}

// Password is limited to 72 bytes, since bcrypt ignores everything after.
type UserCreate struct {
	Username  string  `json:"username" validate:"required,min=3,max=64"`
	Password  string  `json:"password" validate:"required,min=6,max=72"`
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
	FirstName *string `json:"first_name" validate:"omitempty,max=255"`
	LastName  *string `json:"last_name" validate:"omitempty,max=255"`
	Age       *int64  `json:"age" validate:"omitempty,min=0,max=200"`
	Phone     *string `json:"phone" validate:"omitempty,max=32"`
}

func (c *UserCreate) Build(hashedPassword string) *User {
	return &User{
		Username:       c.Username,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Age:            c.Age,
		Email:          c.Email,
		Phone:          c.Phone,
		HashedPassword: hashedPassword,
	}
}

type UserUpdate struct {
	Username  *string `json:"username" validate:"omitempty,min=3,max=64"`
	Password  *string `json:"password" validate:"omitempty,min=6,max=72"`
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
	FirstName *string `json:"first_name" validate:"omitempty,max=255"`
	LastName  *string `json:"last_name" validate:"omitempty,max=255"`
	Age       *int64  `json:"age" validate:"omitempty,min=0,max=200"`
	Phone     *string `json:"phone" validate:"omitempty,max=32"`

	// Set by the service from Password, never by the client
	HashedPassword *string `json:"-"`
}

func (u *UserUpdate) Changes() []Change {
	changes := []Change{}
	changes = appendChange(changes, "username", u.Username)
	changes = appendChange(changes, "email", u.Email)
	changes = appendChange(changes, "first_name", u.FirstName)
	changes = appendChange(changes, "last_name", u.LastName)
	changes = appendChange(changes, "age", u.Age)
	changes = appendChange(changes, "phone", u.Phone)
	changes = appendChange(changes, "hashed_password", u.HashedPassword)
	return changes
}

func (u *UserUpdate) Apply(user *User) {
	assign(&user.Username, u.Username)
	assignNullable(&user.Email, u.Email)
	assignNullable(&user.FirstName, u.FirstName)
	assignNullable(&user.LastName, u.LastName)
	assignNullable(&user.Age, u.Age)
	assignNullable(&user.Phone, u.Phone)
	assign(&user.HashedPassword, u.HashedPassword)
}

// Password hash is intentionally absent, so it can't be used in filters or sorting.
var UserSchema = schema.New("user", "users",
	schema.Field[User]{Name: "id", Column: "id", Kind: schema.Int, Get: func(u *User) any { return u.ID }},
	schema.Field[User]{Name: "username", Column: "username", Kind: schema.String, Get: func(u *User) any { return u.Username }},
	schema.Field[User]{Name: "first_name", Column: "first_name", Kind: schema.String, Get: func(u *User) any { return deref(u.FirstName) }},
	schema.Field[User]{Name: "last_name", Column: "last_name", Kind: schema.String, Get: func(u *User) any { return deref(u.LastName) }},
	schema.Field[User]{Name: "age", Column: "age", Kind: schema.Int, Get: func(u *User) any { return deref(u.Age) }},
	schema.Field[User]{Name: "email", Column: "email", Kind: schema.String, Get: func(u *User) any { return deref(u.Email) }},
	schema.Field[User]{Name: "phone", Column: "phone", Kind: schema.String, Get: func(u *User) any { return deref(u.Phone) }},
)
