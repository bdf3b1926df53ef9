package model

// User holds the local profile data relevant to the application
// (outside of firebase).
type User struct {
	Id        string `db:"firebase_id" json:"id"`
	Username  string `db:"username" json:"username"`
	Email     string `db:"email" json:"email"`
	FirstName string `db:"first_name" json:"firstName"`
	LastName  string `db:"last_name" json:"lastName"`
	Avatar    string `db:"-" json:"avatar"`
}
