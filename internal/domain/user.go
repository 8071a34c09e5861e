package domain

import "time"

// NoProfileImage is stored when a signup carries no uploaded picture.
const NoProfileImage = "no file"

type User struct {
	ID              string    `bson:"_id,omitempty" json:"id"`
	Username        string    `bson:"username" json:"username"`
	PasswordHash    string    `bson:"password" json:"-"`
	Name            string    `bson:"name" json:"name"`
	Address         string    `bson:"address" json:"address"`
	ProfileImageURL string    `bson:"file" json:"file"`
	Age             int       `bson:"age" json:"age"`
	Phone           string    `bson:"phone" json:"phone"`
	IsAdmin         bool      `bson:"is_admin" json:"isAdmin"`
	CreatedAt       time.Time `bson:"created_at" json:"-"`
}
