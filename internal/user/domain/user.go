package domain

import (
	"regexp"
	"time"

	"lms-backend/pkg/uploader"
)

var emailPattern = regexp.MustCompile(`^[\w.+-]+@([\w-]+\.)+[\w-]{2,}$`)

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// CourseRef marks a course the user is enrolled in. Full course content is
// only served when the requested course id appears in this list.
type CourseRef struct {
	CourseID string `bson:"courseId" json:"courseId"`
}

// User is the identity document. The password hash never reaches clients;
// it is stripped from JSON and excluded from the default mongo projection.
type User struct {
	ID           string         `bson:"_id,omitempty" json:"id"`
	Name         string         `bson:"name" json:"name"`
	Email        string         `bson:"email" json:"email"`
	PasswordHash string         `bson:"password,omitempty" json:"-"`
	Avatar       uploader.Asset `bson:"avatar,omitempty" json:"avatar"`
	Role         string         `bson:"role" json:"role"`
	IsVerified   bool           `bson:"isVerified" json:"isVerified"`
	Courses      []CourseRef    `bson:"courses" json:"courses"`

	ResetPasswordToken  string    `bson:"resetPasswordToken,omitempty" json:"-"`
	ResetPasswordExpire time.Time `bson:"resetPasswordExpire,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updated_at"`
}

// EnrolledIn reports whether the user's course list contains courseID.
func (u *User) EnrolledIn(courseID string) bool {
	for _, ref := range u.Courses {
		if ref.CourseID == courseID {
			return true
		}
	}
	return false
}
