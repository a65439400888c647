package model

// User roles. Reviewers are every role except STUDENT.
const (
	RoleStudent     = "STUDENT"
	RoleOrientador  = "ORIENTADOR"
	RoleCoordenador = "COORDENADOR"
	RoleAdmin       = "ADMIN"
)

// User maps to the users table.
type User struct {
	UserID        string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name          string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email         string `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash  string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role          string `gorm:"type:varchar(20);not null;default:'STUDENT'"    json:"role"`
	Matriculation string `gorm:"type:varchar(20)"                               json:"matriculation"`
	Course        string `gorm:"type:varchar(100)"                              json:"course"`
	VersionedModel
}

// TableName sets the table name.
func (User) TableName() string { return "users" }
