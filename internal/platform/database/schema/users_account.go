package schema

// UserAccountTable holds the column names of users.account: one row per registered account.
type UserAccountTable struct {
	Table       string
	ID          string
	Username    string
	Email       string
	Password    string
	Role        string
	DisplayName string
	AvatarURL   string
	CreatedAt   string
	UpdatedAt   string
}

var UserAccount = UserAccountTable{
	Table:       "users.account",
	ID:          "id",
	Username:    "username",
	Email:       "email",
	Password:    "passwordhash",
	Role:        "role",
	DisplayName: "displayname",
	AvatarURL:   "avatarurl",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Select is the full column list in the order the repository scans it.
func (t UserAccountTable) Select() string {
	return List(
		t.ID, t.Username, t.Email, t.Password, t.Role,
		t.DisplayName, t.AvatarURL, t.CreatedAt, t.UpdatedAt,
	)
}
