package users

// User represents a SocialSphere member as the API returns it.
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Headline string `json:"headline,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Cover    string `json:"cover,omitempty"`
	Location string `json:"location,omitempty"`
}

// Update contains the profile fields a user is allowed to edit.
type Update struct {
	Name     *string `json:"name,omitempty"`
	Headline *string `json:"headline,omitempty"`
	Location *string `json:"location,omitempty"`
	Avatar   *string `json:"avatarUrl,omitempty"`
	Cover    *string `json:"coverUrl,omitempty"`
}

// Apply merges the update into a user.
func (u Update) Apply(user *User) {
	if u.Name != nil {
		user.Name = *u.Name
	}

	if u.Headline != nil {
		user.Headline = *u.Headline
	}

	if u.Location != nil {
		user.Location = *u.Location
	}

	if u.Avatar != nil {
		user.Avatar = *u.Avatar
	}

	if u.Cover != nil {
		user.Cover = *u.Cover
	}
}
