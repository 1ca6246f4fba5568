package campusclient

import (
	"context"
	"net/http"
)

// Profile is the authenticated account plus its resolved avatar URL.
type Profile struct {
	User      *User  `json:"user"`
	AvatarURL string `json:"avatarUrl"`
}

// GetProfile fetches the authenticated user's account record.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	var result Profile
	if err := c.doJSON(ctx, http.MethodGet, "/api/user/profile", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ProfileUpdate carries optional profile changes. Nil fields are untouched.
type ProfileUpdate struct {
	Name        *string `json:"name,omitempty"`
	University  *string `json:"university,omitempty"`
	CompanyName *string `json:"companyName,omitempty"`
	AvatarKey   *string `json:"avatarKey,omitempty"`
}

// UpdateProfile applies a partial profile update and returns the fresh record.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*Profile, error) {
	var result Profile
	if err := c.doJSON(ctx, http.MethodPost, "/api/user/profile", update, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// PresignAvatar requests an upload URL for a new profile image. After the
// upload succeeds, save the returned key via UpdateProfile.
func (c *Client) PresignAvatar(ctx context.Context, req PresignRequest) (*Presign, error) {
	var result Presign
	if err := c.doJSON(ctx, http.MethodPost, "/api/user/avatar/presign", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
