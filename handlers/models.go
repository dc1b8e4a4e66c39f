package handlers

type SuccessResponse struct {
	Success bool `json:"success"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

type RegisterResponse struct {
	Success bool   `json:"success"`
	UID     string `json:"uid"`
}

type UpdateProfileRequest struct {
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type ResetPinRequest struct {
	Email string `json:"email"`
}

type ResetVerifyRequest struct {
	Email       string `json:"email"`
	Pin         string `json:"pin"`
	NewPassword string `json:"newPassword"`
}

type ResetLinkRequest struct {
	Email string `json:"email"`
}

type NotifyLikeRequest struct {
	UserEmail string `json:"userEmail"`
	UserName  string `json:"userName"`
	PhotoID   string `json:"photoId"`
}

type NotifyFollowRequest struct {
	UserEmail string `json:"userEmail"`
	UserName  string `json:"userName"`
}

type NotifyResponse struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason,omitempty"`
}

type CleanupResponse struct {
	Deleted int `json:"deleted"`
}
