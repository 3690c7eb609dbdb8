package dto

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GenerateLinkRequest struct {
	// ExpiresIn is the link lifetime in seconds; 0 means the default.
	ExpiresIn     int    `json:"expiresIn"`
	RequestedRole string `json:"requestedRole"`
}

type SignUpRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	DisplayName       string `json:"displayName"`
	RegistrationToken string `json:"registrationToken"`
	PhoneNumber       string `json:"phoneNumber"`
	Company           string `json:"company"`
	Description       string `json:"description"`
	ProfilePicture    string `json:"profilePicture"`
}

type AssignRoleRequest struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

type ApproveRequest struct {
	UserID string `json:"userId"`
}

type RejectRequest struct {
	UserID string `json:"userId"`
	Reason string `json:"reason"`
}

type SubmitReviewRequest struct {
	ApplicationID string         `json:"applicationId"`
	Decision      string         `json:"decision"`
	Comments      string         `json:"comments"`
	Scores        map[string]int `json:"scores,omitempty"`
}

type FinalDecisionRequest struct {
	ApplicationID  string `json:"applicationId"`
	ApplicantEmail string `json:"applicantEmail"`
	ApplicantName  string `json:"applicantName"`
	CompanyName    string `json:"companyName"`
	Reason         string `json:"reason,omitempty"`
}

type UpdateProfileRequest struct {
	DisplayName string  `json:"displayName"`
	PhoneNumber *string `json:"phoneNumber"`
	Company     *string `json:"company"`
	Description *string `json:"description"`
}

type UpdatePictureRequest struct {
	ImageData string `json:"imageData"`
}

type SendInviteRequest struct {
	Email           string `json:"email"`
	RegistrationURL string `json:"registrationUrl"`
	Role            string `json:"role"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}
