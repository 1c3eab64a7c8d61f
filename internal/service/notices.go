package service

// User-visible notice texts raised by the session authority.
const (
	NoticeTitleSuccess           = "Success"
	NoticeTitleError             = "Error"
	NoticeTitleEmailNotConfirmed = "Email Not Confirmed"
	NoticeTitleAccountCreated    = "Account Created"

	NoticeLoggedIn          = "Logged in successfully"
	NoticeLoggedOut         = "Logged out successfully"
	NoticeAccountCreated    = "Account created successfully"
	NoticeEmailNotConfirmed = "Please check your email and click the confirmation link, or contact support if you need help."
	NoticeConfirmEmail      = "Please check your email for a confirmation link. If email confirmation is disabled, you can log in immediately."
)
