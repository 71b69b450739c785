package usecase

// User-facing copy surfaced by the flows. The wording is part of the product
// contract, so it lives in one place instead of scattered literals.
const (
	msgFillAllFields      = "Please fill out all fields."
	msgAllFieldsRequired  = "All fields are required. Please fill them in correctly."
	msgInvalidEmail       = "Invalid email address. Use a valid email (e.g., example@gmail.com)."
	msgInvalidPhone       = "Phone number must start with 06, 05, or 07 and contain 10 digits."
	msgWeakPassword       = "Password must have at least 8 characters, 1 uppercase letter, 1 number, and 1 special character."
	msgPasswordsMismatch  = "Passwords do not match. Please verify them."
	msgNetworkError       = "Network error. Please check your connection and try again."
	msgUnexpectedError    = "An unexpected error occurred. Please try again later."
	msgUserNotFound       = "User not found. Please check your email and try again."
	msgIncorrectCreds     = "Incorrect email or password. Please try again."
	msgEmailUnverified    = "Your email is not verified. An OTP has been sent to your email."
	msgTwoFactorRequired  = "2FA is required. An OTP has been sent to your email. Please verify to continue."
	msgRegistered         = "Registration successful! Please check your email to verify your account."
	msgRegisterError      = "An error occurred. Please try again."
	msgFillAllOtpFields   = "Please fill in all OTP fields."
	msgInvalidOtp         = "Invalid OTP. Please try again."
	msgOtpResent          = "A new OTP has been sent to your email."
	msgResendFailed       = "Failed to resend OTP. Please try again."
	msgResendCooldown     = "Please wait before requesting a new code."
	msgOperationInFlight  = "Another request is still in progress. Please wait."
	msgEnterEmail         = "Please enter your email address."
	msgResetOtpSent       = "An OTP has been sent to your email to reset your password."
	msgResetSessionLost   = "Your reset session has expired. Please request a new one."
	msgPasswordWasReset   = "Your password has been reset successfully! You can now sign in."
	msgMissingVerifyToken = "Your verification session is missing. Please start over."
)

// serviceErrEmailUnverified is the exact error string the service uses to
// flag an unverified account; the classification below matches on it.
const serviceErrEmailUnverified = "Email is not verified"
