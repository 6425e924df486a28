// Package errs defines the application error taxonomy. Services and
// repositories return these sentinels; the HTTP boundary maps them to
// status codes in one place so nothing internal leaks to clients.
package errs

// Error is a typed string error whose text is the public client message.
type Error string

func (e Error) Error() string { return string(e) }

const (
	// ErrUnauthenticated is returned when a request carries no session
	// token, or one that is malformed, expired or badly signed.
	ErrUnauthenticated Error = "Unauthorized: invalid or missing token"
	// ErrInvalidCredentials is returned for both an unknown username and
	// a wrong password. The message must stay identical in both cases.
	ErrInvalidCredentials Error = "Invalid username or password"
	// ErrUserNotFound is returned when a user id or username does not
	// resolve to a stored user.
	ErrUserNotFound Error = "User not found"
	// ErrPostNotFound is returned when a post id does not resolve.
	ErrPostNotFound Error = "Post not found"
	// ErrNotPostOwner is returned when a destructive post mutation is
	// attempted by anyone but the post's author.
	ErrNotPostOwner Error = "You are not authorized to delete this post"
	// ErrSelfFollow is returned when a user targets themselves with a
	// follow toggle.
	ErrSelfFollow Error = "You can't follow/unfollow yourself"

	ErrUsernameTaken    Error = "Username is already taken"
	ErrEmailTaken       Error = "Email is already taken"
	ErrInvalidEmail     Error = "Invalid email format"
	ErrPasswordTooShort Error = "Password must be at least 6 characters long"
	ErrPasswordPair     Error = "Please provide both current password and new password"
	ErrWrongPassword    Error = "Current password is incorrect"

	ErrPostEmpty     Error = "Post must have text or image"
	ErrCommentEmpty  Error = "Text field is required"
	ErrQueryRequired Error = "Search query is required"
	ErrNoUsersFound  Error = "No users found"
)
