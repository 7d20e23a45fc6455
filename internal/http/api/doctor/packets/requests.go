package packets

// body for registering
type SignupRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	Name     *string `json:"name"`
}

// body for logging in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// blank passwords are rejected by the handler with the dialog's own message
type ChangePasswordRequest struct {
	SessionID string `json:"session_id"`
	Password  string `json:"password"`
}

// outcome of the page's navigator.geolocation call: coordinates, or an
// error ("unsupported" when the capability is missing)
type ReportLocationRequest struct {
	Lat   *float64 `json:"lat"`
	Lng   *float64 `json:"lng"`
	Error string   `json:"error"`
}

type MenuClickRequest struct {
	Target string `json:"target" binding:"required"`
}

type DismissDialogRequest struct {
	Backdrop bool `json:"backdrop"`
}

// hours and minutes default to 0 when omitted
type CreateLectureRequest struct {
	SessionID   string `json:"session_id" binding:"required"`
	LectureName string `json:"lecture_name"`
	Hours       *int   `json:"hours"`
	Minutes     *int   `json:"minutes"`
}

type UpdateDurationRequest struct {
	SessionID string `json:"session_id"`
	Hours     int    `json:"hours"`
	Minutes   int    `json:"minutes"`
}

type ToggleDarkModeRequest struct {
	SessionID string `json:"session_id"`
}
