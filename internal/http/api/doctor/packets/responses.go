package packets

import "github.com/Nixie-Tech-LLC/lecturedesk/internal/view"

// returned for profile endpoints
type ProfileResponse struct {
	ID        int     `json:"id"`
	Email     string  `json:"email"`
	Name      *string `json:"name"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type LogoutResponse struct {
	Redirect string `json:"redirect"`
}

// GeolocationOptions are passed straight to getCurrentPosition.
type GeolocationOptions struct {
	EnableHighAccuracy bool  `json:"enableHighAccuracy"`
	Timeout            int64 `json:"timeout"`
}

type OpenSessionResponse struct {
	SessionID   string             `json:"session_id"`
	Status      string             `json:"status"`
	Geolocation GeolocationOptions `json:"geolocation"`
	DarkMode    bool               `json:"dark_mode"`
}

type LocationResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type LocationStatusResponse struct {
	Status   string            `json:"status"`
	Resolved bool              `json:"resolved"`
	Location *LocationResponse `json:"location,omitempty"`
}

type MenuResponse struct {
	Hidden bool `json:"hidden"`
}

type DialogStateResponse struct {
	Open string `json:"open"`
}

type DurationResponse struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// LectureResponse mirrors model.Lecture but flattens time to RFC3339.
type LectureResponse struct {
	LectureName string           `json:"lectureName"`
	Code        int              `json:"code"`
	Duration    DurationResponse `json:"duration"`
	Location    LocationResponse `json:"location"`
	CreatedAt   string           `json:"createdAt"`
}

type CreateLectureResponse struct {
	Lecture LectureResponse `json:"lecture"`
	// Code fills the form's lecture pass field and the popup.
	Code    int          `json:"code"`
	Message view.Message `json:"message"`
}

type LectureUpdateResponse struct {
	Lecture LectureResponse `json:"lecture"`
	Message view.Message    `json:"message"`
}

type PreferencesResponse struct {
	DarkMode bool `json:"dark_mode"`
}

type MessageResponse struct {
	Message view.Message `json:"message"`
}
