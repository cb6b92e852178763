package api

// Item is a lost-or-found report as returned by the backend.
type Item struct {
	ID           string   `json:"_id"`
	UserID       string   `json:"user_id,omitempty"`
	Type         string   `json:"type"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Location     string   `json:"location"`
	DateOccurred string   `json:"date_occurred"`
	Images       []string `json:"images"`
	Tags         []string `json:"tags"`
	Status       string   `json:"status,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Views        int      `json:"views,omitempty"`
	User         *Owner   `json:"user,omitempty"`
}

// Owner is the reporting user's public profile embedded in an item.
type Owner struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Avatar   string  `json:"avatar,omitempty"`
	Rating   float64 `json:"rating,omitempty"`
	Verified bool    `json:"verified,omitempty"`
}

// Pagination describes the slice of a list response.
type Pagination struct {
	Page    int  `json:"page"`
	PerPage int  `json:"per_page"`
	Total   int  `json:"total"`
	HasNext bool `json:"has_next"`
}

// ItemList is the GET /api/items response.
type ItemList struct {
	Items      []Item     `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// Stats is the GET /api/items/stats response.
type Stats struct {
	TotalItems          int `json:"total_items"`
	ItemsStillLost      int `json:"items_still_lost"`
	SuccessfulReunions  int `json:"successful_reunions"`
}

// Match is one AI-scored candidate for an item. Scores are 0..1.
type Match struct {
	ID            string  `json:"id"`
	CandidateID   string  `json:"candidateId"`
	Score         float64 `json:"score"`
	ImageScore    float64 `json:"imageScore"`
	TextScore     float64 `json:"textScore"`
	LocationScore float64 `json:"locationScore"`
	Title         string  `json:"title"`
	Image         string  `json:"image"`
	User          string  `json:"user"`
	Email         string  `json:"email"`
	DateOccurred  string  `json:"date_occurred,omitempty"`
}

// UserStats summarizes a user's reporting history.
type UserStats struct {
	TotalItems        int `json:"totalItems"`
	LostItems         int `json:"lostItems"`
	FoundItems        int `json:"foundItems"`
	SuccessfulMatches int `json:"successfulMatches"`
	HelpedOthers      int `json:"helpedOthers"`
}

// User is the authenticated user's profile.
type User struct {
	ID       string    `json:"_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone,omitempty"`
	Avatar   string    `json:"avatar,omitempty"`
	JoinDate string    `json:"joinDate,omitempty"`
	Verified bool      `json:"verified,omitempty"`
	Stats    UserStats `json:"stats"`
}

// ItemQuery filters a GET /api/items request. Zero values are omitted.
type ItemQuery struct {
	Type    string // "lost", "found", or "" for all
	Search  string
	UserID  string // user ID or "me" for the authenticated user's items
	Page    int
	PerPage int
}
