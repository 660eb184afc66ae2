package webtoons

// RankedEntry is one title in a landing page ranking. TitleID is 0 when the
// link carries no title_no.
type RankedEntry struct {
	Rank      int    `json:"rank"`
	Title     string `json:"title"`
	TitleID   int    `json:"titleId"`
	Genre     string `json:"genre"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
}

// Listing holds the landing page rankings, each sorted ascending by rank.
type Listing struct {
	Trending []RankedEntry `json:"trending"`
	Popular  []RankedEntry `json:"popular"`
}

// SearchEntry is one search hit. IsNew is only ever set on originals.
type SearchEntry struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	ViewCount string `json:"viewCount"`
	Link      string `json:"link"`
	Image     string `json:"image"`
	IsNew     bool   `json:"isNew"`
}

// SearchResults splits hits into curated originals and self-published canvas
// titles, each in document order.
type SearchResults struct {
	Original []SearchEntry `json:"original"`
	Canvas   []SearchEntry `json:"canvas"`
}

// Role is the credit an author gets on a title.
type Role string

const (
	RoleWriter      Role = "Writer"
	RoleIllustrator Role = "Illustrator"
	RoleCreator     Role = "Creator"
)

// Author is a credited person on a title.
type Author struct {
	Role Role   `json:"role"`
	Name string `json:"name"`
}

// Episode is one row of a title's episode list.
type Episode struct {
	EpisodeID     string `json:"episodeId"`
	Title         string `json:"title"`
	Date          string `json:"date"`
	Likes         string `json:"likes"`
	Thumbnail     string `json:"thumbnail"`
	Link          string `json:"link"`
	DisplayNumber string `json:"displayNumber"`
}

// RecommendationEntry is a title suggested on another title's list page.
type RecommendationEntry struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Views     string `json:"views"`
	Thumbnail string `json:"thumbnail"`
	Link      string `json:"link"`
}

// Stats holds the view and subscriber counts as displayed.
type Stats struct {
	Views       string `json:"views"`
	Subscribers string `json:"subscribers"`
}

// TitleDetail is everything the episode list page says about a title.
// BackgroundImage is nil when the header style has no url(...).
type TitleDetail struct {
	Title           string                `json:"title"`
	Genre           string                `json:"genre"`
	Authors         []Author              `json:"authors"`
	Description     string                `json:"description"`
	Thumbnail       string                `json:"thumbnail"`
	BackgroundImage *string               `json:"backgroundImage"`
	Stats           Stats                 `json:"stats"`
	UpdateSchedule  string                `json:"updateSchedule"`
	AgeRating       string                `json:"ageRating"`
	Episodes        []Episode             `json:"episodes"`
	Recommendations []RecommendationEntry `json:"recommendations"`
}

// ReaderResult lists an episode's panel image URLs in reading order.
// ImageCount always equals len(Images).
type ReaderResult struct {
	Title        string   `json:"title"`
	EpisodeTitle string   `json:"episodeTitle"`
	Images       []string `json:"images"`
	ImageCount   int      `json:"imageCount"`
}
