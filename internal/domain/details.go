package domain

import (
	"fmt"
	"strings"
)

// Genre is a TMDB genre
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Details is the full record of a movie or TV series
type Details struct {
	Title

	Tagline    string   `json:"tagline"`
	Status     string   `json:"status"`  // "Released", "Returning Series", ...
	Runtime    int      `json:"runtime"` // Minutes; episode runtime for TV
	Genres     []Genre  `json:"genres"`
	Homepage   string   `json:"homepage"`
	IMDbID     string   `json:"imdb_id"`
	Budget     int64    `json:"budget"`   // Movies only, USD
	Revenue    int64    `json:"revenue"`  // Movies only, USD
	Seasons    int      `json:"seasons"`  // TV only
	Episodes   int      `json:"episodes"` // TV only
	Networks   []string `json:"networks"` // TV only
	CreatedBy  []string `json:"created_by"`
	Languages  []string `json:"languages"`
	Countries  []string `json:"countries"`
	Companies  []string `json:"companies"`
	LastAirDay string   `json:"last_air_date"` // TV only
}

// GenreNames returns the genre names joined for display
func (d *Details) GenreNames() string {
	names := make([]string, len(d.Genres))
	for i, g := range d.Genres {
		names[i] = g.Name
	}
	return strings.Join(names, ", ")
}

// FormattedRuntime returns the runtime as "2h 16m"
func (d *Details) FormattedRuntime() string {
	if d.Runtime <= 0 {
		return ""
	}
	h, m := d.Runtime/60, d.Runtime%60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// PersonDetails is the full record of a person
type PersonDetails struct {
	Person

	Biography    string   `json:"biography"`
	Birthday     string   `json:"birthday"`
	Deathday     string   `json:"deathday"`
	PlaceOfBirth string   `json:"place_of_birth"`
	IMDbID       string   `json:"imdb_id"`
	AlsoKnownAs  []string `json:"also_known_as"`
	Credits      []Title  `json:"credits"` // Most popular credits first
}

// CastMember is one billed actor
type CastMember struct {
	PersonID    int    `json:"person_id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	Order       int    `json:"order"`
	ProfilePath string `json:"profile_path"`
}

// CrewMember is one crew credit
type CrewMember struct {
	PersonID   int    `json:"person_id"`
	Name       string `json:"name"`
	Job        string `json:"job"`
	Department string `json:"department"`
}

// Review is a user review
type Review struct {
	ID        string  `json:"id"`
	Author    string  `json:"author"`
	Content   string  `json:"content"`
	Rating    float64 `json:"rating"` // 0 if the author gave none
	CreatedAt string  `json:"created_at"`
	URL       string  `json:"url"`
}

// ImageType is the role of an image
type ImageType string

const (
	ImagePoster   ImageType = "poster"
	ImageBackdrop ImageType = "backdrop"
	ImageLogo     ImageType = "logo"
	ImageProfile  ImageType = "profile"
)

// Image is one image of a title or person
type Image struct {
	Type        ImageType `json:"type"`
	FilePath    string    `json:"file_path"` // Relative TMDB path, e.g. "/abc.jpg"
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	Language    string    `json:"language"`
	VoteAverage float64   `json:"vote_average"`
}

// Video is a trailer, teaser or clip
type Video struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"` // "YouTube", "Vimeo"
	Type     string `json:"type"` // "Trailer", "Teaser", ...
	Official bool   `json:"official"`
}

// URL returns a watchable link for the video, or "" for unknown sites
func (v Video) URL() string {
	switch v.Site {
	case "YouTube":
		return "https://www.youtube.com/watch?v=" + v.Key
	case "Vimeo":
		return "https://vimeo.com/" + v.Key
	default:
		return ""
	}
}

// Detail sections loaded alongside the core record
const (
	SectionCredits         = "credits"
	SectionReviews         = "reviews"
	SectionImages          = "images"
	SectionVideos          = "videos"
	SectionRecommendations = "recommendations"
)

// DetailBundle is everything the inspector shows for one item.
// Exactly one of Details and Person is set.
type DetailBundle struct {
	Ref             ItemRef           `json:"ref"`
	Details         *Details          `json:"details,omitempty"`
	Person          *PersonDetails    `json:"person,omitempty"`
	Cast            []CastMember      `json:"cast"`
	Crew            []CrewMember      `json:"crew"`
	Reviews         []Review          `json:"reviews"`
	Images          []Image           `json:"images"`
	Videos          []Video           `json:"videos"`
	Recommendations []Title           `json:"recommendations"`
	Failed          map[string]string `json:"failed,omitempty"` // Section -> error message
}

// Name returns the bundle's display name
func (b *DetailBundle) Name() string {
	switch {
	case b.Details != nil:
		return b.Details.Name
	case b.Person != nil:
		return b.Person.Name
	default:
		return b.Ref.String()
	}
}

// Directors returns the names of crew credited as Director
func (b *DetailBundle) Directors() []string {
	var names []string
	for _, c := range b.Crew {
		if c.Job == "Director" {
			names = append(names, c.Name)
		}
	}
	return names
}

// Complete returns true if every section loaded
func (b *DetailBundle) Complete() bool {
	return len(b.Failed) == 0
}
