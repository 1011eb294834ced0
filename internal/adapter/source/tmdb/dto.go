package tmdb

// pageResponse is the envelope of every paginated TMDB endpoint
type pageResponse[T any] struct {
	Page         int `json:"page"`
	Results      []T `json:"results"`
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
}

// resultDTO is a list entry. Movies, series and people share one shape;
// MediaType is only set by trending and multi endpoints.
type resultDTO struct {
	ID               int     `json:"id"`
	MediaType        string  `json:"media_type,omitempty"`
	Title            string  `json:"title,omitempty"`          // Movies
	OriginalTitle    string  `json:"original_title,omitempty"` // Movies
	Name             string  `json:"name,omitempty"`           // Series, people
	OriginalName     string  `json:"original_name,omitempty"`  // Series
	Overview         string  `json:"overview,omitempty"`
	ReleaseDate      string  `json:"release_date,omitempty"`   // Movies
	FirstAirDate     string  `json:"first_air_date,omitempty"` // Series
	VoteAverage      float64 `json:"vote_average,omitempty"`
	VoteCount        int     `json:"vote_count,omitempty"`
	Popularity       float64 `json:"popularity,omitempty"`
	OriginalLanguage string  `json:"original_language,omitempty"`
	GenreIDs         []int   `json:"genre_ids,omitempty"`
	Adult            bool    `json:"adult,omitempty"`
	PosterPath       string  `json:"poster_path,omitempty"`
	BackdropPath     string  `json:"backdrop_path,omitempty"`

	// Series
	OriginCountry []string `json:"origin_country,omitempty"`

	// People
	KnownForDepartment string      `json:"known_for_department,omitempty"`
	ProfilePath        string      `json:"profile_path,omitempty"`
	KnownFor           []resultDTO `json:"known_for,omitempty"`
}

type genreDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type namedDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type languageDTO struct {
	ISO6391     string `json:"iso_639_1"`
	EnglishName string `json:"english_name"`
	Name        string `json:"name"`
}

type countryDTO struct {
	ISO31661 string `json:"iso_3166_1"`
	Name     string `json:"name"`
}

// movieDetailsDTO is the response of /movie/{id}
type movieDetailsDTO struct {
	resultDTO
	Tagline             string        `json:"tagline"`
	Status              string        `json:"status"`
	Runtime             int           `json:"runtime"`
	Genres              []genreDTO    `json:"genres"`
	Homepage            string        `json:"homepage"`
	IMDbID              string        `json:"imdb_id"`
	Budget              int64         `json:"budget"`
	Revenue             int64         `json:"revenue"`
	SpokenLanguages     []languageDTO `json:"spoken_languages"`
	ProductionCountries []countryDTO  `json:"production_countries"`
	ProductionCompanies []namedDTO    `json:"production_companies"`
}

// tvDetailsDTO is the response of /tv/{id}
type tvDetailsDTO struct {
	resultDTO
	Tagline             string        `json:"tagline"`
	Status              string        `json:"status"`
	EpisodeRunTime      []int         `json:"episode_run_time"`
	Genres              []genreDTO    `json:"genres"`
	Homepage            string        `json:"homepage"`
	NumberOfSeasons     int           `json:"number_of_seasons"`
	NumberOfEpisodes    int           `json:"number_of_episodes"`
	Networks            []namedDTO    `json:"networks"`
	CreatedBy           []namedDTO    `json:"created_by"`
	LastAirDate         string        `json:"last_air_date"`
	SpokenLanguages     []languageDTO `json:"spoken_languages"`
	ProductionCountries []countryDTO  `json:"production_countries"`
	ProductionCompanies []namedDTO    `json:"production_companies"`
}

// personDetailsDTO is the response of /person/{id}?append_to_response=combined_credits
type personDetailsDTO struct {
	resultDTO
	Biography       string   `json:"biography"`
	Birthday        string   `json:"birthday"`
	Deathday        string   `json:"deathday"`
	PlaceOfBirth    string   `json:"place_of_birth"`
	IMDbID          string   `json:"imdb_id"`
	AlsoKnownAs     []string `json:"also_known_as"`
	CombinedCredits struct {
		Cast []resultDTO `json:"cast"`
		Crew []resultDTO `json:"crew"`
	} `json:"combined_credits"`
}

type castDTO struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	Order       int    `json:"order"`
	ProfilePath string `json:"profile_path"`
}

type crewDTO struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Job        string `json:"job"`
	Department string `json:"department"`
}

type creditsDTO struct {
	Cast []castDTO `json:"cast"`
	Crew []crewDTO `json:"crew"`
}

type reviewDTO struct {
	ID            string `json:"id"`
	Author        string `json:"author"`
	Content       string `json:"content"`
	CreatedAt     string `json:"created_at"`
	URL           string `json:"url"`
	AuthorDetails struct {
		Rating *float64 `json:"rating"`
	} `json:"author_details"`
}

type imageDTO struct {
	FilePath    string  `json:"file_path"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	ISO6391     *string `json:"iso_639_1"`
	VoteAverage float64 `json:"vote_average"`
}

type imagesDTO struct {
	Backdrops []imageDTO `json:"backdrops"`
	Posters   []imageDTO `json:"posters"`
	Logos     []imageDTO `json:"logos"`
	Profiles  []imageDTO `json:"profiles"`
}

type videoDTO struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

type videosDTO struct {
	Results []videoDTO `json:"results"`
}

// errorDTO is the body TMDB returns with non-2xx responses
type errorDTO struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}
