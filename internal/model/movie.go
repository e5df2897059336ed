package model

// Movie mirrors the movie document served by the backend at /Movies.  Only
// the fields the storefront renders or the back office edits are decoded;
// unknown fields are ignored by encoding/json.
type Movie struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title,omitempty"`
	Overview      string  `json:"overview"`
	Director      string  `json:"director,omitempty"`
	Cast          string  `json:"cast,omitempty"`
	Language      string  `json:"language,omitempty"`
	ReleaseDate   string  `json:"releaseDate,omitempty"`
	RunTime       string  `json:"runTime,omitempty"`
	Tagline       string  `json:"tagline,omitempty"`
	HomePage      string  `json:"homePage,omitempty"`
	PosterPath    string  `json:"posterPath"`
	BackdropPath  string  `json:"backdropPath,omitempty"`
	Adult         bool    `json:"adult"`
	Status        bool    `json:"status"`
	Budget        float64 `json:"budget,omitempty"`
	Revenue       float64 `json:"revenue,omitempty"`
	Popularity    float64 `json:"popularity,omitempty"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int     `json:"vote_count,omitempty"`
	Video         bool    `json:"video"`
	Genres        []Genre `json:"genres,omitempty"`
	Videos        []Video `json:"videos,omitempty"`
}

// Genre is a movie genre label.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Video is a trailer reference attached to a movie.
type Video struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// MovieInput is the body accepted by POST/PUT /Movies.  The admin handler
// binds and validates it before forwarding.
type MovieInput struct {
	Title        string  `json:"title" validate:"required,max=200"`
	Director     string  `json:"director" validate:"max=200"`
	Cast         string  `json:"cast" validate:"max=1000"`
	GenreID      string  `json:"genreId"`
	Language     string  `json:"language" validate:"max=50"`
	ReleaseDate  string  `json:"releaseDate" validate:"omitempty,datetime=2006-01-02"`
	RunTime      string  `json:"runTime" validate:"omitempty,numeric"`
	Tagline      string  `json:"tagline" validate:"max=300"`
	HomePage     string  `json:"homePage" validate:"omitempty,url"`
	Overview     string  `json:"overview" validate:"max=5000"`
	PosterPath   string  `json:"posterPath" validate:"omitempty,url"`
	BackdropPath string  `json:"backdropPath" validate:"omitempty,url"`
	Adult        bool    `json:"adult"`
	Status       bool    `json:"status"`
	Budget       float64 `json:"budget" validate:"gte=0"`
	Revenue      float64 `json:"revenue" validate:"gte=0"`
	VoteAverage  float64 `json:"vote_average" validate:"gte=0,lte=10"`
	VoteCount    int     `json:"vote_count" validate:"gte=0"`
	Video        bool    `json:"video"`
	Popularity   float64 `json:"popularity" validate:"gte=0"`
}
