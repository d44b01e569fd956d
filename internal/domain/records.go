package domain

// MovieRecord is one row of the movie dataset. Identifiers are externally
// assigned and not guaranteed to be contiguous.
type MovieRecord struct {
	ID    uint32
	Title string
}

// RatingRecord is one row of the rating dataset: a user scored a movie.
type RatingRecord struct {
	UserID  uint32
	MovieID uint32
	Score   float32
}
