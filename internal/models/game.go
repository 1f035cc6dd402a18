package models

import "strings"

// Game represents a catalog entry. The ID comes from the imported dataset and never changes.
type Game struct {
	ID            int        `gorm:"column:game_id;primaryKey;autoIncrement:false"`
	Title         string     `gorm:"column:game_title;type:text;not null"`
	Price         float64    `gorm:"column:game_price;not null"`
	ReleaseDate   string     `gorm:"column:release_date;size:50;not null"`
	Description   string     `gorm:"column:game_description"`
	ImageURL      string     `gorm:"column:game_image_url;size:255"`
	WebsiteURL    string     `gorm:"column:game_website_url;size:255"`
	PublisherName *string    `gorm:"column:publisher_name;size:255"`
	Publisher     *Publisher `gorm:"foreignKey:PublisherName;references:Name"`
	Genres        []Genre    `gorm:"many2many:game_genres;foreignKey:ID;joinForeignKey:GameID;references:Name;joinReferences:GenreName"`
	Reviews       []Review   `gorm:"foreignKey:GameID;references:ID"`
}

func (Game) TableName() string { return "games" }

// NewGame creates a game with the given id and title.
func NewGame(id int, title string) *Game {
	return &Game{ID: id, Title: strings.TrimSpace(title)}
}

// SetPublisher links the game to a publisher, or clears the link when p is nil.
func (g *Game) SetPublisher(p *Publisher) {
	g.Publisher = p
	if p == nil {
		g.PublisherName = nil
		return
	}
	name := p.Name
	g.PublisherName = &name
}

// AddGenre appends a genre unless the game already has it.
func (g *Game) AddGenre(genre Genre) {
	if g.HasGenre(genre.Name) {
		return
	}
	g.Genres = append(g.Genres, genre)
}

// HasGenre reports whether the game is tagged with the named genre.
func (g *Game) HasGenre(name string) bool {
	for _, genre := range g.Genres {
		if genre.Name == name {
			return true
		}
	}
	return false
}

// GenreNames returns the names of the game's genres in stored order.
func (g *Game) GenreNames() []string {
	names := make([]string, 0, len(g.Genres))
	for _, genre := range g.Genres {
		names = append(names, genre.Name)
	}
	return names
}

// PublisherDisplayName is the publisher name, or "" when the game has none.
func (g *Game) PublisherDisplayName() string {
	if g.Publisher != nil {
		return g.Publisher.Name
	}
	if g.PublisherName != nil {
		return *g.PublisherName
	}
	return ""
}
