// Package services holds the feature logic of the game library. Every function
// takes the repository for the current unit of work; no state lives here.
package services

import (
	"sort"
	"strconv"
	"strings"

	"gamelibrary/webapp/internal/models"
	"gamelibrary/webapp/internal/repository"
)

// PageSize is the number of games shown per catalog page.
const PageSize = 15

const noDescription = "No description available"

// Search types accepted by SearchGames.
const (
	SearchByTitle     = "title"
	SearchByID        = "id"
	SearchByPrice     = "price"
	SearchByGenres    = "genres"
	SearchByPublisher = "publisher"
)

// GameSummary is the listing view of a game.
type GameSummary struct {
	ID          int      `json:"game_id"`
	Title       string   `json:"title"`
	ReleaseDate string   `json:"release_date"`
	Price       float64  `json:"price"`
	Publisher   string   `json:"publisher"`
	Genres      []string `json:"genres"`
	ImageURL    string   `json:"image"`
}

// GameDetail is everything the game page shows.
type GameDetail struct {
	GameSummary
	Description     string       `json:"description"`
	WebsiteURL      string       `json:"website_url"`
	AverageRating   float64      `json:"average_rating"`
	Reviews         []ReviewView `json:"reviews"`
	InWishlist      bool         `json:"in_wishlist"`
	AlreadyReviewed bool         `json:"already_reviewed"`
}

func NewGameSummary(g *models.Game) GameSummary {
	return GameSummary{
		ID:          g.ID,
		Title:       g.Title,
		ReleaseDate: g.ReleaseDate,
		Price:       g.Price,
		Publisher:   g.PublisherDisplayName(),
		Genres:      g.GenreNames(),
		ImageURL:    g.ImageURL,
	}
}

func summarize(games []models.Game) []GameSummary {
	out := make([]GameSummary, 0, len(games))
	for i := range games {
		out = append(out, NewGameSummary(&games[i]))
	}
	return out
}

func GetNumberOfGames(repo repository.Repository) (int64, error) {
	return repo.GetNumberOfGames()
}

// GetPaginatedGames returns one page of the catalog sorted by title. Pages start
// at 1; a page past the end is empty.
func GetPaginatedGames(repo repository.Repository, page int) ([]GameSummary, error) {
	games, err := repo.GetGames()
	if err != nil {
		return nil, err
	}
	return paginate(games, page), nil
}

func GetPaginatedGamesByGenre(repo repository.Repository, genre string, page int) ([]GameSummary, error) {
	games, err := repo.GetGamesByGenre(genre)
	if err != nil {
		return nil, err
	}
	return paginate(games, page), nil
}

func CountGamesByGenre(repo repository.Repository, genre string) (int, error) {
	games, err := repo.GetGamesByGenre(genre)
	if err != nil {
		return 0, err
	}
	return len(games), nil
}

func paginate(games []models.Game, page int) []GameSummary {
	sortByTitle(games)
	if page < 1 {
		page = 1
	}
	start := (page - 1) * PageSize
	if start >= len(games) {
		return []GameSummary{}
	}
	end := start + PageSize
	if end > len(games) {
		end = len(games)
	}
	return summarize(games[start:end])
}

func sortByTitle(games []models.Game) {
	sort.SliceStable(games, func(i, j int) bool { return games[i].Title < games[j].Title })
}

// GetAllGenres returns every genre sorted by name.
func GetAllGenres(repo repository.Repository) ([]models.Genre, error) {
	genres, err := repo.GetAllGenres()
	if err != nil {
		return nil, err
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].Name < genres[j].Name })
	return genres, nil
}

// SearchGames dispatches on searchType. Unknown types and queries that do not
// parse for numeric types give no results.
func SearchGames(repo repository.Repository, searchType, query string) ([]GameSummary, error) {
	var (
		games []models.Game
		err   error
	)
	switch searchType {
	case SearchByTitle:
		games, err = SearchGamesByTitle(repo, query)
	case SearchByID:
		id, convErr := strconv.Atoi(strings.TrimSpace(query))
		if convErr != nil {
			return []GameSummary{}, nil
		}
		games, err = SearchGamesByID(repo, id)
	case SearchByPrice:
		price, convErr := strconv.ParseFloat(strings.TrimSpace(query), 64)
		if convErr != nil {
			return []GameSummary{}, nil
		}
		games, err = SearchGamesByPrice(repo, price)
	case SearchByGenres:
		games, err = SearchGamesByGenres(repo, query)
	case SearchByPublisher:
		games, err = SearchGamesByPublisher(repo, query)
	default:
		return []GameSummary{}, nil
	}
	if err != nil {
		return nil, err
	}
	return summarize(games), nil
}

// SearchGamesByTitle matches a case-insensitive substring of the title.
func SearchGamesByTitle(repo repository.Repository, query string) ([]models.Game, error) {
	return repo.SearchGames(query)
}

func SearchGamesByID(repo repository.Repository, id int) ([]models.Game, error) {
	return filterGames(repo, func(g *models.Game) bool { return g.ID == id })
}

func SearchGamesByPrice(repo repository.Repository, price float64) ([]models.Game, error) {
	return filterGames(repo, func(g *models.Game) bool { return g.Price == price })
}

// SearchGamesByGenres matches a substring of the game's comma-joined genre names.
func SearchGamesByGenres(repo repository.Repository, query string) ([]models.Game, error) {
	return filterGames(repo, func(g *models.Game) bool {
		return strings.Contains(strings.Join(g.GenreNames(), ", "), query)
	})
}

func SearchGamesByPublisher(repo repository.Repository, query string) ([]models.Game, error) {
	return filterGames(repo, func(g *models.Game) bool {
		name := g.PublisherDisplayName()
		return name != "" && strings.Contains(name, query)
	})
}

func filterGames(repo repository.Repository, keep func(*models.Game) bool) ([]models.Game, error) {
	games, err := repo.GetGames()
	if err != nil {
		return nil, err
	}
	out := []models.Game{}
	for i := range games {
		if keep(&games[i]) {
			out = append(out, games[i])
		}
	}
	return out, nil
}

func GetGameByID(repo repository.Repository, id int) (*models.Game, error) {
	return repo.GetGameByID(id)
}

func GetTitleByID(repo repository.Repository, id int) (string, error) {
	title, _, err := repo.GetTitleByID(id)
	return title, err
}

func GetDateByID(repo repository.Repository, id int) (string, error) {
	date, _, err := repo.GetDateByID(id)
	return date, err
}

// GetDescriptionByID falls back to a placeholder when the game has no description.
func GetDescriptionByID(repo repository.Repository, id int) (string, error) {
	desc, _, err := repo.GetDescriptionByID(id)
	if err != nil {
		return "", err
	}
	if desc == "" {
		return noDescription, nil
	}
	return desc, nil
}

func GetURLByID(repo repository.Repository, id int) (string, error) {
	url, _, err := repo.GetURLByID(id)
	return url, err
}

func GetImageURLByID(repo repository.Repository, id int) (string, error) {
	url, _, err := repo.GetImageURLByID(id)
	return url, err
}

// GetPriceByID returns 0 for unknown games.
func GetPriceByID(repo repository.Repository, id int) (float64, error) {
	price, _, err := repo.GetPriceByID(id)
	return price, err
}

// GetGameDetail builds the game page for username, who may be empty for visitors.
func GetGameDetail(repo repository.Repository, id int, username string) (*GameDetail, error) {
	game, err := repo.GetGameByID(id)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}
	description, err := GetDescriptionByID(repo, id)
	if err != nil {
		return nil, err
	}
	reviews, err := repo.GetReviewsByGame(id)
	if err != nil {
		return nil, err
	}

	detail := &GameDetail{
		GameSummary:   NewGameSummary(game),
		Description:   description,
		WebsiteURL:    game.WebsiteURL,
		AverageRating: GetAverageRating(reviews),
		Reviews:       toReviewViews(repo, reviews),
	}
	if username == "" {
		return detail, nil
	}
	if detail.InWishlist, err = IsInWishlist(repo, username, id); err != nil {
		return nil, err
	}
	if detail.AlreadyReviewed, err = UserAlreadyReviewedGame(repo, id, username); err != nil {
		return nil, err
	}
	return detail, nil
}
