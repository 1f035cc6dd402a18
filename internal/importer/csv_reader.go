// Package importer loads the games dataset into a repository.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gamelibrary/webapp/internal/models"

	"go.uber.org/zap"
)

// Columns the reader needs; any other columns in the file are ignored.
const (
	colAppID       = "AppID"
	colName        = "Name"
	colReleaseDate = "Release date"
	colPrice       = "Price"
	colAbout       = "About the game"
	colHeaderImage = "Header image"
	colWebsite     = "Website"
	colPublishers  = "Publishers"
	colGenres      = "Genres"
)

var requiredColumns = []string{colAppID, colName}

// CSVReader reads games, genres and publishers from the dataset file.
type CSVReader struct {
	log *zap.Logger

	games      []models.Game
	genres     []models.Genre
	publishers []models.Publisher
	skipped    int
}

func NewCSVReader(log *zap.Logger) *CSVReader {
	if log == nil {
		log = zap.NewNop()
	}
	return &CSVReader{log: log}
}

// ReadFile reads the dataset at path.
func (r *CSVReader) ReadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return r.Read(f)
}

// Read parses a dataset with a header row. Rows with a missing or non-numeric
// AppID are skipped and logged; an unparsable price becomes 0.
func (r *CSVReader) Read(src io.Reader) error {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return errors.New("dataset is empty")
	}
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return fmt.Errorf("dataset is missing column %q", col)
		}
	}

	seenGenres := make(map[string]bool)
	seenPublishers := make(map[string]bool)
	line := 1
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return fmt.Errorf("read line %d: %w", line, err)
		}
		field := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		id, err := strconv.Atoi(field(colAppID))
		if err != nil {
			r.skipped++
			r.log.Warn("skipping row with invalid AppID", zap.Int("line", line), zap.String("app_id", field(colAppID)))
			continue
		}

		game := models.NewGame(id, field(colName))
		game.ReleaseDate = field(colReleaseDate)
		game.Description = field(colAbout)
		game.ImageURL = field(colHeaderImage)
		game.WebsiteURL = field(colWebsite)
		if price, err := strconv.ParseFloat(field(colPrice), 64); err == nil {
			game.Price = price
		}

		if names := splitList(field(colPublishers)); len(names) > 0 {
			publisher := models.NewPublisher(names[0])
			game.SetPublisher(publisher)
			if !seenPublishers[publisher.Name] {
				seenPublishers[publisher.Name] = true
				r.publishers = append(r.publishers, *publisher)
			}
		}
		for _, name := range splitList(field(colGenres)) {
			genre := models.NewGenre(name)
			game.AddGenre(genre)
			if !seenGenres[genre.Name] {
				seenGenres[genre.Name] = true
				r.genres = append(r.genres, genre)
			}
		}
		r.games = append(r.games, *game)
	}
	return nil
}

func (r *CSVReader) Games() []models.Game           { return r.games }
func (r *CSVReader) Genres() []models.Genre         { return r.genres }
func (r *CSVReader) Publishers() []models.Publisher { return r.publishers }
func (r *CSVReader) Skipped() int                   { return r.skipped }

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
