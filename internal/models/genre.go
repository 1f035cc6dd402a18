package models

import "strings"

// Genre represents a game genre (e.g., "Action", "Indie"). The name is the key.
type Genre struct {
	Name string `gorm:"column:genre_name;primaryKey;size:64;not null"`
}

func (Genre) TableName() string { return "genres" }

func NewGenre(name string) Genre {
	return Genre{Name: strings.TrimSpace(name)}
}

// Publisher is identified by its unique name.
type Publisher struct {
	Name string `gorm:"column:name;primaryKey;size:255"`
}

func (Publisher) TableName() string { return "publishers" }

func NewPublisher(name string) *Publisher {
	return &Publisher{Name: strings.TrimSpace(name)}
}
