// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package schema

// BooksTable represents the 'books' table
type BooksTable struct {
	Table       string
	ID          string
	OwnerID     string
	Title       string
	Author      string
	Description string
	PagesRead   string
	IsFavorite  string
	CreatedAt   string
}

// Books is the schema definition for the books table
var Books = BooksTable{
	Table:       "books",
	ID:          "id",
	OwnerID:     "ownerid",
	Title:       "title",
	Author:      "author",
	Description: "description",
	PagesRead:   "pagesread",
	IsFavorite:  "isfavorite",
	CreatedAt:   "createdat",
}

// Columns returns all standard column names
func (t BooksTable) Columns() []string {
	return []string{
		t.ID, t.OwnerID, t.Title, t.Author, t.Description, t.PagesRead, t.IsFavorite, t.CreatedAt,
	}
}
