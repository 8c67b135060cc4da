package forum

import "threadly/internal/sheets"

const (
	PostsSheet    = "posts"
	CommentsSheet = "comments"
)

type Discussion struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	Author       string `json:"author"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	CommentCount string `json:"comment_count"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

type Comment struct {
	ID        string `json:"id"`
	PostID    string `json:"post_id"`
	UserID    string `json:"user_id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Page is one page of discussions together with the pagination state
// reported by the spreadsheet endpoint.
type Page struct {
	Discussions []Discussion `json:"data"`
	Page        int          `json:"page"`
	TotalPages  int          `json:"totalPages"`
}

func discussionFromRow(row sheets.Row) Discussion {
	return Discussion{
		ID:           sheets.Str(row, "id"),
		UserID:       sheets.Str(row, "user_id"),
		Author:       sheets.Str(row, "author"),
		Title:        sheets.Str(row, "title"),
		Content:      sheets.Str(row, "content"),
		CommentCount: sheets.Str(row, "comment_count"),
		CreatedAt:    sheets.Str(row, "created_at"),
		UpdatedAt:    sheets.Str(row, "updated_at"),
	}
}

func commentFromRow(row sheets.Row) Comment {
	return Comment{
		ID:        sheets.Str(row, "id"),
		PostID:    sheets.Str(row, "post_id"),
		UserID:    sheets.Str(row, "user_id"),
		Content:   sheets.Str(row, "content"),
		CreatedAt: sheets.Str(row, "created_at"),
		UpdatedAt: sheets.Str(row, "updated_at"),
	}
}
