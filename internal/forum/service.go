package forum

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"threadly/internal/logger"
	"threadly/internal/sheets"
	"threadly/internal/users"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("forum: discussion not found")

const (
	defaultPage  = 1
	defaultLimit = 5
)

// Service proxies discussion and comment operations onto the
// spreadsheet endpoint. It adds no storage of its own.
type Service struct {
	sheets *sheets.Client
}

func NewService(client *sheets.Client) *Service {
	return &Service{sheets: client}
}

// ListDiscussions returns one page of all discussions.
func (s *Service) ListDiscussions(ctx context.Context, page, limit int) (*Page, error) {
	return s.list(ctx, sheets.QueryOptions{Sheet: PostsSheet}, page, limit)
}

// ListUserDiscussions returns one page of a single author's discussions.
func (s *Service) ListUserDiscussions(ctx context.Context, userID string, page, limit int) (*Page, error) {
	return s.list(ctx, sheets.QueryOptions{
		Sheet:       PostsSheet,
		FilterKey:   "user_id",
		FilterValue: userID,
	}, page, limit)
}

func (s *Service) list(ctx context.Context, opts sheets.QueryOptions, page, limit int) (*Page, error) {
	if page <= 0 {
		page = defaultPage
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	opts.Page = page
	opts.Limit = limit

	res, err := s.sheets.Query(ctx, opts)
	if err != nil {
		return nil, err
	}

	out := &Page{
		Discussions: make([]Discussion, 0, len(res.Rows)),
		Page:        res.Page,
		TotalPages:  res.TotalPages,
	}
	for _, row := range res.Rows {
		out.Discussions = append(out.Discussions, discussionFromRow(row))
	}
	return out, nil
}

// GetDiscussion loads one discussion together with its comments.
// Comment author names are resolved against the users sheet; a comment
// whose author row is gone renders as "Unknown".
func (s *Service) GetDiscussion(ctx context.Context, id string) (*Discussion, []Comment, error) {
	discussionRes, err := s.sheets.Query(ctx, sheets.QueryOptions{
		Sheet:       PostsSheet,
		FilterKey:   "id",
		FilterValue: id,
	})
	if err != nil {
		return nil, nil, err
	}
	if len(discussionRes.Rows) == 0 {
		return nil, nil, ErrNotFound
	}
	discussion := discussionFromRow(discussionRes.Rows[0])

	commentsRes, err := s.sheets.Query(ctx, sheets.QueryOptions{
		Sheet:       CommentsSheet,
		FilterKey:   "post_id",
		FilterValue: id,
	})
	if err != nil {
		return nil, nil, err
	}

	usersRes, err := s.sheets.Query(ctx, sheets.QueryOptions{Sheet: users.Sheet})
	if err != nil {
		return nil, nil, err
	}
	names := make(map[string]string, len(usersRes.Rows))
	for _, row := range usersRes.Rows {
		names[sheets.Str(row, "id")] = sheets.Str(row, "name")
	}

	comments := make([]Comment, 0, len(commentsRes.Rows))
	for _, row := range commentsRes.Rows {
		c := commentFromRow(row)
		c.Author = names[c.UserID]
		if c.Author == "" {
			c.Author = "Unknown"
		}
		comments = append(comments, c)
	}

	return &discussion, comments, nil
}

// CreateDiscussion appends a new post row and returns it.
func (s *Service) CreateDiscussion(ctx context.Context, userID, author, title, content string) (*Discussion, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	d := Discussion{
		ID:           uuid.New().String(),
		UserID:       userID,
		Author:       author,
		Title:        title,
		Content:      content,
		CommentCount: "0",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := s.sheets.Create(ctx, PostsSheet, sheets.Row{
		"id":            d.ID,
		"user_id":       d.UserID,
		"author":        d.Author,
		"title":         d.Title,
		"content":       d.Content,
		"comment_count": d.CommentCount,
		"created_at":    d.CreatedAt,
		"updated_at":    d.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("forum: create discussion: %w", err)
	}

	return &d, nil
}

// CreateComment appends a comment row, then bumps the parent post's
// comment_count with a separate best-effort write. The two writes are
// not atomic: a failed count update is logged and the comment stands.
func (s *Service) CreateComment(ctx context.Context, userID, postID, content string, currentCount int) (*Comment, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	c := Comment{
		ID:        strconv.FormatInt(time.Now().UnixMilli(), 10),
		PostID:    postID,
		UserID:    userID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.sheets.Create(ctx, CommentsSheet, sheets.Row{
		"id":         c.ID,
		"user_id":    c.UserID,
		"post_id":    c.PostID,
		"content":    c.Content,
		"created_at": c.CreatedAt,
		"updated_at": c.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("forum: create comment: %w", err)
	}

	err = s.sheets.Update(ctx, PostsSheet, postID, sheets.Row{
		"comment_count": currentCount + 1,
	})
	if err != nil {
		logger.Warn("comment count update failed", map[string]any{
			"post_id": postID,
			"error":   err.Error(),
		})
	}

	return &c, nil
}
