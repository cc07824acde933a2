// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store provides database access for users, posts, comments and events.
package store

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is the interface shared by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// Queries provides typed access to the database.
type Queries struct {
	db DBTX
}

// New creates a new Queries instance.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a Queries instance that runs against the given transaction.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// User represents a registered account.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  sql.NullTime
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}

// Post represents a blog post.
type Post struct {
	ID          int64
	Title       string
	Subtitle    string
	Body        string
	ImageURL    string
	PublishedOn string
	AuthorID    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Comment represents a comment attached to a post.
type Comment struct {
	ID        int64
	Body      string
	AuthorID  int64
	PostID    int64
	CreatedAt time.Time
}

// Event represents an audit log entry.
type Event struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	UserID    sql.NullInt64
	Metadata  string
	CreatedAt time.Time
}

const createUser = `
INSERT INTO users (email, password_hash, role, name, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id, email, password_hash, role, name, created_at, updated_at, last_login_at
`

// CreateUserParams holds parameters for CreateUser.
type CreateUserParams struct {
	Email        string
	PasswordHash string
	Role         string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateUser inserts a new user and returns the created row.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRowContext(ctx, createUser,
		arg.Email, arg.PasswordHash, arg.Role, arg.Name, arg.CreatedAt, arg.UpdatedAt)
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Name,
		&u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt)
	return u, err
}

const getUserByID = `
SELECT id, email, password_hash, role, name, created_at, updated_at, last_login_at
FROM users WHERE id = ?
`

// GetUserByID fetches a user by primary key.
func (q *Queries) GetUserByID(ctx context.Context, id int64) (User, error) {
	row := q.db.QueryRowContext(ctx, getUserByID, id)
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Name,
		&u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt)
	return u, err
}

const getUserByEmail = `
SELECT id, email, password_hash, role, name, created_at, updated_at, last_login_at
FROM users WHERE email = ?
`

// GetUserByEmail fetches a user by unique email.
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.db.QueryRowContext(ctx, getUserByEmail, email)
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Name,
		&u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt)
	return u, err
}

const getUserByName = `
SELECT id, email, password_hash, role, name, created_at, updated_at, last_login_at
FROM users WHERE name = ?
`

// GetUserByName fetches a user by display name (exact match).
func (q *Queries) GetUserByName(ctx context.Context, name string) (User, error) {
	row := q.db.QueryRowContext(ctx, getUserByName, name)
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Name,
		&u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt)
	return u, err
}

const countUsers = `SELECT COUNT(*) FROM users`

// CountUsers returns the total number of users.
func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countUsers)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const updateUserLastLogin = `UPDATE users SET last_login_at = ? WHERE id = ?`

// UpdateUserLastLoginParams holds parameters for UpdateUserLastLogin.
type UpdateUserLastLoginParams struct {
	LastLoginAt sql.NullTime
	ID          int64
}

// UpdateUserLastLogin records the time of the user's most recent login.
func (q *Queries) UpdateUserLastLogin(ctx context.Context, arg UpdateUserLastLoginParams) error {
	_, err := q.db.ExecContext(ctx, updateUserLastLogin, arg.LastLoginAt, arg.ID)
	return err
}

const updateUserPassword = `UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`

// UpdateUserPasswordParams holds parameters for UpdateUserPassword.
type UpdateUserPasswordParams struct {
	PasswordHash string
	UpdatedAt    time.Time
	ID           int64
}

// UpdateUserPassword replaces a user's password hash.
func (q *Queries) UpdateUserPassword(ctx context.Context, arg UpdateUserPasswordParams) error {
	_, err := q.db.ExecContext(ctx, updateUserPassword, arg.PasswordHash, arg.UpdatedAt, arg.ID)
	return err
}

const createPost = `
INSERT INTO posts (title, subtitle, body, image_url, published_on, author_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, title, subtitle, body, image_url, published_on, author_id, created_at, updated_at
`

// CreatePostParams holds parameters for CreatePost.
type CreatePostParams struct {
	Title       string
	Subtitle    string
	Body        string
	ImageURL    string
	PublishedOn string
	AuthorID    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreatePost inserts a new post and returns the created row.
func (q *Queries) CreatePost(ctx context.Context, arg CreatePostParams) (Post, error) {
	row := q.db.QueryRowContext(ctx, createPost,
		arg.Title, arg.Subtitle, arg.Body, arg.ImageURL, arg.PublishedOn,
		arg.AuthorID, arg.CreatedAt, arg.UpdatedAt)
	var p Post
	err := row.Scan(&p.ID, &p.Title, &p.Subtitle, &p.Body, &p.ImageURL,
		&p.PublishedOn, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const getPostByID = `
SELECT id, title, subtitle, body, image_url, published_on, author_id, created_at, updated_at
FROM posts WHERE id = ?
`

// GetPostByID fetches a post by primary key.
func (q *Queries) GetPostByID(ctx context.Context, id int64) (Post, error) {
	row := q.db.QueryRowContext(ctx, getPostByID, id)
	var p Post
	err := row.Scan(&p.ID, &p.Title, &p.Subtitle, &p.Body, &p.ImageURL,
		&p.PublishedOn, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const getPostByTitle = `
SELECT id, title, subtitle, body, image_url, published_on, author_id, created_at, updated_at
FROM posts WHERE title = ?
`

// GetPostByTitle fetches a post by its unique title.
func (q *Queries) GetPostByTitle(ctx context.Context, title string) (Post, error) {
	row := q.db.QueryRowContext(ctx, getPostByTitle, title)
	var p Post
	err := row.Scan(&p.ID, &p.Title, &p.Subtitle, &p.Body, &p.ImageURL,
		&p.PublishedOn, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const listPosts = `
SELECT p.id, p.title, p.subtitle, p.body, p.image_url, p.published_on,
       p.author_id, p.created_at, p.updated_at, u.name AS author_name
FROM posts p
JOIN users u ON u.id = p.author_id
ORDER BY p.id
`

// ListPostsRow is a post joined with its author's display name.
type ListPostsRow struct {
	ID          int64
	Title       string
	Subtitle    string
	Body        string
	ImageURL    string
	PublishedOn string
	AuthorID    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	AuthorName  string
}

// ListPosts returns every post with its author's name.
func (q *Queries) ListPosts(ctx context.Context) ([]ListPostsRow, error) {
	rows, err := q.db.QueryContext(ctx, listPosts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListPostsRow
	for rows.Next() {
		var i ListPostsRow
		if err := rows.Scan(&i.ID, &i.Title, &i.Subtitle, &i.Body, &i.ImageURL,
			&i.PublishedOn, &i.AuthorID, &i.CreatedAt, &i.UpdatedAt, &i.AuthorName); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const listPostsByAuthor = `
SELECT p.id, p.title, p.subtitle, p.body, p.image_url, p.published_on,
       p.author_id, p.created_at, p.updated_at, u.name AS author_name
FROM posts p
JOIN users u ON u.id = p.author_id
WHERE p.author_id = ?
ORDER BY p.id
`

// ListPostsByAuthor returns every post written by the given user.
func (q *Queries) ListPostsByAuthor(ctx context.Context, authorID int64) ([]ListPostsRow, error) {
	rows, err := q.db.QueryContext(ctx, listPostsByAuthor, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListPostsRow
	for rows.Next() {
		var i ListPostsRow
		if err := rows.Scan(&i.ID, &i.Title, &i.Subtitle, &i.Body, &i.ImageURL,
			&i.PublishedOn, &i.AuthorID, &i.CreatedAt, &i.UpdatedAt, &i.AuthorName); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const updatePost = `
UPDATE posts
SET title = ?, subtitle = ?, body = ?, image_url = ?, author_id = ?, updated_at = ?
WHERE id = ?
`

// UpdatePostParams holds parameters for UpdatePost.
// PublishedOn is intentionally absent: the display date is immutable.
type UpdatePostParams struct {
	Title     string
	Subtitle  string
	Body      string
	ImageURL  string
	AuthorID  int64
	UpdatedAt time.Time
	ID        int64
}

// UpdatePost overwrites an existing post's editable fields.
func (q *Queries) UpdatePost(ctx context.Context, arg UpdatePostParams) error {
	_, err := q.db.ExecContext(ctx, updatePost,
		arg.Title, arg.Subtitle, arg.Body, arg.ImageURL, arg.AuthorID, arg.UpdatedAt, arg.ID)
	return err
}

const deletePost = `DELETE FROM posts WHERE id = ?`

// DeletePost removes a post. Its comments are removed by the cascade rule.
func (q *Queries) DeletePost(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deletePost, id)
	return err
}

const countPosts = `SELECT COUNT(*) FROM posts`

// CountPosts returns the total number of posts.
func (q *Queries) CountPosts(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countPosts)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createComment = `
INSERT INTO comments (body, author_id, post_id, created_at)
VALUES (?, ?, ?, ?)
RETURNING id, body, author_id, post_id, created_at
`

// CreateCommentParams holds parameters for CreateComment.
type CreateCommentParams struct {
	Body      string
	AuthorID  int64
	PostID    int64
	CreatedAt time.Time
}

// CreateComment inserts a new comment and returns the created row.
func (q *Queries) CreateComment(ctx context.Context, arg CreateCommentParams) (Comment, error) {
	row := q.db.QueryRowContext(ctx, createComment,
		arg.Body, arg.AuthorID, arg.PostID, arg.CreatedAt)
	var c Comment
	err := row.Scan(&c.ID, &c.Body, &c.AuthorID, &c.PostID, &c.CreatedAt)
	return c, err
}

const listCommentsForPost = `
SELECT c.id, c.body, c.author_id, c.post_id, c.created_at, u.name AS author_name
FROM comments c
JOIN users u ON u.id = c.author_id
WHERE c.post_id = ?
ORDER BY c.id
`

// ListCommentsForPostRow is a comment joined with its author's display name.
type ListCommentsForPostRow struct {
	ID         int64
	Body       string
	AuthorID   int64
	PostID     int64
	CreatedAt  time.Time
	AuthorName string
}

// ListCommentsForPost returns every comment on the given post, oldest first.
func (q *Queries) ListCommentsForPost(ctx context.Context, postID int64) ([]ListCommentsForPostRow, error) {
	rows, err := q.db.QueryContext(ctx, listCommentsForPost, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListCommentsForPostRow
	for rows.Next() {
		var i ListCommentsForPostRow
		if err := rows.Scan(&i.ID, &i.Body, &i.AuthorID, &i.PostID, &i.CreatedAt, &i.AuthorName); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const countCommentsForPost = `SELECT COUNT(*) FROM comments WHERE post_id = ?`

// CountCommentsForPost returns the number of comments on the given post.
func (q *Queries) CountCommentsForPost(ctx context.Context, postID int64) (int64, error) {
	row := q.db.QueryRowContext(ctx, countCommentsForPost, postID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createEvent = `
INSERT INTO events (level, category, message, user_id, metadata, created_at)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id, level, category, message, user_id, metadata, created_at
`

// CreateEventParams holds parameters for CreateEvent.
type CreateEventParams struct {
	Level     string
	Category  string
	Message   string
	UserID    sql.NullInt64
	Metadata  string
	CreatedAt time.Time
}

// CreateEvent inserts a new audit log entry.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (Event, error) {
	row := q.db.QueryRowContext(ctx, createEvent,
		arg.Level, arg.Category, arg.Message, arg.UserID, arg.Metadata, arg.CreatedAt)
	var e Event
	err := row.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.UserID, &e.Metadata, &e.CreatedAt)
	return e, err
}

const listRecentEvents = `
SELECT id, level, category, message, user_id, metadata, created_at
FROM events ORDER BY created_at DESC, id DESC LIMIT ?
`

// ListRecentEvents returns the newest audit log entries.
func (q *Queries) ListRecentEvents(ctx context.Context, limit int64) ([]Event, error) {
	rows, err := q.db.QueryContext(ctx, listRecentEvents, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.UserID, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}
