package posts

import (
	"time"

	"github.com/gosimple/slug"
)

type Post struct {
	ID         uint   `gorm:"primaryKey"`
	Title      string `gorm:"size:500;not null"`
	Content    string `gorm:"type:text;not null"`
	Author     string `gorm:"not null"`
	Slug       string `gorm:"index"`
	CreatedAt  time.Time
	ModifiedAt time.Time `gorm:"autoUpdateTime;index"`
}

// Update replaces title and content, and the author when one is given.
func (p *Post) Update(title, content, author string) {
	p.Title = title
	p.Content = content
	if author != "" {
		p.Author = author
	}
	p.Slug = slug.Make(title)
}

type CreateRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
	Author  string `json:"author" binding:"required"`
}

func (r CreateRequest) toEntity() *Post {
	return &Post{
		Title:   r.Title,
		Content: r.Content,
		Author:  r.Author,
		Slug:    slug.Make(r.Title),
	}
}

// UpdateRequest leaves the author unchanged when Author is empty.
type UpdateRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
	Author  string `json:"author"`
}

type PostView struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Author     string    `json:"author"`
	Slug       string    `json:"slug"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

func newPostView(p *Post) PostView {
	return PostView{
		ID:         p.ID,
		Title:      p.Title,
		Content:    p.Content,
		Author:     p.Author,
		Slug:       p.Slug,
		CreatedAt:  p.CreatedAt,
		ModifiedAt: p.ModifiedAt,
	}
}

type PostListView struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	ModifiedAt time.Time `json:"modified_at"`
}

func newPostListView(p *Post) PostListView {
	return PostListView{
		ID:         p.ID,
		Title:      p.Title,
		Author:     p.Author,
		ModifiedAt: p.ModifiedAt,
	}
}
