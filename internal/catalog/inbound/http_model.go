package inbound

import (
	"net/http"
	"time"

	"github.com/pkaramon/book-store-sub000/internal/catalog/usecase"
)

type BookRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Cover       string `json:"cover"`
}

type BookEditRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	Cover       *string `json:"cover"`
}

type CreatedResponse struct {
	ID string `json:"id"`
}

func (CreatedResponse) StatusCode() int {
	return http.StatusCreated
}

type AuthorResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Bio       string `json:"bio,omitempty"`
}

type BookResponse struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Price       int64          `json:"price"`
	CoverKey    string         `json:"coverKey,omitempty"`
	CoverURL    string         `json:"coverUrl,omitempty"`
	Author      AuthorResponse `json:"author"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func toBookResponse(b usecase.BookOutput) BookResponse {
	return BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		Price:       b.Price,
		CoverKey:    b.CoverKey,
		CoverURL:    b.CoverURL,
		Author: AuthorResponse{
			ID:        b.Author.ID,
			FirstName: b.Author.FirstName,
			LastName:  b.Author.LastName,
			Bio:       b.Author.Bio,
		},
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// BookListResponse carries paging in the envelope meta.
type BookListResponse struct {
	Items  []BookResponse `json:"items"`
	limit  int
	offset int
}

func (r BookListResponse) Meta() map[string]any {
	return map[string]any{"limit": r.limit, "offset": r.offset, "count": len(r.Items)}
}

type CoverUploadRequest struct {
	ContentType string `json:"contentType"`
}

type CoverUploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type CommentRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Stars int    `json:"stars"`
}

type CommentEditRequest struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
	Stars *int    `json:"stars"`
}

type CommentResponse struct {
	ID     string `json:"id"`
	BookID string `json:"bookId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	Stars  int    `json:"stars"`
	Author struct {
		ID        string `json:"id"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	} `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toCommentResponse(c usecase.CommentOutput) CommentResponse {
	resp := CommentResponse{
		ID:        c.ID,
		BookID:    c.BookID,
		Title:     c.Title,
		Body:      c.Body,
		Stars:     c.Stars,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	resp.Author.ID = c.Author.ID
	resp.Author.FirstName = c.Author.FirstName
	resp.Author.LastName = c.Author.LastName
	return resp
}
