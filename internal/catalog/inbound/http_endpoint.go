package inbound

import (
	"github.com/pkaramon/book-store-sub000/internal/catalog/usecase"
	"github.com/pkaramon/book-store-sub000/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for books and their comments.
type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) ListBooks(r *router.Request) (any, error) {
	limit, err := r.GetQueryInt("limit", 0)
	if err != nil {
		return nil, err
	}
	offset, err := r.GetQueryInt("offset", 0)
	if err != nil {
		return nil, err
	}
	minPrice, err := r.GetQueryInt64("minPrice", 0)
	if err != nil {
		return nil, err
	}
	maxPrice, err := r.GetQueryInt64("maxPrice", 0)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.ListBooks(r.Context(), usecase.ListBooksInput{
		Query:    r.GetQuery("q"),
		AuthorID: r.GetQuery("authorId"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return nil, err
	}

	items := make([]BookResponse, 0, len(resp.Items))
	for _, b := range resp.Items {
		items = append(items, toBookResponse(b))
	}
	return BookListResponse{Items: items, limit: resp.Limit, offset: resp.Offset}, nil
}

func (h *HTTPEndpoint) GetBook(r *router.Request) (any, error) {
	resp, err := h.uc.GetBook(r.Context(), usecase.GetBookInput{BookID: r.GetParam("id")})
	if err != nil {
		return nil, err
	}
	return toBookResponse(*resp), nil
}

// PublishBook puts a new book on sale for the calling author.
func (h *HTTPEndpoint) PublishBook(r *router.Request) (any, error) {
	var req BookRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.PublishBook(r.Context(), usecase.PublishBookInput{
		Token: r.BearerToken(),
		Book: usecase.BookDraft{
			Title:       req.Title,
			Description: req.Description,
			Price:       req.Price,
			Cover:       req.Cover,
		},
	})
	if err != nil {
		return nil, err
	}
	return CreatedResponse{ID: resp.ID}, nil
}

func (h *HTTPEndpoint) EditBook(r *router.Request) (any, error) {
	var req BookEditRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.EditBook(r.Context(), usecase.EditBookInput{
		Token:       r.BearerToken(),
		BookID:      r.GetParam("id"),
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Cover:       req.Cover,
	})
	if err != nil {
		return nil, err
	}
	return toBookResponse(*resp), nil
}

func (h *HTTPEndpoint) DeleteBook(r *router.Request) (any, error) {
	err := h.uc.DeleteBook(r.Context(), usecase.DeleteBookInput{Token: r.BearerToken(), BookID: r.GetParam("id")})
	return nil, err
}

// CoverUploadURL returns a presigned URL the client uploads the cover to.
func (h *HTTPEndpoint) CoverUploadURL(r *router.Request) (any, error) {
	var req CoverUploadRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.CoverUploadURL(r.Context(), usecase.CoverUploadInput{
		Token:       r.BearerToken(),
		ContentType: req.ContentType,
	})
	if err != nil {
		return nil, err
	}
	return CoverUploadResponse{Key: resp.Key, URL: resp.URL}, nil
}

func (h *HTTPEndpoint) ListComments(r *router.Request) (any, error) {
	resp, err := h.uc.ListComments(r.Context(), usecase.ListCommentsInput{BookID: r.GetParam("id")})
	if err != nil {
		return nil, err
	}

	out := make([]CommentResponse, 0, len(resp))
	for _, c := range resp {
		out = append(out, toCommentResponse(c))
	}
	return out, nil
}

func (h *HTTPEndpoint) AddComment(r *router.Request) (any, error) {
	var req CommentRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.AddComment(r.Context(), usecase.AddCommentInput{
		Token:   r.BearerToken(),
		BookID:  r.GetParam("id"),
		Comment: usecase.CommentDraft{Title: req.Title, Body: req.Body, Stars: req.Stars},
	})
	if err != nil {
		return nil, err
	}
	return CreatedResponse{ID: resp.ID}, nil
}

func (h *HTTPEndpoint) EditComment(r *router.Request) (any, error) {
	var req CommentEditRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.EditComment(r.Context(), usecase.EditCommentInput{
		Token:     r.BearerToken(),
		CommentID: r.GetParam("id"),
		Title:     req.Title,
		Body:      req.Body,
		Stars:     req.Stars,
	})
	if err != nil {
		return nil, err
	}
	return toCommentResponse(*resp), nil
}

func (h *HTTPEndpoint) DeleteComment(r *router.Request) (any, error) {
	err := h.uc.DeleteComment(r.Context(), usecase.DeleteCommentInput{Token: r.BearerToken(), CommentID: r.GetParam("id")})
	return nil, err
}
