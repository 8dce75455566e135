package inbound

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/pkaramon/book-store-sub000/internal/catalog/usecase"
	"github.com/pkaramon/book-store-sub000/internal/pkg/goerror"
	"github.com/pkaramon/book-store-sub000/internal/pkg/router"
	"github.com/pkaramon/book-store-sub000/internal/pkg/router/routertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUC struct {
	mock.Mock
}

func (m *mockUC) ListBooks(ctx context.Context, in usecase.ListBooksInput) (*usecase.ListBooksOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*usecase.ListBooksOutput)
	return out, args.Error(1)
}

func (m *mockUC) GetBook(ctx context.Context, in usecase.GetBookInput) (*usecase.BookOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*usecase.BookOutput)
	return out, args.Error(1)
}

func (m *mockUC) PublishBook(ctx context.Context, in usecase.PublishBookInput) (*usecase.PublishBookOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*usecase.PublishBookOutput)
	return out, args.Error(1)
}

func (m *mockUC) EditBook(ctx context.Context, in usecase.EditBookInput) (*usecase.BookOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*usecase.BookOutput)
	return out, args.Error(1)
}

func (m *mockUC) DeleteBook(ctx context.Context, in usecase.DeleteBookInput) error {
	return m.Called(ctx, in).Error(0)
}

func (m *mockUC) CoverUploadURL(ctx context.Context, in usecase.CoverUploadInput) (*usecase.CoverUploadOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*usecase.CoverUploadOutput)
	return out, args.Error(1)
}

func (m *mockUC) ListComments(ctx context.Context, in usecase.ListCommentsInput) ([]usecase.CommentOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).([]usecase.CommentOutput)
	return out, args.Error(1)
}

func (m *mockUC) AddComment(ctx context.Context, in usecase.AddCommentInput) (*usecase.AddCommentOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*usecase.AddCommentOutput)
	return out, args.Error(1)
}

func (m *mockUC) EditComment(ctx context.Context, in usecase.EditCommentInput) (*usecase.CommentOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*usecase.CommentOutput)
	return out, args.Error(1)
}

func (m *mockUC) DeleteComment(ctx context.Context, in usecase.DeleteCommentInput) error {
	return m.Called(ctx, in).Error(0)
}

func newServer(t *testing.T) (*routertest.Server, *mockUC) {
	t.Helper()

	m := &mockUC{}
	t.Cleanup(func() { m.AssertExpectations(t) })
	srv := routertest.New(t, func(r *router.Router) { RegisterHTTPEndpoint(r, m) })
	return srv, m
}

var sampleBook = usecase.BookOutput{
	ID:          "1",
	Title:       "Dune",
	Description: "Spice",
	Price:       1999,
	Author:      usecase.AuthorOutput{ID: "7", FirstName: "Frank", LastName: "Herbert"},
	CreatedAt:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	UpdatedAt:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
}

func TestListBooks(t *testing.T) {
	t.Run("query parameters", func(t *testing.T) {
		srv, m := newServer(t)
		m.On("ListBooks", mock.Anything, usecase.ListBooksInput{Query: "dune", MinPrice: 100, Limit: 5, Offset: 10}).
			Return(&usecase.ListBooksOutput{Items: []usecase.BookOutput{sampleBook}, Limit: 5, Offset: 10}, nil).Once()

		status, body := srv.DoJSON(t, http.MethodGet, "/api/v1/catalog/books?q=dune&minPrice=100&limit=5&offset=10", nil, "")

		require.Equal(t, http.StatusOK, status)
		var data BookListResponse
		env := routertest.DecodeSuccess(t, body, &data)
		require.Len(t, data.Items, 1)
		assert.Equal(t, "Frank", data.Items[0].Author.FirstName)
		assert.EqualValues(t, 5, env.Meta["limit"])
		assert.EqualValues(t, 1, env.Meta["count"])
	})

	t.Run("malformed limit", func(t *testing.T) {
		srv, _ := newServer(t)

		status, body := srv.DoJSON(t, http.MethodGet, "/api/v1/catalog/books?limit=ten", nil, "")

		require.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Invalid query limit", routertest.DecodeError(t, body).Message)
	})
}

func TestGetBook(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		srv, m := newServer(t)
		m.On("GetBook", mock.Anything, usecase.GetBookInput{BookID: "1"}).Return(&sampleBook, nil).Once()

		status, body := srv.DoJSON(t, http.MethodGet, "/api/v1/catalog/books/1", nil, "")

		require.Equal(t, http.StatusOK, status)
		var data BookResponse
		routertest.DecodeSuccess(t, body, &data)
		assert.Equal(t, int64(1999), data.Price)
	})

	t.Run("missing", func(t *testing.T) {
		srv, m := newServer(t)
		m.On("GetBook", mock.Anything, usecase.GetBookInput{BookID: "9"}).Return(nil, goerror.NewNotFound("book", "9")).Once()

		status, body := srv.DoJSON(t, http.MethodGet, "/api/v1/catalog/books/9", nil, "")

		require.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "9", routertest.DecodeError(t, body).Details["id"])
	})
}

func TestPublishBook(t *testing.T) {
	srv, m := newServer(t)
	m.On("PublishBook", mock.Anything, usecase.PublishBookInput{
		Token: "tok",
		Book:  usecase.BookDraft{Title: "Dune", Description: "Spice", Price: 1999, Cover: "covers/7/a.jpg"},
	}).Return(&usecase.PublishBookOutput{ID: "1"}, nil).Once()

	status, body := srv.DoJSON(t, http.MethodPost, "/api/v1/catalog/books", map[string]any{
		"title": "Dune", "description": "Spice", "price": 1999, "cover": "covers/7/a.jpg",
	}, "tok")

	require.Equal(t, http.StatusCreated, status)
	var data CreatedResponse
	routertest.DecodeSuccess(t, body, &data)
	assert.Equal(t, "1", data.ID)
}

func TestEditBook(t *testing.T) {
	srv, m := newServer(t)
	m.On("EditBook", mock.Anything, mock.MatchedBy(func(in usecase.EditBookInput) bool {
		return in.Token == "tok" && in.BookID == "1" && in.Title != nil && *in.Title == "Dune II" &&
			in.Price == nil && in.Cover == nil
	})).Return(&sampleBook, nil).Once()

	status, _ := srv.DoJSON(t, http.MethodPatch, "/api/v1/catalog/books/1", map[string]any{"title": "Dune II"}, "tok")

	assert.Equal(t, http.StatusOK, status)
}

func TestDeleteBook(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		srv, m := newServer(t)
		m.On("DeleteBook", mock.Anything, usecase.DeleteBookInput{Token: "tok", BookID: "1"}).Return(nil).Once()

		status, _ := srv.DoJSON(t, http.MethodDelete, "/api/v1/catalog/books/1", nil, "tok")

		assert.Equal(t, http.StatusNoContent, status)
	})

	t.Run("forbidden", func(t *testing.T) {
		srv, m := newServer(t)
		m.On("DeleteBook", mock.Anything, mock.Anything).Return(goerror.NewUnauthorized("Not allowed to delete this book")).Once()

		status, _ := srv.DoJSON(t, http.MethodDelete, "/api/v1/catalog/books/1", nil, "tok")

		assert.Equal(t, http.StatusForbidden, status)
	})
}

func TestCoverUploadURL(t *testing.T) {
	srv, m := newServer(t)
	m.On("CoverUploadURL", mock.Anything, usecase.CoverUploadInput{Token: "tok", ContentType: "image/png"}).
		Return(&usecase.CoverUploadOutput{Key: "covers/7/x.png", URL: "https://s3/put"}, nil).Once()

	status, body := srv.DoJSON(t, http.MethodPost, "/api/v1/catalog/covers", map[string]string{"contentType": "image/png"}, "tok")

	require.Equal(t, http.StatusOK, status)
	var data CoverUploadResponse
	routertest.DecodeSuccess(t, body, &data)
	assert.Equal(t, "covers/7/x.png", data.Key)
}

func TestComments(t *testing.T) {
	out := usecase.CommentOutput{ID: "40", BookID: "1", Title: "Great", Body: "Loved it", Stars: 5,
		Author: usecase.CommentAuthorOutput{ID: "3", FirstName: "Ann"}}

	t.Run("list", func(t *testing.T) {
		srv, m := newServer(t)
		m.On("ListComments", mock.Anything, usecase.ListCommentsInput{BookID: "1"}).Return([]usecase.CommentOutput{out}, nil).Once()

		status, body := srv.DoJSON(t, http.MethodGet, "/api/v1/catalog/books/1/comments", nil, "")

		require.Equal(t, http.StatusOK, status)
		var data []CommentResponse
		routertest.DecodeSuccess(t, body, &data)
		require.Len(t, data, 1)
		assert.Equal(t, "Ann", data[0].Author.FirstName)
	})

	t.Run("add", func(t *testing.T) {
		srv, m := newServer(t)
		m.On("AddComment", mock.Anything, usecase.AddCommentInput{
			Token: "tok", BookID: "1", Comment: usecase.CommentDraft{Title: "Great", Body: "Loved it", Stars: 5},
		}).Return(&usecase.AddCommentOutput{ID: "40"}, nil).Once()

		status, _ := srv.DoJSON(t, http.MethodPost, "/api/v1/catalog/books/1/comments",
			map[string]any{"title": "Great", "body": "Loved it", "stars": 5}, "tok")

		assert.Equal(t, http.StatusCreated, status)
	})

	t.Run("edit", func(t *testing.T) {
		srv, m := newServer(t)
		m.On("EditComment", mock.Anything, mock.MatchedBy(func(in usecase.EditCommentInput) bool {
			return in.CommentID == "40" && in.Stars != nil && *in.Stars == 4 && in.Title == nil
		})).Return(&out, nil).Once()

		status, _ := srv.DoJSON(t, http.MethodPatch, "/api/v1/catalog/comments/40", map[string]any{"stars": 4}, "tok")

		assert.Equal(t, http.StatusOK, status)
	})

	t.Run("delete", func(t *testing.T) {
		srv, m := newServer(t)
		m.On("DeleteComment", mock.Anything, usecase.DeleteCommentInput{Token: "tok", CommentID: "40"}).Return(nil).Once()

		status, _ := srv.DoJSON(t, http.MethodDelete, "/api/v1/catalog/comments/40", nil, "tok")

		assert.Equal(t, http.StatusNoContent, status)
	})
}
