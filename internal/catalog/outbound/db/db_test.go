package db

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkaramon/book-store-sub000/internal/catalog/entity"
	"github.com/pkaramon/book-store-sub000/internal/pkg/goerror"
	"github.com/pkaramon/book-store-sub000/internal/pkg/instrument"
	"github.com/pkaramon/book-store-sub000/internal/pkg/testinfra"
	"github.com/pkaramon/book-store-sub000/internal/shared/account"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertUser(t *testing.T, pool *pgxpool.Pool, id, kind string) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, kind, first_name, last_name, email, birth_date, password_hash, bio)
		 VALUES ($1, $2, 'Frank', 'Herbert', $3, '1920-10-08', 'x', 'Arrakis')`,
		id, kind, id+"@example.com")
	require.NoError(t, err)
}

func newBook(id, title string, price int64, created time.Time) *entity.Book {
	return &entity.Book{
		ID:          id,
		AuthorID:    "7",
		Title:       title,
		Description: "desc",
		PriceCents:  price,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

func TestDB_Books(t *testing.T) {
	pool := testinfra.Postgres(t)
	db := NewDB(pool, instrument.NewNoop())
	ctx := context.Background()

	insertUser(t, pool, "7", "book_author")
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.SaveBook(ctx, newBook("1", "Dune", 1999, base)))
	require.NoError(t, db.SaveBook(ctx, newBook("2", "Dune Messiah", 2499, base.Add(time.Hour))))
	require.NoError(t, db.SaveBook(ctx, newBook("3", "100% Spice", 999, base.Add(2*time.Hour))))

	t.Run("by id with author", func(t *testing.T) {
		bw, err := db.BookWithAuthor(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, "Dune", bw.Book.Title)
		author, err := account.Narrow[*account.BookAuthor](bw.Author)
		require.NoError(t, err)
		assert.Equal(t, "Arrakis", author.Bio)
	})

	t.Run("list newest first with filters", func(t *testing.T) {
		all, err := db.ListBooks(ctx, entity.BookFilter{Limit: 10})
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "3", all[0].Book.ID)

		dune, err := db.ListBooks(ctx, entity.BookFilter{Query: "dune", MinPrice: 2000, Limit: 10})
		require.NoError(t, err)
		require.Len(t, dune, 1)
		assert.Equal(t, "2", dune[0].Book.ID)

		percent, err := db.ListBooks(ctx, entity.BookFilter{Query: "100%", Limit: 10})
		require.NoError(t, err)
		require.Len(t, percent, 1)
		assert.Equal(t, "3", percent[0].Book.ID)

		paged, err := db.ListBooks(ctx, entity.BookFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, paged, 1)
		assert.Equal(t, "2", paged[0].Book.ID)
	})

	t.Run("upsert replaces", func(t *testing.T) {
		b := newBook("1", "Dune (revised)", 2100, base)
		b.CoverKey = "covers/7/a.jpg"
		require.NoError(t, db.SaveBook(ctx, b))

		got, err := db.BookByID(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, "Dune (revised)", got.Title)
		assert.Equal(t, "covers/7/a.jpg", got.CoverKey)
	})

	t.Run("partial update", func(t *testing.T) {
		price := int64(1500)
		edited := base.Add(24 * time.Hour)
		require.NoError(t, db.UpdateBook(ctx, "1", entity.BookPatch{PriceCents: &price, UpdatedAt: edited}))

		got, err := db.BookByID(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, "Dune (revised)", got.Title)
		assert.Equal(t, int64(1500), got.PriceCents)
		assert.True(t, got.UpdatedAt.Equal(edited))

		assert.ErrorIs(t, db.UpdateBook(ctx, "404", entity.BookPatch{UpdatedAt: edited}), goerror.ErrNotFound)
	})

	t.Run("unknown author", func(t *testing.T) {
		b := newBook("9", "Ghost", 100, base)
		b.AuthorID = "404"
		assert.ErrorIs(t, db.SaveBook(ctx, b), goerror.ErrNotFound)
	})

	t.Run("comments", func(t *testing.T) {
		insertUser(t, pool, "3", "customer")
		first := &entity.Comment{ID: "40", BookID: "2", AuthorID: "3", Title: "Good", Body: "b", Stars: 4, CreatedAt: base, UpdatedAt: base}
		second := &entity.Comment{ID: "41", BookID: "2", AuthorID: "3", Title: "Better", Body: "b", Stars: 5, CreatedAt: base.Add(time.Minute), UpdatedAt: base.Add(time.Minute)}
		require.NoError(t, db.SaveComment(ctx, first))
		require.NoError(t, db.SaveComment(ctx, second))

		list, err := db.CommentsByBook(ctx, "2")
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "41", list[0].Comment.ID)
		assert.Equal(t, "3", list[0].Author.Info().ID)

		require.NoError(t, db.DeleteComment(ctx, "40"))
		_, err = db.CommentByID(ctx, "40")
		assert.ErrorIs(t, err, goerror.ErrNotFound)
		assert.ErrorIs(t, db.DeleteComment(ctx, "40"), goerror.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, db.DeleteBook(ctx, "2"))

		_, err := db.BookByID(ctx, "2")
		assert.ErrorIs(t, err, goerror.ErrNotFound)
		assert.ErrorIs(t, db.DeleteBook(ctx, "2"), goerror.ErrNotFound)

		list, err := db.CommentsByBook(ctx, "2")
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}
