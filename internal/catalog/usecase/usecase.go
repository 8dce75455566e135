package usecase

import (
	"context"
	"log/slog"

	"github.com/pkaramon/book-store-sub000/internal/catalog/entity"
	"github.com/pkaramon/book-store-sub000/internal/pkg/authz"
	"github.com/pkaramon/book-store-sub000/internal/pkg/clock"
	"github.com/pkaramon/book-store-sub000/internal/pkg/goerror"
	"github.com/pkaramon/book-store-sub000/internal/pkg/instrument"
	"github.com/pkaramon/book-store-sub000/internal/pkg/jwt"
	"github.com/pkaramon/book-store-sub000/internal/pkg/schema"
	"github.com/pkaramon/book-store-sub000/internal/pkg/uid"
	"github.com/pkaramon/book-store-sub000/internal/pkg/workflow"
	"github.com/pkaramon/book-store-sub000/internal/shared/account"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	UserByID(ctx context.Context, id string) (account.User, error)

	BookByID(ctx context.Context, id string) (*entity.Book, error)
	BookWithAuthor(ctx context.Context, id string) (*entity.BookWithAuthor, error)
	ListBooks(ctx context.Context, f entity.BookFilter) ([]entity.BookWithAuthor, error)
	SaveBook(ctx context.Context, b *entity.Book) error
	UpdateBook(ctx context.Context, id string, p entity.BookPatch) error
	DeleteBook(ctx context.Context, id string) error

	CommentByID(ctx context.Context, id string) (*entity.Comment, error)
	CommentsByBook(ctx context.Context, bookID string) ([]entity.CommentWithAuthor, error)
	SaveComment(ctx context.Context, c *entity.Comment) error
	DeleteComment(ctx context.Context, id string) error
}

type covers interface {
	Exists(ctx context.Context, key string) (bool, error)
	UploadURL(ctx context.Context, key, contentType string) (string, error)
	DownloadURL(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type Usecase struct {
	repoDB repoDB
	covers covers
	uid    uid.StringID
	uuid   uid.StringID
	clock  clock.Clocker
	jwt    jwt.JWT
	ins    instrument.Instrumentation
	authz  authz.Authorizer

	draftSchema   *schema.AsyncSchema[BookDraft]
	commentSchema *schema.Schema[CommentDraft]

	editBook    *workflow.Mutation[*account.BookAuthor, *entity.Book, BookOutput]
	editComment *workflow.Mutation[account.User, *entity.Comment, CommentOutput]
}

type Dependency struct {
	RepoDB     repoDB
	Covers     covers
	UID        uid.StringID
	UUID       uid.StringID
	Clock      clock.Clocker
	JWT        jwt.JWT
	Instrument instrument.Instrumentation
	Authz      authz.Authorizer
}

func New(dep Dependency) *Usecase {
	s := &Usecase{
		repoDB: dep.RepoDB,
		covers: dep.Covers,
		uid:    dep.UID,
		uuid:   dep.UUID,
		clock:  dep.Clock,
		jwt:    dep.JWT,
		ins:    dep.Instrument,
		authz:  dep.Authz,
	}

	s.draftSchema = newDraftSchema(s.coverCheck)
	s.commentSchema = newCommentSchema()
	s.editBook = newEditBook(s)
	s.editComment = newEditComment(s)

	return s
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("catalog.usecase").Start(ctx, name)
}

func (s *Usecase) authenticate(token string) (string, error) {
	clm, err := s.jwt.Verify(token)
	if err != nil {
		return "", err
	}
	return clm.UserID, nil
}

func (s *Usecase) actor(ctx context.Context, token string) (account.User, error) {
	id, err := s.authenticate(token)
	if err != nil {
		return nil, err
	}

	return workflow.Find(ctx, "fetching user", "user", id, func() (account.User, error) {
		return s.repoDB.UserByID(ctx, id)
	})
}

// loadAs loads a user and narrows it to T.
func loadAs[T account.User](s *Usecase) func(ctx context.Context, id string) (T, error) {
	return func(ctx context.Context, id string) (T, error) {
		u, err := s.repoDB.UserByID(ctx, id)
		if err != nil {
			var zero T
			return zero, err
		}
		return account.Narrow[T](u)
	}
}

// actorAs authenticates token and loads the caller as T.
func actorAs[T account.User](ctx context.Context, s *Usecase, token string) (T, error) {
	id, err := s.authenticate(token)
	if err != nil {
		var zero T
		return zero, err
	}

	return workflow.Find(ctx, "fetching user", "user", id, func() (T, error) {
		return loadAs[T](s)(ctx, id)
	})
}

// ownerOrGranted lets the owner through and otherwise asks the policy
// whether the actor's kind may act on obj.
func (s *Usecase) ownerOrGranted(ctx context.Context, actor account.User, owner bool, obj, act, denied string) error {
	if owner {
		return nil
	}

	allowed, err := workflow.Call(ctx, "authorizing "+obj+" access", func() (bool, error) {
		return s.authz.Allowed(actor.Kind().String(), obj, act)
	})
	if err != nil {
		return err
	}
	if !allowed {
		slog.WarnContext(ctx, "access denied", "user_id", actor.Info().ID, "object", obj, "action", act)
		return goerror.NewUnauthorized(denied)
	}
	return nil
}
