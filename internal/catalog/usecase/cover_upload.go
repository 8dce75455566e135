package usecase

import (
	"context"
	"path"
	"strings"

	"github.com/pkaramon/book-store-sub000/internal/pkg/schema"
	"github.com/pkaramon/book-store-sub000/internal/pkg/workflow"
	"github.com/pkaramon/book-store-sub000/internal/shared/account"
)

type CoverUploadInput struct {
	Token       string
	ContentType string
}

// CoverUploadOutput tells the client where to PUT the image. Key is then
// passed as the book's cover.
type CoverUploadOutput struct {
	Key string
	URL string
}

var coverTypes = []string{"image/jpeg", "image/png", "image/webp"}

var coverExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// CoverUploadURL signs an upload of a cover image for a book author.
func (s *Usecase) CoverUploadURL(ctx context.Context, in CoverUploadInput) (*CoverUploadOutput, error) {
	ctx, span := s.startSpan(ctx, "CoverUploadURL")
	defer span.End()

	author, err := actorAs[*account.BookAuthor](ctx, s, in.Token)
	if err != nil {
		return nil, err
	}

	var msgs schema.Messages
	ct := schema.Merge(&msgs, "contentType", schema.OneOf(coverTypes...)("contentType", strings.ToLower(strings.TrimSpace(in.ContentType))))
	if err := msgs.Err(); err != nil {
		return nil, err
	}

	key := path.Join("covers", author.ID, s.uuid.Generate()+coverExt[ct])
	url, err := workflow.Call(ctx, "signing cover upload", func() (string, error) {
		return s.covers.UploadURL(ctx, key, ct)
	})
	if err != nil {
		return nil, err
	}

	return &CoverUploadOutput{Key: key, URL: url}, nil
}
