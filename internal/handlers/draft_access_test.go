package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pulseline-app/backend/internal/apperrors"
	"github.com/pulseline-app/backend/internal/models"
	"github.com/pulseline-app/backend/internal/repositories"
	"github.com/pulseline-app/backend/internal/services"
	"github.com/pulseline-app/backend/validators"
)

// draftFixture wires the per-post handlers over an in-memory database with
// one author, one stranger and one unpublished draft. Engagement endpoints
// must treat the draft exactly like a post that does not exist for anyone
// but its author.
type draftFixture struct {
	db       *gorm.DB
	e        *echo.Echo
	likes    *LikeHandler
	saves    *SavedPostHandler
	comments *CommentHandler
	author   *models.User
	stranger *models.User
	draft    *models.Post
}

func newDraftFixture(t *testing.T) *draftFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Post{},
		&models.Tag{},
		&models.Like{},
		&models.SavedPost{},
		&models.Comment{},
		&models.Notification{},
	))

	author := &models.User{Username: "author", DisplayName: "author", Email: "author@example.com", Role: models.RoleUser, IsActive: true}
	stranger := &models.User{Username: "stranger", DisplayName: "stranger", Email: "stranger@example.com", Role: models.RoleUser, IsActive: true}
	require.NoError(t, db.Create(author).Error)
	require.NoError(t, db.Create(stranger).Error)

	draft := &models.Post{AuthorID: author.ID, Title: "unfinished", Body: "wip", Status: models.PostStatusDraft}
	require.NoError(t, db.Create(draft).Error)

	userRepo := repositories.NewPostgresUserRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	savedRepo := repositories.NewPostgresSavedPostRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	notifier := services.NewNotifier(repositories.NewPostgresNotificationRepository(db), userRepo, postRepo)

	e := echo.New()
	e.Validator = validators.NewValidator()

	return &draftFixture{
		db:       db,
		e:        e,
		likes:    NewLikeHandler(likeRepo, postRepo, userRepo, notifier),
		saves:    NewSavedPostHandler(savedRepo, postRepo, userRepo),
		comments: NewCommentHandler(commentRepo, postRepo, userRepo, notifier),
		author:   author,
		stranger: stranger,
		draft:    draft,
	}
}

// postContext builds an echo context for a :post_id route with the given
// caller's claims attached; userID 0 means anonymous.
func (f *draftFixture) postContext(method, body string, userID uint) echo.Context {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	c := f.e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("post_id")
	c.SetParamValues(strconv.FormatUint(uint64(f.draft.ID), 10))
	if userID != 0 {
		c.Set("user", &models.JwtCustomClaims{UserID: userID})
	}
	return c
}

func TestLikeDraftReadsAsMissing(t *testing.T) {
	f := newDraftFixture(t)

	err := f.likes.LikePost(f.postContext(http.MethodPost, "", f.stranger.ID))

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	var count int64
	require.NoError(t, f.db.Model(&models.Like{}).Count(&count).Error)
	assert.Equal(t, int64(0), count, "no like row may be created against an invisible draft")
}

func TestLikeOwnDraftAllowed(t *testing.T) {
	f := newDraftFixture(t)

	require.NoError(t, f.likes.LikePost(f.postContext(http.MethodPost, "", f.author.ID)))

	var count int64
	require.NoError(t, f.db.Model(&models.Like{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLikesCountOnDraftReadsAsMissing(t *testing.T) {
	f := newDraftFixture(t)

	err := f.likes.GetLikesCountForPost(f.postContext(http.MethodGet, "", f.stranger.ID))

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestSaveDraftReadsAsMissing(t *testing.T) {
	f := newDraftFixture(t)

	err := f.saves.SavePost(f.postContext(http.MethodPost, "", f.stranger.ID))

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	var count int64
	require.NoError(t, f.db.Model(&models.SavedPost{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCommentOnDraftReadsAsMissing(t *testing.T) {
	f := newDraftFixture(t)

	err := f.comments.CreateComment(f.postContext(http.MethodPost, `{"content":"hi"}`, f.stranger.ID))

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	var count int64
	require.NoError(t, f.db.Model(&models.Comment{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestListCommentsOnDraftReadsAsMissing(t *testing.T) {
	f := newDraftFixture(t)

	err := f.comments.GetCommentsByPostID(f.postContext(http.MethodGet, "", f.stranger.ID))

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestEngagementOnPublishedPostUnaffected(t *testing.T) {
	f := newDraftFixture(t)
	require.NoError(t, f.db.Model(f.draft).Update("status", models.PostStatusPublished).Error)

	require.NoError(t, f.likes.LikePost(f.postContext(http.MethodPost, "", f.stranger.ID)))
	require.NoError(t, f.comments.CreateComment(f.postContext(http.MethodPost, fmt.Sprintf(`{"content":"nice, %s"}`, f.author.Username), f.stranger.ID)))
}
