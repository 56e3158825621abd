package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/vidtube/backend/internal/domain/entity"
	repo "github.com/vidtube/backend/internal/domain/repository"
	"github.com/vidtube/backend/pkg/apperr"
	"github.com/vidtube/backend/pkg/helpers"
)

// AssetGateway is the consumed asset-store contract: upload returns a stable
// reference, delete is keyed by the reference's public id and is non-fatal to
// callers that treat it as compensation.
type AssetGateway interface {
	Upload(ctx context.Context, r io.Reader, folder, filename, contentType string) (entity.AssetReference, error)
	Delete(ctx context.Context, publicID string) error
	PublicIDFromURL(url string) string
}

// Upload is an unpersisted local byte stream handed to the asset gateway.
type Upload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// UserService owns credential state transitions: the registration saga, the
// session flow, and single-user profile mutations.
type UserService struct {
	Repo    repo.UserRepository
	Videos  repo.VideoRepository
	JWT     *helpers.JWTManager
	Assets  AssetGateway
	Logger  *logrus.Logger
	ES      *elasticsearch.Client
	ESIndex string
}

func NewUserService(users repo.UserRepository, videos repo.VideoRepository, jwt *helpers.JWTManager, assets AssetGateway, logger *logrus.Logger, es *elasticsearch.Client, esIndex string) *UserService {
	return &UserService{
		Repo:    users,
		Videos:  videos,
		JWT:     jwt,
		Assets:  assets,
		Logger:  logger,
		ES:      es,
		ESIndex: esIndex,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Fullname string
	Avatar   *Upload
	Cover    *Upload
}

// Register runs the registration saga. The document store and the asset store
// share no atomic commit, so partial failures after upload are rolled back by
// compensating deletes; the unique indexes on users are the race-breaker for
// concurrent registrations with the same identity.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (entity.PublicUser, error) {
	var zero entity.PublicUser

	if in.Avatar == nil {
		return zero, apperr.New(apperr.Validation, "avatar file is required")
	}

	exists, err := s.Repo.ExistsByEmailOrUsername(ctx, in.Email, in.Username)
	if err != nil {
		return zero, apperr.Wrap(apperr.Internal, "failed to check existing user", err)
	}
	if exists {
		return zero, apperr.New(apperr.Conflict, "user already exists")
	}

	avatar, err := s.Assets.Upload(ctx, in.Avatar.Reader, "avatars", in.Avatar.Filename, in.Avatar.ContentType)
	if err != nil {
		return zero, apperr.Wrap(apperr.Upstream, "error uploading files", err)
	}

	var cover entity.AssetReference
	if in.Cover != nil {
		cover, err = s.Assets.Upload(ctx, in.Cover.Reader, "covers", in.Cover.Filename, in.Cover.ContentType)
		if err != nil {
			s.compensateAssets(ctx, avatar)
			return zero, apperr.Wrap(apperr.Upstream, "error uploading files", err)
		}
	}

	u, err := entity.NewUser(in.Username, in.Email, in.Fullname, in.Password)
	if err != nil {
		s.compensateAssets(ctx, avatar, cover)
		return zero, apperr.Wrap(apperr.Internal, "failed to hash password", err)
	}
	u.AvatarURL = avatar.URL
	u.CoverImageURL = cover.URL

	if err := s.Repo.Create(ctx, u); err != nil {
		s.compensateAssets(ctx, avatar, cover)
		if errors.Is(err, repo.ErrDuplicate) {
			return zero, apperr.New(apperr.Conflict, "user already exists")
		}
		return zero, apperr.Wrap(apperr.Internal, "something went wrong while creating the user", err)
	}

	// Read-after-write confirmation, sanitized projection.
	created, err := s.Repo.GetByID(ctx, u.ID)
	if err != nil {
		s.compensateAssets(ctx, avatar, cover)
		return zero, apperr.Wrap(apperr.Internal, "something went wrong while registering the user", err)
	}

	s.indexChannel(ctx, created)
	return created.Public(), nil
}

// compensateAssets best-effort deletes uploaded assets after a failed create.
// Deletion failures are logged and swallowed so they never mask the original
// failure being reported.
func (s *UserService) compensateAssets(ctx context.Context, refs ...entity.AssetReference) {
	for _, ref := range refs {
		if ref.PublicID == "" {
			continue
		}
		if err := s.Assets.Delete(ctx, ref.PublicID); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("public_id", ref.PublicID).Warn("compensating asset delete failed")
		}
	}
}

// issuePair generates both tokens and persists the refresh token before
// returning. If persistence fails the pair is discarded: a refresh token that
// is not durably recorded must never reach the caller.
func (s *UserService) issuePair(ctx context.Context, u *entity.User) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, u.Username, u.Email)
	if err != nil {
		return TokenPair{}, apperr.Wrap(apperr.Internal, "something went wrong while generating tokens", err)
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID)
	if err != nil {
		return TokenPair{}, apperr.Wrap(apperr.Internal, "something went wrong while generating tokens", err)
	}
	if err := s.Repo.UpdateRefreshToken(ctx, u.ID, refresh); err != nil {
		return TokenPair{}, apperr.Wrap(apperr.Internal, "something went wrong while generating tokens", err)
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Login validates email/password and issues a fresh pair. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (entity.PublicUser, TokenPair, error) {
	var zero entity.PublicUser
	if strings.TrimSpace(email) == "" {
		return zero, TokenPair{}, apperr.New(apperr.Validation, "email is required")
	}
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return zero, TokenPair{}, apperr.New(apperr.Unauthorized, "invalid credentials")
		}
		return zero, TokenPair{}, apperr.Wrap(apperr.Internal, "failed to load user", err)
	}
	if !u.PasswordMatches(password) {
		return zero, TokenPair{}, apperr.New(apperr.Unauthorized, "invalid credentials")
	}
	pair, err := s.issuePair(ctx, u)
	if err != nil {
		return zero, TokenPair{}, err
	}
	return u.Public(), pair, nil
}

// Refresh rotates a refresh token. The presented token must equal the one
// persisted on the user record: a superseded or revoked token is invalid, not
// merely stale.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	if refreshToken == "" {
		return TokenPair{}, apperr.New(apperr.Unauthorized, "refresh token is required")
	}
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, apperr.New(apperr.Unauthorized, "invalid refresh token")
	}
	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return TokenPair{}, apperr.New(apperr.Unauthorized, "invalid refresh token")
	}
	if u.RefreshToken == "" || u.RefreshToken != refreshToken {
		return TokenPair{}, apperr.New(apperr.Unauthorized, "refresh token has been revoked")
	}
	return s.issuePair(ctx, u)
}

// Logout revokes the persisted refresh token. The caller was authenticated, so
// a vanished record is an authorization failure, not a 404.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	if err := s.Repo.UpdateRefreshToken(ctx, userID, ""); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperr.New(apperr.Unauthorized, "user no longer exists")
		}
		return apperr.Wrap(apperr.Internal, "failed to clear refresh token", err)
	}
	return nil
}

// ChangePassword verifies the old password and swaps in the new digest with a
// single-field update. The outstanding refresh token is revoked so other
// sessions must log in again.
func (s *UserService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperr.New(apperr.NotFound, "user not found")
		}
		return apperr.Wrap(apperr.Internal, "failed to load user", err)
	}
	if !u.PasswordMatches(oldPassword) {
		return apperr.New(apperr.Unauthorized, "old password incorrect")
	}
	if err := u.SetPassword(newPassword); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to hash password", err)
	}
	if err := s.Repo.UpdatePassword(ctx, userID, u.Password); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to update password", err)
	}
	if err := s.Repo.UpdateRefreshToken(ctx, userID, ""); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("failed to revoke refresh token after password change")
	}
	return nil
}

// ChangeAvatar uploads the replacement first; the old asset is deleted only
// after the new URL is durably referenced, and only best-effort.
func (s *UserService) ChangeAvatar(ctx context.Context, userID string, upload Upload) (entity.PublicUser, error) {
	var zero entity.PublicUser
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return zero, apperr.New(apperr.NotFound, "user not found")
		}
		return zero, apperr.Wrap(apperr.Internal, "failed to load user", err)
	}

	ref, err := s.Assets.Upload(ctx, upload.Reader, "avatars", upload.Filename, upload.ContentType)
	if err != nil {
		return zero, apperr.Wrap(apperr.Upstream, "error uploading avatar", err)
	}

	if err := s.Repo.UpdateAvatarURL(ctx, userID, ref.URL); err != nil {
		s.compensateAssets(ctx, ref)
		return zero, apperr.Wrap(apperr.Internal, "something went wrong while updating the avatar", err)
	}

	if oldID := s.Assets.PublicIDFromURL(u.AvatarURL); oldID != "" {
		if err := s.Assets.Delete(ctx, oldID); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("public_id", oldID).Warn("old avatar delete failed")
		}
	}

	u.AvatarURL = ref.URL
	s.indexChannel(ctx, u)
	return u.Public(), nil
}

// UpdateFullname is a plain single-field profile update.
func (s *UserService) UpdateFullname(ctx context.Context, userID, fullname string) (entity.PublicUser, error) {
	var zero entity.PublicUser
	if err := s.Repo.UpdateFullname(ctx, userID, fullname); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return zero, apperr.New(apperr.NotFound, "user not found")
		}
		return zero, apperr.Wrap(apperr.Internal, "failed to update fullname", err)
	}
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return zero, apperr.Wrap(apperr.Internal, "failed to load user", err)
	}
	s.indexChannel(ctx, u)
	return u.Public(), nil
}

// RecordWatch appends the video to the caller's watch history sequence.
// Duplicates are permitted; the sequence keeps append order.
func (s *UserService) RecordWatch(ctx context.Context, userID, videoID string) error {
	if _, err := s.Videos.GetByID(ctx, videoID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperr.New(apperr.NotFound, "video not found")
		}
		return apperr.Wrap(apperr.Internal, "failed to load video", err)
	}
	if err := s.Repo.AppendWatchHistory(ctx, userID, videoID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperr.New(apperr.Unauthorized, "user no longer exists")
		}
		return apperr.Wrap(apperr.Internal, "failed to append watch history", err)
	}
	return nil
}

// indexChannel mirrors the public channel fields into Elasticsearch for
// search. Best effort: index failures are logged, never surfaced.
func (s *UserService) indexChannel(ctx context.Context, u *entity.User) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":         u.ID,
		"username":   u.Username,
		"fullname":   u.Fullname,
		"avatar_url": u.AvatarURL,
		"created_at": u.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: u.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
}

// SearchChannels performs a multi_match search on username and fullname.
func (s *UserService) SearchChannels(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"username^2", "fullname"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "search unavailable", err)
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "search unavailable", err)
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
