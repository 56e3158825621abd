package handlers

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/vidtube/backend/internal/application"
	"github.com/vidtube/backend/internal/interface/middleware"
	"github.com/vidtube/backend/pkg/apperr"
	"github.com/vidtube/backend/pkg/helpers"
	"github.com/vidtube/backend/pkg/response"
	"github.com/vidtube/backend/pkg/validation"
)

type UserHandler struct {
	Svc     *userapp.UserService
	Logger  *logrus.Logger
	Cookies *helpers.CookieManager
}

func NewUserHandler(svc *userapp.UserService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type registerRequest struct {
	Username string `form:"username" binding:"required,handle"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,strongpwd"`
	Fullname string `form:"fullname" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,strongpwd"`
}

type updateFullnameRequest struct {
	Fullname string `json:"fullname" binding:"required"`
}

func uploadFromFileHeader(fh *multipart.FileHeader) (*userapp.Upload, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &userapp.Upload{
		Reader:      f,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
	}, func() { _ = f.Close() }, nil
}

// Register POST /api/v1/users/register (multipart: fields + avatar, optional coverImage)
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Fail(c, apperr.New(apperr.Validation, "invalid payload", validation.ToDetails(err)...))
		return
	}

	avatarFH, err := c.FormFile("avatar")
	if err != nil {
		response.Fail(c, apperr.New(apperr.Validation, "avatar file is required"))
		return
	}
	avatar, closeAvatar, err := uploadFromFileHeader(avatarFH)
	if err != nil {
		response.Fail(c, apperr.Wrap(apperr.Validation, "unreadable avatar file", err))
		return
	}
	defer closeAvatar()

	in := userapp.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Fullname: req.Fullname,
		Avatar:   avatar,
	}
	if coverFH, err := c.FormFile("coverImage"); err == nil {
		cover, closeCover, err := uploadFromFileHeader(coverFH)
		if err != nil {
			response.Fail(c, apperr.Wrap(apperr.Validation, "unreadable cover image file", err))
			return
		}
		defer closeCover()
		in.Cover = cover
	}

	u, err := h.Svc.Register(c.Request.Context(), in)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, u, "user successfully registered", nil)
}

// Login POST /api/v1/users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperr.New(apperr.Validation, "invalid payload", validation.ToDetails(err)...))
		return
	}
	u, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Fail(c, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{
		"user":         u,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "user logged in successfully", gin.H{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	})
}

// Refresh POST /api/v1/users/refresh; token from cookie or body.
func (h *UserHandler) Refresh(c *gin.Context) {
	token, _ := c.Cookie(helpers.RefreshCookie)
	if token == "" {
		var req refreshRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			token = req.RefreshToken
		}
	}
	pair, err := h.Svc.Refresh(c.Request.Context(), token)
	if err != nil {
		response.Fail(c, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "access token refreshed successfully", gin.H{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	})
}

// Logout POST /api/v1/users/logout (auth required)
func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.Svc.Logout(c.Request.Context(), c.GetString(middleware.CtxUserIDKey)); err != nil {
		response.Fail(c, err)
		return
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "user logged out successfully", nil)
}

// ChangePassword POST /api/v1/users/password (auth required)
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperr.New(apperr.Validation, "invalid payload", validation.ToDetails(err)...))
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.ChangePassword(c.Request.Context(), uid, req.OldPassword, req.NewPassword); err != nil {
		response.Fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"updated": true}, "password updated successfully", nil)
}

// ChangeAvatar PATCH /api/v1/users/avatar (auth required, multipart "avatar")
func (h *UserHandler) ChangeAvatar(c *gin.Context) {
	fh, err := c.FormFile("avatar")
	if err != nil {
		response.Fail(c, apperr.New(apperr.Validation, "avatar file is required"))
		return
	}
	upload, closeUpload, err := uploadFromFileHeader(fh)
	if err != nil {
		response.Fail(c, apperr.Wrap(apperr.Validation, "unreadable avatar file", err))
		return
	}
	defer closeUpload()

	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Svc.ChangeAvatar(c.Request.Context(), uid, *upload)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "avatar updated successfully", nil)
}

// UpdateFullname PATCH /api/v1/users/fullname (auth required)
func (h *UserHandler) UpdateFullname(c *gin.Context) {
	var req updateFullnameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperr.New(apperr.Validation, "invalid payload", validation.ToDetails(err)...))
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Svc.UpdateFullname(c.Request.Context(), uid, req.Fullname)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "fullname updated successfully", nil)
}
